// Package audit archives a record of every accepted profile update. Only the
// names of the changed fields are kept, never their values.
package audit

import (
	"context"
	"slices"
	"time"

	"github.com/google/uuid"
)

type Event struct {
	ID     uuid.UUID `json:"id"`
	Email  string    `json:"email"`
	Fields []string  `json:"fields"`
	At     time.Time `json:"at"`
}

// NewEvent builds an event for the given patch field names, sorted.
func NewEvent(email string, fields []string, at time.Time) Event {
	names := slices.Clone(fields)
	slices.Sort(names)
	return Event{ID: uuid.New(), Email: email, Fields: names, At: at.UTC()}
}

type Recorder interface {
	Record(ctx context.Context, e Event) error
}

// NopRecorder drops every event. It is used when no bucket is configured.
type NopRecorder struct{}

func (NopRecorder) Record(context.Context, Event) error { return nil }
