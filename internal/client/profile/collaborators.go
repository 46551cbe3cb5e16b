package profile

import (
	"context"
	"time"
)

// Store is the remote record store, keyed by identity. Lookup returns an
// error wrapping common.ErrorNotFound when the identity does not exist.
type Store interface {
	Lookup(ctx context.Context, key string) (Record, error)
	Update(ctx context.Context, key string, patch Record) error
}

// Cache is the single-slot local copy of the signed-in profile. Read returns
// (nil, nil) when nothing is cached.
type Cache interface {
	Read(ctx context.Context) (Record, error)
	Write(ctx context.Context, r Record) error
}

// Navigator moves the presentation to another screen.
type Navigator interface {
	RedirectTo(destination string)
}

// Timer is a scheduled callback that can be cancelled.
type Timer interface {
	Stop() bool
}

// Clock schedules callbacks. Tests substitute a manual clock.
type Clock interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// SystemClock schedules on the runtime timer.
type SystemClock struct{}

func (SystemClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}
