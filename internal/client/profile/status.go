package profile

// Status is the lifecycle position of a Session.
type Status int

const (
	StatusIdle Status = iota
	StatusValidating
	StatusSubmitting
	StatusFailed
	StatusSucceeded
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusValidating:
		return "validating"
	case StatusSubmitting:
		return "submitting"
	case StatusFailed:
		return "failed"
	case StatusSucceeded:
		return "succeeded"
	default:
		return "unknown"
	}
}

// editable reports whether inputs accept changes in this status.
func (s Status) editable() bool {
	return s == StatusIdle || s == StatusFailed
}

// busy reports whether a submission is in flight.
func (s Status) busy() bool {
	return s == StatusValidating || s == StatusSubmitting
}

// Snapshot is what the presentation layer renders.
type Snapshot struct {
	Status  Status
	Kind    Kind
	Message string
	Fields  Record
}
