package profile

import (
	"errors"
	"fmt"
)

// Kind classifies why a submission failed. Each FieldSet maps every Kind it
// can produce to exactly one user-facing message.
type Kind int

const (
	KindNone Kind = iota
	KindEmptyRequiredField
	KindMismatchedConfirmation
	KindIdentityNotFound
	KindRemoteUpdateFailed
	KindUnexpectedFailure
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindEmptyRequiredField:
		return "empty_required_field"
	case KindMismatchedConfirmation:
		return "mismatched_confirmation"
	case KindIdentityNotFound:
		return "identity_not_found"
	case KindRemoteUpdateFailed:
		return "remote_update_failed"
	case KindUnexpectedFailure:
		return "unexpected_failure"
	default:
		return "unknown"
	}
}

var (
	ErrEmptyRequiredField     = errors.New("required field is empty")
	ErrMismatchedConfirmation = errors.New("confirmation does not match")
	ErrIdentityNotFound       = errors.New("identity not found")
	ErrRemoteUpdateFailed     = errors.New("remote update failed")
	ErrUnexpectedFailure      = errors.New("unexpected failure")

	// SetField rejections.
	ErrUnknownField  = errors.New("unknown field")
	ErrInputLocked   = errors.New("input locked while submitting")
	ErrSessionClosed = errors.New("session closed")
)

// kindOf maps an error produced inside a submission to its Kind.
func kindOf(err error) Kind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrEmptyRequiredField):
		return KindEmptyRequiredField
	case errors.Is(err, ErrMismatchedConfirmation):
		return KindMismatchedConfirmation
	case errors.Is(err, ErrIdentityNotFound):
		return KindIdentityNotFound
	case errors.Is(err, ErrRemoteUpdateFailed):
		return KindRemoteUpdateFailed
	default:
		return KindUnexpectedFailure
	}
}

func unknownField(name string) error {
	return fmt.Errorf("%w: %q", ErrUnknownField, name)
}
