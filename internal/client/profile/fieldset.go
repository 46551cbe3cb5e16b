package profile

import (
	"fmt"
	"strings"
	"time"
)

// Field describes one input of a FieldSet.
//
// Plain fields are sent to the Store and written to the Cache. Secret fields
// are sent but never cached. Transient fields live only in the edit buffer:
// they feed validation or identity confirmation and are never sent.
type Field struct {
	Name      string
	Secret    bool
	Transient bool
}

func (f Field) sent() bool      { return !f.Transient }
func (f Field) cacheable() bool { return !f.Transient && !f.Secret }

// Rule checks the edit buffer. It returns nil or an error wrapping
// ErrEmptyRequiredField or ErrMismatchedConfirmation.
type Rule func(Record) error

// RequireNonBlank fails when any of the fields is empty after trimming spaces.
func RequireNonBlank(fields ...string) Rule {
	return func(r Record) error {
		for _, f := range fields {
			if strings.TrimSpace(r[f]) == "" {
				return fmt.Errorf("%w: %s", ErrEmptyRequiredField, f)
			}
		}
		return nil
	}
}

// RequirePresent fails when any of the fields is the empty string. Whitespace
// counts as a value.
func RequirePresent(fields ...string) Rule {
	return func(r Record) error {
		for _, f := range fields {
			if r[f] == "" {
				return fmt.Errorf("%w: %s", ErrEmptyRequiredField, f)
			}
		}
		return nil
	}
}

// RequireMatch fails unless both fields hold exactly the same string.
func RequireMatch(field, confirmation string) Rule {
	return func(r Record) error {
		if r[field] != r[confirmation] {
			return fmt.Errorf("%w: %s", ErrMismatchedConfirmation, confirmation)
		}
		return nil
	}
}

// FieldSet parameterises a Session: which fields it manages, how they are
// validated, where it navigates and what it tells the user.
type FieldSet struct {
	Name   string
	Fields []Field
	Rules  []Rule

	// ConfirmField, when set, names a buffer field that must match the
	// identity key, and the identity is looked up in the Store before Update.
	ConfirmField string

	SuccessMessage     string
	SuccessDelay       time.Duration
	SuccessDestination string
	CancelDestination  string
	LoginDestination   string

	Messages map[Kind]string
}

func (fs FieldSet) field(name string) (Field, bool) {
	for _, f := range fs.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// message returns the user-facing text for k, falling back to the
// unexpected-failure text.
func (fs FieldSet) message(k Kind) string {
	if m, ok := fs.Messages[k]; ok {
		return m
	}
	return fs.Messages[KindUnexpectedFailure]
}

// seed builds the initial edit buffer: every managed field present, plain
// fields copied from the cached record, the rest empty.
func (fs FieldSet) seed(cached Record) Record {
	buf := make(Record, len(fs.Fields))
	for _, f := range fs.Fields {
		if f.cacheable() {
			buf[f.Name] = cached[f.Name]
		} else {
			buf[f.Name] = ""
		}
	}
	return buf
}

// patch restricts buf to the fields sent to the Store.
func (fs FieldSet) patch(buf Record) Record {
	out := make(Record)
	for _, f := range fs.Fields {
		if f.sent() {
			out[f.Name] = buf[f.Name]
		}
	}
	return out
}

// cacheable restricts buf to the fields written to the Cache.
func (fs FieldSet) cacheable(buf Record) Record {
	out := make(Record)
	for _, f := range fs.Fields {
		if f.cacheable() {
			out[f.Name] = buf[f.Name]
		}
	}
	return out
}

func (fs FieldSet) validate(buf Record) error {
	for _, rule := range fs.Rules {
		if err := rule(buf); err != nil {
			return err
		}
	}
	return nil
}
