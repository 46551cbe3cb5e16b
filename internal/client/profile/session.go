package profile

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/dmitrijs2005/profilekeeper/internal/common"
	"github.com/dmitrijs2005/profilekeeper/internal/logging"
)

// Deps are the collaborators of a Session. Clock and Logger are optional.
type Deps struct {
	Store     Store
	Cache     Cache
	Navigator Navigator
	Clock     Clock
	Logger    logging.Logger

	// Observer, when set, receives a Snapshot after every status change.
	// It is called without the session lock held.
	Observer func(Snapshot)
}

// Session is one activation of an edit screen. It is safe for concurrent use.
type Session struct {
	fs  FieldSet
	key string

	store    Store
	cache    Cache
	nav      Navigator
	clock    Clock
	log      logging.Logger
	observer func(Snapshot)

	mu      sync.Mutex
	seed    Record // cached record at activation
	buf     Record
	status  Status
	kind    Kind
	message string
	closed  bool
	timer   Timer
}

// NewSession opens a session for identity key with the buffer seeded from the
// cached record.
func NewSession(fs FieldSet, key string, cached Record, deps Deps) *Session {
	clock := deps.Clock
	if clock == nil {
		clock = SystemClock{}
	}
	log := deps.Logger
	if log == nil {
		log = logging.NewNop()
	}

	return &Session{
		fs:       fs,
		key:      key,
		store:    deps.Store,
		cache:    deps.Cache,
		nav:      deps.Navigator,
		clock:    clock,
		log:      log.With("module", "profile_session", "fieldset", fs.Name),
		observer: deps.Observer,
		seed:     cached.Clone(),
		buf:      fs.seed(cached),
		status:   StatusIdle,
	}
}

// Activate reads the cached profile and opens a session over it. When nothing
// usable is cached the user is sent to the login screen and nil is returned.
func Activate(ctx context.Context, fs FieldSet, deps Deps) *Session {
	log := deps.Logger
	if log == nil {
		log = logging.NewNop()
	}

	rec, err := readCache(ctx, deps.Cache)
	if err != nil {
		log.Warn(ctx, "cached profile unreadable", "fieldset", fs.Name, "error", err)
	}
	if err != nil || rec == nil || rec[KeyField] == "" {
		deps.Navigator.RedirectTo(fs.LoginDestination)
		return nil
	}
	return NewSession(fs, rec[KeyField], rec, deps)
}

// readCache turns a panicking cache into an ordinary read error.
func readCache(ctx context.Context, c Cache) (rec Record, err error) {
	defer func() {
		if r := recover(); r != nil {
			rec, err = nil, fmt.Errorf("cache read panicked: %v", r)
		}
	}()
	return c.Read(ctx)
}

// Key returns the identity the session edits.
func (s *Session) Key() string { return s.key }

// FieldSet returns the field-set the session was opened with.
func (s *Session) FieldSet() FieldSet { return s.fs }

// Snapshot returns the current state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Session) snapshotLocked() Snapshot {
	return Snapshot{Status: s.status, Kind: s.kind, Message: s.message, Fields: s.buf.Clone()}
}

// SetField replaces one value of the edit buffer. It does not validate and
// does not change the status.
func (s *Session) SetField(name, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrSessionClosed
	}
	if !s.status.editable() {
		return ErrInputLocked
	}
	if _, ok := s.fs.field(name); !ok {
		return unknownField(name)
	}
	s.buf[name] = value
	return nil
}

// Submit runs one submission to completion and returns the resulting state.
// It is a no-op while another submission is in flight, after success, and
// after the session is closed.
func (s *Session) Submit(ctx context.Context) (snap Snapshot) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error(ctx, "submit panicked", "email", s.key, "panic", fmt.Sprint(r))
			snap = s.failAfterPanic(ctx)
		}
	}()

	buf, ok := s.begin()
	if !ok {
		return s.Snapshot()
	}

	if err := s.fs.validate(buf); err != nil {
		s.log.Debug(ctx, "validation failed", "email", s.key, "error", err)
		return s.fail(kindOf(err))
	}

	if !s.advance(StatusSubmitting) {
		return s.Snapshot()
	}

	if s.fs.ConfirmField != "" {
		err := s.confirmIdentity(ctx, buf)
		if s.isClosed() {
			return s.Snapshot()
		}
		if err != nil {
			return s.fail(kindOf(err))
		}
	}

	err := s.store.Update(ctx, s.key, s.fs.patch(buf))
	if s.isClosed() {
		s.log.Debug(ctx, "update finished after close, ignoring", "email", s.key)
		return s.Snapshot()
	}
	if err != nil {
		s.log.Error(ctx, "remote update failed", "email", s.key, "error", err)
		return s.fail(KindRemoteUpdateFailed)
	}

	if err := s.writeCache(ctx, buf); err != nil {
		s.log.Error(ctx, "cache write failed", "email", s.key, "error", err)
		return s.fail(KindUnexpectedFailure)
	}

	return s.succeed()
}

// begin moves Idle/Failed to Validating and hands back a private copy of the
// buffer to work on.
func (s *Session) begin() (Record, bool) {
	s.mu.Lock()
	if s.closed || s.status.busy() || s.status == StatusSucceeded {
		s.mu.Unlock()
		return nil, false
	}
	s.status = StatusValidating
	s.kind = KindNone
	s.message = ""
	buf := s.buf.Clone()
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.notify(snap)
	return buf, true
}

func (s *Session) advance(status Status) bool {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return false
	}
	s.status = status
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.notify(snap)
	return true
}

func (s *Session) fail(kind Kind) Snapshot {
	s.mu.Lock()
	if s.closed {
		snap := s.snapshotLocked()
		s.mu.Unlock()
		return snap
	}
	s.status = StatusFailed
	s.kind = kind
	s.message = s.fs.message(kind)
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.notify(snap)
	return snap
}

// failAfterPanic records UnexpectedFailure and drops a redirect that a
// successful submission may already have scheduled.
func (s *Session) failAfterPanic(ctx context.Context) Snapshot {
	s.mu.Lock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	if !s.closed {
		s.status = StatusFailed
		s.kind = KindUnexpectedFailure
		s.message = s.fs.message(KindUnexpectedFailure)
	}
	snap := s.snapshotLocked()
	closed := s.closed
	s.mu.Unlock()

	if !closed {
		func() {
			defer func() {
				if r := recover(); r != nil {
					s.log.Error(ctx, "observer panicked", "email", s.key, "panic", fmt.Sprint(r))
				}
			}()
			s.notify(snap)
		}()
	}
	return snap
}

func (s *Session) succeed() Snapshot {
	s.mu.Lock()
	if s.closed {
		snap := s.snapshotLocked()
		s.mu.Unlock()
		return snap
	}
	s.status = StatusSucceeded
	s.kind = KindNone
	s.message = s.fs.SuccessMessage
	snap := s.snapshotLocked()
	s.mu.Unlock()

	t := s.clock.AfterFunc(s.fs.SuccessDelay, func() { s.leave(s.fs.SuccessDestination) })
	s.mu.Lock()
	if s.closed {
		t.Stop()
	} else {
		s.timer = t
	}
	s.mu.Unlock()

	s.notify(snap)
	return snap
}

// confirmIdentity checks the retyped identity against the key, then asks the
// store whether the identity exists.
func (s *Session) confirmIdentity(ctx context.Context, buf Record) error {
	typed := strings.TrimSpace(buf[s.fs.ConfirmField])
	if !strings.EqualFold(typed, strings.TrimSpace(s.key)) {
		return ErrIdentityNotFound
	}

	rec, err := s.store.Lookup(ctx, s.key)
	switch {
	case errors.Is(err, common.ErrorNotFound):
		return ErrIdentityNotFound
	case err != nil:
		s.log.Error(ctx, "identity lookup failed", "email", s.key, "error", err)
		return ErrRemoteUpdateFailed
	case rec == nil:
		return ErrIdentityNotFound
	}
	return nil
}

// writeCache merges the cacheable buffer fields into a fresh read of the
// cache, falling back to the activation snapshot when the cache is gone.
func (s *Session) writeCache(ctx context.Context, buf Record) error {
	base, err := s.cache.Read(ctx)
	if err != nil {
		s.log.Warn(ctx, "cache re-read failed, merging into activation snapshot", "email", s.key, "error", err)
		base = nil
	}
	if base == nil {
		s.mu.Lock()
		base = s.seed.Clone()
		s.mu.Unlock()
	}

	merged := Merge(base, s.fs.cacheable(buf))
	if err := s.cache.Write(ctx, merged); err != nil {
		return err
	}

	s.mu.Lock()
	s.seed = merged
	s.mu.Unlock()
	return nil
}

// Cancel leaves the screen immediately without touching the store or cache.
func (s *Session) Cancel() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closeLocked()
	s.buf = Record{}
	s.mu.Unlock()

	s.nav.RedirectTo(s.fs.CancelDestination)
}

// Close tears the session down: the pending redirect is cancelled and any
// in-flight submission finishes without further effect.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closeLocked()
}

func (s *Session) closeLocked() {
	s.closed = true
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

func (s *Session) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// leave fires the scheduled redirect unless the session was closed first.
func (s *Session) leave(destination string) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.timer = nil
	s.mu.Unlock()

	s.nav.RedirectTo(destination)
}

func (s *Session) notify(snap Snapshot) {
	if s.observer != nil {
		s.observer(snap)
	}
}
