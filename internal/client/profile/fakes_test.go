package profile

import (
	"context"
	"sync"
	"time"
)

// ---- store ----

type fakeStore struct {
	mu sync.Mutex

	LookupRet Record
	LookupErr error
	UpdateErr error

	// UpdateHook, when set, runs inside Update before it returns.
	UpdateHook func(ctx context.Context)

	LookupCalls int
	UpdateCalls int
	LastKey     string
	LastPatch   Record
}

func (f *fakeStore) Lookup(ctx context.Context, key string) (Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.LookupCalls++
	f.LastKey = key
	if f.LookupRet == nil {
		return nil, f.LookupErr
	}
	return f.LookupRet.Clone(), f.LookupErr
}

func (f *fakeStore) Update(ctx context.Context, key string, patch Record) error {
	f.mu.Lock()
	f.UpdateCalls++
	f.LastKey = key
	f.LastPatch = patch.Clone()
	hook := f.UpdateHook
	f.mu.Unlock()

	if hook != nil {
		hook(ctx)
	}
	return f.UpdateErr
}

func (f *fakeStore) updates() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.UpdateCalls
}

// ---- cache ----

type fakeCache struct {
	mu sync.Mutex

	Rec      Record
	ReadErr  error
	WriteErr error

	// ReadErrAfter makes reads fail once Reads exceeds this many calls (0 = never).
	ReadErrAfter int

	Reads  int
	Writes int
}

func (c *fakeCache) Read(ctx context.Context) (Record, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Reads++
	if c.ReadErr != nil && (c.ReadErrAfter == 0 || c.Reads > c.ReadErrAfter) {
		return nil, c.ReadErr
	}
	if c.Rec == nil {
		return nil, nil
	}
	return c.Rec.Clone(), nil
}

func (c *fakeCache) Write(ctx context.Context, r Record) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Writes++
	if c.WriteErr != nil {
		return c.WriteErr
	}
	c.Rec = r.Clone()
	return nil
}

func (c *fakeCache) snapshot() Record {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Rec == nil {
		return nil
	}
	return c.Rec.Clone()
}

// ---- navigator ----

type fakeNav struct {
	mu    sync.Mutex
	Calls []string
}

func (n *fakeNav) RedirectTo(destination string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.Calls = append(n.Calls, destination)
}

func (n *fakeNav) calls() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.Calls...)
}

// ---- clock ----

type manualClock struct {
	mu     sync.Mutex
	now    time.Duration
	timers []*manualTimer
}

type manualTimer struct {
	c       *manualClock
	at      time.Duration
	f       func()
	stopped bool
	fired   bool
}

func (c *manualClock) AfterFunc(d time.Duration, f func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &manualTimer{c: c, at: c.now + d, f: f}
	c.timers = append(c.timers, t)
	return t
}

func (t *manualTimer) Stop() bool {
	t.c.mu.Lock()
	defer t.c.mu.Unlock()
	if t.fired || t.stopped {
		return false
	}
	t.stopped = true
	return true
}

// Advance moves time forward and runs every timer that became due.
func (c *manualClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now += d
	var due []*manualTimer
	for _, t := range c.timers {
		if !t.fired && !t.stopped && t.at <= c.now {
			t.fired = true
			due = append(due, t)
		}
	}
	c.mu.Unlock()

	for _, t := range due {
		t.f()
	}
}

func (c *manualClock) pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, t := range c.timers {
		if !t.fired && !t.stopped {
			n++
		}
	}
	return n
}

// ---- fixture ----

type fixture struct {
	store *fakeStore
	cache *fakeCache
	nav   *fakeNav
	clock *manualClock

	mu        sync.Mutex
	snapshots []Snapshot
}

func newFixture(cached Record) *fixture {
	return &fixture{
		store: &fakeStore{LookupRet: Record{"email": "ann@example.com"}},
		cache: &fakeCache{Rec: cached},
		nav:   &fakeNav{},
		clock: &manualClock{},
	}
}

func (f *fixture) deps() Deps {
	return Deps{
		Store:     f.store,
		Cache:     f.cache,
		Navigator: f.nav,
		Clock:     f.clock,
		Observer: func(s Snapshot) {
			f.mu.Lock()
			defer f.mu.Unlock()
			f.snapshots = append(f.snapshots, s)
		},
	}
}

func (f *fixture) statuses() []Status {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Status, 0, len(f.snapshots))
	for _, s := range f.snapshots {
		out = append(out, s.Status)
	}
	return out
}

func cachedAnn() Record {
	return Record{
		"email":     "ann@example.com",
		"firstName": "Ann",
		"address":   "1 Old Road",
		"apartment": "",
		"city":      "Springfield",
		"state":     "IL",
		"country":   "US",
		"zip":       "62701",
	}
}
