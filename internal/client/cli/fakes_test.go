package cli

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/profilekeeper/internal/client/profile"
	"github.com/dmitrijs2005/profilekeeper/internal/logging"
)

// ---- auth ----

type fakeAuth struct {
	mu sync.Mutex

	regEmail  string
	regPass   []byte
	regFields map[string]string
	regErr    error

	loginEmail string
	loginPass  []byte
	loginRec   profile.Record
	loginErr   error

	restoreRec profile.Record
	restoreErr error

	logoutCalled bool
	logoutErr    error

	pingErr error
	pings   int
}

func (f *fakeAuth) Register(_ context.Context, email string, pass []byte, fields map[string]string) error {
	f.regEmail, f.regPass, f.regFields = email, append([]byte(nil), pass...), fields
	return f.regErr
}
func (f *fakeAuth) Login(_ context.Context, email string, pass []byte) (profile.Record, error) {
	f.loginEmail, f.loginPass = email, append([]byte(nil), pass...)
	return f.loginRec, f.loginErr
}
func (f *fakeAuth) Restore(context.Context) (profile.Record, error) {
	return f.restoreRec, f.restoreErr
}
func (f *fakeAuth) Logout(context.Context) error {
	f.logoutCalled = true
	return f.logoutErr
}
func (f *fakeAuth) Close(context.Context) error { return nil }
func (f *fakeAuth) Ping(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pings++
	return f.pingErr
}
func (f *fakeAuth) setPingErr(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pingErr = err
}

// ---- profile sessions ----

type memStore struct {
	mu         sync.Mutex
	lookupErr  error
	updateErr  error
	patches    []profile.Record
	lookupKeys []string
}

func (s *memStore) Lookup(_ context.Context, key string) (profile.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lookupKeys = append(s.lookupKeys, key)
	if s.lookupErr != nil {
		return nil, s.lookupErr
	}
	return profile.Record{"email": key}, nil
}

func (s *memStore) Update(_ context.Context, _ string, patch profile.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.patches = append(s.patches, patch.Clone())
	return s.updateErr
}

type memCache struct {
	mu  sync.Mutex
	rec profile.Record
}

func (c *memCache) Read(context.Context) (profile.Record, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.rec == nil {
		return nil, nil
	}
	return c.rec.Clone(), nil
}

func (c *memCache) Write(_ context.Context, r profile.Record) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rec = r.Clone()
	return nil
}

// instantClock fires callbacks right away on their own goroutine.
type instantClock struct{}

func (instantClock) AfterFunc(_ time.Duration, f func()) profile.Timer {
	go f()
	return noopTimer{}
}

type noopTimer struct{}

func (noopTimer) Stop() bool { return false }

type fakeProfiles struct {
	store *memStore
	cache *memCache
}

func (p *fakeProfiles) Cached(ctx context.Context) (profile.Record, error) {
	return p.cache.Read(ctx)
}

func (p *fakeProfiles) Open(ctx context.Context, fs profile.FieldSet, nav profile.Navigator, observer func(profile.Snapshot)) *profile.Session {
	return profile.Activate(ctx, fs, profile.Deps{
		Store:     p.store,
		Cache:     p.cache,
		Navigator: nav,
		Clock:     instantClock{},
		Observer:  observer,
	})
}

// ---- app ----

func newTestApp(auth *fakeAuth, profiles *fakeProfiles, input string) (*App, *bytes.Buffer) {
	var logs bytes.Buffer
	a := &App{
		authService:    auth,
		profileService: profiles,
		router:         NewRouter(profile.DestinationLogin),
		log:            logging.NewText(&logs, 0),
		reader:         bufio.NewReader(strings.NewReader(input)),
		out:            io.Discard,
	}
	return a, &logs
}

// stubPasswords makes getPassword hand out pws in order.
func stubPasswords(t *testing.T, pws ...string) {
	t.Helper()
	orig := getPassword
	i := 0
	getPassword = func(io.Writer, string) ([]byte, error) {
		if i >= len(pws) {
			return nil, io.EOF
		}
		pw := []byte(pws[i])
		i++
		return pw, nil
	}
	t.Cleanup(func() { getPassword = orig })
}
