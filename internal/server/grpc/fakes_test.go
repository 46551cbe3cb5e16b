package grpc

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/profilekeeper/internal/logging"
	"github.com/dmitrijs2005/profilekeeper/internal/server/metrics"
)

type fakeProfiles struct {
	mu sync.Mutex

	err      error
	pingErr  error
	token    string
	profile  map[string]string
	lastArgs []string
	lastMap  map[string]string
}

func (f *fakeProfiles) record(m map[string]string, args ...string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastArgs = args
	f.lastMap = m
}

func (f *fakeProfiles) Register(ctx context.Context, email, password string, fields map[string]string) error {
	f.record(fields, email, password)
	return f.err
}

func (f *fakeProfiles) Login(ctx context.Context, email, password string) (string, map[string]string, error) {
	f.record(nil, email, password)
	if f.err != nil {
		return "", nil, f.err
	}
	return f.token, f.profile, nil
}

func (f *fakeProfiles) Lookup(ctx context.Context, caller, email string) (map[string]string, error) {
	f.record(nil, caller, email)
	if f.err != nil {
		return nil, f.err
	}
	return f.profile, nil
}

func (f *fakeProfiles) Update(ctx context.Context, caller, email string, fields map[string]string) error {
	f.record(fields, caller, email)
	return f.err
}

func (f *fakeProfiles) Ping(ctx context.Context) error { return f.pingErr }

func (f *fakeProfiles) args() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastArgs
}

const testSecret = "secret"

func newTestServer(ps *fakeProfiles) *GRPCServer {
	return NewGRPCServer("127.0.0.1:0", logging.NewNop(), ps, metrics.New(), testSecret)
}
