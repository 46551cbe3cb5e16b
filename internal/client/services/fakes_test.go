package services

import (
	"context"
	"database/sql"
	"path/filepath"
	"sync"
	"testing"

	"github.com/dmitrijs2005/profilekeeper/internal/client/client"
	"github.com/stretchr/testify/require"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := client.InitDatabase(context.Background(), filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

type fakeClient struct {
	mu sync.Mutex

	CloseErr    error
	RegisterErr error
	PingErr     error

	LoginToken   string
	LoginProfile map[string]string
	LoginErr     error

	LookupRet map[string]string
	LookupErr error
	UpdateErr error

	Token string

	LastRegisterEmail  string
	LastRegisterPass   string
	LastRegisterFields map[string]string
	LastUpdateEmail    string
	LastUpdateFields   map[string]string
}

var _ client.Client = (*fakeClient)(nil)

func (f *fakeClient) Close() error { return f.CloseErr }

func (f *fakeClient) Register(ctx context.Context, email, password string, fields map[string]string) error {
	f.LastRegisterEmail, f.LastRegisterPass, f.LastRegisterFields = email, password, fields
	return f.RegisterErr
}

func (f *fakeClient) Login(ctx context.Context, email, password string) (string, map[string]string, error) {
	if f.LoginErr != nil {
		return "", nil, f.LoginErr
	}
	f.SetAccessToken(f.LoginToken)
	return f.LoginToken, f.LoginProfile, nil
}

func (f *fakeClient) SetAccessToken(token string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Token = token
}

func (f *fakeClient) token() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.Token
}

func (f *fakeClient) Ping(ctx context.Context) error { return f.PingErr }

func (f *fakeClient) Lookup(ctx context.Context, email string) (map[string]string, error) {
	return f.LookupRet, f.LookupErr
}

func (f *fakeClient) Update(ctx context.Context, email string, fields map[string]string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.LastUpdateEmail, f.LastUpdateFields = email, fields
	return f.UpdateErr
}
