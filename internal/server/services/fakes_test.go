package services

import (
	"context"
	"database/sql"
	"errors"
	"maps"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/profilekeeper/internal/common"
	"github.com/dmitrijs2005/profilekeeper/internal/cryptox"
	"github.com/dmitrijs2005/profilekeeper/internal/dbx"
	"github.com/dmitrijs2005/profilekeeper/internal/logging"
	"github.com/dmitrijs2005/profilekeeper/internal/server/audit"
	"github.com/dmitrijs2005/profilekeeper/internal/server/cache"
	"github.com/dmitrijs2005/profilekeeper/internal/server/config"
	"github.com/dmitrijs2005/profilekeeper/internal/server/metrics"
	"github.com/dmitrijs2005/profilekeeper/internal/server/models"
	"github.com/dmitrijs2005/profilekeeper/internal/server/repositories/profiles"
	"github.com/stretchr/testify/require"
)

var cheapParams = cryptox.Params{Memory: 64, Time: 1, Parallelism: 1, SaltLen: 8, KeyLen: 16}

// ---- repository ----

type fakeProfilesRepo struct {
	mu   sync.Mutex
	rows map[string]*models.Profile

	getErr    error
	updateErr error

	gets        int
	lastColumns map[string]string
}

func newFakeRepo() *fakeProfilesRepo {
	return &fakeProfilesRepo{rows: map[string]*models.Profile{}}
}

func (f *fakeProfilesRepo) Create(ctx context.Context, p *models.Profile) (*models.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.rows[p.Email]; ok {
		return nil, common.ErrorAlreadyExists
	}
	cp := *p
	f.rows[p.Email] = &cp
	return p, nil
}

func (f *fakeProfilesRepo) GetByEmail(ctx context.Context, email string) (*models.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gets++
	if f.getErr != nil {
		return nil, f.getErr
	}
	p, ok := f.rows[email]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProfilesRepo) Update(ctx context.Context, email string, columns map[string]string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastColumns = maps.Clone(columns)
	if f.updateErr != nil {
		return f.updateErr
	}
	p, ok := f.rows[email]
	if !ok {
		return common.ErrorNotFound
	}
	p.Apply(columns)
	if h, ok := columns[models.ColumnPasswordHash]; ok {
		p.PasswordHash = h
	}
	return nil
}

type fakeManager struct{ repo *fakeProfilesRepo }

func (m *fakeManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeManager) Profiles(dbx.DBTX) profiles.Repository        { return m.repo }

// ---- audit ----

type fakeRecorder struct {
	mu     sync.Mutex
	events []audit.Event
	err    error
}

func (r *fakeRecorder) Record(ctx context.Context, e audit.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.events = append(r.events, e)
	return nil
}

// ---- cache ----

var errCacheDown = errors.New("cache down")

// brokenCache fails every call.
type brokenCache struct{}

func (brokenCache) Get(context.Context, string) ([]byte, error)              { return nil, errCacheDown }
func (brokenCache) Set(context.Context, string, []byte, time.Duration) error { return errCacheDown }
func (brokenCache) Delete(context.Context, string) error                     { return errCacheDown }
func (brokenCache) Ping(context.Context) error                               { return errCacheDown }
func (brokenCache) Close() error                                             { return nil }

// ---- fixture ----

type svcFixture struct {
	svc     *ProfileService
	repo    *fakeProfilesRepo
	cache   cache.Cache
	audit   *fakeRecorder
	metrics *metrics.Metrics
	mock    sqlmock.Sqlmock
}

func newFixture(t *testing.T, c cache.Cache) *svcFixture {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	if c == nil {
		c = cache.NewMemory(time.Minute)
	}
	f := &svcFixture{
		repo:    newFakeRepo(),
		cache:   c,
		audit:   &fakeRecorder{},
		metrics: metrics.New(),
		mock:    mock,
	}
	cfg := &config.Config{
		SecretKey:                   "k",
		AccessTokenValidityDuration: time.Hour,
		LookupCacheTTL:              time.Minute,
	}
	f.svc = NewProfileService(db, &fakeManager{repo: f.repo}, cfg, f.cache, f.audit, f.metrics, logging.NewNop())
	f.svc.hashParams = cheapParams
	f.svc.now = func() time.Time { return time.Date(2026, 5, 6, 7, 8, 9, 0, time.UTC) }
	return f
}

// scrape renders the fixture's metrics in the exposition format.
func (f *svcFixture) scrape(t *testing.T) string {
	t.Helper()
	rec := httptest.NewRecorder()
	f.metrics.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	return rec.Body.String()
}

// seed registers ann@example.com with password "old-pass".
func (f *svcFixture) seed(t *testing.T) {
	t.Helper()
	require.NoError(t, f.svc.Register(context.Background(), "ann@example.com", "old-pass", map[string]string{
		"first_name": "Ann",
		"address":    "1 Old Road",
		"city":       "Springfield",
	}))
}
