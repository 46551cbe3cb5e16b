// Package server wires the profile store together: Postgres, the lookup cache,
// the audit trail, metrics and the gRPC and HTTP listeners.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/profilekeeper/internal/logging"
	"github.com/dmitrijs2005/profilekeeper/internal/server/audit"
	"github.com/dmitrijs2005/profilekeeper/internal/server/cache"
	"github.com/dmitrijs2005/profilekeeper/internal/server/config"
	gs "github.com/dmitrijs2005/profilekeeper/internal/server/grpc"
	"github.com/dmitrijs2005/profilekeeper/internal/server/httpapi"
	"github.com/dmitrijs2005/profilekeeper/internal/server/metrics"
	"github.com/dmitrijs2005/profilekeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/profilekeeper/internal/server/services"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// seams for tests
var (
	openDB = func(dsn string) (*sql.DB, error) {
		return sql.Open("pgx", dsn)
	}
	newRepoManager = func() repomanager.RepositoryManager {
		return repomanager.NewPostgresRepositoryManager()
	}
)

type App struct {
	config   *config.Config
	logger   logging.Logger
	db       *sql.DB
	cache    cache.Cache
	metrics  *metrics.Metrics
	profiles *services.ProfileService
}

func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	db, err := openDB(c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := newRepoManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrations error: %w", err)
	}

	lc, err := cache.New(cache.Config{
		Backend:    c.CacheBackend,
		DefaultTTL: c.LookupCacheTTL,
		RedisAddr:  c.RedisAddr,
		Prefix:     "profile",
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	rec, err := newRecorder(ctx, c)
	if err != nil {
		_ = lc.Close()
		_ = db.Close()
		return nil, err
	}

	m := metrics.New()
	ps := services.NewProfileService(db, rm, c, lc, rec, m, logger)

	return &App{config: c, logger: logger, db: db, cache: lc, metrics: m, profiles: ps}, nil
}

// newRecorder returns a no-op recorder when no audit bucket is configured.
func newRecorder(ctx context.Context, c *config.Config) (audit.Recorder, error) {
	if c.S3Bucket == "" {
		return audit.NopRecorder{}, nil
	}
	return audit.NewS3Recorder(ctx, audit.S3Config{
		Bucket:       c.S3Bucket,
		Region:       c.S3Region,
		AccessKey:    c.S3RootUser,
		SecretKey:    c.S3RootPassword,
		BaseEndpoint: c.S3BaseEndpoint,
	})
}

// Run serves gRPC and HTTP until ctx is cancelled or either listener fails,
// then releases the database and cache.
func (app *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	app.logger.Info(ctx, "Starting app...")

	grpcServer := gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger, app.profiles, app.metrics, app.config.SecretKey)
	httpServer := httpapi.NewServer(app.config.EndpointAddrHTTP, app.db, app.metrics.Handler(), app.logger)

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)
	start := func(name string, run func(context.Context) error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := run(ctx); err != nil {
				app.logger.Error(ctx, "server stopped with error", "server", name, "error", err)
				mu.Lock()
				errs = append(errs, fmt.Errorf("%s: %w", name, err))
				mu.Unlock()
				cancel()
			}
		}()
	}

	start("grpc", grpcServer.Run)
	start("http", httpServer.Run)
	wg.Wait()

	app.logger.Info(ctx, "Stopped, closing resources")
	return errors.Join(append(errs, app.Close())...)
}

func (app *App) Close() error {
	return errors.Join(app.cache.Close(), app.db.Close())
}
