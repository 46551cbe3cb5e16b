package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/dmitrijs2005/profilekeeper/internal/client/client"
	"github.com/dmitrijs2005/profilekeeper/internal/client/config"
	"github.com/dmitrijs2005/profilekeeper/internal/client/profile"
	"github.com/dmitrijs2005/profilekeeper/internal/client/services"
	"github.com/dmitrijs2005/profilekeeper/internal/filex"
	"github.com/dmitrijs2005/profilekeeper/internal/logging"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

// profileOpener is the part of services.ProfileService the commands use.
type profileOpener interface {
	Cached(ctx context.Context) (profile.Record, error)
	Open(ctx context.Context, fs profile.FieldSet, nav profile.Navigator, observer func(profile.Snapshot)) *profile.Session
}

type App struct {
	config         *config.Config
	authService    services.AuthService
	profileService profileOpener
	router         *Router
	log            logging.Logger
	reader         *bufio.Reader
	out            io.Writer

	mu    sync.RWMutex
	mode  Mode
	email string
}

// NewApp opens the local cache database and connects the services.
func NewApp(c *config.Config, log logging.Logger) (*App, error) {
	ctx := context.Background()

	dbPath, err := filex.EnsureParentDir(c.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("prepare database path: %w", err)
	}

	db, err := client.InitDatabase(ctx, dbPath)
	if err != nil {
		log.Error(ctx, "error initializing database", "path", dbPath, "error", err)
		return nil, err
	}

	apiClient, err := client.NewProfileKeeperClient(c.ServerEndpointAddr)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &App{
		config:         c,
		authService:    services.NewAuthService(apiClient, db),
		profileService: services.NewProfileService(apiClient, db, log),
		router:         NewRouter(profile.DestinationLogin),
		log:            log.With("module", "cli"),
		reader:         bufio.NewReader(os.Stdin),
		out:            os.Stdout,
	}, nil
}

// Run restores a previous login, starts the online watcher and blocks in the
// REPL until the user exits or ctx is cancelled.
func (a *App) Run(ctx context.Context) {
	defer a.authService.Close(ctx)

	rec, err := a.authService.Restore(ctx)
	if err != nil {
		a.log.Warn(ctx, "local session unreadable", "error", err)
	}
	if rec != nil {
		a.setEmail(rec[profile.KeyField])
		a.router.RedirectTo(profile.DestinationProfile)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)

	printlnFn("Welcome to ProfileKeeper CLI (type 'help' for commands)")
	runREPL(ctx, a, a.getStatus, a.reader)
}

func (a *App) isLoggedIn() bool {
	return a.currentEmail() != ""
}

func (a *App) currentEmail() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.email
}

func (a *App) setEmail(email string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.email = email
}

func (a *App) Mode() Mode {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.mode
}

func (a *App) setMode(mode Mode) {
	a.mu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.mu.Unlock()

	if changed {
		a.log.Info(context.Background(), "connectivity changed", "mode", string(mode))
	}
}

// getStatus renders the prompt prefix: "(email mode) location".
func (a *App) getStatus() string {
	s := ""
	if email := a.currentEmail(); email != "" {
		s = email + " "
	}
	if m := a.Mode(); m != "" {
		s += string(m)
	}
	if s != "" {
		s = fmt.Sprintf("(%s) ", s)
	}
	return s + a.router.Location()
}
