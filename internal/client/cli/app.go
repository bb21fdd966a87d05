package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/mindcare/internal/client/client"
	"github.com/dmitrijs2005/mindcare/internal/client/config"
	"github.com/dmitrijs2005/mindcare/internal/client/guard"
	"github.com/dmitrijs2005/mindcare/internal/client/repositories/storage"
	"github.com/dmitrijs2005/mindcare/internal/client/services"
	"github.com/dmitrijs2005/mindcare/internal/client/session"
	"github.com/dmitrijs2005/mindcare/internal/client/stores"
	"github.com/dmitrijs2005/mindcare/internal/common"
	"github.com/dmitrijs2005/mindcare/internal/filex"
	"github.com/dmitrijs2005/mindcare/internal/logging"
)

type App struct {
	config    *config.Config
	logger    logging.Logger
	session   *session.Store
	stores    *stores.Set
	auth      services.AuthService
	dashboard services.DashboardService
	guard     *guard.Guard
	reader    *bufio.Reader
	out       io.Writer
	now       func() time.Time
	closers   []func() error

	mu       sync.Mutex
	path     string
	returnTo string

	// background work started by forced logouts
	bg sync.WaitGroup
}

// NewApp opens the session storage named in c and wires the API client,
// stores and services on top of it. The returned App reads stdin and writes
// stdout; call Close when done.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger, syncLogger, err := newLogger(c)
	if err != nil {
		return nil, err
	}

	if err := filex.EnsureParentDir(c.StoragePath); err != nil {
		return nil, err
	}
	db, err := storage.Open(ctx, c.StoragePath)
	if err != nil {
		logger.Error(ctx, "error initializing database", "error", err)
		return nil, err
	}

	var repo storage.Repository = storage.NewSQLiteRepository(db)
	if c.StorageSecret != "" {
		secret := []byte(c.StorageSecret)
		sealed, err := storage.NewSealedRepository(ctx, repo, secret)
		common.WipeByteArray(secret)
		if err != nil {
			_ = db.Close()
			return nil, err
		}
		repo = sealed
	}

	a := newApp(c, repo, logger, os.Stdin, os.Stdout)
	a.closers = append(a.closers, db.Close, syncLogger)
	return a, nil
}

func newApp(c *config.Config, repo storage.Repository, logger logging.Logger, in io.Reader, out io.Writer) *App {
	sess := session.NewStore(repo)
	base := client.NewBaseClient(c.APIBaseURL, sess,
		client.WithTimeout(c.RequestTimeout),
		client.WithLogger(logger),
	)
	api := client.New(base)
	set := stores.NewSet(api)

	a := &App{
		config:    c,
		logger:    logger,
		session:   sess,
		stores:    set,
		auth:      services.NewAuthService(api.Auth, sess, logger),
		dashboard: services.NewDashboardService(set),
		guard:     guard.Default(),
		reader:    bufio.NewReader(in),
		out:       out,
		now:       time.Now,
		path:      guard.PathHome,
	}
	base.OnLogout(a.onForcedLogout)
	return a
}

// newLogger picks the logging backend from the config. The returned func
// flushes buffered entries.
func newLogger(c *config.Config) (logging.Logger, func() error, error) {
	switch strings.ToLower(c.LogBackend) {
	case "zap":
		l, err := logging.NewProductionZapLogger(c.LogLevel)
		if err != nil {
			return nil, nil, fmt.Errorf("init zap logger: %w", err)
		}
		return l, l.Sync, nil
	case "", "slog":
		return logging.NewTextSlogLogger(os.Stderr, c.LogLevel), func() error { return nil }, nil
	default:
		return nil, nil, fmt.Errorf("unknown log backend %q", c.LogBackend)
	}
}

// Run restores the saved session, opens the landing page and blocks in the
// REPL until the user exits or input ends.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	a.println("Welcome to MindCare CLI (type 'help' for commands)")

	s, err := a.auth.Restore(ctx)
	if err != nil {
		a.logger.Warn(ctx, "restore session failed", "error", err)
	}
	if s.IsAuthenticated {
		a.println(fmt.Sprintf("Welcome back, %s", displayName(*s.User)))
		_ = a.Navigate(ctx, guard.Home(s.Role()))
	} else {
		_ = a.Navigate(ctx, guard.PathHome)
	}

	runREPL(ctx, a, a.getStatus, a.reader)
}

// Close waits for background work and releases storage and logger.
func (a *App) Close() error {
	a.stores.Programs.Wait()
	a.bg.Wait()
	var firstErr error
	for _, c := range a.closers {
		if err := c(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	a.closers = nil
	return firstErr
}

func (a *App) isLoggedIn() bool {
	return a.session.Snapshot().IsAuthenticated
}

func (a *App) currentPath() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.path
}

func (a *App) setPath(path string) {
	a.mu.Lock()
	a.path = path
	a.mu.Unlock()
}

// getStatus renders the prompt prefix: user, role and current page.
func (a *App) getStatus() string {
	s := a.session.Snapshot()
	if !s.IsAuthenticated || s.User == nil {
		return a.currentPath()
	}
	return fmt.Sprintf("(%s %s) %s", s.User.Email, s.User.Role, a.currentPath())
}

// onForcedLogout runs when the API client ends the session after a failed
// token refresh. It may be called from a store's background goroutine, so
// the store reset runs on its own goroutine.
func (a *App) onForcedLogout(cause error) {
	a.logger.Warn(context.Background(), "session ended", "error", cause)
	a.println(warnText("Your session has expired, please log in again."))

	a.mu.Lock()
	if a.path != guard.PathLogin {
		a.returnTo = a.path
	}
	a.path = guard.PathLogin
	a.mu.Unlock()

	a.bg.Add(1)
	go func() {
		defer a.bg.Done()
		a.stores.Reset()
	}()
}

func (a *App) println(args ...any) {
	a.mu.Lock()
	defer a.mu.Unlock()
	fmt.Fprintln(a.out, args...)
}

// fail reports err to the user and returns it unchanged.
func (a *App) fail(ctx context.Context, op string, err error) error {
	a.logger.Debug(ctx, "command failed", "command", op, "error", err)
	a.println(errorText(client.Message(err)))
	return err
}
