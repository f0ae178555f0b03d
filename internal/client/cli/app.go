package cli

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/openticket/openticket/internal/client/client"
	"github.com/openticket/openticket/internal/client/config"
	"github.com/openticket/openticket/internal/client/services"
	"github.com/openticket/openticket/internal/client/session"
	"github.com/openticket/openticket/internal/client/tui"
	"github.com/openticket/openticket/internal/filex"
	"github.com/openticket/openticket/internal/logging"
	"golang.org/x/term"
)

var ErrNotTerminal = errors.New("openticket needs an interactive terminal")

// isTerminal is a test seam for term.IsTerminal.
var isTerminal = term.IsTerminal

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

type App struct {
	config        *config.Config
	log           logging.Logger
	logCloser     io.Closer
	db            *sql.DB
	authService   services.AuthService
	ticketService services.TicketService
	gate          *session.Gate

	mu     sync.Mutex
	Mode   Mode
	notify func(Mode)
}

// NewApp prepares the data directory, opens the log file and the session
// database and wires the services around one HTTP client.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	dir, err := filex.EnsureDir(c.DataDir)
	if err != nil {
		return nil, fmt.Errorf("error preparing data dir: %w", err)
	}
	c.DataDir = dir

	level, err := logging.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, err
	}
	logger, logCloser, err := logging.OpenFile(c.LogPath(), level)
	if err != nil {
		return nil, err
	}

	db, err := client.InitDatabase(ctx, c.DatabasePath())
	if err != nil {
		_ = logCloser.Close()
		return nil, fmt.Errorf("error initializing database: %w", err)
	}

	apiClient := client.NewHTTPClient(c.ServerURL, c.RequestTimeout, logger)

	authService := services.NewAuthService(apiClient, db, apiClient.BaseURL())

	logger.Info(ctx, "client started", "server", apiClient.BaseURL(), "data_dir", dir)

	return &App{
		config:        c,
		log:           logger,
		logCloser:     logCloser,
		db:            db,
		authService:   authService,
		ticketService: services.NewTicketService(apiClient),
		gate:          session.NewGate(authService, logger),
		Mode:          ModeOnline,
	}, nil
}

func (a *App) setMode(mode Mode) {
	a.mu.Lock()
	if a.Mode == mode {
		a.mu.Unlock()
		return
	}
	a.Mode = mode
	notify := a.notify
	a.mu.Unlock()

	a.log.Info(context.Background(), "connectivity changed", "mode", string(mode))
	if notify != nil {
		notify(mode)
	}
}

// Run restores a persisted session and runs the terminal UI until the user
// quits or ctx is canceled.
func (a *App) Run(ctx context.Context) error {
	defer a.Close()

	if !isTerminal(int(os.Stdin.Fd())) {
		return ErrNotTerminal
	}

	if restored, err := a.authService.RestoreSession(ctx); err != nil {
		a.log.Warn(ctx, "restoring session", "error", err)
	} else if restored {
		a.log.Info(ctx, "restored persisted session")
	}

	model := tui.NewModel(ctx, a.gate, a.authService, a.ticketService, a.log)
	p := tea.NewProgram(model, tea.WithContext(ctx), tea.WithAltScreen())

	a.mu.Lock()
	a.notify = func(mode Mode) { p.Send(tui.OnlineMsg{Online: mode == ModeOnline}) }
	a.mu.Unlock()

	watchCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go a.StartOnlineStatusWatcher(watchCtx, a.config.OnlineCheckInterval)

	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}
	return nil
}

// Close releases the database and the log file.
func (a *App) Close() {
	if a.db != nil {
		_ = a.db.Close()
	}
	if a.logCloser != nil {
		_ = a.logCloser.Close()
	}
}

func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.checkOnline(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (a *App) checkOnline(ctx context.Context) {
	timeout := a.config.RequestTimeout
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	err := a.authService.Ping(pingCtx)
	cancel()

	if err != nil {
		a.setMode(ModeOffline)
	} else {
		a.setMode(ModeOnline)
	}
}
