package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/Slepzs/oizys-keres/internal/core"
	"github.com/Slepzs/oizys-keres/internal/session"
	"github.com/Slepzs/oizys-keres/internal/sim"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.oizys/host_key.
	HostKeyPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// Runtime is the view configuration; screen size comes from the PTY.
	Runtime core.RuntimeConfig
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		IdleTimeout: 30 * time.Minute,
		Runtime:     core.DefaultConfig(),
	}
}

// liveGame is one user's session shared by all of their connections.
type liveGame struct {
	sess  *session.Session
	conns int
}

// SSHServer serves one persistent game per SSH user. Each user plays the
// save slot "ssh:<user>"; several connections by the same user share a
// single live session.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	engine *sim.Engine
	store  session.Store
	logger *log.Logger
	clock  func() time.Time

	mu    sync.Mutex
	games map[string]*liveGame
}

// NewSSHServer creates a new SSH server with the given configuration.
// store may be nil, in which case games are not persisted.
func NewSSHServer(cfg SSHServerConfig, engine *sim.Engine, store session.Store, logger *log.Logger) (*SSHServer, error) {
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "oizys-ssh",
		})
	}

	srv := &SSHServer{
		config: cfg,
		engine: engine,
		store:  store,
		logger: logger,
		clock:  time.Now,
		games:  make(map[string]*liveGame),
	}

	// Resolve host key path
	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return nil, fmt.Errorf("cannot get home directory: %w", homeErr)
		}
		hostKeyPath = filepath.Join(home, ".oizys", "host_key")
	}

	// Ensure host key directory exists
	hostKeyDir := filepath.Dir(hostKeyPath)
	if mkdirErr := os.MkdirAll(hostKeyDir, 0o700); mkdirErr != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", mkdirErr)
	}

	// Middleware runs last to first: log, then attach the game, then the UI.
	opts := []ssh.Option{
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.gameMiddleware,
			srv.loggingMiddleware,
		),
	}

	server, err := wish.NewServer(opts...)
	if err != nil {
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// SlotFor returns the save slot an SSH user plays.
func SlotFor(user string) string {
	return "ssh:" + user
}

// acquire returns the user's live game, loading it on first connection.
// Only the first connection receives the offline catch-up.
func (s *SSHServer) acquire(user string) (*session.Session, sim.OfflineResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if g, ok := s.games[user]; ok {
		g.conns++
		return g.sess, sim.OfflineResult{}, nil
	}

	sess := session.New(s.engine, s.store, session.Options{
		Slot:   SlotFor(user),
		Seed:   s.config.Runtime.Seed,
		Logger: s.logger,
	})
	offline, err := sess.Load(s.clock().UnixMilli())
	if err != nil {
		return nil, sim.OfflineResult{}, err
	}
	s.games[user] = &liveGame{sess: sess, conns: 1}
	return sess, offline, nil
}

// release drops one connection and saves the game when it was the last.
func (s *SSHServer) release(user string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, ok := s.games[user]
	if !ok {
		return
	}
	g.conns--
	if g.conns > 0 {
		return
	}
	if err := g.sess.Save(); err != nil {
		s.logger.Error("save failed", "user", user, "error", err)
	}
	delete(s.games, user)
}

type contextKey struct{}

// connection is what gameMiddleware hands the tea handler.
type connection struct {
	sess    *session.Session
	offline sim.OfflineResult
}

// teaHandler creates a Bubble Tea program for each SSH session.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		return nil, nil
	}
	conn, ok := sshSession.Context().Value(contextKey{}).(connection)
	if !ok {
		return nil, nil
	}

	cfg := s.config.Runtime
	cfg.ScreenW = pty.Window.Width
	cfg.ScreenH = pty.Window.Height
	cfg.Slot = conn.sess.Slot()

	return NewModel(conn.sess, cfg, conn.offline), []tea.ProgramOption{
		tea.WithAltScreen(),
	}
}

// gameMiddleware attaches the user's game to the connection and hands it
// back when the connection ends.
func (s *SSHServer) gameMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		user := sshSession.User()
		sess, offline, err := s.acquire(user)
		if err != nil {
			s.logger.Error("cannot load game", "user", user, "error", err)
			wish.Fatalln(sshSession, "cannot load your game, try again later")
			return
		}
		sshSession.Context().SetValue(contextKey{}, connection{sess: sess, offline: offline})
		next(sshSession)
		s.release(user)
	}
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		s.logger.Info("session started",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
		next(sshSession)
		s.logger.Info("session ended",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
	}
}

// ListenAndServe starts the SSH server and blocks until shutdown.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	// Setup signal handling for graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			s.logger.Error("server error", "error", err)
		}
	}()

	<-done
	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown saves every live game and stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	s.mu.Lock()
	for user, g := range s.games {
		if err := g.sess.Save(); err != nil {
			s.logger.Error("save failed", "user", user, "error", err)
		}
	}
	s.mu.Unlock()

	return s.server.Shutdown(ctx)
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}
