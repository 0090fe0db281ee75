package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/session"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.tui-snake/host_key.
	HostKeyPath string

	// DBPath is the path to the scores database.
	DBPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// Game is the tuning every SSH session plays with.
	Game config.GameConfig

	// Settings are the server-side defaults. Sound is always off: the
	// server cannot play audio on the client.
	Settings config.Settings

	// Seed fixes the first round of every session when non-zero.
	Seed uint64
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		DBPath:      storage.DefaultPath,
		IdleTimeout: 30 * time.Minute,
		Game:        config.DefaultGameConfig(),
		Settings:    config.DefaultSettings(),
	}
}

// SSHServer wraps a Wish SSH server that hosts single-player games.
// Connections share only the score database.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	store  *storage.Store
	logger *log.Logger
}

// NewSSHServer creates a new SSH server with the given configuration.
func NewSSHServer(cfg SSHServerConfig, logger *log.Logger) (*SSHServer, error) {
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "snake-ssh",
		})
	}

	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		logger.Warn("could not open scores database", "error", err)
		// Continue without storage
		store = nil
	}

	srv := &SSHServer{
		config: cfg,
		store:  store,
		logger: logger,
	}

	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		dir := config.AppDir()
		if dir == "" {
			return nil, errors.New("tui: cannot get home directory for host key")
		}
		hostKeyPath = filepath.Join(dir, "host_key")
	}

	hostKeyDir := filepath.Dir(hostKeyPath)
	if mkdirErr := os.MkdirAll(hostKeyDir, 0o700); mkdirErr != nil {
		return nil, fmt.Errorf("tui: cannot create host key directory: %w", mkdirErr)
	}

	opts := []ssh.Option{
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	}

	server, err := wish.NewServer(opts...)
	if err != nil {
		if store != nil {
			store.Close()
		}
		return nil, fmt.Errorf("tui: cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// teaHandler creates a Bubble Tea program for each SSH session.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		return nil, nil
	}

	settings := s.config.Settings
	settings.SoundOn = false

	model := NewAppModel(AppOptions{
		Game:     s.config.Game,
		Settings: settings,
		Seed:     s.config.Seed,
		Store:    s.store,
		Logger:   s.logger.With("user", sshSession.User()),
		Bell:     sshSession,
		Width:    pty.Window.Width,
		Height:   pty.Window.Height,
	})

	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithReportFocus(),
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

// ListenAndServe starts the SSH server and blocks until ctx is cancelled
// or the process is interrupted.
func (s *SSHServer) ListenAndServe(ctx context.Context) error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(done)

	errc := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			errc <- err
		}
	}()

	select {
	case <-done:
	case <-ctx.Done():
	case err := <-errc:
		s.logger.Error("server error", "error", err)
		//nolint:errcheck // Already failing, the listen error matters more
		s.Shutdown()
		return fmt.Errorf("tui: ssh server: %w", err)
	}

	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := s.server.Shutdown(ctx)
	if s.store != nil {
		s.store.Close()
		s.store = nil
	}
	return err
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}

// AppOptions configures an AppModel.
type AppOptions struct {
	Game     config.GameConfig
	Settings config.Settings
	Seed     uint64
	Store    *storage.Store // Nil disables high scores
	Logger   *log.Logger
	Bell     io.Writer // Receives BEL bytes; nil mutes the fallback bell
	Width    int
	Height   int
}

type appScreen int

const (
	screenMenu appScreen = iota
	screenGame
	screenScores
)

// AppModel runs the whole flow in one program: menu, game, high scores
// and back. It is the top-level model for SSH sessions, where each
// connection gets exactly one program.
type AppModel struct {
	opts       AppOptions
	screen     appScreen
	difficulty config.Difficulty
	menu       MenuModel
	game       GameModel
	scores     ScoreboardModel
	games      int
	width      int
	height     int
	quitting   bool
}

// NewAppModel creates an app model showing the menu.
func NewAppModel(opts AppOptions) AppModel {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	m := AppModel{
		opts:       opts,
		difficulty: opts.Settings.DefaultDifficulty,
		width:      opts.Width,
		height:     opts.Height,
	}
	m.menu = m.newMenu()
	return m
}

func (m AppModel) newMenu() MenuModel {
	best := make(map[config.Difficulty]int)
	if m.opts.Store != nil {
		for _, d := range config.Difficulties() {
			if b, err := m.opts.Store.HighScore(d); err == nil {
				best[d] = b
			}
		}
	}
	return NewMenuModel(m.difficulty, best, false, m.width, m.height)
}

func (m AppModel) sessionStore() session.Store {
	if m.opts.Store == nil {
		return nil
	}
	return m.opts.Store
}

func (m AppModel) scoreSource() ScoreSource {
	if m.opts.Store == nil {
		return nil
	}
	return m.opts.Store
}

// Init initializes the app.
func (m AppModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update routes messages to the active screen.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = wsm.Width
		m.height = wsm.Height
	}

	switch m.screen {
	case screenGame:
		return m.updateGame(msg)
	case screenScores:
		return m.updateScores(msg)
	default:
		return m.updateMenu(msg)
	}
}

func (m AppModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.menu.Update(msg)
	if mm, ok := next.(MenuModel); ok {
		m.menu = mm
	}
	m.difficulty = m.menu.Difficulty()

	switch m.menu.Choice() {
	case ChoiceQuit:
		m.quitting = true
		return m, tea.Quit

	case ChoicePlay:
		return m.startGame()

	case ChoiceScores:
		m.scores = NewScoreboardModel(m.scoreSource(), m.difficulty, m.width, m.height)
		m.screen = screenScores
		return m, m.scores.Init()
	}

	return m, cmd
}

func (m AppModel) startGame() (tea.Model, tea.Cmd) {
	seed := m.opts.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	} else {
		seed += uint64(m.games) << 16
	}

	s := session.New(session.Options{
		Game:       m.opts.Game,
		Difficulty: m.difficulty,
		Settings:   m.opts.Settings,
		Seed:       seed,
		Store:      m.sessionStore(),
		Logger:     m.opts.Logger,
	})

	m.games++
	m.game = NewGameModel(s, m.games, m.width, m.height).WithBell(m.opts.Bell)
	m.screen = screenGame
	return m, m.game.Init()
}

func (m AppModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.game.Update(msg)
	if gm, ok := next.(GameModel); ok {
		m.game = gm
	}

	s := m.game.Session()
	if m.game.Err() != nil {
		m.opts.Logger.Error("game stopped", "err", m.game.Err())
		m.quitting = true
		return m, tea.Quit
	}
	if !s.Done() {
		return m, cmd
	}

	if s.Outcome() == session.OutcomeQuit {
		m.quitting = true
		return m, tea.Quit
	}
	m.menu = m.newMenu()
	m.screen = screenMenu
	return m, m.menu.Init()
}

func (m AppModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.scores.Update(msg)
	if sm, ok := next.(ScoreboardModel); ok {
		m.scores = sm
	}

	if m.scores.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.scores.IsGoingBack() {
		m.difficulty = m.scores.Difficulty()
		m.menu = m.newMenu()
		m.screen = screenMenu
		return m, m.menu.Init()
	}
	return m, cmd
}

// View renders the active screen.
func (m AppModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case screenGame:
		return m.game.View()
	case screenScores:
		return m.scores.View()
	default:
		return m.menu.View()
	}
}
