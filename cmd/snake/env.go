package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-snake/internal/audio"
	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/registry"
	"github.com/vovakirdan/tui-snake/internal/session"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

// env is everything a local game needs, opened once per command.
type env struct {
	game     config.GameConfig
	settings config.Settings
	store    *storage.Store
	sound    *audio.SoundManager
	logger   *log.Logger
	logFile  *os.File
}

// newLogger creates a logger at the --log-level level.
func newLogger(w io.Writer, prefix string) (*log.Logger, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	logger.SetLevel(level)
	return logger, nil
}

// openEnv loads config and settings, opens the database and audio, and
// logs to ~/.tui-snake/snake.log: stderr would corrupt the game screen.
func openEnv() (*env, error) {
	e := &env{}

	var w io.Writer = io.Discard
	if dir := config.AppDir(); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err == nil {
			f, err := os.OpenFile(filepath.Join(dir, "snake.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
			if err == nil {
				e.logFile = f
				w = f
			}
		}
	}
	logger, err := newLogger(w, "snake")
	if err != nil {
		e.close()
		return nil, err
	}
	e.logger = logger

	e.game, err = config.Load(flagConfig)
	if err != nil {
		e.close()
		return nil, err
	}

	e.settings, err = config.LoadSettings(config.SettingsPath())
	if err != nil {
		// Corrupt settings fall back to defaults
		logger.Warn("cannot load settings", "err", err)
	}

	e.store, err = storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		logger.Warn("playing without high scores", "err", err)
		// Continue without storage - game still works
		e.store = nil
	}

	e.sound = audio.NewSoundManager()
	if err := e.sound.Initialize(); err != nil {
		logger.Info("audio unavailable, using the terminal bell", "err", err)
	}

	return e, nil
}

func (e *env) close() {
	if e.sound != nil {
		e.sound.Cleanup()
	}
	if e.store != nil {
		e.store.Close()
	}
	if e.logFile != nil {
		e.logFile.Close()
	}
}

// seed returns --seed or a clock-derived seed.
func seed() uint64 {
	if flagSeed != 0 {
		return flagSeed
	}
	return uint64(time.Now().UnixNano())
}

// newSession creates a session at difficulty d.
func (e *env) newSession(d config.Difficulty) *session.Session {
	opts := session.Options{
		Game:       e.game,
		Difficulty: d,
		Settings:   e.settings,
		Seed:       seed(),
		Logger:     e.logger,
	}
	if e.store != nil {
		opts.Store = e.store
	}
	if e.sound.Available() {
		opts.Sound = e.sound
	}
	return session.New(opts)
}

// bestScores returns the high score per difficulty.
func (e *env) bestScores() map[config.Difficulty]int {
	best := make(map[config.Difficulty]int)
	if e.store == nil {
		return best
	}
	for _, d := range config.Difficulties() {
		if b, err := e.store.HighScore(d); err == nil {
			best[d] = b
		}
	}
	return best
}

// play runs one session on the named renderer and reports how it ended.
func (e *env) play(ctx context.Context, rendererID string, d config.Difficulty) (session.Outcome, error) {
	runner, err := registry.Create(rendererID)
	if err != nil {
		return session.OutcomeQuit, err
	}

	s := e.newSession(d)
	e.logger.Info("session started", "renderer", rendererID, "difficulty", d)
	if err := runner.Run(ctx, s); err != nil {
		return session.OutcomeQuit, err
	}
	if ctx.Err() != nil {
		return session.OutcomeQuit, nil
	}
	return s.Outcome(), nil
}

// signalContext is cancelled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}
