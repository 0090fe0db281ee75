// Package session glues one player's rounds to a terminal: it turns
// actions into round commands, advances ticks, plays sounds, saves scores
// and draws frames through the incremental renderer.
package session

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-snake/internal/audio"
	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
	"github.com/vovakirdan/tui-snake/internal/layout"
	"github.com/vovakirdan/tui-snake/internal/render"
)

// Store is the score persistence the session needs.
type Store interface {
	HighScore(d config.Difficulty) (int, error)
	SaveScore(d config.Difficulty, score, length int) (int64, error)
}

// Sounder plays sound effects. Play reports false when it cannot, and the
// session rings the terminal bell instead.
type Sounder interface {
	Play(s audio.Sound) bool
}

// Outcome tells the front end why a session ended.
type Outcome int

const (
	OutcomeNone Outcome = iota // Still playing
	OutcomeQuit
	OutcomeMenu
)

// Options configures a session.
type Options struct {
	Game       config.GameConfig
	Difficulty config.Difficulty
	Settings   config.Settings
	Seed       uint64
	Store      Store   // Nil disables high scores
	Sound      Sounder // Nil always falls back to the bell
	Logger     *log.Logger
}

// Session runs consecutive rounds at one difficulty.
type Session struct {
	opts     Options
	grid     core.Grid
	rules    snake.Rules
	round    *snake.Round
	rounds   int
	renderer *render.Renderer
	lay      layout.Layout
	sizeErr  *layout.SizeError
	termW    int
	termH    int
	muted    bool
	saved    bool
	bell     bool
	outcome  Outcome
	logger   *log.Logger
}

// New creates a session and starts its first round. Call Resize before
// the first Draw.
func New(opts Options) *Session {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	s := &Session{
		opts:     opts,
		grid:     core.NewGrid(opts.Game.Board.Width, opts.Game.Board.Height),
		rules:    snake.NewRules(opts.Game, opts.Difficulty),
		renderer: render.New(),
		muted:    !opts.Settings.SoundOn,
		logger:   logger,
	}
	s.startRound()
	return s
}

func (s *Session) startRound() {
	best := 0
	if s.opts.Store != nil {
		b, err := s.opts.Store.HighScore(s.opts.Difficulty)
		if err != nil {
			s.logger.Warn("cannot load high score", "difficulty", s.opts.Difficulty, "err", err)
		}
		best = b
	}

	seed := s.opts.Seed + uint64(s.rounds)
	s.rounds++
	s.round = snake.NewRound(s.grid, s.rules, seed, best)
	s.round.SetMuted(s.muted)
	s.saved = false
	s.renderer.Invalidate()

	s.logger.Debug("round started", "difficulty", s.opts.Difficulty, "seed", seed, "best", best)
}

// Round returns the current round.
func (s *Session) Round() *snake.Round {
	return s.round
}

// Difficulty returns the session's difficulty.
func (s *Session) Difficulty() config.Difficulty {
	return s.opts.Difficulty
}

// Grid returns the board size.
func (s *Session) Grid() core.Grid {
	return s.grid
}

// Resize recomputes the layout for a new terminal size. A terminal that is
// too small suspends ticking until it grows again.
func (s *Session) Resize(w, h int) {
	s.termW, s.termH = w, h
	s.renderer.Invalidate()

	lay, err := layout.Compute(w, h, s.grid)
	var se *layout.SizeError
	if errors.As(err, &se) {
		s.sizeErr = se
		return
	}
	s.sizeErr = nil
	s.lay = lay
}

// TooSmall reports whether the terminal cannot hold the board.
func (s *Session) TooSmall() bool {
	return s.sizeErr != nil
}

// HandleAction applies a player action.
func (s *Session) HandleAction(a core.Action) {
	if d, ok := a.Direction(); ok {
		s.round.Enqueue(d)
		return
	}

	switch a {
	case core.ActionQuit:
		s.outcome = OutcomeQuit
	case core.ActionMenu:
		s.outcome = OutcomeMenu
	case core.ActionPause:
		s.round.TogglePause()
	case core.ActionMute:
		s.muted = s.round.ToggleMute()
	case core.ActionRestart:
		if s.round.Status() != snake.StatusRunning {
			s.startRound()
		}
	}
}

// FocusLost pauses the round when the settings ask for it.
func (s *Session) FocusLost() {
	if s.opts.Settings.PauseOnFocusLoss {
		s.round.Pause()
	}
}

// Tick advances the round once. Nothing happens while the terminal is
// too small.
func (s *Session) Tick() {
	if s.sizeErr != nil {
		return
	}

	for _, ev := range s.round.Tick() {
		switch ev.Kind {
		case snake.EventAteFood:
			s.play(audio.SoundEat)
		case snake.EventPowerUp:
			s.play(audio.SoundPowerUp)
			s.logger.Debug("power-up collected", "kind", ev.PowerUp)
		case snake.EventNewHighScore:
			s.play(audio.SoundHighScore)
		case snake.EventGameOver:
			s.play(audio.SoundGameOver)
			s.finishRound()
		}
	}
}

func (s *Session) play(snd audio.Sound) {
	if s.muted {
		return
	}
	if s.opts.Sound == nil || !s.opts.Sound.Play(snd) {
		s.bell = true
	}
}

// finishRound saves the score once per round.
func (s *Session) finishRound() {
	if s.saved {
		return
	}
	s.saved = true

	st := s.round.State()
	s.logger.Info("game over", "difficulty", s.opts.Difficulty, "score", st.Score,
		"length", st.Snake.Len(), "ticks", st.Tick, "new_best", s.round.NewBest())
	s.logger.Debug("final state", "snapshot", s.round.Snapshot())

	if s.opts.Store == nil || st.Score == 0 {
		return
	}
	if _, err := s.opts.Store.SaveScore(s.opts.Difficulty, st.Score, st.Snake.Len()); err != nil {
		// Best-effort save, the game continues regardless
		s.logger.Error("cannot save score", "err", err)
	}
}

// Interval returns the delay before the next tick.
func (s *Session) Interval() time.Duration {
	return s.round.Interval()
}

// Draw renders the current view into sink. A dropped frame is not an
// error: the next Draw repaints everything.
func (s *Session) Draw(sink render.Sink) error {
	var ops []render.Op
	if s.sizeErr != nil {
		ops = s.renderer.RenderMessage(s.sizeErr.Lines(), s.termW, s.termH)
	} else {
		ops = s.renderer.Render(s.round.Frame(), s.lay)
	}
	if s.bell {
		ops = append(ops, render.Op{Kind: render.OpBell})
		s.bell = false
	}

	err := sink.Apply(ops)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, render.ErrFrameDropped):
		s.renderer.Invalidate()
		return nil
	default:
		s.renderer.Invalidate()
		return fmt.Errorf("session: draw: %w", err)
	}
}

// Invalidate forces the next Draw to repaint everything.
func (s *Session) Invalidate() {
	s.renderer.Invalidate()
}

// Done reports whether the player asked to leave.
func (s *Session) Done() bool {
	return s.outcome != OutcomeNone
}

// Outcome returns why the session ended.
func (s *Session) Outcome() Outcome {
	return s.outcome
}

// Logger returns the session logger.
func (s *Session) Logger() *log.Logger {
	return s.logger
}
