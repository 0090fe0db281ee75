package session

import (
	"errors"
	"strings"
	"syscall"
	"testing"

	"github.com/vovakirdan/tui-snake/internal/audio"
	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
	"github.com/vovakirdan/tui-snake/internal/render"
)

type fakeStore struct {
	best  int
	saved []int
}

func (f *fakeStore) HighScore(config.Difficulty) (int, error) { return f.best, nil }

func (f *fakeStore) SaveScore(_ config.Difficulty, score, _ int) (int64, error) {
	f.saved = append(f.saved, score)
	return int64(len(f.saved)), nil
}

type fakeSounder struct {
	ok     bool
	played []audio.Sound
}

func (f *fakeSounder) Play(s audio.Sound) bool {
	f.played = append(f.played, s)
	return f.ok
}

type failingSink struct{ err error }

func (f failingSink) Apply([]render.Op) error { return f.err }

func newTestSession(t *testing.T, store Store, snd Sounder) *Session {
	t.Helper()
	s := New(Options{
		Game:       config.DefaultGameConfig(),
		Difficulty: config.DifficultyMedium,
		Settings:   config.DefaultSettings(),
		Seed:       7,
		Store:      store,
		Sound:      snd,
	})
	s.Resize(80, 24)
	return s
}

// crash replaces the round with a hooked snake worth score points and
// turns it into its own body.
func crash(t *testing.T, s *Session, score int) {
	t.Helper()
	st := snake.NewState(s.Grid(), s.rules, 1)
	st.Snake.Body = []core.Point{{X: 2, Y: 2}, {X: 3, Y: 2}, {X: 3, Y: 3}, {X: 2, Y: 3}, {X: 1, Y: 3}}
	st.Snake.Heading = core.DirLeft
	st.Food = &snake.Food{Pos: core.Point{X: 30, Y: 15}}
	st.PowerUp = nil
	st.Score = score

	muted := s.Round().Muted()
	s.round = snake.NewRoundFrom(st, 0)
	s.round.SetMuted(muted)

	s.HandleAction(core.ActionDown)
	s.Tick()
	if s.Round().Status() != snake.StatusGameOver {
		t.Fatal("snake did not crash")
	}
}

func TestSessionOutcomes(t *testing.T) {
	tests := []struct {
		action   core.Action
		expected Outcome
	}{
		{core.ActionQuit, OutcomeQuit},
		{core.ActionMenu, OutcomeMenu},
		{core.ActionPause, OutcomeNone},
	}

	for _, tc := range tests {
		t.Run(tc.action.String(), func(t *testing.T) {
			s := newTestSession(t, nil, nil)
			s.HandleAction(tc.action)
			if s.Outcome() != tc.expected || s.Done() != (tc.expected != OutcomeNone) {
				t.Errorf("Outcome() = %v, Done() = %v", s.Outcome(), s.Done())
			}
		})
	}
}

func TestSessionPauseAndFocus(t *testing.T) {
	s := newTestSession(t, nil, nil)

	s.FocusLost()
	if s.Round().Status() != snake.StatusPaused {
		t.Fatal("focus loss should pause with default settings")
	}
	s.HandleAction(core.ActionPause)
	if s.Round().Status() != snake.StatusRunning {
		t.Fatal("pause key should resume")
	}

	noPause := New(Options{
		Game:     config.DefaultGameConfig(),
		Settings: config.Settings{PauseOnFocusLoss: false},
	})
	noPause.FocusLost()
	if noPause.Round().Status() != snake.StatusRunning {
		t.Error("focus loss must not pause when the setting is off")
	}
}

func TestSessionTooSmallSuspendsTicks(t *testing.T) {
	s := newTestSession(t, nil, nil)
	s.Resize(30, 10)
	if !s.TooSmall() {
		t.Fatal("30x10 should be too small")
	}

	tick := s.Round().State().Tick
	s.Tick()
	if s.Round().State().Tick != tick {
		t.Error("ticks must not advance while the terminal is too small")
	}

	sink := render.NewScreenSink(30, 10)
	if err := s.Draw(sink); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(sink.Screen.String(), "Terminal too small") {
		t.Errorf("expected size warning:\n%s", sink.Screen)
	}

	s.Resize(80, 24)
	s.Tick()
	if s.Round().State().Tick != tick+1 {
		t.Error("ticks should resume after growing the terminal")
	}
}

func TestSessionSavesScoreOnce(t *testing.T) {
	store := &fakeStore{best: 5}
	s := newTestSession(t, store, nil)

	crash(t, s, 30)
	s.Tick()
	s.Tick()
	if len(store.saved) != 1 || store.saved[0] != 30 {
		t.Errorf("saved = %v, expected [30]", store.saved)
	}

	s.HandleAction(core.ActionRestart)
	crash(t, s, 0)
	if len(store.saved) != 1 {
		t.Errorf("zero scores are not saved, got %v", store.saved)
	}
}

func TestSessionRestart(t *testing.T) {
	s := newTestSession(t, &fakeStore{}, nil)

	s.HandleAction(core.ActionRestart)
	if s.rounds != 1 {
		t.Fatal("restart is ignored while the round is running")
	}

	s.HandleAction(core.ActionMute)
	crash(t, s, 10)
	s.HandleAction(core.ActionRestart)
	if s.rounds != 2 || s.Round().Status() != snake.StatusRunning {
		t.Fatalf("restart after game over should start round 2, status %v", s.Round().Status())
	}
	if !s.Round().Muted() {
		t.Error("mute should carry over to the next round")
	}
}

func TestSessionSoundFallsBackToBell(t *testing.T) {
	snd := &fakeSounder{ok: false}
	s := newTestSession(t, nil, snd)
	crash(t, s, 10)

	if len(snd.played) == 0 || snd.played[len(snd.played)-1] != audio.SoundGameOver {
		t.Fatalf("played = %v, expected game over sound", snd.played)
	}
	sink := render.NewScreenSink(80, 24)
	if err := s.Draw(sink); err != nil {
		t.Fatal(err)
	}
	if sink.Bells != 1 {
		t.Errorf("bells = %d, expected 1", sink.Bells)
	}

	s.Draw(sink)
	if sink.Bells != 1 {
		t.Error("bell should ring once per pending sound")
	}
}

func TestSessionMutedIsSilent(t *testing.T) {
	snd := &fakeSounder{ok: true}
	s := newTestSession(t, nil, snd)
	s.HandleAction(core.ActionMute)
	crash(t, s, 10)

	if len(snd.played) != 0 {
		t.Errorf("muted session played %v", snd.played)
	}
	sink := render.NewScreenSink(80, 24)
	s.Draw(sink)
	if sink.Bells != 0 {
		t.Error("muted session must not ring the bell")
	}
}

func TestSessionDrawErrors(t *testing.T) {
	s := newTestSession(t, nil, nil)

	if err := s.Draw(failingSink{err: render.ErrFrameDropped}); err != nil {
		t.Errorf("dropped frame should not be an error, got %v", err)
	}

	sink := render.NewScreenSink(80, 24)
	s.Draw(sink)
	if !strings.Contains(sink.Screen.String(), "┌") {
		t.Error("frame after a drop should be drawn in full")
	}

	err := s.Draw(failingSink{err: syscall.EIO})
	if !errors.Is(err, syscall.EIO) {
		t.Errorf("Draw() error = %v, expected EIO", err)
	}
}
