package snake

import (
	"slices"
	"testing"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
)

func TestDeterminism(t *testing.T) {
	// Two rounds with the same seed and inputs should stay identical.
	grid := core.NewGrid(38, 18)
	rules := DefaultRules(config.DifficultyExtreme)
	rules.Profile.SpawnChance = 0.2

	r1 := NewRound(grid, rules, 12345, 0)
	r2 := NewRound(grid, rules, 12345, 0)

	inputs := map[int]core.Direction{
		20: core.DirDown,
		40: core.DirLeft,
		60: core.DirUp,
		80: core.DirRight,
	}
	for i := range 200 {
		if d, ok := inputs[i]; ok {
			r1.Enqueue(d)
			r2.Enqueue(d)
		}
		r1.Tick()
		r2.Tick()
	}

	if s1, s2 := r1.Snapshot(), r2.Snapshot(); s1 != s2 {
		t.Errorf("snapshots diverged:\n%+v\n%+v", s1, s2)
	}
}

func TestRoundDifferentSeedsDiffer(t *testing.T) {
	grid := core.NewGrid(38, 18)
	rules := DefaultRules(config.DifficultyMedium)
	a := NewRound(grid, rules, 1, 0).Snapshot()
	b := NewRound(grid, rules, 2, 0).Snapshot()
	c := NewRound(grid, rules, 3, 0).Snapshot()
	if a.Food == b.Food && b.Food == c.Food {
		t.Error("three seeds placed the first food on the same cell")
	}
}

func TestRoundPause(t *testing.T) {
	r := NewRound(core.NewGrid(20, 10), DefaultRules(config.DifficultyMedium), 1, 0)

	r.TogglePause()
	if r.Status() != StatusPaused {
		t.Fatalf("status = %v, expected paused", r.Status())
	}
	before := r.Snapshot()
	if events := r.Tick(); events != nil {
		t.Errorf("paused Tick returned %v", events)
	}
	if r.Snapshot() != before {
		t.Error("paused Tick changed the round")
	}
	if r.Enqueue(core.DirUp) {
		t.Error("turns should be ignored while paused")
	}

	r.TogglePause()
	if r.Status() != StatusRunning {
		t.Fatalf("status = %v, expected running", r.Status())
	}
	r.Tick()
	if r.Snapshot().Tick != before.Tick+1 {
		t.Error("resumed round should advance")
	}

	r.Pause()
	r.Pause()
	if r.Status() != StatusPaused {
		t.Error("Pause should be idempotent")
	}
}

func TestRoundGameOver(t *testing.T) {
	r := NewRound(core.NewGrid(10, 8), DefaultRules(config.DifficultyMedium), 1, 0)
	r.state = testState(t, []core.Point{{X: 2, Y: 2}, {X: 3, Y: 2}, {X: 3, Y: 3}, {X: 2, Y: 3}, {X: 1, Y: 3}}, core.DirLeft)
	r.Enqueue(core.DirDown)

	events := r.Tick()
	if !slices.Contains(events, Event{Kind: EventGameOver}) {
		t.Fatalf("events = %v, expected game_over", events)
	}
	if r.Status() != StatusGameOver {
		t.Errorf("status = %v, expected game_over", r.Status())
	}

	r.TogglePause()
	if r.Status() != StatusGameOver {
		t.Error("pause must not leave game over")
	}
	if r.Tick() != nil {
		t.Error("Tick after game over should do nothing")
	}

	f := r.Frame()
	if len(f.Overlay) == 0 || f.Overlay[0] != "GAME OVER" {
		t.Errorf("overlay = %q, expected game over panel", f.Overlay)
	}
}

func TestRoundNewHighScoreOnce(t *testing.T) {
	r := NewRound(core.NewGrid(10, 8), DefaultRules(config.DifficultyMedium), 1, 15)
	r.state = testState(t, straight(), core.DirRight)

	eat := func() []Event {
		head := r.state.Snake.Head()
		r.state.Food = &Food{Pos: r.state.Grid.Move(head, r.state.Snake.Heading)}
		return r.Tick()
	}

	if events := eat(); slices.Contains(events, Event{Kind: EventNewHighScore}) {
		t.Fatal("score 10 does not beat 15")
	}
	if events := eat(); !slices.Contains(events, Event{Kind: EventNewHighScore}) {
		t.Fatalf("score 20 beats 15, events = %v", events)
	}
	if events := eat(); slices.Contains(events, Event{Kind: EventNewHighScore}) {
		t.Error("new high score should be reported once")
	}
	if !r.NewBest() || r.Best() != 30 {
		t.Errorf("NewBest() = %v, Best() = %d; expected true, 30", r.NewBest(), r.Best())
	}
}

func TestRoundMute(t *testing.T) {
	r := NewRound(core.NewGrid(10, 8), DefaultRules(config.DifficultyEasy), 1, 0)
	if r.Muted() {
		t.Fatal("new round should not be muted")
	}
	if !r.ToggleMute() || !r.Frame().HUD.Muted {
		t.Error("ToggleMute should mute and show it in the HUD")
	}
	r.SetMuted(false)
	if r.Muted() {
		t.Error("SetMuted(false) should unmute")
	}
}

func TestRoundFrame(t *testing.T) {
	r := NewRound(core.NewGrid(10, 8), DefaultRules(config.DifficultyHard), 1, 70)
	r.state = testState(t, straight(), core.DirRight)
	r.state.Rules.Difficulty = config.DifficultyHard
	r.state.PowerUp = &PowerUp{Kind: PowerUpShrink, Pos: core.Point{X: 0, Y: 0}}
	r.state.Effect = &ActiveEffect{Kind: PowerUpSpeedBoost, TicksLeft: 9}

	f := r.Frame()

	if f.Width != 10 || f.Height != 8 {
		t.Fatalf("frame size = %dx%d, expected 10x8", f.Width, f.Height)
	}
	checks := []struct {
		p    core.Point
		want rune
	}{
		{core.Point{X: 5, Y: 4}, GlyphHead},
		{core.Point{X: 4, Y: 4}, GlyphBody},
		{core.Point{X: 3, Y: 4}, GlyphBody},
		{core.Point{X: 9, Y: 7}, '●'},
		{core.Point{X: 0, Y: 0}, '-'},
		{core.Point{X: 1, Y: 1}, ' '},
	}
	for _, c := range checks {
		if got := f.At(c.p).Rune; got != c.want {
			t.Errorf("cell %v = %q, expected %q", c.p, got, c.want)
		}
	}
	if f.At(core.Point{X: 5, Y: 4}).Color != core.ColorBrightGreen {
		t.Error("head should be bright green")
	}

	h := f.HUD
	if h.Difficulty != "Hard" || h.Best != 70 || h.Effect != "Speed" || h.EffectTicks != 9 || h.PacePercent != 100 {
		t.Errorf("HUD = %+v", h)
	}
	if f.Overlay != nil {
		t.Errorf("running round should have no overlay, got %q", f.Overlay)
	}
}
