package snake

import (
	"math/rand/v2"
	"reflect"
	"slices"
	"testing"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
)

// testState builds a 10x8 Medium state with the given body, food parked in
// the bottom-right corner and power-up spawning disabled.
func testState(t *testing.T, body []core.Point, heading core.Direction) State {
	t.Helper()
	rules := DefaultRules(config.DifficultyMedium)
	rules.Profile.SpawnChance = 0
	rules.Profile.RespawnChance = 0

	s := NewState(core.NewGrid(10, 8), rules, 1)
	s.Snake.Body = body
	s.Snake.Heading = heading
	s.Food = &Food{Pos: core.Point{X: 9, Y: 7}}
	s.PowerUp = nil
	return s
}

func straight() []core.Point {
	return []core.Point{{X: 5, Y: 4}, {X: 4, Y: 4}, {X: 3, Y: 4}}
}

func hasEvent(events []Event, kind EventKind) bool {
	return slices.ContainsFunc(events, func(e Event) bool { return e.Kind == kind })
}

func TestNewStateCentered(t *testing.T) {
	s := NewState(core.NewGrid(38, 18), DefaultRules(config.DifficultyMedium), 42)

	want := []core.Point{{X: 19, Y: 9}, {X: 18, Y: 9}, {X: 17, Y: 9}}
	if !slices.Equal(s.Snake.Body, want) {
		t.Errorf("body = %v, expected %v", s.Snake.Body, want)
	}
	if s.Snake.Heading != core.DirRight {
		t.Errorf("heading = %v, expected Right", s.Snake.Heading)
	}
	if s.Food == nil || s.Snake.Occupies(s.Food.Pos) {
		t.Fatalf("food %v must exist off the snake", s.Food)
	}
	if s.Food.Milestone {
		t.Error("food at score 0 is never a milestone")
	}
}

func TestAdvanceMovesRightAndWraps(t *testing.T) {
	s := NewState(core.NewGrid(38, 18), DefaultRules(config.DifficultyMedium), 42)
	s.Food = &Food{Pos: core.Point{X: 0, Y: 0}}
	s.Rules.Profile.SpawnChance = 0

	next, _ := AdvanceTick(s)
	if got := next.Snake.Head(); got != (core.Point{X: 20, Y: 9}) {
		t.Fatalf("head after one tick = %v, expected (20, 9)", got)
	}

	s = testState(t, []core.Point{{X: 9, Y: 2}, {X: 8, Y: 2}, {X: 7, Y: 2}}, core.DirRight)
	next, _ = AdvanceTick(s)
	if got := next.Snake.Head(); got != (core.Point{X: 0, Y: 2}) {
		t.Errorf("head after crossing right edge = %v, expected (0, 2)", got)
	}
	if next.Over {
		t.Error("wrapping must not end the round")
	}
}

func TestAdvanceDoesNotMutateInput(t *testing.T) {
	s := testState(t, straight(), core.DirRight)
	s.Rules.Profile.SpawnChance = 0.5
	s.Enqueue(core.DirDown)
	before := slices.Clone(s.Snake.Body)

	a, evA := AdvanceTick(s)
	b, evB := AdvanceTick(s)

	if !slices.Equal(s.Snake.Body, before) {
		t.Errorf("input body changed: %v -> %v", before, s.Snake.Body)
	}
	if s.Snake.Queue.Len() != 1 {
		t.Errorf("input queue changed: len %d", s.Snake.Queue.Len())
	}
	if !reflect.DeepEqual(a, b) || !reflect.DeepEqual(evA, evB) {
		t.Error("advancing the same state twice gave different results")
	}
}

func TestLengthConstantWithoutGrowth(t *testing.T) {
	s := testState(t, straight(), core.DirRight)
	turns := []core.Direction{core.DirDown, core.DirLeft, core.DirUp, core.DirRight}

	for i := range 12 {
		s.Enqueue(turns[i%len(turns)])
		next, events := AdvanceTick(s)
		if !hasEvent(events, EventAteFood) && next.Snake.Len() != s.Snake.Len() {
			t.Fatalf("tick %d: length %d -> %d without growth", i, s.Snake.Len(), next.Snake.Len())
		}
		s = next
	}
}

func TestEatFood(t *testing.T) {
	s := testState(t, straight(), core.DirRight)
	s.Food = &Food{Pos: core.Point{X: 6, Y: 4}}

	next, events := AdvanceTick(s)

	if !hasEvent(events, EventAteFood) {
		t.Fatalf("events = %v, expected ate_food", events)
	}
	if next.Score != s.Score+s.Rules.Scoring.Food {
		t.Errorf("score = %d, expected %d", next.Score, s.Score+s.Rules.Scoring.Food)
	}
	if next.Snake.Len() != s.Snake.Len()+1 {
		t.Errorf("length = %d, expected %d", next.Snake.Len(), s.Snake.Len()+1)
	}
	if next.Food == nil || next.Snake.Occupies(next.Food.Pos) {
		t.Errorf("respawned food %v must be off the snake", next.Food)
	}
}

func TestMilestoneFood(t *testing.T) {
	tests := []struct {
		name     string
		before   int
		expected bool
	}{
		{"reaches 50", 40, true},
		{"reaches 49", 39, false},
		{"reaches 51", 41, false},
		{"reaches 100", 90, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := testState(t, straight(), core.DirRight)
			s.Score = tc.before
			s.Food = &Food{Pos: core.Point{X: 6, Y: 4}}

			next, _ := AdvanceTick(s)
			if next.Food.Milestone != tc.expected {
				t.Errorf("score %d: milestone = %v, expected %v", next.Score, next.Food.Milestone, tc.expected)
			}
			wantGlyph := '●'
			if tc.expected {
				wantGlyph = '★'
			}
			if next.Food.Glyph() != wantGlyph {
				t.Errorf("glyph = %q, expected %q", next.Food.Glyph(), wantGlyph)
			}
		})
	}
}

func TestSelfCollision(t *testing.T) {
	// Hook shape: turning down runs into the body, not the tail.
	body := []core.Point{{X: 2, Y: 2}, {X: 3, Y: 2}, {X: 3, Y: 3}, {X: 2, Y: 3}, {X: 1, Y: 3}}
	s := testState(t, body, core.DirLeft)
	if !s.Enqueue(core.DirDown) {
		t.Fatal("turning down from left should be accepted")
	}

	next, events := AdvanceTick(s)

	if !next.Over {
		t.Fatal("expected game over")
	}
	if len(events) != 1 || events[0].Kind != EventGameOver {
		t.Errorf("events = %v, expected only game_over", events)
	}
	next.Over = false
	if !reflect.DeepEqual(next, s) {
		t.Error("collision tick changed state beyond the over flag")
	}

	next.Over = true
	after, ev := AdvanceTick(next)
	if len(ev) != 0 || after.Tick != s.Tick {
		t.Error("an over state must not advance")
	}
}

func TestTailCellIsFreeUnlessGrowing(t *testing.T) {
	square := func() []core.Point {
		return []core.Point{{X: 1, Y: 1}, {X: 2, Y: 1}, {X: 2, Y: 2}, {X: 1, Y: 2}}
	}

	s := testState(t, square(), core.DirLeft)
	s.Enqueue(core.DirDown)
	next, _ := AdvanceTick(s)
	if next.Over {
		t.Fatal("moving into the vacating tail must not collide")
	}
	if next.Snake.Head() != (core.Point{X: 1, Y: 2}) || next.Snake.Len() != 4 {
		t.Errorf("body = %v, expected head (1,2) and length 4", next.Snake.Body)
	}

	s = testState(t, square(), core.DirLeft)
	s.growth = 1
	s.Enqueue(core.DirDown)
	next, _ = AdvanceTick(s)
	if !next.Over {
		t.Error("moving into the tail while growing must collide")
	}
}

func TestPowerUpPickup(t *testing.T) {
	tests := []struct {
		name      string
		kind      PowerUpKind
		body      []core.Point
		wantLen   int
		wantScore int
	}{
		{"bonus", PowerUpBonus, straight(), 3, 50},
		{"grow keeps tail", PowerUpGrow, straight(), 4, 0},
		{"shrink respects floor", PowerUpShrink,
			[]core.Point{{X: 5, Y: 4}, {X: 4, Y: 4}, {X: 3, Y: 4}, {X: 2, Y: 4}}, 3, 0},
		{"shrink long snake", PowerUpShrink,
			[]core.Point{{X: 5, Y: 4}, {X: 4, Y: 4}, {X: 3, Y: 4}, {X: 2, Y: 4}, {X: 1, Y: 4}, {X: 0, Y: 4}}, 4, 0},
		{"speed boost", PowerUpSpeedBoost, straight(), 3, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := testState(t, tc.body, core.DirRight)
			s.PowerUp = &PowerUp{Kind: tc.kind, Pos: core.Point{X: 6, Y: 4}}

			next, events := AdvanceTick(s)

			if !slices.Contains(events, Event{Kind: EventPowerUp, PowerUp: tc.kind}) {
				t.Errorf("events = %v, expected powerup %v", events, tc.kind)
			}
			if next.PowerUp != nil {
				t.Error("collected power-up should leave the board")
			}
			if next.Snake.Len() != tc.wantLen {
				t.Errorf("length = %d, expected %d", next.Snake.Len(), tc.wantLen)
			}
			if next.Score != tc.wantScore {
				t.Errorf("score = %d, expected %d", next.Score, tc.wantScore)
			}
			if tc.kind.Timed() && (next.Effect == nil || next.Effect.Kind != tc.kind) {
				t.Errorf("effect = %v, expected %v", next.Effect, tc.kind)
			}
		})
	}
}

func TestGrowAddsSegmentsOverTicks(t *testing.T) {
	s := testState(t, straight(), core.DirRight)
	s.PowerUp = &PowerUp{Kind: PowerUpGrow, Pos: core.Point{X: 6, Y: 4}}

	lengths := []int{4, 5, 5}
	for i, want := range lengths {
		s, _ = AdvanceTick(s)
		if s.Snake.Len() != want {
			t.Errorf("tick %d: length = %d, expected %d", i+1, s.Snake.Len(), want)
		}
	}
}

func TestEffectCountdown(t *testing.T) {
	s := testState(t, straight(), core.DirRight)
	s.Rules.Profile.EffectTicks = 3
	s.Rules.Profile.PowerUpLifetime = 0
	s.PowerUp = &PowerUp{Kind: PowerUpSlowDown, Pos: core.Point{X: 6, Y: 4}}

	s, _ = AdvanceTick(s)
	if s.Effect == nil || s.Effect.TicksLeft != 2 {
		t.Fatalf("effect after pickup tick = %+v, expected 2 ticks left", s.Effect)
	}

	// Another power-up on the board must not affect the countdown.
	s.PowerUp = &PowerUp{Kind: PowerUpBonus, Pos: core.Point{X: 0, Y: 0}, SpawnTick: s.Tick}
	s.Rules.Profile.SpawnChance = 1

	s, events := AdvanceTick(s)
	if s.Effect == nil || s.Effect.TicksLeft != 1 {
		t.Fatalf("effect = %+v, expected 1 tick left", s.Effect)
	}
	if hasEvent(events, EventEffectEnded) {
		t.Fatal("effect ended early")
	}

	s, events = AdvanceTick(s)
	if s.Effect != nil {
		t.Errorf("effect = %+v, expected cleared", s.Effect)
	}
	if !slices.Contains(events, Event{Kind: EventEffectEnded, PowerUp: PowerUpSlowDown}) {
		t.Errorf("events = %v, expected effect_ended", events)
	}
	if s.PowerUp == nil {
		t.Error("board power-up should be untouched")
	}
}

func TestPowerUpExpires(t *testing.T) {
	s := testState(t, straight(), core.DirDown)
	s.Rules.Profile.PowerUpLifetime = 5
	s.PowerUp = &PowerUp{Kind: PowerUpBonus, Pos: core.Point{X: 0, Y: 0}, SpawnTick: s.Tick}

	for i := 1; i <= 5; i++ {
		var events []Event
		s, events = AdvanceTick(s)
		expired := hasEvent(events, EventPowerUpExpired)
		if i < 5 && (expired || s.PowerUp == nil) {
			t.Fatalf("power-up expired after %d ticks, lifetime is 5", i)
		}
		if i == 5 && (!expired || s.PowerUp != nil) {
			t.Fatalf("power-up should expire after 5 ticks")
		}
	}
}

func TestFullBoardSkipsSpawns(t *testing.T) {
	body := []core.Point{
		{X: 1, Y: 1}, {X: 2, Y: 1}, {X: 3, Y: 1},
		{X: 3, Y: 0}, {X: 2, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 0},
	}
	rules := DefaultRules(config.DifficultyMedium)
	rules.Profile.SpawnChance = 1

	s := NewState(core.NewGrid(4, 2), rules, 7)
	s.Snake.Body = body
	s.Snake.Heading = core.DirLeft
	s.Food = &Food{Pos: core.Point{X: 0, Y: 1}}
	s.PowerUp = nil

	next, events := AdvanceTick(s)
	if next.Over {
		t.Fatal("eating the last free cell should not end the round")
	}
	if next.Snake.Len() != 8 {
		t.Errorf("length = %d, expected 8", next.Snake.Len())
	}
	if next.Food != nil {
		t.Errorf("food = %v, expected none on a full board", next.Food)
	}
	if next.PowerUp != nil || hasEvent(events, EventPowerUpSpawned) {
		t.Error("no power-up can spawn on a full board")
	}
}

func TestFoodReturnsWhenCellFrees(t *testing.T) {
	// A ring on a 4x2 board with no food left: the only cell that frees up
	// is the vacated tail, since the other free cell holds a power-up.
	rules := DefaultRules(config.DifficultyMedium)
	rules.Profile.SpawnChance = 0
	rules.Profile.RespawnChance = 0

	s := NewState(core.NewGrid(4, 2), rules, 3)
	s.Snake.Body = []core.Point{
		{X: 1, Y: 0}, {X: 2, Y: 0}, {X: 3, Y: 0},
		{X: 3, Y: 1}, {X: 2, Y: 1}, {X: 1, Y: 1},
	}
	s.Snake.Heading = core.DirLeft
	s.Food = nil
	s.PowerUp = &PowerUp{Kind: PowerUpBonus, Pos: core.Point{X: 0, Y: 1}, SpawnTick: s.Tick}

	next, _ := AdvanceTick(s)
	if next.Food == nil {
		t.Fatal("food should come back once a cell is free")
	}
	if next.Food.Pos != (core.Point{X: 1, Y: 1}) {
		t.Errorf("food at %v, expected the vacated tail cell (1, 1)", next.Food.Pos)
	}

	// Collecting the power-up frees its cell for the next spawn.
	s = next
	s.Food = nil
	s.Enqueue(core.DirDown)
	next, events := AdvanceTick(s)
	if !hasEvent(events, EventPowerUp) {
		t.Fatalf("events = %v, expected the bonus pickup", events)
	}
	if next.Food == nil || next.Snake.Occupies(next.Food.Pos) {
		t.Errorf("food = %v, expected a free cell", next.Food)
	}
}

func TestPowerUpRollsAfterPickup(t *testing.T) {
	s := testState(t, straight(), core.DirRight)
	s.Rules.Profile.RespawnChance = 1
	s.PowerUp = &PowerUp{Kind: PowerUpBonus, Pos: core.Point{X: 6, Y: 4}}

	next, events := AdvanceTick(s)
	if !hasEvent(events, EventPowerUp) || !hasEvent(events, EventPowerUpSpawned) {
		t.Fatalf("events = %v, expected a pickup and a new spawn", events)
	}
	pu := next.PowerUp
	if pu == nil {
		t.Fatal("a new power-up should spawn right after a pickup")
	}
	if next.Snake.Occupies(pu.Pos) || (next.Food != nil && next.Food.Pos == pu.Pos) {
		t.Errorf("new power-up at %v overlaps the snake or the food", pu.Pos)
	}
	if pu.SpawnTick != next.Tick {
		t.Errorf("SpawnTick = %d, expected %d", pu.SpawnTick, next.Tick)
	}
}

func TestNewStatePowerUpRoll(t *testing.T) {
	tests := []struct {
		name    string
		chance  float64
		wantAny bool
	}{
		{"always", 1, true},
		{"never", 0, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rules := DefaultRules(config.DifficultyEasy)
			rules.Profile.RespawnChance = tc.chance

			s := NewState(core.NewGrid(12, 8), rules, 21)
			if (s.PowerUp != nil) != tc.wantAny {
				t.Fatalf("PowerUp = %v, expected present = %v", s.PowerUp, tc.wantAny)
			}
			if s.PowerUp == nil {
				return
			}
			if s.Snake.Occupies(s.PowerUp.Pos) || s.Food.Pos == s.PowerUp.Pos {
				t.Errorf("initial power-up at %v overlaps the snake or the food", s.PowerUp.Pos)
			}
		})
	}
}

func TestSpawnsNeverOverlap(t *testing.T) {
	rules := DefaultRules(config.DifficultyHard)
	rules.Profile.SpawnChance = 0.5
	rules.Profile.PowerUpLifetime = 7

	s := NewState(core.NewGrid(12, 8), rules, 99)
	r := rand.New(rand.NewPCG(3, 4))
	dirs := []core.Direction{core.DirUp, core.DirDown, core.DirLeft, core.DirRight}

	for tick := 0; tick < 1000 && !s.Over; tick++ {
		if r.IntN(3) == 0 {
			s.Enqueue(dirs[r.IntN(len(dirs))])
		}
		s, _ = AdvanceTick(s)
		if s.Over {
			break
		}

		seen := make(map[core.Point]bool, s.Snake.Len())
		for _, p := range s.Snake.Body {
			if seen[p] {
				t.Fatalf("tick %d: body overlaps itself at %v", s.Tick, p)
			}
			seen[p] = true
		}
		if s.Food != nil && seen[s.Food.Pos] {
			t.Fatalf("tick %d: food on the snake at %v", s.Tick, s.Food.Pos)
		}
		if s.PowerUp != nil {
			if seen[s.PowerUp.Pos] {
				t.Fatalf("tick %d: power-up on the snake at %v", s.Tick, s.PowerUp.Pos)
			}
			if s.Food != nil && s.Food.Pos == s.PowerUp.Pos {
				t.Fatalf("tick %d: power-up on the food at %v", s.Tick, s.PowerUp.Pos)
			}
		}
	}
}
