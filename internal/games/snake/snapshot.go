package snake

import "github.com/vovakirdan/tui-snake/internal/core"

// Snapshot captures the comparable parts of a round for determinism testing.
type Snapshot struct {
	Tick        uint64
	Score       int
	SnakeLen    int
	Head        core.Point
	Heading     core.Direction
	Food        core.Point
	Milestone   bool
	PowerUp     string // Kind name, empty when none
	PowerUpPos  core.Point
	Effect      string // Kind name, empty when none
	EffectTicks int
	Status      Status
}

// Snapshot returns the current round snapshot.
func (r *Round) Snapshot() Snapshot {
	s := r.state
	snap := Snapshot{
		Tick:     s.Tick,
		Score:    s.Score,
		SnakeLen: s.Snake.Len(),
		Head:     s.Snake.Head(),
		Heading:  s.Snake.Heading,
		Status:   r.status,
	}
	if s.Food != nil {
		snap.Food = s.Food.Pos
		snap.Milestone = s.Food.Milestone
	}
	if s.PowerUp != nil {
		snap.PowerUp = s.PowerUp.Kind.String()
		snap.PowerUpPos = s.PowerUp.Pos
	}
	if s.Effect != nil {
		snap.Effect = s.Effect.Kind.String()
		snap.EffectTicks = s.Effect.TicksLeft
	}
	return snap
}
