// Package snake implements the deterministic Snake simulation: a toroidal
// board, a buffered direction queue, food, power-ups and per-difficulty
// pacing. It performs no I/O.
package snake

import (
	"math/rand/v2"
	"slices"
	"time"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
)

// StartLength is the length of a freshly spawned snake.
const StartLength = config.StartLength

// Rules bundles the tuning a round runs with.
type Rules struct {
	Difficulty config.Difficulty
	Profile    config.Profile
	Scoring    config.ScoringConfig
	Pacing     config.PacingConfig
}

// NewRules resolves the tuning for d from cfg.
func NewRules(cfg config.GameConfig, d config.Difficulty) Rules {
	return Rules{
		Difficulty: d,
		Profile:    cfg.Profile(d),
		Scoring:    cfg.Scoring,
		Pacing:     cfg.Pacing,
	}
}

// DefaultRules returns the built-in tuning for d.
func DefaultRules(d config.Difficulty) Rules {
	return NewRules(config.DefaultGameConfig(), d)
}

// Snake is the player's body, head first, plus its heading and queued turns.
type Snake struct {
	Body    []core.Point
	Heading core.Direction
	Queue   DirQueue
}

// Head returns the head position.
func (s Snake) Head() core.Point {
	return s.Body[0]
}

// Len returns the number of segments.
func (s Snake) Len() int {
	return len(s.Body)
}

// Occupies reports whether any segment sits on p.
func (s Snake) Occupies(p core.Point) bool {
	return slices.Contains(s.Body, p)
}

// Food is the basic collectible. Milestone is fixed when it spawns.
type Food struct {
	Pos       core.Point
	Milestone bool
}

// Glyph returns the board character for the food.
func (f Food) Glyph() rune {
	if f.Milestone {
		return '★'
	}
	return '●'
}

// State is the complete simulation state. It is a value: AdvanceTick
// returns a new State and never mutates its input.
type State struct {
	Grid    core.Grid
	Rules   Rules
	Snake   Snake
	Food    *Food // Nil only when the board had no free cell
	PowerUp *PowerUp
	Effect  *ActiveEffect
	Score   int
	Tick    uint64
	Over    bool

	growth int // Segments still to be added, one per tick
	rng    rand.PCG
}

// NewState creates a round's initial state: a centered snake of
// StartLength heading right, one piece of food and, with the profile's
// RespawnChance, a power-up.
func NewState(grid core.Grid, rules Rules, seed uint64) State {
	s := State{
		Grid:  grid,
		Rules: rules,
	}
	s.rng.Seed(seed, seed^0x9e3779b97f4a7c15)

	head := grid.Center()
	s.Snake.Heading = core.DirRight
	s.Snake.Body = make([]core.Point, 0, StartLength)
	for i := range StartLength {
		s.Snake.Body = append(s.Snake.Body, grid.Wrap(core.Point{X: head.X - i, Y: head.Y}))
	}

	rng := rand.New(&s.rng)
	s.Food = s.spawnFood(rng)
	if rng.Float64() < rules.Profile.RespawnChance {
		s.spawnPowerUp(rng)
	}
	return s
}

// Growth returns the number of segments still to be added.
func (s State) Growth() int {
	return s.growth
}

// Interval returns the effective delay before the next tick. The axis is
// taken from the first queued turn, or the heading when none is queued.
func (s State) Interval() time.Duration {
	axis := s.Snake.Heading.Axis()
	if d, ok := s.Snake.Queue.Peek(); ok {
		axis = d.Axis()
	}
	return EffectiveInterval(s.Rules, s.Score, axis, s.Effect)
}

// PacePercent returns the current pace as a percentage of the base interval.
func (s State) PacePercent() int {
	return s.Rules.Profile.PacePercent(s.Score)
}

// Enqueue buffers a turn for a later tick.
func (s *State) Enqueue(d core.Direction) bool {
	return s.Snake.Queue.Push(d, s.Snake.Heading)
}

// spawnFood places new food on a vacant cell, or returns nil when the
// board is full.
func (s State) spawnFood(rng *rand.Rand) *Food {
	pos, ok := s.vacantCell(rng)
	if !ok {
		return nil
	}
	return &Food{Pos: pos, Milestone: s.milestone()}
}

// spawnPowerUp places a power-up of a uniform kind on a vacant cell. It
// reports false, leaving the slot empty, when the board is full.
func (s *State) spawnPowerUp(rng *rand.Rand) (PowerUpKind, bool) {
	kinds := PowerUpKinds()
	kind := kinds[rng.IntN(len(kinds))]
	pos, ok := s.vacantCell(rng)
	if !ok {
		return kind, false
	}
	s.PowerUp = &PowerUp{Kind: kind, Pos: pos, SpawnTick: s.Tick}
	return kind, true
}

func (s State) milestone() bool {
	m := s.Rules.Scoring.Milestone
	return m > 0 && s.Score > 0 && s.Score%m == 0
}

// occupied reports whether p holds the snake, the food or the power-up.
func (s State) occupied(p core.Point) bool {
	if s.Snake.Occupies(p) {
		return true
	}
	if s.Food != nil && s.Food.Pos == p {
		return true
	}
	return s.PowerUp != nil && s.PowerUp.Pos == p
}

// vacantCell picks a uniformly random free cell. It scans the board once
// and reports false when nothing is free.
func (s State) vacantCell(rng *rand.Rand) (core.Point, bool) {
	free := make([]core.Point, 0, s.Grid.Cells()-len(s.Snake.Body))
	for y := range s.Grid.Height {
		for x := range s.Grid.Width {
			p := core.Point{X: x, Y: y}
			if !s.occupied(p) {
				free = append(free, p)
			}
		}
	}
	if len(free) == 0 {
		return core.Point{}, false
	}
	return free[rng.IntN(len(free))], true
}
