package snake

import (
	"math/rand/v2"
	"slices"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// EventKind identifies something that happened during a tick.
type EventKind int

const (
	EventAteFood EventKind = iota
	EventPowerUp           // A power-up was collected; Event.PowerUp holds its kind
	EventEffectEnded
	EventPowerUpSpawned
	EventPowerUpExpired
	EventGameOver
	EventNewHighScore // Emitted by Round, never by AdvanceTick
)

// String returns the event name.
func (k EventKind) String() string {
	switch k {
	case EventAteFood:
		return "ate_food"
	case EventPowerUp:
		return "powerup"
	case EventEffectEnded:
		return "effect_ended"
	case EventPowerUpSpawned:
		return "powerup_spawned"
	case EventPowerUpExpired:
		return "powerup_expired"
	case EventGameOver:
		return "game_over"
	case EventNewHighScore:
		return "new_high_score"
	default:
		return "unknown"
	}
}

// Event is emitted by a tick for sound and logging.
type Event struct {
	Kind    EventKind
	PowerUp PowerUpKind
}

// AdvanceTick runs one simulation step and returns the resulting state
// with the events it produced. The input state is not modified. A state
// that is already over is returned unchanged.
//
// On self-collision the input state is returned with Over set and a
// single EventGameOver; nothing else changes that tick.
func AdvanceTick(s State) (State, []Event) {
	if s.Over {
		return s, nil
	}

	next := s
	rng := rand.New(&next.rng)
	scoring := s.Rules.Scoring
	profile := s.Rules.Profile
	var events []Event

	if d, ok := next.Snake.Queue.Pop(); ok && turnable(next.Snake.Heading, d) {
		next.Snake.Heading = d
	}

	head := s.Grid.Move(s.Snake.Head(), next.Snake.Heading)

	// The tail moves out of the way this tick unless the snake is growing.
	body := s.Snake.Body
	if s.growth == 0 {
		body = body[:len(body)-1]
	}
	if slices.Contains(body, head) {
		over := s
		over.Over = true
		return over, []Event{{Kind: EventGameOver}}
	}

	next.Tick = s.Tick + 1
	moved := make([]core.Point, 0, len(s.Snake.Body)+1)
	moved = append(moved, head)
	moved = append(moved, s.Snake.Body...)
	next.Snake.Body = moved

	if next.Food != nil && next.Food.Pos == head {
		next.Score += scoring.Food
		next.growth++
		next.Food = next.spawnFood(rng)
		events = append(events, Event{Kind: EventAteFood})
	}

	shrink := 0
	collected := false
	if pu := next.PowerUp; pu != nil && pu.Pos == head {
		switch pu.Kind {
		case PowerUpSpeedBoost, PowerUpSlowDown:
			next.Effect = &ActiveEffect{Kind: pu.Kind, TicksLeft: profile.EffectTicks}
		case PowerUpBonus:
			next.Score += scoring.Bonus
		case PowerUpGrow:
			next.growth += scoring.GrowSegments
		case PowerUpShrink:
			shrink = scoring.ShrinkSegments
		}
		next.PowerUp = nil
		collected = true
		events = append(events, Event{Kind: EventPowerUp, PowerUp: pu.Kind})
	}

	if next.growth > 0 {
		next.growth--
	} else {
		next.Snake.Body = moved[:len(moved)-1]
	}
	if shrink > 0 {
		keep := max(scoring.MinLength, len(next.Snake.Body)-shrink)
		if keep < len(next.Snake.Body) {
			next.Snake.Body = next.Snake.Body[:keep]
		}
	}

	// Food skipped on a full board comes back once a cell frees up.
	if next.Food == nil {
		next.Food = next.spawnFood(rng)
	}

	if e := next.Effect; e != nil {
		if e.TicksLeft <= 1 {
			next.Effect = nil
			events = append(events, Event{Kind: EventEffectEnded, PowerUp: e.Kind})
		} else {
			next.Effect = &ActiveEffect{Kind: e.Kind, TicksLeft: e.TicksLeft - 1}
		}
	}

	if pu := next.PowerUp; pu != nil && profile.PowerUpLifetime > 0 &&
		next.Tick-pu.SpawnTick >= uint64(profile.PowerUpLifetime) {
		next.PowerUp = nil
		events = append(events, Event{Kind: EventPowerUpExpired, PowerUp: pu.Kind})
	}

	chance := profile.SpawnChance
	if collected {
		chance = profile.RespawnChance
	}
	if next.PowerUp == nil && rng.Float64() < chance {
		if kind, ok := next.spawnPowerUp(rng); ok {
			events = append(events, Event{Kind: EventPowerUpSpawned, PowerUp: kind})
		}
	}

	return next, events
}
