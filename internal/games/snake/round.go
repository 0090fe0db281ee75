package snake

import (
	"time"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// Status is the round's state machine position.
type Status int

const (
	StatusRunning Status = iota
	StatusPaused
	StatusGameOver
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case StatusRunning:
		return "running"
	case StatusPaused:
		return "paused"
	case StatusGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Round wraps a State with pause, mute and high-score tracking.
// Restarting means creating a new Round.
type Round struct {
	state   State
	status  Status
	best    int // Stored best when the round started
	newBest bool
	muted   bool
}

// NewRound starts a round on grid. best is the stored high score for the
// round's difficulty.
func NewRound(grid core.Grid, rules Rules, seed uint64, best int) *Round {
	return &Round{
		state:  NewState(grid, rules, seed),
		status: StatusRunning,
		best:   best,
	}
}

// State returns the current simulation state.
func (r *Round) State() State {
	return r.state
}

// Status returns the current status.
func (r *Round) Status() Status {
	return r.status
}

// Enqueue buffers a turn. Turns are ignored unless the round is running.
func (r *Round) Enqueue(d core.Direction) bool {
	if r.status != StatusRunning {
		return false
	}
	return r.state.Enqueue(d)
}

// TogglePause switches between running and paused.
func (r *Round) TogglePause() {
	switch r.status {
	case StatusRunning:
		r.status = StatusPaused
	case StatusPaused:
		r.status = StatusRunning
	}
}

// Pause pauses a running round. Used on focus loss.
func (r *Round) Pause() {
	if r.status == StatusRunning {
		r.status = StatusPaused
	}
}

// Muted reports whether sound is off for this round.
func (r *Round) Muted() bool {
	return r.muted
}

// SetMuted sets the mute flag.
func (r *Round) SetMuted(m bool) {
	r.muted = m
}

// ToggleMute flips the mute flag and returns the new value.
func (r *Round) ToggleMute() bool {
	r.muted = !r.muted
	return r.muted
}

// Tick advances the simulation once. It is a no-op unless running.
// EventNewHighScore is appended the first tick the score passes the
// stored best.
func (r *Round) Tick() []Event {
	if r.status != StatusRunning {
		return nil
	}

	next, events := AdvanceTick(r.state)
	r.state = next
	if next.Over {
		r.status = StatusGameOver
		return events
	}

	if !r.newBest && next.Score > r.best {
		r.newBest = true
		events = append(events, Event{Kind: EventNewHighScore})
	}
	return events
}

// Interval returns the delay before the next tick.
func (r *Round) Interval() time.Duration {
	return r.state.Interval()
}

// Score returns the current score.
func (r *Round) Score() int {
	return r.state.Score
}

// Best returns the higher of the stored best and the current score.
func (r *Round) Best() int {
	return max(r.best, r.state.Score)
}

// NewBest reports whether this round has beaten the stored best.
func (r *Round) NewBest() bool {
	return r.newBest
}

// NewRoundFrom resumes a running round from an existing state.
func NewRoundFrom(st State, best int) *Round {
	return &Round{state: st, status: StatusRunning, best: best}
}
