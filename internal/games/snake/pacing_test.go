package snake

import (
	"testing"
	"time"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
)

func TestTickIntervalBase(t *testing.T) {
	tests := []struct {
		d          config.Difficulty
		horizontal time.Duration
	}{
		{config.DifficultyEasy, 150 * time.Millisecond},
		{config.DifficultyMedium, 100 * time.Millisecond},
		{config.DifficultyHard, 60 * time.Millisecond},
		{config.DifficultyExtreme, 40 * time.Millisecond},
	}

	for _, tc := range tests {
		t.Run(tc.d.String(), func(t *testing.T) {
			r := DefaultRules(tc.d)
			if got := TickInterval(r, 0, core.AxisHorizontal); got != tc.horizontal {
				t.Errorf("horizontal = %v, expected %v", got, tc.horizontal)
			}
			if got := TickInterval(r, 0, core.AxisVertical); got != 2*tc.horizontal {
				t.Errorf("vertical = %v, expected %v", got, 2*tc.horizontal)
			}
		})
	}
}

func TestTickIntervalNonIncreasingWithFloor(t *testing.T) {
	var prevFloor time.Duration
	for i, d := range config.Difficulties() {
		r := DefaultRules(d)
		floor := r.Profile.FloorInterval

		for _, axis := range []core.Axis{core.AxisHorizontal, core.AxisVertical} {
			prev := TickInterval(r, 0, axis)
			for score := 10; score <= 5000; score += 10 {
				iv := TickInterval(r, score, axis)
				if iv > prev {
					t.Fatalf("%s %s: interval rose from %v to %v at score %d", d, axis, prev, iv, score)
				}
				lo := floor
				if axis == core.AxisVertical {
					lo *= 2
				}
				if iv < lo {
					t.Fatalf("%s %s: interval %v below floor %v at score %d", d, axis, iv, lo, score)
				}
				prev = iv
			}
			if axis == core.AxisHorizontal && prev != floor {
				t.Errorf("%s: interval at high score = %v, expected floor %v", d, prev, floor)
			}
		}

		if i > 0 && floor >= prevFloor {
			t.Errorf("%s floor %v should be below %v", d, floor, prevFloor)
		}
		prevFloor = floor
	}
}

func TestEffectiveInterval(t *testing.T) {
	medium := DefaultRules(config.DifficultyMedium)

	clamped := medium
	clamped.Pacing.MinInterval = 80 * time.Millisecond
	clamped.Pacing.MaxInterval = 250 * time.Millisecond

	speed := &ActiveEffect{Kind: PowerUpSpeedBoost, TicksLeft: 5}
	slow := &ActiveEffect{Kind: PowerUpSlowDown, TicksLeft: 5}

	tests := []struct {
		name     string
		rules    Rules
		axis     core.Axis
		effect   *ActiveEffect
		expected time.Duration
	}{
		{"no effect", medium, core.AxisHorizontal, nil, 100 * time.Millisecond},
		{"speed boost", medium, core.AxisHorizontal, speed, 70 * time.Millisecond},
		{"slow down", medium, core.AxisHorizontal, slow, 150 * time.Millisecond},
		{"slow down vertical", medium, core.AxisVertical, slow, 300 * time.Millisecond},
		{"clamped below", clamped, core.AxisHorizontal, speed, 80 * time.Millisecond},
		{"clamped above", clamped, core.AxisVertical, slow, 250 * time.Millisecond},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := EffectiveInterval(tc.rules, 0, tc.axis, tc.effect)
			if got != tc.expected {
				t.Errorf("EffectiveInterval = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestEffectiveIntervalGlobalBounds(t *testing.T) {
	for _, d := range config.Difficulties() {
		r := DefaultRules(d)
		for _, e := range []*ActiveEffect{nil, {Kind: PowerUpSpeedBoost}, {Kind: PowerUpSlowDown}} {
			for _, axis := range []core.Axis{core.AxisHorizontal, core.AxisVertical} {
				for _, score := range []int{0, 500, 100000} {
					iv := EffectiveInterval(r, score, axis, e)
					if iv < 20*time.Millisecond || iv > time.Second {
						t.Errorf("%s score %d: interval %v outside [20ms, 1s]", d, score, iv)
					}
				}
			}
		}
	}
}

func TestStateIntervalUsesQueuedAxis(t *testing.T) {
	s := testState(t, straight(), core.DirRight)
	h := s.Interval()

	s.Enqueue(core.DirDown)
	if v := s.Interval(); v != 2*h {
		t.Errorf("interval with a queued vertical turn = %v, expected %v", v, 2*h)
	}
}
