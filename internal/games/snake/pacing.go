package snake

import (
	"time"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
)

// TickInterval returns the base delay for a move along axis at score,
// before any active effect. Vertical moves take VerticalFactor times as
// long since terminal cells are about twice as tall as they are wide.
func TickInterval(r Rules, score int, axis core.Axis) time.Duration {
	iv := r.Profile.Interval(score)
	if axis == core.AxisVertical {
		iv *= time.Duration(max(r.Pacing.VerticalFactor, 1))
	}
	return iv
}

// EffectPercent returns the interval multiplier of e in percent.
func EffectPercent(p config.Profile, e *ActiveEffect) int {
	if e == nil {
		return 100
	}
	switch e.Kind {
	case PowerUpSpeedBoost:
		return p.SpeedBoostPercent
	case PowerUpSlowDown:
		return p.SlowDownPercent
	default:
		return 100
	}
}

// EffectiveInterval applies the active effect to TickInterval and clamps
// the result to the configured bounds.
func EffectiveInterval(r Rules, score int, axis core.Axis, e *ActiveEffect) time.Duration {
	iv := TickInterval(r, score, axis) * time.Duration(EffectPercent(r.Profile, e)) / 100
	if r.Pacing.MinInterval > 0 {
		iv = max(iv, r.Pacing.MinInterval)
	}
	if r.Pacing.MaxInterval > 0 {
		iv = min(iv, r.Pacing.MaxInterval)
	}
	return iv
}
