package snake

import "github.com/vovakirdan/tui-snake/internal/core"

// PowerUpKind represents the type of power-up on the board.
type PowerUpKind int

const (
	PowerUpSpeedBoost PowerUpKind = iota // Shorter tick interval for a while
	PowerUpSlowDown                      // Longer tick interval for a while
	PowerUpBonus                         // Flat score bonus
	PowerUpGrow                          // Extra tail segments
	PowerUpShrink                        // Fewer tail segments, length floor respected
)

// PowerUpKinds returns every kind in spawn order.
func PowerUpKinds() []PowerUpKind {
	return []PowerUpKind{PowerUpSpeedBoost, PowerUpSlowDown, PowerUpBonus, PowerUpGrow, PowerUpShrink}
}

// Glyph returns the board character for the power-up.
func (k PowerUpKind) Glyph() rune {
	switch k {
	case PowerUpSpeedBoost:
		return '>'
	case PowerUpSlowDown:
		return '<'
	case PowerUpBonus:
		return '$'
	case PowerUpGrow:
		return '+'
	case PowerUpShrink:
		return '-'
	default:
		return '?'
	}
}

// Color returns the board color for the power-up.
func (k PowerUpKind) Color() core.Color {
	switch k {
	case PowerUpSpeedBoost:
		return core.ColorBrightBlue
	case PowerUpSlowDown:
		return core.ColorBrightCyan
	case PowerUpBonus:
		return core.ColorBrightYellow
	case PowerUpGrow:
		return core.ColorBrightGreen
	case PowerUpShrink:
		return core.ColorBrightMagenta
	default:
		return core.ColorDefault
	}
}

// String returns the display name.
func (k PowerUpKind) String() string {
	switch k {
	case PowerUpSpeedBoost:
		return "Speed"
	case PowerUpSlowDown:
		return "Slow"
	case PowerUpBonus:
		return "Bonus"
	case PowerUpGrow:
		return "Grow"
	case PowerUpShrink:
		return "Shrink"
	default:
		return "Unknown"
	}
}

// Timed reports whether picking the kind up starts an ActiveEffect.
func (k PowerUpKind) Timed() bool {
	return k == PowerUpSpeedBoost || k == PowerUpSlowDown
}

// PowerUp is the single collectible that may sit on the board.
type PowerUp struct {
	Kind      PowerUpKind
	Pos       core.Point
	SpawnTick uint64
}

// ActiveEffect is the current timed speed modifier. It runs out on its own
// schedule, whether or not another power-up is on the board.
type ActiveEffect struct {
	Kind      PowerUpKind
	TicksLeft int
}
