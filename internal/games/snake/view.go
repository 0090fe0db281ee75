package snake

import (
	"fmt"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/frame"
)

// Board glyphs.
const (
	GlyphHead = '█'
	GlyphBody = '■'
)

// Frame exports the round as a render snapshot.
func (r *Round) Frame() *frame.Frame {
	s := r.state
	f := frame.New(s.Grid.Width, s.Grid.Height)

	if s.Food != nil {
		c := core.ColorBrightRed
		if s.Food.Milestone {
			c = core.ColorBrightYellow
		}
		f.Set(s.Food.Pos, core.Cell{Rune: s.Food.Glyph(), Color: c})
	}
	if s.PowerUp != nil {
		f.Set(s.PowerUp.Pos, core.Cell{Rune: s.PowerUp.Kind.Glyph(), Color: s.PowerUp.Kind.Color()})
	}

	n := len(s.Snake.Body)
	for i := n - 1; i >= 1; i-- {
		f.Set(s.Snake.Body[i], core.Cell{Rune: GlyphBody, Color: bodyColor(i, n)})
	}
	f.Set(s.Snake.Head(), core.Cell{Rune: GlyphHead, Color: core.ColorBrightGreen})

	f.HUD = frame.HUD{
		Score:       s.Score,
		Best:        r.Best(),
		Difficulty:  s.Rules.Difficulty.Title(),
		PacePercent: s.PacePercent(),
		Paused:      r.status == StatusPaused,
		Muted:       r.muted,
	}
	if s.Effect != nil {
		f.HUD.Effect = s.Effect.Kind.String()
		f.HUD.EffectTicks = s.Effect.TicksLeft
	}

	if r.status == StatusGameOver {
		f.Overlay = r.gameOverPanel()
	}
	return f
}

func (r *Round) gameOverPanel() []string {
	lines := []string{
		"GAME OVER",
		fmt.Sprintf("Score: %d", r.state.Score),
	}
	if r.newBest {
		lines = append(lines, "NEW HIGH SCORE!")
	}
	return append(lines, "", "R: Restart  SPACE: Menu  Q: Quit")
}

// bodyColor fades the body by thirds from the head.
func bodyColor(i, n int) core.Color {
	switch i * 3 / n {
	case 0:
		return core.ColorGreen
	case 1:
		return core.ColorYellow
	default:
		return core.ColorGray
	}
}
