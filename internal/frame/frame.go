// Package frame holds the authoritative per-tick snapshot of what should
// be on screen and computes the dirty region between two snapshots.
package frame

import (
	"fmt"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// HUDRows is the number of text rows below the board.
const HUDRows = 3

// ControlsLine is the static third HUD row.
const ControlsLine = "WASD/Arrows:Move P:Pause M:Mute R:Restart SPACE:Menu Q:Quit"

// HUD carries the values shown below the board.
type HUD struct {
	Score       int
	Best        int
	Difficulty  string
	PacePercent int
	Effect      string // Empty when no effect is active
	EffectTicks int
	Paused      bool
	Muted       bool
}

// Rows formats the HUD into its display rows.
func (h HUD) Rows() [HUDRows]string {
	status := fmt.Sprintf("Score: %d  Difficulty: %s", h.Score, h.Difficulty)
	if h.Paused {
		status += "  PAUSED"
	}
	if h.Muted {
		status += "  MUTED"
	}

	info := fmt.Sprintf("Best: %d  Pace: %d%%", h.Best, h.PacePercent)
	if h.Effect != "" {
		info += fmt.Sprintf("  Effect: %s (%d)", h.Effect, h.EffectTicks)
	}

	return [HUDRows]string{status, info, ControlsLine}
}

// Frame is a full snapshot of the board cells, HUD and overlay panel.
type Frame struct {
	Width   int
	Height  int
	Cells   []core.Cell // Row-major, Width*Height
	HUD     HUD
	Overlay []string // Centered panel lines; nil when hidden
}

// New returns a blank frame for a board of the given size.
func New(width, height int) *Frame {
	cells := make([]core.Cell, width*height)
	for i := range cells {
		cells[i] = core.Blank
	}
	return &Frame{Width: width, Height: height, Cells: cells}
}

// Set stores c at p. Out-of-range points are ignored.
func (f *Frame) Set(p core.Point, c core.Cell) {
	if p.X < 0 || p.X >= f.Width || p.Y < 0 || p.Y >= f.Height {
		return
	}
	f.Cells[p.Y*f.Width+p.X] = c
}

// At returns the cell at p, or Blank when out of range.
func (f *Frame) At(p core.Point) core.Cell {
	if p.X < 0 || p.X >= f.Width || p.Y < 0 || p.Y >= f.Height {
		return core.Blank
	}
	return f.Cells[p.Y*f.Width+p.X]
}
