// Package layout places the framed board and HUD on the terminal and
// reports when the terminal is too small to hold them.
package layout

import (
	"fmt"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/frame"
)

// hudGap is the blank row between the board frame and the HUD.
const hudGap = 1

// Layout maps board and HUD coordinates to terminal cells.
type Layout struct {
	TermW int
	TermH int
	Grid  core.Grid
	Board core.Rect // Framed board, border included
	HUD   core.Rect // HUD block below the board
}

// SizeError reports a terminal smaller than the minimum for the board.
type SizeError struct {
	Width     int
	Height    int
	MinWidth  int
	MinHeight int
}

func (e *SizeError) Error() string {
	return fmt.Sprintf("layout: terminal %dx%d is smaller than the required %dx%d",
		e.Width, e.Height, e.MinWidth, e.MinHeight)
}

// Lines returns the warning shown in place of the game.
func (e *SizeError) Lines() []string {
	return []string{
		"Terminal too small",
		"",
		fmt.Sprintf("Current: %dx%d", e.Width, e.Height),
		fmt.Sprintf("Minimum: %dx%d", e.MinWidth, e.MinHeight),
		"",
		"Resize to continue, Q to quit",
	}
}

// MinSize returns the smallest terminal that fits grid, its frame and the HUD.
func MinSize(grid core.Grid) (w, h int) {
	w = max(grid.Width+2, len(frame.ControlsLine))
	h = grid.Height + 2 + hudGap + frame.HUDRows
	return w, h
}

// Compute centers the board and HUD in a termW x termH terminal.
func Compute(termW, termH int, grid core.Grid) (Layout, error) {
	minW, minH := MinSize(grid)
	if termW < minW || termH < minH {
		return Layout{}, &SizeError{Width: termW, Height: termH, MinWidth: minW, MinHeight: minH}
	}

	top := (termH - minH) / 2
	boardW, boardH := grid.Width+2, grid.Height+2

	return Layout{
		TermW: termW,
		TermH: termH,
		Grid:  grid,
		Board: core.NewRect((termW-boardW)/2, top, boardW, boardH),
		HUD:   core.NewRect((termW-minW)/2, top+boardH+hudGap, minW, frame.HUDRows),
	}, nil
}

// BoardToScreen returns the terminal cell of board point p.
func (l Layout) BoardToScreen(p core.Point) (x, y int) {
	return l.Board.X + 1 + p.X, l.Board.Y + 1 + p.Y
}

// HUDRow returns the terminal position where HUD row i starts.
func (l Layout) HUDRow(i int) (x, y int) {
	return l.HUD.X, l.HUD.Y + i
}
