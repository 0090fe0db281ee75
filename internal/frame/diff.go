package frame

import (
	"slices"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// CellChange is a board cell whose content differs from the previous frame.
type CellChange struct {
	Pos  core.Point
	Cell core.Cell
}

// DirtyRegion lists what changed between two frames.
type DirtyRegion struct {
	Full    bool // No comparable previous frame; everything is listed
	Cells   []CellChange
	HUDRows []int // Indices into HUD.Rows whose text changed
	Overlay bool  // Overlay panel appeared or changed
}

// Empty reports whether nothing needs redrawing.
func (d DirtyRegion) Empty() bool {
	return !d.Full && len(d.Cells) == 0 && len(d.HUDRows) == 0 && !d.Overlay
}

// Diff compares cur against prev. A nil prev, or one of a different size,
// yields a Full region listing every non-blank cell and every HUD row.
func Diff(prev, cur *Frame) DirtyRegion {
	if prev == nil || prev.Width != cur.Width || prev.Height != cur.Height {
		return full(cur)
	}

	var d DirtyRegion
	for i, c := range cur.Cells {
		if c != prev.Cells[i] {
			d.Cells = append(d.Cells, CellChange{
				Pos:  core.Point{X: i % cur.Width, Y: i / cur.Width},
				Cell: c,
			})
		}
	}

	prevRows, curRows := prev.HUD.Rows(), cur.HUD.Rows()
	for i := range curRows {
		if curRows[i] != prevRows[i] {
			d.HUDRows = append(d.HUDRows, i)
		}
	}

	d.Overlay = cur.Overlay != nil && !slices.Equal(prev.Overlay, cur.Overlay)
	return d
}

func full(cur *Frame) DirtyRegion {
	d := DirtyRegion{Full: true}
	for i, c := range cur.Cells {
		if c != core.Blank {
			d.Cells = append(d.Cells, CellChange{
				Pos:  core.Point{X: i % cur.Width, Y: i / cur.Width},
				Cell: c,
			})
		}
	}
	for i := range HUDRows {
		d.HUDRows = append(d.HUDRows, i)
	}
	d.Overlay = cur.Overlay != nil
	return d
}
