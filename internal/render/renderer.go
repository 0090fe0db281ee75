package render

import (
	"slices"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/frame"
	"github.com/vovakirdan/tui-snake/internal/layout"
)

// Colors of the fixed screen elements.
const (
	BorderColor       = core.ColorWhite
	HUDColor          = core.ColorBrightWhite
	PanelColor        = core.ColorBrightWhite
	PanelTitleColor   = core.ColorBrightRed
	MessageTitleColor = core.ColorBrightYellow
)

// Renderer remembers the last drawn frame and emits only what changed.
//
// A static frame (clear, border, every occupied cell, every HUD row) is
// drawn on the first render, after Invalidate, when the layout changes and
// when an overlay panel is removed. Otherwise changed cells and HUD rows are
// drawn, plus the border every frame.
type Renderer struct {
	prev    *frame.Frame
	lay     layout.Layout
	fresh   bool
	message []string // Last full-screen message, nil while a frame is shown
}

// New returns a renderer whose first Render draws a static frame.
func New() *Renderer {
	return &Renderer{fresh: true}
}

// Invalidate forces the next Render to draw a static frame. Call it on
// mode changes and after a dropped frame.
func (r *Renderer) Invalidate() {
	r.fresh = true
	r.message = nil
}

// Render returns the operations that bring the terminal from the previous
// frame to cur.
func (r *Renderer) Render(cur *frame.Frame, lay layout.Layout) []Op {
	static := r.fresh || r.prev == nil || r.lay != lay ||
		(r.prev.Overlay != nil && cur.Overlay == nil)

	var ops []Op
	if static {
		ops = staticOps(cur, lay)
	} else {
		ops = r.deltaOps(cur, lay)
	}

	r.prev, r.lay, r.fresh, r.message = cur, lay, false, nil
	return ops
}

// RenderMessage clears the terminal and centers lines on it, replacing
// the game view. It returns nil when the same message is already shown.
// The next Render draws a static frame.
func (r *Renderer) RenderMessage(lines []string, termW, termH int) []Op {
	if !r.fresh && slices.Equal(r.message, lines) {
		return nil
	}
	r.message = slices.Clone(lines)
	r.prev = nil
	r.fresh = false

	ops := []Op{{Kind: OpClearScreen}}
	top := max(0, (termH-len(lines))/2)
	for i, line := range lines {
		c := HUDColor
		if i == 0 {
			c = MessageTitleColor
		}
		x := max(0, (termW-runewidth.StringWidth(line))/2)
		ops = append(ops, text(x, top+i, line, c))
	}
	return ops
}

func staticOps(cur *frame.Frame, lay layout.Layout) []Op {
	ops := []Op{{Kind: OpClearScreen}}
	ops = append(ops, borderOps(lay)...)

	for i, c := range cur.Cells {
		if c == core.Blank {
			continue
		}
		x, y := lay.BoardToScreen(core.Point{X: i % cur.Width, Y: i / cur.Width})
		ops = append(ops, text(x, y, string(c.Rune), c.Color))
	}

	rows := cur.HUD.Rows()
	for i := range rows {
		ops = append(ops, hudOps(lay, i, rows[i])...)
	}

	if cur.Overlay != nil {
		ops = append(ops, panelOps(lay, cur.Overlay)...)
	}
	return ops
}

func (r *Renderer) deltaOps(cur *frame.Frame, lay layout.Layout) []Op {
	d := frame.Diff(r.prev, cur)

	ops := make([]Op, 0, len(d.Cells)+2*lay.Grid.Height+2)
	for _, ch := range d.Cells {
		x, y := lay.BoardToScreen(ch.Pos)
		ops = append(ops, text(x, y, string(ch.Cell.Rune), ch.Cell.Color))
	}
	ops = append(ops, borderOps(lay)...)

	rows := cur.HUD.Rows()
	for _, i := range d.HUDRows {
		ops = append(ops, hudOps(lay, i, rows[i])...)
	}

	if d.Overlay {
		ops = append(ops, panelOps(lay, cur.Overlay)...)
	}
	return ops
}

func borderOps(lay layout.Layout) []Op {
	b := lay.Board
	inner := strings.Repeat("─", b.W-2)

	ops := make([]Op, 0, 2+2*(b.H-2))
	ops = append(ops, text(b.X, b.Y, "┌"+inner+"┐", BorderColor))
	for y := b.Y + 1; y < b.Bottom()-1; y++ {
		ops = append(ops,
			text(b.X, y, "│", BorderColor),
			text(b.Right()-1, y, "│", BorderColor))
	}
	ops = append(ops, text(b.X, b.Bottom()-1, "└"+inner+"┘", BorderColor))
	return ops
}

func hudOps(lay layout.Layout, i int, row string) []Op {
	x, y := lay.HUDRow(i)
	return []Op{
		{Kind: OpClearLine, Y: y},
		text(x, y, row, HUDColor),
	}
}

// panelOps draws lines in a box centered on the board.
func panelOps(lay layout.Layout, lines []string) []Op {
	inner := 0
	for _, l := range lines {
		inner = max(inner, runewidth.StringWidth(l))
	}
	w, h := inner+4, len(lines)+2
	x := lay.Board.X + (lay.Board.W-w)/2
	y := lay.Board.Y + (lay.Board.H-h)/2

	ops := make([]Op, 0, h)
	ops = append(ops, text(x, y, "┌"+strings.Repeat("─", w-2)+"┐", PanelColor))
	for i, l := range lines {
		pad := inner - runewidth.StringWidth(l)
		left := pad / 2
		row := "│ " + strings.Repeat(" ", left) + l + strings.Repeat(" ", pad-left) + " │"
		c := PanelColor
		if i == 0 {
			c = PanelTitleColor
		}
		ops = append(ops, text(x, y+1+i, row, c))
	}
	ops = append(ops, text(x, y+h-1, "└"+strings.Repeat("─", w-2)+"┘", PanelColor))
	return ops
}
