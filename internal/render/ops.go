// Package render turns frames into the minimal list of terminal drawing
// operations and applies them to a sink.
package render

import "github.com/vovakirdan/tui-snake/internal/core"

// OpKind identifies a drawing operation.
type OpKind int

const (
	OpClearScreen OpKind = iota
	OpText               // Text at (X, Y) in Color
	OpClearLine          // Blank terminal row Y
	OpBell
)

// Op is a single drawing operation in terminal coordinates.
type Op struct {
	Kind  OpKind
	X, Y  int
	Text  string
	Color core.Color
}

// Sink applies drawing operations to an output.
type Sink interface {
	Apply(ops []Op) error
}

func text(x, y int, s string, c core.Color) Op {
	return Op{Kind: OpText, X: x, Y: y, Text: s, Color: c}
}
