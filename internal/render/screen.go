package render

import "github.com/vovakirdan/tui-snake/internal/core"

// ScreenSink applies ops to a core.Screen buffer. Front ends that print a
// whole view per update keep one and render the buffer.
type ScreenSink struct {
	Screen *core.Screen
	Bells  int // Bell ops seen; the front end rings them
}

// NewScreenSink creates a sink with a width x height buffer.
func NewScreenSink(width, height int) *ScreenSink {
	return &ScreenSink{Screen: core.NewScreen(width, height)}
}

// Apply draws ops into the buffer. It never fails.
func (s *ScreenSink) Apply(ops []Op) error {
	for _, op := range ops {
		switch op.Kind {
		case OpClearScreen:
			s.Screen.Clear()
		case OpClearLine:
			s.Screen.ClearRow(op.Y)
		case OpText:
			s.Screen.DrawTextColor(op.X, op.Y, op.Text, op.Color)
		case OpBell:
			s.Bells++
		}
	}
	return nil
}
