// Package term runs game sessions directly on a terminal, either with raw
// ANSI escape sequences or through tcell. Both share one single-threaded
// loop that waits on input, the tick timer and cancellation.
package term

import (
	"context"
	"time"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/render"
	"github.com/vovakirdan/tui-snake/internal/session"
)

// EventKind identifies a terminal event.
type EventKind int

const (
	EventKey EventKind = iota
	EventResize
	EventFocus
)

// Event is a decoded terminal event.
type Event struct {
	Kind    EventKind
	Action  core.Action // EventKey
	Width   int         // EventResize
	Height  int         // EventResize
	Focused bool        // EventFocus
}

// Backend owns the terminal: raw mode, input decoding and output.
// Its reader goroutines only decode input into Events; they never touch
// the session.
type Backend interface {
	render.Sink

	// Init switches the terminal to game mode and starts reading input.
	Init() error

	// Size returns the terminal size in cells.
	Size() (w, h int)

	// Events delivers decoded input. A closed channel ends the loop.
	Events() <-chan Event

	// Fini restores the terminal. It is safe to call once after Init.
	Fini()
}

// Run initializes b, plays s until it is done and restores the terminal,
// also when the loop panics.
func Run(ctx context.Context, b Backend, s *session.Session) error {
	if err := b.Init(); err != nil {
		return err
	}
	defer b.Fini()

	return Loop(ctx, b, s)
}

// Loop drives input, ticks and drawing on the calling goroutine until the
// session is done, ctx is cancelled or input ends.
func Loop(ctx context.Context, b Backend, s *session.Session) error {
	s.Resize(b.Size())
	if err := s.Draw(b); err != nil {
		return err
	}

	timer := time.NewTimer(s.Interval())
	defer timer.Stop()

	events := b.Events()
	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-events:
			if !ok {
				return nil
			}
			handleEvent(s, ev)

		case <-timer.C:
			s.Tick()
			timer.Reset(s.Interval())
		}

		if s.Done() {
			return nil
		}
		if err := s.Draw(b); err != nil {
			return err
		}
	}
}

func handleEvent(s *session.Session, ev Event) {
	switch ev.Kind {
	case EventKey:
		s.HandleAction(ev.Action)
	case EventResize:
		s.Resize(ev.Width, ev.Height)
	case EventFocus:
		if !ev.Focused {
			s.FocusLost()
		}
	}
}
