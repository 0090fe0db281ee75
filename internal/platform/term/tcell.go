package term

import (
	"context"
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/registry"
	"github.com/vovakirdan/tui-snake/internal/render"
	"github.com/vovakirdan/tui-snake/internal/session"
)

func init() {
	registry.Register("tcell", func() registry.Runner { return tcellRunner{} })
}

type tcellRunner struct{}

func (tcellRunner) ID() string    { return "tcell" }
func (tcellRunner) Title() string { return "tcell screen" }

func (tcellRunner) Run(ctx context.Context, s *session.Session) error {
	return Run(ctx, NewTcellBackend(tcell.NewScreen), s)
}

// TcellBackend draws through a tcell.Screen and translates its events.
type TcellBackend struct {
	newScreen func() (tcell.Screen, error)
	screen    tcell.Screen
	tevents   chan tcell.Event
	quit      chan struct{}
	events    chan Event
	wg        sync.WaitGroup
}

// NewTcellBackend creates a backend on the screen returned by newScreen,
// usually tcell.NewScreen.
func NewTcellBackend(newScreen func() (tcell.Screen, error)) *TcellBackend {
	return &TcellBackend{newScreen: newScreen}
}

// Init creates and initializes the screen and starts event translation.
func (b *TcellBackend) Init() error {
	s, err := b.newScreen()
	if err != nil {
		return fmt.Errorf("term: cannot create screen: %w", err)
	}
	if err := s.Init(); err != nil {
		return fmt.Errorf("term: cannot initialize screen: %w", err)
	}
	s.SetStyle(tcell.StyleDefault)
	s.HideCursor()
	s.EnableFocus()
	b.screen = s

	b.tevents = make(chan tcell.Event, 32)
	b.quit = make(chan struct{})
	b.events = make(chan Event, 16)

	go s.ChannelEvents(b.tevents, b.quit)
	b.wg.Add(1)
	go b.translate()
	return nil
}

// Size returns the screen size.
func (b *TcellBackend) Size() (int, int) {
	return b.screen.Size()
}

// Events returns the translated event channel.
func (b *TcellBackend) Events() <-chan Event {
	return b.events
}

// Apply draws ops onto the screen and shows the result.
func (b *TcellBackend) Apply(ops []render.Op) error {
	applyOps(b.screen, ops)
	b.screen.Show()
	return nil
}

// Fini stops event delivery and restores the terminal.
func (b *TcellBackend) Fini() {
	close(b.quit)
	b.wg.Wait()
	b.screen.Fini()
}

func (b *TcellBackend) translate() {
	defer b.wg.Done()
	defer close(b.events)

	for {
		select {
		case tev, ok := <-b.tevents:
			if !ok {
				return
			}
			ev, ok := translateEvent(tev)
			if !ok {
				continue
			}
			select {
			case b.events <- ev:
			case <-b.quit:
				return
			}
		case <-b.quit:
			return
		}
	}
}

func translateEvent(tev tcell.Event) (Event, bool) {
	switch ev := tev.(type) {
	case *tcell.EventKey:
		var a core.Action
		switch ev.Key() {
		case tcell.KeyUp:
			a = core.ActionUp
		case tcell.KeyDown:
			a = core.ActionDown
		case tcell.KeyLeft:
			a = core.ActionLeft
		case tcell.KeyRight:
			a = core.ActionRight
		case tcell.KeyCtrlC:
			a = core.ActionQuit
		case tcell.KeyEscape:
			a = core.ActionMenu
		case tcell.KeyRune:
			a = core.ActionForRune(ev.Rune())
		}
		return Event{Kind: EventKey, Action: a}, a != core.ActionNone

	case *tcell.EventResize:
		w, h := ev.Size()
		return Event{Kind: EventResize, Width: w, Height: h}, true

	case *tcell.EventFocus:
		return Event{Kind: EventFocus, Focused: ev.Focused}, true
	}
	return Event{}, false
}

func applyOps(s tcell.Screen, ops []render.Op) {
	for _, op := range ops {
		switch op.Kind {
		case render.OpClearScreen:
			s.Clear()
		case render.OpClearLine:
			w, _ := s.Size()
			for x := range w {
				s.SetContent(x, op.Y, ' ', nil, tcell.StyleDefault)
			}
		case render.OpText:
			style := tcell.StyleDefault.Foreground(tcellColor(op.Color))
			x := op.X
			for _, r := range op.Text {
				s.SetContent(x, op.Y, r, nil, style)
				x++
			}
		case render.OpBell:
			s.Beep()
		}
	}
}

func tcellColor(c core.Color) tcell.Color {
	code := c.Code()
	if code < 0 {
		return tcell.ColorDefault
	}
	return tcell.PaletteColor(code)
}
