package term

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/render"
)

func TestTranslateEvent(t *testing.T) {
	tests := []struct {
		name     string
		in       tcell.Event
		expected Event
		ok       bool
	}{
		{"arrow", tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone), keyEv(core.ActionUp), true},
		{"upper rune", tcell.NewEventKey(tcell.KeyRune, 'D', tcell.ModNone), keyEv(core.ActionRight), true},
		{"ctrl+c", tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl), keyEv(core.ActionQuit), true},
		{"escape", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), keyEv(core.ActionMenu), true},
		{"unmapped rune", tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone), Event{}, false},
		{"resize", tcell.NewEventResize(100, 40), Event{Kind: EventResize, Width: 100, Height: 40}, true},
		{"focus", tcell.NewEventFocus(false), Event{Kind: EventFocus, Focused: false}, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := translateEvent(tc.in)
			if ok != tc.ok {
				t.Fatalf("ok = %v, expected %v", ok, tc.ok)
			}
			if ok && got != tc.expected {
				t.Errorf("translateEvent = %+v, expected %+v", got, tc.expected)
			}
		})
	}
}

func TestApplyOpsToSimulationScreen(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	defer screen.Fini()
	screen.SetSize(80, 24)

	applyOps(screen, []render.Op{
		{Kind: render.OpClearScreen},
		{Kind: render.OpText, X: 10, Y: 5, Text: "█■■", Color: core.ColorBrightGreen},
		{Kind: render.OpText, X: 0, Y: 20, Text: "Score: 10"},
		{Kind: render.OpClearLine, Y: 20},
	})
	screen.Show()

	for i, want := range []rune{'█', '■', '■'} {
		r, _, style, _ := screen.GetContent(10+i, 5)
		if r != want {
			t.Errorf("cell (%d, 5) = %q, expected %q", 10+i, r, want)
		}
		if fg, _, _ := style.Decompose(); fg != tcell.PaletteColor(10) {
			t.Errorf("cell (%d, 5) color = %v, expected palette 10", 10+i, fg)
		}
	}
	if r, _, _, _ := screen.GetContent(0, 20); r != ' ' {
		t.Errorf("cleared line still shows %q", r)
	}
}
