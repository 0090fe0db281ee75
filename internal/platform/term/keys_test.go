package term

import (
	"reflect"
	"testing"

	"github.com/vovakirdan/tui-snake/internal/core"
)

func keyEv(a core.Action) Event {
	return Event{Kind: EventKey, Action: a}
}

func TestDecodeInput(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		expected []Event
	}{
		{"letters any case", "wAsD", []Event{keyEv(core.ActionUp), keyEv(core.ActionLeft), keyEv(core.ActionDown), keyEv(core.ActionRight)}},
		{"arrows", "\x1b[A\x1b[B\x1b[C\x1b[D", []Event{keyEv(core.ActionUp), keyEv(core.ActionDown), keyEv(core.ActionRight), keyEv(core.ActionLeft)}},
		{"application arrows", "\x1bOA\x1bOD", []Event{keyEv(core.ActionUp), keyEv(core.ActionLeft)}},
		{"modified arrow", "\x1b[1;5C", []Event{keyEv(core.ActionRight)}},
		{"unknown sequence skipped whole", "\x1b[15~p", []Event{keyEv(core.ActionPause)}},
		{"focus", "\x1b[O\x1b[I", []Event{{Kind: EventFocus, Focused: false}, {Kind: EventFocus, Focused: true}}},
		{"ctrl+c", "\x03", []Event{keyEv(core.ActionQuit)}},
		{"lone escape", "\x1b", []Event{keyEv(core.ActionMenu)}},
		{"controls", "PmRq ", []Event{keyEv(core.ActionPause), keyEv(core.ActionMute), keyEv(core.ActionRestart), keyEv(core.ActionQuit), keyEv(core.ActionMenu)}},
		{"ignored keys", "xyz1é", nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := decodeInput([]byte(tc.in))
			if !reflect.DeepEqual(got, tc.expected) {
				t.Errorf("decodeInput(%q) = %+v, expected %+v", tc.in, got, tc.expected)
			}
		})
	}
}
