package term

import (
	"unicode/utf8"

	"github.com/vovakirdan/tui-snake/internal/core"
)

const esc = 0x1b

// decodeInput turns raw terminal bytes into events. Unknown escape
// sequences are skipped whole.
func decodeInput(b []byte) []Event {
	var events []Event
	key := func(a core.Action) {
		if a != core.ActionNone {
			events = append(events, Event{Kind: EventKey, Action: a})
		}
	}

	for i := 0; i < len(b); {
		c := b[i]
		switch {
		case c == 0x03: // Ctrl+C
			key(core.ActionQuit)
			i++

		case c == esc && i+1 < len(b) && b[i+1] == '[':
			final, n := scanCSI(b[i+2:])
			i += 2 + n
			switch final {
			case 'I':
				events = append(events, Event{Kind: EventFocus, Focused: true})
			case 'O':
				events = append(events, Event{Kind: EventFocus, Focused: false})
			default:
				key(arrow(final))
			}

		case c == esc && i+2 < len(b) && b[i+1] == 'O':
			key(arrow(b[i+2]))
			i += 3

		case c == esc:
			key(core.ActionMenu)
			i++

		default:
			r, size := utf8.DecodeRune(b[i:])
			key(core.ActionForRune(r))
			i += size
		}
	}
	return events
}

// scanCSI skips parameter and intermediate bytes and returns the final
// byte and the number of bytes consumed. A truncated sequence yields 0.
func scanCSI(b []byte) (final byte, n int) {
	for n < len(b) {
		c := b[n]
		n++
		if c >= 0x40 && c <= 0x7e {
			return c, n
		}
	}
	return 0, n
}

func arrow(final byte) core.Action {
	switch final {
	case 'A':
		return core.ActionUp
	case 'B':
		return core.ActionDown
	case 'C':
		return core.ActionRight
	case 'D':
		return core.ActionLeft
	default:
		return core.ActionNone
	}
}
