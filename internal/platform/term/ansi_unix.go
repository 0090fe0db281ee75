//go:build unix

package term

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/muesli/cancelreader"
	xterm "golang.org/x/term"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/registry"
	"github.com/vovakirdan/tui-snake/internal/render"
	"github.com/vovakirdan/tui-snake/internal/session"
)

// Alternate screen, hidden cursor, focus reporting.
const (
	enterSeq = "\x1b[?1049h\x1b[?25l\x1b[?1004h"
	exitSeq  = "\x1b[?1004l\x1b[?25h\x1b[?1049l\x1b[0m"
)

func init() {
	registry.Register("ansi", func() registry.Runner { return ansiRunner{} })
}

type ansiRunner struct{}

func (ansiRunner) ID() string    { return "ansi" }
func (ansiRunner) Title() string { return "Raw ANSI terminal" }

func (ansiRunner) Run(ctx context.Context, s *session.Session) error {
	return Run(ctx, NewANSIBackend(os.Stdin, os.Stdout, s.Logger()), s)
}

// ANSIBackend drives a terminal with x/term raw mode and escape sequences.
type ANSIBackend struct {
	in     *os.File
	out    *os.File
	logger *log.Logger

	state  *xterm.State
	reader cancelreader.CancelReader
	writer *render.ANSIWriter
	events chan Event
	sigs   chan os.Signal
	done   chan struct{}
	wg     sync.WaitGroup
}

// NewANSIBackend creates a backend reading keys from in and drawing to out.
func NewANSIBackend(in, out *os.File, logger *log.Logger) *ANSIBackend {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &ANSIBackend{in: in, out: out, logger: logger}
}

// Init enters raw mode and the alternate screen and starts the reader.
func (b *ANSIBackend) Init() error {
	fd := int(b.in.Fd())
	if !xterm.IsTerminal(fd) {
		return errors.New("term: stdin is not a terminal")
	}

	state, err := xterm.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("term: cannot enter raw mode: %w", err)
	}
	b.state = state

	reader, err := cancelreader.NewReader(b.in)
	if err != nil {
		xterm.Restore(fd, state)
		return fmt.Errorf("term: cannot read input: %w", err)
	}
	b.reader = reader

	b.writer = render.NewANSIWriter(b.out, b.logger)
	b.events = make(chan Event, 16)
	b.done = make(chan struct{})
	b.sigs = make(chan os.Signal, 1)
	signal.Notify(b.sigs, syscall.SIGWINCH)

	//nolint:errcheck // Mode switches are best-effort
	b.out.WriteString(enterSeq)

	b.wg.Add(2)
	go b.readLoop()
	go b.resizeLoop()
	return nil
}

// Size returns the terminal size, or 80x24 when it cannot be queried.
func (b *ANSIBackend) Size() (int, int) {
	w, h, err := xterm.GetSize(int(b.out.Fd()))
	if err != nil {
		return 80, 24
	}
	return w, h
}

// Events returns the decoded input channel.
func (b *ANSIBackend) Events() <-chan Event {
	return b.events
}

// Apply writes ops as one escape-sequence frame.
func (b *ANSIBackend) Apply(ops []render.Op) error {
	return b.writer.Apply(ops)
}

// Fini stops the reader and restores the terminal.
func (b *ANSIBackend) Fini() {
	close(b.done)
	b.reader.Cancel()
	signal.Stop(b.sigs)
	b.wg.Wait()
	b.reader.Close()

	//nolint:errcheck // Best-effort restore
	b.out.WriteString(exitSeq)
	xterm.Restore(int(b.in.Fd()), b.state)

	if n := b.writer.Dropped(); n > 0 {
		b.logger.Warn("frames dropped during session", "count", n)
	}
}

func (b *ANSIBackend) send(ev Event) bool {
	select {
	case b.events <- ev:
		return true
	case <-b.done:
		return false
	}
}

func (b *ANSIBackend) readLoop() {
	defer b.wg.Done()

	buf := make([]byte, 256)
	for {
		n, err := b.reader.Read(buf)
		for _, ev := range decodeInput(buf[:n]) {
			if !b.send(ev) {
				return
			}
		}
		if err != nil {
			if !errors.Is(err, cancelreader.ErrCanceled) {
				b.logger.Warn("input closed", "err", err)
				b.send(Event{Kind: EventKey, Action: core.ActionQuit})
			}
			return
		}
	}
}

func (b *ANSIBackend) resizeLoop() {
	defer b.wg.Done()

	for {
		select {
		case <-b.sigs:
			w, h := b.Size()
			if !b.send(Event{Kind: EventResize, Width: w, Height: h}) {
				return
			}
		case <-b.done:
			return
		}
	}
}
