package render

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"syscall"

	"github.com/charmbracelet/log"
)

// MaxRetries is how many times a transiently failing write is retried
// before the frame is dropped.
const MaxRetries = 3

// ErrFrameDropped is returned by ANSIWriter.Apply when a frame could not be
// written. The caller should Invalidate its Renderer so the next frame is
// drawn in full.
var ErrFrameDropped = errors.New("render: frame dropped")

// ANSIWriter encodes ops as ANSI escape sequences and writes each frame
// with a single Write, retrying EAGAIN and EINTR.
type ANSIWriter struct {
	w       io.Writer
	logger  *log.Logger
	buf     bytes.Buffer
	dropped int
	warned  bool
}

// NewANSIWriter creates a writer for w. logger may be nil.
func NewANSIWriter(w io.Writer, logger *log.Logger) *ANSIWriter {
	return &ANSIWriter{w: w, logger: logger}
}

// Dropped returns the number of frames dropped so far.
func (a *ANSIWriter) Dropped() int {
	return a.dropped
}

// Apply encodes and writes ops. Transient write failures are retried up
// to MaxRetries times, then the rest of the frame is dropped and
// ErrFrameDropped returned. Only the first drop is logged.
func (a *ANSIWriter) Apply(ops []Op) error {
	if len(ops) == 0 {
		return nil
	}
	a.buf.Reset()
	Encode(&a.buf, ops)
	return a.write(a.buf.Bytes())
}

func (a *ANSIWriter) write(data []byte) error {
	var err error
	for range MaxRetries + 1 {
		var n int
		n, err = a.w.Write(data)
		data = data[n:]
		if len(data) == 0 {
			return nil
		}
		if err != nil && !transient(err) {
			return fmt.Errorf("render: write: %w", err)
		}
	}

	a.dropped++
	if !a.warned && a.logger != nil {
		a.warned = true
		a.logger.Warn("dropping frame after write failures", "err", err, "retries", MaxRetries)
	}
	return ErrFrameDropped
}

func transient(err error) bool {
	return errors.Is(err, syscall.EAGAIN) ||
		errors.Is(err, syscall.EINTR) ||
		errors.Is(err, os.ErrDeadlineExceeded) ||
		errors.Is(err, io.ErrShortWrite)
}

// Encode appends the escape sequences for ops to b. Color changes are
// only emitted when the color differs from the previous text op.
func Encode(b *bytes.Buffer, ops []Op) {
	color := -2
	for _, op := range ops {
		switch op.Kind {
		case OpClearScreen:
			// CAN aborts an escape sequence cut short by a dropped frame.
			b.WriteString("\x18\x1b[0m\x1b[2J\x1b[H")
			color = -1
		case OpClearLine:
			fmt.Fprintf(b, "\x1b[%d;1H\x1b[2K", op.Y+1)
		case OpText:
			fmt.Fprintf(b, "\x1b[%d;%dH", op.Y+1, op.X+1)
			if code := op.Color.Code(); code != color {
				if code < 0 {
					b.WriteString("\x1b[39m")
				} else {
					fmt.Fprintf(b, "\x1b[38;5;%dm", code)
				}
				color = code
			}
			b.WriteString(op.Text)
		case OpBell:
			b.WriteByte('\a')
		}
	}
	b.WriteString("\x1b[0m")
}
