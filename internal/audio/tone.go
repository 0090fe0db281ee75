package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
)

// ToneGenerator produces a sine tone with a short fade at both ends.
type ToneGenerator struct {
	sr    beep.SampleRate
	freq  float64
	total int
	pos   int
}

// NewToneGenerator creates a tone of freq Hz lasting dur.
func NewToneGenerator(sr beep.SampleRate, freq float64, dur time.Duration) *ToneGenerator {
	return &ToneGenerator{sr: sr, freq: freq, total: sr.N(dur)}
}

func (g *ToneGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	if g.pos >= g.total {
		return 0, false
	}
	fade := g.sr.N(5 * time.Millisecond)

	for i := range samples {
		if g.pos >= g.total {
			return i, true
		}
		t := float64(g.pos) / float64(g.sr)

		env := 1.0
		if fade > 0 {
			env = math.Min(env, float64(g.pos)/float64(fade))
			env = math.Min(env, float64(g.total-g.pos)/float64(fade))
		}
		sample := 0.2 * env * math.Sin(2*math.Pi*g.freq*t)

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *ToneGenerator) Err() error {
	return nil
}

// streamer plays notes one after another.
func streamer(sr beep.SampleRate, notes ...note) beep.Streamer {
	parts := make([]beep.Streamer, 0, len(notes))
	for _, n := range notes {
		parts = append(parts, NewToneGenerator(sr, n.freq, n.dur))
	}
	return beep.Seq(parts...)
}
