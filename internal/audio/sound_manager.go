// Package audio plays short synthesized sound effects through the system
// speaker.
package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// Sound identifies a sound effect.
type Sound int

const (
	SoundEat Sound = iota
	SoundPowerUp
	SoundGameOver
	SoundHighScore
)

// String returns the sound name.
func (s Sound) String() string {
	switch s {
	case SoundEat:
		return "eat"
	case SoundPowerUp:
		return "powerup"
	case SoundGameOver:
		return "game_over"
	case SoundHighScore:
		return "high_score"
	default:
		return "unknown"
	}
}

// note is one tone of a sound effect.
type note struct {
	freq float64
	dur  time.Duration
}

var sounds = map[Sound][]note{
	SoundEat:       {{880, 60 * time.Millisecond}},
	SoundPowerUp:   {{660, 50 * time.Millisecond}, {990, 70 * time.Millisecond}},
	SoundGameOver:  {{392, 120 * time.Millisecond}, {294, 120 * time.Millisecond}, {196, 250 * time.Millisecond}},
	SoundHighScore: {{523, 80 * time.Millisecond}, {659, 80 * time.Millisecond}, {784, 80 * time.Millisecond}, {1047, 160 * time.Millisecond}},
}

// SoundManager mixes sound effects into the speaker.
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
}

// NewSoundManager creates a new sound manager. Call Initialize before
// playing anything.
func NewSoundManager() *SoundManager {
	return &SoundManager{
		mixer: &beep.Mixer{},
	}
}

// Initialize opens the speaker. It fails when no audio device is available.
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}

	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Available reports whether the speaker was opened.
func (sm *SoundManager) Available() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.initialized
}

// Play queues s on the mixer. It returns false when audio is unavailable
// so the caller can fall back to the terminal bell.
func (sm *SoundManager) Play(s Sound) bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return false
	}

	notes, ok := sounds[s]
	if !ok {
		return false
	}
	speaker.Lock()
	sm.mixer.Add(streamer(sampleRate, notes...))
	speaker.Unlock()
	return true
}

// Cleanup stops all sounds and closes the speaker.
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	speaker.Clear()
	speaker.Close()
	sm.initialized = false
}
