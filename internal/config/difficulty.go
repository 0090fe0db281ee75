package config

import (
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// Difficulty selects a pacing profile.
type Difficulty int

const (
	DifficultyEasy Difficulty = iota
	DifficultyMedium
	DifficultyHard
	DifficultyExtreme
)

var difficultyNames = [...]string{"easy", "medium", "hard", "extreme"}

// Difficulties returns every difficulty from easiest to hardest.
func Difficulties() []Difficulty {
	return []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard, DifficultyExtreme}
}

// ParseDifficulty parses a difficulty name, case-insensitively.
func ParseDifficulty(s string) (Difficulty, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range difficultyNames {
		if n == name {
			return Difficulty(i), nil
		}
	}
	return DifficultyMedium, fmt.Errorf("config: unknown difficulty %q (want easy, medium, hard or extreme)", s)
}

// String returns the lowercase difficulty name used in files and storage.
func (d Difficulty) String() string {
	if d < 0 || int(d) >= len(difficultyNames) {
		return "unknown"
	}
	return difficultyNames[d]
}

// Title returns the display name.
func (d Difficulty) Title() string {
	s := d.String()
	return strings.ToUpper(s[:1]) + s[1:]
}

// Next cycles to the following difficulty, wrapping after Extreme.
func (d Difficulty) Next() Difficulty {
	return Difficulty((int(d) + 1) % len(difficultyNames))
}

// Prev cycles to the preceding difficulty, wrapping before Easy.
func (d Difficulty) Prev() Difficulty {
	return Difficulty((int(d) + len(difficultyNames) - 1) % len(difficultyNames))
}

// MarshalYAML encodes the difficulty by name.
func (d Difficulty) MarshalYAML() (any, error) {
	return d.String(), nil
}

// UnmarshalYAML decodes a difficulty name.
func (d *Difficulty) UnmarshalYAML(value *yaml.Node) error {
	var name string
	if err := value.Decode(&name); err != nil {
		return err
	}
	parsed, err := ParseDifficulty(name)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// PacePercent returns the horizontal interval for score as a percentage
// of the base interval. It never rises with score and never drops below
// the floor's share of the base.
func (p Profile) PacePercent(score int) int {
	floor := int(p.FloorInterval * 100 / p.BaseInterval)
	steps := 0
	if p.StepPoints > 0 && score > 0 {
		steps = score / p.StepPoints
	}
	pct := 100 - steps*p.StepPercent
	return core.Clamp(pct, floor, 100)
}

// Interval returns the horizontal tick interval for score, bounded below
// by the profile's floor.
func (p Profile) Interval(score int) time.Duration {
	iv := p.BaseInterval * time.Duration(p.PacePercent(score)) / 100
	return max(iv, p.FloorInterval)
}
