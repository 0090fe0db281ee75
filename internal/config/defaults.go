package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/snake.yaml
var defaultSnakeYAML []byte

// DefaultGameConfig returns the built-in tuning: a 38x18 board (40x20 with
// its border) and the four difficulty profiles.
func DefaultGameConfig() GameConfig {
	profiles := make(map[string]Profile, len(difficultyNames))
	for _, d := range Difficulties() {
		profiles[d.String()] = DefaultProfile(d)
	}
	return GameConfig{
		Board: BoardConfig{
			Width:  38,
			Height: 18,
		},
		Scoring: ScoringConfig{
			Food:           10,
			Bonus:          50,
			Milestone:      50,
			GrowSegments:   2,
			ShrinkSegments: 2,
			MinLength:      StartLength,
		},
		Pacing: PacingConfig{
			MinInterval:    20 * time.Millisecond,
			MaxInterval:    time.Second,
			VerticalFactor: 2,
		},
		Difficulties: profiles,
	}
}

// DefaultProfile returns the built-in profile for d.
func DefaultProfile(d Difficulty) Profile {
	switch d {
	case DifficultyEasy:
		return Profile{
			BaseInterval:      150 * time.Millisecond,
			FloorInterval:     90 * time.Millisecond,
			StepPoints:        50,
			StepPercent:       2,
			SpawnChance:       0.03,
			RespawnChance:     0.3,
			PowerUpLifetime:   200,
			EffectTicks:       120,
			SpeedBoostPercent: 70,
			SlowDownPercent:   150,
		}
	case DifficultyHard:
		return Profile{
			BaseInterval:      60 * time.Millisecond,
			FloorInterval:     35 * time.Millisecond,
			StepPoints:        50,
			StepPercent:       4,
			SpawnChance:       0.015,
			RespawnChance:     0.3,
			PowerUpLifetime:   120,
			EffectTicks:       80,
			SpeedBoostPercent: 70,
			SlowDownPercent:   150,
		}
	case DifficultyExtreme:
		return Profile{
			BaseInterval:      40 * time.Millisecond,
			FloorInterval:     22 * time.Millisecond,
			StepPoints:        50,
			StepPercent:       5,
			SpawnChance:       0.01,
			RespawnChance:     0.3,
			PowerUpLifetime:   100,
			EffectTicks:       60,
			SpeedBoostPercent: 70,
			SlowDownPercent:   150,
		}
	default:
		return Profile{
			BaseInterval:      100 * time.Millisecond,
			FloorInterval:     60 * time.Millisecond,
			StepPoints:        50,
			StepPercent:       3,
			SpawnChance:       0.02,
			RespawnChance:     0.3,
			PowerUpLifetime:   150,
			EffectTicks:       100,
			SpeedBoostPercent: 70,
			SlowDownPercent:   150,
		}
	}
}

// DefaultYAML returns the embedded default snake.yaml.
func DefaultYAML() []byte {
	return defaultSnakeYAML
}
