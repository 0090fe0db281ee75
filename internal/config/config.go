// Package config provides YAML-based game tuning, per-difficulty pacing
// profiles and persisted user settings.
package config

import (
	"errors"
	"fmt"
	"time"
)

// StartLength is the length of a freshly spawned snake. Shrinking never
// takes a snake below it.
const StartLength = 3

// GameConfig contains all tuning for the snake simulation.
type GameConfig struct {
	Board        BoardConfig        `yaml:"board"`
	Scoring      ScoringConfig      `yaml:"scoring"`
	Pacing       PacingConfig       `yaml:"pacing"`
	Difficulties map[string]Profile `yaml:"difficulties"`
}

// BoardConfig defines the playfield size in cells, excluding the border.
type BoardConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// ScoringConfig defines points and length changes.
type ScoringConfig struct {
	Food           int `yaml:"food"`            // Points per food
	Bonus          int `yaml:"bonus"`           // Points for the Bonus power-up
	Milestone      int `yaml:"milestone"`       // Score multiple that turns food into a star
	GrowSegments   int `yaml:"grow_segments"`   // Segments added by Grow
	ShrinkSegments int `yaml:"shrink_segments"` // Segments removed by Shrink
	MinLength      int `yaml:"min_length"`      // Shrink never goes below this
}

// PacingConfig bounds the effective tick interval.
type PacingConfig struct {
	MinInterval    time.Duration `yaml:"min_interval"`
	MaxInterval    time.Duration `yaml:"max_interval"`
	VerticalFactor int           `yaml:"vertical_factor"` // Vertical moves take this many times longer
}

// Profile is the pacing and power-up tuning for one difficulty.
type Profile struct {
	BaseInterval      time.Duration `yaml:"base_interval"`  // Horizontal interval at score 0
	FloorInterval     time.Duration `yaml:"floor_interval"` // Horizontal interval never drops below this
	StepPoints        int           `yaml:"step_points"`    // Score needed per pace step
	StepPercent       int           `yaml:"step_percent"`   // Interval reduction per step, in percent of base
	SpawnChance       float64       `yaml:"spawn_chance"`   // Per-tick power-up spawn probability
	RespawnChance     float64       `yaml:"respawn_chance"` // Spawn probability at round start and right after a pickup
	PowerUpLifetime   int           `yaml:"powerup_lifetime"`
	EffectTicks       int           `yaml:"effect_ticks"`
	SpeedBoostPercent int           `yaml:"speed_boost_percent"`
	SlowDownPercent   int           `yaml:"slow_down_percent"`
}

// Profile returns the tuning for d, falling back to the built-in profile
// when the config has no entry for it.
func (c GameConfig) Profile(d Difficulty) Profile {
	if p, ok := c.Difficulties[d.String()]; ok {
		return p
	}
	return DefaultProfile(d)
}

// Validate checks the config for values the simulation cannot run with.
func (c GameConfig) Validate() error {
	var errs []error

	if c.Board.Width < 4 || c.Board.Height < 2 {
		errs = append(errs, fmt.Errorf("board must be at least 4x2, got %dx%d", c.Board.Width, c.Board.Height))
	}
	if c.Scoring.MinLength < StartLength {
		errs = append(errs, fmt.Errorf("scoring.min_length must be at least %d, got %d", StartLength, c.Scoring.MinLength))
	}
	if c.Scoring.Milestone <= 0 {
		errs = append(errs, errors.New("scoring.milestone must be positive"))
	}
	if c.Pacing.MinInterval <= 0 || c.Pacing.MaxInterval < c.Pacing.MinInterval {
		errs = append(errs, fmt.Errorf("pacing bounds invalid: [%s, %s]", c.Pacing.MinInterval, c.Pacing.MaxInterval))
	}
	if c.Pacing.VerticalFactor < 1 {
		errs = append(errs, errors.New("pacing.vertical_factor must be at least 1"))
	}

	var prevFloor time.Duration
	for i, d := range Difficulties() {
		p := c.Profile(d)
		if err := p.validate(); err != nil {
			errs = append(errs, fmt.Errorf("difficulty %s: %w", d, err))
			continue
		}
		if i > 0 && p.FloorInterval >= prevFloor {
			errs = append(errs, fmt.Errorf("difficulty %s: floor_interval %s must be below the previous difficulty's %s",
				d, p.FloorInterval, prevFloor))
		}
		prevFloor = p.FloorInterval
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}

func (p Profile) validate() error {
	switch {
	case p.BaseInterval <= 0:
		return errors.New("base_interval must be positive")
	case p.FloorInterval <= 0 || p.FloorInterval > p.BaseInterval:
		return errors.New("floor_interval must be in (0, base_interval]")
	case p.StepPoints <= 0:
		return errors.New("step_points must be positive")
	case p.StepPercent < 0:
		return errors.New("step_percent must not be negative")
	case p.SpawnChance < 0 || p.SpawnChance > 1:
		return errors.New("spawn_chance must be within [0, 1]")
	case p.RespawnChance < 0 || p.RespawnChance > 1:
		return errors.New("respawn_chance must be within [0, 1]")
	case p.EffectTicks <= 0:
		return errors.New("effect_ticks must be positive")
	case p.PowerUpLifetime < 0:
		return errors.New("powerup_lifetime must not be negative")
	case p.SpeedBoostPercent <= 0 || p.SlowDownPercent <= 0:
		return errors.New("effect percents must be positive")
	}
	return nil
}
