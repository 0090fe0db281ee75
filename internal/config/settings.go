package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Settings are the user preferences changed from the settings screen.
type Settings struct {
	DefaultDifficulty Difficulty `yaml:"default_difficulty"`
	PauseOnFocusLoss  bool       `yaml:"pause_on_focus_loss"`
	SoundOn           bool       `yaml:"sound_on"`
	Renderer          string     `yaml:"renderer"` // Terminal backend id, see `snake renderers`
}

// DefaultSettings returns the settings used before anything is saved.
func DefaultSettings() Settings {
	return Settings{
		DefaultDifficulty: DifficultyMedium,
		PauseOnFocusLoss:  true,
		SoundOn:           true,
		Renderer:          "tea",
	}
}

// SettingsPath returns ~/.tui-snake/settings.yaml, or a relative
// settings.yaml if home is unavailable.
func SettingsPath() string {
	dir := AppDir()
	if dir == "" {
		return "settings.yaml"
	}
	return filepath.Join(dir, "settings.yaml")
}

// LoadSettings reads settings from path. A missing file yields the
// defaults with no error; a corrupt file yields the defaults and an error
// the caller may log.
func LoadSettings(path string) (Settings, error) {
	s := DefaultSettings()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return s, nil
		}
		return s, fmt.Errorf("config: cannot read settings: %w", err)
	}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return DefaultSettings(), fmt.Errorf("config: cannot parse settings %s: %w", path, err)
	}
	return s, nil
}

// SaveSettings writes settings to path, replacing the file atomically.
func SaveSettings(path string, s Settings) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("config: cannot encode settings: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("config: cannot create directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".settings-*.yaml")
	if err != nil {
		return fmt.Errorf("config: cannot create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("config: cannot write settings: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("config: cannot write settings: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("config: cannot replace settings: %w", err)
	}
	return nil
}
