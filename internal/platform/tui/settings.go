package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/registry"
)

// ScoreClearer wipes every saved score.
type ScoreClearer interface {
	ClearAll() error
}

// Settings rows.
const (
	setPauseOnFocus = iota
	setSound
	setDifficulty
	setRenderer
	setResetScores
	setBack
	numSettingRows
)

var warnStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))

// SettingsModel edits and persists user settings. Every change is saved
// immediately.
type SettingsModel struct {
	settings   config.Settings
	path       string
	store      ScoreClearer
	renderers  []string
	cursor     int
	confirming bool
	status     string
	width      int
	keys       MenuKeyMap
	help       help.Model
	done       bool
	quitting   bool
}

// NewSettingsModel creates a settings screen for s, saving to path.
// store may be nil, which disables the reset row.
func NewSettingsModel(s config.Settings, path string, store ScoreClearer, width int) SettingsModel {
	var ids []string
	for _, r := range registry.List() {
		ids = append(ids, r.ID)
	}
	return SettingsModel{
		settings:  s,
		path:      path,
		store:     store,
		renderers: ids,
		width:     width,
		keys:      DefaultMenuKeyMap(),
		help:      help.New(),
	}
}

// Init initializes the settings model.
func (m SettingsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the settings screen.
func (m SettingsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.confirming {
			return m.handleConfirm(msg)
		}
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
	}
	return m, nil
}

func (m SettingsModel) handleConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.confirming = false
	switch msg.String() {
	case "y", "Y":
		if err := m.store.ClearAll(); err != nil {
			m.status = fmt.Sprintf("Cannot reset scores: %v", err)
		} else {
			m.status = "High scores reset."
		}
	default:
		m.status = "Reset cancelled."
	}
	return m, nil
}

func (m SettingsModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Back):
		m.done = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		m.cursor = (m.cursor + numSettingRows - 1) % numSettingRows

	case key.Matches(msg, m.keys.Down):
		m.cursor = (m.cursor + 1) % numSettingRows

	case key.Matches(msg, m.keys.Left):
		m.change(-1)

	case key.Matches(msg, m.keys.Right):
		m.change(1)

	case key.Matches(msg, m.keys.Select):
		switch m.cursor {
		case setResetScores:
			if m.store == nil {
				m.status = "No score database."
				return m, nil
			}
			m.confirming = true
			m.status = ""
		case setBack:
			m.done = true
			return m, tea.Quit
		default:
			m.change(1)
		}
	}
	return m, nil
}

// change steps the value under the cursor and saves.
func (m *SettingsModel) change(step int) {
	switch m.cursor {
	case setPauseOnFocus:
		m.settings.PauseOnFocusLoss = !m.settings.PauseOnFocusLoss
	case setSound:
		m.settings.SoundOn = !m.settings.SoundOn
	case setDifficulty:
		if step < 0 {
			m.settings.DefaultDifficulty = m.settings.DefaultDifficulty.Prev()
		} else {
			m.settings.DefaultDifficulty = m.settings.DefaultDifficulty.Next()
		}
	case setRenderer:
		if len(m.renderers) == 0 {
			return
		}
		i := indexOf(m.renderers, m.settings.Renderer)
		i = (i + step + len(m.renderers)) % len(m.renderers)
		m.settings.Renderer = m.renderers[i]
	default:
		return
	}

	if err := config.SaveSettings(m.path, m.settings); err != nil {
		m.status = fmt.Sprintf("Cannot save settings: %v", err)
		return
	}
	m.status = "Saved."
}

func indexOf(ids []string, id string) int {
	for i, v := range ids {
		if v == id {
			return i
		}
	}
	return 0
}

func onOff(b bool) string {
	if b {
		return "On"
	}
	return "Off"
}

func (m SettingsModel) label(row int) string {
	switch row {
	case setPauseOnFocus:
		return "Pause on focus loss: " + onOff(m.settings.PauseOnFocusLoss)
	case setSound:
		return "Sound: " + onOff(m.settings.SoundOn)
	case setDifficulty:
		return "Default difficulty: < " + m.settings.DefaultDifficulty.Title() + " >"
	case setRenderer:
		return "Renderer: < " + m.settings.Renderer + " >"
	case setResetScores:
		return "Reset high scores"
	default:
		return "Back"
	}
}

// View renders the settings screen.
func (m SettingsModel) View() string {
	if m.done || m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("SETTINGS"), m.width))
	b.WriteString("\n\n")

	for row := range numSettingRows {
		line := "  " + m.label(row)
		if row == m.cursor {
			line = cursorStyle.Render("> " + m.label(row))
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	switch {
	case m.confirming:
		b.WriteString(centerText(warnStyle.Render("Delete all high scores? (y/N)"), m.width))
	case m.status != "":
		b.WriteString(centerText(dimStyle.Render(m.status), m.width))
	}
	b.WriteString("\n\n")
	b.WriteString(centerText(dimStyle.Render(m.help.View(m.keys)), m.width))
	b.WriteString("\n")

	return b.String()
}

// Settings returns the current settings.
func (m SettingsModel) Settings() config.Settings {
	return m.settings
}

// IsQuitting returns true if user wants to quit entirely.
func (m SettingsModel) IsQuitting() bool {
	return m.quitting
}

// RunSettings runs the settings screen and returns the settings as left
// by the player. quit is true when the player asked to leave the program.
func RunSettings(s config.Settings, path string, store ScoreClearer) (config.Settings, bool, error) {
	p := tea.NewProgram(
		NewSettingsModel(s, path, store, 80),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return s, false, fmt.Errorf("tui: settings: %w", err)
	}

	m, ok := finalModel.(SettingsModel)
	if !ok {
		return s, false, nil
	}
	return m.Settings(), m.IsQuitting(), nil
}
