package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-snake/internal/config"
)

// MenuChoice is what the player picked in the main menu.
type MenuChoice int

const (
	ChoiceNone MenuChoice = iota
	ChoicePlay
	ChoiceScores
	ChoiceSettings
	ChoiceQuit
)

// Menu rows.
const (
	rowPlay = iota
	rowDifficulty
	rowScores
	rowSettings
	rowQuit
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("10"))
	cursorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229"))
	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// MenuModel is the Bubble Tea model for the main menu.
type MenuModel struct {
	cursor     int
	difficulty config.Difficulty
	best       map[config.Difficulty]int
	settings   bool // Settings row available
	width      int
	height     int
	keys       MenuKeyMap
	help       help.Model
	choice     MenuChoice
}

// NewMenuModel creates a menu preselecting difficulty. best holds the
// high score per difficulty and may be nil. The settings row is hidden
// when withSettings is false.
func NewMenuModel(d config.Difficulty, best map[config.Difficulty]int, withSettings bool, width, height int) MenuModel {
	return MenuModel{
		difficulty: d,
		best:       best,
		settings:   withSettings,
		width:      width,
		height:     height,
		keys:       DefaultMenuKeyMap(),
		help:       help.New(),
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	}

	return m, nil
}

func (m MenuModel) rows() []int {
	if m.settings {
		return []int{rowPlay, rowDifficulty, rowScores, rowSettings, rowQuit}
	}
	return []int{rowPlay, rowDifficulty, rowScores, rowQuit}
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	rows := m.rows()

	switch {
	case key.Matches(msg, m.keys.Quit), key.Matches(msg, m.keys.Back):
		m.choice = ChoiceQuit
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		m.cursor = (m.cursor + len(rows) - 1) % len(rows)

	case key.Matches(msg, m.keys.Down):
		m.cursor = (m.cursor + 1) % len(rows)

	case key.Matches(msg, m.keys.Left):
		if rows[m.cursor] == rowDifficulty {
			m.difficulty = m.difficulty.Prev()
		}

	case key.Matches(msg, m.keys.Right):
		if rows[m.cursor] == rowDifficulty {
			m.difficulty = m.difficulty.Next()
		}

	case key.Matches(msg, m.keys.Select):
		switch rows[m.cursor] {
		case rowPlay:
			m.choice = ChoicePlay
		case rowDifficulty:
			m.difficulty = m.difficulty.Next()
			return m, nil
		case rowScores:
			m.choice = ChoiceScores
		case rowSettings:
			m.choice = ChoiceSettings
		case rowQuit:
			m.choice = ChoiceQuit
		}
		return m, tea.Quit
	}

	return m, nil
}

func (m MenuModel) label(row int) string {
	switch row {
	case rowPlay:
		return "Play"
	case rowDifficulty:
		return fmt.Sprintf("Difficulty: < %s >", m.difficulty.Title())
	case rowScores:
		return "High Scores"
	case rowSettings:
		return "Settings"
	default:
		return "Quit"
	}
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.choice != ChoiceNone {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("  S N A K E  "), m.width))
	b.WriteString("\n\n")

	if best, ok := m.best[m.difficulty]; ok && best > 0 {
		b.WriteString(centerText(dimStyle.Render(fmt.Sprintf("Best on %s: %d", m.difficulty.Title(), best)), m.width))
	}
	b.WriteString("\n\n")

	for i, row := range m.rows() {
		line := "  " + m.label(row)
		if i == m.cursor {
			line = cursorStyle.Render("> " + m.label(row))
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(dimStyle.Render(m.help.View(m.keys)), m.width))
	b.WriteString("\n")

	return b.String()
}

// Choice returns what the player picked, or ChoiceNone.
func (m MenuModel) Choice() MenuChoice {
	return m.choice
}

// Difficulty returns the selected difficulty.
func (m MenuModel) Difficulty() config.Difficulty {
	return m.difficulty
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	padding := (width - w) / 2
	return strings.Repeat(" ", padding) + text
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	Choice     MenuChoice
	Difficulty config.Difficulty
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(d config.Difficulty, best map[config.Difficulty]int) (MenuResult, error) {
	p := tea.NewProgram(
		NewMenuModel(d, best, true, 80, 24),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Choice: ChoiceQuit, Difficulty: d}, fmt.Errorf("tui: menu: %w", err)
	}

	m, ok := finalModel.(MenuModel)
	if !ok || m.Choice() == ChoiceNone {
		return MenuResult{Choice: ChoiceQuit, Difficulty: d}, nil
	}
	return MenuResult{Choice: m.Choice(), Difficulty: m.Difficulty()}, nil
}
