package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/registry"
	"github.com/vovakirdan/tui-snake/internal/render"
	"github.com/vovakirdan/tui-snake/internal/session"
)

func init() {
	registry.Register("tea", func() registry.Runner { return teaRunner{} })
}

type teaRunner struct{}

func (teaRunner) ID() string    { return "tea" }
func (teaRunner) Title() string { return "Bubble Tea" }

func (teaRunner) Run(ctx context.Context, s *session.Session) error {
	return Run(ctx, s)
}

// GameModel is the Bubble Tea model for one game session. The session
// draws into a screen buffer that View prints.
type GameModel struct {
	session  *session.Session
	sink     *render.ScreenSink
	gen      int
	sized    bool
	quitting bool
	err      error

	// screenshotDir receives ctrl+s dumps; empty disables them.
	screenshotDir string

	// bell receives BEL bytes for bell ops; nil keeps the game silent.
	bell io.Writer
	rung int
}

// NewGameModel creates a model around s. The buffer starts at width x
// height and follows window size messages. gen tags its ticks.
func NewGameModel(s *session.Session, gen, width, height int) GameModel {
	m := GameModel{
		session: s,
		sink:    render.NewScreenSink(width, height),
		gen:     gen,
	}
	if dir := config.AppDir(); dir != "" {
		m.screenshotDir = filepath.Join(dir, "screenshots")
	}
	if width > 0 && height > 0 {
		s.Resize(width, height)
		m.sized = true
		m.draw()
	}
	return m
}

// WithBell returns a copy of m that rings bell ops on w, usually the
// program's output.
func (m GameModel) WithBell(w io.Writer) GameModel {
	m.bell = w
	m.rung = m.sink.Bells
	return m
}

// Init starts the tick loop.
func (m GameModel) Init() tea.Cmd {
	return tickCmd(m.gen, m.session.Interval())
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.sink.Screen.Resize(msg.Width, msg.Height)
		m.session.Resize(msg.Width, msg.Height)
		m.sized = true
		m.draw()
		return m, nil

	case tea.BlurMsg:
		m.session.FocusLost()
		m.draw()
		return m, nil

	case TickMsg:
		if msg.Gen != m.gen {
			return m, nil
		}
		m.session.Tick()
		m.draw()
		if m.err != nil {
			return m, tea.Quit
		}
		return m, tea.Batch(tickCmd(m.gen, m.session.Interval()), m.ringCmd())
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action := MapKey(msg)
	if action == core.ActionNone {
		return m, nil
	}
	m.session.HandleAction(action)
	if m.session.Done() {
		m.quitting = true
		return m, tea.Quit
	}
	m.draw()
	return m, m.ringCmd()
}

func (m *GameModel) draw() {
	if !m.sized {
		return
	}
	if err := m.session.Draw(m.sink); err != nil {
		m.err = err
	}
}

// ringCmd writes one BEL per bell op drawn since the last call.
func (m *GameModel) ringCmd() tea.Cmd {
	n := m.sink.Bells - m.rung
	m.rung = m.sink.Bells
	if n <= 0 || m.bell == nil {
		return nil
	}
	w := m.bell
	return func() tea.Msg {
		//nolint:errcheck // Best-effort bell
		io.WriteString(w, strings.Repeat("\a", n))
		return nil
	}
}

// saveScreenshot saves the current screen to a file.
func (m *GameModel) saveScreenshot() {
	if m.screenshotDir == "" {
		return
	}
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(m.screenshotDir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("snake_%s_%s.txt", m.session.Difficulty(), timestamp)
	path := filepath.Join(m.screenshotDir, filename)

	if err := os.WriteFile(path, []byte(m.sink.Screen.String()), 0o600); err != nil {
		m.session.Logger().Warn("cannot save screenshot", "path", path, "err", err)
		return
	}
	m.session.Logger().Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}
	return RenderScreen(m.sink.Screen)
}

// Session returns the wrapped session.
func (m GameModel) Session() *session.Session {
	return m.session
}

// Err returns the drawing error that stopped the model, if any.
func (m GameModel) Err() error {
	return m.err
}

// Run plays s in a Bubble Tea program until the player quits or asks for
// the menu, or ctx is cancelled.
func Run(ctx context.Context, s *session.Session) error {
	p := tea.NewProgram(
		NewGameModel(s, 0, 0, 0).WithBell(os.Stdout),
		tea.WithAltScreen(),
		tea.WithReportFocus(),
		tea.WithContext(ctx),
	)

	final, err := p.Run()
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("tui: %w", err)
	}
	if gm, ok := final.(GameModel); ok && gm.Err() != nil {
		return gm.Err()
	}
	return nil
}
