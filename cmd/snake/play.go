package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/registry"
	"github.com/vovakirdan/tui-snake/internal/session"
)

var (
	flagDifficulty string
	flagRenderer   string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a round",
	Long: `Start playing right away.

Controls:
  WASD/Arrows  - Steer (letters in either case)
  P            - Pause
  M            - Mute
  R            - Restart (paused or after game over)
  Space/Esc    - Menu
  Q/Ctrl+C     - Quit
  Ctrl+S       - Screenshot (Bubble Tea renderer)

Difficulty options:
  easy, medium, hard, extreme

Examples:
  snake play
  snake play --difficulty extreme
  snake play --renderer ansi
  snake play --config ./my-snake.yaml --seed 42`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty: easy, medium, hard, extreme (default from settings)")
	playCmd.Flags().StringVar(&flagRenderer, "renderer", "", "Terminal renderer, see 'snake renderers' (default from settings)")
}

// choose resolves the difficulty and renderer flags against the settings.
func choose(s config.Settings) (config.Difficulty, string, error) {
	d := s.DefaultDifficulty
	if flagDifficulty != "" {
		parsed, err := config.ParseDifficulty(flagDifficulty)
		if err != nil {
			return d, "", err
		}
		d = parsed
	}

	id := s.Renderer
	if flagRenderer != "" {
		id = flagRenderer
	}
	if !registry.Exists(id) {
		return d, "", fmt.Errorf("unknown renderer %q, run 'snake renderers' to see available ones", id)
	}
	return d, id, nil
}

func runPlay(_ *cobra.Command, _ []string) error {
	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.close()

	d, rendererID, err := choose(e.settings)
	if err != nil {
		return err
	}

	ctx, stop := signalContext()
	defer stop()

	outcome, err := e.play(ctx, rendererID, d)
	if err != nil {
		return err
	}
	if outcome == session.OutcomeMenu {
		return menuLoop(ctx, e, d)
	}
	return nil
}
