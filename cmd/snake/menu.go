package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/platform/tui"
	"github.com/vovakirdan/tui-snake/internal/session"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with the menu",
	Long: `Start in interactive menu mode.

Pick a difficulty, play, browse high scores per difficulty or change
settings. Space or Esc during a game returns here.

Controls:
  Up/Down/W/S  - Navigate menu
  Left/Right   - Change difficulty
  Enter/Space  - Select
  Q            - Quit

Examples:
  snake menu
  snake menu --renderer tcell
  snake menu --db ./scores.db`,
	Args: cobra.NoArgs,
	RunE: runMenu,
}

func init() {
	menuCmd.Flags().StringVar(&flagRenderer, "renderer", "", "Terminal renderer for games (default from settings)")
}

func runMenu(_ *cobra.Command, _ []string) error {
	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.close()

	ctx, stop := signalContext()
	defer stop()

	return menuLoop(ctx, e, e.settings.DefaultDifficulty)
}

// menuLoop shows the menu until the player quits, running games on the
// chosen renderer in between.
func menuLoop(ctx context.Context, e *env, d config.Difficulty) error {
	for ctx.Err() == nil {
		result, err := tui.RunMenu(d, e.bestScores())
		if err != nil {
			return err
		}
		d = result.Difficulty

		switch result.Choice {
		case tui.ChoicePlay:
			_, rendererID, err := choose(e.settings)
			if err != nil {
				return err
			}
			outcome, err := e.play(ctx, rendererID, d)
			if err != nil {
				return err
			}
			if outcome != session.OutcomeMenu {
				return nil
			}

		case tui.ChoiceScores:
			width, height := terminalSize()
			var src tui.ScoreSource
			if e.store != nil {
				src = e.store
			}
			goBack, err := tui.RunScoreboard(src, d, width, height)
			if err != nil {
				return err
			}
			if !goBack {
				return nil
			}

		case tui.ChoiceSettings:
			var clearer tui.ScoreClearer
			if e.store != nil {
				clearer = e.store
			}
			settings, quit, err := tui.RunSettings(e.settings, config.SettingsPath(), clearer)
			if err != nil {
				return err
			}
			e.settings = settings
			if quit {
				return nil
			}

		default:
			return nil
		}
	}
	return nil
}

// terminalSize returns the stdout size, or 80x24 when it is not a terminal.
func terminalSize() (int, int) {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return width, height
}
