package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/layout"
	"github.com/vovakirdan/tui-snake/internal/registry"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify config, settings and database",
	Long: `Run a smoke check of everything a game touches: the snake.yaml tuning,
the settings file (loaded and saved back), the scores database, the
configured renderer and the terminal size.

Examples:
  snake check
  snake check --config ./my-snake.yaml --db /tmp/scores.db`,
	Args: cobra.NoArgs,
	RunE: runCheck,
}

func runCheck(_ *cobra.Command, _ []string) error {
	failed := 0
	report := func(name string, err error, detail string) {
		if err != nil {
			failed++
			fmt.Printf("  %-10s FAIL: %v\n", name, err)
			return
		}
		fmt.Printf("  %-10s ok %s\n", name, detail)
	}

	fmt.Println("Checking snake setup:")

	game, err := config.Load(flagConfig)
	report("config", err, fmt.Sprintf("(board %dx%d)", game.Board.Width, game.Board.Height))

	path := config.SettingsPath()
	settings, err := config.LoadSettings(path)
	if err == nil {
		err = config.SaveSettings(path, settings)
	}
	report("settings", err, "("+path+")")

	store, err := storage.Open(flagDBPath)
	detail := ""
	if err == nil {
		var all []*storage.Stats
		all, err = store.AllStats()
		rounds := 0
		for _, st := range all {
			rounds += st.Rounds
		}
		detail = fmt.Sprintf("(%d rounds recorded)", rounds)
		store.Close()
	}
	report("database", err, detail)

	if registry.Exists(settings.Renderer) {
		report("renderer", nil, "("+settings.Renderer+")")
	} else {
		report("renderer", fmt.Errorf("unknown renderer %q", settings.Renderer), "")
	}

	minW, minH := layout.MinSize(core.NewGrid(game.Board.Width, game.Board.Height))
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err != nil {
		fmt.Printf("  %-10s not a terminal (need %dx%d)\n", "terminal", minW, minH)
	} else if w < minW || h < minH {
		fmt.Printf("  %-10s %dx%d is too small, need %dx%d\n", "terminal", w, h, minW, minH)
	} else {
		fmt.Printf("  %-10s ok (%dx%d)\n", "terminal", w, h)
	}

	if failed > 0 {
		return fmt.Errorf("%d check(s) failed", failed)
	}
	return nil
}
