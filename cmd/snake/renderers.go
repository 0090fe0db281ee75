package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/registry"
)

var renderersCmd = &cobra.Command{
	Use:   "renderers",
	Short: "List terminal renderers",
	Long:  `Shows the terminal renderers a game can run on. The default comes from the settings file.`,
	Args:  cobra.NoArgs,
	Run:   runRenderers,
}

func runRenderers(_ *cobra.Command, _ []string) {
	runners := registry.List()

	if len(runners) == 0 {
		fmt.Println("No renderers available.")
		return
	}

	settings, _ := config.LoadSettings(config.SettingsPath())

	fmt.Println("Available renderers:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, r := range runners {
		if len(r.ID) > maxIDLen {
			maxIDLen = len(r.ID)
		}
	}

	fmt.Printf("  %-*s  %s\n", maxIDLen, "ID", "Title")
	fmt.Printf("  %-*s  %s\n", maxIDLen, "--", "-----")

	for _, r := range runners {
		title := r.Title
		if r.ID == settings.Renderer {
			title += " (default)"
		}
		fmt.Printf("  %-*s  %s\n", maxIDLen, r.ID, title)
	}

	fmt.Println()
	fmt.Println("Run 'snake play --renderer <id>' to pick one.")
}
