// snake is a real-time Snake game for the terminal.
//
// Usage:
//
//	snake play               - Play at the default difficulty
//	snake menu               - Start with the menu
//	snake scores [level]     - Show high scores
//	snake renderers          - List terminal renderers
//	snake serve              - Host the game over SSH
//	snake check              - Verify config, settings and database
//
// Global flags:
//
//	--seed <value>     - Set RNG seed for reproducible rounds
//	--db <path>        - Set database path (default: ~/.tui-snake/scores.db)
//	--config <path>    - Use a custom snake.yaml
//	--log-level <lvl>  - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/storage"

	// Import terminal front ends to register them
	_ "github.com/vovakirdan/tui-snake/internal/platform/term"
	_ "github.com/vovakirdan/tui-snake/internal/platform/tui"
)

var (
	// Global flags
	flagSeed     uint64
	flagDBPath   string
	flagConfig   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "snake",
	Short: "Snake - the classic game in your terminal",
	Long: `Snake is a real-time terminal game: steer the snake, eat food,
grab power-ups and avoid biting yourself. The board wraps at every edge.

Available commands:
  play       - Play a round right away
  menu       - Menu with difficulty, high scores and settings
  scores     - View high scores
  renderers  - List terminal renderers
  serve      - Start SSH server for remote play
  check      - Verify config, settings and database

Examples:
  snake play
  snake play --difficulty hard --renderer tcell
  snake menu
  snake scores extreme
  snake serve --ssh :2222`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().Uint64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", storage.DefaultPath, "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom snake.yaml")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(renderersCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(checkCmd)
}
