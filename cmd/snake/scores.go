package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

var flagReset bool

var scoresCmd = &cobra.Command{
	Use:   "scores [difficulty]",
	Short: "Show high scores",
	Long: `Without arguments, summarize every difficulty. With a difficulty,
display its top 10 rounds.

Examples:
  snake scores
  snake scores hard
  snake scores easy --reset   # delete easy scores
  snake scores --reset        # delete all scores`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagReset, "reset", false, "Delete the scores instead of showing them")
}

func runScores(_ *cobra.Command, args []string) error {
	var (
		d      config.Difficulty
		single = len(args) == 1
	)
	if single {
		var err error
		if d, err = config.ParseDifficulty(args[0]); err != nil {
			return err
		}
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	switch {
	case flagReset && single:
		if err := store.ClearScores(d); err != nil {
			return err
		}
		fmt.Printf("Deleted %s scores.\n", d)
		return nil
	case flagReset:
		if err := store.ClearAll(); err != nil {
			return err
		}
		fmt.Println("Deleted all scores.")
		return nil
	case single:
		return printTopScores(store, d)
	default:
		return printStats(store)
	}
}

func printTopScores(store *storage.Store, d config.Difficulty) error {
	scores, err := store.TopScores(d, 10)
	if err != nil {
		return err
	}

	fmt.Printf("High Scores - %s\n", d.Title())
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'snake play --difficulty %s' to set the first high score!\n", d)
		return nil
	}

	fmt.Printf("  %-4s  %-8s  %-6s  %s\n", "Rank", "Score", "Length", "Date")
	fmt.Printf("  %-4s  %-8s  %-6s  %s\n", "----", "-----", "------", "----")

	for i, entry := range scores {
		dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-8d  %-6d  %s\n", i+1, entry.Score, entry.Length, dateStr)
	}
	return nil
}

func printStats(store *storage.Store) error {
	all, err := store.AllStats()
	if err != nil {
		return err
	}

	fmt.Println("High Scores")
	fmt.Println()
	fmt.Printf("  %-8s  %-6s  %-6s  %-7s  %-7s  %s\n", "Level", "Best", "Rounds", "Avg", "Longest", "Last played")
	fmt.Printf("  %-8s  %-6s  %-6s  %-7s  %-7s  %s\n", "-----", "----", "------", "---", "-------", "-----------")

	for _, st := range all {
		last := "-"
		if !st.LastPlayed.IsZero() {
			last = st.LastPlayed.Format("2006-01-02 15:04")
		}
		fmt.Printf("  %-8s  %-6d  %-6d  %-7.1f  %-7d  %s\n",
			st.Difficulty.Title(), st.HighScore, st.Rounds, st.AvgScore, st.LongestLen, last)
	}
	return nil
}
