package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/memory-chain/internal/registry"
	"github.com/vovakirdan/memory-chain/internal/storage"
)

var flagClearScores bool

var scoresCmd = &cobra.Command{
	Use:   "scores <mode>",
	Short: "Show high scores for a mode",
	Long: `Display the top 10 high scores for the specified mode.

Examples:
  memchain scores letters
  memchain scores cards-words
  memchain scores words --clear`,
	Args: cobra.ExactArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagClearScores, "clear", false, "Delete all scores for the mode")
}

func runScores(_ *cobra.Command, args []string) {
	mode := args[0]
	info, ok := registry.Info(mode)
	if !ok {
		fail("unknown mode %q\nRun 'memchain list' to see available modes.", mode)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fail("opening database: %v", err)
	}
	defer store.Close()

	if flagClearScores {
		if err := store.ClearScores(mode); err != nil {
			fail("%v", err)
		}
		fmt.Printf("Cleared scores for %s.\n", info.Title)
		return
	}

	scores, err := store.TopScores(mode, 10)
	if err != nil {
		fail("retrieving scores: %v", err)
	}

	fmt.Printf("High Scores - %s\n", info.Title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'memchain play %s' to set the first high score!\n", mode)
		return
	}

	fmt.Printf("  %-4s  %-10s  %s\n", "Rank", "Score", "Date")
	fmt.Printf("  %-4s  %-10s  %s\n", "----", "-----", "----")
	for i, entry := range scores {
		fmt.Printf("  %-4d  %-10d  %s\n", i+1, entry.Score, entry.CreatedAt.Local().Format("2006-01-02 15:04"))
	}

	fmt.Println()
	if stats, err := store.GetGameStats(mode); err == nil {
		fmt.Printf("Best: %d  Games: %d  Average: %.0f\n", stats.HighScore, stats.GamesCount, stats.AvgScore)
	}
}
