package main

import (
	"fmt"
	"os"
	"slices"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/memory-chain/internal/progress"
	"github.com/vovakirdan/memory-chain/internal/registry"
	"github.com/vovakirdan/memory-chain/internal/session"
	"github.com/vovakirdan/memory-chain/internal/storage"
)

var (
	flagTheme      string
	flagCardDesign string
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show achievements and select cosmetics",
	Long: `Show best scores, the daily streak and achievements, and select the
active theme or card design. Only unlocked cosmetics can be selected.

Examples:
  memchain profile
  memchain profile --theme ocean
  memchain profile --card-design stars`,
	Args: cobra.NoArgs,
	Run:  runProfile,
}

func init() {
	profileCmd.Flags().StringVar(&flagTheme, "theme", "", "Select an unlocked theme")
	profileCmd.Flags().StringVar(&flagCardDesign, "card-design", "", "Select an unlocked card design")
}

func runProfile(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fail("opening database: %v", err)
	}
	defer store.Close()

	p := progress.Load(store, newLogger(os.Stderr))
	if flagTheme != "" {
		if err := p.SetTheme(flagTheme); err != nil {
			fail("%v", err)
		}
		fmt.Printf("Theme set to %s.\n", flagTheme)
	}
	if flagCardDesign != "" {
		if err := p.SetCardDesign(flagCardDesign); err != nil {
			fail("%v", err)
		}
		fmt.Printf("Card design set to %s.\n", flagCardDesign)
	}
	if flagTheme != "" || flagCardDesign != "" {
		return
	}

	d := p.Data()
	fmt.Println("Best Scores")
	fmt.Println()
	for _, m := range registry.List() {
		fmt.Printf("  %-14s %d\n", m.Title, d.BestScores[m.ID])
	}

	fmt.Println()
	fmt.Printf("Daily streak: %d", d.Streak.Count)
	if d.Streak.Last != "" {
		fmt.Printf(" (last played %s)", d.Streak.Last)
	}
	fmt.Println()
	fmt.Printf("Games played: %d\n", countGames(d.History))

	fmt.Println()
	fmt.Println("Achievements")
	fmt.Println()
	for _, a := range session.Catalog() {
		mark := " "
		if slices.Contains(d.Achievements, a.Key) {
			mark = "x"
		}
		fmt.Printf("  [%s] %s\n", mark, a.Title)
	}

	fmt.Println()
	fmt.Printf("Themes:       %s (active %s)\n", strings.Join(d.Themes, ", "), d.ActiveTheme)
	fmt.Printf("Card designs: %s (active %s)\n", strings.Join(d.CardDesigns, ", "), d.ActiveCardDesign)

	if days := recentDays(d.History, 5); len(days) > 0 {
		fmt.Println()
		fmt.Println("Recent days")
		fmt.Println()
		for _, day := range days {
			best := 0
			for _, e := range d.History[day] {
				best = max(best, e.Score)
			}
			fmt.Printf("  %s  %d games, best %d\n", day, len(d.History[day]), best)
		}
	}
}

func countGames(history map[string][]progress.HistoryEntry) int {
	n := 0
	for _, entries := range history {
		n += len(entries)
	}
	return n
}

// recentDays returns up to n date keys, newest first.
func recentDays(history map[string][]progress.HistoryEntry, n int) []string {
	days := make([]string, 0, len(history))
	for day := range history {
		days = append(days, day)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(days)))
	if len(days) > n {
		days = days[:n]
	}
	return days
}
