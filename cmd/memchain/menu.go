package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/memory-chain/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with a mode picker menu",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a mode.
After leaving a game you return to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select mode
  Tab          - High scores
  P            - Profile and cosmetics
  Q            - Quit

Examples:
  memchain menu
  memchain menu --fps 30
  memchain menu --db ./memchain.db`,
	Run: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	logger, closeLog := fileLogger()
	defer closeLog()
	configureGames(logger)

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	if err := tui.RunSession(store, loadProfile(store, logger), runtimeConfig(), logger); err != nil {
		logger.Error("menu failed", "err", err)
		fail("running menu: %v", err)
	}
}
