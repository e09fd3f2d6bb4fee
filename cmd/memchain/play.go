package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/memory-chain/internal/platform/tui"
	"github.com/vovakirdan/memory-chain/internal/registry"
)

var playCmd = &cobra.Command{
	Use:   "play <mode>",
	Short: "Play a mode",
	Long: `Start playing the specified mode.

Controls:
  Letters/Words   - Type the sequence, Enter to submit
  Cards           - Arrows/hjkl to move, Space/Enter to flip
  Ctrl+E          - Extra life
  Ctrl+T          - Slow time
  Ctrl+R          - Reveal
  R               - Restart (after game over)
  Esc             - Leave the game
  Ctrl+C          - Quit

Difficulty options:
  easy   - Start with a gentler performance factor
  normal - Start at the baseline
  hard   - Start with a tougher performance factor
  fixed  - Baseline factor that never adapts

Examples:
  memchain play letters
  memchain play words --difficulty easy
  memchain play cards-letters --seed 42
  memchain play words --config ./my-memchain.toml`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

func runPlay(_ *cobra.Command, args []string) {
	mode := args[0]
	if !registry.Exists(mode) {
		fail("unknown mode %q\nRun 'memchain list' to see available modes.", mode)
	}

	logger, closeLog := fileLogger()
	defer closeLog()
	configureGames(logger)

	game, err := registry.Create(mode)
	if err != nil {
		fail("creating game: %v", err)
	}

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}
	recorder := tui.NewRecorder(store, loadProfile(store, logger), logger)

	if err := tui.Run(game, recorder, runtimeConfig()); err != nil {
		logger.Error("game failed", "err", err)
		fail("running game: %v", err)
	}
}
