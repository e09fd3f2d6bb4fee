// memchain is a terminal memory game: memorize chains of letters or words,
// or match pairs of cards, while the difficulty adapts to how well you play.
//
// Usage:
//
//	memchain list              - List available modes
//	memchain play <mode>       - Play a mode
//	memchain menu              - Pick modes interactively
//	memchain scores <mode>     - Show high scores for a mode
//	memchain profile           - Show achievements and pick cosmetics
//	memchain serve             - Serve the menu over SSH (and a JSON API)
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible games
//	--db <path>           - Set database path (default: ~/.memchain/memchain.db)
//	--config <path>       - Load gameplay config from a YAML or TOML file
//	--difficulty <preset> - easy, normal, hard or fixed
//	--log-level <level>   - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	// Import games to register them
	_ "github.com/vovakirdan/memory-chain/internal/games/memchain"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string
)

func main() {
	// A missing .env is fine; variables may come from the real environment.
	_ = godotenv.Load()
	initFlags()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "memchain",
	Short: "Memory Chain - train your memory in the terminal",
	Long: `Memory Chain shows you a chain of letters or words one item at a time
and asks you to type it back, or deals a board of cards to match in pairs.
Difficulty adapts to how quickly and accurately you answer.

Available commands:
  list     - Show all modes
  play     - Play a specific mode directly
  menu     - Interactive mode picker with scores and profile
  scores   - View high scores
  profile  - View achievements and select unlocked cosmetics
  serve    - Start SSH server for remote play

Examples:
  memchain list
  memchain play letters
  memchain play cards-words --difficulty hard
  memchain menu
  memchain serve --ssh :2222 --http :8080
  memchain scores words`,
	SilenceUsage: true,
}

// initFlags registers flags; environment variables provide the defaults so
// they must be read after .env is loaded.
func initFlags() {
	pf := rootCmd.PersistentFlags()
	pf.IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	pf.StringVar(&flagDBPath, "db", envOr("MEMCHAIN_DB", "~/.memchain/memchain.db"), "Path to the database")
	pf.StringVar(&flagConfig, "config", os.Getenv("MEMCHAIN_CONFIG"), "Path to a gameplay config (YAML or TOML)")
	pf.StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	pf.StringVar(&flagLogLevel, "log-level", envOr("MEMCHAIN_LOG_LEVEL", "info"), "Log level: debug, info, warn, error")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(serveCmd)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// fail prints an error and exits.
func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
