package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/memory-chain/internal/config"
	"github.com/vovakirdan/memory-chain/internal/core"
	"github.com/vovakirdan/memory-chain/internal/games/memchain"
	"github.com/vovakirdan/memory-chain/internal/progress"
	"github.com/vovakirdan/memory-chain/internal/storage"
)

// newLogger builds the command logger at the --log-level level.
func newLogger(w io.Writer) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "memchain",
	})
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		fail("invalid --log-level %q", flagLogLevel)
	}
	logger.SetLevel(level)
	return logger
}

// fileLogger logs to ~/.memchain/memchain.log so the alt screen stays clean.
// The returned closer must be called on exit.
func fileLogger() (*log.Logger, func()) {
	path, err := storage.ExpandPath("~/.memchain/memchain.log")
	if err == nil {
		err = os.MkdirAll(filepath.Dir(path), 0o755)
	}
	if err != nil {
		return newLogger(io.Discard), func() {}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return newLogger(io.Discard), func() {}
	}
	return newLogger(f), func() { f.Close() }
}

// configureGames validates the gameplay flags and hands them to the modes.
func configureGames(logger *log.Logger) {
	if _, err := config.ParsePreset(flagDifficulty); err != nil {
		fail("%v", err)
	}
	if _, err := config.Load(flagConfig); err != nil {
		fail("%v", err)
	}
	memchain.SetConfigPath(flagConfig)
	memchain.SetDifficultyPreset(flagDifficulty)
	memchain.SetLogger(logger)
}

// openStore opens the database. Failure is a warning: play continues
// without persistence.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open database: %v\n", err)
		logger.Warn("could not open database", "path", flagDBPath, "err", err)
		return nil
	}
	return store
}

// loadProfile loads the local profile, in memory when there is no store.
func loadProfile(store *storage.Store, logger *log.Logger) *progress.Profile {
	if store == nil {
		return progress.Load(progress.NewMemoryKV(), logger)
	}
	return progress.Load(store, logger)
}

// runtimeConfig sizes the game to the terminal.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}
