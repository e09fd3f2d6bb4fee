package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/memory-chain/internal/httpapi"
	"github.com/vovakirdan/memory-chain/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHTTPAddr    string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the SSH server",
	Long: `Start an SSH server that lets users connect and play.

Each SSH connection gets its own session with the mode menu and its own
profile. Scores are stored per server (all users share the leaderboard).
With --http, a read-only JSON API over the same database is served too.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.memchain/host_key

Examples:
  memchain serve                          # Listen on :23234
  memchain serve --ssh :2222              # Listen on port 2222
  memchain serve --http :8080             # Also serve the JSON API
  memchain serve --db ./memchain.db       # Use a specific database

Users can connect with:
  ssh localhost -p 23234`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHTTPAddr, "http", "", "HTTP API address (host:port); empty disables it")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

func runServe(_ *cobra.Command, _ []string) {
	logger := newLogger(os.Stderr)
	configureGames(logger)

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	server, err := tui.NewSSHServer(tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
		TickRate:    flagFPS,
	}, store, logger.WithPrefix("ssh"))
	if err != nil {
		fail("creating server: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 2)
	go func() { errCh <- server.ListenAndServe(ctx) }()
	running := 1

	if flagHTTPAddr != "" {
		api := httpapi.New(store, logger.WithPrefix("http"))
		go func() { errCh <- api.ListenAndServe(ctx, flagHTTPAddr) }()
		running++
	}

	fmt.Printf("Serving Memory Chain over SSH on %s\n", flagSSHAddr)
	if flagHTTPAddr != "" {
		fmt.Printf("JSON API on %s\n", flagHTTPAddr)
	}
	fmt.Println("Press Ctrl+C to stop")

	var firstErr error
	for ; running > 0; running-- {
		if err := <-errCh; err != nil && firstErr == nil {
			firstErr = err
			stop() // one server failing takes the other down
		}
	}
	if firstErr != nil {
		logger.Error("server error", "err", firstErr)
		fail("server error: %v", firstErr)
	}
}
