// Package main provides the montyhall command line.
//
// Play the game in the terminal:
//
//	montyhall play
//	montyhall play --host random
//
// Simulate many games:
//
//	montyhall simulate --host knows --strategy switch --games 100000
//	montyhall simulate --host random --format yaml --metrics
//
// # Environment Variables
//
//   - MONTY_HOST_MODE: knows or random (default: knows)
//   - MONTY_STRATEGY: switch, stay or random (default: switch)
//   - MONTY_GAMES: number of simulated games (default: 1000)
//   - MONTY_SEED: seed for repeatable runs, 0 for a fresh one (default: 0)
//   - MONTY_WORKERS: simulation workers (default: 1)
//   - MONTY_LOG_LEVEL, MONTY_LOG_FORMAT: logging on stderr
//   - MONTY_DEBUG_LOG: log file for the interactive game
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/tatianab/monty-hall/internal/config"
)

// Build information, set with -ldflags "-X main.version=...".
var (
	version = "dev"
	commit  = "none"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd := buildRootCmd()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		slog.Error("command execution failed", "error", err)
		os.Exit(1)
	}
}

func buildRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "montyhall",
		Short: "Play and simulate the Monty Hall problem",
		Long: `Three doors, one car, two goats. Pick a door, watch the host open another,
then stick or switch.

Does Monty know where the car is? With a host who knows, switching wins 2/3 of
the time. With a host who opens a door at random, switching confers no advantage,
even when he happens to reveal a goat.`,
		Version:      fmt.Sprintf("%s (commit: %s)", version, commit),
		SilenceUsage: true,
	}

	rootCmd.AddCommand(
		buildPlayCmd(),
		buildSimulateCmd(),
	)
	return rootCmd
}

// newLogger builds the slog logger described by cfg and installs it as the default.
func newLogger(cfg *config.Config, w io.Writer) (*slog.Logger, error) {
	level, err := cfg.Level()
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger, nil
}
