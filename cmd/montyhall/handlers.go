package main

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/tatianab/monty-hall/internal/config"
	"github.com/tatianab/monty-hall/internal/engine"
	"github.com/tatianab/monty-hall/internal/metrics"
	"github.com/tatianab/monty-hall/internal/models"
	"github.com/tatianab/monty-hall/internal/tui"
)

// loadConfig reads the environment and applies the flags that were set.
func loadConfig(cmd *cobra.Command, f *simFlags) (*config.Config, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	flags := cmd.Flags()
	if flags.Changed("host") {
		if cfg.Mode, err = models.ParseHostMode(f.host); err != nil {
			return nil, err
		}
	}
	if flags.Changed("strategy") {
		if cfg.Strategy, err = models.ParseStrategy(f.strategy); err != nil {
			return nil, err
		}
	}
	if flags.Changed("games") {
		cfg.Games = f.games
	}
	if flags.Changed("seed") {
		cfg.Seed = f.seed
	}
	if flags.Changed("workers") {
		cfg.Workers = f.workers
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// resolveSeed returns the configured seed or a fresh one.
func resolveSeed(cfg *config.Config) (uint64, error) {
	if cfg.Seed != 0 {
		return cfg.Seed, nil
	}
	return engine.NewSeed()
}

func newMetrics(enabled bool) (*prometheus.Registry, *metrics.Collector, error) {
	if !enabled {
		return nil, nil, nil
	}
	registry := prometheus.NewRegistry()
	collector, err := metrics.NewCollector(registry)
	if err != nil {
		return nil, nil, err
	}
	return registry, collector, nil
}

func runSimulate(cmd *cobra.Command, f *simFlags, format string) error {
	if format != "text" && format != "yaml" {
		return fmt.Errorf("unknown format %q (want text or yaml)", format)
	}
	cfg, err := loadConfig(cmd, f)
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	seed, err := resolveSeed(cfg)
	if err != nil {
		return err
	}
	registry, collector, err := newMetrics(f.metrics)
	if err != nil {
		return err
	}

	logger.Info("simulation starting",
		"mode", cfg.Mode, "strategy", cfg.Strategy, "games", cfg.Games, "workers", cfg.Workers, "seed", seed)
	start := time.Now()

	var opts []engine.BatchOption
	if collector != nil {
		opts = append(opts, engine.WithObserver(collector))
	}
	var tally models.Tally
	if cfg.Workers == 1 {
		tally, err = engine.RunBatch(cfg.Mode, cfg.Strategy, cfg.Games, engine.NewRand(seed), opts...)
	} else {
		tally, err = engine.RunBatchParallel(cmd.Context(), cfg.Mode, cfg.Strategy, cfg.Games, cfg.Workers, seed, opts...)
	}
	if err != nil {
		return err
	}
	logger.Info("simulation finished",
		"wins", tally.Wins, "losses", tally.Losses, "early_reveals", tally.EarlyReveals,
		"win_rate", tally.WinRate(), "duration", time.Since(start))

	out := cmd.OutOrStdout()
	report := models.NewReport(cfg.Mode, cfg.Strategy, seed, tally)
	if format == "yaml" {
		err = report.WriteYAML(out)
	} else {
		err = writeTextReport(out, report)
	}
	if err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	if registry != nil {
		fmt.Fprintln(out)
		return metrics.WriteText(out, registry)
	}
	return nil
}

func writeTextReport(w io.Writer, r models.Report) error {
	p := message.NewPrinter(language.English)
	_, err := p.Fprintf(w, `Host:           %s
Strategy:       %s
Games:          %d
Seed:           %d

Wins:           %d
Losses:         %d
Monty revealed: %d
Win rate:       %s%%
`,
		r.Mode.Label(), r.Strategy.Label(), r.Games, r.Seed,
		r.Tally.Wins, r.Tally.Losses, r.Tally.EarlyReveals, r.Tally.WinPercent())
	return err
}

func runPlay(cmd *cobra.Command, f *simFlags) error {
	cfg, err := loadConfig(cmd, f)
	if err != nil {
		return err
	}
	seed, err := resolveSeed(cfg)
	if err != nil {
		return err
	}
	registry, collector, err := newMetrics(f.metrics)
	if err != nil {
		return err
	}

	// The terminal belongs to the game; logs go to a file or nowhere.
	logger := slog.New(slog.DiscardHandler)
	if cfg.DebugLog != "" {
		file, err := tea.LogToFile(cfg.DebugLog, "montyhall")
		if err != nil {
			return fmt.Errorf("open debug log: %w", err)
		}
		defer file.Close()
		logger = slog.New(slog.NewTextHandler(file, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	logger.Info("game starting", "mode", cfg.Mode, "seed", seed)

	err = tui.Run(tui.Options{
		Mode:     cfg.Mode,
		Strategy: cfg.Strategy,
		Games:    cfg.Games,
		Workers:  cfg.Workers,
		Rand:     engine.NewRand(seed),
		Metrics:  collector,
		Logger:   logger,
	})
	if err != nil {
		return fmt.Errorf("run game: %w", err)
	}
	if registry != nil {
		return metrics.WriteText(cmd.OutOrStdout(), registry)
	}
	return nil
}
