package main

import (
	"github.com/spf13/cobra"

	"github.com/tatianab/monty-hall/internal/models"
)

// simFlags are shared by play and simulate. Flags that were not set leave
// the environment configuration alone.
type simFlags struct {
	host     string
	strategy string
	games    int
	seed     uint64
	workers  int
	metrics  bool
}

func (f *simFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.host, "host", "", "Host mode: knows or random (env MONTY_HOST_MODE)")
	cmd.Flags().StringVarP(&f.strategy, "strategy", "s", "", "Strategy: switch, stay or random (env MONTY_STRATEGY)")
	cmd.Flags().IntVarP(&f.games, "games", "n", 0, "Number of games to simulate (env MONTY_GAMES)")
	cmd.Flags().Uint64Var(&f.seed, "seed", 0, "Seed for a repeatable run, 0 for a fresh one (env MONTY_SEED)")
	cmd.Flags().IntVarP(&f.workers, "workers", "w", 0, "Simulation workers (env MONTY_WORKERS)")
	cmd.Flags().BoolVar(&f.metrics, "metrics", false, "Print prometheus metrics when done")

	_ = cmd.RegisterFlagCompletionFunc("host", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{models.HostKnows.String(), models.HostRandom.String()}, cobra.ShellCompDirectiveNoFileComp
	})
	_ = cmd.RegisterFlagCompletionFunc("strategy", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return strategyNames(), cobra.ShellCompDirectiveNoFileComp
	})
}

func buildPlayCmd() *cobra.Command {
	var flags simFlags
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play the game in the terminal",
		Long: `Play Monty Hall interactively. Pick a door with a, b or c, then keep (k) or
switch (s). The side panel runs simulations with the selected strategy and
keeps the results of every game you play.`,
		Example: `  # Play against a host who knows
  montyhall play

  # Play against a host who opens doors at random
  montyhall play --host random`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlay(cmd, &flags)
		},
	}
	flags.register(cmd)
	return cmd
}

func buildSimulateCmd() *cobra.Command {
	var (
		flags  simFlags
		format string
	)
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Simulate many games and print the results",
		Example: `  # 100,000 games, always switching, host knows
  montyhall simulate -n 100000

  # Random host, YAML report, repeatable
  montyhall simulate --host random --strategy stay --seed 42 --format yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSimulate(cmd, &flags, format)
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVarP(&format, "format", "f", "text", "Output format: text or yaml")
	return cmd
}

func strategyNames() []string {
	var out []string
	for _, s := range models.Strategies() {
		out = append(out, s.String())
	}
	return out
}
