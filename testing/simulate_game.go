package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/tatianab/monty-hall/internal/config"
	"github.com/tatianab/monty-hall/internal/engine"
	"github.com/tatianab/monty-hall/internal/models"
)

// An automated player goes through the same two phases a human does in the
// TUI: pick a door, see what Monty opens, then decide.
func main() {
	rounds := flag.Int("rounds", 10, "number of games to play")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	seed := cfg.Seed
	if seed == 0 {
		if seed, err = engine.NewSeed(); err != nil {
			log.Fatalf("Failed to create seed: %v", err)
		}
	}
	rng := engine.NewRand(seed)

	fmt.Printf("--- %s, player strategy %s, seed %d ---\n\n", cfg.Mode.Label(), cfg.Strategy.Label(), seed)

	var tally models.Tally
	for round := 1; round <= *rounds; round++ {
		fmt.Printf("--- Game %d ---\n", round)

		game, err := engine.NewGame(cfg.Mode, rng)
		if err != nil {
			log.Fatalf("Failed to start game: %v", err)
		}

		pick := models.Door(rng.IntN(models.NumDoors))
		fmt.Printf("Player picks door %s\n", pick)
		game, err = game.Choose(pick, rng)
		if err != nil {
			log.Fatalf("Failed to choose: %v", err)
		}
		fmt.Printf("Monty opens door %s\n", game.Opened())

		if game.Phase() == engine.PhaseRevealed {
			game, err = game.Decide(engine.ByStrategy(cfg.Strategy), rng)
			if err != nil {
				log.Fatalf("Failed to decide: %v", err)
			}
			fmt.Printf("Player ends on door %s\n", game.Final())
		}

		outcome, _ := game.Outcome()
		tally.Add(outcome)
		switch outcome {
		case models.Win:
			fmt.Printf("Car was behind door %s: WON\n\n", game.Prize())
		case models.Loss:
			fmt.Printf("Car was behind door %s: LOST\n\n", game.Prize())
		case models.EarlyReveal:
			fmt.Printf("Monty revealed the car behind door %s: GAME OVER\n\n", game.Prize())
		}
	}

	fmt.Printf("Wins=%d, Losses=%d, Monty revealed=%d, Win rate=%s%%\n",
		tally.Wins, tally.Losses, tally.EarlyReveals, tally.WinPercent())
}
