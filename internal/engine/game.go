package engine

import (
	"fmt"

	"github.com/tatianab/monty-hall/internal/models"
)

// Phase is the stage of an interactive game.
type Phase int

const (
	PhaseInitial Phase = iota
	PhaseRevealed
	PhaseFinal
)

func (p Phase) String() string {
	switch p {
	case PhaseInitial:
		return "initial"
	case PhaseRevealed:
		return "revealed"
	case PhaseFinal:
		return "final"
	}
	return fmt.Sprintf("Phase(%d)", int(p))
}

// Game is an interactive game in progress. It is a value: every transition
// returns a new Game and leaves the receiver untouched.
type Game struct {
	mode    models.HostMode
	phase   Phase
	prize   models.Door
	pick    models.Door
	opened  models.Door
	final   models.Door
	outcome models.Outcome
}

// NewGame places the car behind a random door.
func NewGame(mode models.HostMode, rng Rand) (Game, error) {
	if !mode.Valid() {
		return Game{}, fmt.Errorf("host mode %d: %w", int(mode), ErrUnknownMode)
	}
	return Game{
		mode:  mode,
		phase: PhaseInitial,
		prize: models.Door(rng.IntN(models.NumDoors)),
	}, nil
}

// Choose records the first pick and lets the host open a door. The game ends
// here when a random host reveals the car.
func (g Game) Choose(door models.Door, rng Rand) (Game, error) {
	if g.phase != PhaseInitial {
		return g, fmt.Errorf("choose in %v phase: %w", g.phase, ErrWrongPhase)
	}
	if !door.Valid() {
		return g, fmt.Errorf("choose %d: %w", int(door), ErrUnknownDoor)
	}
	g.pick = door
	reveal := OpenDoorPhase(g.prize, door, g.mode, rng)
	g.opened = reveal.Opened
	if o, done := reveal.Outcome(); done {
		g.outcome = o
		g.phase = PhaseFinal
		return g, nil
	}
	g.phase = PhaseRevealed
	return g, nil
}

// Decide makes the final pick and finishes the game.
func (g Game) Decide(d Decision, rng Rand) (Game, error) {
	if g.phase != PhaseRevealed {
		return g, fmt.Errorf("decide in %v phase: %w", g.phase, ErrWrongPhase)
	}
	final, outcome, err := decide(g.pick, g.opened, g.prize, d, rng)
	if err != nil {
		return g, err
	}
	g.final = final
	g.outcome = outcome
	g.phase = PhaseFinal
	return g, nil
}

func (g Game) Mode() models.HostMode { return g.mode }
func (g Game) Phase() Phase          { return g.phase }
func (g Game) Pick() models.Door     { return g.pick }
func (g Game) Opened() models.Door   { return g.opened }
func (g Game) Final() models.Door    { return g.final }

// Prize is only meant to be shown once the game is over.
func (g Game) Prize() models.Door { return g.prize }

// SwitchDoor is the closed door the player could switch to.
func (g Game) SwitchDoor() models.Door {
	return Remaining(g.pick, g.opened)
}

// Outcome returns the result once the game is in its final phase.
func (g Game) Outcome() (models.Outcome, bool) {
	if g.phase != PhaseFinal {
		return 0, false
	}
	return g.outcome, true
}
