// Package engine runs the Monty Hall puzzle: single trials, the two-phase
// interactive game, and batches of simulated trials.
package engine

import (
	"errors"
	"fmt"

	"github.com/tatianab/monty-hall/internal/models"
)

var (
	ErrInvalidCount    = errors.New("number of games must be at least 1")
	ErrInvalidWorkers  = errors.New("number of workers must be at least 1")
	ErrUnknownMode     = errors.New("unknown host mode")
	ErrUnknownStrategy = errors.New("unknown strategy")
	ErrUnknownDoor     = errors.New("unknown door")
	ErrDoorOpened      = errors.New("door is already open")
	ErrWrongPhase      = errors.New("action not allowed in this phase")
)

// others returns the two doors other than d, in stage order.
func others(d models.Door) [2]models.Door {
	var out [2]models.Door
	i := 0
	for _, door := range models.Doors() {
		if door != d {
			out[i] = door
			i++
		}
	}
	return out
}

// Remaining returns the door that is neither picked nor opened.
func Remaining(picked, opened models.Door) models.Door {
	for _, door := range models.Doors() {
		if door != picked && door != opened {
			return door
		}
	}
	panic(fmt.Sprintf("engine: no remaining door for pick %v and opened %v", picked, opened))
}

// SelectReveal picks the door the host opens. It is never the player's pick.
//
// A host who knows opens the goat door among the other two. When the player
// already holds the car both are goats and the host takes the first one in
// stage order, without consuming randomness. A random host picks uniformly
// between the other two doors regardless of their contents.
func SelectReveal(initialPick, prizeDoor models.Door, mode models.HostMode, rng Rand) models.Door {
	mustDoor(initialPick)
	mustDoor(prizeDoor)
	candidates := others(initialPick)
	switch mode {
	case models.HostKnows:
		if candidates[0] == prizeDoor {
			return candidates[1]
		}
		return candidates[0]
	case models.HostRandom:
		return candidates[rng.IntN(len(candidates))]
	}
	panic(fmt.Sprintf("engine: SelectReveal called with invalid host mode %d", int(mode)))
}

// IsEarlyReveal reports whether a random host just showed the car.
func IsEarlyReveal(openedDoor, prizeDoor models.Door, mode models.HostMode) bool {
	return mode == models.HostRandom && openedDoor == prizeDoor
}

// ResolveFinal applies the strategy to produce the final pick.
// RandomChoice stays on a draw of 0 and switches on 1.
func ResolveFinal(initialPick, openedDoor models.Door, strategy models.Strategy, rng Rand) models.Door {
	remaining := Remaining(initialPick, openedDoor)
	switch strategy {
	case models.AlwaysSwitch:
		return remaining
	case models.AlwaysStay:
		return initialPick
	case models.RandomChoice:
		if rng.IntN(2) == 0 {
			return initialPick
		}
		return remaining
	}
	panic(fmt.Sprintf("engine: ResolveFinal called with invalid strategy %d", int(strategy)))
}

// RunTrial plays one complete game. Randomness is drawn in a fixed order:
// prize, initial pick, host (random host only), final pick (random choice only).
func RunTrial(mode models.HostMode, strategy models.Strategy, rng Rand) models.Outcome {
	prize := models.Door(rng.IntN(models.NumDoors))
	pick := models.Door(rng.IntN(models.NumDoors))

	reveal := OpenDoorPhase(prize, pick, mode, rng)
	if reveal.Early {
		return models.EarlyReveal
	}
	outcome, err := FinalDecisionPhase(pick, reveal.Opened, prize, ByStrategy(strategy), rng)
	if err != nil {
		panic("engine: " + err.Error())
	}
	return outcome
}

// Reveal is the result of the host opening a door.
type Reveal struct {
	Opened models.Door
	// Early is set when the opened door hides the car and the game is over.
	Early bool
}

// Outcome returns EarlyReveal and true when the reveal ended the game.
func (r Reveal) Outcome() (models.Outcome, bool) {
	if r.Early {
		return models.EarlyReveal, true
	}
	return 0, false
}

// OpenDoorPhase is the first half of a game: the host opens a door.
func OpenDoorPhase(prizeDoor, initialPick models.Door, mode models.HostMode, rng Rand) Reveal {
	opened := SelectReveal(initialPick, prizeDoor, mode, rng)
	return Reveal{
		Opened: opened,
		Early:  IsEarlyReveal(opened, prizeDoor, mode),
	}
}

// Decision is how the final pick is made: by an automated strategy or by a
// door a human chose.
type Decision struct {
	strategy models.Strategy
	door     models.Door
	human    bool
}

func ByStrategy(s models.Strategy) Decision {
	return Decision{strategy: s}
}

func PickDoor(d models.Door) Decision {
	return Decision{door: d, human: true}
}

func (d Decision) String() string {
	if d.human {
		return "door " + d.door.String()
	}
	return d.strategy.String()
}

// FinalDecisionPhase is the second half of a game. A human pick may be any
// closed door; picking the opened door is rejected.
func FinalDecisionPhase(initialPick, openedDoor, prizeDoor models.Door, d Decision, rng Rand) (models.Outcome, error) {
	_, outcome, err := decide(initialPick, openedDoor, prizeDoor, d, rng)
	return outcome, err
}

func decide(initialPick, openedDoor, prizeDoor models.Door, d Decision, rng Rand) (models.Door, models.Outcome, error) {
	var final models.Door
	if d.human {
		if !d.door.Valid() {
			return 0, 0, fmt.Errorf("final pick %d: %w", int(d.door), ErrUnknownDoor)
		}
		if d.door == openedDoor {
			return 0, 0, fmt.Errorf("final pick %v: %w", d.door, ErrDoorOpened)
		}
		final = d.door
	} else {
		if !d.strategy.Valid() {
			return 0, 0, fmt.Errorf("strategy %d: %w", int(d.strategy), ErrUnknownStrategy)
		}
		final = ResolveFinal(initialPick, openedDoor, d.strategy, rng)
	}
	if final == prizeDoor {
		return final, models.Win, nil
	}
	return final, models.Loss, nil
}

func mustDoor(d models.Door) {
	if !d.Valid() {
		panic(fmt.Sprintf("engine: invalid door %d", int(d)))
	}
}
