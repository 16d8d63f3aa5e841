package models

import (
	"fmt"
	"strings"
)

// Door identifies one of the three doors on stage.
type Door int

const (
	DoorA Door = iota
	DoorB
	DoorC
)

// NumDoors is fixed; the puzzle is always played with three doors.
const NumDoors = 3

// Doors returns the doors in stage order.
func Doors() [NumDoors]Door {
	return [NumDoors]Door{DoorA, DoorB, DoorC}
}

func (d Door) Valid() bool {
	return d >= DoorA && d <= DoorC
}

func (d Door) String() string {
	switch d {
	case DoorA:
		return "A"
	case DoorB:
		return "B"
	case DoorC:
		return "C"
	}
	return fmt.Sprintf("Door(%d)", int(d))
}

// ParseDoor accepts "a", "B", "door c" and similar.
func ParseDoor(s string) (Door, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	s = strings.TrimPrefix(s, "door")
	switch strings.TrimSpace(s) {
	case "a":
		return DoorA, nil
	case "b":
		return DoorB, nil
	case "c":
		return DoorC, nil
	}
	return 0, fmt.Errorf("unknown door %q", s)
}

func (d Door) MarshalText() ([]byte, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("invalid door %d", int(d))
	}
	return []byte(d.String()), nil
}

func (d *Door) UnmarshalText(text []byte) error {
	v, err := ParseDoor(string(text))
	if err != nil {
		return err
	}
	*d = v
	return nil
}

// HostMode describes what the host knows when he opens a door.
type HostMode int

const (
	// HostKnows never opens the door hiding the car.
	HostKnows HostMode = iota
	// HostRandom opens one of the two other doors at random and may reveal the car.
	HostRandom
)

func (m HostMode) Valid() bool {
	return m == HostKnows || m == HostRandom
}

func (m HostMode) String() string {
	switch m {
	case HostKnows:
		return "knows"
	case HostRandom:
		return "random"
	}
	return fmt.Sprintf("HostMode(%d)", int(m))
}

// Label is the human readable name used by the TUI.
func (m HostMode) Label() string {
	if m == HostRandom {
		return "Monty Doesn't Know"
	}
	return "Monty Knows"
}

func ParseHostMode(s string) (HostMode, error) {
	switch strings.TrimSpace(strings.ToLower(s)) {
	case "knows", "deterministic", "classic":
		return HostKnows, nil
	case "random", "doesnt-know", "doesnt_know":
		return HostRandom, nil
	}
	return 0, fmt.Errorf("unknown host mode %q", s)
}

func (m HostMode) MarshalText() ([]byte, error) {
	if !m.Valid() {
		return nil, fmt.Errorf("invalid host mode %d", int(m))
	}
	return []byte(m.String()), nil
}

func (m *HostMode) UnmarshalText(text []byte) error {
	v, err := ParseHostMode(string(text))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// Strategy governs the player's final decision after the host opens a door.
type Strategy int

const (
	AlwaysSwitch Strategy = iota
	AlwaysStay
	RandomChoice
)

// Strategies returns every strategy in display order.
func Strategies() []Strategy {
	return []Strategy{AlwaysSwitch, AlwaysStay, RandomChoice}
}

func (s Strategy) Valid() bool {
	return s >= AlwaysSwitch && s <= RandomChoice
}

func (s Strategy) String() string {
	switch s {
	case AlwaysSwitch:
		return "switch"
	case AlwaysStay:
		return "stay"
	case RandomChoice:
		return "random"
	}
	return fmt.Sprintf("Strategy(%d)", int(s))
}

func (s Strategy) Label() string {
	switch s {
	case AlwaysSwitch:
		return "Always Switch"
	case AlwaysStay:
		return "Always Stay"
	case RandomChoice:
		return "Random Choice"
	}
	return s.String()
}

// Next cycles through the strategies, used by the simulation controls.
func (s Strategy) Next() Strategy {
	return (s + 1) % (RandomChoice + 1)
}

func ParseStrategy(s string) (Strategy, error) {
	switch strings.TrimSpace(strings.ToLower(s)) {
	case "switch", "always_switch", "always-switch":
		return AlwaysSwitch, nil
	case "stay", "always_stay", "always-stay":
		return AlwaysStay, nil
	case "random", "random_choice", "random-choice":
		return RandomChoice, nil
	}
	return 0, fmt.Errorf("unknown strategy %q", s)
}

func (s Strategy) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid strategy %d", int(s))
	}
	return []byte(s.String()), nil
}

func (s *Strategy) UnmarshalText(text []byte) error {
	v, err := ParseStrategy(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// Outcome is the result of a single game.
type Outcome int

const (
	Win Outcome = iota
	Loss
	// EarlyReveal means the host opened the door with the car. Only a random host can do this.
	EarlyReveal
)

func (o Outcome) Valid() bool {
	return o >= Win && o <= EarlyReveal
}

func (o Outcome) String() string {
	switch o {
	case Win:
		return "win"
	case Loss:
		return "loss"
	case EarlyReveal:
		return "early_reveal"
	}
	return fmt.Sprintf("Outcome(%d)", int(o))
}

func (o Outcome) MarshalText() ([]byte, error) {
	if !o.Valid() {
		return nil, fmt.Errorf("invalid outcome %d", int(o))
	}
	return []byte(o.String()), nil
}

func (o *Outcome) UnmarshalText(text []byte) error {
	switch strings.TrimSpace(strings.ToLower(string(text))) {
	case "win":
		*o = Win
	case "loss", "lose":
		*o = Loss
	case "early_reveal", "revealed":
		*o = EarlyReveal
	default:
		return fmt.Errorf("unknown outcome %q", text)
	}
	return nil
}
