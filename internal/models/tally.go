package models

import "strconv"

// Tally counts outcomes across a batch or an interactive session.
type Tally struct {
	Wins         int `yaml:"wins"`
	Losses       int `yaml:"losses"`
	EarlyReveals int `yaml:"early_reveals"`
}

// Add records a single outcome.
func (t *Tally) Add(o Outcome) {
	switch o {
	case Win:
		t.Wins++
	case Loss:
		t.Losses++
	case EarlyReveal:
		t.EarlyReveals++
	default:
		panic("models: Tally.Add called with invalid outcome " + o.String())
	}
}

// Merge returns the sum of two tallies.
func (t Tally) Merge(other Tally) Tally {
	return Tally{
		Wins:         t.Wins + other.Wins,
		Losses:       t.Losses + other.Losses,
		EarlyReveals: t.EarlyReveals + other.EarlyReveals,
	}
}

// Total is the number of games played, early reveals included.
func (t Tally) Total() int {
	return t.Wins + t.Losses + t.EarlyReveals
}

// Decided is the number of games that reached a final pick.
func (t Tally) Decided() int {
	return t.Wins + t.Losses
}

// WinRate is wins over decided games. Early reveals are not in the
// denominator, and a tally with no decided games has a win rate of 0.
func (t Tally) WinRate() float64 {
	d := t.Decided()
	if d <= 0 {
		return 0
	}
	return float64(t.Wins) / float64(d)
}

// WinPercent formats the win rate as a percentage with one decimal.
func (t Tally) WinPercent() string {
	return strconv.FormatFloat(t.WinRate()*100, 'f', 1, 64)
}
