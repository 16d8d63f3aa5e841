package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tatianab/monty-hall/internal/engine"
	"github.com/tatianab/monty-hall/internal/models"
)

// zeroRand always draws 0: the car is behind A and a random host opens the
// first door he can.
type zeroRand struct{}

func (zeroRand) IntN(int) int { return 0 }

func press(t *testing.T, m model, keys ...string) model {
	t.Helper()
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "backspace":
			msg = tea.KeyMsg{Type: tea.KeyBackspace}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		next, _ := m.Update(msg)
		m = next.(model)
	}
	return m
}

func newTestModel(mode models.HostMode) model {
	return NewModel(Options{Mode: mode, Strategy: models.AlwaysSwitch, Games: 10, Rand: zeroRand{}})
}

func TestPlaySwitchAndWin(t *testing.T) {
	m := newTestModel(models.HostKnows)
	if !strings.Contains(m.View(), "Choose a door!") {
		t.Fatalf("Expected the initial prompt, got:\n%s", m.View())
	}

	m = press(t, m, "b")
	if m.game.Phase() != engine.PhaseRevealed {
		t.Fatalf("Expected revealed phase, got %v", m.game.Phase())
	}
	if m.game.Opened() != models.DoorC {
		t.Errorf("Expected Monty to open C, got %v", m.game.Opened())
	}
	if !strings.Contains(m.View(), "Door C has a goat!") {
		t.Errorf("Expected the goat prompt, got:\n%s", m.View())
	}

	m = press(t, m, "s")
	if o, done := m.game.Outcome(); !done || o != models.Win {
		t.Fatalf("Expected a win after switching, got %v (done %v)", o, done)
	}
	if m.tally != (models.Tally{Wins: 1}) {
		t.Errorf("Expected one win in the tally, got %+v", m.tally)
	}

	m = press(t, m, "enter")
	if m.game.Phase() != engine.PhaseInitial {
		t.Errorf("Expected a new game after enter, got %v", m.game.Phase())
	}
	if m.tally.Total() != 1 {
		t.Errorf("Expected the tally to survive a new game, got %+v", m.tally)
	}
}

func TestOpenedDoorCannotBePicked(t *testing.T) {
	m := newTestModel(models.HostKnows)
	m = press(t, m, "a")
	if m.game.Opened() != models.DoorB {
		t.Fatalf("Expected Monty to open B, got %v", m.game.Opened())
	}
	m = press(t, m, "b")
	if m.game.Phase() != engine.PhaseRevealed {
		t.Errorf("Expected picking the open door to be ignored, phase is %v", m.game.Phase())
	}
	m = press(t, m, "k")
	if o, _ := m.game.Outcome(); o != models.Win {
		t.Errorf("Expected keeping A to win, got %v", o)
	}
}

func TestRandomHostEarlyReveal(t *testing.T) {
	m := newTestModel(models.HostRandom)
	m = press(t, m, "b")
	o, done := m.game.Outcome()
	if !done || o != models.EarlyReveal {
		t.Fatalf("Expected an early reveal, got %v (done %v)", o, done)
	}
	if !strings.Contains(m.View(), "Monty revealed the car!") {
		t.Errorf("Expected the early reveal message, got:\n%s", m.View())
	}
	if m.tally.EarlyReveals != 1 {
		t.Errorf("Expected one early reveal, got %+v", m.tally)
	}
}

func TestToggleModeResetsResults(t *testing.T) {
	m := newTestModel(models.HostKnows)
	m = press(t, m, "b", "s")
	if m.tally.Total() != 1 {
		t.Fatalf("Expected one game, got %+v", m.tally)
	}
	m = press(t, m, "m")
	if m.mode != models.HostRandom {
		t.Errorf("Expected random host after toggle, got %v", m.mode)
	}
	if m.tally.Total() != 0 {
		t.Errorf("Expected results reset, got %+v", m.tally)
	}
	if m.game.Phase() != engine.PhaseInitial || m.game.Mode() != models.HostRandom {
		t.Errorf("Expected a fresh random-host game, got %v/%v", m.game.Phase(), m.game.Mode())
	}
}

func TestEditGamesClamps(t *testing.T) {
	m := newTestModel(models.HostKnows)
	m = press(t, m, "n", "backspace", "backspace", "2", "5", "enter")
	if m.games != 25 {
		t.Errorf("Expected 25 games, got %d", m.games)
	}
	m = press(t, m, "n", "backspace", "backspace", "0", "enter")
	if m.games != 1 {
		t.Errorf("Expected games clamped to 1, got %d", m.games)
	}
	if m.state != statePlaying {
		t.Errorf("Expected to be back playing, got state %v", m.state)
	}
}

func TestClampGames(t *testing.T) {
	tests := map[string]int{"": 1, "abc": 1, "-4": 1, "0": 1, "7": 7, " 1000 ": 1000}
	for in, want := range tests {
		if got := clampGames(in); got != want {
			t.Errorf("clampGames(%q): expected %d, got %d", in, want, got)
		}
	}
}

func TestRunSimulationReplacesTally(t *testing.T) {
	m := newTestModel(models.HostKnows)
	m = press(t, m, "b", "s", "t")
	if m.strategy != models.AlwaysStay {
		t.Fatalf("Expected stay after cycling strategy, got %v", m.strategy)
	}

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	m = next.(model)
	if cmd == nil || !m.running {
		t.Fatalf("Expected a running simulation command")
	}
	next, _ = m.Update(cmd())
	m = next.(model)
	if m.running {
		t.Error("Expected the simulation to be finished")
	}
	if m.tally.Total() != 10 {
		t.Errorf("Expected the tally replaced by 10 simulated games, got %+v", m.tally)
	}
	if m.tally.EarlyReveals != 0 {
		t.Errorf("Expected no early reveals with a host who knows, got %+v", m.tally)
	}
}

func TestStaleSimulationIgnored(t *testing.T) {
	m := newTestModel(models.HostKnows)
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	m = next.(model)
	m = press(t, m, "m")
	next, _ = m.Update(cmd())
	m = next.(model)
	if m.tally.Total() != 0 {
		t.Errorf("Expected a batch for the old host to be dropped, got %+v", m.tally)
	}
}

func TestExplainView(t *testing.T) {
	m := newTestModel(models.HostKnows)
	m = press(t, m, "?")
	if m.state != stateExplain || !strings.Contains(m.View(), "WHAT'S GOING ON?") {
		t.Fatalf("Expected the explanation view, got:\n%s", m.View())
	}
	m = press(t, m, "esc")
	if m.state != statePlaying {
		t.Errorf("Expected to be back playing, got state %v", m.state)
	}
}
