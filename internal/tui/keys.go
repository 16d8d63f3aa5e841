package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Door     key.Binding
	Switch   key.Binding
	Stay     key.Binding
	Again    key.Binding
	Mode     key.Binding
	Strategy key.Binding
	Games    key.Binding
	Run      key.Binding
	Explain  key.Binding
	Quit     key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Door: key.NewBinding(
			key.WithKeys("a", "b", "c", "A", "B", "C"),
			key.WithHelp("a/b/c", "pick door"),
		),
		Switch: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "switch"),
		),
		Stay: key.NewBinding(
			key.WithKeys("k"),
			key.WithHelp("k", "keep"),
		),
		Again: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "play again"),
		),
		Mode: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "toggle host"),
		),
		Strategy: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "strategy"),
		),
		Games: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "number of games"),
		),
		Run: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "run simulation"),
		),
		Explain: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "what's going on?"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Door, k.Switch, k.Stay, k.Mode, k.Strategy, k.Games, k.Run, k.Explain, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Door, k.Switch, k.Stay, k.Again},
		{k.Mode, k.Strategy, k.Games, k.Run},
		{k.Explain, k.Quit},
	}
}
