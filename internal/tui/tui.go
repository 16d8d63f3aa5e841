package tui

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tatianab/monty-hall/internal/config"
	"github.com/tatianab/monty-hall/internal/engine"
	"github.com/tatianab/monty-hall/internal/metrics"
	"github.com/tatianab/monty-hall/internal/models"
)

type sessionState int

const (
	statePlaying sessionState = iota
	stateEditGames
	stateExplain
	stateError
)

// Options configures the interactive game.
type Options struct {
	Mode     models.HostMode
	Strategy models.Strategy
	Games    int
	Workers  int
	Rand     engine.Rand
	// Metrics and Logger are optional.
	Metrics *metrics.Collector
	Logger  *slog.Logger
}

type model struct {
	state     sessionState
	opts      Options
	rng       engine.Rand
	logger    *slog.Logger
	game      engine.Game
	tally     models.Tally
	mode      models.HostMode
	strategy  models.Strategy
	games     int
	running   bool
	textInput textinput.Model
	viewport  viewport.Model
	help      help.Model
	keys      keyMap
	err       error
	status    string
	width     int
	height    int
}

var (
	doorStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#5F5F87")).
			Width(12).
			Height(3).
			Align(lipgloss.Center, lipgloss.Center)

	pickedDoorStyle = doorStyle.
			BorderForeground(lipgloss.Color("#3B82F6")).
			Bold(true)

	openDoorStyle = doorStyle.
			BorderForeground(lipgloss.Color("#3C3C3C")).
			Foreground(lipgloss.Color("#888888"))

	carStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFA500")).
			Bold(true)

	winStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#16A34A")).
			Bold(true)

	lossStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#DC2626")).
			Bold(true)

	revealStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#2563EB")).
			Bold(true)

	rateStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#9333EA")).
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Italic(true)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("#3C3C3C")).
			PaddingLeft(2).
			Foreground(lipgloss.Color("#AAAAAA"))

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFA500")).
			Bold(true).
			Underline(true)
)

func NewModel(opts Options) model {
	if opts.Rand == nil {
		if seed, err := engine.NewSeed(); err == nil {
			opts.Rand = engine.NewRand(seed)
		} else {
			opts.Rand = engine.NewRand(0)
		}
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	if opts.Games < 1 {
		opts.Games = 1
	}
	if opts.Workers < 1 {
		opts.Workers = 1
	}

	ti := textinput.New()
	ti.Placeholder = "Number of games"
	ti.CharLimit = 9
	ti.Width = 12

	m := model{
		state:     statePlaying,
		opts:      opts,
		rng:       opts.Rand,
		logger:    opts.Logger,
		mode:      opts.Mode,
		strategy:  opts.Strategy,
		games:     opts.Games,
		textInput: ti,
		viewport:  viewport.New(72, 16),
		help:      help.New(),
		keys:      newKeyMap(),
	}
	m.viewport.SetContent(explanation)
	m.newGame()
	return m
}

func (m model) Init() tea.Cmd {
	return nil
}

type simulationDoneMsg struct {
	mode     models.HostMode
	strategy models.Strategy
	tally    models.Tally
	err      error
}

func (m *model) newGame() {
	g, err := engine.NewGame(m.mode, m.rng)
	if err != nil {
		m.err = err
		m.state = stateError
		return
	}
	m.game = g
	m.status = ""
}

func (m *model) finish(g engine.Game) {
	m.game = g
	o, done := g.Outcome()
	if !done {
		return
	}
	m.tally.Add(o)
	if m.opts.Metrics != nil {
		m.opts.Metrics.RecordGame(m.mode, o)
	}
	m.logger.Debug("game finished",
		"mode", m.mode, "pick", g.Pick(), "opened", g.Opened(), "final", g.Final(), "outcome", o)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) && m.state != stateEditGames {
			return m, tea.Quit
		}
		switch m.state {
		case stateEditGames:
			return m.updateEditGames(msg)
		case stateExplain:
			return m.updateExplain(msg)
		case stateError:
			if msg.Type == tea.KeyEsc {
				return m, tea.Quit
			}
			return m, nil
		}
		return m.updatePlaying(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = min(msg.Width-4, 80)
		m.viewport.Height = max(msg.Height-6, 5)
		m.help.Width = msg.Width

	case simulationDoneMsg:
		m.running = false
		if msg.err != nil {
			m.err = msg.err
			m.state = stateError
			return m, nil
		}
		// A toggle while the batch ran makes its result stale.
		if msg.mode != m.mode {
			return m, nil
		}
		m.tally = msg.tally
		m.status = fmt.Sprintf("Simulated %d games with %s.", msg.tally.Total(), msg.strategy.Label())
		m.logger.Info("simulation finished",
			"mode", msg.mode, "strategy", msg.strategy, "games", msg.tally.Total(), "win_rate", msg.tally.WinRate())
	}

	return m, nil
}

func (m model) updatePlaying(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Door):
		door, err := models.ParseDoor(msg.String())
		if err != nil {
			return m, nil
		}
		return m.pickDoor(door), nil

	case key.Matches(msg, m.keys.Switch):
		if m.game.Phase() == engine.PhaseRevealed {
			return m.pickDoor(m.game.SwitchDoor()), nil
		}

	case key.Matches(msg, m.keys.Stay):
		if m.game.Phase() == engine.PhaseRevealed {
			return m.pickDoor(m.game.Pick()), nil
		}

	case key.Matches(msg, m.keys.Again):
		if m.game.Phase() == engine.PhaseFinal {
			m.newGame()
		}

	case key.Matches(msg, m.keys.Mode):
		if m.mode == models.HostKnows {
			m.mode = models.HostRandom
		} else {
			m.mode = models.HostKnows
		}
		m.tally = models.Tally{}
		m.newGame()
		m.status = m.mode.Label() + ": results reset."

	case key.Matches(msg, m.keys.Strategy):
		m.strategy = m.strategy.Next()

	case key.Matches(msg, m.keys.Games):
		m.state = stateEditGames
		m.textInput.SetValue(strconv.Itoa(m.games))
		m.textInput.CursorEnd()
		return m, m.textInput.Focus()

	case key.Matches(msg, m.keys.Run):
		if m.running {
			return m, nil
		}
		m.running = true
		m.status = "Running simulation..."
		return m, m.runSimulation()

	case key.Matches(msg, m.keys.Explain):
		m.state = stateExplain
		m.viewport.GotoTop()
	}
	return m, nil
}

// pickDoor is the initial pick in the first phase and the final pick in the second.
func (m model) pickDoor(door models.Door) model {
	var (
		g   engine.Game
		err error
	)
	switch m.game.Phase() {
	case engine.PhaseInitial:
		g, err = m.game.Choose(door, m.rng)
	case engine.PhaseRevealed:
		g, err = m.game.Decide(engine.PickDoor(door), m.rng)
	default:
		return m
	}
	if err != nil {
		// The opened door cannot be picked; ignore the key.
		m.logger.Debug("pick rejected", "door", door, "error", err)
		return m
	}
	m.finish(g)
	return m
}

func (m model) updateEditGames(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.games = clampGames(m.textInput.Value())
		m.textInput.Blur()
		m.state = statePlaying
		return m, nil
	case tea.KeyEsc, tea.KeyCtrlC:
		m.textInput.Blur()
		m.state = statePlaying
		return m, nil
	}
	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

func (m model) updateExplain(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyEsc || key.Matches(msg, m.keys.Explain) {
		m.state = statePlaying
		return m, nil
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// clampGames parses the games field. Anything that is not a positive number becomes 1.
func clampGames(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return 1
	}
	return n
}

func (m model) runSimulation() tea.Cmd {
	mode, strategy, games, workers := m.mode, m.strategy, m.games, m.opts.Workers
	// The batch gets its own streams so it never shares m.rng with the game.
	seed := uint64(m.rng.IntN(math.MaxInt))
	collector := m.opts.Metrics
	return func() tea.Msg {
		tally, err := engine.RunBatchParallel(context.Background(), mode, strategy, games, workers, seed,
			engine.WithObserver(observer(collector)))
		return simulationDoneMsg{mode: mode, strategy: strategy, tally: tally, err: err}
	}
}

// observer avoids handing WithObserver a typed nil.
func observer(c *metrics.Collector) engine.Observer {
	if c == nil {
		return nil
	}
	return c
}

func (m model) View() string {
	var s string

	switch m.state {
	case statePlaying, stateEditGames:
		s = lipgloss.JoinHorizontal(lipgloss.Top,
			m.renderGame(),
			m.renderPanel(),
		)
		s = lipgloss.JoinVertical(lipgloss.Left, s, "", m.help.View(m.keys))

	case stateExplain:
		s = titleStyle.Render("WHAT'S GOING ON?") + "\n\n" + m.viewport.View() + "\n\n" +
			helpStyle.Render("Esc or ? to go back.")

	case stateError:
		s = fmt.Sprintf("\n  Error: %v\n\nPress Esc to quit.", m.err)
	}

	return "\n" + s + "\n"
}

func (m model) renderGame() string {
	title := titleStyle.Render("DOES MONTY KNOW?") + "  " + m.mode.Label()

	var doors []string
	for _, d := range models.Doors() {
		doors = append(doors, m.renderDoor(d))
	}
	row := lipgloss.JoinHorizontal(lipgloss.Top, doors...)

	return lipgloss.JoinVertical(lipgloss.Left, title, "", modeBlurb(m.mode), "", row, "", m.prompt())
}

func modeBlurb(mode models.HostMode) string {
	if mode == models.HostRandom {
		return helpStyle.Render("Monty randomly opens one of the doors you didn't choose - it might be the car!")
	}
	return helpStyle.Render("Monty always reveals a goat behind one of the doors you didn't choose.")
}

func (m model) renderDoor(d models.Door) string {
	g := m.game
	content := "[ ? ]"
	style := doorStyle
	phase := g.Phase()
	outcome, done := g.Outcome()

	switch {
	case phase == engine.PhaseInitial:
	case d == g.Opened():
		style = openDoorStyle
		if d == g.Prize() {
			content = carStyle.Render("CAR")
		} else {
			content = "GOAT"
		}
	case done && outcome != models.EarlyReveal && d == g.Final():
		style = pickedDoorStyle
		if d == g.Prize() {
			content = carStyle.Render("CAR")
		} else {
			content = "GOAT"
		}
	case phase == engine.PhaseRevealed && d == g.Pick():
		style = pickedDoorStyle
	}
	return style.Render(content + "\n\nDoor " + d.String())
}

func (m model) prompt() string {
	g := m.game
	switch g.Phase() {
	case engine.PhaseInitial:
		return "Choose a door! (a, b or c)"
	case engine.PhaseRevealed:
		return fmt.Sprintf("Door %s has a goat! Would you like to stick with Door %s (k) or switch to Door %s (s)?",
			g.Opened(), g.Pick(), g.SwitchDoor())
	}
	o, _ := g.Outcome()
	var line string
	switch o {
	case models.Win:
		line = winStyle.Render("Congratulations! You found the car!")
	case models.Loss:
		line = lossStyle.Render("Sorry! You found a goat!")
	case models.EarlyReveal:
		line = revealStyle.Render("Monty revealed the car! Game Over!")
	}
	return line + "\n" + helpStyle.Render("Press enter to play again.")
}

func (m model) renderPanel() string {
	t := m.tally
	results := titleStyle.Render("RESULTS") + "\n" +
		winStyle.Render(strconv.Itoa(t.Wins)) + " Wins\n" +
		lossStyle.Render(strconv.Itoa(t.Losses)) + " Losses\n" +
		revealStyle.Render(strconv.Itoa(t.EarlyReveals)) + " Monty revealed the car\n" +
		rateStyle.Render(t.WinPercent()+"%") + " Win Rate\n\n"

	games := strconv.Itoa(m.games)
	if m.state == stateEditGames {
		games = m.textInput.View()
	}
	sim := titleStyle.Render("RUN SIMULATION") + "\n" +
		"Number of Games: " + games + "\n" +
		"Strategy: " + m.strategy.Label() + "\n"
	if m.running {
		sim += helpStyle.Render("running...") + "\n"
	}
	if m.status != "" {
		sim += "\n" + m.status + "\n"
	}
	return panelStyle.Width(38).Render(results + sim)
}

// Start runs the game with the default configuration.
func Start() error {
	cfg := config.Default()
	return Run(Options{
		Mode:     cfg.Mode,
		Strategy: cfg.Strategy,
		Games:    cfg.Games,
		Workers:  cfg.Workers,
	})
}

func Run(opts Options) error {
	p := tea.NewProgram(NewModel(opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
