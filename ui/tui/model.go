package tui

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/drake/dwbox/box"
	"github.com/drake/dwbox/debug"
	"github.com/drake/dwbox/event"
	"github.com/drake/dwbox/percent"
	"github.com/drake/dwbox/ui/tui/style"
)

// tickMsg drives percent bar animation.
type tickMsg time.Time

// doTick returns a command that sends a tickMsg after the given duration.
func doTick() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Scenario builds a fresh box tree to show.
type Scenario struct {
	Name  string
	Build func() (*box.Box, error)
}

type keyMap struct {
	Quit key.Binding
	Next key.Binding
	Prev key.Binding
	Tree key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Quit: key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Next: key.NewBinding(key.WithKeys("tab", "n"), key.WithHelp("tab", "next")),
		Prev: key.NewBinding(key.WithKeys("shift+tab", "p"), key.WithHelp("shift+tab", "prev")),
		Tree: key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "tree")),
	}
}

// Model is the Bubble Tea model of the layout testbed. The bottom row is
// a status line; the rest of the terminal is the window the root box is
// laid out into.
type Model struct {
	scenarios []Scenario
	current   int
	root      *box.Box
	canvas    *Canvas
	layout    *box.Layout
	events    *event.Table
	styles    style.Styles
	keys      keyMap
	logger    *log.Logger

	width, height int
	err           error
	showTree      bool
	animate       bool

	// Logical positions of animated bars. The bar itself only keeps a
	// lossy fixed-point value.
	steps map[*percent.Control]int
}

// Option configures a Model.
type Option func(*Model)

// WithAnimation advances every percent bar on a timer.
func WithAnimation(on bool) Option {
	return func(m *Model) { m.animate = on }
}

// WithLogger sets the logger used for layout dumps.
func WithLogger(l *log.Logger) Option {
	return func(m *Model) { m.logger = l }
}

// NewModel creates a model showing the first scenario.
func NewModel(scenarios []Scenario, opts ...Option) Model {
	m := Model{
		scenarios: scenarios,
		canvas:    NewCanvas(0, 0),
		events:    event.NewTable(),
		styles:    style.DefaultStyles(),
		keys:      defaultKeys(),
		logger:    debug.Logger(),
		steps:     make(map[*percent.Control]int),
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.load()
	return m
}

// Events returns the handler table. Configure is emitted after every
// layout, ValueChanged when a percent bar moves and KeyPress for keys the
// model does not handle itself.
func (m Model) Events() *event.Table { return m.events }

// Layout returns the last layout result, or nil.
func (m Model) Layout() *box.Layout { return m.layout }

// Canvas returns the canvas the tree is drawn into.
func (m Model) Canvas() *Canvas { return m.canvas }

// Scenario returns the name of the scenario on screen.
func (m Model) Scenario() string {
	if len(m.scenarios) == 0 {
		return ""
	}
	return m.scenarios[m.current].Name
}

// Err returns the last build or layout error.
func (m Model) Err() error { return m.err }

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	if m.animate {
		return doTick()
	}
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.relayout()
		return m, nil

	case tickMsg:
		if m.advanceBars() {
			m.relayout()
		}
		return m, doTick()

	case ScenariosMsg:
		m.scenarios = msg
		m.current = 0
		m.load()
		m.relayout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Next):
		m.switchTo(m.current + 1)
	case key.Matches(msg, m.keys.Prev):
		m.switchTo(m.current - 1)
	case key.Matches(msg, m.keys.Tree):
		m.showTree = !m.showTree
	default:
		m.events.Emit(event.Event{Kind: event.KeyPress, Key: msg.String()})
	}
	return m, nil
}

func (m *Model) switchTo(i int) {
	n := len(m.scenarios)
	if n == 0 {
		return
	}
	m.current = (i%n + n) % n
	m.load()
	m.relayout()
}

// load builds the current scenario's tree.
func (m *Model) load() {
	m.root, m.layout, m.err = nil, nil, nil
	clear(m.steps)
	if len(m.scenarios) == 0 {
		return
	}
	sc := m.scenarios[m.current]
	root, err := sc.Build()
	if err != nil {
		m.err = fmt.Errorf("scenario %s: %w", sc.Name, err)
		m.logger.Printf("[ERROR] %v", m.err)
		return
	}
	m.root = root
}

// relayout resizes the tree into everything but the status line.
func (m *Model) relayout() {
	h := max(m.height-1, 0)
	m.canvas.Reset(m.width, h)
	if m.root == nil {
		return
	}

	l, err := box.Resize(m.root, m.width, h, m.canvas)
	if err != nil {
		m.err = err
		m.logger.Printf("[ERROR] resize %dx%d: %v", m.width, h, err)
	} else {
		m.err = nil
	}
	m.layout = l
	debug.Dump(m.logger, m.root, l)

	m.events.Emit(event.Event{Kind: event.Configure, Width: m.width, Height: h, Layout: l, Err: err})
}

// advanceBars moves every percent bar in the tree one step and reports
// whether any exists.
func (m *Model) advanceBars() bool {
	if m.root == nil {
		return false
	}
	moved := false
	m.root.Walk(func(b *box.Box, _ int) bool {
		for _, it := range b.Items() {
			c, ok := it.Widget().(*percent.Control)
			if !ok || c.Range() <= 0 {
				continue
			}
			pos := (m.steps[c] + 1) % (c.Range() + 1)
			m.steps[c] = pos
			c.SetPos(pos)
			moved = true
			m.events.Emit(event.Event{Kind: event.ValueChanged, Source: c, Value: c.Pos()})
		}
		return true
	})
	return moved
}

// View implements tea.Model.
func (m Model) View() string {
	var body string
	if m.showTree && m.root != nil && m.layout != nil {
		lines := debug.Tree(m.root, m.layout)
		if len(lines) > m.height-1 {
			lines = lines[:max(m.height-1, 0)]
		}
		body = strings.Join(lines, "\n")
	} else {
		body = m.canvas.Render(m.styles)
	}
	return body + "\n" + m.statusLine()
}

func (m Model) statusLine() string {
	st := m.styles.StatusBar
	var state string
	switch {
	case m.err != nil:
		state = m.styles.Error.Render(m.err.Error())
	case m.layout == nil:
		state = "waiting for size"
	case m.layout.Skipped:
		st = m.styles.StatusSkipped
		state = "skipped: nothing to expand"
	default:
		state = fmt.Sprintf("%d placed", len(m.layout.Placements()))
	}

	text := fmt.Sprintf(" %s (%d/%d)  %dx%d  %s  %s",
		m.Scenario(), m.current+1, len(m.scenarios), m.width, max(m.height-1, 0), state, m.styles.Muted.Render(m.helpText()))
	return st.Width(max(m.width, 0)).MaxWidth(max(m.width, 1)).Render(text)
}

func (m Model) helpText() string {
	var parts []string
	for _, b := range []key.Binding{m.keys.Next, m.keys.Prev, m.keys.Tree, m.keys.Quit} {
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return strings.Join(parts, " · ")
}
