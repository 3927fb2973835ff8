// Package tui is the interactive presentation layer. It owns no
// aggregation state: a bubbletea tick command triggers the engine off the
// update loop, and the model renders whatever Output the engine last
// emitted. A failed tick keeps the previous output on screen.
package tui

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"gitlab.com/tinyland/lab/trend-pulse/pkg/engine"
)

// tickMsg fires the next poll cycle.
type tickMsg time.Time

// outputMsg carries one tick's result back into the update loop.
type outputMsg struct {
	out *engine.Output
	err error
}

// keyMap defines the TUI key bindings.
type keyMap struct {
	Quit    key.Binding
	Refresh key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Refresh, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Refresh, k.Quit}}
}

var defaultKeys = keyMap{
	Quit: key.NewBinding(
		key.WithKeys("q", "esc", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
	Refresh: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "refresh now"),
	),
}

// Model is the root bubbletea model.
type Model struct {
	eng      *engine.Engine
	interval time.Duration

	width  int
	height int

	out     *engine.Output
	lastErr error

	keys keyMap
	help help.Model
}

// NewModel creates the root model around an engine ticking at interval.
func NewModel(eng *engine.Engine, interval time.Duration) Model {
	return Model{
		eng:      eng,
		interval: interval,
		keys:     defaultKeys,
		help:     help.New(),
	}
}

// Init schedules the first tick immediately.
func (m Model) Init() tea.Cmd {
	return func() tea.Msg { return tickMsg(time.Now()) }
}

// tickCmd schedules the next tick after the poll interval.
func (m Model) tickCmd() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// runTick executes one engine tick off the update loop.
func (m Model) runTick() tea.Cmd {
	return func() tea.Msg {
		out, err := m.eng.Tick(context.Background())
		return outputMsg{out: out, err: err}
	}
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Refresh):
			return m, m.runTick()
		}
		return m, nil

	case tickMsg:
		return m, tea.Batch(m.runTick(), m.tickCmd())

	case outputMsg:
		if msg.err != nil {
			if !errors.Is(msg.err, engine.ErrTickInFlight) {
				m.lastErr = msg.err
			}
			// Previous output stays on screen.
			return m, nil
		}
		m.lastErr = nil
		m.out = msg.out
		return m, nil
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "starting trend-pulse..."
	}

	header := m.renderHeader()
	footer := m.help.View(m.keys)

	bodyH := m.height - lipgloss.Height(header) - lipgloss.Height(footer)
	if bodyH < 6 {
		bodyH = 6
	}

	leftW := m.width * 2 / 3
	rightW := m.width - leftW

	left := m.renderTrendPanel(leftW, bodyH)
	rightTop := m.renderWordPanel(rightW, bodyH/2)
	rightBottom := m.renderSentimentPanel(rightW, bodyH-bodyH/2)
	right := lipgloss.JoinVertical(lipgloss.Left, rightTop, rightBottom)

	body := lipgloss.JoinHorizontal(lipgloss.Top, left, right)
	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}
