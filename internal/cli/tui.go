package cli

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/flowcanvas/pkg/dag"
	"github.com/matzehuels/flowcanvas/pkg/run"
)

// Run list styles
var (
	runActiveStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	runVisitedStyle = lipgloss.NewStyle().Foreground(colorGreen)
	runPendingStyle = lipgloss.NewStyle().Foreground(colorDim)
	runTypeStyle    = lipgloss.NewStyle().Foreground(colorGray)
)

// stepMsg triggers the next simulated step.
type stepMsg struct{}

// runModel is the bubbletea model for the run simulation. It owns the
// sequencer and advances it on a timer until the run completes or the user
// cancels.
type runModel struct {
	graph     *dag.Graph
	seq       *run.Sequencer
	interval  time.Duration
	paused    bool
	cancelled bool
}

func newRunModel(g *dag.Graph, seq *run.Sequencer, interval time.Duration) runModel {
	return runModel{
		graph:    g,
		seq:      seq,
		interval: interval,
	}
}

func (m runModel) tick() tea.Cmd {
	return tea.Tick(m.interval, func(time.Time) tea.Msg { return stepMsg{} })
}

func (m runModel) Init() tea.Cmd {
	return m.tick()
}

func (m runModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.seq.Cancel()
			m.cancelled = true
			return m, tea.Quit
		case " ":
			m.paused = !m.paused
		}

	case stepMsg:
		if m.paused {
			return m, m.tick()
		}
		if _, ok := m.seq.Advance(); !ok {
			return m, tea.Quit
		}
		return m, m.tick()
	}
	return m, nil
}

func (m runModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Workflow Run"))
	b.WriteString(" " + StyleDim.Render(m.seq.ID()))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("space pause  q cancel"))
	b.WriteString("\n\n")

	active := m.seq.Active()
	for _, id := range m.seq.Order() {
		node, _ := m.graph.Node(id)
		label := id
		if node != nil {
			label = node.Label()
		}

		switch {
		case id == active:
			b.WriteString(runActiveStyle.Render("▸ " + label))
			b.WriteString(" " + runTypeStyle.Render("running"))
		case m.seq.Visited(id):
			b.WriteString(runVisitedStyle.Render(iconSuccess + " " + label))
		default:
			b.WriteString(runPendingStyle.Render("· " + label))
		}
		b.WriteString("\n")
	}

	visited, total := m.seq.Progress()
	b.WriteString("\n")
	status := fmt.Sprintf("%d/%d steps", visited, total)
	if m.paused {
		status += " · paused"
	}
	b.WriteString(StyleDim.Render(status))
	b.WriteString("\n")

	return b.String()
}
