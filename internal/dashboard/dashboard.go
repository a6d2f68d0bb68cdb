// Package dashboard renders a live terminal view of a running
// Simulation: elapsed time, particle count, nearest/farthest pair
// separation, energy drift, and a total-energy sparkline, refreshed on a fixed
// tick while the engine is driven forward underneath it.
package dashboard

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/Ruth-Huang6012/REBOUND-2planets/internal/dynamo"
	"github.com/Ruth-Huang6012/REBOUND-2planets/internal/metrics"
)

const historyCapacity = 300

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(14)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true)
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
	panelStyle  = lipgloss.NewStyle().Padding(1, 2).Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240"))
)

type tickMsg time.Time

// Model drives sim forward target in fixed wall-clock ticks, advancing
// the simulation by tickDt of simulation time per tick, and renders its
// status after every advance.
type Model struct {
	sim    *dynamo.Simulation
	target float64
	tickDt float64
	drift  *metrics.EnergyDrift

	done bool
	err  error

	energyHistory []float64
}

// New builds a dashboard over sim, driving it to target in steps of
// tickDt of simulation time (not wall time) per redraw.
func New(sim *dynamo.Simulation, target, tickDt float64) Model {
	drift := metrics.NewEnergyDrift()
	sim.AddObserver(drift)
	return Model{sim: sim, target: target, tickDt: tickDt, drift: drift}
}

func (m Model) Init() tea.Cmd {
	return tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}
	case tickMsg:
		if m.done {
			return m, nil
		}
		next := m.sim.T + m.tickDt
		forward := m.target >= m.sim.T
		if (forward && next > m.target) || (!forward && next < m.target) {
			next = m.target
		}
		if err := m.sim.IntegrateUntil(context.Background(), next, false); err != nil {
			m.err, m.done = err, true
		} else if (forward && m.sim.T >= m.target) || (!forward && m.sim.T <= m.target) {
			m.done = true
		}
		m.energyHistory = append(m.energyHistory, m.drift.Current())
		if len(m.energyHistory) > historyCapacity {
			m.energyHistory = m.energyHistory[1:]
		}
		if m.done {
			return m, nil
		}
		return m, tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return tickMsg(t) })
	}
	return m, nil
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("REBOUND-2planets — live integration") + "\n")

	status := m.sim.Status()
	b.WriteString(labelStyle.Render("Time") + valueStyle.Render(fmt.Sprintf("%.6f / %.6f", status.Time, m.target)) + "\n")
	b.WriteString(labelStyle.Render("Particles") + valueStyle.Render(fmt.Sprintf("%d", status.N)) + "\n")
	b.WriteString(labelStyle.Render("Integrator") + valueStyle.Render(status.Integrator) + "\n")
	b.WriteString(labelStyle.Render("Steps") + valueStyle.Render(fmt.Sprintf("%d", status.StepsTaken)) + "\n")

	near, far, ok := nearestFarthest(m.sim)
	if ok {
		b.WriteString(labelStyle.Render("Nearest pair") + valueStyle.Render(fmt.Sprintf("%.6f", near)) + "\n")
		b.WriteString(labelStyle.Render("Farthest pair") + valueStyle.Render(fmt.Sprintf("%.6f", far)) + "\n")
	}
	b.WriteString(labelStyle.Render("Energy drift") + valueStyle.Render(fmt.Sprintf("%.3e", m.drift.Value())) + "\n")

	if len(m.energyHistory) > 1 {
		chart := asciigraph.Plot(m.energyHistory, asciigraph.Height(6), asciigraph.Width(50), asciigraph.Caption("total energy"))
		b.WriteString("\n" + graphStyle.Render(chart) + "\n")
	}

	switch {
	case m.err != nil:
		b.WriteString("\n" + errorStyle.Render(fmt.Sprintf("stopped: %v", m.err)) + "\n")
	case m.done:
		b.WriteString("\n" + okStyle.Render("integration complete") + "\n")
	}

	b.WriteString(helpStyle.Render("q: quit"))
	return panelStyle.Render(b.String())
}

// Err returns the error (if any) that stopped integration, after the
// bubbletea program has exited.
func (m Model) Err() error { return m.err }

func nearestFarthest(sim *dynamo.Simulation) (near, far float64, ok bool) {
	particles := sim.Store.All()
	if len(particles) < 2 {
		return 0, 0, false
	}
	near, far = math.Inf(1), 0
	for i := 0; i < len(particles); i++ {
		for j := i + 1; j < len(particles); j++ {
			d := particles[i].Pos.Sub(particles[j].Pos).Len()
			if d < near {
				near = d
			}
			if d > far {
				far = d
			}
		}
	}
	return near, far, true
}
