package main

import (
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dd0wney/stockflow/pkg/logging"
	"github.com/dd0wney/stockflow/pkg/metrics"
	"github.com/dd0wney/stockflow/pkg/scenario"
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF00FF")).
			MarginLeft(2).
			MarginTop(1)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00FFFF")).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#00FFFF")).
			Padding(0, 1)

	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#FF00FF")).
			Padding(0, 2)

	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#666666")).
				Padding(0, 2)

	contentStyle = lipgloss.NewStyle().
			MarginLeft(2).
			MarginTop(1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00FF00")).
			Width(18)

	focusedLabelStyle = labelStyle.
				Bold(true).
				Foreground(lipgloss.Color("#FFFF00"))

	statsBoxStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#00FF00")).
			Padding(1, 2).
			MarginRight(2)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF0000")).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00FF00")).
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			MarginTop(1).
			MarginLeft(2)
)

type view int

const (
	parametersView view = iota
	resultsView
	impactView
	viewCount
)

type keyMap struct {
	Tab      key.Binding
	ShiftTab key.Binding
	Enter    key.Binding
	Up       key.Binding
	Down     key.Binding
	Quit     key.Binding
}

var keys = keyMap{
	Tab: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next view"),
	),
	ShiftTab: key.NewBinding(
		key.WithKeys("shift+tab"),
		key.WithHelp("shift+tab", "prev view"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "run simulation"),
	),
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("up/k", "prev field"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("down/j", "next field"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Enter, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.ShiftTab, k.Enter},
		{k.Up, k.Down, k.Quit},
	}
}

const (
	fieldMean = iota
	fieldStdDev
	fieldSeed
	fieldIterations
	fieldCoverage
	fieldSimDays
	fieldLeadTimes
	fieldUnitCost
	fieldHoldingRate
	fieldCount
)

var fieldLabels = [fieldCount]string{
	"Mean demand",
	"Std deviation",
	"Seed",
	"Iterations",
	"Coverage days",
	"Simulation days",
	"Lead times",
	"Unit cost ($)",
	"Holding rate",
}

type reportMsg struct {
	report *scenario.Report
	err    error
}

type model struct {
	runner      *scenario.Runner
	currentView view
	inputs      [fieldCount]textinput.Model
	focus       int
	resultTable table.Model
	help        help.Model
	keys        keyMap
	width       int
	height      int
	report      *scenario.Report
	running     bool
	message     string
	messageErr  bool
}

func initialModel() model {
	defaults := [fieldCount]string{
		"100", "20", "42", "1000", "7", "90", "1, 2, 3, 5, 7, 10", "50", "0.2",
	}

	m := model{
		runner: scenario.NewRunner(
			scenario.WithLogger(logging.NewNopLogger()),
			scenario.WithMetrics(metrics.NewRegistry()),
		),
		currentView: parametersView,
		help:        help.New(),
		keys:        keys,
	}

	for i := range m.inputs {
		ti := textinput.New()
		ti.SetValue(defaults[i])
		ti.CharLimit = 64
		ti.Width = 30
		m.inputs[i] = ti
	}
	m.inputs[0].Focus()

	columns := []table.Column{
		{Title: "Lead Time", Width: 10},
		{Title: "Mean", Width: 10},
		{Title: "Std", Width: 10},
		{Title: "Median", Width: 10},
		{Title: "P95", Width: 10},
		{Title: "95% CI", Width: 22},
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(10),
	)
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("#00FFFF")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(lipgloss.Color("#FF00FF")).
		Bold(false)
	t.SetStyles(s)
	m.resultTable = t

	return m
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

	case reportMsg:
		m.running = false
		if msg.err != nil {
			m.message = msg.err.Error()
			m.messageErr = true
			return m, nil
		}
		m.report = msg.report
		m.message = fmt.Sprintf("Simulation finished: %d rows in %s", msg.report.Rows, msg.report.Elapsed.Round(1e6))
		m.messageErr = false
		m.updateResultTable()
		m.currentView = resultsView
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			if m.currentView != parametersView || !m.inputs[m.focus].Focused() || msg.String() == "ctrl+c" {
				return m, tea.Quit
			}

		case key.Matches(msg, m.keys.Tab):
			m.currentView = (m.currentView + 1) % viewCount
			m.syncFocus()

		case key.Matches(msg, m.keys.ShiftTab):
			if m.currentView == 0 {
				m.currentView = viewCount - 1
			} else {
				m.currentView--
			}
			m.syncFocus()

		case key.Matches(msg, m.keys.Up):
			if m.currentView == parametersView {
				m.moveFocus(-1)
			}

		case key.Matches(msg, m.keys.Down):
			if m.currentView == parametersView {
				m.moveFocus(1)
			}

		case key.Matches(msg, m.keys.Enter):
			if m.currentView == parametersView && !m.running {
				return m.startSimulation()
			}
		}
	}

	switch m.currentView {
	case parametersView:
		m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
		cmds = append(cmds, cmd)
	case resultsView:
		m.resultTable, cmd = m.resultTable.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m *model) syncFocus() {
	for i := range m.inputs {
		m.inputs[i].Blur()
	}
	if m.currentView == parametersView {
		m.inputs[m.focus].Focus()
	}
}

func (m *model) moveFocus(delta int) {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus + delta + fieldCount) % fieldCount
	m.inputs[m.focus].Focus()
}

func (m model) startSimulation() (tea.Model, tea.Cmd) {
	sc, err := m.buildScenario()
	if err != nil {
		m.message = err.Error()
		m.messageErr = true
		return m, nil
	}

	m.running = true
	m.message = "Running simulation..."
	m.messageErr = false

	runner := m.runner
	return m, func() tea.Msg {
		report, err := runner.Run(sc)
		return reportMsg{report: report, err: err}
	}
}

func (m model) buildScenario() (*scenario.Scenario, error) {
	mean, err := parseFloat(m.inputs[fieldMean].Value(), fieldLabels[fieldMean])
	if err != nil {
		return nil, err
	}
	stdDev, err := parseFloat(m.inputs[fieldStdDev].Value(), fieldLabels[fieldStdDev])
	if err != nil {
		return nil, err
	}
	iterations, err := parseInt(m.inputs[fieldIterations].Value(), fieldLabels[fieldIterations])
	if err != nil {
		return nil, err
	}
	coverage, err := parseFloat(m.inputs[fieldCoverage].Value(), fieldLabels[fieldCoverage])
	if err != nil {
		return nil, err
	}
	simDays, err := parseInt(m.inputs[fieldSimDays].Value(), fieldLabels[fieldSimDays])
	if err != nil {
		return nil, err
	}
	leadTimes, err := parseLeadTimes(m.inputs[fieldLeadTimes].Value())
	if err != nil {
		return nil, err
	}

	sc := &scenario.Scenario{
		Name: "interactive",
		Demand: scenario.DemandConfig{
			Mean:   mean,
			StdDev: stdDev,
		},
		Simulation: scenario.SimulationConfig{
			Iterations:     iterations,
			CoverageDays:   coverage,
			SimulationDays: simDays,
			LeadTimes:      leadTimes,
		},
	}

	if v := strings.TrimSpace(m.inputs[fieldSeed].Value()); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("seed: %q is not an integer", v)
		}
		sc.Demand.Seed = &seed
	}

	unitCost := strings.TrimSpace(m.inputs[fieldUnitCost].Value())
	holdingRate := strings.TrimSpace(m.inputs[fieldHoldingRate].Value())
	if unitCost != "" && holdingRate != "" {
		uc, err := parseFloat(unitCost, fieldLabels[fieldUnitCost])
		if err != nil {
			return nil, err
		}
		hr, err := parseFloat(holdingRate, fieldLabels[fieldHoldingRate])
		if err != nil {
			return nil, err
		}
		sc.Costs = &scenario.CostConfig{UnitCost: uc, HoldingRate: hr}
	}

	return sc, nil
}

func parseFloat(s, label string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %q is not a number", label, s)
	}
	return v, nil
}

func parseInt(s, label string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%s: %q is not an integer", label, s)
	}
	return v, nil
}

func parseLeadTimes(s string) ([]int, error) {
	parts := strings.Split(s, ",")
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		v, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("lead times: %q is not an integer", p)
		}
		out = append(out, v)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("lead times: at least one value required")
	}
	return out, nil
}

func (m *model) updateResultTable() {
	rows := make([]table.Row, 0, len(m.report.LeadTimes))
	for _, lt := range m.report.LeadTimes {
		s := m.report.Stats[lt]
		ci := m.report.Intervals[lt]
		rows = append(rows, table.Row{
			fmt.Sprintf("%d days", lt),
			fmt.Sprintf("%.1f", s.Mean),
			fmt.Sprintf("%.1f", s.Std),
			fmt.Sprintf("%.1f", s.Median),
			fmt.Sprintf("%.1f", s.P95),
			fmt.Sprintf("[%.1f, %.1f]", ci.Lower, ci.Upper),
		})
	}
	m.resultTable.SetRows(rows)
}

func (m model) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	var s strings.Builder

	s.WriteString(titleStyle.Render("StockFlow - Safety Stock Simulator"))
	s.WriteString("\n\n")
	s.WriteString(m.renderTabs())
	s.WriteString("\n\n")

	switch m.currentView {
	case parametersView:
		s.WriteString(m.renderParameters())
	case resultsView:
		s.WriteString(m.renderResults())
	case impactView:
		s.WriteString(m.renderImpact())
	}

	if m.message != "" {
		s.WriteString("\n\n")
		if m.messageErr {
			s.WriteString(errorStyle.Render("x " + m.message))
		} else {
			s.WriteString(successStyle.Render("* " + m.message))
		}
	}

	s.WriteString("\n\n")
	s.WriteString(helpStyle.Render(m.help.ShortHelpView(m.keys.ShortHelp())))

	return s.String()
}

func (m model) renderTabs() string {
	tabs := []string{"Parameters", "Results", "Cost Impact"}
	var renderedTabs []string

	for i, tab := range tabs {
		if view(i) == m.currentView {
			renderedTabs = append(renderedTabs, activeTabStyle.Render(tab))
		} else {
			renderedTabs = append(renderedTabs, inactiveTabStyle.Render(tab))
		}
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, renderedTabs...)
}

func (m model) renderParameters() string {
	var s strings.Builder

	s.WriteString(headerStyle.Render("Simulation Parameters"))
	s.WriteString("\n\n")

	for i := range m.inputs {
		label := labelStyle
		if i == m.focus {
			label = focusedLabelStyle
		}
		s.WriteString(label.Render(fieldLabels[i]))
		s.WriteString(m.inputs[i].View())
		s.WriteString("\n")
	}

	s.WriteString("\n")
	s.WriteString(helpStyle.Render("Lead times are comma-separated. Leave seed blank for a random run."))
	s.WriteString("\n")
	s.WriteString(helpStyle.Render("Press Enter to run."))

	return contentStyle.Render(s.String())
}

func (m model) renderResults() string {
	var s strings.Builder

	s.WriteString(headerStyle.Render("Safety Stock by Lead Time"))
	s.WriteString("\n\n")

	if m.report == nil {
		s.WriteString(helpStyle.Render("No results yet. Run a simulation from the Parameters view."))
		return contentStyle.Render(s.String())
	}

	s.WriteString(m.resultTable.View())
	s.WriteString("\n\n")
	s.WriteString(fmt.Sprintf("Run %s: %d iterations, %d result rows, %s elapsed\n",
		m.report.RunID, m.report.Iterations, m.report.Rows, m.report.Elapsed.Round(1e6)))

	return contentStyle.Render(s.String())
}

func (m model) renderImpact() string {
	var s strings.Builder

	s.WriteString(headerStyle.Render("Inventory Cost Impact"))
	s.WriteString("\n\n")

	if m.report == nil || m.report.Impact == nil {
		s.WriteString(helpStyle.Render("No cost analysis yet. Set unit cost and holding rate, then run."))
		return contentStyle.Render(s.String())
	}

	impact := m.report.Impact
	baseline := fmt.Sprintf(`Baseline
------------------
Lead time:    %d days
Mean stock:   %.0f units
Holding cost: %s/yr`,
		impact.BaselineLeadTime,
		impact.BaselineStock,
		scenario.FormatCurrency(impact.BaselineHoldingCost),
	)
	s.WriteString(statsBoxStyle.Render(baseline))
	s.WriteString("\n\n")

	for _, e := range impact.Entries {
		bar := strings.Repeat("#", clampBar(int(e.PctChange/5)))
		s.WriteString(fmt.Sprintf("  %2d days  %+6.1f%%  %10s/yr  %s\n",
			e.LeadTime, e.PctChange, scenario.FormatCurrency(e.AnnualHoldingCost), bar))
	}

	s.WriteString("\n")
	if impact.Significant {
		s.WriteString(errorStyle.Render(fmt.Sprintf("SIGNIFICANT: holding costs rise up to %.1f%% above baseline", impact.MaxCostIncreasePct)))
	} else {
		s.WriteString(successStyle.Render(fmt.Sprintf("Low impact: max increase %.1f%%", impact.MaxCostIncreasePct)))
	}

	return contentStyle.Render(s.String())
}

func clampBar(n int) int {
	if n < 0 {
		return 0
	}
	if n > 40 {
		return 40
	}
	return n
}

func main() {
	p := tea.NewProgram(initialModel(), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		log.Fatalf("Error running program: %v", err)
	}
}
