package views

import (
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dojoterm-dev/dojoterm/internal/stats"
	"github.com/dojoterm-dev/dojoterm/internal/tui"
)

// RefreshStatsMsg is sent when the user asks for a statistics refresh.
type RefreshStatsMsg struct{}

// DashboardModel is the view model for the statistics dashboard. It
// holds no chart data itself: rendering projects whatever handles the
// aggregator currently owns.
type DashboardModel struct {
	agg *stats.Aggregator

	refreshing bool
	lastErr    string

	width  int
	height int
}

// NewDashboardModel creates the dashboard view bound to the aggregator.
func NewDashboardModel(agg *stats.Aggregator, width, height int) DashboardModel {
	return DashboardModel{
		agg:    agg,
		width:  width,
		height: height,
	}
}

// Init returns the initial command for the dashboard view.
func (m DashboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the dashboard view.
func (m DashboardModel) Update(msg tea.Msg) (DashboardModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if msg.String() == tui.KeyCtrlR && !m.refreshing {
			m.refreshing = true
			m.lastErr = ""
			return m, func() tea.Msg { return RefreshStatsMsg{} }
		}
		return m, nil

	case tui.StatsRefreshedMsg:
		m.refreshing = false
		m.lastErr = ""
		return m, nil

	case tui.StatsRefreshErrorMsg:
		m.refreshing = false
		m.lastErr = msg.Err.Error()
		return m, nil
	}

	return m, nil
}

// View renders both dashboard panels side by side.
func (m DashboardModel) View() string {
	var b strings.Builder
	b.WriteString(tui.TitleStyle.Render("Your Progress"))
	b.WriteString("\n\n")

	summary, ok := m.agg.Summary()
	if !ok {
		if m.refreshing {
			b.WriteString(tui.DimStyle.Render("Loading statistics..."))
		} else {
			b.WriteString(tui.DimStyle.Render("No statistics yet. Press Ctrl+R to refresh."))
		}
		return b.String()
	}

	panelWidth := (m.width - 8) / 2
	if panelWidth < 24 {
		panelWidth = 24
	}

	left := ""
	if c := m.agg.AggregateChart(); c != nil {
		left = c.Render(panelWidth)
	}
	right := ""
	if c := m.agg.DifficultyChart(); c != nil {
		right = c.Render(panelWidth)
	}

	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		tui.BoxStyle.Width(panelWidth).Render(left),
		"  ",
		tui.BoxStyle.Width(panelWidth).Render(right),
	))
	b.WriteString("\n")

	total := summary.Passed + summary.Failed
	b.WriteString(tui.DimStyle.Render("Total submissions: "))
	b.WriteString(tui.SuccessStyle.Render(strconv.Itoa(total)))
	b.WriteString("\n")

	if m.lastErr != "" {
		b.WriteString(tui.ErrorStyle.Render("Refresh failed: " + m.lastErr))
		b.WriteString("\n")
	}
	if m.refreshing {
		b.WriteString(tui.DimStyle.Render("Refreshing..."))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(tui.DimStyle.Render("Ctrl+R: Refresh"))
	return b.String()
}
