// Package app wires the views, commands and domain state into the main
// TUI application.
package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dojoterm-dev/dojoterm/internal/api"
	"github.com/dojoterm-dev/dojoterm/internal/log"
	"github.com/dojoterm-dev/dojoterm/internal/tui"
	"github.com/dojoterm-dev/dojoterm/internal/tui/commands"
	"github.com/dojoterm-dev/dojoterm/internal/tui/views"
)

// ctrlCWindow is how long the first Ctrl+C press arms the quit
// confirmation.
const ctrlCWindow = time.Second

// App is the main TUI application.
type App struct {
	model *tui.Model

	loginView     views.LoginModel
	problemsView  views.ProblemsModel
	dashboardView views.DashboardModel
	assistantView views.AssistantModel
}

// New creates the App with the given collaborators.
func New(deps tui.Deps) *App {
	model := tui.NewModel(deps)

	return &App{
		model:         model,
		loginView:     views.NewLoginModel(model.Width, model.Height),
		problemsView:  views.NewProblemsModel(model.Catalog, model.Width, model.Height),
		dashboardView: views.NewDashboardModel(model.Stats, model.Width, model.Height),
		assistantView: views.NewAssistantModel(model.Width, model.Height),
	}
}

// Init decides the entry screen: without a stored credential the app
// starts at login, otherwise it loads the catalog and statistics
// straight away.
func (a *App) Init() tea.Cmd {
	if _, err := a.model.Creds.Load(); err != nil {
		a.model.State = tui.StateLogin
		return a.loginView.Init()
	}

	a.model.State = tui.StateProblems
	return a.startSession()
}

// startSession kicks off the initial data loads and arms the voice
// event listener.
func (a *App) startSession() tea.Cmd {
	return tea.Batch(
		commands.LoadProblemsCmd(a.model.Catalog, a.model.Client),
		commands.RefreshStatsCmd(a.model.Stats, a.model.Client),
		commands.ListenVoiceCmd(a.model.VoiceEvents),
		a.assistantView.Init(),
	)
}

// Update handles messages and updates the application state.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.model.Width = msg.Width
		a.model.Height = msg.Height
		var cmds []tea.Cmd
		var cmd tea.Cmd
		a.loginView, cmd = a.loginView.Update(msg)
		cmds = append(cmds, cmd)
		a.problemsView, cmd = a.problemsView.Update(msg)
		cmds = append(cmds, cmd)
		a.dashboardView, cmd = a.dashboardView.Update(msg)
		cmds = append(cmds, cmd)
		a.assistantView, cmd = a.assistantView.Update(msg)
		cmds = append(cmds, cmd)
		return a, tea.Batch(cmds...)

	case tea.KeyMsg:
		switch msg.String() {
		case tui.KeyCtrlC:
			if a.model.CtrlCPending {
				return a, tea.Quit
			}
			a.model.CtrlCPending = true
			return a, tea.Tick(ctrlCWindow, func(time.Time) tea.Msg {
				return tui.CtrlCResetMsg{}
			})

		case tui.KeyTab:
			// The code editor keeps tab for indentation.
			if a.model.State != tui.StateLogin &&
				!(a.model.State == tui.StateProblems && a.problemsView.EditorFocused()) {
				a.cycleTab()
				return a, nil
			}
		}

	case tui.CtrlCResetMsg:
		a.model.CtrlCPending = false
		return a, nil

	case tui.AuthExpiredMsg:
		// The credential has already been cleared by the gateway.
		a.model.LogEvent(log.LogEvent{Event: log.EventAuthExpired})
		a.model.State = tui.StateLogin
		a.loginView = views.NewLoginModel(a.model.Width, a.model.Height)
		a.loginView.Err = api.ErrUnauthorized
		return a, a.loginView.Init()

	case tui.ProblemsLoadedMsg:
		a.model.LogEvent(log.LogEvent{Event: log.EventProblemsLoaded, Count: msg.Count})
		return a, nil

	case tui.ProblemsLoadErrorMsg:
		// The prior catalog stays usable; the failure is logged only.
		a.model.LogEvent(log.LogEvent{Event: log.EventProblemsLoadFailed, Error: msg.Err.Error()})
		return a, nil

	case tui.SubmissionResultMsg:
		a.model.LogEvent(log.LogEvent{
			Event:     log.EventSubmissionComplete,
			ProblemID: msg.ProblemID,
			Count:     len(msg.Result.Results),
			Passed:    msg.Result.AllPassed,
		})
		var cmd tea.Cmd
		a.problemsView, cmd = a.problemsView.Update(msg)
		// A completed submission changes the user's statistics.
		return a, tea.Batch(cmd, commands.RefreshStatsCmd(a.model.Stats, a.model.Client))

	case tui.SubmissionErrorMsg:
		// Nothing ran, so the statistics are unchanged.
		a.model.LogEvent(log.LogEvent{Event: log.EventSubmissionFailed, Error: msg.Err.Error()})
		var cmd tea.Cmd
		a.problemsView, cmd = a.problemsView.Update(msg)
		return a, cmd

	case tui.StatsRefreshedMsg:
		a.model.LogEvent(log.LogEvent{Event: log.EventStatsRefreshed})
		var cmd tea.Cmd
		a.dashboardView, cmd = a.dashboardView.Update(msg)
		return a, cmd

	case tui.StatsRefreshErrorMsg:
		a.model.LogEvent(log.LogEvent{Event: log.EventStatsRefreshFailed, Error: msg.Err.Error()})
		var cmd tea.Cmd
		a.dashboardView, cmd = a.dashboardView.Update(msg)
		return a, cmd

	case tui.VoiceEventMsg:
		var cmd tea.Cmd
		a.assistantView, cmd = a.assistantView.Update(msg)
		// Re-arm the listener for the next sink event.
		return a, tea.Batch(cmd, commands.ListenVoiceCmd(a.model.VoiceEvents))

	case tui.VoiceOpMsg:
		var cmd tea.Cmd
		a.assistantView, cmd = a.assistantView.Update(msg)
		return a, cmd

	case views.SubmitTokenMsg:
		return a, commands.SaveTokenCmd(a.model.Creds, msg.Token)

	case tui.TokenSavedMsg:
		a.model.State = tui.StateProblems
		a.model.ActiveTab = tui.TabProblems
		return a, a.startSession()

	case tui.TokenSaveErrorMsg:
		a.loginView.Err = msg.Err
		return a, nil

	case views.ProblemSelectedMsg:
		a.model.LogEvent(log.LogEvent{Event: log.EventProblemSelected, ProblemID: msg.ID})
		return a, nil

	case views.SubmitCodeMsg:
		a.model.LogEvent(log.LogEvent{
			Event:     log.EventSubmissionStarted,
			ProblemID: msg.Submission.ProblemID,
			Language:  msg.Submission.Language,
		})
		return a, commands.SubmitCodeCmd(a.model.Client, msg.Submission)

	case views.RefreshStatsMsg:
		return a, commands.RefreshStatsCmd(a.model.Stats, a.model.Client)

	case views.ToggleRecordingMsg:
		return a, commands.ToggleRecordingCmd(a.model.Voice)

	case views.AskAssistantMsg:
		return a, commands.AskAssistantCmd(a.model.Voice, msg.Text)
	}

	// Everything else goes to the active view.
	var cmd tea.Cmd
	switch a.model.State {
	case tui.StateLogin:
		a.loginView, cmd = a.loginView.Update(msg)
	case tui.StateProblems:
		a.problemsView, cmd = a.problemsView.Update(msg)
	case tui.StateDashboard:
		a.dashboardView, cmd = a.dashboardView.Update(msg)
	case tui.StateAssistant:
		a.assistantView, cmd = a.assistantView.Update(msg)
	}
	return a, cmd
}

// View renders the current application state.
func (a *App) View() string {
	if a.model.State == tui.StateLogin {
		return lipgloss.Place(
			a.model.Width, a.model.Height,
			lipgloss.Center, lipgloss.Center,
			a.loginView.View(),
		)
	}

	var content string
	switch a.model.State {
	case tui.StateProblems:
		content = a.problemsView.View()
	case tui.StateDashboard:
		content = a.dashboardView.View()
	case tui.StateAssistant:
		content = a.assistantView.View()
	}

	footer := tui.DimStyle.Render("Tab: Switch view  Ctrl+C twice: Quit")
	if a.model.CtrlCPending {
		footer = tui.WarningStyle.Render("Press Ctrl+C again to quit")
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		a.renderTabBar(),
		"",
		content,
		"",
		footer,
	)
}

// cycleTab advances Problems -> Dashboard -> Assistant -> Problems.
func (a *App) cycleTab() {
	switch a.model.ActiveTab {
	case tui.TabProblems:
		a.model.ActiveTab = tui.TabDashboard
		a.model.State = tui.StateDashboard
	case tui.TabDashboard:
		a.model.ActiveTab = tui.TabAssistant
		a.model.State = tui.StateAssistant
	case tui.TabAssistant:
		a.model.ActiveTab = tui.TabProblems
		a.model.State = tui.StateProblems
	}
}

// renderTabBar renders the tab bar with the active tab highlighted.
func (a *App) renderTabBar() string {
	tabs := []struct {
		name string
		tab  tui.Tab
	}{
		{"Problems", tui.TabProblems},
		{"Dashboard", tui.TabDashboard},
		{"Assistant", tui.TabAssistant},
	}

	var rendered []string
	for _, t := range tabs {
		if t.tab == a.model.ActiveTab {
			rendered = append(rendered, tui.ActiveTabStyle.Render(t.name))
		} else {
			rendered = append(rendered, tui.InactiveTabStyle.Render(t.name))
		}
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}
