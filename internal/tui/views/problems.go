package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dojoterm-dev/dojoterm/internal/api"
	"github.com/dojoterm-dev/dojoterm/internal/catalog"
	"github.com/dojoterm-dev/dojoterm/internal/tui"
)

// SubmitCodeMsg is sent when the user runs their code against the
// selected problem's hidden tests. Preconditions have already been
// checked by the view.
type SubmitCodeMsg struct {
	Submission api.Submission
}

// ProblemSelectedMsg is sent when a problem becomes the active one.
type ProblemSelectedMsg struct {
	ID int
}

// Placeholder shown when a test case produced no output.
const noOutputPlaceholder = "No output"

// focusArea identifies which panel receives key input.
type focusArea int

const (
	focusList focusArea = iota
	focusEditor
)

// ProblemsModel is the view model for the problem browsing and
// submission screen.
type ProblemsModel struct {
	store *catalog.Store

	focus    focusArea
	cursor   int // list navigation position
	activeID int // selected problem id, 0 when none

	editor    textarea.Model
	langIdx   int
	results   viewport.Model
	hasResult bool
	spin      spinner.Model

	notice     string // blocking precondition notice
	submitting bool

	width  int
	height int
}

// NewProblemsModel creates the problems view bound to the catalog store.
func NewProblemsModel(store *catalog.Store, width, height int) ProblemsModel {
	ta := textarea.New()
	ta.Placeholder = "Write your solution here..."
	ta.CharLimit = 0

	vp := viewport.New(width/2, height/3)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = tui.TitleStyle

	m := ProblemsModel{
		store:   store,
		editor:  ta,
		results: vp,
		spin:    sp,
		width:   width,
		height:  height,
	}
	m.layout()
	return m
}

// Init returns the initial command for the problems view.
func (m ProblemsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the problems view.
func (m ProblemsModel) Update(msg tea.Msg) (ProblemsModel, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case tui.KeyCtrlR:
			return m.submit()

		case tui.KeyCtrlL:
			if langs := m.store.Languages(); len(langs) > 0 {
				m.langIdx = (m.langIdx + 1) % len(langs)
			}
			return m, nil

		case tui.KeyEsc:
			m.focus = focusList
			m.editor.Blur()
			return m, nil
		}

		if m.focus == focusList {
			switch msg.String() {
			case tui.KeyUp:
				if m.cursor > 0 {
					m.cursor--
				}
				return m, nil
			case tui.KeyDown:
				if m.cursor < m.store.Len()-1 {
					m.cursor++
				}
				return m, nil
			case tui.KeyEnter:
				return m.selectAtCursor()
			}
			return m, nil
		}

	case spinner.TickMsg:
		if !m.submitting {
			return m, nil
		}
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case tui.SubmissionResultMsg:
		m.submitting = false
		m.hasResult = true
		m.results.SetContent(renderResults(msg.Result, m.results.Width))
		m.results.GotoTop()
		return m, nil

	case tui.SubmissionErrorMsg:
		m.submitting = false
		m.hasResult = true
		m.results.SetContent(tui.ErrorStyle.Render("Error: " + msg.Err.Error()))
		return m, nil
	}

	if m.focus == focusEditor {
		m.editor, cmd = m.editor.Update(msg)
		return m, cmd
	}

	m.results, cmd = m.results.Update(msg)
	return m, cmd
}

// selectAtCursor selects the problem under the cursor, resetting the
// editor, the result panel and the language control, and moves focus
// into the editor.
func (m ProblemsModel) selectAtCursor() (ProblemsModel, tea.Cmd) {
	problems := m.store.Problems()
	if m.cursor < 0 || m.cursor >= len(problems) {
		return m, nil
	}

	problem, err := m.store.Select(problems[m.cursor].ID)
	if err != nil {
		m.notice = err.Error()
		return m, nil
	}

	m.activeID = problem.ID
	m.notice = ""
	m.editor.Reset()
	m.hasResult = false
	m.results.SetContent("")
	m.langIdx = m.store.LanguageIndex(problem.Language)

	m.focus = focusEditor
	id := problem.ID
	return m, tea.Batch(
		m.editor.Focus(),
		func() tea.Msg { return ProblemSelectedMsg{ID: id} },
	)
}

// EditorFocused reports whether the code editor owns key input. The app
// leaves the tab key to the view while editing so it can indent.
func (m ProblemsModel) EditorFocused() bool {
	return m.focus == focusEditor
}

// submit checks the submission preconditions, switches the result panel
// to the running indicator, and emits the submission for the app to run.
func (m ProblemsModel) submit() (ProblemsModel, tea.Cmd) {
	if m.submitting {
		// One submission in flight at a time.
		return m, nil
	}

	current, ok := m.store.Current()
	if !ok {
		m.notice = "Please select a problem first"
		return m, nil
	}

	code := m.editor.Value()
	if strings.TrimSpace(code) == "" {
		m.notice = "Please write some code first"
		return m, nil
	}

	m.notice = ""
	m.submitting = true

	languages := m.store.Languages()
	language := ""
	if len(languages) > 0 {
		language = languages[m.langIdx%len(languages)]
	}

	sub := api.Submission{
		Code:      code,
		Language:  language,
		ProblemID: current.ID,
	}
	return m, tea.Batch(
		m.spin.Tick,
		func() tea.Msg {
			return SubmitCodeMsg{Submission: sub}
		},
	)
}

// Submitting reports whether a submission is in flight.
func (m ProblemsModel) Submitting() bool {
	return m.submitting
}

// layout recomputes panel dimensions from the window size.
func (m *ProblemsModel) layout() {
	listWidth := m.width / 3
	if listWidth < 24 {
		listWidth = 24
	}
	detailWidth := m.width - listWidth - 6
	if detailWidth < 30 {
		detailWidth = 30
	}

	m.editor.SetWidth(detailWidth)
	m.editor.SetHeight(m.height / 3)
	m.results.Width = detailWidth
	m.results.Height = m.height / 3
}

// View renders the problems view.
func (m ProblemsModel) View() string {
	listWidth := m.width / 3
	if listWidth < 24 {
		listWidth = 24
	}

	left := m.renderList(listWidth)
	right := m.renderDetail()

	return lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", right)
}

// renderList draws the problem list. Exactly one item carries the
// active marker: the currently selected problem.
func (m ProblemsModel) renderList(width int) string {
	var b strings.Builder
	b.WriteString(tui.TitleStyle.Render("Problems"))
	b.WriteString("\n\n")

	problems := m.store.Problems()
	if len(problems) == 0 {
		b.WriteString(tui.DimStyle.Render("No problems loaded."))
		return b.String()
	}

	for i, p := range problems {
		marker := "  "
		if i == m.cursor && m.focus == focusList {
			marker = "> "
		}

		// Truncate by runes so multibyte titles stay valid UTF-8.
		title := p.Title
		if runes := []rune(title); len(runes) > width-14 {
			title = string(runes[:width-17]) + "..."
		}

		line := fmt.Sprintf("%s%s %s", marker, title, tui.DifficultyStyle(p.Difficulty).Render(p.Difficulty))
		if p.ID == m.activeID {
			line = tui.SelectedStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(tui.DimStyle.Render("↑/↓: Move  Enter: Select"))
	return b.String()
}

// renderDetail draws the selected problem, the editor, and the results.
func (m ProblemsModel) renderDetail() string {
	current, ok := m.store.Current()
	if !ok {
		return tui.DimStyle.Render("Select a problem to start coding.")
	}

	var b strings.Builder
	b.WriteString(tui.TitleStyle.Render(current.Title))
	b.WriteString("  ")
	b.WriteString(tui.DifficultyStyle(current.Difficulty).Render(current.Difficulty))
	b.WriteString("\n\n")
	b.WriteString(current.Description)
	b.WriteString("\n\n")

	language := ""
	if langs := m.store.Languages(); len(langs) > 0 {
		language = langs[m.langIdx%len(langs)]
	}
	b.WriteString(tui.DimStyle.Render("Language: "))
	b.WriteString(tui.WarningStyle.Render(language))
	b.WriteString(tui.DimStyle.Render("  (Ctrl+L to change)"))
	b.WriteString("\n\n")

	b.WriteString(m.editor.View())
	b.WriteString("\n")

	if m.notice != "" {
		b.WriteString(tui.ErrorStyle.Render(m.notice))
		b.WriteString("\n")
	}

	if m.submitting {
		b.WriteString("\n")
		b.WriteString(m.spin.View())
		b.WriteString(tui.DimStyle.Render(" Running tests..."))
		b.WriteString("\n")
	} else if m.hasResult {
		b.WriteString("\n")
		b.WriteString(m.results.View())
	}

	b.WriteString("\n")
	b.WriteString(tui.DimStyle.Render("Ctrl+R: Run  Ctrl+L: Language  Esc: Back to list"))
	return b.String()
}

// renderResults draws the aggregate header and one card per test case,
// preserving backend order.
func renderResults(result *api.ResultSet, width int) string {
	var b strings.Builder

	if result.AllPassed {
		b.WriteString(tui.SuccessStyle.Bold(true).Render("All tests passed!"))
	} else {
		b.WriteString(tui.ErrorStyle.Bold(true).Render("Some tests failed"))
	}
	b.WriteString("\n\n")

	for i, r := range result.Results {
		b.WriteString(renderCard(i, r, width))
		b.WriteString("\n")
	}

	return b.String()
}

// renderCard draws a single test-case card.
func renderCard(index int, r api.TestResult, width int) string {
	icon := tui.ResultPass
	style := tui.PassedCardStyle
	if !r.Passed {
		icon = tui.ResultFail
		style = tui.FailedCardStyle
	}

	actual := r.Actual
	if actual == "" {
		actual = noOutputPlaceholder
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("Test Case %d %s\n", index+1, icon))
	b.WriteString(fmt.Sprintf("Input:    %s\n", r.Input))
	b.WriteString(fmt.Sprintf("Expected: %s\n", r.Expected))
	b.WriteString(fmt.Sprintf("Output:   %s\n", actual))
	if r.Error != "" {
		b.WriteString(tui.ErrorStyle.Render("Error: " + r.Error))
		b.WriteString("\n")
	}

	card := style.Render(strings.TrimRight(b.String(), "\n"))
	_ = width
	return card
}
