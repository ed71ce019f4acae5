// Package views provides TUI view components for the dojoterm application.
package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/dojoterm-dev/dojoterm/internal/tui"
)

// SubmitTokenMsg is sent when the user submits an access token.
type SubmitTokenMsg struct {
	Token string
}

// LoginModel is the view model for the login screen. The login flow
// itself lives on the server; the client only stores the token.
type LoginModel struct {
	textInput textinput.Model
	Err       error
	width     int
	height    int
}

// NewLoginModel creates a new LoginModel.
func NewLoginModel(width, height int) LoginModel {
	ti := textinput.New()
	ti.Placeholder = "paste your access token..."
	ti.CharLimit = 2000
	ti.Width = width - 10
	ti.EchoMode = textinput.EchoPassword
	ti.Focus()

	return LoginModel{
		textInput: ti,
		width:     width,
		height:    height,
	}
}

// Init returns the initial command for the login view.
func (m LoginModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages for the login view.
func (m LoginModel) Update(msg tea.Msg) (LoginModel, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == tui.KeyEnter {
			value := strings.TrimSpace(m.textInput.Value())
			if value != "" {
				return m, func() tea.Msg {
					return SubmitTokenMsg{Token: value}
				}
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.textInput.Width = msg.Width - 10
		return m, nil
	}

	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

// View renders the login view.
func (m LoginModel) View() string {
	var b strings.Builder

	header := tui.TitleStyle.Render("dojoterm - Coding Practice")
	b.WriteString(header)
	b.WriteString("\n\n")

	b.WriteString("Sign in on the web app, then paste an access token:")
	b.WriteString("\n\n")

	b.WriteString(m.textInput.View())
	b.WriteString("\n\n")

	if m.Err != nil {
		b.WriteString(tui.ErrorStyle.Render("Error: " + m.Err.Error()))
		b.WriteString("\n\n")
	}

	footer := tui.DimStyle.Render("Enter: Save token       Ctrl+C: Exit")
	b.WriteString(footer)

	content := b.String()
	return tui.BoxStyle.
		Width(min(m.width-4, 70)).
		Render(content)
}
