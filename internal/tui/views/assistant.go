package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/dojoterm-dev/dojoterm/internal/tui"
	"github.com/dojoterm-dev/dojoterm/internal/voice"
)

// ToggleRecordingMsg is sent when the user presses the microphone key.
type ToggleRecordingMsg struct{}

// Fixed notice shown in place of a reply when the assistant request fails.
const replyErrorNotice = "Sorry, I couldn't process your request."

// AskAssistantMsg is sent when the user submits a typed question.
type AskAssistantMsg struct {
	Text string
}

// AssistantModel is the view model for the voice assistant screen. The
// transcript is a one-way projection of session sink events; the view
// never mutates session state directly.
type AssistantModel struct {
	phase     voice.Phase
	listening bool
	lines     []tui.TranscriptLine
	notice    string

	input    textinput.Model
	history  viewport.Model
	hasLines bool

	width  int
	height int
}

// NewAssistantModel creates the assistant view.
func NewAssistantModel(width, height int) AssistantModel {
	ti := textinput.New()
	ti.Placeholder = "Type a question, or Ctrl+T to talk..."
	ti.CharLimit = 1000
	ti.Width = width - 10
	ti.Focus()

	vp := viewport.New(width-6, height-10)

	return AssistantModel{
		input:   ti,
		history: vp,
		width:   width,
		height:  height,
	}
}

// Init returns the initial command for the assistant view.
func (m AssistantModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages for the assistant view.
func (m AssistantModel) Update(msg tea.Msg) (AssistantModel, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = msg.Width - 10
		m.history.Width = msg.Width - 6
		m.history.Height = msg.Height - 10
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case tui.KeyCtrlT:
			m.notice = ""
			return m, func() tea.Msg { return ToggleRecordingMsg{} }

		case tui.KeyEnter:
			text := strings.TrimSpace(m.input.Value())
			if text == "" {
				return m, nil
			}
			m.notice = ""
			m.input.Reset()
			m.appendLine(tui.TranscriptLine{Role: "you", Text: text})
			return m, func() tea.Msg { return AskAssistantMsg{Text: text} }
		}

	case tui.VoiceEventMsg:
		m.applyEvent(msg.Event)
		return m, nil

	case tui.VoiceOpMsg:
		if msg.Err != nil {
			m.notice = msg.Err.Error()
		}
		return m, nil
	}

	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// applyEvent folds one sink projection into the display state.
func (m *AssistantModel) applyEvent(event tui.VoiceEvent) {
	switch event.Kind {
	case tui.VoicePhaseChanged:
		m.phase = event.Phase
		if event.Phase != voice.Recording {
			m.listening = false
		}
	case tui.VoiceListening:
		m.listening = true
	case tui.VoiceTranscript:
		m.appendLine(tui.TranscriptLine{Role: "you", Text: event.Text})
	case tui.VoiceReply:
		m.appendLine(tui.TranscriptLine{Role: "assistant", Text: event.Text})
	case tui.VoiceReplyError:
		m.appendLine(tui.TranscriptLine{Role: "error", Text: replyErrorNotice})
	case tui.VoiceErrorLine:
		m.appendLine(tui.TranscriptLine{Role: "system", Text: event.Text})
	}
}

func (m *AssistantModel) appendLine(line tui.TranscriptLine) {
	m.lines = append(m.lines, line)
	m.hasLines = true
	m.history.SetContent(m.renderTranscript())
	m.history.GotoBottom()
}

// Lines returns the transcript projection, for the app and for tests.
func (m AssistantModel) Lines() []tui.TranscriptLine {
	return m.lines
}

// View renders the assistant view.
func (m AssistantModel) View() string {
	var b strings.Builder
	b.WriteString(tui.TitleStyle.Render("Voice Assistant"))
	b.WriteString("  ")
	b.WriteString(m.statusBadge())
	b.WriteString("\n\n")

	if m.hasLines {
		b.WriteString(m.history.View())
	} else {
		b.WriteString(tui.DimStyle.Render("Ask anything about coding problems. Press Ctrl+T and speak, or type below."))
	}
	b.WriteString("\n\n")

	b.WriteString(m.input.View())
	b.WriteString("\n")

	if m.notice != "" {
		b.WriteString(tui.WarningStyle.Render(m.notice))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(tui.DimStyle.Render("Ctrl+T: Talk  Enter: Ask"))
	return b.String()
}

// statusBadge shows the session phase; the listening hint only appears
// once the recognizer has actually engaged.
func (m AssistantModel) statusBadge() string {
	switch m.phase {
	case voice.Recording:
		if m.listening {
			return tui.ErrorStyle.Render("● Listening...")
		}
		return tui.WarningStyle.Render("● Starting microphone...")
	case voice.Processing:
		return tui.WarningStyle.Render("… Thinking")
	default:
		return tui.DimStyle.Render("○ Idle")
	}
}

func (m AssistantModel) renderTranscript() string {
	var b strings.Builder
	for _, line := range m.lines {
		switch line.Role {
		case "you":
			b.WriteString(tui.SuccessStyle.Render("You: "))
			b.WriteString(line.Text)
		case "assistant":
			b.WriteString(tui.TitleStyle.Render("Assistant: "))
			b.WriteString(line.Text)
		case "error":
			b.WriteString(tui.ErrorStyle.Render(line.Text))
		default:
			b.WriteString(tui.DimStyle.Render(line.Text))
		}
		b.WriteString("\n")
	}
	return b.String()
}
