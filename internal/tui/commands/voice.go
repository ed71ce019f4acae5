package commands

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/dojoterm-dev/dojoterm/internal/tui"
	"github.com/dojoterm-dev/dojoterm/internal/voice"
)

// ToggleRecordingCmd starts a recording cycle, or stops the current one
// (the session's toggle semantics). Guard violations come back as a
// VoiceOpMsg for the assistant view to surface inline.
func ToggleRecordingCmd(session *voice.Session) tea.Cmd {
	return func() tea.Msg {
		return tui.VoiceOpMsg{Err: session.StartRecording()}
	}
}

// AskAssistantCmd sends typed text through the voice session. The reply
// arrives via the sink channel; the returned message only carries guard
// errors.
func AskAssistantCmd(session *voice.Session, text string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		return tui.VoiceOpMsg{Err: session.Ask(ctx, text)}
	}
}

// ListenVoiceCmd waits for the next voice sink event. The app re-issues
// this command after each delivery.
func ListenVoiceCmd(ch <-chan tui.VoiceEvent) tea.Cmd {
	return func() tea.Msg {
		event, ok := <-ch
		if !ok {
			return nil
		}
		return tui.VoiceEventMsg{Event: event}
	}
}
