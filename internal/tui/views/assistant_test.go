package views

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dojoterm-dev/dojoterm/internal/tui"
	"github.com/dojoterm-dev/dojoterm/internal/voice"
)

func voiceEvent(kind tui.VoiceEventKind, phase voice.Phase, text string) tui.VoiceEventMsg {
	return tui.VoiceEventMsg{Event: tui.VoiceEvent{Kind: kind, Phase: phase, Text: text}}
}

func TestVoiceCycleProjectsTranscriptAndReply(t *testing.T) {
	m := NewAssistantModel(80, 24)

	m, _ = m.Update(voiceEvent(tui.VoicePhaseChanged, voice.Recording, ""))
	m, _ = m.Update(voiceEvent(tui.VoiceListening, voice.Recording, ""))
	m, _ = m.Update(voiceEvent(tui.VoicePhaseChanged, voice.Processing, ""))
	m, _ = m.Update(voiceEvent(tui.VoiceTranscript, voice.Processing, "what is a heap"))
	m, _ = m.Update(voiceEvent(tui.VoiceReply, voice.Processing, "A heap is a tree-shaped priority structure."))
	m, _ = m.Update(voiceEvent(tui.VoicePhaseChanged, voice.Idle, ""))

	lines := m.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, "you", lines[0].Role)
	assert.Equal(t, "what is a heap", lines[0].Text)
	assert.Equal(t, "assistant", lines[1].Role)
	assert.Equal(t, voice.Idle, m.phase)
}

func TestListeningBadgeAppearsOnlyAfterEngagement(t *testing.T) {
	m := NewAssistantModel(80, 24)

	m, _ = m.Update(voiceEvent(tui.VoicePhaseChanged, voice.Recording, ""))
	assert.Contains(t, m.View(), "Starting microphone")

	m, _ = m.Update(voiceEvent(tui.VoiceListening, voice.Recording, ""))
	assert.Contains(t, m.View(), "Listening")
}

func TestReplyErrorKeepsTranscriptVisible(t *testing.T) {
	m := NewAssistantModel(80, 24)

	m, _ = m.Update(voiceEvent(tui.VoiceTranscript, voice.Processing, "hello"))
	m, _ = m.Update(voiceEvent(tui.VoiceReplyError, voice.Processing, "assistant unavailable"))

	lines := m.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, "you", lines[0].Role)
	assert.Equal(t, "error", lines[1].Role)
	assert.Contains(t, m.View(), "hello")
}

func TestCtrlTEmitsToggleRecording(t *testing.T) {
	m := NewAssistantModel(80, 24)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlT})

	require.NotNil(t, cmd)
	_, ok := cmd().(ToggleRecordingMsg)
	assert.True(t, ok)
}

func TestTypedQuestionEmitsAskAndEchoesLine(t *testing.T) {
	m := NewAssistantModel(80, 24)
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("explain recursion")})

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	require.NotNil(t, cmd)
	ask, ok := cmd().(AskAssistantMsg)
	require.True(t, ok)
	assert.Equal(t, "explain recursion", ask.Text)

	lines := m.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, "you", lines[0].Role)
	assert.Empty(t, m.input.Value())
}

func TestEmptyTypedQuestionIsIgnored(t *testing.T) {
	m := NewAssistantModel(80, 24)

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
	assert.Empty(t, m.Lines())
}

func TestGuardErrorSurfacesAsNotice(t *testing.T) {
	m := NewAssistantModel(80, 24)

	m, _ = m.Update(tui.VoiceOpMsg{Err: voice.ErrBusy})

	assert.Contains(t, m.View(), voice.ErrBusy.Error())
}
