// Package tui implements the terminal user interface using Bubble Tea.
package tui

import (
	"github.com/dojoterm-dev/dojoterm/internal/api"
	"github.com/dojoterm-dev/dojoterm/internal/voice"
)

// ============================================================================
// Catalog Messages
// ============================================================================

// ProblemsLoadedMsg signals that the problem catalog has been loaded.
type ProblemsLoadedMsg struct {
	Count int
}

// ProblemsLoadErrorMsg signals a catalog load failure. The prior
// sequence is left in place; the error is logged only.
type ProblemsLoadErrorMsg struct {
	Err error
}

// ============================================================================
// Submission Messages
// ============================================================================

// SubmissionResultMsg carries the structured result of a code submission.
type SubmissionResultMsg struct {
	ProblemID int
	Result    *api.ResultSet
}

// SubmissionErrorMsg signals a transport or backend failure during a
// submission. Statistics are not refreshed on this path.
type SubmissionErrorMsg struct {
	Err error
}

// ============================================================================
// Statistics Messages
// ============================================================================

// StatsRefreshedMsg signals that the statistics summary and charts have
// been rebuilt.
type StatsRefreshedMsg struct{}

// StatsRefreshErrorMsg signals a refresh failure; prior charts remain.
type StatsRefreshErrorMsg struct {
	Err error
}

// ============================================================================
// Auth Messages
// ============================================================================

// AuthExpiredMsg signals that an authenticated call saw a 401. The
// credential has already been cleared; the app returns to the login view.
type AuthExpiredMsg struct{}

// TokenSavedMsg signals that a credential has been stored.
type TokenSavedMsg struct{}

// TokenSaveErrorMsg signals a credential store failure.
type TokenSaveErrorMsg struct {
	Err error
}

// ============================================================================
// Voice Messages
// ============================================================================

// VoiceEventKind discriminates voice sink projections.
type VoiceEventKind int

const (
	VoicePhaseChanged VoiceEventKind = iota
	VoiceListening
	VoiceTranscript
	VoiceReply
	VoiceReplyError
	VoiceErrorLine
)

// VoiceEvent is one sink projection from the voice session.
type VoiceEvent struct {
	Kind  VoiceEventKind
	Phase voice.Phase
	Text  string
}

// VoiceEventMsg delivers a VoiceEvent into the update loop.
type VoiceEventMsg struct {
	Event VoiceEvent
}

// VoiceOpMsg reports the synchronous outcome of a start/ask request,
// surfacing ErrBusy and ErrUnsupported as inline notices.
type VoiceOpMsg struct {
	Err error
}

// ============================================================================
// Utility Messages
// ============================================================================

// CtrlCResetMsg clears the Ctrl+C confirmation state after its timeout.
type CtrlCResetMsg struct{}
