// Package tui implements the terminal user interface using Bubble Tea.
package tui

import (
	"github.com/dojoterm-dev/dojoterm/internal/api"
	"github.com/dojoterm-dev/dojoterm/internal/auth"
	"github.com/dojoterm-dev/dojoterm/internal/catalog"
	"github.com/dojoterm-dev/dojoterm/internal/config"
	"github.com/dojoterm-dev/dojoterm/internal/log"
	"github.com/dojoterm-dev/dojoterm/internal/stats"
	"github.com/dojoterm-dev/dojoterm/internal/voice"
)

// ViewState represents the current state of the TUI.
type ViewState int

const (
	StateLogin ViewState = iota
	StateProblems
	StateDashboard
	StateAssistant
)

// Tab represents the active tab in the TUI.
type Tab int

const (
	TabProblems Tab = iota
	TabDashboard
	TabAssistant
)

// TranscriptLine is one line of the assistant conversation display.
type TranscriptLine struct {
	Role string // "you", "assistant", "system", "error"
	Text string
}

// Model is the main TUI model that holds all application state.
type Model struct {
	// State management
	State        ViewState
	ActiveTab    Tab
	Err          error
	CtrlCPending bool // true when waiting for second Ctrl+C press

	// Configuration and collaborators
	Cfg     *config.Config
	Client  *api.Client
	Creds   *auth.Store
	Logger  *log.Logger
	Catalog *catalog.Store
	Stats   *stats.Aggregator
	Voice   *voice.Session

	// VoiceEvents carries sink projections from the voice session into
	// the update loop.
	VoiceEvents chan VoiceEvent

	// Terminal dimensions
	Width  int
	Height int
}

// Deps bundles the collaborators wired in by the CLI layer.
type Deps struct {
	Cfg     *config.Config
	Client  *api.Client
	Creds   *auth.Store
	Logger  *log.Logger
	Catalog *catalog.Store
	Stats   *stats.Aggregator
	Voice   *voice.Session

	// VoiceEvents is the channel the session's sink writes to. Left nil,
	// the model creates its own (the session then has nowhere to project
	// to, which only happens in tests).
	VoiceEvents chan VoiceEvent
}

// NewModel creates a new Model with the given collaborators.
func NewModel(deps Deps) *Model {
	events := deps.VoiceEvents
	if events == nil {
		events = make(chan VoiceEvent, 32)
	}

	return &Model{
		State:     StateProblems,
		ActiveTab: TabProblems,

		Cfg:     deps.Cfg,
		Client:  deps.Client,
		Creds:   deps.Creds,
		Logger:  deps.Logger,
		Catalog: deps.Catalog,
		Stats:   deps.Stats,
		Voice:   deps.Voice,

		VoiceEvents: events,

		// Default dimensions (updated on WindowSizeMsg)
		Width:  80,
		Height: 24,
	}
}

// LogEvent appends a structured event, ignoring logger absence and
// write failures: logging never disrupts the session.
func (m *Model) LogEvent(event log.LogEvent) {
	if m.Logger == nil {
		return
	}
	_ = m.Logger.Append(event)
}
