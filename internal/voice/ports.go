// Package voice implements the voice interaction state machine:
// recording, transcription, assistant round-trip, and spoken reply.
package voice

import "context"

// Recognizer is the speech-recognition capability. Engines deliver their
// results by calling Session.HandleResult, HandleError and HandleEnd.
type Recognizer interface {
	Start() error
	Stop() error
}

// Assistant answers free-text questions.
type Assistant interface {
	Ask(ctx context.Context, text string) (string, error)
}

// Voice describes one synthesis voice.
type Voice struct {
	Name string
	Lang string // locale tag, e.g. en-US
}

// Utterance is one synthesis request.
type Utterance struct {
	Text   string
	Voice  Voice
	Rate   float64
	Pitch  float64
	Volume float64
}

// Synthesizer is the speech-synthesis capability.
type Synthesizer interface {
	Voices() []Voice
	Speak(u Utterance) error
	Cancel()
}

// Sink receives the session's view projections. The TUI implements this
// to drive the assistant panel; tests substitute a recorder.
type Sink interface {
	PhaseChanged(phase Phase)
	Listening()              // transcript display replaced with listening indicator
	Transcript(text string)  // recognized text, displayed immediately
	Reply(text string)       // assistant reply
	ReplyError()             // fixed error notice in place of a reply
	ErrorLine(detail string) // appended without clearing prior content
}
