package voice

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/dojoterm-dev/dojoterm/internal/log"
)

// ErrUnsupported is returned when no speech-recognition engine is available.
var ErrUnsupported = errors.New("speech recognition is not available")

// ErrBusy is returned when a recording start is requested while a
// previous cycle is still processing.
var ErrBusy = errors.New("a voice request is still processing")

// Phase is the session lifecycle state.
type Phase int

const (
	Idle Phase = iota
	Recording
	Processing
)

func (p Phase) String() string {
	switch p {
	case Recording:
		return "recording"
	case Processing:
		return "processing"
	default:
		return "idle"
	}
}

// Fixed synthesis parameters.
const (
	synthRate   = 0.9
	synthPitch  = 1.0
	synthVolume = 1.0
)

// EventLogger records session events; nil disables logging.
type EventLogger interface {
	Append(event log.LogEvent) error
}

// Options configures a Session.
type Options struct {
	// VoicePrefix selects the first synthesis voice whose language
	// starts with this prefix; the engine's first voice is the fallback.
	VoicePrefix string
	Logger      EventLogger
}

// Session runs one voice interaction cycle at a time. Engine callbacks
// arrive off the UI loop, so transitions are serialized with a mutex.
type Session struct {
	recognizer Recognizer
	assistant  Assistant
	synth      Synthesizer
	sink       Sink
	opts       Options

	mu    sync.Mutex
	phase Phase
}

// NewSession creates an Idle session. A nil recognizer models an
// environment without speech-recognition capability.
func NewSession(recognizer Recognizer, assistant Assistant, synth Synthesizer, sink Sink, opts Options) *Session {
	if opts.VoicePrefix == "" {
		opts.VoicePrefix = "en"
	}
	return &Session{
		recognizer: recognizer,
		assistant:  assistant,
		synth:      synth,
		sink:       sink,
		opts:       opts,
	}
}

// Phase returns the current lifecycle state.
func (s *Session) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// StartRecording begins a recording cycle. Calling it while already
// recording acts as StopRecording (toggle semantics); calling it while a
// request is processing is rejected with ErrBusy. A synchronous engine
// start failure unwinds the state back to Idle.
func (s *Session) StartRecording() error {
	if s.recognizer == nil {
		return ErrUnsupported
	}

	s.mu.Lock()
	switch s.phase {
	case Processing:
		s.mu.Unlock()
		return ErrBusy
	case Recording:
		s.mu.Unlock()
		s.StopRecording()
		return nil
	}
	s.phase = Recording
	s.mu.Unlock()

	s.sink.PhaseChanged(Recording)
	s.sink.Listening()
	s.logEvent(log.LogEvent{Event: log.EventVoiceStarted})

	if err := s.recognizer.Start(); err != nil {
		s.mu.Lock()
		s.phase = Idle
		s.mu.Unlock()
		s.sink.PhaseChanged(Idle)
		s.logEvent(log.LogEvent{Event: log.EventVoiceError, Error: err.Error()})
		return err
	}
	return nil
}

// StopRecording is idempotent: it resets the recording state and visuals
// first, then asks the engine to stop. Engine stop errors are logged
// only, since the visual state has already been reset.
func (s *Session) StopRecording() {
	s.mu.Lock()
	wasRecording := s.phase == Recording
	if wasRecording {
		s.phase = Idle
	}
	s.mu.Unlock()

	if wasRecording {
		s.sink.PhaseChanged(Idle)
		s.logEvent(log.LogEvent{Event: log.EventVoiceStopped})
	}

	if s.recognizer != nil {
		if err := s.recognizer.Stop(); err != nil {
			s.logEvent(log.LogEvent{Event: log.EventVoiceError, Error: err.Error()})
		}
	}
}

// HandleResult is invoked by the engine with the single best transcript.
// It transitions Recording→Processing, displays the transcript, performs
// the assistant round-trip, speaks a successful reply, and returns to Idle.
func (s *Session) HandleResult(ctx context.Context, transcript string) {
	s.mu.Lock()
	if s.phase != Recording {
		// Late result after a cancelled cycle; nothing to do.
		s.mu.Unlock()
		return
	}
	s.phase = Processing
	s.mu.Unlock()

	s.sink.PhaseChanged(Processing)
	s.sink.Transcript(transcript)
	s.logEvent(log.LogEvent{Event: log.EventVoiceTranscript, Text: transcript})

	reply, err := s.assistant.Ask(ctx, transcript)
	if err != nil {
		s.sink.ReplyError()
		s.logEvent(log.LogEvent{Event: log.EventVoiceError, Error: err.Error()})
	} else {
		s.sink.Reply(reply)
		s.logEvent(log.LogEvent{Event: log.EventVoiceReply, Text: reply})
		s.Speak(reply)
	}

	s.mu.Lock()
	s.phase = Idle
	s.mu.Unlock()
	s.sink.PhaseChanged(Idle)

	if err := s.recognizer.Stop(); err != nil {
		s.logEvent(log.LogEvent{Event: log.EventVoiceError, Error: err.Error()})
	}
}

// Ask runs the assistant round-trip for typed text, under the same
// single-cycle guard as a voice interaction.
func (s *Session) Ask(ctx context.Context, text string) error {
	s.mu.Lock()
	if s.phase != Idle {
		s.mu.Unlock()
		return ErrBusy
	}
	s.phase = Processing
	s.mu.Unlock()

	s.sink.PhaseChanged(Processing)
	s.sink.Transcript(text)

	reply, err := s.assistant.Ask(ctx, text)
	if err != nil {
		s.sink.ReplyError()
		s.logEvent(log.LogEvent{Event: log.EventVoiceError, Error: err.Error()})
	} else {
		s.sink.Reply(reply)
		s.logEvent(log.LogEvent{Event: log.EventVoiceReply, Text: reply})
		s.Speak(reply)
	}

	s.mu.Lock()
	s.phase = Idle
	s.mu.Unlock()
	s.sink.PhaseChanged(Idle)
	return nil
}

// HandleError is invoked on a recognition error: the detail is appended
// to the transcript display without clearing prior content, and a
// recording in progress is unwound to Idle.
func (s *Session) HandleError(detail string) {
	s.sink.ErrorLine(detail)
	s.logEvent(log.LogEvent{Event: log.EventVoiceError, Error: detail})
	s.stopIfRecording()
}

// HandleEnd is invoked when the engine reports the recording ended.
func (s *Session) HandleEnd() {
	s.stopIfRecording()
}

func (s *Session) stopIfRecording() {
	s.mu.Lock()
	wasRecording := s.phase == Recording
	if wasRecording {
		s.phase = Idle
	}
	s.mu.Unlock()

	if wasRecording {
		s.sink.PhaseChanged(Idle)
		s.logEvent(log.LogEvent{Event: log.EventVoiceStopped})
	}
}

// Speak synthesizes text aloud. Any currently speaking utterance is
// cancelled first: at most one utterance is audible at a time. The first
// voice matching the configured language prefix is selected, falling
// back to the engine's first voice. Failures are logged only.
func (s *Session) Speak(text string) {
	if s.synth == nil {
		return
	}

	s.synth.Cancel()

	u := Utterance{
		Text:   text,
		Rate:   synthRate,
		Pitch:  synthPitch,
		Volume: synthVolume,
	}

	voices := s.synth.Voices()
	for _, v := range voices {
		if strings.HasPrefix(v.Lang, s.opts.VoicePrefix) {
			u.Voice = v
			break
		}
	}
	if u.Voice == (Voice{}) && len(voices) > 0 {
		u.Voice = voices[0]
	}

	if err := s.synth.Speak(u); err != nil {
		s.logEvent(log.LogEvent{Event: log.EventSynthesisError, Error: err.Error()})
		return
	}
	s.logEvent(log.LogEvent{Event: log.EventSynthesisDone, Text: text})
}

func (s *Session) logEvent(event log.LogEvent) {
	if s.opts.Logger == nil {
		return
	}
	_ = s.opts.Logger.Append(event)
}
