package tui

import "github.com/dojoterm-dev/dojoterm/internal/voice"

// ChannelSink projects voice session events onto a channel consumed by
// the update loop. Sends never block: if the buffer is full the event
// is dropped rather than stalling an engine callback.
type ChannelSink struct {
	ch chan<- VoiceEvent
}

var _ voice.Sink = (*ChannelSink)(nil)

// NewChannelSink creates a sink writing to ch.
func NewChannelSink(ch chan<- VoiceEvent) *ChannelSink {
	return &ChannelSink{ch: ch}
}

func (s *ChannelSink) send(event VoiceEvent) {
	select {
	case s.ch <- event:
	default:
	}
}

// PhaseChanged implements voice.Sink.
func (s *ChannelSink) PhaseChanged(phase voice.Phase) {
	s.send(VoiceEvent{Kind: VoicePhaseChanged, Phase: phase})
}

// Listening implements voice.Sink.
func (s *ChannelSink) Listening() {
	s.send(VoiceEvent{Kind: VoiceListening})
}

// Transcript implements voice.Sink.
func (s *ChannelSink) Transcript(text string) {
	s.send(VoiceEvent{Kind: VoiceTranscript, Text: text})
}

// Reply implements voice.Sink.
func (s *ChannelSink) Reply(text string) {
	s.send(VoiceEvent{Kind: VoiceReply, Text: text})
}

// ReplyError implements voice.Sink.
func (s *ChannelSink) ReplyError() {
	s.send(VoiceEvent{Kind: VoiceReplyError})
}

// ErrorLine implements voice.Sink.
func (s *ChannelSink) ErrorLine(detail string) {
	s.send(VoiceEvent{Kind: VoiceErrorLine, Text: detail})
}
