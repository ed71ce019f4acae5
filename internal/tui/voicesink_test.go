package tui

import (
	"testing"

	"github.com/dojoterm-dev/dojoterm/internal/voice"
)

func TestChannelSinkDelivers(t *testing.T) {
	ch := make(chan VoiceEvent, 4)
	sink := NewChannelSink(ch)

	sink.PhaseChanged(voice.Recording)
	sink.Transcript("hello")

	ev := <-ch
	if ev.Kind != VoicePhaseChanged || ev.Phase != voice.Recording {
		t.Errorf("unexpected first event: %+v", ev)
	}
	ev = <-ch
	if ev.Kind != VoiceTranscript || ev.Text != "hello" {
		t.Errorf("unexpected second event: %+v", ev)
	}
}

func TestChannelSinkNeverBlocks(t *testing.T) {
	ch := make(chan VoiceEvent, 1)
	sink := NewChannelSink(ch)

	// The second send overflows the buffer and must be dropped, not block.
	sink.Reply("one")
	sink.Reply("two")

	ev := <-ch
	if ev.Text != "one" {
		t.Errorf("expected first event kept, got %+v", ev)
	}
	select {
	case ev := <-ch:
		t.Errorf("expected overflow drop, got %+v", ev)
	default:
	}
}
