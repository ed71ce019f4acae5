package speak

import (
	"testing"
)

func TestParseVoices(t *testing.T) {
	out := []byte(`Pty Language       Age/Gender VoiceName          File                 Other Languages
 5  en-US          M          english-us         en-us
 5  de             M          german             de
 5  ja             -          japanese           ja
`)

	voices := parseVoices(out)
	if len(voices) != 3 {
		t.Fatalf("expected 3 voices, got %d: %+v", len(voices), voices)
	}
	if voices[0].Name != "english-us" || voices[0].Lang != "en-US" {
		t.Errorf("first voice: got %+v", voices[0])
	}
	if voices[1].Lang != "de" {
		t.Errorf("second voice lang: got %q", voices[1].Lang)
	}
}

func TestParseVoicesEmptyOutput(t *testing.T) {
	if voices := parseVoices(nil); len(voices) != 0 {
		t.Errorf("expected no voices, got %+v", voices)
	}
}

func TestScaled(t *testing.T) {
	if got := scaled(175, 0.9); got != 157 {
		t.Errorf("scaled rate: got %d, want 157", got)
	}
	if got := scaled(100, 1.0); got != 100 {
		t.Errorf("scaled amplitude: got %d, want 100", got)
	}
	// A zero factor falls back to the engine base value.
	if got := scaled(50, 0); got != 50 {
		t.Errorf("scaled pitch with zero factor: got %d, want 50", got)
	}
}
