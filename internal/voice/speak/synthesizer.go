// Package speak implements speech synthesis by shelling out to an
// espeak-ng compatible command.
package speak

import (
	"bufio"
	"bytes"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"sync"

	"github.com/dojoterm-dev/dojoterm/internal/voice"
)

// espeak-ng defaults: 175 words/min, amplitude 100, pitch 50.
const (
	baseRate      = 175
	baseAmplitude = 100
	basePitch     = 50
)

// Synthesizer runs one synthesis process at a time. Cancel kills the
// current process, so a new Speak silences the previous utterance.
type Synthesizer struct {
	command string

	mu      sync.Mutex
	current *exec.Cmd

	voicesOnce sync.Once
	voices     []voice.Voice
}

var _ voice.Synthesizer = (*Synthesizer)(nil)

// New creates a Synthesizer for the given command (default espeak-ng).
func New(command string) *Synthesizer {
	if command == "" {
		command = "espeak-ng"
	}
	return &Synthesizer{command: command}
}

// Voices lists the engine's available voices. The list is loaded once;
// an engine that cannot be queried yields an empty list, which makes
// the session fall back to the engine default voice.
func (s *Synthesizer) Voices() []voice.Voice {
	s.voicesOnce.Do(func() {
		out, err := exec.Command(s.command, "--voices").Output()
		if err != nil {
			return
		}
		s.voices = parseVoices(out)
	})
	return s.voices
}

// Speak starts speaking the utterance asynchronously.
func (s *Synthesizer) Speak(u voice.Utterance) error {
	args := []string{
		"-s", strconv.Itoa(scaled(baseRate, u.Rate)),
		"-a", strconv.Itoa(scaled(baseAmplitude, u.Volume)),
		"-p", strconv.Itoa(scaled(basePitch, u.Pitch)),
	}
	if u.Voice.Name != "" {
		args = append(args, "-v", u.Voice.Name)
	}
	args = append(args, "--", u.Text)

	cmd := exec.Command(s.command, args...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start synthesis: %w", err)
	}

	s.mu.Lock()
	s.current = cmd
	s.mu.Unlock()

	go func() {
		_ = cmd.Wait()
		s.mu.Lock()
		if s.current == cmd {
			s.current = nil
		}
		s.mu.Unlock()
	}()

	return nil
}

// Cancel kills the currently speaking process, if any.
func (s *Synthesizer) Cancel() {
	s.mu.Lock()
	cmd := s.current
	s.current = nil
	s.mu.Unlock()

	if cmd != nil && cmd.Process != nil {
		_ = cmd.Process.Kill()
	}
}

// scaled applies a 0..1-ish multiplier to an engine base value.
func scaled(base int, factor float64) int {
	if factor <= 0 {
		return base
	}
	return int(float64(base) * factor)
}

// parseVoices reads `espeak-ng --voices` output:
//
//	Pty Language       Age/Gender VoiceName          File          Other Languages
//	 5  en-US          M          english-us         en-us
func parseVoices(out []byte) []voice.Voice {
	var voices []voice.Voice
	scanner := bufio.NewScanner(bytes.NewReader(out))
	first := true
	for scanner.Scan() {
		line := scanner.Text()
		if first {
			first = false // header row
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 4 {
			continue
		}
		voices = append(voices, voice.Voice{
			Name: fields[3],
			Lang: fields[1],
		})
	}
	return voices
}
