// Package stream implements a speech recognizer backed by a websocket
// transcription service. The service owns microphone capture and pushes
// transcript events; this adapter forwards them to the voice session.
package stream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/dojoterm-dev/dojoterm/internal/voice"
)

// Handler receives recognition callbacks. *voice.Session satisfies it.
type Handler interface {
	HandleResult(ctx context.Context, transcript string)
	HandleError(detail string)
	HandleEnd()
}

// Config controls the websocket transcription connection.
type Config struct {
	URL      string // ws:// or wss:// endpoint
	APIKey   string
	Language string // recognition locale, e.g. en-US
}

// event is one message from the transcription service.
type event struct {
	Type       string `json:"type"` // "transcript" | "error" | "end"
	Transcript string `json:"transcript,omitempty"`
	Error      string `json:"error,omitempty"`
}

// startRequest opens a recognition turn.
type startRequest struct {
	Type     string `json:"type"` // "start"
	Language string `json:"language"`
}

// Recognizer implements voice.Recognizer over a websocket session.
// One recognition turn is active at a time; results go to the bound
// Handler. The first transcript event of a turn wins; later hypotheses
// are discarded.
type Recognizer struct {
	cfg     Config
	handler Handler

	mu   sync.Mutex
	conn *websocket.Conn
	done chan struct{}
}

var _ voice.Recognizer = (*Recognizer)(nil)

// New creates a Recognizer. Bind must be called before Start.
func New(cfg Config) *Recognizer {
	if cfg.Language == "" {
		cfg.Language = "en-US"
	}
	return &Recognizer{cfg: cfg}
}

// Bind attaches the callback handler. Called once during wiring, after
// the session owning this recognizer has been constructed.
func (r *Recognizer) Bind(handler Handler) {
	r.handler = handler
}

// Start connects to the transcription service and begins a turn.
// A second Start while a turn is active is rejected, mirroring the
// single-session constraint of browser recognition engines.
func (r *Recognizer) Start() error {
	if r.handler == nil {
		return errors.New("recognizer not bound to a handler")
	}
	if strings.TrimSpace(r.cfg.URL) == "" {
		return errors.New("no transcription endpoint configured")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.conn != nil {
		return errors.New("recognition already started")
	}

	headers := http.Header{}
	if r.cfg.APIKey != "" {
		headers.Set("Authorization", "Token "+r.cfg.APIKey)
	}

	conn, _, err := websocket.DefaultDialer.Dial(r.cfg.URL, headers)
	if err != nil {
		return fmt.Errorf("connect transcription service: %w", err)
	}

	if err := conn.WriteJSON(startRequest{Type: "start", Language: r.cfg.Language}); err != nil {
		_ = conn.Close()
		return fmt.Errorf("start recognition turn: %w", err)
	}

	r.conn = conn
	r.done = make(chan struct{})
	go r.readLoop(conn, r.done)
	return nil
}

// Stop closes the active turn. Stopping an inactive recognizer is a no-op.
func (r *Recognizer) Stop() error {
	r.mu.Lock()
	conn := r.conn
	done := r.done
	r.conn = nil
	r.mu.Unlock()

	if conn == nil {
		return nil
	}

	err := conn.Close()
	if done != nil {
		<-done
	}
	return err
}

// readLoop consumes events until the connection closes. Only the first
// transcript of the turn is delivered.
func (r *Recognizer) readLoop(conn *websocket.Conn, done chan struct{}) {
	defer close(done)
	defer r.clear(conn)

	delivered := false
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			r.handler.HandleEnd()
			return
		}

		var ev event
		if err := json.Unmarshal(data, &ev); err != nil {
			continue
		}

		switch ev.Type {
		case "transcript":
			if delivered {
				continue
			}
			delivered = true
			// Deliver off the read loop: the session ends its cycle by
			// stopping the recognizer, and Stop waits for this loop to
			// exit before returning.
			go r.handler.HandleResult(context.Background(), ev.Transcript)
		case "error":
			r.handler.HandleError(ev.Error)
			return
		case "end":
			r.handler.HandleEnd()
			return
		}
	}
}

// clear drops the connection reference if it is still the active one.
func (r *Recognizer) clear(conn *websocket.Conn) {
	_ = conn.Close()
	r.mu.Lock()
	if r.conn == conn {
		r.conn = nil
	}
	r.mu.Unlock()
}
