package stream

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/dojoterm-dev/dojoterm/internal/voice"
)

const waitTimeout = 3 * time.Second

type handlerEvent struct {
	kind string // "result" | "error" | "end"
	text string
}

// recordingHandler collects recognition callbacks on a channel so tests
// can wait for them without polling.
type recordingHandler struct {
	events chan handlerEvent
}

func newRecordingHandler() *recordingHandler {
	return &recordingHandler{events: make(chan handlerEvent, 16)}
}

func (h *recordingHandler) HandleResult(_ context.Context, transcript string) {
	h.events <- handlerEvent{kind: "result", text: transcript}
}

func (h *recordingHandler) HandleError(detail string) {
	h.events <- handlerEvent{kind: "error", text: detail}
}

func (h *recordingHandler) HandleEnd() {
	h.events <- handlerEvent{kind: "end"}
}

func (h *recordingHandler) wait(t *testing.T) handlerEvent {
	t.Helper()
	select {
	case ev := <-h.events:
		return ev
	case <-time.After(waitTimeout):
		t.Fatalf("timed out waiting for handler event")
		return handlerEvent{}
	}
}

// newServer runs a websocket transcription stub. Each connection reads
// the start request, then hands the connection to script.
func newServer(t *testing.T, script func(conn *websocket.Conn)) *httptest.Server {
	t.Helper()
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		var start startRequest
		if err := conn.ReadJSON(&start); err != nil {
			return
		}
		if start.Type != "start" {
			t.Errorf("unexpected open message type %q", start.Type)
			return
		}
		script(conn)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func wsURL(srv *httptest.Server) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

// holdOpen keeps the turn alive until the client closes the connection.
func holdOpen(conn *websocket.Conn) {
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func TestStartRequiresBoundHandler(t *testing.T) {
	r := New(Config{URL: "ws://127.0.0.1:0"})
	if err := r.Start(); err == nil {
		t.Fatalf("expected unbound handler error")
	}
}

func TestStartRequiresEndpoint(t *testing.T) {
	r := New(Config{})
	r.Bind(newRecordingHandler())
	if err := r.Start(); err == nil {
		t.Fatalf("expected missing endpoint error")
	}
}

func TestSecondStartDuringTurnRejected(t *testing.T) {
	srv := newServer(t, holdOpen)

	r := New(Config{URL: wsURL(srv)})
	r.Bind(newRecordingHandler())
	if err := r.Start(); err != nil {
		t.Fatalf("unexpected start error: %v", err)
	}
	defer r.Stop()

	if err := r.Start(); err == nil {
		t.Fatalf("expected second start to be rejected")
	}
}

func TestTranscriptDelivered(t *testing.T) {
	srv := newServer(t, func(conn *websocket.Conn) {
		_ = conn.WriteJSON(event{Type: "transcript", Transcript: "two sum"})
		holdOpen(conn)
	})

	handler := newRecordingHandler()
	r := New(Config{URL: wsURL(srv)})
	r.Bind(handler)
	if err := r.Start(); err != nil {
		t.Fatalf("unexpected start error: %v", err)
	}
	defer r.Stop()

	ev := handler.wait(t)
	if ev.kind != "result" || ev.text != "two sum" {
		t.Fatalf("unexpected event %+v", ev)
	}
}

func TestFirstTranscriptWins(t *testing.T) {
	srv := newServer(t, func(conn *websocket.Conn) {
		_ = conn.WriteJSON(event{Type: "transcript", Transcript: "first"})
		_ = conn.WriteJSON(event{Type: "transcript", Transcript: "second"})
		_ = conn.WriteJSON(event{Type: "end"})
		holdOpen(conn)
	})

	handler := newRecordingHandler()
	r := New(Config{URL: wsURL(srv)})
	r.Bind(handler)
	if err := r.Start(); err != nil {
		t.Fatalf("unexpected start error: %v", err)
	}
	defer r.Stop()

	// Result delivery runs off the read loop, so result and end may
	// arrive in either order; the second transcript must not.
	results, ends := 0, 0
	for i := 0; i < 2; i++ {
		switch ev := handler.wait(t); ev.kind {
		case "result":
			results++
			if ev.text != "first" {
				t.Fatalf("expected first hypothesis, got %q", ev.text)
			}
		case "end":
			ends++
		default:
			t.Fatalf("unexpected event %+v", ev)
		}
	}
	if results != 1 || ends != 1 {
		t.Fatalf("expected one result and one end, got %d/%d", results, ends)
	}

	select {
	case ev := <-handler.events:
		t.Fatalf("unexpected extra event %+v", ev)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestErrorEventForwarded(t *testing.T) {
	srv := newServer(t, func(conn *websocket.Conn) {
		_ = conn.WriteJSON(event{Type: "error", Error: "no speech detected"})
		holdOpen(conn)
	})

	handler := newRecordingHandler()
	r := New(Config{URL: wsURL(srv)})
	r.Bind(handler)
	if err := r.Start(); err != nil {
		t.Fatalf("unexpected start error: %v", err)
	}
	defer r.Stop()

	ev := handler.wait(t)
	if ev.kind != "error" || ev.text != "no speech detected" {
		t.Fatalf("unexpected event %+v", ev)
	}
}

func TestStopDuringActiveTurn(t *testing.T) {
	srv := newServer(t, holdOpen)

	handler := newRecordingHandler()
	r := New(Config{URL: wsURL(srv)})
	r.Bind(handler)
	if err := r.Start(); err != nil {
		t.Fatalf("unexpected start error: %v", err)
	}

	stopped := make(chan struct{})
	go func() {
		_ = r.Stop()
		close(stopped)
	}()

	select {
	case <-stopped:
	case <-time.After(waitTimeout):
		t.Fatalf("Stop did not return")
	}

	if ev := handler.wait(t); ev.kind != "end" {
		t.Fatalf("expected end event after stop, got %+v", ev)
	}

	// Stopping again is a no-op.
	if err := r.Stop(); err != nil {
		t.Fatalf("unexpected error on redundant stop: %v", err)
	}
}

// idleSink signals each return to the idle phase.
type idleSink struct {
	idle chan struct{}
}

func (s *idleSink) PhaseChanged(p voice.Phase) {
	if p == voice.Idle {
		select {
		case s.idle <- struct{}{}:
		default:
		}
	}
}
func (s *idleSink) Listening()        {}
func (s *idleSink) Transcript(string) {}
func (s *idleSink) Reply(string)      {}
func (s *idleSink) ReplyError()       {}
func (s *idleSink) ErrorLine(string)  {}

type echoAssistant struct{}

func (echoAssistant) Ask(_ context.Context, text string) (string, error) {
	return "heard: " + text, nil
}

// A completed cycle must tear the read loop down so the recognizer can
// start a fresh turn: the session stops the recognizer from inside the
// result callback, which must not wedge against the loop that
// dispatched it.
func TestSessionCycleReleasesReadLoop(t *testing.T) {
	srv := newServer(t, func(conn *websocket.Conn) {
		_ = conn.WriteJSON(event{Type: "transcript", Transcript: "hello"})
		holdOpen(conn)
	})

	r := New(Config{URL: wsURL(srv)})
	sink := &idleSink{idle: make(chan struct{}, 1)}
	session := voice.NewSession(r, echoAssistant{}, nil, sink, voice.Options{})
	r.Bind(session)

	if err := session.StartRecording(); err != nil {
		t.Fatalf("unexpected start error: %v", err)
	}

	select {
	case <-sink.idle:
	case <-time.After(waitTimeout):
		t.Fatalf("voice cycle did not complete")
	}

	// The turn's read loop must exit once the session stops the
	// recognizer at the end of the cycle.
	r.mu.Lock()
	done := r.done
	r.mu.Unlock()
	select {
	case <-done:
	case <-time.After(waitTimeout):
		t.Fatalf("read loop did not exit after the cycle")
	}

	// With the first turn torn down, a fresh one can start.
	if err := session.StartRecording(); err != nil {
		t.Fatalf("could not start a second turn: %v", err)
	}
	session.StopRecording()
}
