package realtime

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"nhooyr.io/websocket"

	"github.com/iudanet/votekeeper/pkg/api"
)

type recordingCache struct {
	prefixes []string
	mu       sync.Mutex
}

func (c *recordingCache) Invalidate(ctx context.Context, prefix string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.prefixes = append(c.prefixes, prefix)
	return 1
}

func (c *recordingCache) snapshot() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.prefixes...)
}

type recordingHint struct {
	states []bool
	mu     sync.Mutex
}

func (h *recordingHint) SetOnline(online bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.states = append(h.states, online)
}

func (h *recordingHint) last() (bool, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.states) == 0 {
		return false, false
	}
	return h.states[len(h.states)-1], true
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestWSURL(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "http://localhost:8080/api", want: "ws://localhost:8080/api/ws"},
		{in: "https://results.example.org/api/", want: "wss://results.example.org/api/ws"},
		{in: "ftp://x", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := WSURL(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPrefixes(t *testing.T) {
	assert.Equal(t, []string{"/candidates", "/results"}, Prefixes(api.EventCandidateUpdated))
	assert.Equal(t, []string{"/parties"}, Prefixes(api.EventPartyDeleted))
	assert.Equal(t, []string{"/results", "/candidates"}, Prefixes(api.EventResultUpdated))
	assert.Nil(t, Prefixes("presence_changed"))
}

func TestListener_Handle(t *testing.T) {
	cache := &recordingCache{}
	var got []api.EventType
	l := NewListener("ws://unused", cache, testLogger(), WithOnEvent(func(ev api.Event) {
		got = append(got, ev.Type)
	}))

	l.Handle(context.Background(), api.Event{Type: api.EventPartyCreated})
	l.Handle(context.Background(), api.Event{Type: "unknown"})

	assert.Equal(t, []string{"/parties"}, cache.snapshot())
	assert.Equal(t, []api.EventType{api.EventPartyCreated}, got)
}

func TestListener_RunReceivesEventsAndReconnects(t *testing.T) {
	var connections atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := websocket.Accept(w, r, nil)
		if err != nil {
			return
		}
		n := connections.Add(1)

		ev := api.Event{Type: api.EventCandidateCreated, Payload: json.RawMessage(`{"id":"c1"}`)}
		if n > 1 {
			ev = api.Event{Type: api.EventPartyUpdated}
		}
		data, _ := json.Marshal(ev)
		_ = conn.Write(r.Context(), websocket.MessageText, []byte("not json"))
		_ = conn.Write(r.Context(), websocket.MessageText, data)

		if n == 1 {
			// первое соединение обрывается сервером
			_ = conn.Close(websocket.StatusGoingAway, "restart")
			return
		}
		readCtx := conn.CloseRead(context.Background())
		<-readCtx.Done()
	}))
	defer server.Close()

	wsURL, err := WSURL(server.URL)
	require.NoError(t, err)

	cache := &recordingCache{}
	hint := &recordingHint{}
	events := make(chan api.Event, 4)
	l := NewListener(wsURL, cache, testLogger(),
		WithHinter(hint),
		WithBackoff(10*time.Millisecond, 50*time.Millisecond),
		WithOnEvent(func(ev api.Event) { events <- ev }))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- l.Run(ctx) }()

	for _, want := range []api.EventType{api.EventCandidateCreated, api.EventPartyUpdated} {
		select {
		case ev := <-events:
			assert.Equal(t, want, ev.Type)
		case <-time.After(3 * time.Second):
			t.Fatalf("timed out waiting for %s", want)
		}
	}

	assert.Equal(t, []string{"/candidates", "/results", "/parties"}, cache.snapshot())
	assert.GreaterOrEqual(t, connections.Load(), int32(2))
	online, ok := hint.last()
	assert.True(t, ok)
	assert.True(t, online)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("Run did not stop after cancel")
	}
}

func TestListener_UnreachableServerHintsOffline(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	wsURL, err := WSURL(server.URL)
	require.NoError(t, err)
	server.Close()

	hint := &recordingHint{}
	l := NewListener(wsURL, &recordingCache{}, testLogger(),
		WithHinter(hint),
		WithBackoff(5*time.Millisecond, 10*time.Millisecond))

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	assert.NoError(t, l.Run(ctx))

	online, ok := hint.last()
	require.True(t, ok)
	assert.False(t, online)
}
