package hub

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"nhooyr.io/websocket"

	"github.com/iudanet/votekeeper/pkg/api"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func dial(t *testing.T, ctx context.Context, serverURL string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.Dial(ctx, "ws"+strings.TrimPrefix(serverURL, "http"), nil)
	require.NoError(t, err)
	return conn
}

func waitClients(t *testing.T, h *Hub, n int) {
	t.Helper()
	require.Eventually(t, func() bool { return h.Clients() == n }, 2*time.Second, 5*time.Millisecond)
}

func TestHub_PublishReachesAllClients(t *testing.T) {
	h := New(testLogger())
	server := httptest.NewServer(h)
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	a := dial(t, ctx, server.URL)
	defer a.CloseNow()
	b := dial(t, ctx, server.URL)
	defer b.CloseNow()
	waitClients(t, h, 2)

	h.Publish(api.Event{Type: api.EventCandidateUpdated, Payload: json.RawMessage(`{"id":"c1"}`)})

	for _, conn := range []*websocket.Conn{a, b} {
		_, data, err := conn.Read(ctx)
		require.NoError(t, err)

		var ev api.Event
		require.NoError(t, json.Unmarshal(data, &ev))
		assert.Equal(t, api.EventCandidateUpdated, ev.Type)
		assert.JSONEq(t, `{"id":"c1"}`, string(ev.Payload))
	}
}

func TestHub_DisconnectUnregisters(t *testing.T) {
	h := New(testLogger())
	server := httptest.NewServer(h)
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	conn := dial(t, ctx, server.URL)
	waitClients(t, h, 1)

	require.NoError(t, conn.Close(websocket.StatusNormalClosure, "bye"))
	waitClients(t, h, 0)

	// публикация без клиентов не блокируется
	h.Publish(api.Event{Type: api.EventPartyCreated})
}

func TestHub_SlowClientDropped(t *testing.T) {
	h := New(testLogger(), WithBufferSize(1))
	c, err := h.register()
	require.NoError(t, err)

	h.Publish(api.Event{Type: api.EventPartyCreated})
	assert.Equal(t, 1, h.Clients())

	// очередь клиента заполнена, следующее событие его отключает
	h.Publish(api.Event{Type: api.EventPartyUpdated})
	assert.Equal(t, 0, h.Clients())

	select {
	case <-c.done:
	default:
		t.Fatal("slow client was not stopped")
	}
}

func TestHub_Close(t *testing.T) {
	h := New(testLogger())
	server := httptest.NewServer(h)
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	conn := dial(t, ctx, server.URL)
	defer conn.CloseNow()
	waitClients(t, h, 1)

	require.NoError(t, h.Close())
	require.NoError(t, h.Close())

	_, _, err := conn.Read(ctx)
	require.Error(t, err)
	assert.Equal(t, websocket.StatusGoingAway, websocket.CloseStatus(err))

	_, err = h.register()
	assert.ErrorIs(t, err, ErrClosed)

	_, _, err = websocket.Dial(ctx, "ws"+strings.TrimPrefix(server.URL, "http"), nil)
	assert.Error(t, err)
}
