package server

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"nhooyr.io/websocket"

	apiclient "github.com/iudanet/votekeeper/internal/client/api"
	"github.com/iudanet/votekeeper/internal/client/queue"
	"github.com/iudanet/votekeeper/internal/client/storage/boltdb"
	"github.com/iudanet/votekeeper/internal/client/sync"
	"github.com/iudanet/votekeeper/internal/clock"
	"github.com/iudanet/votekeeper/internal/models"
	"github.com/iudanet/votekeeper/internal/server/handlers"
	"github.com/iudanet/votekeeper/internal/server/middleware"
	"github.com/iudanet/votekeeper/pkg/api"
)

var testSecret = []byte("integration-secret")

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func setupServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()
	s, err := New(context.Background(), Config{
		DBPath:  ":memory:",
		Version: "test",
		JWT:     handlers.JWTConfig{Secret: testSecret},
	}, testLogger())
	require.NoError(t, err)

	ts := httptest.NewServer(s.Handler())
	t.Cleanup(func() {
		ts.Close()
		_ = s.Close()
	})
	return s, ts
}

func adminToken(t *testing.T) string {
	t.Helper()
	token, err := handlers.GenerateAdminToken(handlers.JWTConfig{Secret: testSecret}, "test")
	require.NoError(t, err)
	return token
}

func TestNew_RequiresSecretAndDB(t *testing.T) {
	_, err := New(context.Background(), Config{DBPath: ":memory:"}, testLogger())
	assert.ErrorContains(t, err, "jwt secret")

	_, err = New(context.Background(), Config{JWT: handlers.JWTConfig{Secret: testSecret}}, testLogger())
	assert.ErrorContains(t, err, "database path")
}

func TestServer_Routes(t *testing.T) {
	_, ts := setupServer(t)
	token := adminToken(t)

	do := func(method, path, auth, body string) *http.Response {
		req, err := http.NewRequest(method, ts.URL+path, strings.NewReader(body))
		require.NoError(t, err)
		if auth != "" {
			req.Header.Set("Authorization", "Bearer "+auth)
		}
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		t.Cleanup(func() { _ = resp.Body.Close() })
		return resp
	}

	tests := []struct {
		name   string
		method string
		path   string
		auth   string
		body   string
		want   int
	}{
		{name: "health", method: http.MethodGet, path: "/api/health", want: http.StatusOK},
		{name: "public read", method: http.MethodGet, path: "/api/districts", want: http.StatusOK},
		{name: "results", method: http.MethodGet, path: "/api/results/live", want: http.StatusOK},
		{name: "write without token", method: http.MethodPost, path: "/api/parties", body: `{"name":"NC"}`, want: http.StatusUnauthorized},
		{name: "write with token", method: http.MethodPost, path: "/api/parties", auth: token, body: `{"name":"NC"}`, want: http.StatusCreated},
		{name: "unknown route", method: http.MethodGet, path: "/api/nope", want: http.StatusNotFound},
		{name: "wrong method", method: http.MethodPatch, path: "/api/districts", want: http.StatusMethodNotAllowed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := do(tt.method, tt.path, tt.auth, tt.body)
			assert.Equal(t, tt.want, resp.StatusCode)
			assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
		})
	}
}

func TestServer_IdempotentReplayOverHTTP(t *testing.T) {
	_, ts := setupServer(t)
	client := apiclient.NewClient(ts.URL+"/api", apiclient.WithToken(adminToken(t)))
	ctx := context.Background()

	req := apiclient.Request{
		Method:         http.MethodPost,
		Path:           "/parties",
		Body:           api.PartyRequest{Name: "Rastriya Swatantra Party", ShortName: "RSP"},
		IdempotencyKey: "d6f1c0f4-1111-4b6e-9a55-000000000001",
	}
	first, err := client.Do(ctx, req)
	require.NoError(t, err)
	second, err := client.Do(ctx, req)
	require.NoError(t, err, "replay must not fail with a duplicate name")
	assert.JSONEq(t, string(first), string(second))

	raw, err := client.Do(ctx, apiclient.Request{Method: http.MethodGet, Path: "/parties"})
	require.NoError(t, err)
	var parties []api.Party
	require.NoError(t, json.Unmarshal(raw, &parties))
	assert.Len(t, parties, 1)

	req.Body = api.PartyRequest{Name: "Other"}
	_, err = client.Do(ctx, req)
	var httpErr *apiclient.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusConflict, httpErr.StatusCode)
}

func TestServer_OfflineQueueReplay(t *testing.T) {
	_, ts := setupServer(t)
	ctx := context.Background()

	store, err := boltdb.New(ctx, filepath.Join(t.TempDir(), "client.db"))
	require.NoError(t, err)
	defer store.Close()

	q := queue.NewService(store, clock.System{}, testLogger())
	client := apiclient.NewClient(ts.URL+"/api", apiclient.WithToken(adminToken(t)))
	syncer := sync.NewService(client, store, store, testLogger())

	party, err := json.Marshal(api.PartyRequest{Name: "CPN (Maoist Centre)", ShortName: "MC"})
	require.NoError(t, err)
	_, err = q.Enqueue(ctx, models.MethodCreate, "/parties", party)
	require.NoError(t, err)

	candidateID := "7a2b4c1d-0000-4e00-8000-00000000abcd"
	candidate, err := json.Marshal(api.CandidateRequest{
		ID: candidateID, Name: "Pushpa Kamal Dahal", DistrictID: "chitwan", Constituency: 3, Votes: 100,
	})
	require.NoError(t, err)
	_, err = q.Enqueue(ctx, models.MethodCreate, "/candidates", candidate)
	require.NoError(t, err)

	update, err := json.Marshal(api.CandidateRequest{
		Name: "Pushpa Kamal Dahal", DistrictID: "chitwan", Constituency: 3, Votes: 4500,
	})
	require.NoError(t, err)
	_, err = q.Enqueue(ctx, models.MethodUpdate, "/candidates/"+candidateID, update)
	require.NoError(t, err)

	// ошибка валидации на сервере постоянна, запись уходит в dead letter
	bad, err := json.Marshal(api.CandidateRequest{Name: "Nobody", DistrictID: "atlantis", Constituency: 1})
	require.NoError(t, err)
	_, err = q.Enqueue(ctx, models.MethodCreate, "/candidates", bad)
	require.NoError(t, err)

	result, err := syncer.Sync(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, result.Attempted)
	assert.Equal(t, 3, result.Applied)
	assert.Equal(t, 1, result.DeadLettered)

	size, err := q.Size(ctx)
	require.NoError(t, err)
	assert.Zero(t, size)

	raw, err := client.Do(ctx, apiclient.Request{Method: http.MethodGet, Path: "/candidates/" + candidateID})
	require.NoError(t, err)
	var got api.Candidate
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, int64(4500), got.Votes, "mutations applied in queue order")
}

func TestServer_RequeuedDeadLetterAppliesAfterFix(t *testing.T) {
	_, ts := setupServer(t)
	ctx := context.Background()

	store, err := boltdb.New(ctx, filepath.Join(t.TempDir(), "client.db"))
	require.NoError(t, err)
	defer store.Close()

	q := queue.NewService(store, clock.System{}, testLogger())
	client := apiclient.NewClient(ts.URL+"/api", apiclient.WithToken(adminToken(t)))
	syncer := sync.NewService(client, store, store, testLogger())

	// изменение кандидата, которого на сервере еще нет
	candidateID := "5c0ffee0-0000-4e00-8000-0000000000aa"
	update, err := json.Marshal(api.CandidateRequest{
		ID: candidateID, Name: "Balen Shah", DistrictID: "kathmandu", Constituency: 1, Votes: 9100,
	})
	require.NoError(t, err)
	_, err = q.Enqueue(ctx, models.MethodUpdate, "/candidates/"+candidateID, update)
	require.NoError(t, err)

	result, err := syncer.Sync(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, result.DeadLettered)

	_, err = client.Do(ctx, apiclient.Request{
		Method: http.MethodPost,
		Path:   "/candidates",
		Body:   api.CandidateRequest{ID: candidateID, Name: "Balen Shah", DistrictID: "kathmandu", Constituency: 1},
	})
	require.NoError(t, err)

	moved, err := q.Requeue(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, moved)

	result, err = syncer.Sync(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Applied)
	assert.Zero(t, result.DeadLettered)

	dead, err := q.Dead(ctx)
	require.NoError(t, err)
	assert.Empty(t, dead)

	raw, err := client.Do(ctx, apiclient.Request{Method: http.MethodGet, Path: "/candidates/" + candidateID})
	require.NoError(t, err)
	var got api.Candidate
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, int64(9100), got.Votes)
}

func TestServer_PushesEvents(t *testing.T) {
	s, ts := setupServer(t)
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	conn, _, err := websocket.Dial(ctx, "ws"+strings.TrimPrefix(ts.URL, "http")+"/api/ws", nil)
	require.NoError(t, err)
	defer conn.CloseNow()
	require.Eventually(t, func() bool { return s.Hub().Clients() == 1 }, 2*time.Second, 5*time.Millisecond)

	client := apiclient.NewClient(ts.URL+"/api", apiclient.WithToken(adminToken(t)))
	_, err = client.Do(ctx, apiclient.Request{
		Method: http.MethodPost,
		Path:   "/parties",
		Body:   api.PartyRequest{Name: "Janamat Party"},
	})
	require.NoError(t, err)

	_, data, err := conn.Read(ctx)
	require.NoError(t, err)
	var ev api.Event
	require.NoError(t, json.Unmarshal(data, &ev))
	assert.Equal(t, api.EventPartyCreated, ev.Type)
}

func TestServer_ServeStopsOnCancel(t *testing.T) {
	s, err := New(context.Background(), Config{
		DBPath: ":memory:",
		JWT:    handlers.JWTConfig{Secret: testSecret},
	}, testLogger())
	require.NoError(t, err)
	defer s.Close()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, ln) }()

	url := "http://" + ln.Addr().String() + "/api/health"
	require.Eventually(t, func() bool {
		resp, err := http.Get(url)
		if err != nil {
			return false
		}
		_ = resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not stop after cancel")
	}
}

func TestServer_RateLimitHeaders(t *testing.T) {
	s, err := New(context.Background(), Config{
		DBPath:    ":memory:",
		JWT:       handlers.JWTConfig{Secret: testSecret},
		RateLimit: 0.001,
		RateBurst: 1,
	}, testLogger())
	require.NoError(t, err)
	defer s.Close()

	h := s.Handler()
	send := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/api/districts", nil)
		req.RemoteAddr = "203.0.113.7:1234"
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, http.StatusOK, send().Code)
	w := send()
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))

	// X-Real-IP учитывается через chi RealIP
	req := httptest.NewRequest(http.MethodGet, "/api/districts", nil)
	req.RemoteAddr = "203.0.113.7:1234"
	req.Header.Set("X-Real-IP", "198.51.100.1")
	w = httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get(middleware.ReplayedHeader))
}
