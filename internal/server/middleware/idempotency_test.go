package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/votekeeper/internal/server/storage"
	"github.com/iudanet/votekeeper/internal/server/storage/sqlite"
	"github.com/iudanet/votekeeper/pkg/api"
)

// countingHandler создает ресурс и возвращает его номер
func countingHandler(calls *atomic.Int32, status int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		n := calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(map[string]any{"n": n, "echo": string(body)})
	}
}

func setupIdempotency(t *testing.T, status int) (http.Handler, *atomic.Int32) {
	t.Helper()
	store, err := sqlite.New(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	calls := &atomic.Int32{}
	return IdempotencyMiddleware(store, setupTestLogger())(countingHandler(calls, status)), calls
}

func send(h http.Handler, method, path, key, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if key != "" {
		req.Header.Set(IdempotencyHeader, key)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestIdempotencyMiddleware_ReplaysStoredResponse(t *testing.T) {
	h, calls := setupIdempotency(t, http.StatusCreated)

	first := send(h, http.MethodPost, "/api/parties", "key-1", `{"name":"RSP"}`)
	require.Equal(t, http.StatusCreated, first.Code)
	assert.Empty(t, first.Header().Get(ReplayedHeader))

	second := send(h, http.MethodPost, "/api/parties", "key-1", `{"name":"RSP"}`)
	assert.Equal(t, http.StatusCreated, second.Code)
	assert.Equal(t, "true", second.Header().Get(ReplayedHeader))
	assert.Equal(t, "application/json", second.Header().Get("Content-Type"))
	assert.JSONEq(t, first.Body.String(), second.Body.String())

	assert.Equal(t, int32(1), calls.Load(), "write applied once")
}

func TestIdempotencyMiddleware_KeyReuseWithDifferentPayload(t *testing.T) {
	h, calls := setupIdempotency(t, http.StatusCreated)

	send(h, http.MethodPost, "/api/parties", "key-1", `{"name":"RSP"}`)

	tests := []struct {
		name   string
		method string
		path   string
		body   string
	}{
		{name: "other body", method: http.MethodPost, path: "/api/parties", body: `{"name":"RPP"}`},
		{name: "other path", method: http.MethodPost, path: "/api/candidates", body: `{"name":"RSP"}`},
		{name: "other method", method: http.MethodPut, path: "/api/parties", body: `{"name":"RSP"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := send(h, tt.method, tt.path, "key-1", tt.body)
			assert.Equal(t, http.StatusConflict, w.Code)

			var resp api.ErrorResponse
			require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
			assert.Equal(t, "idempotency key reuse with different payload", resp.Message)
		})
	}
	assert.Equal(t, int32(1), calls.Load())
}

func TestIdempotencyMiddleware_PassThrough(t *testing.T) {
	h, calls := setupIdempotency(t, http.StatusOK)

	// без ключа каждая запись применяется
	send(h, http.MethodPost, "/api/parties", "", `{}`)
	send(h, http.MethodPost, "/api/parties", "", `{}`)
	// чтение с ключом не кешируется
	send(h, http.MethodGet, "/api/parties", "key-get", "")
	send(h, http.MethodGet, "/api/parties", "key-get", "")

	assert.Equal(t, int32(4), calls.Load())
}

func TestIdempotencyMiddleware_BodyStillReadable(t *testing.T) {
	h, _ := setupIdempotency(t, http.StatusOK)

	w := send(h, http.MethodPut, "/api/candidates/c1", "key-1", `{"votes":10}`)
	var resp map[string]any
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, `{"votes":10}`, resp["echo"])
}

func TestIdempotencyMiddleware_ServerErrorNotStored(t *testing.T) {
	h, calls := setupIdempotency(t, http.StatusInternalServerError)

	send(h, http.MethodDelete, "/api/parties/p1", "key-1", "")
	w := send(h, http.MethodDelete, "/api/parties/p1", "key-1", "")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Empty(t, w.Header().Get(ReplayedHeader))
	assert.Equal(t, int32(2), calls.Load(), "5xx responses may be retried")
}

func TestIdempotencyMiddleware_ClientErrorNotStored(t *testing.T) {
	for _, status := range []int{http.StatusBadRequest, http.StatusNotFound, http.StatusConflict} {
		t.Run(http.StatusText(status), func(t *testing.T) {
			h, calls := setupIdempotency(t, status)

			send(h, http.MethodPut, "/api/candidates/c1", "key-1", `{"votes":1}`)
			w := send(h, http.MethodPut, "/api/candidates/c1", "key-1", `{"votes":1}`)

			assert.Equal(t, status, w.Code)
			assert.Empty(t, w.Header().Get(ReplayedHeader))
			assert.Equal(t, int32(2), calls.Load(), "rejected writes are re-executed")
		})
	}
}

func TestIdempotencyMiddleware_ConcurrentDuplicates(t *testing.T) {
	store, err := sqlite.New(context.Background(), ":memory:")
	require.NoError(t, err)
	defer store.Close()

	calls := &atomic.Int32{}
	slow := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		time.Sleep(20 * time.Millisecond)
		w.WriteHeader(http.StatusCreated)
	})
	h := IdempotencyMiddleware(store, setupTestLogger())(slow)

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			w := send(h, http.MethodPost, "/api/parties", "same-key", `{"name":"NC"}`)
			assert.Equal(t, http.StatusCreated, w.Code)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
}

func TestIdempotencyMiddleware_InvalidKey(t *testing.T) {
	h, calls := setupIdempotency(t, http.StatusOK)

	w := send(h, http.MethodPost, "/api/parties", strings.Repeat("k", 300), `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, int32(0), calls.Load())
}

func TestIdempotencyMiddleware_StorageErrors(t *testing.T) {
	calls := &atomic.Int32{}

	t.Run("load failure", func(t *testing.T) {
		store := &storage.IdempotencyStorageMock{
			GetIdempotencyRecordFunc: func(ctx context.Context, key string) (*storage.IdempotencyRecord, error) {
				return nil, errors.New("database is locked")
			},
		}
		h := IdempotencyMiddleware(store, setupTestLogger())(countingHandler(calls, http.StatusCreated))

		w := send(h, http.MethodPost, "/api/parties", "k", `{}`)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, int32(0), calls.Load())
	})

	t.Run("save failure still answers", func(t *testing.T) {
		store := &storage.IdempotencyStorageMock{
			GetIdempotencyRecordFunc: func(ctx context.Context, key string) (*storage.IdempotencyRecord, error) {
				return nil, storage.ErrIdempotencyRecordNotFound
			},
			SaveIdempotencyRecordFunc: func(ctx context.Context, rec *storage.IdempotencyRecord) error {
				return errors.New("disk full")
			},
		}
		h := IdempotencyMiddleware(store, setupTestLogger())(countingHandler(calls, http.StatusCreated))

		w := send(h, http.MethodPost, "/api/parties", "k", `{}`)
		assert.Equal(t, http.StatusCreated, w.Code)
		require.Len(t, store.SaveIdempotencyRecordCalls(), 1)

		rec := store.SaveIdempotencyRecordCalls()[0].Rec
		assert.Equal(t, "k", rec.Key)
		assert.Equal(t, http.MethodPost, rec.Method)
		assert.Equal(t, "/api/parties", rec.Path)
		assert.Equal(t, http.StatusCreated, rec.StatusCode)
		assert.Len(t, rec.BodyHash, 64)
	})
}
