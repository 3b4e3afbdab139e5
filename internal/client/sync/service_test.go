package sync

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/votekeeper/internal/client/api"
	"github.com/iudanet/votekeeper/internal/client/storage"
	"github.com/iudanet/votekeeper/internal/client/storage/boltdb"
	"github.com/iudanet/votekeeper/internal/clock"
	"github.com/iudanet/votekeeper/internal/models"
)

var now = time.Date(2026, 3, 5, 18, 30, 0, 0, time.UTC)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func createTestStorage(t *testing.T) *boltdb.Storage {
	t.Helper()
	store, err := boltdb.New(context.Background(), filepath.Join(t.TempDir(), "sync.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func enqueue(t *testing.T, store *boltdb.Storage, method models.MutationMethod, target, payload string) uint64 {
	t.Helper()
	m := &models.QueuedMutation{
		Timestamp:      now,
		Method:         method,
		Target:         target,
		IdempotencyKey: "key-" + target,
	}
	if payload != "" {
		m.Payload = json.RawMessage(payload)
	}
	id, err := store.AppendMutation(context.Background(), m)
	require.NoError(t, err)
	return id
}

func pendingTargets(t *testing.T, store *boltdb.Storage) []string {
	t.Helper()
	list, err := store.ListMutations(context.Background())
	require.NoError(t, err)
	targets := make([]string, 0, len(list))
	for _, m := range list {
		targets = append(targets, m.Target)
	}
	return targets
}

func TestSync_EmptyQueue(t *testing.T) {
	client := &api.DoerMock{}
	metadata := &storage.MetadataStorageMock{}
	store := createTestStorage(t)

	service := NewService(client, store, metadata, testLogger())
	result, err := service.Sync(context.Background())
	require.NoError(t, err)
	assert.Equal(t, &SyncResult{}, result)

	assert.Empty(t, client.DoCalls())
	assert.Empty(t, metadata.SaveSyncStatusCalls(), "empty queue returns before touching metadata")
}

func TestSync_FIFOReplayEmptiesQueue(t *testing.T) {
	ctx := context.Background()
	store := createTestStorage(t)
	enqueue(t, store, models.MethodCreate, "/candidates", `{"name":"A"}`)
	enqueue(t, store, models.MethodUpdate, "/candidates/c1", `{"votes":10}`)
	enqueue(t, store, models.MethodDelete, "/parties/p9", "")

	client := &api.DoerMock{
		DoFunc: func(ctx context.Context, req api.Request) (json.RawMessage, error) {
			return json.RawMessage(`{}`), nil
		},
	}
	service := NewService(client, store, store, testLogger(), WithClock(clock.NewFake(now)))

	result, err := service.Sync(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, result.Attempted)
	assert.Equal(t, 3, result.Applied)
	assert.Zero(t, result.Failed)
	assert.NoError(t, result.Err)

	calls := client.DoCalls()
	require.Len(t, calls, 3)
	assert.Equal(t, http.MethodPost, calls[0].Req.Method)
	assert.Equal(t, "/candidates", calls[0].Req.Path)
	assert.Equal(t, json.RawMessage(`{"name":"A"}`), calls[0].Req.Body)
	assert.Equal(t, "key-/candidates", calls[0].Req.IdempotencyKey)
	assert.Equal(t, http.MethodPut, calls[1].Req.Method)
	assert.Equal(t, http.MethodDelete, calls[2].Req.Method)
	assert.Nil(t, calls[2].Req.Body)

	assert.Empty(t, pendingTargets(t, store))

	status, err := store.GetSyncStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.SyncStatusIdle, status)
	ts, err := store.GetLastSyncTimestamp(ctx)
	require.NoError(t, err)
	assert.Equal(t, now.Unix(), ts)
}

func TestSync_PartialFailureKeepsOnlyFailedEntry(t *testing.T) {
	ctx := context.Background()
	store := createTestStorage(t)
	enqueue(t, store, models.MethodCreate, "/candidates", `{"name":"A"}`)
	failedID := enqueue(t, store, models.MethodUpdate, "/candidates/c2", `{"votes":5}`)
	enqueue(t, store, models.MethodDelete, "/candidates/c3", "")

	serverDown := true
	client := &api.DoerMock{
		DoFunc: func(ctx context.Context, req api.Request) (json.RawMessage, error) {
			if req.Path == "/candidates/c2" && serverDown {
				return nil, &api.HTTPError{StatusCode: http.StatusServiceUnavailable, Message: "try later"}
			}
			return nil, nil
		},
	}
	service := NewService(client, store, store, testLogger())

	result, err := service.Sync(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Applied)
	assert.Equal(t, 1, result.Failed)
	require.Error(t, result.Err)
	assert.Contains(t, result.Err.Error(), "server error (503): try later")

	list, err := store.ListMutations(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, failedID, list[0].ID)
	assert.Equal(t, 1, list[0].Attempts)
	assert.Equal(t, "server error (503): try later", list[0].LastError)

	status, err := store.GetSyncStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.SyncStatusFailed, status)

	// Второй проход повторяет только оставшуюся мутацию
	serverDown = false
	result, err = service.Sync(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Attempted)
	assert.Equal(t, 1, result.Applied)

	calls := client.DoCalls()
	require.Len(t, calls, 4)
	assert.Equal(t, "/candidates/c2", calls[3].Req.Path)
	assert.Empty(t, pendingTargets(t, store))
}

func TestSync_DeadLetterAfterMaxAttempts(t *testing.T) {
	ctx := context.Background()
	store := createTestStorage(t)
	enqueue(t, store, models.MethodUpdate, "/candidates/c1", `{"votes":1}`)

	client := &api.DoerMock{
		DoFunc: func(ctx context.Context, req api.Request) (json.RawMessage, error) {
			return nil, &api.HTTPError{StatusCode: http.StatusInternalServerError, Message: "boom"}
		},
	}
	service := NewService(client, store, store, testLogger(), WithMaxAttempts(3))

	for pass := 1; pass <= 2; pass++ {
		result, err := service.Sync(ctx)
		require.NoError(t, err)
		assert.Zero(t, result.DeadLettered, "pass %d", pass)
	}

	result, err := service.Sync(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, result.DeadLettered)
	assert.Empty(t, pendingTargets(t, store))

	dead, err := store.ListDeadLetters(ctx)
	require.NoError(t, err)
	require.Len(t, dead, 1)
	assert.Equal(t, 3, dead[0].Attempts)

	count, err := service.GetPendingSyncCount(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestSync_PermanentErrorGoesStraightToDeadLetter(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		wantDead   bool
	}{
		{name: "bad request", statusCode: http.StatusBadRequest, wantDead: true},
		{name: "not found", statusCode: http.StatusNotFound, wantDead: true},
		{name: "request timeout", statusCode: http.StatusRequestTimeout, wantDead: false},
		{name: "too many requests", statusCode: http.StatusTooManyRequests, wantDead: false},
		{name: "bad gateway", statusCode: http.StatusBadGateway, wantDead: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			store := createTestStorage(t)
			enqueue(t, store, models.MethodDelete, "/candidates/gone", "")

			client := &api.DoerMock{
				DoFunc: func(ctx context.Context, req api.Request) (json.RawMessage, error) {
					return nil, &api.HTTPError{StatusCode: tt.statusCode}
				},
			}
			service := NewService(client, store, store, testLogger(), WithMaxAttempts(0))

			result, err := service.Sync(ctx)
			require.NoError(t, err)
			assert.Equal(t, tt.wantDead, result.DeadLettered == 1)

			count, err := service.GetPendingSyncCount(ctx)
			require.NoError(t, err)
			if tt.wantDead {
				assert.Zero(t, count)
			} else {
				assert.Equal(t, 1, count)
			}
		})
	}
}

func TestSync_TransportErrorsRetryForever(t *testing.T) {
	ctx := context.Background()
	store := createTestStorage(t)
	enqueue(t, store, models.MethodCreate, "/parties", `{"name":"X"}`)

	client := &api.DoerMock{
		DoFunc: func(ctx context.Context, req api.Request) (json.RawMessage, error) {
			return nil, errors.Join(api.ErrNetwork, errors.New("connection refused"))
		},
	}
	service := NewService(client, store, store, testLogger(), WithMaxAttempts(0))

	for i := 0; i < 15; i++ {
		_, err := service.Sync(ctx)
		require.NoError(t, err)
	}

	list, err := store.ListMutations(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 15, list[0].Attempts)
}

func TestSync_ListError(t *testing.T) {
	boom := errors.New("boom")
	queue := &storage.QueueStorageMock{
		ListMutationsFunc: func(ctx context.Context) ([]*models.QueuedMutation, error) {
			return nil, boom
		},
	}
	service := NewService(&api.DoerMock{}, queue, &storage.MetadataStorageMock{}, testLogger())

	_, err := service.Sync(context.Background())
	assert.ErrorIs(t, err, boom)
	_, err = service.GetPendingSyncCount(context.Background())
	assert.ErrorIs(t, err, boom)
}

func TestSync_CancelledContextKeepsProgress(t *testing.T) {
	store := createTestStorage(t)
	enqueue(t, store, models.MethodCreate, "/a", `{}`)
	enqueue(t, store, models.MethodCreate, "/b", `{}`)
	enqueue(t, store, models.MethodCreate, "/c", `{}`)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	client := &api.DoerMock{
		DoFunc: func(ctx context.Context, req api.Request) (json.RawMessage, error) {
			if req.Path == "/a" {
				cancel()
			}
			return nil, nil
		},
	}
	service := NewService(client, store, store, testLogger())

	result, err := service.Sync(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	require.NotNil(t, result)
	assert.Equal(t, 1, result.Applied)
	assert.Equal(t, []string{"/b", "/c"}, pendingTargets(t, store))
}
