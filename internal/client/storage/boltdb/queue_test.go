package boltdb

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/votekeeper/internal/client/storage"
	"github.com/iudanet/votekeeper/internal/models"
)

func appendN(t *testing.T, store *Storage, targets ...string) []uint64 {
	t.Helper()
	ids := make([]uint64, 0, len(targets))
	for _, target := range targets {
		id, err := store.AppendMutation(context.Background(), &models.QueuedMutation{
			Timestamp: time.Now(),
			Method:    models.MethodUpdate,
			Target:    target,
			Payload:   []byte(`{"votes":1}`),
		})
		require.NoError(t, err)
		ids = append(ids, id)
	}
	return ids
}

func targetsOf(list []*models.QueuedMutation) []string {
	out := make([]string, 0, len(list))
	for _, m := range list {
		out = append(out, m.Target)
	}
	return out
}

func TestStorage_AppendAndList(t *testing.T) {
	ctx := context.Background()
	store := createTestStorage(t)

	list, err := store.ListMutations(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	ids := appendN(t, store, "/candidates/a", "/candidates/b", "/candidates/c")
	assert.Equal(t, []uint64{1, 2, 3}, ids)

	list, err = store.ListMutations(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"/candidates/a", "/candidates/b", "/candidates/c"}, targetsOf(list))
	assert.Equal(t, uint64(2), list[1].ID)
	assert.Equal(t, models.MethodUpdate, list[1].Method)
	assert.JSONEq(t, `{"votes":1}`, string(list[1].Payload))
}

func TestStorage_IDsAreNeverReused(t *testing.T) {
	ctx := context.Background()
	store := createTestStorage(t)

	ids := appendN(t, store, "/a", "/b")
	require.NoError(t, store.RemoveMutations(ctx, ids))

	next := appendN(t, store, "/c")
	assert.Equal(t, []uint64{3}, next)
}

func TestStorage_RemoveMutations(t *testing.T) {
	ctx := context.Background()
	store := createTestStorage(t)
	ids := appendN(t, store, "/a", "/b", "/c", "/d")

	require.NoError(t, store.RemoveMutations(ctx, []uint64{ids[0], ids[2], 999}))

	list, err := store.ListMutations(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"/b", "/d"}, targetsOf(list))

	require.NoError(t, store.RemoveMutations(ctx, nil))
}

func TestStorage_SaveMutation(t *testing.T) {
	ctx := context.Background()
	store := createTestStorage(t)
	appendN(t, store, "/a")

	list, err := store.ListMutations(ctx)
	require.NoError(t, err)
	m := list[0]
	m.Attempts = 2
	m.LastError = "server error (500): boom"
	require.NoError(t, store.SaveMutation(ctx, m))

	list, err = store.ListMutations(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, list[0].Attempts)
	assert.Equal(t, "server error (500): boom", list[0].LastError)

	err = store.SaveMutation(ctx, &models.QueuedMutation{ID: 42, Method: models.MethodDelete, Target: "/x"})
	assert.ErrorIs(t, err, storage.ErrMutationNotFound)
}

func TestStorage_DeadLetters(t *testing.T) {
	ctx := context.Background()
	store := createTestStorage(t)
	appendN(t, store, "/a", "/b", "/c")

	list, err := store.ListMutations(ctx)
	require.NoError(t, err)

	// /c и /a уходят в dead letter в обратном порядке
	for _, m := range []*models.QueuedMutation{list[2], list[0]} {
		m.Attempts = 10
		m.LastError = "gone"
		require.NoError(t, store.MoveToDeadLetter(ctx, m))
	}

	pending, err := store.ListMutations(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"/b"}, targetsOf(pending))

	dead, err := store.ListDeadLetters(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"/a", "/c"}, targetsOf(dead))
	assert.Equal(t, "gone", dead[0].LastError)

	moved, err := store.RequeueDeadLetters(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, moved)

	dead, err = store.ListDeadLetters(ctx)
	require.NoError(t, err)
	assert.Empty(t, dead)

	// Исходные id восстанавливают исходный порядок
	pending, err = store.ListMutations(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"/a", "/b", "/c"}, targetsOf(pending))
	assert.Equal(t, []uint64{1, 2, 3}, []uint64{pending[0].ID, pending[1].ID, pending[2].ID})
	assert.Zero(t, pending[0].Attempts)
	assert.Empty(t, pending[0].LastError)
}
