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

func TestStorage_CacheEntries(t *testing.T) {
	ctx := context.Background()
	store := createTestStorage(t)
	now := time.Now().UTC().Truncate(time.Millisecond)

	_, err := store.GetCacheEntry(ctx, "/districts:{}")
	assert.ErrorIs(t, err, storage.ErrCacheEntryNotFound)

	entry := &models.CacheEntry{Key: "/districts:{}", Value: []byte(`[1]`), Timestamp: now, TTL: time.Hour}
	require.NoError(t, store.SaveCacheEntry(ctx, entry))

	got, err := store.GetCacheEntry(ctx, "/districts:{}")
	require.NoError(t, err)
	assert.Equal(t, entry.Key, got.Key)
	assert.JSONEq(t, `[1]`, string(got.Value))
	assert.True(t, now.Equal(got.Timestamp))
	assert.Equal(t, time.Hour, got.TTL)

	// Перезапись заменяет значение и timestamp
	later := now.Add(time.Minute)
	require.NoError(t, store.SaveCacheEntry(ctx, &models.CacheEntry{Key: "/districts:{}", Value: []byte(`[2]`), Timestamp: later, TTL: time.Hour}))
	got, err = store.GetCacheEntry(ctx, "/districts:{}")
	require.NoError(t, err)
	assert.JSONEq(t, `[2]`, string(got.Value))
	assert.True(t, later.Equal(got.Timestamp))

	n, err := store.CountCacheEntries(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestStorage_DeleteAndClearCache(t *testing.T) {
	ctx := context.Background()
	store := createTestStorage(t)

	for _, key := range []string{"/parties:{}", "/candidates:{}", `/candidates:{"district":"d1"}`} {
		require.NoError(t, store.SaveCacheEntry(ctx, &models.CacheEntry{Key: key, Value: []byte(`{}`), TTL: time.Hour}))
	}

	keys, err := store.ListCacheKeys(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"/parties:{}", "/candidates:{}", `/candidates:{"district":"d1"}`}, keys)

	require.NoError(t, store.DeleteCacheEntries(ctx, []string{"/candidates:{}", "/missing:{}"}))
	keys, err = store.ListCacheKeys(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"/parties:{}", `/candidates:{"district":"d1"}`}, keys)

	require.NoError(t, store.ClearCache(ctx))
	n, err := store.CountCacheEntries(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	// После очистки хранилище продолжает работать
	require.NoError(t, store.SaveCacheEntry(ctx, &models.CacheEntry{Key: "/parties:{}", Value: []byte(`[]`), TTL: time.Hour}))
	n, err = store.CountCacheEntries(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
