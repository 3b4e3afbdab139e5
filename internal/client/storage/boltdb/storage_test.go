package boltdb

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.etcd.io/bbolt"

	"github.com/iudanet/votekeeper/internal/client/storage"
	"github.com/iudanet/votekeeper/internal/models"
)

// createTestStorage создает временное хранилище для тестов
func createTestStorage(t *testing.T, opts ...Option) *Storage {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := New(context.Background(), dbPath, opts...)
	require.NoError(t, err)
	require.NotNil(t, store)
	t.Cleanup(func() {
		require.NoError(t, store.Close())
	})
	return store
}

func TestNew_Success(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "testdb.db")

	store, err := New(context.Background(), dbPath)
	require.NoError(t, err)
	defer func() {
		require.NoError(t, store.Close())
	}()

	// Проверяем что файл БД действительно создан
	info, err := os.Stat(dbPath)
	require.NoError(t, err)
	assert.False(t, info.IsDir())
	assert.False(t, store.Sealed())

	// Проверяем, что бакеты существуют
	err = store.db.View(func(tx *bbolt.Tx) error {
		for _, b := range [][]byte{bucketCache, bucketQueue, bucketDeadLetter, bucketMetadata} {
			if tx.Bucket(b) == nil {
				return os.ErrNotExist
			}
		}
		return nil
	})
	require.NoError(t, err)
}

func TestNew_InvalidPath(t *testing.T) {
	store, err := New(context.Background(), filepath.Join(t.TempDir(), "missing", "dir", "db"))
	assert.Error(t, err)
	assert.Nil(t, store)
}

func TestNew_LockedByAnotherHandle(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "locked.db")

	first, err := New(context.Background(), dbPath)
	require.NoError(t, err)
	defer func() { _ = first.Close() }()

	second, err := New(context.Background(), dbPath, WithLockTimeout(50*time.Millisecond))
	require.Error(t, err)
	assert.ErrorIs(t, err, storage.ErrStorageLocked)
	assert.Nil(t, second)
}

func TestClose(t *testing.T) {
	ctx := context.Background()
	store, err := New(ctx, filepath.Join(t.TempDir(), "testdb.db"))
	require.NoError(t, err)

	require.NoError(t, store.Close())
	assert.Nil(t, store.db)

	// Второй вызов Close не должен падать
	assert.NoError(t, store.Close())

	// Операции после закрытия возвращают ErrStorageClosed
	_, err = store.GetCacheEntry(ctx, "k")
	assert.ErrorIs(t, err, storage.ErrStorageClosed)
	_, err = store.AppendMutation(ctx, &models.QueuedMutation{Method: models.MethodDelete, Target: "/x"})
	assert.ErrorIs(t, err, storage.ErrStorageClosed)
	_, err = store.GetLastSyncTimestamp(ctx)
	assert.ErrorIs(t, err, storage.ErrStorageClosed)
}

func TestSealedStore(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "sealed.db")

	store, err := New(ctx, dbPath, WithPassphrase("s3cret"))
	require.NoError(t, err)
	assert.True(t, store.Sealed())

	entry := &models.CacheEntry{
		Key:       "/districts:{}",
		Value:     []byte(`[{"id":"kathmandu"}]`),
		Timestamp: time.Now().UTC().Truncate(time.Millisecond),
		TTL:       time.Hour,
	}
	require.NoError(t, store.SaveCacheEntry(ctx, entry))
	_, err = store.AppendMutation(ctx, &models.QueuedMutation{
		Method:  models.MethodCreate,
		Target:  "/parties",
		Payload: []byte(`{"name":"secret party"}`),
	})
	require.NoError(t, err)

	// На диске нет открытого текста
	err = store.db.View(func(tx *bbolt.Tx) error {
		raw := tx.Bucket(bucketCache).Get([]byte(entry.Key))
		assert.NotContains(t, string(raw), "kathmandu")
		_, v := tx.Bucket(bucketQueue).Cursor().First()
		assert.NotContains(t, string(v), "secret party")
		return nil
	})
	require.NoError(t, err)
	require.NoError(t, store.Close())

	t.Run("reopen with passphrase", func(t *testing.T) {
		s, err := New(ctx, dbPath, WithPassphrase("s3cret"))
		require.NoError(t, err)
		defer func() { _ = s.Close() }()

		got, err := s.GetCacheEntry(ctx, entry.Key)
		require.NoError(t, err)
		assert.JSONEq(t, string(entry.Value), string(got.Value))

		list, err := s.ListMutations(ctx)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.JSONEq(t, `{"name":"secret party"}`, string(list[0].Payload))
	})

	t.Run("wrong passphrase", func(t *testing.T) {
		s, err := New(ctx, dbPath, WithPassphrase("nope"))
		assert.ErrorIs(t, err, storage.ErrWrongPassphrase)
		assert.Nil(t, s)
	})

	t.Run("missing passphrase", func(t *testing.T) {
		s, err := New(ctx, dbPath)
		assert.ErrorIs(t, err, storage.ErrPassphraseRequired)
		assert.Nil(t, s)
	})
}

func TestSealedStore_RefusesNonEmptyPlainStore(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "plain.db")

	store, err := New(ctx, dbPath)
	require.NoError(t, err)
	require.NoError(t, store.SaveCacheEntry(ctx, &models.CacheEntry{Key: "/parties:{}", Value: []byte(`[]`), TTL: time.Hour}))
	require.NoError(t, store.Close())

	_, err = New(ctx, dbPath, WithPassphrase("late"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot seal a non-empty store")
}
