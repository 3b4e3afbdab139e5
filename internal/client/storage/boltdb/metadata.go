package boltdb

import (
	"context"
	"encoding/binary"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/iudanet/votekeeper/internal/models"
)

const (
	keyLastSyncTimestamp = "last_sync_timestamp"
	keySyncStatus        = "sync_status"
)

// SaveLastSyncTimestamp saves the unix time of the last finished sync pass
func (s *Storage) SaveLastSyncTimestamp(ctx context.Context, timestamp int64) error {
	db, err := s.handle()
	if err != nil {
		return err
	}

	return db.Update(func(tx *bbolt.Tx) error {
		// Конвертируем int64 в bytes
		timestampBytes := make([]byte, 8)
		binary.BigEndian.PutUint64(timestampBytes, uint64(timestamp))

		if err := tx.Bucket(bucketMetadata).Put([]byte(keyLastSyncTimestamp), timestampBytes); err != nil {
			return fmt.Errorf("failed to save last sync timestamp: %w", err)
		}
		return nil
	})
}

// GetLastSyncTimestamp retrieves the unix time of the last finished sync pass
// Returns 0 if no sync has been performed yet
func (s *Storage) GetLastSyncTimestamp(ctx context.Context) (int64, error) {
	db, err := s.handle()
	if err != nil {
		return 0, err
	}

	var timestamp int64
	err = db.View(func(tx *bbolt.Tx) error {
		timestampBytes := tx.Bucket(bucketMetadata).Get([]byte(keyLastSyncTimestamp))
		if timestampBytes == nil {
			return nil
		}
		timestamp = int64(binary.BigEndian.Uint64(timestampBytes))
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to get last sync timestamp: %w", err)
	}

	return timestamp, nil
}

// SaveSyncStatus stores the state of the sync engine
func (s *Storage) SaveSyncStatus(ctx context.Context, status models.SyncStatus) error {
	db, err := s.handle()
	if err != nil {
		return err
	}

	return db.Update(func(tx *bbolt.Tx) error {
		if err := tx.Bucket(bucketMetadata).Put([]byte(keySyncStatus), []byte(status)); err != nil {
			return fmt.Errorf("failed to save sync status: %w", err)
		}
		return nil
	})
}

// GetSyncStatus returns the stored sync state, idle if none was saved
func (s *Storage) GetSyncStatus(ctx context.Context) (models.SyncStatus, error) {
	db, err := s.handle()
	if err != nil {
		return "", err
	}

	status := models.SyncStatusIdle
	err = db.View(func(tx *bbolt.Tx) error {
		if v := tx.Bucket(bucketMetadata).Get([]byte(keySyncStatus)); v != nil {
			status = models.SyncStatus(v)
		}
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("failed to get sync status: %w", err)
	}
	return status, nil
}
