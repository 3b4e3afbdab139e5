package boltdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/iudanet/votekeeper/internal/client/storage"
	"github.com/iudanet/votekeeper/internal/models"
)

// GetCacheEntry retrieves a cache entry by key
func (s *Storage) GetCacheEntry(ctx context.Context, key string) (*models.CacheEntry, error) {
	db, err := s.handle()
	if err != nil {
		return nil, err
	}

	var entry *models.CacheEntry
	err = db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketCache).Get([]byte(key))
		if data == nil {
			return storage.ErrCacheEntryNotFound
		}

		plain, err := s.open(data, []byte(key))
		if err != nil {
			return err
		}

		entry = &models.CacheEntry{}
		if err := json.Unmarshal(plain, entry); err != nil {
			return fmt.Errorf("failed to unmarshal cache entry: %w", err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, storage.ErrCacheEntryNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get cache entry: %w", err)
	}

	return entry, nil
}

// SaveCacheEntry stores or replaces a cache entry
func (s *Storage) SaveCacheEntry(ctx context.Context, entry *models.CacheEntry) error {
	db, err := s.handle()
	if err != nil {
		return err
	}

	// Сериализуем entry в JSON
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal cache entry: %w", err)
	}
	data, err = s.seal(data, []byte(entry.Key))
	if err != nil {
		return err
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketCache).Put([]byte(entry.Key), data)
	})
	if err != nil {
		return fmt.Errorf("failed to save cache entry: %w", err)
	}
	return nil
}

// DeleteCacheEntries removes entries by keys
func (s *Storage) DeleteCacheEntries(ctx context.Context, keys []string) error {
	if len(keys) == 0 {
		return nil
	}
	db, err := s.handle()
	if err != nil {
		return err
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketCache)
		for _, key := range keys {
			if err := bucket.Delete([]byte(key)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to delete cache entries: %w", err)
	}
	return nil
}

// ListCacheKeys returns all stored keys
func (s *Storage) ListCacheKeys(ctx context.Context) ([]string, error) {
	db, err := s.handle()
	if err != nil {
		return nil, err
	}

	var keys []string
	err = db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketCache).ForEach(func(k, _ []byte) error {
			keys = append(keys, string(k))
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list cache keys: %w", err)
	}
	return keys, nil
}

// ClearCache removes all cache entries
func (s *Storage) ClearCache(ctx context.Context) error {
	db, err := s.handle()
	if err != nil {
		return err
	}

	// Пересоздаем bucket целиком
	err = db.Update(func(tx *bbolt.Tx) error {
		if err := tx.DeleteBucket(bucketCache); err != nil && !errors.Is(err, bbolt.ErrBucketNotFound) {
			return err
		}
		_, err := tx.CreateBucket(bucketCache)
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to clear cache: %w", err)
	}
	return nil
}

// CountCacheEntries returns number of cache entries
func (s *Storage) CountCacheEntries(ctx context.Context) (int, error) {
	db, err := s.handle()
	if err != nil {
		return 0, err
	}

	var n int
	err = db.View(func(tx *bbolt.Tx) error {
		n = tx.Bucket(bucketCache).Stats().KeyN
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to count cache entries: %w", err)
	}
	return n, nil
}
