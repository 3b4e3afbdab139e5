package storage

import (
	"context"

	"github.com/iudanet/votekeeper/internal/models"
)

//go:generate moq -out cache_mock.go . CacheStorage

// CacheStorage defines the durable layer of the response cache (api-cache collection)
type CacheStorage interface {
	// GetCacheEntry returns entry by key
	// Returns ErrCacheEntryNotFound if entry doesn't exist
	GetCacheEntry(ctx context.Context, key string) (*models.CacheEntry, error)

	// SaveCacheEntry stores or replaces entry under entry.Key
	SaveCacheEntry(ctx context.Context, entry *models.CacheEntry) error

	// DeleteCacheEntries removes entries by keys, missing keys are ignored
	DeleteCacheEntries(ctx context.Context, keys []string) error

	// ListCacheKeys returns all stored keys in byte order
	ListCacheKeys(ctx context.Context) ([]string, error)

	// ClearCache removes all entries
	ClearCache(ctx context.Context) error

	// CountCacheEntries returns number of stored entries
	CountCacheEntries(ctx context.Context) (int, error)
}
