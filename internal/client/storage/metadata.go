package storage

import (
	"context"

	"github.com/iudanet/votekeeper/internal/models"
)

//go:generate moq -out metadata_mock.go . MetadataStorage

// MetadataStorage defines interface for storing client metadata
type MetadataStorage interface {
	// SaveLastSyncTimestamp saves the unix time of the last finished sync pass
	SaveLastSyncTimestamp(ctx context.Context, timestamp int64) error

	// GetLastSyncTimestamp retrieves the unix time of the last finished sync pass
	// Returns 0 if no sync has been performed yet
	GetLastSyncTimestamp(ctx context.Context) (int64, error)

	// SaveSyncStatus stores the state of the sync engine
	SaveSyncStatus(ctx context.Context, status models.SyncStatus) error

	// GetSyncStatus returns the stored state, SyncStatusIdle if none
	GetSyncStatus(ctx context.Context) (models.SyncStatus, error)
}
