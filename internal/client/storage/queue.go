package storage

import (
	"context"

	"github.com/iudanet/votekeeper/internal/models"
)

//go:generate moq -out queue_mock.go . QueueStorage

// QueueStorage defines the durable mutation queue (sync-queue collection)
// and its dead-letter collection
type QueueStorage interface {
	// AppendMutation assigns the next monotonically increasing id, stores the mutation and returns the id
	AppendMutation(ctx context.Context, m *models.QueuedMutation) (uint64, error)

	// ListMutations returns pending mutations ordered by id
	ListMutations(ctx context.Context) ([]*models.QueuedMutation, error)

	// SaveMutation replaces an existing pending mutation (attempts, last error)
	// Returns ErrMutationNotFound if id is not queued
	SaveMutation(ctx context.Context, m *models.QueuedMutation) error

	// RemoveMutations deletes pending mutations by id in one transaction
	RemoveMutations(ctx context.Context, ids []uint64) error

	// MoveToDeadLetter atomically removes the mutation from the queue and stores it as dead letter
	MoveToDeadLetter(ctx context.Context, m *models.QueuedMutation) error

	// ListDeadLetters returns dead letters ordered by id
	ListDeadLetters(ctx context.Context) ([]*models.QueuedMutation, error)

	// RequeueDeadLetters moves all dead letters back to the queue under their ids
	// with attempts reset, and returns how many were moved
	RequeueDeadLetters(ctx context.Context) (int, error)
}
