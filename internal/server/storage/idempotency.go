package storage

import (
	"context"
	"time"
)

// IdempotencyRecord сохраненный ответ на запись с заголовком Idempotency-Key
type IdempotencyRecord struct {
	CreatedAt   time.Time
	Key         string
	Method      string
	Path        string
	BodyHash    string // sha256 тела запроса, hex
	ContentType string
	Body        []byte
	StatusCode  int
}

// Matches сообщает, что повтор относится к тому же запросу
func (r *IdempotencyRecord) Matches(method, path, bodyHash string) bool {
	return r.Method == method && r.Path == path && r.BodyHash == bodyHash
}

//go:generate moq -out idempotency_mock.go . IdempotencyStorage

// IdempotencyStorage defines interface for replay-safe write responses
type IdempotencyStorage interface {
	// GetIdempotencyRecord returns ErrIdempotencyRecordNotFound if nothing was stored
	GetIdempotencyRecord(ctx context.Context, key string) (*IdempotencyRecord, error)

	// SaveIdempotencyRecord stores the response; an existing key is kept unchanged
	SaveIdempotencyRecord(ctx context.Context, rec *IdempotencyRecord) error

	// PurgeIdempotencyRecords deletes records created before the given time
	PurgeIdempotencyRecords(ctx context.Context, before time.Time) (int64, error)
}
