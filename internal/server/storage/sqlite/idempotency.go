package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/iudanet/votekeeper/internal/server/storage"
)

// GetIdempotencyRecord retrieves stored response by key
func (s *Storage) GetIdempotencyRecord(ctx context.Context, key string) (*storage.IdempotencyRecord, error) {
	var (
		rec       storage.IdempotencyRecord
		createdAt int64
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT idempotency_key, method, path, body_hash, status_code, content_type, body, created_at
		FROM idempotency_keys
		WHERE idempotency_key = ?
	`, key).Scan(&rec.Key, &rec.Method, &rec.Path, &rec.BodyHash,
		&rec.StatusCode, &rec.ContentType, &rec.Body, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrIdempotencyRecordNotFound
		}
		return nil, fmt.Errorf("failed to get idempotency record: %w", err)
	}
	rec.CreatedAt = unixToTime(createdAt)
	return &rec, nil
}

// SaveIdempotencyRecord stores response for the key. Первый сохраненный ответ не перезаписывается.
func (s *Storage) SaveIdempotencyRecord(ctx context.Context, rec *storage.IdempotencyRecord) error {
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = s.timestamp()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO idempotency_keys (
			idempotency_key, method, path, body_hash,
			status_code, content_type, body, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (idempotency_key) DO NOTHING
	`,
		rec.Key,
		rec.Method,
		rec.Path,
		rec.BodyHash,
		rec.StatusCode,
		rec.ContentType,
		rec.Body,
		rec.CreatedAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to save idempotency record: %w", err)
	}
	return nil
}

// PurgeIdempotencyRecords deletes records older than before
func (s *Storage) PurgeIdempotencyRecords(ctx context.Context, before time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM idempotency_keys WHERE created_at < ?`, before.Unix())
	if err != nil {
		return 0, fmt.Errorf("failed to purge idempotency records: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return n, nil
}
