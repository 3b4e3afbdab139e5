package sync

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"go.uber.org/multierr"

	"github.com/iudanet/votekeeper/internal/client/api"
	"github.com/iudanet/votekeeper/internal/client/storage"
	"github.com/iudanet/votekeeper/internal/clock"
	"github.com/iudanet/votekeeper/internal/models"
)

//go:generate moq -out service_mock.go . Service

// DefaultMaxAttempts число неудачных попыток, после которого мутация уходит в dead letter
const DefaultMaxAttempts = 10

// Service определяет интерфейс движка воспроизведения очереди
type Service interface {
	// Sync воспроизводит очередь мутаций на сервере
	Sync(ctx context.Context) (*SyncResult, error)

	// GetPendingSyncCount возвращает количество мутаций, ожидающих воспроизведения
	GetPendingSyncCount(ctx context.Context) (int, error)
}

// service воспроизводит очередь в порядке id
type service struct {
	apiClient       api.Doer
	queueStorage    storage.QueueStorage
	metadataStorage storage.MetadataStorage
	clock           clock.Clock
	logger          *slog.Logger
	maxAttempts     int
	mu              sync.Mutex
}

// Option настраивает service
type Option func(*service)

// WithMaxAttempts задает предел попыток; 0 отключает dead letter по числу попыток
func WithMaxAttempts(n int) Option {
	return func(s *service) {
		if n >= 0 {
			s.maxAttempts = n
		}
	}
}

// WithClock подменяет источник времени
func WithClock(c clock.Clock) Option {
	return func(s *service) { s.clock = c }
}

// NewService creates a new sync service
func NewService(apiClient api.Doer, queueStorage storage.QueueStorage, metadataStorage storage.MetadataStorage, logger *slog.Logger, opts ...Option) Service {
	s := &service{
		apiClient:       apiClient,
		queueStorage:    queueStorage,
		metadataStorage: metadataStorage,
		clock:           clock.System{},
		logger:          logger,
		maxAttempts:     DefaultMaxAttempts,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SyncResult contains sync operation results
type SyncResult struct {
	Err          error // ошибки отдельных мутаций (multierr)
	Attempted    int   // количество отправленных мутаций
	Applied      int   // количество принятых сервером мутаций
	Failed       int   // количество неудачных мутаций
	DeadLettered int   // количество мутаций, перенесенных в dead letter
}

// Sync performs one replay pass
// 1. Читает очередь, пустая очередь - немедленный выход
// 2. Отправляет мутации по порядку; ошибка одной не останавливает проход
// 3. Удаляет все примененные мутации одной транзакцией
func (s *service) Sync(ctx context.Context) (*SyncResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pending, err := s.queueStorage.ListMutations(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list queued mutations: %w", err)
	}

	result := &SyncResult{}
	if len(pending) == 0 {
		return result, nil
	}

	s.logger.Info("Starting queue replay", "pending", len(pending))
	s.saveStatus(ctx, models.SyncStatusSyncing)

	applied := make([]uint64, 0, len(pending))
	for _, m := range pending {
		if ctx.Err() != nil {
			break
		}
		result.Attempted++

		if err := s.apply(ctx, m); err != nil {
			result.Failed++
			result.Err = multierr.Append(result.Err, fmt.Errorf("mutation %d (%s %s): %w", m.ID, m.Method, m.Target, err))
			s.logger.Warn("Failed to replay mutation",
				"id", m.ID,
				"method", m.Method,
				"target", m.Target,
				"error", err)

			if s.recordFailure(ctx, m, err) {
				result.DeadLettered++
			}
			continue
		}

		applied = append(applied, m.ID)
		result.Applied++
	}

	// Частичный прогресс сохраняется даже если проход был прерван
	removeErr := s.queueStorage.RemoveMutations(context.WithoutCancel(ctx), applied)

	status := models.SyncStatusIdle
	if result.Failed > 0 || removeErr != nil {
		status = models.SyncStatusFailed
	}
	s.saveStatus(ctx, status)
	if err := s.metadataStorage.SaveLastSyncTimestamp(context.WithoutCancel(ctx), s.clock.Now().Unix()); err != nil {
		s.logger.Warn("Failed to save last sync timestamp", "error", err)
	}

	s.logger.Info("Queue replay completed",
		"attempted", result.Attempted,
		"applied", result.Applied,
		"failed", result.Failed,
		"dead_lettered", result.DeadLettered)

	if removeErr != nil {
		return result, fmt.Errorf("failed to remove applied mutations: %w", removeErr)
	}
	if err := ctx.Err(); err != nil {
		return result, err
	}
	return result, nil
}

// apply отправляет одну мутацию
func (s *service) apply(ctx context.Context, m *models.QueuedMutation) error {
	req := api.Request{
		Method:         m.Method.HTTPMethod(),
		Path:           m.Target,
		IdempotencyKey: m.IdempotencyKey,
	}
	if m.Method != models.MethodDelete && len(m.Payload) > 0 {
		req.Body = m.Payload
	}
	_, err := s.apiClient.Do(ctx, req)
	return err
}

// recordFailure увеличивает счетчик попыток и решает, снять ли мутацию с воспроизведения.
// Возвращает true, если мутация перенесена в dead letter.
func (s *service) recordFailure(ctx context.Context, m *models.QueuedMutation, cause error) bool {
	// Отмена контекста - не вина мутации
	if errors.Is(cause, context.Canceled) {
		return false
	}

	m.Attempts++
	m.LastError = cause.Error()

	dead := api.IsPermanent(cause) || (s.maxAttempts > 0 && m.Attempts >= s.maxAttempts)
	if dead {
		if err := s.queueStorage.MoveToDeadLetter(ctx, m); err != nil {
			s.logger.Warn("Failed to move mutation to dead letter", "id", m.ID, "error", err)
			return false
		}
		s.logger.Warn("Mutation moved to dead letter", "id", m.ID, "attempts", m.Attempts, "error", cause)
		return true
	}

	if err := s.queueStorage.SaveMutation(ctx, m); err != nil {
		s.logger.Warn("Failed to save mutation attempts", "id", m.ID, "error", err)
	}
	return false
}

func (s *service) saveStatus(ctx context.Context, status models.SyncStatus) {
	if err := s.metadataStorage.SaveSyncStatus(context.WithoutCancel(ctx), status); err != nil {
		s.logger.Warn("Failed to save sync status", "status", status, "error", err)
	}
}

// GetPendingSyncCount возвращает количество мутаций, ожидающих воспроизведения
func (s *service) GetPendingSyncCount(ctx context.Context) (int, error) {
	pending, err := s.queueStorage.ListMutations(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to get pending mutations: %w", err)
	}
	return len(pending), nil
}
