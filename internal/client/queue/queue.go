// Package queue хранит записи, которые пользователь явно отложил до появления сети.
package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/iudanet/votekeeper/internal/client/storage"
	"github.com/iudanet/votekeeper/internal/clock"
	"github.com/iudanet/votekeeper/internal/models"
)

// Service долговечная очередь мутаций
type Service struct {
	store  storage.QueueStorage
	clock  clock.Clock
	logger *slog.Logger
}

// NewService creates a new queue service
func NewService(store storage.QueueStorage, c clock.Clock, logger *slog.Logger) *Service {
	if c == nil {
		c = clock.System{}
	}
	return &Service{store: store, clock: c, logger: logger}
}

// Enqueue добавляет мутацию в конец очереди и возвращает ее id.
// Для DELETE тело не сохраняется.
func (s *Service) Enqueue(ctx context.Context, method models.MutationMethod, target string, payload json.RawMessage) (uint64, error) {
	if !method.Valid() {
		return 0, fmt.Errorf("unsupported mutation method %q", method)
	}
	target = strings.TrimSpace(target)
	if target == "" {
		return 0, fmt.Errorf("mutation target cannot be empty")
	}
	if method == models.MethodDelete {
		payload = nil
	} else if len(payload) > 0 && !json.Valid(payload) {
		return 0, fmt.Errorf("mutation payload is not valid JSON")
	}

	m := &models.QueuedMutation{
		Timestamp:      s.clock.Now(),
		Method:         method,
		Target:         target,
		Payload:        payload,
		IdempotencyKey: uuid.NewString(),
	}

	id, err := s.store.AppendMutation(ctx, m)
	if err != nil {
		return 0, fmt.Errorf("failed to enqueue mutation: %w", err)
	}

	s.logger.Info("Mutation queued", "id", id, "method", method, "target", target)
	return id, nil
}

// List возвращает ожидающие мутации в порядке постановки
func (s *Service) List(ctx context.Context) ([]*models.QueuedMutation, error) {
	list, err := s.store.ListMutations(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list queue: %w", err)
	}
	return list, nil
}

// Remove удаляет мутации по id, не затрагивая остальные
func (s *Service) Remove(ctx context.Context, ids []uint64) error {
	if err := s.store.RemoveMutations(ctx, ids); err != nil {
		return fmt.Errorf("failed to remove mutations: %w", err)
	}
	return nil
}

// Size возвращает число ожидающих мутаций
func (s *Service) Size(ctx context.Context) (int, error) {
	list, err := s.List(ctx)
	if err != nil {
		return 0, err
	}
	return len(list), nil
}

// Dead возвращает мутации, снятые с воспроизведения
func (s *Service) Dead(ctx context.Context) ([]*models.QueuedMutation, error) {
	list, err := s.store.ListDeadLetters(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list dead letters: %w", err)
	}
	return list, nil
}

// Requeue возвращает все dead letter мутации в очередь под исходными id
func (s *Service) Requeue(ctx context.Context) (int, error) {
	n, err := s.store.RequeueDeadLetters(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to requeue dead letters: %w", err)
	}
	if n > 0 {
		s.logger.Info("Dead letters requeued", "count", n)
	}
	return n, nil
}
