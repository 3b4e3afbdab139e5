// Package resources предоставляет типизированный доступ к данным выборов
// поверх диспетчера запросов.
package resources

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"

	"github.com/google/uuid"

	"github.com/iudanet/votekeeper/internal/client/dispatcher"
	"github.com/iudanet/votekeeper/internal/models"
	"github.com/iudanet/votekeeper/pkg/api"
)

// Dispatcher сетевой диспетчер чтений и записей
type Dispatcher interface {
	Get(ctx context.Context, path string, params map[string]string) (json.RawMessage, error)
	Post(ctx context.Context, path string, payload json.RawMessage) (json.RawMessage, error)
	Put(ctx context.Context, path string, payload json.RawMessage) (json.RawMessage, error)
	Delete(ctx context.Context, path string) (json.RawMessage, error)
}

// Enqueuer очередь отложенных записей
type Enqueuer interface {
	Enqueue(ctx context.Context, method models.MutationMethod, target string, payload json.RawMessage) (uint64, error)
}

// CandidateFilter фильтр списка кандидатов
type CandidateFilter struct {
	DistrictID   string
	PartyID      string
	Constituency int
}

// Params возвращает фильтр в виде query параметров
func (f CandidateFilter) Params() map[string]string {
	params := make(map[string]string)
	if f.DistrictID != "" {
		params["district"] = f.DistrictID
	}
	if f.PartyID != "" {
		params["party"] = f.PartyID
	}
	if f.Constituency > 0 {
		params["constituency"] = strconv.Itoa(f.Constituency)
	}
	return params
}

// WriteResult результат записи
type WriteResult struct {
	Data    json.RawMessage // ответ сервера, пусто если запись поставлена в очередь
	QueueID uint64          // id в очереди, если Queued
	Queued  bool
}

// Service типизированный клиент ресурсов
type Service struct {
	dispatcher     Dispatcher
	queue          Enqueuer
	logger         *slog.Logger
	queueIfOffline bool
}

// NewService creates a new resources service. queue может быть nil,
// тогда записи без сети всегда отклоняются.
func NewService(d Dispatcher, queue Enqueuer, queueIfOffline bool, logger *slog.Logger) *Service {
	return &Service{
		dispatcher:     d,
		queue:          queue,
		queueIfOffline: queueIfOffline && queue != nil,
		logger:         logger,
	}
}

// ListDistricts возвращает все районы
func (s *Service) ListDistricts(ctx context.Context) ([]api.District, error) {
	var out []api.District
	if err := s.get(ctx, "/districts", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetDistrict возвращает район по id
func (s *Service) GetDistrict(ctx context.Context, id string) (*api.District, error) {
	var out api.District
	if err := s.get(ctx, "/districts/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListParties возвращает все партии
func (s *Service) ListParties(ctx context.Context) ([]api.Party, error) {
	var out []api.Party
	if err := s.get(ctx, "/parties", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListCandidates возвращает кандидатов по фильтру
func (s *Service) ListCandidates(ctx context.Context, filter CandidateFilter) ([]api.Candidate, error) {
	var out []api.Candidate
	if err := s.get(ctx, "/candidates", filter.Params(), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetCandidate возвращает кандидата по id
func (s *Service) GetCandidate(ctx context.Context, id string) (*api.Candidate, error) {
	var out api.Candidate
	if err := s.get(ctx, "/candidates/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// LiveResults возвращает лидеров по участкам
func (s *Service) LiveResults(ctx context.Context) ([]api.LiveResult, error) {
	var out []api.LiveResult
	if err := s.get(ctx, "/results/live", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateCandidate создает кандидата. При постановке в очередь кандидату
// заранее назначается UUID, чтобы на него можно было ссылаться до синхронизации.
func (s *Service) CreateCandidate(ctx context.Context, req api.CandidateRequest) (*WriteResult, error) {
	if s.queueIfOffline && req.ID == "" {
		req.ID = uuid.NewString()
	}
	return s.writeJSON(ctx, models.MethodCreate, "/candidates", req)
}

// UpdateCandidate изменяет кандидата
func (s *Service) UpdateCandidate(ctx context.Context, id string, req api.CandidateRequest) (*WriteResult, error) {
	return s.writeJSON(ctx, models.MethodUpdate, "/candidates/"+url.PathEscape(id), req)
}

// DeleteCandidate удаляет кандидата
func (s *Service) DeleteCandidate(ctx context.Context, id string) (*WriteResult, error) {
	return s.Write(ctx, models.MethodDelete, "/candidates/"+url.PathEscape(id), nil)
}

// CreateParty создает партию
func (s *Service) CreateParty(ctx context.Context, req api.PartyRequest) (*WriteResult, error) {
	return s.writeJSON(ctx, models.MethodCreate, "/parties", req)
}

// UpdateParty изменяет партию
func (s *Service) UpdateParty(ctx context.Context, id string, req api.PartyRequest) (*WriteResult, error) {
	return s.writeJSON(ctx, models.MethodUpdate, "/parties/"+url.PathEscape(id), req)
}

// DeleteParty удаляет партию
func (s *Service) DeleteParty(ctx context.Context, id string) (*WriteResult, error) {
	return s.Write(ctx, models.MethodDelete, "/parties/"+url.PathEscape(id), nil)
}

// Write выполняет произвольную запись. Если диспетчер отклонил ее из-за
// отсутствия сети и включена постановка в очередь, запись ставится в очередь.
func (s *Service) Write(ctx context.Context, method models.MutationMethod, path string, payload json.RawMessage) (*WriteResult, error) {
	var (
		data json.RawMessage
		err  error
	)
	switch method {
	case models.MethodCreate:
		data, err = s.dispatcher.Post(ctx, path, payload)
	case models.MethodUpdate:
		data, err = s.dispatcher.Put(ctx, path, payload)
	case models.MethodDelete:
		data, err = s.dispatcher.Delete(ctx, path)
	default:
		return nil, fmt.Errorf("unsupported mutation method %q", method)
	}

	if err == nil {
		return &WriteResult{Data: data}, nil
	}
	if !s.queueIfOffline || !errors.Is(err, dispatcher.ErrOfflineWrite) {
		return nil, err
	}

	id, qerr := s.queue.Enqueue(ctx, method, path, payload)
	if qerr != nil {
		return nil, fmt.Errorf("%w (queueing failed: %w)", err, qerr)
	}
	s.logger.Info("Offline write queued", "id", id, "method", method, "path", path)
	return &WriteResult{Queued: true, QueueID: id}, nil
}

func (s *Service) writeJSON(ctx context.Context, method models.MutationMethod, path string, body any) (*WriteResult, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}
	return s.Write(ctx, method, path, payload)
}

func (s *Service) get(ctx context.Context, path string, params map[string]string, out any) error {
	raw, err := s.dispatcher.Get(ctx, path, params)
	if err != nil {
		return err
	}
	if len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return nil
}
