package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/iudanet/votekeeper/internal/server/storage"
	"github.com/iudanet/votekeeper/internal/validation"
	"github.com/iudanet/votekeeper/pkg/api"
)

//go:generate moq -out election_storage_mock.go . ElectionStorage
//go:generate moq -out publisher_mock.go . Publisher

// ElectionStorage хранилище районов, партий и кандидатов
type ElectionStorage interface {
	storage.DistrictStorage
	storage.PartyStorage
	storage.CandidateStorage
}

// Publisher рассылает события об изменениях подписчикам
type Publisher interface {
	Publish(ev api.Event)
}

// ElectionHandler обрабатывает запросы к данным выборов
type ElectionHandler struct {
	storage   ElectionStorage
	publisher Publisher
	newID     func() string
	responder
}

// NewElectionHandler создает handler. publisher может быть nil.
func NewElectionHandler(logger *slog.Logger, store ElectionStorage, publisher Publisher) *ElectionHandler {
	return &ElectionHandler{
		responder: responder{logger: logger},
		storage:   store,
		publisher: publisher,
		newID:     uuid.NewString,
	}
}

// ListDistricts обрабатывает GET /api/districts
func (h *ElectionHandler) ListDistricts(w http.ResponseWriter, r *http.Request) {
	districts, err := h.storage.ListDistricts(r.Context())
	if err != nil {
		h.internalError(w, r, "failed to list districts", err)
		return
	}
	h.sendJSON(w, districts, http.StatusOK)
}

// GetDistrict обрабатывает GET /api/districts/{id}
func (h *ElectionHandler) GetDistrict(w http.ResponseWriter, r *http.Request) {
	district, err := h.storage.GetDistrict(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, storage.ErrDistrictNotFound) {
			h.sendError(w, "district not found", http.StatusNotFound)
			return
		}
		h.internalError(w, r, "failed to get district", err)
		return
	}
	h.sendJSON(w, district, http.StatusOK)
}

// ListParties обрабатывает GET /api/parties
func (h *ElectionHandler) ListParties(w http.ResponseWriter, r *http.Request) {
	parties, err := h.storage.ListParties(r.Context())
	if err != nil {
		h.internalError(w, r, "failed to list parties", err)
		return
	}
	h.sendJSON(w, parties, http.StatusOK)
}

// GetParty обрабатывает GET /api/parties/{id}
func (h *ElectionHandler) GetParty(w http.ResponseWriter, r *http.Request) {
	party, err := h.storage.GetParty(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, storage.ErrPartyNotFound) {
			h.sendError(w, "party not found", http.StatusNotFound)
			return
		}
		h.internalError(w, r, "failed to get party", err)
		return
	}
	h.sendJSON(w, party, http.StatusOK)
}

// CreateParty обрабатывает POST /api/parties
func (h *ElectionHandler) CreateParty(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.PartyRequest
	if !h.decode(w, r, &req) {
		return
	}
	if err := validation.ValidateParty(req); err != nil {
		h.sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	party := &api.Party{
		ID:        h.newID(),
		Name:      req.Name,
		ShortName: req.ShortName,
		Color:     req.Color,
	}
	if err := h.storage.CreateParty(ctx, party); err != nil {
		if errors.Is(err, storage.ErrPartyAlreadyExists) {
			h.sendError(w, "party with this name already exists", http.StatusConflict)
			return
		}
		h.internalError(w, r, "failed to create party", err)
		return
	}

	h.logger.InfoContext(ctx, "party created", slog.String("party_id", party.ID), slog.String("name", party.Name))
	h.publish(api.EventPartyCreated, party)
	h.sendJSON(w, party, http.StatusCreated)
}

// UpdateParty обрабатывает PUT /api/parties/{id}
func (h *ElectionHandler) UpdateParty(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.PartyRequest
	if !h.decode(w, r, &req) {
		return
	}
	if err := validation.ValidateParty(req); err != nil {
		h.sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	party := &api.Party{
		ID:        r.PathValue("id"),
		Name:      req.Name,
		ShortName: req.ShortName,
		Color:     req.Color,
	}
	if err := h.storage.UpdateParty(ctx, party); err != nil {
		switch {
		case errors.Is(err, storage.ErrPartyNotFound):
			h.sendError(w, "party not found", http.StatusNotFound)
		case errors.Is(err, storage.ErrPartyAlreadyExists):
			h.sendError(w, "party with this name already exists", http.StatusConflict)
		default:
			h.internalError(w, r, "failed to update party", err)
		}
		return
	}

	h.publish(api.EventPartyUpdated, party)
	h.sendJSON(w, party, http.StatusOK)
}

// DeleteParty обрабатывает DELETE /api/parties/{id}
func (h *ElectionHandler) DeleteParty(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := r.PathValue("id")

	if err := h.storage.DeleteParty(ctx, id); err != nil {
		if errors.Is(err, storage.ErrPartyNotFound) {
			h.sendError(w, "party not found", http.StatusNotFound)
			return
		}
		h.internalError(w, r, "failed to delete party", err)
		return
	}

	h.logger.InfoContext(ctx, "party deleted", slog.String("party_id", id))
	h.publish(api.EventPartyDeleted, map[string]string{"id": id})
	// кандидаты партии стали независимыми
	h.publish(api.EventResultUpdated, nil)
	w.WriteHeader(http.StatusNoContent)
}

// ListCandidates обрабатывает GET /api/candidates?district=&party=&constituency=
func (h *ElectionHandler) ListCandidates(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := storage.CandidateFilter{
		DistrictID: query.Get("district"),
		PartyID:    query.Get("party"),
	}
	if v := query.Get("constituency"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			h.sendError(w, "constituency must be a positive number", http.StatusBadRequest)
			return
		}
		filter.Constituency = n
	}

	candidates, err := h.storage.ListCandidates(r.Context(), filter)
	if err != nil {
		h.internalError(w, r, "failed to list candidates", err)
		return
	}
	h.sendJSON(w, candidates, http.StatusOK)
}

// GetCandidate обрабатывает GET /api/candidates/{id}
func (h *ElectionHandler) GetCandidate(w http.ResponseWriter, r *http.Request) {
	candidate, err := h.storage.GetCandidate(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, storage.ErrCandidateNotFound) {
			h.sendError(w, "candidate not found", http.StatusNotFound)
			return
		}
		h.internalError(w, r, "failed to get candidate", err)
		return
	}
	h.sendJSON(w, candidate, http.StatusOK)
}

// CreateCandidate обрабатывает POST /api/candidates
// Клиент может передать собственный UUID (кандидаты, созданные без сети)
func (h *ElectionHandler) CreateCandidate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.CandidateRequest
	if !h.decode(w, r, &req) {
		return
	}
	if req.ID != "" {
		if _, err := uuid.Parse(req.ID); err != nil {
			h.sendError(w, "id must be a UUID", http.StatusBadRequest)
			return
		}
	}
	if !h.checkCandidate(ctx, w, r, req) {
		return
	}

	candidate := candidateFromRequest(req)
	candidate.ID = req.ID
	if candidate.ID == "" {
		candidate.ID = h.newID()
	}

	if err := h.storage.CreateCandidate(ctx, candidate); err != nil {
		switch {
		case errors.Is(err, storage.ErrCandidateAlreadyExists):
			h.sendError(w, "candidate already exists", http.StatusConflict)
		case errors.Is(err, storage.ErrUnknownReference):
			h.sendError(w, "unknown district or party", http.StatusBadRequest)
		default:
			h.internalError(w, r, "failed to create candidate", err)
		}
		return
	}

	h.logger.InfoContext(ctx, "candidate created",
		slog.String("candidate_id", candidate.ID),
		slog.String("district_id", candidate.DistrictID),
		slog.Int("constituency", candidate.Constituency))
	h.publish(api.EventCandidateCreated, candidate)
	h.publishResult(candidate)
	h.sendJSON(w, candidate, http.StatusCreated)
}

// UpdateCandidate обрабатывает PUT /api/candidates/{id}
// Запрос заменяет запись целиком (в том числе число голосов)
func (h *ElectionHandler) UpdateCandidate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.CandidateRequest
	if !h.decode(w, r, &req) {
		return
	}
	id := r.PathValue("id")
	if req.ID != "" && req.ID != id {
		h.sendError(w, "id in body does not match path", http.StatusBadRequest)
		return
	}
	if !h.checkCandidate(ctx, w, r, req) {
		return
	}

	candidate := candidateFromRequest(req)
	candidate.ID = id
	if err := h.storage.UpdateCandidate(ctx, candidate); err != nil {
		switch {
		case errors.Is(err, storage.ErrCandidateNotFound):
			h.sendError(w, "candidate not found", http.StatusNotFound)
		case errors.Is(err, storage.ErrUnknownReference):
			h.sendError(w, "unknown district or party", http.StatusBadRequest)
		default:
			h.internalError(w, r, "failed to update candidate", err)
		}
		return
	}

	h.publish(api.EventCandidateUpdated, candidate)
	h.publishResult(candidate)
	h.sendJSON(w, candidate, http.StatusOK)
}

// DeleteCandidate обрабатывает DELETE /api/candidates/{id}
func (h *ElectionHandler) DeleteCandidate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := r.PathValue("id")

	candidate, err := h.storage.GetCandidate(ctx, id)
	if err == nil {
		err = h.storage.DeleteCandidate(ctx, id)
	}
	if err != nil {
		if errors.Is(err, storage.ErrCandidateNotFound) {
			h.sendError(w, "candidate not found", http.StatusNotFound)
			return
		}
		h.internalError(w, r, "failed to delete candidate", err)
		return
	}

	h.logger.InfoContext(ctx, "candidate deleted", slog.String("candidate_id", id))
	h.publish(api.EventCandidateDeleted, map[string]string{"id": id})
	h.publishResult(candidate)
	w.WriteHeader(http.StatusNoContent)
}

// LiveResults обрабатывает GET /api/results/live
func (h *ElectionHandler) LiveResults(w http.ResponseWriter, r *http.Request) {
	results, err := h.storage.LiveResults(r.Context())
	if err != nil {
		h.internalError(w, r, "failed to compute live results", err)
		return
	}
	h.sendJSON(w, results, http.StatusOK)
}

// checkCandidate валидирует запрос и ссылки на район и партию
func (h *ElectionHandler) checkCandidate(ctx context.Context, w http.ResponseWriter, r *http.Request, req api.CandidateRequest) bool {
	if err := validation.ValidateCandidate(req); err != nil {
		h.sendError(w, err.Error(), http.StatusBadRequest)
		return false
	}

	district, err := h.storage.GetDistrict(ctx, req.DistrictID)
	if err != nil {
		if errors.Is(err, storage.ErrDistrictNotFound) {
			h.sendError(w, "unknown district", http.StatusBadRequest)
			return false
		}
		h.internalError(w, r, "failed to get district", err)
		return false
	}
	if req.Constituency > district.Constituencies {
		h.sendError(w, "constituency out of range for district "+district.Name, http.StatusBadRequest)
		return false
	}

	if req.PartyID != "" {
		if _, err := h.storage.GetParty(ctx, req.PartyID); err != nil {
			if errors.Is(err, storage.ErrPartyNotFound) {
				h.sendError(w, "unknown party", http.StatusBadRequest)
				return false
			}
			h.internalError(w, r, "failed to get party", err)
			return false
		}
	}
	return true
}

func (h *ElectionHandler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		h.logger.WarnContext(r.Context(), "failed to decode request body", slog.Any("error", err))
		h.sendError(w, "invalid request body", http.StatusBadRequest)
		return false
	}
	return true
}

func (h *ElectionHandler) internalError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	h.logger.ErrorContext(r.Context(), msg, slog.Any("error", err))
	h.sendError(w, "internal server error", http.StatusInternalServerError)
}

func (h *ElectionHandler) publish(t api.EventType, payload any) {
	if h.publisher == nil {
		return
	}
	ev := api.Event{Type: t}
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			h.logger.Error("failed to encode event payload", "type", t, "error", err)
			return
		}
		ev.Payload = data
	}
	h.publisher.Publish(ev)
}

func (h *ElectionHandler) publishResult(c *api.Candidate) {
	h.publish(api.EventResultUpdated, map[string]any{
		"district_id":  c.DistrictID,
		"constituency": c.Constituency,
	})
}

func candidateFromRequest(req api.CandidateRequest) *api.Candidate {
	return &api.Candidate{
		Name:         req.Name,
		PartyID:      req.PartyID,
		DistrictID:   req.DistrictID,
		Constituency: req.Constituency,
		Votes:        req.Votes,
		Status:       req.Status,
		Age:          req.Age,
	}
}
