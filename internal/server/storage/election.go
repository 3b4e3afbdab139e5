package storage

import (
	"context"

	"github.com/iudanet/votekeeper/pkg/api"
)

// CandidateFilter ограничивает выборку кандидатов. Пустые поля не фильтруют.
type CandidateFilter struct {
	DistrictID   string
	PartyID      string
	Constituency int
}

// DistrictStorage defines interface for districts (read-only, seeded by migrations)
type DistrictStorage interface {
	// ListDistricts returns all districts ordered by province and name
	ListDistricts(ctx context.Context) ([]api.District, error)

	// GetDistrict returns ErrDistrictNotFound if district doesn't exist
	GetDistrict(ctx context.Context, id string) (*api.District, error)
}

// PartyStorage defines interface for party persistence
type PartyStorage interface {
	ListParties(ctx context.Context) ([]api.Party, error)

	// GetParty returns ErrPartyNotFound if party doesn't exist
	GetParty(ctx context.Context, id string) (*api.Party, error)

	// CreateParty returns ErrPartyAlreadyExists if the name is taken
	CreateParty(ctx context.Context, party *api.Party) error

	// UpdateParty returns ErrPartyNotFound if party doesn't exist
	UpdateParty(ctx context.Context, party *api.Party) error

	// DeleteParty removes the party, its candidates become independents.
	// Returns ErrPartyNotFound if party doesn't exist
	DeleteParty(ctx context.Context, id string) error
}

// CandidateStorage defines interface for candidate persistence
type CandidateStorage interface {
	ListCandidates(ctx context.Context, filter CandidateFilter) ([]api.Candidate, error)

	// GetCandidate returns ErrCandidateNotFound if candidate doesn't exist
	GetCandidate(ctx context.Context, id string) (*api.Candidate, error)

	// CreateCandidate returns ErrCandidateAlreadyExists for a duplicate ID
	// and ErrUnknownReference for a missing district or party
	CreateCandidate(ctx context.Context, candidate *api.Candidate) error

	// UpdateCandidate returns ErrCandidateNotFound if candidate doesn't exist
	UpdateCandidate(ctx context.Context, candidate *api.Candidate) error

	// DeleteCandidate returns ErrCandidateNotFound if candidate doesn't exist
	DeleteCandidate(ctx context.Context, id string) error

	// LiveResults returns the leading candidate of every constituency with votes totals
	LiveResults(ctx context.Context) ([]api.LiveResult, error)
}
