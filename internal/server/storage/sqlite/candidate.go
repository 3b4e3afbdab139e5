package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/iudanet/votekeeper/internal/server/storage"
	"github.com/iudanet/votekeeper/pkg/api"
)

const candidateColumns = `id, name, party_id, district_id, constituency, votes, status, age, created_at, updated_at`

func scanCandidate(row interface{ Scan(...any) error }) (*api.Candidate, error) {
	var (
		c                    api.Candidate
		partyID              sql.NullString
		status               string
		createdAt, updatedAt int64
	)
	err := row.Scan(&c.ID, &c.Name, &partyID, &c.DistrictID, &c.Constituency,
		&c.Votes, &status, &c.Age, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}
	c.PartyID = partyID.String
	c.Status = api.CandidateStatus(status)
	c.CreatedAt = unixToTime(createdAt)
	c.UpdatedAt = unixToTime(updatedAt)
	return &c, nil
}

// ListCandidates returns candidates matching the filter, highest votes first
func (s *Storage) ListCandidates(ctx context.Context, filter storage.CandidateFilter) ([]api.Candidate, error) {
	var (
		where []string
		args  []any
	)
	if filter.DistrictID != "" {
		where = append(where, "district_id = ?")
		args = append(args, filter.DistrictID)
	}
	if filter.PartyID != "" {
		where = append(where, "party_id = ?")
		args = append(args, filter.PartyID)
	}
	if filter.Constituency > 0 {
		where = append(where, "constituency = ?")
		args = append(args, filter.Constituency)
	}

	query := `SELECT ` + candidateColumns + ` FROM candidates`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY district_id, constituency, votes DESC, name`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query candidates: %w", err)
	}
	defer rows.Close()

	candidates := make([]api.Candidate, 0)
	for rows.Next() {
		c, err := scanCandidate(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan candidate: %w", err)
		}
		candidates = append(candidates, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	return candidates, nil
}

// GetCandidate retrieves candidate by ID
// Returns ErrCandidateNotFound if candidate doesn't exist
func (s *Storage) GetCandidate(ctx context.Context, id string) (*api.Candidate, error) {
	c, err := scanCandidate(s.db.QueryRowContext(ctx, `SELECT `+candidateColumns+` FROM candidates WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrCandidateNotFound
		}
		return nil, fmt.Errorf("failed to get candidate: %w", err)
	}
	return c, nil
}

// CreateCandidate inserts a new candidate
func (s *Storage) CreateCandidate(ctx context.Context, candidate *api.Candidate) error {
	if candidate.Status == "" {
		candidate.Status = api.CandidateStatusContesting
	}
	now := s.timestamp()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO candidates (`+candidateColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		candidate.ID,
		candidate.Name,
		nullString(candidate.PartyID),
		candidate.DistrictID,
		candidate.Constituency,
		candidate.Votes,
		string(candidate.Status),
		candidate.Age,
		now.Unix(),
		now.Unix(),
	)
	if err != nil {
		switch {
		case isUniqueViolation(err):
			return storage.ErrCandidateAlreadyExists
		case isForeignKeyViolation(err):
			return storage.ErrUnknownReference
		}
		return fmt.Errorf("failed to insert candidate: %w", err)
	}
	candidate.CreatedAt = now
	candidate.UpdatedAt = now
	return nil
}

// UpdateCandidate replaces all mutable fields of the candidate
func (s *Storage) UpdateCandidate(ctx context.Context, candidate *api.Candidate) error {
	if candidate.Status == "" {
		candidate.Status = api.CandidateStatusContesting
	}
	res, err := s.db.ExecContext(ctx, `
		UPDATE candidates
		SET name = ?, party_id = ?, district_id = ?, constituency = ?,
		    votes = ?, status = ?, age = ?, updated_at = ?
		WHERE id = ?
	`,
		candidate.Name,
		nullString(candidate.PartyID),
		candidate.DistrictID,
		candidate.Constituency,
		candidate.Votes,
		string(candidate.Status),
		candidate.Age,
		s.timestamp().Unix(),
		candidate.ID,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return storage.ErrUnknownReference
		}
		return fmt.Errorf("failed to update candidate: %w", err)
	}
	if err := expectAffected(res, storage.ErrCandidateNotFound); err != nil {
		return err
	}

	updated, err := s.GetCandidate(ctx, candidate.ID)
	if err != nil {
		return err
	}
	*candidate = *updated
	return nil
}

// DeleteCandidate deletes candidate by ID
func (s *Storage) DeleteCandidate(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM candidates WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete candidate: %w", err)
	}
	return expectAffected(res, storage.ErrCandidateNotFound)
}

// LiveResults returns the leader of every constituency that has candidates.
// При равенстве голосов лидер тот, кто зарегистрирован раньше.
func (s *Storage) LiveResults(ctx context.Context) ([]api.LiveResult, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT c.district_id, c.constituency, c.id, c.name, COALESCE(c.party_id, ''),
		       c.votes, seat.total, seat.n
		FROM candidates c
		JOIN (
			SELECT district_id, constituency,
			       SUM(votes) AS total, COUNT(*) AS n, MAX(votes) AS top
			FROM candidates
			GROUP BY district_id, constituency
		) seat
		  ON seat.district_id = c.district_id
		 AND seat.constituency = c.constituency
		 AND seat.top = c.votes
		ORDER BY c.district_id, c.constituency, c.created_at, c.id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query live results: %w", err)
	}
	defer rows.Close()

	results := make([]api.LiveResult, 0)
	for rows.Next() {
		var r api.LiveResult
		if err := rows.Scan(&r.DistrictID, &r.Constituency, &r.LeaderID, &r.LeaderName,
			&r.PartyID, &r.LeaderVotes, &r.TotalVotes, &r.Candidates); err != nil {
			return nil, fmt.Errorf("failed to scan live result: %w", err)
		}
		// строки отсортированы, при ничьей берем первую по участку
		if n := len(results); n > 0 &&
			results[n-1].DistrictID == r.DistrictID &&
			results[n-1].Constituency == r.Constituency {
			continue
		}
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	return results, nil
}
