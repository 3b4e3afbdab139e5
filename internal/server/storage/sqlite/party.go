package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/iudanet/votekeeper/internal/server/storage"
	"github.com/iudanet/votekeeper/pkg/api"
)

const partyColumns = `id, name, short_name, color, created_at, updated_at`

func scanParty(row interface{ Scan(...any) error }) (*api.Party, error) {
	var (
		p                    api.Party
		createdAt, updatedAt int64
	)
	if err := row.Scan(&p.ID, &p.Name, &p.ShortName, &p.Color, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	p.CreatedAt = unixToTime(createdAt)
	p.UpdatedAt = unixToTime(updatedAt)
	return &p, nil
}

// ListParties returns all parties ordered by name
func (s *Storage) ListParties(ctx context.Context) ([]api.Party, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+partyColumns+` FROM parties ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to query parties: %w", err)
	}
	defer rows.Close()

	parties := make([]api.Party, 0)
	for rows.Next() {
		p, err := scanParty(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan party: %w", err)
		}
		parties = append(parties, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	return parties, nil
}

// GetParty retrieves party by ID
// Returns ErrPartyNotFound if party doesn't exist
func (s *Storage) GetParty(ctx context.Context, id string) (*api.Party, error) {
	p, err := scanParty(s.db.QueryRowContext(ctx, `SELECT `+partyColumns+` FROM parties WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrPartyNotFound
		}
		return nil, fmt.Errorf("failed to get party: %w", err)
	}
	return p, nil
}

// CreateParty inserts a new party. CreatedAt/UpdatedAt are set by storage.
func (s *Storage) CreateParty(ctx context.Context, party *api.Party) error {
	now := s.timestamp()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO parties (`+partyColumns+`)
		VALUES (?, ?, ?, ?, ?, ?)
	`, party.ID, party.Name, party.ShortName, party.Color, now.Unix(), now.Unix())
	if err != nil {
		if isUniqueViolation(err) {
			return storage.ErrPartyAlreadyExists
		}
		return fmt.Errorf("failed to insert party: %w", err)
	}
	party.CreatedAt = now
	party.UpdatedAt = now
	return nil
}

// UpdateParty replaces name, short name and color
func (s *Storage) UpdateParty(ctx context.Context, party *api.Party) error {
	now := s.timestamp()
	res, err := s.db.ExecContext(ctx, `
		UPDATE parties
		SET name = ?, short_name = ?, color = ?, updated_at = ?
		WHERE id = ?
	`, party.Name, party.ShortName, party.Color, now.Unix(), party.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return storage.ErrPartyAlreadyExists
		}
		return fmt.Errorf("failed to update party: %w", err)
	}
	if err := expectAffected(res, storage.ErrPartyNotFound); err != nil {
		return err
	}

	updated, err := s.GetParty(ctx, party.ID)
	if err != nil {
		return err
	}
	*party = *updated
	return nil
}

// DeleteParty deletes party by ID, candidates of the party become independents
func (s *Storage) DeleteParty(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM parties WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete party: %w", err)
	}
	return expectAffected(res, storage.ErrPartyNotFound)
}
