package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/iudanet/votekeeper/internal/server/storage"
	"github.com/iudanet/votekeeper/pkg/api"
)

// ListDistricts returns all districts ordered by province and name
func (s *Storage) ListDistricts(ctx context.Context) ([]api.District, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, province, constituencies
		FROM districts
		ORDER BY province, name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query districts: %w", err)
	}
	defer rows.Close()

	districts := make([]api.District, 0)
	for rows.Next() {
		var d api.District
		if err := rows.Scan(&d.ID, &d.Name, &d.Province, &d.Constituencies); err != nil {
			return nil, fmt.Errorf("failed to scan district: %w", err)
		}
		districts = append(districts, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	return districts, nil
}

// GetDistrict retrieves district by ID
// Returns ErrDistrictNotFound if district doesn't exist
func (s *Storage) GetDistrict(ctx context.Context, id string) (*api.District, error) {
	var d api.District
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, province, constituencies
		FROM districts
		WHERE id = ?
	`, id).Scan(&d.ID, &d.Name, &d.Province, &d.Constituencies)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrDistrictNotFound
		}
		return nil, fmt.Errorf("failed to get district: %w", err)
	}
	return &d, nil
}
