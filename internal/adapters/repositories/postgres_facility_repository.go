package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"nursery-locator/internal/domain"
	"nursery-locator/internal/platform/obs"
)

// Postgres-backed implementation of the FacilityRepository port.
type PostgresFacilityRepository struct{ DB *sql.DB }

func NewPostgresFacilityRepository(db *sql.DB) *PostgresFacilityRepository {
	return &PostgresFacilityRepository{DB: db}
}

// Return all facilities stored in the database, in import order.
func (s *PostgresFacilityRepository) ListFacilities(ctx context.Context) (_ []domain.Facility, err error) {
	defer obs.Time(ctx, "facilities.postgres.List")(&err)

	if s.DB == nil {
		return nil, errors.New("postgres facility repository: DB is nil")
	}

	query := `
	SELECT
		name,
		latitude,
		longitude,
		capacity,
		plants_available,
		contact
	FROM facilities
	ORDER BY position;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list facilities: query facilities table: %w", err)
	}
	defer rows.Close()

	facilities := make([]domain.Facility, 0, 64)
	for rows.Next() {
		var f domain.Facility
		if err := rows.Scan(&f.Name, &f.Location.Lat, &f.Location.Lon, &f.Capacity, &f.PlantsAvailable, &f.Contact); err != nil {
			return nil, fmt.Errorf("list facilities: scan row: %w", err)
		}
		facilities = append(facilities, f)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list facilities: row iteration: %w", err)
	}

	if len(facilities) == 0 {
		return nil, fmt.Errorf("list facilities: %w", ErrNoFacilities)
	}

	return facilities, nil
}
