package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"nursery-locator/internal/domain"
)

// Initialize the facilities schema.
func InitSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createFacilitiesQuery := `
	CREATE TABLE IF NOT EXISTS facilities (
		name TEXT PRIMARY KEY,
		position INTEGER NOT NULL,
		latitude DOUBLE PRECISION NOT NULL,
		longitude DOUBLE PRECISION NOT NULL,
		capacity INTEGER NOT NULL DEFAULT 0,
		plants_available INTEGER NOT NULL DEFAULT 0,
		contact TEXT NOT NULL DEFAULT ''
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_facilities_position
    ON facilities(position);
	`

	statements := []string{
		createFacilitiesQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

// Upsert the given facilities by name, keeping their order, and remove rows
// whose names are no longer in the set.
func SeedFacilities(ctx context.Context, db *sql.DB, facilities []domain.Facility) error {
	if db == nil {
		return errors.New("seed facilities: DB is nil")
	}
	if len(facilities) == 0 {
		return fmt.Errorf("seed facilities: %w", ErrNoFacilities)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("seed facilities: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := `
	INSERT INTO facilities (
		name,
		position,
		latitude,
		longitude,
		capacity,
		plants_available,
		contact
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	ON CONFLICT (name) DO UPDATE SET
		position = EXCLUDED.position,
		latitude = EXCLUDED.latitude,
		longitude = EXCLUDED.longitude,
		capacity = EXCLUDED.capacity,
		plants_available = EXCLUDED.plants_available,
		contact = EXCLUDED.contact;
	`
	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("seed facilities: prepare insert: %w", err)
	}
	defer stmt.Close()

	names := make([]string, 0, len(facilities))
	for i, f := range facilities {
		if _, err := stmt.ExecContext(ctx, f.Name, i+1, f.Location.Lat, f.Location.Lon, f.Capacity, f.PlantsAvailable, f.Contact); err != nil {
			return fmt.Errorf("seed facilities: upsert name=%q: %w", f.Name, err)
		}
		names = append(names, f.Name)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM facilities WHERE name <> ALL($1);`, names); err != nil {
		return fmt.Errorf("seed facilities: remove stale rows: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed facilities: commit tx: %w", err)
	}

	return nil
}
