package ports

import (
	"context"
	"nursery-locator/internal/domain"
)

// Port: a boundary for retrieving Facility records from a data source.
type FacilityRepository interface {
	// Retrieve all facilities in source order.
	ListFacilities(ctx context.Context) ([]domain.Facility, error)
}
