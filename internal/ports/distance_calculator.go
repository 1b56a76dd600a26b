package ports

import "nursery-locator/internal/domain"

// Contract for computing surface distance between two coordinates.
// One implementation is used for a whole scene so nearest-neighbour
// ordering stays consistent.
type DistanceCalculator interface {
	// Return the distance between a and b in kilometres.
	DistanceKm(a, b domain.Coordinates) float64
}
