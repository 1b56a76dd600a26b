package services

import (
	"fmt"
	"nursery-locator/internal/domain"
	"nursery-locator/internal/ports"
	"sort"
)

// Find the facility closest to ref.
//
// Every facility is measured with the same calculator. Ties resolve to the
// earliest facility in input order, so the result is deterministic for a
// given dataset.
func FindNearest(
	facilities []domain.Facility,
	ref domain.Coordinates,
	calc ports.DistanceCalculator,
) (domain.Match, error) {
	if len(facilities) == 0 {
		return domain.Match{}, fmt.Errorf("find nearest: %w", domain.ErrNoFacilities)
	}

	best := domain.Match{
		Facility:   facilities[0],
		DistanceKm: calc.DistanceKm(ref, facilities[0].Location),
	}

	for _, f := range facilities[1:] {
		d := calc.DistanceKm(ref, f.Location)
		// Strict comparison keeps the first of equally distant facilities.
		if d < best.DistanceKm {
			best = domain.Match{Facility: f, DistanceKm: d}
		}
	}

	return best, nil
}

// Return every facility paired with its distance from ref, closest first.
// Equal distances keep input order.
func RankByDistance(
	facilities []domain.Facility,
	ref domain.Coordinates,
	calc ports.DistanceCalculator,
) []domain.Match {
	matches := make([]domain.Match, 0, len(facilities))
	for _, f := range facilities {
		matches = append(matches, domain.Match{Facility: f, DistanceKm: calc.DistanceKm(ref, f.Location)})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].DistanceKm < matches[j].DistanceKm
	})

	return matches
}
