package services

import (
	"context"
	"math"
	"nursery-locator/internal/domain"
)

var (
	khariar = domain.Coordinates{Lat: 20.56, Lon: 84.14}

	siteA = domain.Facility{Name: "A", Location: domain.Coordinates{Lat: 20.0, Lon: 84.0}, Capacity: 100, PlantsAvailable: 50, Contact: "111"}
	siteB = domain.Facility{Name: "B", Location: domain.Coordinates{Lat: 20.5, Lon: 84.5}, Capacity: 200, PlantsAvailable: 80, Contact: "222"}
	siteC = domain.Facility{Name: "C", Location: domain.Coordinates{Lat: 20.7, Lon: 84.2}, Capacity: 150, PlantsAvailable: 60, Contact: "333"}
	siteD = domain.Facility{Name: "D", Location: domain.Coordinates{Lat: 20.3, Lon: 84.6}, Capacity: 90, PlantsAvailable: 40, Contact: "444"}

	khariarFallback = Fallback{Coordinates: khariar, Label: "Khariar"}
)

type staticRepo struct {
	facilities []domain.Facility
	err        error
}

func (r staticRepo) ListFacilities(ctx context.Context) ([]domain.Facility, error) {
	return r.facilities, r.err
}

func near(a, b, tol float64) bool { return math.Abs(a-b) <= tol }

func ptr(v float64) *float64 { return &v }
