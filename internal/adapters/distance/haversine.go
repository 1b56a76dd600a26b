package distance

import (
	"nursery-locator/internal/domain"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
)

// Haversine treats the earth as a sphere of radius orb.EarthRadius.
type Haversine struct{}

func NewHaversine() *Haversine { return &Haversine{} }

func (Haversine) DistanceKm(a, b domain.Coordinates) float64 {
	return geo.DistanceHaversine(orb.Point{a.Lon, a.Lat}, orb.Point{b.Lon, b.Lat}) / 1000
}
