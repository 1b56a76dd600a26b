package distance

import (
	"nursery-locator/internal/domain"

	"github.com/tidwall/geodesic"
)

// Geodesic solves the inverse geodesic problem on the WGS84 ellipsoid.
// It is the default calculator. tidwall/geodesic ports Karney's
// GeographicLib, accurate to well under a millimetre.
type Geodesic struct {
	ellipsoid *geodesic.Ellipsoid
}

func NewGeodesic() *Geodesic {
	return &Geodesic{ellipsoid: geodesic.WGS84}
}

func (g *Geodesic) DistanceKm(a, b domain.Coordinates) float64 {
	var meters float64
	g.ellipsoid.Inverse(a.Lat, a.Lon, b.Lat, b.Lon, &meters, nil, nil)
	return meters / 1000
}
