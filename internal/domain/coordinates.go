package domain

import (
	"errors"
	"fmt"
	"math"
)

var ErrInvalidCoordinates = errors.New("invalid coordinates")

// Immutable geographic coordinates (latitude, longitude) in decimal degrees.
type Coordinates struct {
	Lat float64
	Lon float64
}

// Return coordinates as [lon, lat] for GeoJSON compatibility.
func (c Coordinates) CoordsToList() []float64 { return []float64{c.Lon, c.Lat} }

// Validate rejects non-finite values and values outside the WGS84 ranges.
func (c Coordinates) Validate() error {
	if math.IsNaN(c.Lat) || math.IsNaN(c.Lon) || math.IsInf(c.Lat, 0) || math.IsInf(c.Lon, 0) {
		return fmt.Errorf("%w: lat=%v lon=%v", ErrInvalidCoordinates, c.Lat, c.Lon)
	}
	if c.Lat < -90 || c.Lat > 90 || c.Lon < -180 || c.Lon > 180 {
		return fmt.Errorf("%w: lat=%v lon=%v", ErrInvalidCoordinates, c.Lat, c.Lon)
	}
	return nil
}

func (c Coordinates) String() string {
	return fmt.Sprintf("(%.4f, %.4f)", c.Lat, c.Lon)
}
