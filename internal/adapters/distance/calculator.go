package distance

import (
	"fmt"
	"nursery-locator/internal/ports"
	"strings"
)

const (
	MethodGeodesic  = "geodesic"
	MethodHaversine = "haversine"
)

// New returns the calculator configured for the whole scene.
func New(method string) (ports.DistanceCalculator, error) {
	switch strings.ToLower(strings.TrimSpace(method)) {
	case "", MethodGeodesic:
		return NewGeodesic(), nil
	case MethodHaversine:
		return NewHaversine(), nil
	default:
		return nil, fmt.Errorf("distance calculator: unknown method %q", method)
	}
}
