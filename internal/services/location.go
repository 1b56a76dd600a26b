package services

import (
	"fmt"
	"nursery-locator/internal/domain"
	"strconv"
)

// Fallback is the position used whenever the device cannot provide one.
type Fallback struct {
	Coordinates domain.Coordinates
	Label       string
}

// Choose the user location for a session.
//
// A reading is used only when both fields are present and form a valid
// coordinate. Anything else, including a nil reading, selects the fallback.
// Resolution is never retried.
func ResolveLocation(reading *domain.GeoReading, fallback Fallback) domain.Location {
	if reading.Complete() {
		c := domain.Coordinates{Lat: *reading.Latitude, Lon: *reading.Longitude}
		if c.Validate() == nil {
			return domain.Location{
				Coordinates: c,
				Source:      domain.LocationLive,
				Message:     fmt.Sprintf("Your Location: (%s, %s)", formatDegrees(c.Lat), formatDegrees(c.Lon)),
			}
		}
	}

	return domain.Location{
		Coordinates: fallback.Coordinates,
		Source:      domain.LocationFallback,
		Message:     fmt.Sprintf("Using fallback location (%s).", fallback.Label),
	}
}

func formatDegrees(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
