package ports

import (
	"context"
	"nursery-locator/internal/domain"
)

// Geolocator reads the device position once.
// A nil reading (or an error) means the position is unavailable.
type Geolocator interface {
	CurrentPosition(ctx context.Context) (*domain.GeoReading, error)
}
