package geolocation

import (
	"context"
	"nursery-locator/internal/domain"
)

// RequestReading is the reading the browser posted when it opened a session.
// A nil pointer means the browser produced nothing.
type RequestReading struct {
	Reading *domain.GeoReading
}

func (r RequestReading) CurrentPosition(ctx context.Context) (*domain.GeoReading, error) {
	return r.Reading, nil
}

// Static always reports the same position.
type Static struct {
	Lat, Lon float64
}

func (s Static) CurrentPosition(ctx context.Context) (*domain.GeoReading, error) {
	lat, lon := s.Lat, s.Lon
	return &domain.GeoReading{Latitude: &lat, Longitude: &lon}, nil
}

// Unavailable never has a position.
type Unavailable struct{}

func (Unavailable) CurrentPosition(ctx context.Context) (*domain.GeoReading, error) {
	return nil, nil
}
