package services

import (
	"math"
	"nursery-locator/internal/domain"
	"testing"
)

func TestResolveLocation(t *testing.T) {
	tests := []struct {
		name        string
		reading     *domain.GeoReading
		wantSource  domain.LocationSource
		wantCoords  domain.Coordinates
		wantMessage string
	}{
		{
			name:        "live reading",
			reading:     &domain.GeoReading{Latitude: ptr(20.5), Longitude: ptr(84.5)},
			wantSource:  domain.LocationLive,
			wantCoords:  domain.Coordinates{Lat: 20.5, Lon: 84.5},
			wantMessage: "Your Location: (20.5, 84.5)",
		},
		{
			name:        "no reading",
			reading:     nil,
			wantSource:  domain.LocationFallback,
			wantCoords:  khariar,
			wantMessage: "Using fallback location (Khariar).",
		},
		{
			name:        "missing longitude",
			reading:     &domain.GeoReading{Latitude: ptr(20.5)},
			wantSource:  domain.LocationFallback,
			wantCoords:  khariar,
			wantMessage: "Using fallback location (Khariar).",
		},
		{
			name:        "latitude out of range",
			reading:     &domain.GeoReading{Latitude: ptr(95), Longitude: ptr(84.5)},
			wantSource:  domain.LocationFallback,
			wantCoords:  khariar,
			wantMessage: "Using fallback location (Khariar).",
		},
		{
			name:        "not a number",
			reading:     &domain.GeoReading{Latitude: ptr(math.NaN()), Longitude: ptr(84.5)},
			wantSource:  domain.LocationFallback,
			wantCoords:  khariar,
			wantMessage: "Using fallback location (Khariar).",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveLocation(tt.reading, khariarFallback)

			if got.Source != tt.wantSource {
				t.Fatalf("expected source %q, got %q", tt.wantSource, got.Source)
			}
			if got.Coordinates != tt.wantCoords {
				t.Fatalf("expected %v, got %v", tt.wantCoords, got.Coordinates)
			}
			if got.Message != tt.wantMessage {
				t.Fatalf("expected message %q, got %q", tt.wantMessage, got.Message)
			}
		})
	}
}
