package domain

import (
	"testing"

	"github.com/paulmach/orb"
)

func TestBoundaryRegionContains(t *testing.T) {
	square := orb.Polygon{orb.Ring{
		{84.0, 20.0}, {84.5, 20.0}, {84.5, 20.8}, {84.0, 20.8}, {84.0, 20.0},
	}}

	cases := []struct {
		name   string
		region *BoundaryRegion
		point  Coordinates
		want   bool
	}{
		{"inside polygon", &BoundaryRegion{Geometry: square}, Coordinates{Lat: 20.56, Lon: 84.14}, true},
		{"outside polygon", &BoundaryRegion{Geometry: square}, Coordinates{Lat: 21.5, Lon: 84.14}, false},
		{"inside multipolygon", &BoundaryRegion{Geometry: orb.MultiPolygon{square}}, Coordinates{Lat: 20.1, Lon: 84.4}, true},
		{"nil region", nil, Coordinates{Lat: 20.56, Lon: 84.14}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.region.Contains(tc.point); got != tc.want {
				t.Fatalf("Contains(%v) = %v; want %v", tc.point, got, tc.want)
			}
		})
	}
}
