package domain

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// Fixed overlay styling applied to the boundary polygon.
type OverlayStyle struct {
	FillColor   string  `json:"fillColor"`
	Color       string  `json:"color"`
	Weight      int     `json:"weight"`
	FillOpacity float64 `json:"fillOpacity"`
}

var BoundaryStyle = OverlayStyle{
	FillColor:   "yellow",
	Color:       "black",
	Weight:      2,
	FillOpacity: 0.1,
}

// BoundaryRegion is a display-only polygon or multipolygon.
// Nothing in distance computation or selection depends on it.
type BoundaryRegion struct {
	Name     string
	Geometry orb.Geometry
}

// Contains reports whether c falls inside the region.
func (b *BoundaryRegion) Contains(c Coordinates) bool {
	if b == nil || b.Geometry == nil {
		return false
	}

	pt := orb.Point{c.Lon, c.Lat}
	switch g := b.Geometry.(type) {
	case orb.Polygon:
		return planar.PolygonContains(g, pt)
	case orb.MultiPolygon:
		return planar.MultiPolygonContains(g, pt)
	default:
		return false
	}
}
