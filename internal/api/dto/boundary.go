package dto

import (
	"nursery-locator/internal/domain"

	"github.com/paulmach/orb/geojson"
)

type BoundaryResponse struct {
	Name    string                     `json:"name"`
	GeoJSON *geojson.FeatureCollection `json:"geojson"`
	Style   domain.OverlayStyle        `json:"style"`
}

func NewBoundaryResponse(b *domain.BoundaryRegion) BoundaryResponse {
	f := geojson.NewFeature(b.Geometry)
	f.Properties["name"] = b.Name

	fc := geojson.NewFeatureCollection()
	fc.Append(f)

	return BoundaryResponse{
		Name:    b.Name,
		GeoJSON: fc,
		Style:   domain.BoundaryStyle,
	}
}
