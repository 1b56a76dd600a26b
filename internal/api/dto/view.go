package dto

import (
	"fmt"
	"nursery-locator/internal/domain"

	"github.com/paulmach/orb/geojson"
)

type IconResponse struct {
	Color string `json:"color"`
	Icon  string `json:"icon"`
}

type MarkerResponse struct {
	Kind     string         `json:"kind"`
	Location CoordinatesDTO `json:"location"`
	Tooltip  string         `json:"tooltip,omitempty"`
	Popup    string         `json:"popup,omitempty"`
	Icon     IconResponse   `json:"icon"`
}

type MapResponse struct {
	Center CoordinatesDTO `json:"center"`
	Zoom   int            `json:"zoom"`
}

type OverlayResponse struct {
	Name    string              `json:"name"`
	GeoJSON *geojson.Geometry   `json:"geojson"`
	Style   domain.OverlayStyle `json:"style"`
}

type StatusResponse struct {
	Level          string `json:"level"`
	Source         string `json:"source"`
	Message        string `json:"message"`
	InsideBoundary *bool  `json:"inside_boundary,omitempty"`
}

type PanelResponse struct {
	Kind            string  `json:"kind"`
	Heading         string  `json:"heading"`
	Name            string  `json:"name"`
	DistanceKm      float64 `json:"distance_km"`
	DistanceText    string  `json:"distance_text"`
	Capacity        int     `json:"capacity"`
	PlantsAvailable int     `json:"plants_available"`
	Contact         string  `json:"contact"`
}

type ViewResponse struct {
	Map     MapResponse      `json:"map"`
	Markers []MarkerResponse `json:"markers"`
	Overlay *OverlayResponse `json:"overlay,omitempty"`
	Status  StatusResponse   `json:"status"`
	Panel   PanelResponse    `json:"panel"`
	Nearest MatchResponse    `json:"nearest"`
}

func NewMatchResponse(m domain.Match) MatchResponse {
	return MatchResponse{
		Facility:     NewFacilityResponse(m.Facility),
		DistanceKm:   m.DistanceKm,
		DistanceText: fmt.Sprintf("%.2f km", m.DistanceKm),
	}
}

func NewViewResponse(v domain.View) ViewResponse {
	markers := make([]MarkerResponse, 0, len(v.Markers))
	for _, m := range v.Markers {
		markers = append(markers, MarkerResponse{
			Kind:     string(m.Kind),
			Location: NewCoordinatesDTO(m.Location),
			Tooltip:  m.Tooltip,
			Popup:    m.Popup,
			Icon:     IconResponse{Color: m.Icon.Color, Icon: m.Icon.Icon},
		})
	}

	var overlay *OverlayResponse
	if v.Overlay != nil {
		overlay = &OverlayResponse{
			Name:    v.Overlay.Name,
			GeoJSON: geojson.NewGeometry(v.Overlay.Geometry),
			Style:   v.Overlay.Style,
		}
	}

	return ViewResponse{
		Map: MapResponse{
			Center: NewCoordinatesDTO(v.Map.Center),
			Zoom:   v.Map.Zoom,
		},
		Markers: markers,
		Overlay: overlay,
		Status: StatusResponse{
			Level:          string(v.Status.Level),
			Source:         string(v.Status.Source),
			Message:        v.Status.Message,
			InsideBoundary: v.Status.InsideBoundary,
		},
		Panel: PanelResponse{
			Kind:            string(v.Panel.Kind),
			Heading:         v.Panel.Heading,
			Name:            v.Panel.Name,
			DistanceKm:      v.Panel.DistanceKm,
			DistanceText:    v.Panel.DistanceText,
			Capacity:        v.Panel.Capacity,
			PlantsAvailable: v.Panel.PlantsAvailable,
			Contact:         v.Panel.Contact,
		},
		Nearest: NewMatchResponse(v.Nearest),
	}
}
