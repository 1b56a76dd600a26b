package dto

import "nursery-locator/internal/domain"

type CoordinatesDTO struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func NewCoordinatesDTO(c domain.Coordinates) CoordinatesDTO {
	return CoordinatesDTO{Latitude: c.Lat, Longitude: c.Lon}
}

type FacilityResponse struct {
	Name            string   `json:"name"`
	Latitude        float64  `json:"latitude"`
	Longitude       float64  `json:"longitude"`
	Capacity        int      `json:"capacity"`
	PlantsAvailable int      `json:"plants_available"`
	Contact         string   `json:"contact"`
	DistanceKm      *float64 `json:"distance_km,omitempty"`
}

func NewFacilityResponse(f domain.Facility) FacilityResponse {
	return FacilityResponse{
		Name:            f.Name,
		Latitude:        f.Location.Lat,
		Longitude:       f.Location.Lon,
		Capacity:        f.Capacity,
		PlantsAvailable: f.PlantsAvailable,
		Contact:         f.Contact,
	}
}

func NewMatchFacilityResponse(m domain.Match) FacilityResponse {
	res := NewFacilityResponse(m.Facility)
	d := m.DistanceKm
	res.DistanceKm = &d
	return res
}

type ListFacilitiesResponse struct {
	Facilities []FacilityResponse `json:"facilities"`
}

type MatchResponse struct {
	Facility     FacilityResponse `json:"facility"`
	DistanceKm   float64          `json:"distance_km"`
	DistanceText string           `json:"distance_text"`
}
