package services

import (
	"fmt"
	"html"
	"nursery-locator/internal/domain"
)

const (
	// Zoom used once the map is recentred on the nearest facility.
	FocusZoom = 13

	UserTooltip = "Your Location"
)

var (
	FacilityIcon = domain.MarkerIcon{Color: "green", Icon: "leaf"}
	UserIcon     = domain.MarkerIcon{Color: "blue", Icon: "user"}
	NearestIcon  = domain.MarkerIcon{Color: "red", Icon: "star"}
)

// Everything needed to draw one frame.
type RenderInput struct {
	Facilities []domain.Facility
	User       domain.Location
	Nearest    domain.Match
	Panel      domain.DetailPanel
	Boundary   *domain.BoundaryRegion
}

// Build the view model for one render. Pure: the same input always yields
// the same view.
func RenderView(in RenderInput) domain.View {
	markers := make([]domain.Marker, 0, len(in.Facilities)+2)
	for _, f := range in.Facilities {
		markers = append(markers, domain.Marker{
			Kind:     domain.MarkerFacility,
			Location: f.Location,
			Tooltip:  f.Name,
			Popup:    facilityPopup(f),
			Icon:     FacilityIcon,
		})
	}

	markers = append(markers,
		domain.Marker{
			Kind:     domain.MarkerUser,
			Location: in.User.Coordinates,
			Tooltip:  UserTooltip,
			Icon:     UserIcon,
		},
		domain.Marker{
			Kind:     domain.MarkerNearest,
			Location: in.Nearest.Facility.Location,
			Popup:    nearestPopup(in.Nearest),
			Icon:     NearestIcon,
		},
	)

	status := domain.Status{
		Level:   domain.StatusSuccess,
		Source:  in.User.Source,
		Message: in.User.Message,
	}
	if in.User.IsFallback() {
		status.Level = domain.StatusWarning
	}

	var overlay *domain.Overlay
	if in.Boundary != nil {
		inside := in.Boundary.Contains(in.User.Coordinates)
		status.InsideBoundary = &inside
		overlay = &domain.Overlay{
			Name:     in.Boundary.Name,
			Geometry: in.Boundary.Geometry,
			Style:    domain.BoundaryStyle,
		}
	}

	return domain.View{
		Map: domain.MapFrame{
			Center: in.Nearest.Facility.Location,
			Zoom:   FocusZoom,
		},
		Markers: markers,
		Overlay: overlay,
		Status:  status,
		Panel:   in.Panel,
		Nearest: in.Nearest,
	}
}

func facilityPopup(f domain.Facility) string {
	return fmt.Sprintf(
		"<b>%s</b><br>Capacity: %d<br>Plants: %d<br>Contact: %s",
		html.EscapeString(f.Name), f.Capacity, f.PlantsAvailable, html.EscapeString(f.Contact),
	)
}

func nearestPopup(m domain.Match) string {
	return fmt.Sprintf("<b>Nearest:</b> %s<br>%.2f km away", html.EscapeString(m.Facility.Name), m.DistanceKm)
}
