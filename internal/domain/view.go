package domain

import "github.com/paulmach/orb"

type MarkerKind string

const (
	MarkerFacility MarkerKind = "facility"
	MarkerUser     MarkerKind = "user"
	MarkerNearest  MarkerKind = "nearest"
)

type MarkerIcon struct {
	Color string
	Icon  string
}

// Marker is one pin handed to the map widget. Tooltip doubles as the
// identifier the widget reports back on click.
type Marker struct {
	Kind     MarkerKind
	Location Coordinates
	Tooltip  string
	Popup    string
	Icon     MarkerIcon
}

type MapFrame struct {
	Center Coordinates
	Zoom   int
}

type Overlay struct {
	Name     string
	Geometry orb.Geometry
	Style    OverlayStyle
}

type StatusLevel string

const (
	StatusSuccess StatusLevel = "success"
	StatusWarning StatusLevel = "warning"
)

type Status struct {
	Level          StatusLevel
	Source         LocationSource
	Message        string
	InsideBoundary *bool
}

type PanelKind string

const (
	PanelSelected PanelKind = "selected"
	PanelNearest  PanelKind = "nearest"
)

// DetailPanel describes the facility shown below the map.
type DetailPanel struct {
	Kind            PanelKind
	Heading         string
	Name            string
	DistanceKm      float64
	DistanceText    string
	Capacity        int
	PlantsAvailable int
	Contact         string
}

// View is one complete render. It is recomputed from scratch on every
// interaction.
type View struct {
	Map     MapFrame
	Markers []Marker
	Overlay *Overlay
	Status  Status
	Panel   DetailPanel
	Nearest Match
}
