package domain

import "errors"

// ErrNoFacilities is returned when a facility set is empty.
var ErrNoFacilities = errors.New("no facilities loaded")

// Represents a single nursery site.
// Name is unique within a loaded dataset and is the key the map widget
// reports back when a marker is clicked. Facilities are loaded once and
// never mutated afterwards.
type Facility struct {
	Name            string
	Location        Coordinates
	Capacity        int
	PlantsAvailable int
	Contact         string
}

// A facility paired with its distance from a reference coordinate.
// Distances are always derived and never persisted.
type Match struct {
	Facility   Facility
	DistanceKm float64
}
