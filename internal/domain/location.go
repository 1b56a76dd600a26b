package domain

// LocationSource records whether a resolved location came from the device.
type LocationSource string

const (
	LocationLive     LocationSource = "live"
	LocationFallback LocationSource = "fallback"
)

// GeoReading is whatever the geolocation capability produced.
// A reading with either field missing is malformed.
type GeoReading struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

// Complete reports whether both fields are present.
func (r *GeoReading) Complete() bool {
	return r != nil && r.Latitude != nil && r.Longitude != nil
}

// Location is the user position chosen for a session plus the status
// message shown to the user.
type Location struct {
	Coordinates Coordinates    `json:"coordinates"`
	Source      LocationSource `json:"source"`
	Message     string         `json:"message"`
}

func (l Location) IsFallback() bool { return l.Source == LocationFallback }
