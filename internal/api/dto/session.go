package dto

import (
	"bytes"
	"encoding/json"
	"nursery-locator/internal/domain"
	"time"
)

// Geolocation is kept raw so that whatever the browser sent (null, an error
// string, a PositionError object, mistyped fields) reaches the fallback
// instead of failing the request.
type CreateSessionRequest struct {
	Geolocation json.RawMessage `json:"geolocation"`
}

// Reading decodes the geolocation payload. Anything that is not an object
// with numeric latitude and longitude yields nil.
func (r CreateSessionRequest) Reading() *domain.GeoReading {
	raw := bytes.TrimSpace(r.Geolocation)
	if len(raw) == 0 || raw[0] != '{' {
		return nil
	}

	var reading domain.GeoReading
	if err := json.Unmarshal(raw, &reading); err != nil {
		return nil
	}
	return &reading
}

// Tooltip carries last_object_clicked_tooltip from the map widget.
type ClickRequest struct {
	Tooltip *string `json:"tooltip"`
}

type LocationResponse struct {
	Coordinates CoordinatesDTO `json:"coordinates"`
	Source      string         `json:"source"`
	Message     string         `json:"message"`
}

type SessionResponse struct {
	ID        string           `json:"id"`
	User      LocationResponse `json:"user"`
	LastClick *string          `json:"last_click,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
	View      ViewResponse     `json:"view"`
}

func NewSessionResponse(s *domain.SessionState, v domain.View) SessionResponse {
	return SessionResponse{
		ID: s.ID,
		User: LocationResponse{
			Coordinates: NewCoordinatesDTO(s.User.Coordinates),
			Source:      string(s.User.Source),
			Message:     s.User.Message,
		},
		LastClick: s.LastClick,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
		View:      NewViewResponse(v),
	}
}

// Messages sent over the view stream.
type WSMessage struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}
