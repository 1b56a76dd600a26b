package domain

import (
	"strings"
	"time"
)

// SelectionKind is the state of the click state machine.
type SelectionKind string

const (
	NoSelection SelectionKind = "none"
	Selected    SelectionKind = "selected"
)

// Selection is NoSelection or Selected(Identifier).
type Selection struct {
	Kind       SelectionKind
	Identifier string
}

// Per-session state: the user location (resolved once when the session
// starts) and the most recent click identifier reported by the map.
type SessionState struct {
	ID        string    `json:"id"`
	User      Location  `json:"user"`
	LastClick *string   `json:"last_click,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewSession(id string, user Location, now time.Time) *SessionState {
	return &SessionState{
		ID:        id,
		User:      user,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Record a click on the map. A blank identifier is a click on a marker
// without a tooltip and is stored as Selected(""), which matches no
// facility. There is no way back to NoSelection.
func (s *SessionState) Click(identifier string, now time.Time) {
	identifier = strings.TrimSpace(identifier)
	s.LastClick = &identifier
	s.UpdatedAt = now
}

// Return the current state of the selection state machine.
func (s *SessionState) Selection() Selection {
	if s.LastClick == nil {
		return Selection{Kind: NoSelection}
	}
	return Selection{Kind: Selected, Identifier: *s.LastClick}
}
