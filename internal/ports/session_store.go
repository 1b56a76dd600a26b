package ports

import (
	"context"
	"errors"
	"nursery-locator/internal/domain"
)

var ErrSessionNotFound = errors.New("session not found")

// SessionStore keeps per-session interaction state.
type SessionStore interface {
	// Return the stored session or ErrSessionNotFound.
	Get(ctx context.Context, id string) (*domain.SessionState, error)
	// Insert or replace the session.
	Save(ctx context.Context, s *domain.SessionState) error
}
