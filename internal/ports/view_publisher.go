package ports

import "nursery-locator/internal/domain"

// ViewPublisher pushes a freshly rendered view to anyone watching a session.
type ViewPublisher interface {
	Publish(sessionID string, view domain.View)
}
