package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"nursery-locator/internal/domain"
	"nursery-locator/internal/platform/obs"
	"nursery-locator/internal/platform/telemetry"
	"nursery-locator/internal/ports"
	"time"

	"github.com/google/uuid"
)

type LocatorConfig struct {
	Facilities ports.FacilityRepository
	Boundary   *domain.BoundaryRegion
	Calculator ports.DistanceCalculator
	Sessions   ports.SessionStore
	Fallback   Fallback
	// Publisher is optional.
	Publisher ports.ViewPublisher
	// Clock defaults to time.Now.
	Clock func() time.Time
	// NewID defaults to random UUIDs.
	NewID func() string
}

// Locator ties the finder, the selection logic and the renderer to a loaded
// dataset and a session store. Facilities and boundary are read-only after
// construction and shared by every session.
type Locator struct {
	facilities []domain.Facility
	index      map[string]domain.Facility
	boundary   *domain.BoundaryRegion
	calc       ports.DistanceCalculator
	sessions   ports.SessionStore
	fallback   Fallback
	publisher  ports.ViewPublisher
	now        func() time.Time
	newID      func() string
}

// Load the facility set once and build a Locator around it.
func NewLocator(ctx context.Context, cfg LocatorConfig) (*Locator, error) {
	if cfg.Facilities == nil || cfg.Calculator == nil || cfg.Sessions == nil {
		return nil, errors.New("new locator: facilities, calculator and sessions are required")
	}
	if err := cfg.Fallback.Coordinates.Validate(); err != nil {
		return nil, fmt.Errorf("new locator: fallback: %w", err)
	}

	facilities, err := cfg.Facilities.ListFacilities(ctx)
	if err != nil {
		return nil, fmt.Errorf("new locator: list facilities: %w", err)
	}
	if len(facilities) == 0 {
		return nil, fmt.Errorf("new locator: %w", domain.ErrNoFacilities)
	}

	index := IndexFacilities(facilities)
	if len(index) != len(facilities) {
		return nil, errors.New("new locator: facility names must be unique")
	}

	l := &Locator{
		facilities: facilities,
		index:      index,
		boundary:   cfg.Boundary,
		calc:       cfg.Calculator,
		sessions:   cfg.Sessions,
		fallback:   cfg.Fallback,
		publisher:  cfg.Publisher,
		now:        cfg.Clock,
		newID:      cfg.NewID,
	}
	if l.now == nil {
		l.now = time.Now
	}
	if l.newID == nil {
		l.newID = uuid.NewString
	}

	return l, nil
}

// Resolve the user location once, persist a new session and render it.
func (l *Locator) StartSession(ctx context.Context, geo ports.Geolocator) (_ *domain.SessionState, _ domain.View, err error) {
	defer obs.Time(ctx, "locator.StartSession")(&err)

	var reading *domain.GeoReading
	if geo != nil {
		r, gerr := geo.CurrentPosition(ctx)
		if gerr != nil {
			slog.WarnContext(ctx, "geolocation failed", "req_id", obs.RequestID(ctx), "err", gerr)
		} else {
			reading = r
		}
	}

	loc := ResolveLocation(reading, l.fallback)
	telemetry.SessionsStarted.WithLabelValues(string(loc.Source)).Inc()
	if loc.IsFallback() {
		slog.WarnContext(ctx, "using fallback location", "req_id", obs.RequestID(ctx), "label", l.fallback.Label)
	} else {
		slog.InfoContext(ctx, "live location", "req_id", obs.RequestID(ctx), "coords", loc.Coordinates.String())
	}

	s := domain.NewSession(l.newID(), loc, l.now().UTC())
	if err := l.sessions.Save(ctx, s); err != nil {
		return nil, domain.View{}, fmt.Errorf("start session: save: %w", err)
	}

	view, err := l.render(s)
	if err != nil {
		return nil, domain.View{}, fmt.Errorf("start session: %w", err)
	}

	return s, view, nil
}

// Record a click and re-render. A blank identifier leaves the session as it
// was but still returns a fresh view.
func (l *Locator) Click(ctx context.Context, id, identifier string) (_ *domain.SessionState, _ domain.View, err error) {
	defer obs.Time(ctx, "locator.Click")(&err)

	s, err := l.sessions.Get(ctx, id)
	if err != nil {
		return nil, domain.View{}, fmt.Errorf("click: get session: %w", err)
	}

	s.Click(identifier, l.now().UTC())
	if err := l.sessions.Save(ctx, s); err != nil {
		return nil, domain.View{}, fmt.Errorf("click: save session: %w", err)
	}

	outcome := "unmatched"
	if _, ok := l.index[s.Selection().Identifier]; ok {
		outcome = "matched"
	}
	telemetry.Clicks.WithLabelValues(outcome).Inc()

	view, err := l.render(s)
	if err != nil {
		return nil, domain.View{}, fmt.Errorf("click: %w", err)
	}

	if l.publisher != nil {
		l.publisher.Publish(s.ID, view)
	}

	return s, view, nil
}

// Re-render a stored session from scratch.
func (l *Locator) View(ctx context.Context, id string) (_ domain.View, err error) {
	defer obs.Time(ctx, "locator.View")(&err)

	s, err := l.sessions.Get(ctx, id)
	if err != nil {
		return domain.View{}, fmt.Errorf("view: get session: %w", err)
	}

	view, err := l.render(s)
	if err != nil {
		return domain.View{}, fmt.Errorf("view: %w", err)
	}
	return view, nil
}

// Nearest facility to an arbitrary coordinate. No session involved.
func (l *Locator) Nearest(ctx context.Context, c domain.Coordinates) (domain.Match, error) {
	if err := c.Validate(); err != nil {
		return domain.Match{}, fmt.Errorf("nearest: %w", err)
	}
	telemetry.NearestQueries.Inc()
	return FindNearest(l.facilities, c, l.calc)
}

// All facilities ordered by distance from c.
func (l *Locator) Ranked(ctx context.Context, c domain.Coordinates) ([]domain.Match, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("ranked: %w", err)
	}
	return RankByDistance(l.facilities, c, l.calc), nil
}

// Facilities in source order. The slice is a copy.
func (l *Locator) Facilities() []domain.Facility {
	out := make([]domain.Facility, len(l.facilities))
	copy(out, l.facilities)
	return out
}

// Boundary returns the display region, or nil when none is configured.
func (l *Locator) Boundary() *domain.BoundaryRegion {
	return l.boundary
}

func (l *Locator) render(s *domain.SessionState) (domain.View, error) {
	user := s.User.Coordinates
	nearest, err := FindNearest(l.facilities, user, l.calc)
	if err != nil {
		return domain.View{}, fmt.Errorf("render: %w", err)
	}

	panel := ResolveSelection(l.index, user, nearest, s.Selection(), l.calc)

	return RenderView(RenderInput{
		Facilities: l.facilities,
		User:       s.User,
		Nearest:    nearest,
		Panel:      panel,
		Boundary:   l.boundary,
	}), nil
}
