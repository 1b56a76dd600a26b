package services

import (
	"context"
	"errors"
	"fmt"
	"nursery-locator/internal/adapters/distance"
	"nursery-locator/internal/adapters/geolocation"
	"nursery-locator/internal/adapters/sessions"
	"nursery-locator/internal/domain"
	"nursery-locator/internal/ports"
	"sync"
	"testing"
	"time"
)

type recordingPublisher struct {
	mu    sync.Mutex
	views map[string][]domain.View
}

func (p *recordingPublisher) Publish(id string, v domain.View) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.views == nil {
		p.views = make(map[string][]domain.View)
	}
	p.views[id] = append(p.views[id], v)
}

type failingGeolocator struct{}

func (failingGeolocator) CurrentPosition(ctx context.Context) (*domain.GeoReading, error) {
	return nil, errors.New("permission denied")
}

func newTestLocator(t *testing.T, pub ports.ViewPublisher) *Locator {
	t.Helper()

	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	seq := 0

	l, err := NewLocator(context.Background(), LocatorConfig{
		Facilities: staticRepo{facilities: []domain.Facility{siteA, siteB}},
		Calculator: distance.NewGeodesic(),
		Sessions:   sessions.NewMemoryStore(time.Hour),
		Fallback:   khariarFallback,
		Publisher:  pub,
		Clock: func() time.Time {
			now = now.Add(time.Second)
			return now
		},
		NewID: func() string {
			seq++
			return fmt.Sprintf("session-%d", seq)
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return l
}

func TestLocatorFallbackSession(t *testing.T) {
	l := newTestLocator(t, nil)

	s, view, err := l.StartSession(context.Background(), geolocation.Unavailable{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if s.ID != "session-1" {
		t.Fatalf("expected session-1, got %q", s.ID)
	}
	if s.User.Coordinates != khariar || !s.User.IsFallback() {
		t.Fatalf("expected fallback at Khariar, got %+v", s.User)
	}
	if view.Status.Level != domain.StatusWarning || view.Status.Message != "Using fallback location (Khariar)." {
		t.Fatalf("expected fallback warning, got %+v", view.Status)
	}
	if view.Panel.Kind != domain.PanelNearest || view.Panel.Name != "B" || !near(view.Panel.DistanceKm, 38.128, 0.01) {
		t.Fatalf("expected nearest B at ~38.128 km, got %+v", view.Panel)
	}
	if view.Panel.DistanceText != "38.13 km" {
		t.Fatalf("unexpected distance text %q", view.Panel.DistanceText)
	}
}

func TestLocatorGeolocatorErrorFallsBack(t *testing.T) {
	l := newTestLocator(t, nil)

	s, _, err := l.StartSession(context.Background(), failingGeolocator{})
	if err != nil {
		t.Fatalf("geolocation errors must not fail the session: %v", err)
	}
	if !s.User.IsFallback() {
		t.Fatalf("expected fallback, got %+v", s.User)
	}
}

func TestLocatorLiveSession(t *testing.T) {
	l := newTestLocator(t, nil)

	s, view, err := l.StartSession(context.Background(), geolocation.Static{Lat: 20.1, Lon: 84.0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.User.Source != domain.LocationLive {
		t.Fatalf("expected live location, got %+v", s.User)
	}
	if view.Nearest.Facility.Name != "A" {
		t.Fatalf("expected A nearest to (20.1, 84.0), got %q", view.Nearest.Facility.Name)
	}
}

func TestLocatorClicks(t *testing.T) {
	pub := &recordingPublisher{}
	l := newTestLocator(t, pub)
	ctx := context.Background()

	s, _, err := l.StartSession(ctx, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, view, err := l.Click(ctx, s.ID, "A")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if view.Panel.Kind != domain.PanelSelected || view.Panel.Heading != "A" || !near(view.Panel.DistanceKm, 63.698, 0.01) {
		t.Fatalf("expected selected A at ~63.698 km, got %+v", view.Panel)
	}
	if view.Nearest.Facility.Name != "B" {
		t.Fatalf("nearest marker must stay on B, got %q", view.Nearest.Facility.Name)
	}

	// A click without a tooltip replaces the selection and shows the nearest panel.
	updated, view, err := l.Click(ctx, s.ID, "   ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sel := updated.Selection(); sel.Kind != domain.Selected || sel.Identifier != "" {
		t.Fatalf("expected Selected(\"\"), got %+v", sel)
	}
	if view.Panel.Kind != domain.PanelNearest || view.Panel.Name != "B" || view.Panel.DistanceKm != view.Nearest.DistanceKm {
		t.Fatalf("expected nearest panel for B after blank click, got %+v", view.Panel)
	}

	if _, view, err = l.Click(ctx, s.ID, "A"); err != nil || view.Panel.Name != "A" {
		t.Fatalf("reselecting A: panel %+v, err %v", view.Panel, err)
	}

	// Unmatched identifiers are kept but render the nearest panel.
	updated, view, err = l.Click(ctx, s.ID, "Your Location")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Selection().Identifier != "Your Location" {
		t.Fatalf("expected raw identifier stored, got %+v", updated.Selection())
	}
	if view.Panel.Kind != domain.PanelNearest || view.Panel.Name != "B" {
		t.Fatalf("expected nearest panel, got %+v", view.Panel)
	}

	again, err := l.View(ctx, s.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if again.Panel != view.Panel {
		t.Fatalf("re-render differs: %+v vs %+v", again.Panel, view.Panel)
	}

	if got := len(pub.views[s.ID]); got != 4 {
		t.Fatalf("expected 4 published views, got %d", got)
	}
}

func TestLocatorUnknownSession(t *testing.T) {
	l := newTestLocator(t, nil)

	if _, err := l.View(context.Background(), "nope"); !errors.Is(err, ports.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
	if _, _, err := l.Click(context.Background(), "nope", "A"); !errors.Is(err, ports.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestLocatorStatelessQueries(t *testing.T) {
	l := newTestLocator(t, nil)
	ctx := context.Background()

	m, err := l.Nearest(ctx, khariar)
	if err != nil || m.Facility.Name != "B" {
		t.Fatalf("expected B, got %+v (err %v)", m, err)
	}

	ranked, err := l.Ranked(ctx, khariar)
	if err != nil || len(ranked) != 2 || ranked[0].Facility.Name != "B" || ranked[1].Facility.Name != "A" {
		t.Fatalf("unexpected ranking %+v (err %v)", ranked, err)
	}

	if _, err := l.Nearest(ctx, domain.Coordinates{Lat: 100}); !errors.Is(err, domain.ErrInvalidCoordinates) {
		t.Fatalf("expected ErrInvalidCoordinates, got %v", err)
	}

	fs := l.Facilities()
	fs[0].Name = "changed"
	if l.Facilities()[0].Name != "A" {
		t.Fatalf("Facilities must return a copy")
	}
	if l.Boundary() != nil {
		t.Fatalf("expected no boundary")
	}
}

func TestNewLocatorErrors(t *testing.T) {
	base := func(repo ports.FacilityRepository) LocatorConfig {
		return LocatorConfig{
			Facilities: repo,
			Calculator: distance.NewGeodesic(),
			Sessions:   sessions.NewMemoryStore(0),
			Fallback:   khariarFallback,
		}
	}

	if _, err := NewLocator(context.Background(), base(staticRepo{})); !errors.Is(err, domain.ErrNoFacilities) {
		t.Fatalf("expected ErrNoFacilities, got %v", err)
	}

	dup := siteB
	dup.Name = "A"
	if _, err := NewLocator(context.Background(), base(staticRepo{facilities: []domain.Facility{siteA, dup}})); err == nil {
		t.Fatalf("expected duplicate names to be rejected")
	}

	boom := errors.New("boom")
	if _, err := NewLocator(context.Background(), base(staticRepo{err: boom})); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped repository error, got %v", err)
	}

	cfg := base(staticRepo{facilities: []domain.Facility{siteA}})
	cfg.Fallback.Coordinates.Lat = 120
	if _, err := NewLocator(context.Background(), cfg); !errors.Is(err, domain.ErrInvalidCoordinates) {
		t.Fatalf("expected invalid fallback to be rejected, got %v", err)
	}
}
