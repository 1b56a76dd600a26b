package distance

import (
	"math"
	"nursery-locator/internal/domain"
)

type MockPair struct {
	From, To domain.Coordinates
	Km       float64
}

// MockDistanceCalculator answers from a fixed table. Pairs are symmetric;
// unknown pairs are infinitely far away.
type MockDistanceCalculator struct {
	m     map[[2]domain.Coordinates]float64
	Calls int
}

func NewMockDistanceCalculator(pairs []MockPair) *MockDistanceCalculator {
	m := make(map[[2]domain.Coordinates]float64, 2*len(pairs))
	for _, p := range pairs {
		m[[2]domain.Coordinates{p.From, p.To}] = p.Km
		m[[2]domain.Coordinates{p.To, p.From}] = p.Km
	}
	return &MockDistanceCalculator{m: m}
}

func (p *MockDistanceCalculator) DistanceKm(a, b domain.Coordinates) float64 {
	p.Calls++
	if a == b {
		return 0
	}

	km, ok := p.m[[2]domain.Coordinates{a, b}]
	if !ok {
		return math.Inf(1)
	}
	return km
}
