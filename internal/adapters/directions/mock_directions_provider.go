package directions

import (
	"context"
	"fmt"
	"sync"

	"petcare-route-service/internal/domain"
	"petcare-route-service/internal/ports"
)

type MockLeg struct {
	From, To domain.Coordinate
	Meters   float64
	Seconds  float64
}

// MockDirectionsProvider serves fixed legs for tests. Pairs not present
// in the fixture fail, exercising callers' per-leg fallback handling.
// Safe for concurrent use since callers may issue leg lookups in parallel.
type MockDirectionsProvider struct {
	m map[string]ports.Leg

	mu    sync.Mutex
	calls int
}

func NewMockDirectionsProvider(legs []MockLeg) *MockDirectionsProvider {
	m := make(map[string]ports.Leg, len(legs))
	for _, l := range legs {
		m[pairKey(l.From, l.To)] = ports.Leg{DistanceMeters: l.Meters, DurationSeconds: l.Seconds}
	}
	return &MockDirectionsProvider{m: m}
}

func (p *MockDirectionsProvider) Route(ctx context.Context, from, to domain.Coordinate) (ports.Leg, error) {
	p.mu.Lock()
	p.calls++
	p.mu.Unlock()

	leg, ok := p.m[pairKey(from, to)]
	if !ok {
		return ports.Leg{}, &ports.RouteError{From: from, To: to, Reason: "no fixture for pair"}
	}
	return leg, nil
}

// Calls reports how many lookups the provider has served.
func (p *MockDirectionsProvider) Calls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls
}

func pairKey(from, to domain.Coordinate) string {
	return fmt.Sprintf("%.5f,%.5f|%.5f,%.5f", from.Lat, from.Lon, to.Lat, to.Lon)
}
