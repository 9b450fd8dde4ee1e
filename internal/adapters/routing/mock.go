package routing

import (
	"context"
	"delivery-optimizer/internal/domain"
	"fmt"
)

type MockLeg struct {
	From, To    domain.Coordinates
	DistanceKm  float64
	DurationMin float64
}

type pairKey struct {
	from, to domain.Coordinates
}

// MockRouteProvider serves fixed legs and route candidates from memory.
// Lookups against pairs that were never registered fail loudly so tests
// catch fixture gaps instead of planning over zero legs.
type MockRouteProvider struct {
	legs   map[pairKey]domain.RouteLeg
	routes map[pairKey][]domain.RouteCandidate
}

func NewMockRouteProvider(legs []MockLeg) *MockRouteProvider {
	m := make(map[pairKey]domain.RouteLeg, len(legs))
	for _, l := range legs {
		m[pairKey{from: l.From, to: l.To}] = domain.RouteLeg{DistanceKm: l.DistanceKm, DurationMin: l.DurationMin}
	}
	return &MockRouteProvider{legs: m, routes: make(map[pairKey][]domain.RouteCandidate)}
}

// SetRoutes registers the candidates GetRoutes returns for one pair.
func (p *MockRouteProvider) SetRoutes(from, to domain.Coordinates, candidates []domain.RouteCandidate) {
	p.routes[pairKey{from: from, to: to}] = candidates
}

func (p *MockRouteProvider) GetRoutes(ctx context.Context, origin, destination domain.Coordinates) ([]domain.RouteCandidate, error) {
	rs, ok := p.routes[pairKey{from: origin, to: destination}]
	if !ok {
		return nil, fmt.Errorf("missing routes %v -> %v", origin, destination)
	}
	return rs, nil
}

func (p *MockRouteProvider) GetLeg(ctx context.Context, origin, destination domain.Coordinates) (domain.RouteLeg, error) {
	leg, ok := p.legs[pairKey{from: origin, to: destination}]
	if !ok {
		return domain.RouteLeg{}, fmt.Errorf("missing leg %v -> %v", origin, destination)
	}
	return leg, nil
}

// MockMatrixProvider answers batched leg-matrix lookups from the same
// fixture the pairwise mock uses.
type MockMatrixProvider struct {
	*MockRouteProvider
}

func NewMockMatrixProvider(legs []MockLeg) *MockMatrixProvider {
	return &MockMatrixProvider{MockRouteProvider: NewMockRouteProvider(legs)}
}

func (p *MockMatrixProvider) GetLegs(ctx context.Context, points []domain.Coordinates) ([][]domain.RouteLeg, error) {
	legs := make([][]domain.RouteLeg, len(points))
	for i := range points {
		legs[i] = make([]domain.RouteLeg, len(points))
		for j := range points {
			if i == j {
				continue
			}
			leg, err := p.GetLeg(ctx, points[i], points[j])
			if err != nil {
				return nil, err
			}
			legs[i][j] = leg
		}
	}
	return legs, nil
}
