package services

import (
	"delivery-optimizer/internal/domain"
	"fmt"
)

// NormalizeCandidates validates raw candidates from the routing
// collaborator and normalizes their congestion factor into [1.0, inf),
// where 1.0 means free flow. Missing traffic data (factor 0) and
// faster-than-free-flow observations both normalize to 1.0.
// Input order is preserved and the input slice is never mutated.
func NormalizeCandidates(candidates []domain.RouteCandidate) ([]domain.RouteCandidate, error) {
	out := make([]domain.RouteCandidate, 0, len(candidates))

	for i, c := range candidates {
		if c.DistanceKm < 0 {
			return nil, fmt.Errorf(
				"%w: candidate %d (%s): distance must be non-negative, got %v",
				domain.ErrInvalidRouteData, i, c.ID, c.DistanceKm,
			)
		}
		if c.DurationMin < 0 {
			return nil, fmt.Errorf(
				"%w: candidate %d (%s): duration must be non-negative, got %v",
				domain.ErrInvalidRouteData, i, c.ID, c.DurationMin,
			)
		}
		if c.Congestion < 0 {
			return nil, fmt.Errorf(
				"%w: candidate %d (%s): congestion factor must be non-negative, got %v",
				domain.ErrInvalidRouteData, i, c.ID, c.Congestion,
			)
		}

		if c.Congestion < 1.0 {
			c.Congestion = 1.0
		}
		out = append(out, c)
	}

	return out, nil
}
