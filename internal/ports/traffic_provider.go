package ports

import (
	"context"
	"delivery-optimizer/internal/domain"
	"time"
)

// Contract for retrieving the congestion factor near a point.
// Factors are raw observations in [0.8, 2.0]; values below 1.0 mean
// traffic currently flows faster than the free-flow baseline.
type TrafficProvider interface {
	// Return the congestion factor near a point at the given time.
	GetFactor(ctx context.Context, at domain.Coordinates, when time.Time) (float64, error)
}
