package ports

import (
	"context"
	"delivery-optimizer/internal/domain"
)

// Contract for retrieving candidate routes between two points.
type RouteProvider interface {
	// Return all candidate routes between origin and destination,
	// in the order the routing service proposed them.
	GetRoutes(ctx context.Context, origin, destination domain.Coordinates) ([]domain.RouteCandidate, error)

	// Return travel metrics for the best single route between two points.
	GetLeg(ctx context.Context, origin, destination domain.Coordinates) (domain.RouteLeg, error)
}

// Optional extension of RouteProvider that supports batched lookups.
type RouteMatrixProvider interface {
	RouteProvider
	// Return the full leg matrix between the given points.
	// Entry [i][j] is the leg from points[i] to points[j].
	GetLegs(ctx context.Context, points []domain.Coordinates) ([][]domain.RouteLeg, error)
}
