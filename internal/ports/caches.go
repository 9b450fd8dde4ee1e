package ports

import (
	"context"
	"delivery-optimizer/internal/domain"
)

// Persistent cache mapping normalized place names to coordinates.
// Key normalization is the caller's responsibility.
type GeocodeCache interface {
	GetMany(ctx context.Context, places []string) (map[string]domain.Coordinates, error)
	PutMany(ctx context.Context, results map[string]domain.Coordinates) error
}

// Persistent cache for single-leg travel metrics between two points.
// Keys identify the pair; providers derive them from coordinates.
type RouteCache interface {
	GetMany(ctx context.Context, origin string, destinations []string) (map[string]domain.RouteLeg, error)
	PutMany(ctx context.Context, origin string, legs map[string]domain.RouteLeg) error
}
