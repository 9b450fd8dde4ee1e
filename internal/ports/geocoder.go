package ports

import (
	"context"
	"delivery-optimizer/internal/domain"
)

// Contract for resolving free-form place names to coordinates.
type Geocoder interface {
	// Resolve a place name to coordinates.
	Geocode(ctx context.Context, place string) (domain.Coordinates, error)
}
