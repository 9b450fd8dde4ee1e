package ports

import (
	"context"
	"delivery-optimizer/internal/domain"
)

// Contract for retrieving current weather conditions at a point.
type WeatherProvider interface {
	GetConditions(ctx context.Context, at domain.Coordinates) (domain.WeatherObservation, error)
}
