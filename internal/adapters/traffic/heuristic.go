package traffic

import (
	"context"
	"delivery-optimizer/internal/domain"
	"time"
)

// HeuristicProvider estimates congestion from the hour of day alone.
// It stands in when no live traffic service is configured and never
// fails.
type HeuristicProvider struct{}

func NewHeuristicProvider() *HeuristicProvider { return &HeuristicProvider{} }

func (p *HeuristicProvider) GetFactor(
	ctx context.Context,
	at domain.Coordinates,
	when time.Time,
) (float64, error) {
	switch h := when.Hour(); {
	case h >= 7 && h <= 10:
		return 1.5, nil
	case h >= 17 && h <= 19:
		return 1.6, nil
	case h >= 12 && h <= 14:
		return 1.2, nil
	case h <= 5:
		return 0.8, nil
	default:
		return 1.0, nil
	}
}
