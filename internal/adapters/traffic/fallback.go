package traffic

import (
	"context"
	"delivery-optimizer/internal/domain"
	"delivery-optimizer/internal/ports"
	"log"
	"time"
)

// FallbackProvider tries a live traffic source first and degrades to a
// backup estimate when the lookup fails. Primary failures are logged,
// not surfaced.
type FallbackProvider struct {
	primary ports.TrafficProvider
	backup  ports.TrafficProvider
}

func NewFallbackProvider(primary, backup ports.TrafficProvider) *FallbackProvider {
	return &FallbackProvider{primary: primary, backup: backup}
}

func (p *FallbackProvider) GetFactor(
	ctx context.Context,
	at domain.Coordinates,
	when time.Time,
) (float64, error) {
	factor, err := p.primary.GetFactor(ctx, at, when)
	if err != nil {
		log.Printf("live traffic lookup failed, falling back to estimate: %v", err)
		return p.backup.GetFactor(ctx, at, when)
	}
	return factor, nil
}
