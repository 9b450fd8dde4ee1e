package services

import (
	"delivery-optimizer/internal/domain"
	"fmt"
)

// EstimateCost prices one route candidate against the given factors:
//
//	cost = base_rate*distance + per_kg*weight + traffic_rate*distance*(congestion-1)
//
// Candidates are expected to be normalized (congestion >= 1.0); an
// unnormalized factor is clamped so every term stays non-negative.
// Pure function of its inputs.
func EstimateCost(c domain.RouteCandidate, f domain.CostFactors) (domain.CostBreakdown, error) {
	if f.BaseRatePerKm < 0 {
		return domain.CostBreakdown{}, fmt.Errorf(
			"%w: base rate per km must be non-negative, got %v",
			domain.ErrInvalidCostFactors, f.BaseRatePerKm,
		)
	}
	if f.PerKgSurcharge < 0 {
		return domain.CostBreakdown{}, fmt.Errorf(
			"%w: per-kg surcharge must be non-negative, got %v",
			domain.ErrInvalidCostFactors, f.PerKgSurcharge,
		)
	}
	if f.TrafficSurchargePerKm < 0 {
		return domain.CostBreakdown{}, fmt.Errorf(
			"%w: traffic surcharge must be non-negative, got %v",
			domain.ErrInvalidCostFactors, f.TrafficSurchargePerKm,
		)
	}
	if f.CargoWeightKg < 0 {
		return domain.CostBreakdown{}, fmt.Errorf(
			"%w: cargo weight must be non-negative, got %v",
			domain.ErrInvalidCostFactors, f.CargoWeightKg,
		)
	}

	congestion := c.Congestion
	if congestion < 1.0 {
		congestion = 1.0
	}

	base := f.BaseRatePerKm * c.DistanceKm
	weight := f.PerKgSurcharge * f.CargoWeightKg
	traffic := f.TrafficSurchargePerKm * c.DistanceKm * (congestion - 1.0)

	return domain.CostBreakdown{
		Base:             base,
		WeightSurcharge:  weight,
		TrafficSurcharge: traffic,
		Total:            base + weight + traffic,
	}, nil
}
