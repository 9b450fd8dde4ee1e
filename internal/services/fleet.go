package services

import (
	"delivery-optimizer/internal/domain"
	"fmt"
	"math"
	"slices"
	"strings"
)

// Inputs for pricing one delivery across the fleet. Traffic and
// weather factors of zero mean "unknown" and are treated as neutral.
type FleetEstimateRequest struct {
	DistanceKm    float64
	DurationMin   float64
	CargoWeightKg float64
	TrafficFactor float64
	WeatherFactor float64
}

// Operating-cost coefficients shared by all fleet vehicles.
type FleetPricing struct {
	DriverRatePerHour   float64
	BaseOperationalCost float64
	EfficiencyThreshold float64
	EfficiencySurcharge float64
}

// EstimateFleet prices a delivery for every suitable fleet vehicle.
//
// A vehicle is suitable when it is available and its capacity covers
// the cargo weight. Per vehicle:
//
//	total = (base + fuel + driver) * traffic * weather * efficiency
//
// where fuel = distance * per-km rate, driver = hours * hourly rate,
// and efficiency applies the surcharge once capacity usage passes the
// threshold. Options are sorted ascending by total cost; ties break on
// vehicle id for deterministic output. The cheapest option is the
// recommendation.
func EstimateFleet(
	vehicles []domain.Vehicle,
	req FleetEstimateRequest,
	pricing FleetPricing,
) (*domain.FleetEstimate, error) {
	if req.DistanceKm < 0 || req.DurationMin < 0 {
		return nil, fmt.Errorf(
			"%w: distance and duration must be non-negative, got %v km / %v min",
			domain.ErrInvalidRouteData, req.DistanceKm, req.DurationMin,
		)
	}
	if req.CargoWeightKg < 0 {
		return nil, fmt.Errorf(
			"%w: cargo weight must be non-negative, got %v",
			domain.ErrInvalidCostFactors, req.CargoWeightKg,
		)
	}
	if pricing.DriverRatePerHour < 0 || pricing.BaseOperationalCost < 0 {
		return nil, fmt.Errorf(
			"%w: driver rate and base cost must be non-negative",
			domain.ErrInvalidCostFactors,
		)
	}

	traffic := req.TrafficFactor
	if traffic <= 0 {
		traffic = 1.0
	}
	weather := req.WeatherFactor
	if weather <= 0 {
		weather = 1.0
	}

	options := make([]domain.VehicleEstimate, 0, len(vehicles))
	for _, v := range vehicles {
		if !v.CanCarry(req.CargoWeightKg) {
			continue
		}

		usage := v.CapacityUsage(req.CargoWeightKg)
		efficiency := 1.0
		if usage > pricing.EfficiencyThreshold {
			efficiency = pricing.EfficiencySurcharge
		}

		fuel := req.DistanceKm * v.CostPerKm
		driver := req.DurationMin / 60 * pricing.DriverRatePerHour
		base := pricing.BaseOperationalCost
		total := (base + fuel + driver) * traffic * weather * efficiency

		options = append(options, domain.VehicleEstimate{
			Vehicle:          v,
			FuelCost:         round2(fuel),
			DriverCost:       round2(driver),
			BaseCost:         round2(base),
			CapacityUsage:    round2(usage),
			EfficiencyFactor: efficiency,
			TotalCost:        round2(total),
		})
	}

	if len(options) == 0 {
		return nil, fmt.Errorf(
			"%w: cargo weight %.1f kg",
			domain.ErrNoSuitableVehicle, req.CargoWeightKg,
		)
	}

	slices.SortFunc(options, func(a, b domain.VehicleEstimate) int {
		if a.TotalCost < b.TotalCost {
			return -1
		}
		if a.TotalCost > b.TotalCost {
			return 1
		}
		return strings.Compare(a.Vehicle.ID, b.Vehicle.ID)
	})

	return &domain.FleetEstimate{
		Options:       options,
		DistanceKm:    req.DistanceKm,
		DurationMin:   req.DurationMin,
		TrafficFactor: traffic,
		WeatherFactor: weather,
	}, nil
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
