package services

import (
	"delivery-optimizer/internal/domain"
	"errors"
	"math"
	"testing"
)

func TestEstimateCostScenario(t *testing.T) {
	candidate := domain.RouteCandidate{
		ID:          "route-1",
		DistanceKm:  150,
		DurationMin: 180,
		Congestion:  1.2,
	}
	factors := domain.CostFactors{
		Vehicle:               domain.VehicleTruck,
		CargoWeightKg:         500,
		BaseRatePerKm:         10,
		PerKgSurcharge:        0.05,
		TrafficSurchargePerKm: 2,
	}

	bd, err := EstimateCost(candidate, factors)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if math.Abs(bd.Base-1500) > 1e-9 {
		t.Errorf("base = %v, want 1500", bd.Base)
	}
	if math.Abs(bd.WeightSurcharge-25) > 1e-9 {
		t.Errorf("weight surcharge = %v, want 25", bd.WeightSurcharge)
	}
	if math.Abs(bd.TrafficSurcharge-60) > 1e-9 {
		t.Errorf("traffic surcharge = %v, want 60", bd.TrafficSurcharge)
	}
	if math.Abs(bd.Total-1585) > 1e-9 {
		t.Errorf("total = %v, want 1585", bd.Total)
	}
}

func TestEstimateCostNonNegative(t *testing.T) {
	cases := []struct {
		name      string
		candidate domain.RouteCandidate
		factors   domain.CostFactors
	}{
		{
			name:      "zero distance",
			candidate: domain.RouteCandidate{DistanceKm: 0, DurationMin: 10, Congestion: 1.5},
			factors:   domain.CostFactors{BaseRatePerKm: 10, PerKgSurcharge: 0.1, TrafficSurchargePerKm: 2, CargoWeightKg: 50},
		},
		{
			name:      "zero weight",
			candidate: domain.RouteCandidate{DistanceKm: 30, DurationMin: 45, Congestion: 1},
			factors:   domain.CostFactors{BaseRatePerKm: 5, PerKgSurcharge: 0.5, TrafficSurchargePerKm: 1},
		},
		{
			name:      "heavy congestion",
			candidate: domain.RouteCandidate{DistanceKm: 80, DurationMin: 90, Congestion: 2},
			factors:   domain.CostFactors{BaseRatePerKm: 0, PerKgSurcharge: 0, TrafficSurchargePerKm: 3, CargoWeightKg: 100},
		},
		{
			name:      "everything zero",
			candidate: domain.RouteCandidate{},
			factors:   domain.CostFactors{},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			bd, err := EstimateCost(c.candidate, c.factors)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if bd.Base < 0 || bd.WeightSurcharge < 0 || bd.TrafficSurcharge < 0 || bd.Total < 0 {
				t.Fatalf("negative cost term: %+v", bd)
			}
		})
	}
}

func TestEstimateCostRejectsInvalidFactors(t *testing.T) {
	candidate := domain.RouteCandidate{DistanceKm: 10, DurationMin: 10, Congestion: 1}

	cases := []struct {
		name    string
		factors domain.CostFactors
	}{
		{name: "negative base rate", factors: domain.CostFactors{BaseRatePerKm: -1}},
		{name: "negative per-kg surcharge", factors: domain.CostFactors{PerKgSurcharge: -0.01}},
		{name: "negative traffic surcharge", factors: domain.CostFactors{TrafficSurchargePerKm: -2}},
		{name: "negative cargo weight", factors: domain.CostFactors{CargoWeightKg: -5}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := EstimateCost(candidate, c.factors)
			if !errors.Is(err, domain.ErrInvalidCostFactors) {
				t.Fatalf("error = %v, want ErrInvalidCostFactors", err)
			}
		})
	}
}

func TestEstimateCostClampsUnnormalizedCongestion(t *testing.T) {
	factors := domain.CostFactors{BaseRatePerKm: 1, TrafficSurchargePerKm: 10}

	// Factor 0 means the collaborator had no traffic data; no surcharge applies.
	bd, err := EstimateCost(domain.RouteCandidate{DistanceKm: 100, Congestion: 0}, factors)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if bd.TrafficSurcharge != 0 {
		t.Errorf("traffic surcharge = %v, want 0 for missing congestion", bd.TrafficSurcharge)
	}
	if math.Abs(bd.Total-100) > 1e-9 {
		t.Errorf("total = %v, want 100", bd.Total)
	}
}
