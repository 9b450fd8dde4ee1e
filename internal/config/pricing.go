package config

import (
	"delivery-optimizer/internal/domain"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// Tariff coefficients for scoring one vehicle class.
type ScoringRates struct {
	BaseRatePerKm         float64 `yaml:"base_rate_per_km"`
	PerKgSurcharge        float64 `yaml:"per_kg_surcharge"`
	TrafficSurchargePerKm float64 `yaml:"traffic_surcharge_per_km"`
}

// Ranking weight configuration; must sum to 1.0.
type WeightConfig struct {
	Cost float64 `yaml:"cost"`
	Time float64 `yaml:"time"`
}

// One fleet vehicle as declared in the pricing file.
// Available defaults to true when omitted.
type FleetVehicle struct {
	ID          string  `yaml:"id"`
	Name        string  `yaml:"name"`
	Type        string  `yaml:"type"`
	CapacityKg  float64 `yaml:"capacity_kg"`
	CostPerKm   float64 `yaml:"cost_per_km"`
	AvgSpeedKmh float64 `yaml:"avg_speed_kmh"`
	Available   *bool   `yaml:"available"`
}

// All pricing coefficients for the service. Exact coefficients are
// deployment policy, so everything here is overridable from a YAML file.
type PricingConfig struct {
	RankWeights         WeightConfig            `yaml:"rank_weights"`
	DriverRatePerHour   float64                 `yaml:"driver_rate_per_hour"`
	BaseOperationalCost float64                 `yaml:"base_operational_cost"`
	EfficiencyThreshold float64                 `yaml:"efficiency_threshold"`
	EfficiencySurcharge float64                 `yaml:"efficiency_surcharge"`
	ScoringRates        map[string]ScoringRates `yaml:"scoring_rates"`
	Fleet               []FleetVehicle          `yaml:"fleet"`
}

// DefaultPricing returns the built-in tariff used when no pricing file
// is configured.
func DefaultPricing() *PricingConfig {
	return &PricingConfig{
		RankWeights:         WeightConfig{Cost: 0.4, Time: 0.6},
		DriverRatePerHour:   200,
		BaseOperationalCost: 150,
		EfficiencyThreshold: 0.8,
		EfficiencySurcharge: 1.15,
		ScoringRates: map[string]ScoringRates{
			string(domain.VehicleBike):  {BaseRatePerKm: 2.5, PerKgSurcharge: 0.02, TrafficSurchargePerKm: 0.5},
			string(domain.VehicleVan):   {BaseRatePerKm: 8, PerKgSurcharge: 0.04, TrafficSurchargePerKm: 1.5},
			string(domain.VehicleTruck): {BaseRatePerKm: 10, PerKgSurcharge: 0.05, TrafficSurchargePerKm: 2},
		},
		Fleet: []FleetVehicle{
			{ID: "BIKE-001", Name: "Motorcycle", Type: "bike", CapacityKg: 30, CostPerKm: 2.5, AvgSpeedKmh: 40},
			{ID: "VAN-001", Name: "Small Van", Type: "van", CapacityKg: 500, CostPerKm: 8, AvgSpeedKmh: 50},
			{ID: "TRUCK-001", Name: "Light Truck", Type: "truck", CapacityKg: 2000, CostPerKm: 15, AvgSpeedKmh: 45},
			{ID: "TRUCK-002", Name: "Heavy Truck", Type: "truck", CapacityKg: 5000, CostPerKm: 25, AvgSpeedKmh: 40},
		},
	}
}

// LoadPricing reads a YAML pricing file over the built-in defaults.
// An empty path returns the defaults unchanged.
func LoadPricing(path string) (*PricingConfig, error) {
	p := DefaultPricing()
	if path == "" {
		return p, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load pricing: read %q: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, p); err != nil {
		return nil, fmt.Errorf("load pricing: parse %q: %w", path, err)
	}

	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("load pricing: %q: %w", path, err)
	}
	return p, nil
}

// Validate checks the coefficient contract before the config is used.
func (p *PricingConfig) Validate() error {
	if p.RankWeights.Cost < 0 || p.RankWeights.Time < 0 {
		return fmt.Errorf("%w: weights must be non-negative", domain.ErrInvalidWeights)
	}
	if math.Abs(p.RankWeights.Cost+p.RankWeights.Time-1.0) > 1e-6 {
		return fmt.Errorf("%w: cost+time must sum to 1.0, got %v", domain.ErrInvalidWeights, p.RankWeights.Cost+p.RankWeights.Time)
	}

	if p.DriverRatePerHour < 0 || p.BaseOperationalCost < 0 {
		return fmt.Errorf("driver rate and base cost must be non-negative")
	}
	if p.EfficiencySurcharge < 1 {
		return fmt.Errorf("efficiency surcharge must be >= 1, got %v", p.EfficiencySurcharge)
	}

	for vt, r := range p.ScoringRates {
		if _, err := domain.ParseVehicleType(vt); err != nil {
			return fmt.Errorf("scoring rates: %w", err)
		}
		if r.BaseRatePerKm < 0 || r.PerKgSurcharge < 0 || r.TrafficSurchargePerKm < 0 {
			return fmt.Errorf("%w: rates for %q must be non-negative", domain.ErrInvalidCostFactors, vt)
		}
	}

	seen := make(map[string]struct{}, len(p.Fleet))
	for _, v := range p.Fleet {
		if v.ID == "" {
			return fmt.Errorf("fleet: vehicle id must be non-empty")
		}
		if _, ok := seen[v.ID]; ok {
			return fmt.Errorf("fleet: duplicate vehicle id %q", v.ID)
		}
		seen[v.ID] = struct{}{}
		if _, err := domain.ParseVehicleType(v.Type); err != nil {
			return fmt.Errorf("fleet %q: %w", v.ID, err)
		}
		if v.CapacityKg <= 0 || v.CostPerKm < 0 || v.AvgSpeedKmh <= 0 {
			return fmt.Errorf("fleet %q: capacity and speed must be positive, cost non-negative", v.ID)
		}
	}

	return nil
}

// Weights returns the configured ranking weights.
func (p *PricingConfig) Weights() domain.RankWeights {
	return domain.RankWeights{Cost: p.RankWeights.Cost, Time: p.RankWeights.Time}
}

// FactorsFor builds the CostFactors for a vehicle class and load.
func (p *PricingConfig) FactorsFor(vt domain.VehicleType, cargoWeightKg float64) (domain.CostFactors, error) {
	rates, ok := p.ScoringRates[string(vt)]
	if !ok {
		return domain.CostFactors{}, fmt.Errorf("%w: no scoring rates for vehicle type %q", domain.ErrInvalidCostFactors, vt)
	}

	return domain.CostFactors{
		Vehicle:               vt,
		CargoWeightKg:         cargoWeightKg,
		BaseRatePerKm:         rates.BaseRatePerKm,
		PerKgSurcharge:        rates.PerKgSurcharge,
		TrafficSurchargePerKm: rates.TrafficSurchargePerKm,
	}, nil
}

// Vehicles materializes the configured fleet as domain vehicles.
func (p *PricingConfig) Vehicles() []domain.Vehicle {
	out := make([]domain.Vehicle, 0, len(p.Fleet))
	for _, v := range p.Fleet {
		vt, err := domain.ParseVehicleType(v.Type)
		if err != nil {
			continue
		}

		available := true
		if v.Available != nil {
			available = *v.Available
		}

		out = append(out, domain.Vehicle{
			ID:          v.ID,
			Name:        v.Name,
			Type:        vt,
			CapacityKg:  v.CapacityKg,
			CostPerKm:   v.CostPerKm,
			AvgSpeedKmh: v.AvgSpeedKmh,
			Available:   available,
		})
	}
	return out
}
