package config

import (
	"delivery-optimizer/internal/domain"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultPricingIsValid(t *testing.T) {
	p := DefaultPricing()
	if err := p.Validate(); err != nil {
		t.Fatalf("default pricing invalid: %v", err)
	}

	if len(p.Vehicles()) != 4 {
		t.Fatalf("expected 4 fleet vehicles, got %d", len(p.Vehicles()))
	}

	f, err := p.FactorsFor(domain.VehicleTruck, 500)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.BaseRatePerKm != 10 || f.PerKgSurcharge != 0.05 || f.TrafficSurchargePerKm != 2 {
		t.Fatalf("truck rates = %+v, want 10/0.05/2", f)
	}
}

func TestLoadPricingOverridesDefaults(t *testing.T) {
	yml := `
rank_weights:
  cost: 0.5
  time: 0.5
scoring_rates:
  truck:
    base_rate_per_km: 12
    per_kg_surcharge: 0.1
    traffic_surcharge_per_km: 3
`
	path := filepath.Join(t.TempDir(), "pricing.yaml")
	if err := os.WriteFile(path, []byte(yml), 0o600); err != nil {
		t.Fatalf("write temp pricing: %v", err)
	}

	p, err := LoadPricing(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if p.RankWeights.Cost != 0.5 || p.RankWeights.Time != 0.5 {
		t.Fatalf("weights = %+v, want 0.5/0.5", p.RankWeights)
	}

	f, err := p.FactorsFor(domain.VehicleTruck, 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.BaseRatePerKm != 12 {
		t.Fatalf("override not applied, base rate = %v", f.BaseRatePerKm)
	}

	// Untouched sections keep their defaults.
	if p.DriverRatePerHour != 200 {
		t.Fatalf("driver rate = %v, want default 200", p.DriverRatePerHour)
	}
	if len(p.Fleet) != 4 {
		t.Fatalf("fleet length = %d, want default 4", len(p.Fleet))
	}
}

func TestLoadPricingRejectsBadWeights(t *testing.T) {
	yml := `
rank_weights:
  cost: 0.7
  time: 0.7
`
	path := filepath.Join(t.TempDir(), "pricing.yaml")
	if err := os.WriteFile(path, []byte(yml), 0o600); err != nil {
		t.Fatalf("write temp pricing: %v", err)
	}

	if _, err := LoadPricing(path); err == nil {
		t.Fatal("expected weight validation error, got nil")
	}
}
