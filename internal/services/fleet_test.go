package services

import (
	"delivery-optimizer/internal/domain"
	"errors"
	"testing"
)

func testFleet() []domain.Vehicle {
	return []domain.Vehicle{
		{ID: "BIKE-001", Name: "Motorcycle", Type: domain.VehicleBike, CapacityKg: 30, CostPerKm: 2.5, AvgSpeedKmh: 40, Available: true},
		{ID: "VAN-001", Name: "Small Van", Type: domain.VehicleVan, CapacityKg: 500, CostPerKm: 8, AvgSpeedKmh: 50, Available: true},
		{ID: "TRUCK-001", Name: "Light Truck", Type: domain.VehicleTruck, CapacityKg: 2000, CostPerKm: 15, AvgSpeedKmh: 45, Available: true},
		{ID: "TRUCK-002", Name: "Heavy Truck", Type: domain.VehicleTruck, CapacityKg: 5000, CostPerKm: 25, AvgSpeedKmh: 40, Available: true},
	}
}

func testFleetPricing() FleetPricing {
	return FleetPricing{
		DriverRatePerHour:   200,
		BaseOperationalCost: 150,
		EfficiencyThreshold: 0.8,
		EfficiencySurcharge: 1.15,
	}
}

func TestEstimateFleetScenario(t *testing.T) {
	est, err := EstimateFleet(testFleet(), FleetEstimateRequest{
		DistanceKm:    10,
		DurationMin:   30,
		CargoWeightKg: 500,
	}, testFleetPricing())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// The motorcycle cannot carry 500 kg, the rest price out at
	// van 379.50, light truck 400, heavy truck 500.
	if len(est.Options) != 3 {
		t.Fatalf("expected 3 options, got %d", len(est.Options))
	}

	wantOrder := []struct {
		id    string
		total float64
	}{
		{id: "VAN-001", total: 379.5},
		{id: "TRUCK-001", total: 400},
		{id: "TRUCK-002", total: 500},
	}
	for i, want := range wantOrder {
		got := est.Options[i]
		if got.Vehicle.ID != want.id {
			t.Fatalf("option %d = %q, want %q", i, got.Vehicle.ID, want.id)
		}
		if got.TotalCost != want.total {
			t.Fatalf("total for %s = %v, want %v", want.id, got.TotalCost, want.total)
		}
	}

	van := est.Recommended()
	if van.Vehicle.ID != "VAN-001" {
		t.Fatalf("recommended = %q, want VAN-001", van.Vehicle.ID)
	}
	if van.FuelCost != 80 || van.DriverCost != 100 || van.BaseCost != 150 {
		t.Fatalf("van components = fuel %v / driver %v / base %v, want 80 / 100 / 150",
			van.FuelCost, van.DriverCost, van.BaseCost)
	}
	if van.CapacityUsage != 1.0 || van.EfficiencyFactor != 1.15 {
		t.Fatalf("van usage %v factor %v, want 1.0 and 1.15", van.CapacityUsage, van.EfficiencyFactor)
	}
}

func TestEstimateFleetAppliesConditionFactors(t *testing.T) {
	est, err := EstimateFleet(testFleet(), FleetEstimateRequest{
		DistanceKm:    10,
		DurationMin:   30,
		CargoWeightKg: 600,
		TrafficFactor: 1.5,
		WeatherFactor: 1.2,
	}, testFleetPricing())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Light truck base total 400 scaled by 1.5 traffic and 1.2 weather.
	got := est.Recommended()
	if got.Vehicle.ID != "TRUCK-001" {
		t.Fatalf("recommended = %q, want TRUCK-001", got.Vehicle.ID)
	}
	if got.TotalCost != 720 {
		t.Fatalf("total = %v, want 720", got.TotalCost)
	}
	if est.TrafficFactor != 1.5 || est.WeatherFactor != 1.2 {
		t.Fatalf("factors = %v / %v, want 1.5 / 1.2", est.TrafficFactor, est.WeatherFactor)
	}
}

func TestEstimateFleetTreatsZeroFactorsAsNeutral(t *testing.T) {
	est, err := EstimateFleet(testFleet(), FleetEstimateRequest{
		DistanceKm:    10,
		DurationMin:   30,
		CargoWeightKg: 10,
	}, testFleetPricing())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if est.TrafficFactor != 1.0 || est.WeatherFactor != 1.0 {
		t.Fatalf("factors = %v / %v, want neutral 1.0", est.TrafficFactor, est.WeatherFactor)
	}
}

func TestEstimateFleetSkipsUnavailableVehicles(t *testing.T) {
	fleet := testFleet()
	fleet[1].Available = false

	est, err := EstimateFleet(fleet, FleetEstimateRequest{
		DistanceKm:    10,
		DurationMin:   30,
		CargoWeightKg: 400,
	}, testFleetPricing())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := est.Recommended().Vehicle.ID; got != "TRUCK-001" {
		t.Fatalf("recommended = %q, want TRUCK-001 with the van offline", got)
	}
	for _, opt := range est.Options {
		if opt.Vehicle.ID == "VAN-001" {
			t.Fatalf("offline van should not be priced")
		}
	}
}

func TestEstimateFleetNoSuitableVehicle(t *testing.T) {
	_, err := EstimateFleet(testFleet(), FleetEstimateRequest{
		DistanceKm:    10,
		DurationMin:   30,
		CargoWeightKg: 99999,
	}, testFleetPricing())
	if !errors.Is(err, domain.ErrNoSuitableVehicle) {
		t.Fatalf("error = %v, want ErrNoSuitableVehicle", err)
	}
}

func TestEstimateFleetValidation(t *testing.T) {
	if _, err := EstimateFleet(testFleet(), FleetEstimateRequest{DistanceKm: -1, DurationMin: 30}, testFleetPricing()); !errors.Is(err, domain.ErrInvalidRouteData) {
		t.Fatalf("error = %v, want ErrInvalidRouteData", err)
	}
	if _, err := EstimateFleet(testFleet(), FleetEstimateRequest{DistanceKm: 1, DurationMin: 1, CargoWeightKg: -5}, testFleetPricing()); !errors.Is(err, domain.ErrInvalidCostFactors) {
		t.Fatalf("error = %v, want ErrInvalidCostFactors", err)
	}
}

func TestEstimateFleetTieBreaksOnVehicleID(t *testing.T) {
	twins := []domain.Vehicle{
		{ID: "VAN-002", Name: "Twin B", Type: domain.VehicleVan, CapacityKg: 500, CostPerKm: 8, Available: true},
		{ID: "VAN-001", Name: "Twin A", Type: domain.VehicleVan, CapacityKg: 500, CostPerKm: 8, Available: true},
	}

	est, err := EstimateFleet(twins, FleetEstimateRequest{
		DistanceKm:    10,
		DurationMin:   30,
		CargoWeightKg: 100,
	}, testFleetPricing())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if est.Options[0].Vehicle.ID != "VAN-001" || est.Options[1].Vehicle.ID != "VAN-002" {
		t.Fatalf("tie order = %q, %q; want VAN-001 first", est.Options[0].Vehicle.ID, est.Options[1].Vehicle.ID)
	}
}
