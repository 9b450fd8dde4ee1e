package domain

import (
	"fmt"
	"strings"
)

// Broad vehicle class used for pricing.
type VehicleType string

const (
	VehicleBike  VehicleType = "bike"
	VehicleVan   VehicleType = "van"
	VehicleTruck VehicleType = "truck"
)

// ParseVehicleType maps free-form vehicle names onto the pricing classes.
func ParseVehicleType(s string) (VehicleType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "bike", "motorcycle", "motorbike", "scooter":
		return VehicleBike, nil
	case "van", "minivan":
		return VehicleVan, nil
	case "truck", "lorry":
		return VehicleTruck, nil
	}
	return "", fmt.Errorf("unknown vehicle type %q", s)
}

// A fleet unit available for load assignment.
type Vehicle struct {
	ID          string
	Name        string
	Type        VehicleType
	CapacityKg  float64
	CostPerKm   float64
	AvgSpeedKmh float64
	Available   bool
}

// CanCarry reports whether the vehicle is available and has capacity for the load.
func (v Vehicle) CanCarry(weightKg float64) bool {
	return v.Available && v.CapacityKg >= weightKg
}

// CapacityUsage is the fraction of the vehicle's capacity the load consumes.
func (v Vehicle) CapacityUsage(weightKg float64) float64 {
	if v.CapacityKg <= 0 {
		return 0
	}
	return weightKg / v.CapacityKg
}

// Detailed operating-cost estimate for carrying one load with one vehicle.
// Component costs are rounded to two decimals.
type VehicleEstimate struct {
	Vehicle          Vehicle
	FuelCost         float64
	DriverCost       float64
	BaseCost         float64
	CapacityUsage    float64
	EfficiencyFactor float64
	TotalCost        float64
}

// Fleet-wide estimate for one delivery. Options are sorted ascending by
// total cost; the first option is the recommended vehicle.
type FleetEstimate struct {
	Options       []VehicleEstimate
	DistanceKm    float64
	DurationMin   float64
	TrafficFactor float64
	WeatherFactor float64
}

// Recommended returns the cheapest suitable vehicle estimate.
func (f FleetEstimate) Recommended() VehicleEstimate {
	if len(f.Options) == 0 {
		return VehicleEstimate{}
	}
	return f.Options[0]
}
