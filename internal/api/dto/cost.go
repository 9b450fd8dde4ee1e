package dto

import "delivery-optimizer/internal/domain"

type EstimateCostRequest struct {
	Origin        string  `json:"origin"`
	Destination   string  `json:"destination"`
	CargoWeightKg float64 `json:"cargo_weight_kg"`
}

type VehicleEstimateResponse struct {
	VehicleID     string  `json:"vehicle_id"`
	Name          string  `json:"name"`
	Type          string  `json:"type"`
	FuelCost      float64 `json:"fuel_cost"`
	DriverCost    float64 `json:"driver_cost"`
	BaseCost      float64 `json:"base_cost"`
	CapacityUsage float64 `json:"capacity_usage"`
	TotalCost     float64 `json:"total_cost"`
}

type EstimateCostResponse struct {
	DistanceKm    float64                   `json:"distance_km"`
	DurationMin   float64                   `json:"duration_min"`
	TrafficFactor float64                   `json:"traffic_factor"`
	WeatherFactor float64                   `json:"weather_factor"`
	Recommended   VehicleEstimateResponse   `json:"recommended"`
	Options       []VehicleEstimateResponse `json:"options"`
	Summary       string                    `json:"summary"`
}

func NewVehicleEstimateResponse(e domain.VehicleEstimate) VehicleEstimateResponse {
	return VehicleEstimateResponse{
		VehicleID:     e.Vehicle.ID,
		Name:          e.Vehicle.Name,
		Type:          string(e.Vehicle.Type),
		FuelCost:      e.FuelCost,
		DriverCost:    e.DriverCost,
		BaseCost:      e.BaseCost,
		CapacityUsage: e.CapacityUsage,
		TotalCost:     e.TotalCost,
	}
}

func NewEstimateCostResponse(est *domain.FleetEstimate, summary string) EstimateCostResponse {
	res := EstimateCostResponse{
		DistanceKm:    est.DistanceKm,
		DurationMin:   est.DurationMin,
		TrafficFactor: est.TrafficFactor,
		WeatherFactor: est.WeatherFactor,
		Recommended:   NewVehicleEstimateResponse(est.Recommended()),
		Options:       make([]VehicleEstimateResponse, 0, len(est.Options)),
		Summary:       summary,
	}
	for _, opt := range est.Options {
		res.Options = append(res.Options, NewVehicleEstimateResponse(opt))
	}
	return res
}
