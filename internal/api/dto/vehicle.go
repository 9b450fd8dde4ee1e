package dto

import "delivery-optimizer/internal/domain"

type VehicleResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Type        string  `json:"type"`
	CapacityKg  float64 `json:"capacity_kg"`
	CostPerKm   float64 `json:"cost_per_km"`
	AvgSpeedKmh float64 `json:"avg_speed_kmh"`
	Available   bool    `json:"available"`
}

type ListVehiclesResponse struct {
	Vehicles []VehicleResponse `json:"vehicles"`
}

func NewListVehiclesResponse(fleet []domain.Vehicle) ListVehiclesResponse {
	res := ListVehiclesResponse{Vehicles: make([]VehicleResponse, 0, len(fleet))}
	for _, v := range fleet {
		res.Vehicles = append(res.Vehicles, VehicleResponse{
			ID:          v.ID,
			Name:        v.Name,
			Type:        string(v.Type),
			CapacityKg:  v.CapacityKg,
			CostPerKm:   v.CostPerKm,
			AvgSpeedKmh: v.AvgSpeedKmh,
			Available:   v.Available,
		})
	}
	return res
}
