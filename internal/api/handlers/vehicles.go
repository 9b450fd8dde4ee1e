package handlers

import (
	"net/http"

	"delivery-optimizer/internal/api/dto"
	"delivery-optimizer/internal/config"
)

// VehicleHandler exposes the configured fleet.
type VehicleHandler struct {
	Pricing *config.PricingConfig
}

func (h *VehicleHandler) List(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	writeJSON(w, r, http.StatusOK, dto.NewListVehiclesResponse(h.Pricing.Vehicles()))
}
