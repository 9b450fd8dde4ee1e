package handlers

import (
	"net/http"
	"strings"

	"delivery-optimizer/internal/agent"
	"delivery-optimizer/internal/api/dto"
	"delivery-optimizer/internal/domain"
)

// CostHandler exposes the fleet cost estimation endpoint.
type CostHandler struct {
	Coordinator *agent.Coordinator
}

func (h *CostHandler) Estimate(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	var req dto.EstimateCostRequest
	if err := decodeStrict(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	origin := strings.TrimSpace(req.Origin)
	destination := strings.TrimSpace(req.Destination)
	if origin == "" || destination == "" {
		writeError(w, r, http.StatusBadRequest, "origin and destination are required")
		return
	}
	if req.CargoWeightKg < 0 {
		writeError(w, r, http.StatusBadRequest, "cargo_weight_kg must be non-negative")
		return
	}

	ans, err := h.Coordinator.Dispatch(r.Context(), agent.CostRequest{
		Origin:        origin,
		Destination:   destination,
		CargoWeightKg: req.CargoWeightKg,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	est := ans.Data.(*domain.FleetEstimate)
	writeJSON(w, r, http.StatusOK, dto.NewEstimateCostResponse(est, ans.Text))
}
