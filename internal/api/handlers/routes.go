package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"delivery-optimizer/internal/agent"
	"delivery-optimizer/internal/api/dto"
	"delivery-optimizer/internal/domain"
	"delivery-optimizer/internal/services"
)

// RouteHandler exposes the structured route planning endpoints. They
// skip query parsing and dispatch typed requests directly.
type RouteHandler struct {
	Coordinator *agent.Coordinator
}

func (h *RouteHandler) Recommend(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	var req dto.RecommendRouteRequest
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

	var vehicle domain.VehicleType
	if req.Vehicle != "" {
		vt, err := domain.ParseVehicleType(req.Vehicle)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		vehicle = vt
	}

	var weights *domain.RankWeights
	if req.Weights != nil {
		weights = &domain.RankWeights{Cost: req.Weights.Cost, Time: req.Weights.Time}
	}

	ans, err := h.Coordinator.Dispatch(r.Context(), agent.RouteRequest{
		Origin:        origin,
		Destination:   destination,
		Vehicle:       vehicle,
		CargoWeightKg: req.CargoWeightKg,
		Weights:       weights,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	rec := ans.Data.(*domain.Recommendation)
	writeJSON(w, r, http.StatusOK, dto.NewRecommendRouteResponse(rec, ans.Text))
}

func (h *RouteHandler) Multi(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	var req dto.MultiRouteRequest
	if err := decodeStrict(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	origin := strings.TrimSpace(req.Origin)
	if origin == "" {
		writeError(w, r, http.StatusBadRequest, "origin is required")
		return
	}

	destinations := make([]string, 0, len(req.Destinations))
	for _, d := range req.Destinations {
		if d = strings.TrimSpace(d); d != "" {
			destinations = append(destinations, d)
		}
	}
	if len(destinations) == 0 {
		writeError(w, r, http.StatusBadRequest, "at least one destination is required")
		return
	}
	if len(destinations) > services.MaxMultiStopDestinations {
		msg := fmt.Sprintf("at most %d destinations supported", services.MaxMultiStopDestinations)
		writeError(w, r, http.StatusBadRequest, msg)
		return
	}

	ans, err := h.Coordinator.Dispatch(r.Context(), agent.MultiRouteRequest{
		Origin:       origin,
		Destinations: destinations,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	plan := ans.Data.(*domain.MultiStopPlan)
	writeJSON(w, r, http.StatusOK, dto.NewMultiRouteResponse(plan, ans.Text))
}
