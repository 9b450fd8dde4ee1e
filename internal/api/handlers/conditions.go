package handlers

import (
	"net/http"
	"strings"

	"delivery-optimizer/internal/agent"
	"delivery-optimizer/internal/api/dto"
	"delivery-optimizer/internal/domain"
)

// ConditionsHandler exposes read-only traffic and weather lookups.
// A missing destination means the origin stands for both ends.
type ConditionsHandler struct {
	Coordinator *agent.Coordinator
}

func (h *ConditionsHandler) Traffic(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	origin, destination, ok := placePair(w, r)
	if !ok {
		return
	}

	ans, err := h.Coordinator.Dispatch(r.Context(), agent.TrafficRequest{
		Origin:      origin,
		Destination: destination,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	report := ans.Data.(domain.TrafficReport)
	writeJSON(w, r, http.StatusOK, dto.NewTrafficResponse(origin, destination, report))
}

func (h *ConditionsHandler) Weather(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	origin, destination, ok := placePair(w, r)
	if !ok {
		return
	}

	ans, err := h.Coordinator.Dispatch(r.Context(), agent.WeatherRequest{
		Origin:      origin,
		Destination: destination,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	impact := ans.Data.(domain.WeatherImpact)
	writeJSON(w, r, http.StatusOK, dto.NewWeatherResponse(origin, destination, impact))
}

func placePair(w http.ResponseWriter, r *http.Request) (string, string, bool) {
	q := r.URL.Query()
	origin := strings.TrimSpace(q.Get("origin"))
	destination := strings.TrimSpace(q.Get("destination"))

	if origin == "" {
		writeError(w, r, http.StatusBadRequest, "origin is required")
		return "", "", false
	}
	if destination == "" {
		destination = origin
	}
	return origin, destination, true
}
