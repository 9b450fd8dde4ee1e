package handlers

import (
	"net/http"
	"strings"
	"unicode"

	"delivery-optimizer/internal/agent"
	"delivery-optimizer/internal/api/dto"
)

// QueryHandler exposes the free-form query endpoint.
type QueryHandler struct {
	Svc *agent.Service
}

func (h *QueryHandler) Query(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	var req dto.QueryRequest
	if err := decodeStrict(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	query := strings.TrimSpace(req.Query)
	if len(query) < 2 {
		writeError(w, r, http.StatusBadRequest, "query must be at least 2 characters")
		return
	}
	if !hasAlphanumeric(query) {
		writeError(w, r, http.StatusBadRequest, "query must contain letters or digits")
		return
	}

	res, err := h.Svc.HandleQuery(r.Context(), strings.TrimSpace(req.SessionID), query)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.QueryResponse{
		SessionID: res.SessionID,
		Kind:      string(res.Kind),
		Answer:    res.Answer,
		Data:      res.Data,
	})
}

func hasAlphanumeric(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return true
		}
	}
	return false
}
