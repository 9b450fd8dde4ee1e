package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"delivery-optimizer/internal/agent"
	"delivery-optimizer/internal/api/dto"
)

// HistoryHandler exposes recorded queries and session conversations.
type HistoryHandler struct {
	Svc *agent.Service
}

// List returns the most recent answered queries for a session.
func (h *HistoryHandler) List(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	sessionID, ok := sessionParam(w, r)
	if !ok {
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeError(w, r, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	records, err := h.Svc.Records(r.Context(), sessionID, limit)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, dto.NewListHistoryResponse(records))
}

// Session returns a session's conversation turns, oldest first.
func (h *HistoryHandler) Session(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	sessionID, ok := sessionParam(w, r)
	if !ok {
		return
	}

	entries, err := h.Svc.History(r.Context(), sessionID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, dto.NewSessionHistoryResponse(sessionID, entries))
}

// Clear discards a session's conversation state.
func (h *HistoryHandler) Clear(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	var req dto.ClearSessionRequest
	if err := decodeStrict(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	sessionID := strings.TrimSpace(req.SessionID)
	if sessionID == "" {
		writeError(w, r, http.StatusBadRequest, "session_id is required")
		return
	}

	if err := h.Svc.ClearSession(r.Context(), sessionID); err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]string{"status": "cleared", "session_id": sessionID})
}

func sessionParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	sessionID := strings.TrimSpace(r.URL.Query().Get("session_id"))
	if sessionID == "" {
		writeError(w, r, http.StatusBadRequest, "session_id is required")
		return "", false
	}
	return sessionID, true
}
