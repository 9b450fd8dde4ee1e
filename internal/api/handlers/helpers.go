package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"delivery-optimizer/internal/agent"
	"delivery-optimizer/internal/domain"
)

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode failed: method=%s path=%s err=%v", r.Method, r.URL.Path, err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, map[string]string{"error": msg})
}

// requireMethod enforces one allowed method per route.
func requireMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method == method {
		return true
	}
	w.Header().Set("Allow", method)
	writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
	return false
}

// decodeStrict decodes exactly one JSON object into v, rejecting
// unknown fields and trailing content.
func decodeStrict(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		return errors.New("invalid json body")
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return errors.New("body must contain only one JSON object")
	}
	return nil
}

// statusForError maps pipeline failures onto response codes. Input the
// caller could fix is 422, an upstream that produced nothing usable is
// 502, everything unrecognized is 500.
func statusForError(err error) int {
	switch {
	case errors.Is(err, agent.ErrUnparseable),
		errors.Is(err, domain.ErrPlaceNotFound),
		errors.Is(err, domain.ErrInvalidRouteData),
		errors.Is(err, domain.ErrInvalidCostFactors),
		errors.Is(err, domain.ErrInvalidWeights),
		errors.Is(err, domain.ErrNoSuitableVehicle):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrEmptyRouteSet):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// writeServiceError reports a pipeline failure. Internal errors are
// logged and masked; everything else surfaces its message.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusForError(err)
	if status == http.StatusInternalServerError {
		log.Printf("request failed: method=%s path=%s err=%v", r.Method, r.URL.Path, err)
		writeError(w, r, status, "internal server error")
		return
	}
	writeError(w, r, status, err.Error())
}
