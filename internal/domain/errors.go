package domain

import "errors"

// Failures surfaced by the scoring and estimation services and the
// place resolver. Call sites wrap these with detail; callers match
// them with errors.Is.
var (
	ErrInvalidRouteData   = errors.New("invalid route data")
	ErrInvalidCostFactors = errors.New("invalid cost factors")
	ErrInvalidWeights     = errors.New("invalid ranking weights")
	ErrEmptyRouteSet      = errors.New("empty route set")
	ErrNoSuitableVehicle  = errors.New("no suitable vehicle for load")
	ErrPlaceNotFound      = errors.New("place not found")
)
