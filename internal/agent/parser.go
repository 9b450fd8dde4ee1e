package agent

import (
	"context"
	"delivery-optimizer/internal/domain"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ErrUnparseable marks queries that could not be turned into a typed
// request. Callers map it to a client error, not a server failure.
var ErrUnparseable = errors.New("query not understood")

// Parser turns a free-form query into a typed request.
type Parser interface {
	Parse(ctx context.Context, query string) (Request, error)
}

// RuleParser resolves queries with keyword and pattern rules alone.
// It is deterministic and always available; the LLM parser falls back
// to it.
type RuleParser struct{}

func NewRuleParser() *RuleParser { return &RuleParser{} }

var (
	fromToPattern  = regexp.MustCompile(`(?i)\bfrom\s+(.+?)\s+to\s+(.+)$`)
	betweenPattern = regexp.MustCompile(`(?i)\bbetween\s+(.+?)\s+and\s+(.+)$`)
	inPattern      = regexp.MustCompile(`(?i)\b(?:in|at|around|near)\s+(.+)$`)
	weightPattern  = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*kg\b`)
)

// Destination text is cut before the first qualifier clause.
var qualifierCuts = []string{
	" with ", " using ", " carrying ", " weighing ", " by ", " via ", " on a ", " in a ",
}

func (p *RuleParser) Parse(ctx context.Context, query string) (Request, error) {
	q := strings.TrimRight(strings.TrimSpace(query), " ?!.")
	if q == "" {
		return nil, fmt.Errorf("%w: empty query", ErrUnparseable)
	}

	lower := strings.ToLower(q)
	origin, destinations := extractPlaces(q)

	switch {
	case containsAny(lower, "cost", "price", "how much", "expensive", "charge", "estimate"):
		if origin == "" || len(destinations) == 0 {
			return nil, fmt.Errorf("%w: could not identify origin and destination", ErrUnparseable)
		}
		return CostRequest{
			Origin:        origin,
			Destination:   destinations[0],
			CargoWeightKg: parseWeight(q),
		}, nil

	case containsAny(lower, "traffic", "congestion", "rush hour", "jam"):
		o, d, ok := pairOrPlace(origin, destinations, q)
		if !ok {
			return nil, fmt.Errorf("%w: could not identify a location", ErrUnparseable)
		}
		return TrafficRequest{Origin: o, Destination: d}, nil

	case containsAny(lower, "weather", "rain", "snow", "storm", "fog", "wind"):
		o, d, ok := pairOrPlace(origin, destinations, q)
		if !ok {
			return nil, fmt.Errorf("%w: could not identify a location", ErrUnparseable)
		}
		return WeatherRequest{Origin: o, Destination: d}, nil
	}

	if origin == "" || len(destinations) == 0 {
		return nil, fmt.Errorf("%w: could not identify origin and destination", ErrUnparseable)
	}

	if len(destinations) > 1 {
		return MultiRouteRequest{Origin: origin, Destinations: destinations}, nil
	}

	return RouteRequest{
		Origin:        origin,
		Destination:   destinations[0],
		Vehicle:       parseVehicle(lower),
		CargoWeightKg: parseWeight(q),
	}, nil
}

// extractPlaces pulls the origin and one or more destinations out of
// "from X to Y" or "between X and Y" phrasing. Destinations split on
// commas and a trailing "and", so "from D to A, B and C" yields three.
func extractPlaces(q string) (string, []string) {
	if m := fromToPattern.FindStringSubmatch(q); m != nil {
		return cleanPlace(m[1]), splitStops(m[2])
	}
	if m := betweenPattern.FindStringSubmatch(q); m != nil {
		return cleanPlace(m[1]), splitStops(m[2])
	}
	return "", nil
}

// pairOrPlace accepts either an origin/destination pair or a single
// "in X" place, which stands for both ends.
func pairOrPlace(origin string, destinations []string, q string) (string, string, bool) {
	if origin != "" && len(destinations) > 0 {
		return origin, destinations[0], true
	}
	if m := inPattern.FindStringSubmatch(q); m != nil {
		place := cleanPlace(m[1])
		if place != "" {
			return place, place, true
		}
	}
	return "", "", false
}

func splitStops(s string) []string {
	parts := strings.Split(s, ",")
	// The last segment may still carry an "and" conjunction.
	if last := parts[len(parts)-1]; strings.Contains(strings.ToLower(last), " and ") {
		idx := strings.Index(strings.ToLower(last), " and ")
		parts = append(parts[:len(parts)-1], last[:idx], last[idx+len(" and "):])
	}

	stops := make([]string, 0, len(parts))
	for _, part := range parts {
		if place := cleanPlace(part); place != "" {
			stops = append(stops, place)
		}
	}
	return stops
}

// cleanPlace trims qualifier clauses ("with a truck", "carrying 500 kg")
// and surrounding noise from a captured place name.
func cleanPlace(s string) string {
	lower := strings.ToLower(s)
	cut := len(s)
	for _, sep := range qualifierCuts {
		if idx := strings.Index(lower, sep); idx >= 0 && idx < cut {
			cut = idx
		}
	}
	return strings.Join(strings.Fields(s[:cut]), " ")
}

func parseWeight(q string) float64 {
	m := weightPattern.FindStringSubmatch(q)
	if m == nil {
		return 0
	}
	w, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0
	}
	return w
}

func parseVehicle(lower string) domain.VehicleType {
	for _, word := range []string{"truck", "lorry", "van", "minivan", "bike", "motorcycle", "motorbike", "scooter"} {
		if strings.Contains(lower, word) {
			vt, err := domain.ParseVehicleType(word)
			if err == nil {
				return vt
			}
		}
	}
	return ""
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
