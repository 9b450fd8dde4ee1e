package routing

import (
	"context"
	"delivery-optimizer/internal/domain"
	"delivery-optimizer/internal/platform/httpret"
	"delivery-optimizer/internal/platform/obs"
	"delivery-optimizer/internal/ports"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"
)

type osrmManeuver struct {
	Type     string `json:"type"`
	Modifier string `json:"modifier"`
}

type osrmStep struct {
	Name     string       `json:"name"`
	Maneuver osrmManeuver `json:"maneuver"`
}

type osrmRouteLeg struct {
	Summary string     `json:"summary"`
	Steps   []osrmStep `json:"steps"`
}

type osrmRoute struct {
	DistanceMeters  float64 `json:"distance"`
	DurationSeconds float64 `json:"duration"`
	Geometry        struct {
		Coordinates [][]float64 `json:"coordinates"`
	} `json:"geometry"`
	Legs []osrmRouteLeg `json:"legs"`
}

type osrmRouteResponse struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Routes  []osrmRoute `json:"routes"`
}

type osrmTableResponse struct {
	Code      string       `json:"code"`
	Message   string       `json:"message"`
	Durations [][]*float64 `json:"durations"`
	Distances [][]*float64 `json:"distances"`
}

// OSRMRouteProvider retrieves candidate routes and travel metrics from
// an OSRM instance.
//
// It coordinates:
//   - Persistent leg caching for single-pair lookups
//   - Batched matrix lookups via the table service
//   - External API calls with retry/backoff
//
// The provider is safe for concurrent use.
type OSRMRouteProvider struct {
	session *http.Client
	baseURL string
	profile string
	cache   ports.RouteCache
}

func NewOSRMRouteProvider(baseURL string, cache ports.RouteCache) (*OSRMRouteProvider, error) {
	if baseURL == "" {
		return nil, errors.New("OSRM base URL is empty")
	}

	return &OSRMRouteProvider{
		session: &http.Client{Timeout: 15 * time.Second},
		baseURL: strings.TrimRight(baseURL, "/"),
		profile: "driving",
		cache:   cache,
	}, nil
}

// GetRoutes fetches all alternatives OSRM proposes between two points,
// in the order the service returned them. Congestion is left at zero;
// traffic data comes from a separate collaborator.
func (p *OSRMRouteProvider) GetRoutes(
	ctx context.Context,
	origin, destination domain.Coordinates,
) (_ []domain.RouteCandidate, err error) {
	defer obs.Time(ctx, "osrm.GetRoutes")(&err)

	if err := checkPair(origin, destination); err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("%s/route/v1/%s/%s", p.baseURL, p.profile, pathPair(origin, destination))

	resp, err := httpret.DoWithRetry(ctx, p.session, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, err
		}
		q := req.URL.Query()
		q.Set("alternatives", "true")
		q.Set("steps", "true")
		q.Set("overview", "full")
		q.Set("geometries", "geojson")
		req.URL.RawQuery = q.Encode()
		return req, nil
	})
	if err != nil {
		return nil, fmt.Errorf("OSRM route request: %w", err)
	}
	defer resp.Body.Close()

	var decoded osrmRouteResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode route response: %w", err)
	}
	if decoded.Code != "Ok" {
		return nil, fmt.Errorf("OSRM route service: %s (%s)", decoded.Code, decoded.Message)
	}
	if len(decoded.Routes) == 0 {
		return nil, errors.New("OSRM returned no routes")
	}

	candidates := make([]domain.RouteCandidate, 0, len(decoded.Routes))
	for i, r := range decoded.Routes {
		candidates = append(candidates, domain.RouteCandidate{
			ID:          fmt.Sprintf("route-%d", i+1),
			Summary:     routeSummary(r),
			Geometry:    geometryCoords(r.Geometry.Coordinates),
			Steps:       routeSteps(r),
			DistanceKm:  r.DistanceMeters / 1000,
			DurationMin: r.DurationSeconds / 60,
		})
	}

	return candidates, nil
}

// GetLeg returns metrics for the fastest route between two points,
// consulting the persistent leg cache first.
func (p *OSRMRouteProvider) GetLeg(
	ctx context.Context,
	origin, destination domain.Coordinates,
) (_ domain.RouteLeg, err error) {
	defer obs.Time(ctx, "osrm.GetLeg")(&err)

	if err := checkPair(origin, destination); err != nil {
		return domain.RouteLeg{}, err
	}

	originKey := coordKey(origin)
	destKey := coordKey(destination)

	if p.cache != nil {
		hits, err := p.cache.GetMany(ctx, originKey, []string{destKey})
		if err != nil {
			return domain.RouteLeg{}, fmt.Errorf("route cache read: %w", err)
		}
		if leg, ok := hits[destKey]; ok {
			return leg, nil
		}
	}

	endpoint := fmt.Sprintf("%s/route/v1/%s/%s", p.baseURL, p.profile, pathPair(origin, destination))

	resp, err := httpret.DoWithRetry(ctx, p.session, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, err
		}
		q := req.URL.Query()
		q.Set("overview", "false")
		req.URL.RawQuery = q.Encode()
		return req, nil
	})
	if err != nil {
		return domain.RouteLeg{}, fmt.Errorf("OSRM leg request: %w", err)
	}
	defer resp.Body.Close()

	var decoded osrmRouteResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return domain.RouteLeg{}, fmt.Errorf("decode leg response: %w", err)
	}
	if decoded.Code != "Ok" {
		return domain.RouteLeg{}, fmt.Errorf("OSRM route service: %s (%s)", decoded.Code, decoded.Message)
	}
	if len(decoded.Routes) == 0 {
		return domain.RouteLeg{}, errors.New("OSRM returned no routes")
	}

	leg := domain.RouteLeg{
		DistanceKm:  decoded.Routes[0].DistanceMeters / 1000,
		DurationMin: decoded.Routes[0].DurationSeconds / 60,
	}

	if p.cache != nil {
		if err := p.cache.PutMany(ctx, originKey, map[string]domain.RouteLeg{destKey: leg}); err != nil {
			log.Printf("route cache write failed: %v", err)
		}
	}

	return leg, nil
}

// GetLegs fetches the full travel matrix between points in one call to
// the OSRM table service. Entry [i][j] is the leg from points[i] to
// points[j]; the diagonal is zero.
func (p *OSRMRouteProvider) GetLegs(
	ctx context.Context,
	points []domain.Coordinates,
) (_ [][]domain.RouteLeg, err error) {
	defer obs.Time(ctx, "osrm.GetLegs")(&err)

	if len(points) < 2 {
		return nil, errors.New("leg matrix needs at least two points")
	}
	for _, pt := range points {
		if !pt.InBounds() {
			return nil, fmt.Errorf("coordinates out of bounds: %v", pt)
		}
	}

	path := make([]string, 0, len(points))
	for _, pt := range points {
		path = append(path, pathCoord(pt))
	}
	endpoint := fmt.Sprintf("%s/table/v1/%s/%s", p.baseURL, p.profile, strings.Join(path, ";"))

	resp, err := httpret.DoWithRetry(ctx, p.session, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, err
		}
		q := req.URL.Query()
		q.Set("annotations", "duration,distance")
		req.URL.RawQuery = q.Encode()
		return req, nil
	})
	if err != nil {
		return nil, fmt.Errorf("OSRM table request: %w", err)
	}
	defer resp.Body.Close()

	var decoded osrmTableResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode table response: %w", err)
	}
	if decoded.Code != "Ok" {
		return nil, fmt.Errorf("OSRM table service: %s (%s)", decoded.Code, decoded.Message)
	}

	n := len(points)
	if len(decoded.Durations) != n || len(decoded.Distances) != n {
		return nil, fmt.Errorf(
			"table rows do not match points: durations=%d distances=%d points=%d",
			len(decoded.Durations), len(decoded.Distances), n,
		)
	}

	legs := make([][]domain.RouteLeg, n)
	for i := 0; i < n; i++ {
		if len(decoded.Durations[i]) != n || len(decoded.Distances[i]) != n {
			return nil, fmt.Errorf("table row %d has wrong length", i)
		}

		legs[i] = make([]domain.RouteLeg, n)
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}

			secondsPtr := decoded.Durations[i][j]
			metersPtr := decoded.Distances[i][j]
			// A null entry means the pair is unroutable.
			if secondsPtr == nil || metersPtr == nil {
				return nil, fmt.Errorf("no route between points %d and %d", i, j)
			}

			legs[i][j] = domain.RouteLeg{
				DistanceKm:  *metersPtr / 1000,
				DurationMin: *secondsPtr / 60,
			}
		}
	}

	return legs, nil
}

func checkPair(origin, destination domain.Coordinates) error {
	if !origin.InBounds() {
		return fmt.Errorf("origin coordinates out of bounds: %v", origin)
	}
	if !destination.InBounds() {
		return fmt.Errorf("destination coordinates out of bounds: %v", destination)
	}
	return nil
}

// pathCoord renders a coordinate the way OSRM paths expect: lon,lat.
func pathCoord(c domain.Coordinates) string {
	return strconv.FormatFloat(c.Lon, 'f', 6, 64) + "," + strconv.FormatFloat(c.Lat, 'f', 6, 64)
}

func pathPair(origin, destination domain.Coordinates) string {
	return pathCoord(origin) + ";" + pathCoord(destination)
}

// coordKey derives a stable cache key; 5 decimals keeps nearby lookups
// on the same entry without conflating distinct places.
func coordKey(c domain.Coordinates) string {
	return strconv.FormatFloat(c.Lon, 'f', 5, 64) + "," + strconv.FormatFloat(c.Lat, 'f', 5, 64)
}

func routeSummary(r osrmRoute) string {
	if len(r.Legs) > 0 && r.Legs[0].Summary != "" {
		return "via " + r.Legs[0].Summary
	}
	return "direct route"
}

func routeSteps(r osrmRoute) []string {
	var steps []string
	for _, leg := range r.Legs {
		for _, s := range leg.Steps {
			steps = append(steps, stepInstruction(s))
		}
	}
	return steps
}

func stepInstruction(s osrmStep) string {
	parts := make([]string, 0, 3)
	if s.Maneuver.Type != "" {
		parts = append(parts, s.Maneuver.Type)
	}
	if s.Maneuver.Modifier != "" {
		parts = append(parts, s.Maneuver.Modifier)
	}
	if s.Name != "" {
		parts = append(parts, "onto "+s.Name)
	}
	if len(parts) == 0 {
		return "continue"
	}
	return strings.Join(parts, " ")
}

func geometryCoords(raw [][]float64) []domain.Coordinates {
	coords := make([]domain.Coordinates, 0, len(raw))
	for _, pair := range raw {
		if len(pair) != 2 {
			continue
		}
		coords = append(coords, domain.Coordinates{Lon: pair[0], Lat: pair[1]})
	}
	return coords
}
