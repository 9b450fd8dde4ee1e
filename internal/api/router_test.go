package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"delivery-optimizer/internal/agent"
	"delivery-optimizer/internal/config"
	"delivery-optimizer/internal/domain"
)

type staticGeocoder struct{}

func (staticGeocoder) Geocode(context.Context, string) (domain.Coordinates, error) {
	return domain.Coordinates{Lon: 28.97, Lat: 41.00}, nil
}

type staticRoutes struct{}

func (staticRoutes) GetRoutes(context.Context, domain.Coordinates, domain.Coordinates) ([]domain.RouteCandidate, error) {
	return []domain.RouteCandidate{{ID: "r1", DistanceKm: 10, DurationMin: 20}}, nil
}

func (staticRoutes) GetLeg(context.Context, domain.Coordinates, domain.Coordinates) (domain.RouteLeg, error) {
	return domain.RouteLeg{DistanceKm: 10, DurationMin: 20}, nil
}

type staticTraffic struct{}

func (staticTraffic) GetFactor(context.Context, domain.Coordinates, time.Time) (float64, error) {
	return 1.0, nil
}

type staticWeather struct{}

func (staticWeather) GetConditions(context.Context, domain.Coordinates) (domain.WeatherObservation, error) {
	return domain.WeatherObservation{Summary: "clear sky", TempC: 18}, nil
}

func testRouter(ratePerSec, burst int) http.Handler {
	pricing := config.DefaultPricing()
	coordinator := agent.NewCoordinator(staticGeocoder{}, staticRoutes{}, staticTraffic{}, staticWeather{}, pricing)
	svc := agent.NewService(agent.NewRuleParser(), nil, coordinator, nil, nil)
	return NewRouter(Deps{
		Service:     svc,
		Coordinator: coordinator,
		Pricing:     pricing,
		RatePerSec:  ratePerSec,
		RateBurst:   burst,
		CORSOrigins: []string{"*"},
	})
}

func TestRouterRateLimitsAPIOnly(t *testing.T) {
	router := testRouter(1, 1)

	first := httptest.NewRecorder()
	router.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/api/vehicles", nil))
	if first.Code != http.StatusOK {
		t.Fatalf("first request: expected 200, got %d", first.Code)
	}

	second := httptest.NewRecorder()
	router.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/api/vehicles", nil))
	if second.Code != http.StatusTooManyRequests {
		t.Fatalf("second request: expected 429, got %d", second.Code)
	}

	health := httptest.NewRecorder()
	router.ServeHTTP(health, httptest.NewRequest(http.MethodGet, "/health", nil))
	if health.Code != http.StatusOK {
		t.Fatalf("health must not be rate limited, got %d", health.Code)
	}
}

func TestRouterRequestID(t *testing.T) {
	router := testRouter(0, 0)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Header().Get("X-Request-ID") == "" {
		t.Fatalf("expected an assigned request id")
	}

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "req-42")
	echoed := httptest.NewRecorder()
	router.ServeHTTP(echoed, req)
	if got := echoed.Header().Get("X-Request-ID"); got != "req-42" {
		t.Fatalf("expected the caller's request id back, got %q", got)
	}
}

func TestRouterCORSHeaders(t *testing.T) {
	router := testRouter(0, 0)

	req := httptest.NewRequest(http.MethodGet, "/api/vehicles", nil)
	req.Header.Set("Origin", "http://example.com")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("expected wildcard CORS origin, got %q", got)
	}
}
