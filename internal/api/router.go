package api

import (
	"net/http"

	"delivery-optimizer/internal/agent"
	"delivery-optimizer/internal/api/handlers"
	"delivery-optimizer/internal/config"

	"github.com/justinas/alice"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"golang.org/x/time/rate"
)

// Deps carries everything the HTTP layer needs.
type Deps struct {
	Service     *agent.Service
	Coordinator *agent.Coordinator
	Pricing     *config.PricingConfig

	RatePerSec  int
	RateBurst   int
	CORSOrigins []string
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(deps Deps) http.Handler {
	mux := http.NewServeMux()

	queryHandler := &handlers.QueryHandler{Svc: deps.Service}
	routeHandler := &handlers.RouteHandler{Coordinator: deps.Coordinator}
	costHandler := &handlers.CostHandler{Coordinator: deps.Coordinator}
	conditionsHandler := &handlers.ConditionsHandler{Coordinator: deps.Coordinator}
	vehicleHandler := &handlers.VehicleHandler{Pricing: deps.Pricing}
	historyHandler := &handlers.HistoryHandler{Svc: deps.Service}

	mux.HandleFunc("/health", handlers.Health)
	mux.Handle("/metrics", promhttp.Handler())

	mux.HandleFunc("/api/query", queryHandler.Query)
	mux.HandleFunc("/api/routes/recommend", routeHandler.Recommend)
	mux.HandleFunc("/api/routes/multi", routeHandler.Multi)
	mux.HandleFunc("/api/costs/estimate", costHandler.Estimate)
	mux.HandleFunc("/api/traffic", conditionsHandler.Traffic)
	mux.HandleFunc("/api/weather", conditionsHandler.Weather)
	mux.HandleFunc("/api/vehicles", vehicleHandler.List)
	mux.HandleFunc("/api/history", historyHandler.List)
	mux.HandleFunc("/api/sessions/history", historyHandler.Session)
	mux.HandleFunc("/api/sessions/clear", historyHandler.Clear)

	limit := rate.Inf
	if deps.RatePerSec > 0 {
		limit = rate.Limit(deps.RatePerSec)
	}
	limiter := rate.NewLimiter(limit, deps.RateBurst)

	chain := alice.New(
		recoverMiddleware,
		requestIDMiddleware,
		loggingMiddleware,
		rateLimitMiddleware(limiter),
	).Then(mux)

	c := cors.New(cors.Options{
		AllowedOrigins: deps.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"Content-Type", "X-Request-ID"},
	})
	return c.Handler(chain)
}
