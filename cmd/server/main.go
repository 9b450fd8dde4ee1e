package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"delivery-optimizer/internal/adapters/cache"
	"delivery-optimizer/internal/adapters/geocode"
	"delivery-optimizer/internal/adapters/llm"
	"delivery-optimizer/internal/adapters/repositories"
	"delivery-optimizer/internal/adapters/routing"
	"delivery-optimizer/internal/adapters/session"
	"delivery-optimizer/internal/adapters/traffic"
	"delivery-optimizer/internal/adapters/weather"
	"delivery-optimizer/internal/agent"
	"delivery-optimizer/internal/api"
	"delivery-optimizer/internal/config"
	"delivery-optimizer/internal/platform/db"
	"delivery-optimizer/internal/ports"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	_ "modernc.org/sqlite"
)

// main is the application composition root.
// It wires concrete adapters (SQLite/Postgres, Nominatim, OSRM, OpenWeather,
// optional TomTom and LLM providers) behind ports and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	if strings.TrimSpace(cfg.WeatherAPIKey) == "" {
		log.Fatal("WEATHER_API_KEY is required")
	}

	store, err := openStore(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer store.db.Close()

	geocoder, err := geocode.NewNominatimGeocoder(cfg.NominatimBaseURL, store.geocodeCache)
	if err != nil {
		log.Fatal(err)
	}
	routes, err := routing.NewOSRMRouteProvider(cfg.OSRMBaseURL, store.routeCache)
	if err != nil {
		log.Fatal(err)
	}
	weatherProvider, err := weather.NewOpenWeatherProvider(cfg.WeatherBaseURL, cfg.WeatherAPIKey)
	if err != nil {
		log.Fatal(err)
	}
	trafficProvider, err := newTrafficProvider(cfg)
	if err != nil {
		log.Fatal(err)
	}

	pricing, err := config.LoadPricing(cfg.PricingPath)
	if err != nil {
		log.Fatal(err)
	}

	sessions := newSessionStore(cfg)
	coordinator := agent.NewCoordinator(geocoder, routes, trafficProvider, weatherProvider, pricing)

	parser, phraser, err := newLanguageLayer(cfg)
	if err != nil {
		log.Fatal(err)
	}
	svc := agent.NewService(parser, phraser, coordinator, sessions, store.history)

	router := api.NewRouter(api.Deps{
		Service:     svc,
		Coordinator: coordinator,
		Pricing:     pricing,
		RatePerSec:  cfg.RateLimitPerSec,
		RateBurst:   cfg.RateLimitBurst,
		CORSOrigins: cfg.CORSOrigins,
	})

	// Timeouts are tuned for cold-cache geocode and route calls
	// (external API latency).
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Printf("Server listening addr=:%s cache=%s llm=%s", cfg.Port, cfg.CacheDriver, cfg.LLMProvider)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}

// dataStore groups the database-backed adapters so both drivers wire
// the same way.
type dataStore struct {
	db           *sql.DB
	geocodeCache ports.GeocodeCache
	routeCache   ports.RouteCache
	history      ports.HistoryRepository
}

// openStore opens the configured database and binds the caches and the
// history repository to it. The SQLite schema is created on startup;
// Postgres deployments are expected to run migrations separately.
func openStore(cfg *config.Config) (*dataStore, error) {
	if cfg.CacheDriver == "postgres" {
		conn, err := db.OpenPostgres(cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		return &dataStore{
			db:           conn,
			geocodeCache: cache.NewSQLGeocodeCache(conn),
			routeCache:   cache.NewSQLRouteCache(conn),
			history:      repositories.NewSQLHistoryRepository(conn),
		}, nil
	}

	conn, err := db.OpenSQLite(cfg.DBPath)
	if err != nil {
		return nil, err
	}
	if err := repositories.InitSchema(conn); err != nil {
		conn.Close()
		return nil, err
	}
	return &dataStore{
		db:           conn,
		geocodeCache: cache.NewSqliteGeocodeCache(conn),
		routeCache:   cache.NewSqliteRouteCache(conn),
		history:      repositories.NewSqliteHistoryRepository(conn),
	}, nil
}

// newTrafficProvider prefers live flow data when a key is configured
// and keeps the time-of-day heuristic as the always-available fallback.
func newTrafficProvider(cfg *config.Config) (ports.TrafficProvider, error) {
	heuristic := traffic.NewHeuristicProvider()
	if strings.TrimSpace(cfg.TrafficAPIKey) == "" {
		return heuristic, nil
	}

	flow, err := traffic.NewFlowProvider(cfg.TrafficBaseURL, cfg.TrafficAPIKey)
	if err != nil {
		return nil, err
	}
	return traffic.NewFallbackProvider(flow, heuristic), nil
}

func newSessionStore(cfg *config.Config) ports.ConversationStore {
	if cfg.RedisAddr != "" {
		return session.NewRedisStore(cfg.RedisAddr, cfg.RedisPassword, cfg.SessionTTL)
	}
	return session.NewMemoryStore(cfg.SessionTTL)
}

// newLanguageLayer picks the query parser and the optional answer
// phraser. A configured model always keeps the rule parser behind it,
// so the service answers even when the model is down.
func newLanguageLayer(cfg *config.Config) (agent.Parser, agent.Phraser, error) {
	rules := agent.NewRuleParser()

	switch cfg.LLMProvider {
	case "openai":
		client, err := llm.NewOpenAIClient(cfg.LLMAPIKey, cfg.LLMBaseURL, cfg.LLMModel)
		if err != nil {
			return nil, nil, err
		}
		return llm.NewFallbackParser(client, rules), client, nil
	case "anthropic":
		client, err := llm.NewAnthropicClient(cfg.LLMAPIKey, cfg.LLMBaseURL, cfg.LLMModel)
		if err != nil {
			return nil, nil, err
		}
		return llm.NewFallbackParser(client, rules), client, nil
	default:
		return rules, nil, nil
	}
}
