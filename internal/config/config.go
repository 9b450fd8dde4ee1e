package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Process configuration assembled from environment variables.
// Collaborator endpoints and credentials are carried explicitly so the
// scoring and planning services stay free of ambient global state.
type Config struct {
	Port        string
	DBPath      string
	DatabaseURL string
	CacheDriver string

	RedisAddr     string
	RedisPassword string
	SessionTTL    time.Duration

	NominatimBaseURL string
	OSRMBaseURL      string
	TrafficBaseURL   string
	TrafficAPIKey    string
	WeatherBaseURL   string
	WeatherAPIKey    string

	LLMProvider string
	LLMAPIKey   string
	LLMBaseURL  string
	LLMModel    string

	PricingPath string

	RateLimitPerSec int
	RateLimitBurst  int
	CORSOrigins     []string
}

// Load reads configuration from the environment, applying defaults for
// anything optional. Validation of required keys per feature (e.g. the
// weather API key) happens where the feature is wired.
func Load() (*Config, error) {
	cfg := &Config{
		Port:        Get("PORT", "8080"),
		DBPath:      Get("DB_PATH", "data/optimizer.db"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		CacheDriver: strings.ToLower(Get("CACHE_DRIVER", "sqlite")),

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		NominatimBaseURL: Get("NOMINATIM_BASE_URL", "https://nominatim.openstreetmap.org"),
		OSRMBaseURL:      Get("OSRM_BASE_URL", "https://router.project-osrm.org"),
		TrafficBaseURL:   Get("TRAFFIC_BASE_URL", "https://api.tomtom.com"),
		TrafficAPIKey:    os.Getenv("TRAFFIC_API_KEY"),
		WeatherBaseURL:   Get("WEATHER_BASE_URL", "https://api.openweathermap.org"),
		WeatherAPIKey:    os.Getenv("WEATHER_API_KEY"),

		LLMProvider: strings.ToLower(Get("LLM_PROVIDER", "off")),
		LLMAPIKey:   os.Getenv("LLM_API_KEY"),
		LLMBaseURL:  os.Getenv("LLM_BASE_URL"),
		LLMModel:    os.Getenv("LLM_MODEL"),

		PricingPath: os.Getenv("PRICING_CONFIG"),

		RateLimitPerSec: readIntEnv("RATE_LIMIT_PER_SEC", 5),
		RateLimitBurst:  readIntEnv("RATE_LIMIT_BURST", 10),
	}

	ttl, err := time.ParseDuration(Get("SESSION_TTL", "24h"))
	if err != nil {
		return nil, fmt.Errorf("load config: parse SESSION_TTL: %w", err)
	}
	cfg.SessionTTL = ttl

	origins := Get("CORS_ORIGINS", "*")
	for _, o := range strings.Split(origins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.CORSOrigins = append(cfg.CORSOrigins, o)
		}
	}

	switch cfg.CacheDriver {
	case "sqlite", "postgres":
	default:
		return nil, fmt.Errorf("load config: CACHE_DRIVER must be sqlite or postgres, got %q", cfg.CacheDriver)
	}

	if cfg.CacheDriver == "postgres" && strings.TrimSpace(cfg.DatabaseURL) == "" {
		return nil, fmt.Errorf("load config: DATABASE_URL is required when CACHE_DRIVER=postgres")
	}

	switch cfg.LLMProvider {
	case "off", "openai", "anthropic":
	default:
		return nil, fmt.Errorf("load config: LLM_PROVIDER must be off, openai or anthropic, got %q", cfg.LLMProvider)
	}

	return cfg, nil
}

// Get returns the environment value for key, or fallback when unset.
func Get(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func readIntEnv(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
