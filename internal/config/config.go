package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"nursery-locator/internal/domain"
)

const (
	BackendFile     = "file"
	BackendPostgres = "postgres"

	SessionsMemory = "memory"
	SessionsRedis  = "redis"
)

// Config holds all application configuration.
type Config struct {
	Addr string

	FacilitySource  string
	FacilitySheet   string
	FacilityBackend string
	DatabaseURL     string

	BoundaryPath string

	FallbackLat   float64
	FallbackLon   float64
	FallbackLabel string

	DistanceMethod string

	SessionBackend string
	RedisAddr      string
	RedisPassword  string
	RedisDB        int
	SessionTTL     time.Duration

	CORSOrigins []string

	LogLevel  string
	LogFormat string

	TracingEnabled bool
}

// Load reads configuration from the environment. Malformed numeric, boolean
// or duration values are reported rather than silently replaced by defaults.
func Load() (*Config, error) {
	var errs []error

	cfg := &Config{
		Addr:            getEnv("ADDR", ":8080"),
		FacilitySource:  getEnv("FACILITY_SOURCE", "data/nurseries.csv"),
		FacilitySheet:   getEnv("FACILITY_SHEET", ""),
		FacilityBackend: strings.ToLower(getEnv("FACILITY_BACKEND", BackendFile)),
		DatabaseURL:     getEnv("DATABASE_URL", ""),
		BoundaryPath:    getEnv("BOUNDARY_PATH", "data/khariar_boundary.geojson"),
		FallbackLabel:   getEnv("FALLBACK_LABEL", "Khariar"),
		DistanceMethod:  strings.ToLower(getEnv("DISTANCE_METHOD", "geodesic")),
		SessionBackend:  strings.ToLower(getEnv("SESSION_BACKEND", SessionsMemory)),
		RedisAddr:       getEnv("REDIS_ADDR", ""),
		RedisPassword:   getEnv("REDIS_PASSWORD", ""),
		CORSOrigins:     splitList(getEnv("CORS_ORIGINS", "")),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		LogFormat:       getEnv("LOG_FORMAT", "text"),
	}

	cfg.FallbackLat = getEnvFloat("FALLBACK_LAT", 20.56, &errs)
	cfg.FallbackLon = getEnvFloat("FALLBACK_LON", 84.14, &errs)
	cfg.RedisDB = getEnvInt("REDIS_DB", 0, &errs)
	cfg.SessionTTL = getEnvDuration("SESSION_TTL", 24*time.Hour, &errs)
	cfg.TracingEnabled = getEnvBool("TRACING_ENABLED", false, &errs)

	if err := errors.Join(errs...); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	return cfg, nil
}

// Validate reports combinations that cannot start a server.
func (c *Config) Validate() error {
	var errs []error

	switch c.FacilityBackend {
	case BackendFile:
		if strings.TrimSpace(c.FacilitySource) == "" {
			errs = append(errs, errors.New("FACILITY_SOURCE is required for the file backend"))
		}
	case BackendPostgres:
		if strings.TrimSpace(c.DatabaseURL) == "" {
			errs = append(errs, errors.New("DATABASE_URL is required for the postgres backend"))
		}
	default:
		errs = append(errs, fmt.Errorf("FACILITY_BACKEND %q is not one of file, postgres", c.FacilityBackend))
	}

	switch c.SessionBackend {
	case SessionsMemory:
	case SessionsRedis:
		if strings.TrimSpace(c.RedisAddr) == "" {
			errs = append(errs, errors.New("REDIS_ADDR is required for the redis session backend"))
		}
	default:
		errs = append(errs, fmt.Errorf("SESSION_BACKEND %q is not one of memory, redis", c.SessionBackend))
	}

	switch c.DistanceMethod {
	case "geodesic", "haversine":
	default:
		errs = append(errs, fmt.Errorf("DISTANCE_METHOD %q is not one of geodesic, haversine", c.DistanceMethod))
	}

	if err := c.Fallback().Validate(); err != nil {
		errs = append(errs, fmt.Errorf("FALLBACK_LAT/FALLBACK_LON: %w", err))
	}
	if c.SessionTTL < 0 {
		errs = append(errs, errors.New("SESSION_TTL must not be negative"))
	}
	if c.RedisDB < 0 {
		errs = append(errs, errors.New("REDIS_DB must not be negative"))
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Fallback returns the configured fallback position.
func (c *Config) Fallback() domain.Coordinates {
	return domain.Coordinates{Lat: c.FallbackLat, Lon: c.FallbackLon}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvFloat(key string, fallback float64, errs *[]error) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", key, err))
		return fallback
	}
	return f
}

func getEnvInt(key string, fallback int, errs *[]error) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", key, err))
		return fallback
	}
	return n
}

func getEnvBool(key string, fallback bool, errs *[]error) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", key, err))
		return fallback
	}
	return b
}

func getEnvDuration(key string, fallback time.Duration, errs *[]error) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(strings.TrimSpace(v))
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", key, err))
		return fallback
	}
	return d
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
