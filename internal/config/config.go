package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
	"github.com/shopspring/decimal"

	"github.com/kicksline/storefront-api/internal/pricing"
)

// Config holds application configuration loaded from the environment.
type Config struct {
	AppEnv             string
	Port               string
	RedisURL           string
	CORSAllowedOrigins []string

	CurrencyCode          string
	TaxRate               decimal.Decimal
	FreeShippingThreshold decimal.Decimal
	FlatShippingFee       decimal.Decimal

	SeedCatalog     bool
	CatalogCacheTTL time.Duration
	IdempotencyTTL  time.Duration
	RateLimitWindow time.Duration
	RateLimitMax    int
}

// Load reads configuration from environment variables and optional .env files.
// REDIS_URL is optional: when empty, the redis-backed concerns (featured
// cache, idempotency, rate limiting) stay disabled and the service runs fully
// in memory.
func Load() (*Config, error) {
	_ = godotenv.Load()

	k := koanf.New(".")
	if err := k.Load(env.Provider("", ".", func(s string) string { return s }), nil); err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	taxRate, err := parseDecimal(k.String("PRICING_TAX_RATE"), "0.08")
	if err != nil {
		return nil, fmt.Errorf("PRICING_TAX_RATE: %w", err)
	}
	threshold, err := parseDecimal(k.String("PRICING_FREE_SHIPPING_THRESHOLD"), "50")
	if err != nil {
		return nil, fmt.Errorf("PRICING_FREE_SHIPPING_THRESHOLD: %w", err)
	}
	shippingFee, err := parseDecimal(k.String("PRICING_FLAT_SHIPPING_FEE"), "9.99")
	if err != nil {
		return nil, fmt.Errorf("PRICING_FLAT_SHIPPING_FEE: %w", err)
	}

	cfg := &Config{
		AppEnv:                valueOrDefault(k.String("APP_ENV"), "development"),
		Port:                  valueOrDefault(k.String("PORT"), "8080"),
		RedisURL:              strings.TrimSpace(k.String("REDIS_URL")),
		CORSAllowedOrigins:    splitAndTrim(k.String("CORS_ALLOWED_ORIGINS")),
		CurrencyCode:          valueOrDefault(k.String("CURRENCY_CODE"), "USD"),
		TaxRate:               taxRate,
		FreeShippingThreshold: threshold,
		FlatShippingFee:       shippingFee,
		SeedCatalog:           parseBool(valueOrDefault(k.String("CATALOG_SEED"), "true")),
		CatalogCacheTTL:       parseDuration(k.String("CATALOG_CACHE_TTL"), "5m"),
		IdempotencyTTL:        parseDuration(k.String("IDEMPOTENCY_TTL"), "24h"),
		RateLimitWindow:       parseDuration(k.String("RATE_LIMIT_WINDOW"), "1m"),
		RateLimitMax:          parseInt(k.String("RATE_LIMIT_MAX"), 120),
	}

	if cfg.TaxRate.IsNegative() {
		return nil, errors.New("PRICING_TAX_RATE must not be negative")
	}
	if cfg.FlatShippingFee.IsNegative() {
		return nil, errors.New("PRICING_FLAT_SHIPPING_FEE must not be negative")
	}
	if cfg.FreeShippingThreshold.IsNegative() {
		return nil, errors.New("PRICING_FREE_SHIPPING_THRESHOLD must not be negative")
	}

	return cfg, nil
}

// Rates bundles the pricing constants for the totals engine.
func (c *Config) Rates() pricing.Rates {
	return pricing.Rates{
		TaxRate:               c.TaxRate,
		FreeShippingThreshold: c.FreeShippingThreshold,
		FlatShippingFee:       c.FlatShippingFee,
	}
}

// HTTPAddr returns the address the HTTP server should bind to.
func (c *Config) HTTPAddr() string {
	port := strings.TrimSpace(c.Port)
	if port == "" {
		port = "8080"
	}
	if strings.HasPrefix(port, ":") {
		return port
	}
	return ":" + port
}

func splitAndTrim(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func valueOrDefault(value, fallback string) string {
	if strings.TrimSpace(value) != "" {
		return value
	}
	return fallback
}

func parseDecimal(value, fallback string) (decimal.Decimal, error) {
	base := strings.TrimSpace(value)
	if base == "" {
		base = fallback
	}
	return decimal.NewFromString(base)
}

func parseDuration(value, fallback string) time.Duration {
	base := strings.TrimSpace(value)
	if base == "" {
		base = fallback
	}
	d, err := time.ParseDuration(base)
	if err != nil {
		d, _ = time.ParseDuration(fallback)
	}
	return d
}

func parseInt(value string, fallback int) int {
	base := strings.TrimSpace(value)
	if base == "" {
		return fallback
	}
	var n int
	if _, err := fmt.Sscanf(base, "%d", &n); err != nil {
		return fallback
	}
	return n
}

func parseBool(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}

// MustLoad behaves like Load but panics on error. Useful for tests and command entrypoints.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

// LoadForTests allows tests to override environment variables without touching the real environment.
func LoadForTests(env map[string]string) (*Config, error) {
	original := make(map[string]string, len(env))
	for key := range env {
		original[key] = os.Getenv(key)
		if err := setEnvVar(key, env[key]); err != nil {
			return nil, err
		}
	}
	cfg, err := Load()
	restoreErr := restoreEnv(original)
	if err != nil {
		return nil, err
	}
	return cfg, restoreErr
}

func setEnvVar(key, value string) error {
	if value == "" {
		return os.Unsetenv(key)
	}
	return os.Setenv(key, value)
}

func restoreEnv(values map[string]string) error {
	var errs []string
	for key, value := range values {
		if err := setEnvVar(key, value); err != nil {
			errs = append(errs, fmt.Sprintf("%s: %v", key, err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("restore env: %s", strings.Join(errs, "; "))
	}
	return nil
}
