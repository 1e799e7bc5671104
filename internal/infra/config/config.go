package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	StoreMemory = "memory"
	StoreMongo  = "mongo"
	StoreRedis  = "redis"
)

// Config aggregates gateway configuration loaded from environment variables.
type Config struct {
	Env                string
	HTTPAddr           string
	BookingAPIURL      string
	BookingAPITimeout  time.Duration
	CheckoutStore      string
	CheckoutTTL        time.Duration
	MongoURI           string
	MongoDB            string
	RedisAddr          string
	RedisPassword      string
	RedisDB            int
	KafkaBrokers       []string
	KafkaTopicPrefix   string
	OutboxPollInterval time.Duration
	RetryBackoff       []time.Duration
	RateLimitRPM       int
	RateLimitBurst     int
	CatalogPageSize    int
	CORSOrigins        []string
	HeaderAuthFallback bool
}

// RelayEnabled reports whether recorded events are shipped to kafka.
func (c Config) RelayEnabled() bool {
	return len(c.KafkaBrokers) > 0
}

// Load parses configuration from the current environment.
func Load() (Config, error) {
	cfg := Config{
		Env:              getEnv("APP_ENV", "dev"),
		HTTPAddr:         getEnv("HTTP_ADDR", ":8080"),
		BookingAPIURL:    strings.TrimRight(os.Getenv("BOOKING_API_URL"), "/"),
		CheckoutStore:    strings.ToLower(getEnv("CHECKOUT_STORE", StoreMemory)),
		MongoURI:         os.Getenv("MONGO_URI"),
		MongoDB:          getEnv("MONGO_DB", "rukorent"),
		RedisAddr:        os.Getenv("REDIS_ADDR"),
		RedisPassword:    os.Getenv("REDIS_PASSWORD"),
		KafkaBrokers:     splitList(os.Getenv("KAFKA_BROKERS")),
		KafkaTopicPrefix: getEnv("KAFKA_TOPIC_PREFIX", ""),
		CORSOrigins:      splitList(getEnv("CORS_ORIGINS", "http://localhost:3000")),
	}

	var err error
	if cfg.BookingAPITimeout, err = parseDurationEnv("BOOKING_API_TIMEOUT", 10*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.CheckoutTTL, err = parseDurationEnv("CHECKOUT_TTL", 2*time.Hour); err != nil {
		return Config{}, err
	}
	if cfg.OutboxPollInterval, err = parseDurationEnv("OUTBOX_POLL_INTERVAL", 500*time.Millisecond); err != nil {
		return Config{}, err
	}
	if cfg.RedisDB, err = parseIntEnv("REDIS_DB", 0); err != nil {
		return Config{}, err
	}
	if cfg.RateLimitRPM, err = parseIntEnv("RATE_LIMIT_RPM", 120); err != nil {
		return Config{}, err
	}
	if cfg.RateLimitBurst, err = parseIntEnv("RATE_LIMIT_BURST", 20); err != nil {
		return Config{}, err
	}
	if cfg.CatalogPageSize, err = parseIntEnv("CATALOG_PAGE_SIZE", 9); err != nil {
		return Config{}, err
	}
	if cfg.HeaderAuthFallback, err = parseBoolEnv("HEADER_AUTH_FALLBACK", cfg.Env == "dev" || cfg.Env == "local"); err != nil {
		return Config{}, err
	}

	for _, raw := range strings.Split(getEnv("RETRY_BACKOFF", "1s,5s,30s"), ",") {
		val := strings.TrimSpace(raw)
		if val == "" {
			continue
		}
		d, err := time.ParseDuration(val)
		if err != nil {
			return Config{}, fmt.Errorf("invalid RETRY_BACKOFF component %q: %w", raw, err)
		}
		cfg.RetryBackoff = append(cfg.RetryBackoff, d)
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.BookingAPIURL == "" {
		return fmt.Errorf("BOOKING_API_URL is required")
	}
	if u, err := url.Parse(c.BookingAPIURL); err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("BOOKING_API_URL must be an absolute url, got %q", c.BookingAPIURL)
	}
	switch c.CheckoutStore {
	case StoreMemory:
	case StoreMongo:
		if c.MongoURI == "" {
			return fmt.Errorf("MONGO_URI is required when CHECKOUT_STORE=mongo")
		}
	case StoreRedis:
		if c.RedisAddr == "" {
			return fmt.Errorf("REDIS_ADDR is required when CHECKOUT_STORE=redis")
		}
	default:
		return fmt.Errorf("unsupported CHECKOUT_STORE %q", c.CheckoutStore)
	}
	if c.RelayEnabled() && c.MongoURI == "" {
		return fmt.Errorf("MONGO_URI is required when KAFKA_BROKERS is set")
	}
	if c.CatalogPageSize <= 0 {
		return fmt.Errorf("CATALOG_PAGE_SIZE must be positive")
	}
	if c.RateLimitRPM < 0 || c.RateLimitBurst < 0 {
		return fmt.Errorf("RATE_LIMIT_RPM and RATE_LIMIT_BURST must not be negative")
	}
	return nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func parseDurationEnv(key string, def time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return def, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s duration: %w", key, err)
	}
	return d, nil
}

func parseIntEnv(key string, def int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s integer: %w", key, err)
	}
	return n, nil
}

func parseBoolEnv(key string, def bool) (bool, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return def, nil
	}
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "t", "true", "yes", "y", "on":
		return true, nil
	case "0", "f", "false", "no", "n", "off":
		return false, nil
	default:
		return false, fmt.Errorf("invalid %s boolean: %q", key, raw)
	}
}
