package config

import (
	"fmt"
	"time"

	pkgconfig "github.com/Ricciar/grape-ceramics/pkg/config"
)

// Cache backend selection values.
const (
	CacheBackendMemory = "memory"
	CacheBackendRedis  = "redis"
)

// Config holds all configuration for the storefront service.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// HTTP server
	HTTPPort       int           `env:"HTTP_PORT" envDefault:"8080"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"30s"`
	AllowedOrigins []string      `env:"CORS_ORIGINS" envDefault:"*" envSeparator:","`
	PprofCIDRs     []string      `env:"PPROF_ALLOWED_CIDRS" envDefault:"127.0.0.1/32" envSeparator:","`

	// Upstream commerce API
	WooBaseURL        string        `env:"WOO_BASE_URL"`
	WooConsumerKey    string        `env:"WOO_CONSUMER_KEY"`
	WooConsumerSecret string        `env:"WOO_CONSUMER_SECRET"`
	UpstreamTimeout   time.Duration `env:"UPSTREAM_TIMEOUT" envDefault:"30s"`

	// Upstream content API
	WPBaseURL string `env:"WP_BASE_URL"`

	// Public store URL used to build checkout redirects.
	StoreBaseURL string `env:"STORE_BASE_URL"`

	// Cache
	CacheBackend string        `env:"CACHE_BACKEND" envDefault:"memory"`
	CacheTTL     time.Duration `env:"CACHE_TTL" envDefault:"5m"`

	// Redis (only used when CacheBackend is "redis")
	RedisAddr string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPass string `env:"REDIS_PASSWORD" envDefault:""`
	RedisDB   int    `env:"REDIS_DB" envDefault:"0"`

	// Cache prewarming
	PrewarmEnabled  bool          `env:"PREWARM_ENABLED" envDefault:"true"`
	PrewarmInterval time.Duration `env:"PREWARM_INTERVAL" envDefault:"4m"`
	PrewarmSlugs    []string      `env:"PREWARM_SLUGS" envSeparator:","`

	// Kafka (optional)
	KafkaEnabled bool     `env:"KAFKA_ENABLED" envDefault:"false"`
	KafkaBrokers []string `env:"KAFKA_BROKERS" envDefault:"localhost:9092" envSeparator:","`

	// Tracing (optional)
	TracingEnabled bool   `env:"TRACING_ENABLED" envDefault:"false"`
	OTLPEndpoint   string `env:"OTEL_EXPORTER_OTLP_ENDPOINT" envDefault:"localhost:4318"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := pkgconfig.Load(cfg); err != nil {
		return nil, fmt.Errorf("load storefront config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate checks configuration invariants.
func (c *Config) validate() error {
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid HTTP port: %d", c.HTTPPort)
	}
	if c.WooBaseURL == "" {
		return fmt.Errorf("WOO_BASE_URL is required")
	}
	if c.WooConsumerKey == "" || c.WooConsumerSecret == "" {
		return fmt.Errorf("WOO_CONSUMER_KEY and WOO_CONSUMER_SECRET are required")
	}
	if c.WPBaseURL == "" {
		return fmt.Errorf("WP_BASE_URL is required")
	}
	if c.StoreBaseURL == "" {
		return fmt.Errorf("STORE_BASE_URL is required")
	}
	if c.CacheBackend != CacheBackendMemory && c.CacheBackend != CacheBackendRedis {
		return fmt.Errorf("invalid cache backend: %q", c.CacheBackend)
	}
	if c.CacheTTL <= 0 {
		return fmt.Errorf("cache TTL must be positive")
	}
	return nil
}

// Development reports whether the service runs in development mode.
func (c *Config) Development() bool {
	return c.Environment == "development"
}
