package config

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Cart store backends.
const (
	CartStoreFile     = "file"
	CartStoreMemory   = "memory"
	CartStoreRedis    = "redis"
	CartStorePostgres = "postgres"
)

var ErrInvalidCartStore = errors.New("invalid cart store")

type Config struct {
	Port         string        `env:"PORT" envDefault:"8080"`
	Environment  string        `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel     string        `env:"LOG_LEVEL" envDefault:"info"`
	StartupDelay time.Duration `env:"STARTUP_DELAY" envDefault:"2s"`

	CartStore     string `env:"CART_STORE" envDefault:"file"`
	CartDir       string `env:"CART_DIR" envDefault:"./data"`
	RedisAddr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	// DatabaseURL switches the catalog to postgres and is the postgres cart store's DSN.
	DatabaseURL string `env:"DATABASE_URL"`

	// SessionIdleTimeout drops in-memory sessions nobody has used for that long.
	SessionIdleTimeout time.Duration `env:"SESSION_IDLE_TIMEOUT" envDefault:"30m"`

	// CORSOrigins lists browser origins allowed to call the API. Credentials
	// (the session cookie) are only allowed for an explicit list, never for "*".
	CORSOrigins     []string      `env:"CORS_ORIGINS" envDefault:"*" envSeparator:","`
	OTelEndpoint    string        `env:"OTEL_ENDPOINT"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// Load reads .env files (missing files are fine; real environment variables
// win) and parses the environment into a Config.
func Load(files ...string) (Config, error) {
	_ = godotenv.Load(files...)

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	stores := []string{CartStoreFile, CartStoreMemory, CartStoreRedis, CartStorePostgres}
	if !slices.Contains(stores, c.CartStore) {
		return fmt.Errorf("%w: %q", ErrInvalidCartStore, c.CartStore)
	}
	if c.CartStore == CartStorePostgres && c.DatabaseURL == "" {
		return fmt.Errorf("%w: postgres requires DATABASE_URL", ErrInvalidCartStore)
	}
	return nil
}

func (c Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func (c Config) Addr() string {
	return ":" + c.Port
}
