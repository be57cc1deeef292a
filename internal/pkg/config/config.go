package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	API     APIConfig
	Session SessionConfig
	Mongo   MongoConfig
	Redis   RedisConfig
}

// APIConfig points at the EcoTrash REST API.
type APIConfig struct {
	BaseURL string        `env:"API_BASE_URL, default=http://localhost:8000/api/v1"`
	Timeout time.Duration `env:"API_TIMEOUT,  default=15s"`
}

// SessionConfig selects where the session is persisted.
type SessionConfig struct {
	// Driver is one of file, memory, redis, mongo.
	Driver string `env:"SESSION_DRIVER, default=file"`
	Key    string `env:"SESSION_KEY,    default=ecotrash:session"`
	Dir    string `env:"SESSION_DIR,    default=.ecotrash"`
	// Secret, when set, encrypts the persisted session.
	Secret string `env:"SESSION_SECRET"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=ecotrash_dashboard"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

var ErrUnknownDriver = errors.New("unknown session driver")

// IsDevelopment reports whether pretty logging and other local defaults apply.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Validate checks the values envconfig cannot express.
func (c *Config) Validate() error {
	switch c.Session.Driver {
	case "file", "memory", "redis", "mongo":
	default:
		return fmt.Errorf("%w: %q", ErrUnknownDriver, c.Session.Driver)
	}
	if c.API.BaseURL == "" {
		return errors.New("API_BASE_URL is required")
	}
	return nil
}

// Load reads a .env file when one exists, then the environment, using
// go-envconfig. Variables already set in the environment win over .env.
func Load(ctx context.Context) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config: read .env: %w", err)
	}
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("config: failed to load configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}
