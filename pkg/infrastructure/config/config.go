package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
)

// Prefix is the environment variable prefix, e.g. POENGINE_STORE
const Prefix = "poengine"

// Store backends
const (
	StoreMemory = "memory"
	StoreSQLite = "sqlite"
	StoreMySQL  = "mysql"
)

// Config is the process configuration read from the environment
type Config struct {
	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"text"`

	Store       string `envconfig:"STORE" default:"memory"`
	DatabaseDSN string `envconfig:"DATABASE_DSN" default:"poengine.db"`

	// RedisAddr enables the distributed product lock when set
	RedisAddr     string        `envconfig:"REDIS_ADDR"`
	RedisPassword string        `envconfig:"REDIS_PASSWORD"`
	LockTTL       time.Duration `envconfig:"LOCK_TTL" default:"10s"`

	Concurrency int `envconfig:"CONCURRENCY" default:"4"`

	ReorderPoint         int    `envconfig:"REORDER_POINT" default:"5"`
	ReorderQuantity      int    `envconfig:"REORDER_QUANTITY" default:"10"`
	BackorderPenaltyDays int    `envconfig:"BACKORDER_PENALTY_DAYS" default:"14"`
	ReorderSchedule      string `envconfig:"REORDER_SCHEDULE" default:"@every 1h"`
}

// Load reads the given .env files, or ./.env when present, and then the
// environment. Variables already set in the environment win over .env values.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		if _, err := os.Stat(".env"); err == nil {
			envFiles = []string{".env"}
		}
	}
	if len(envFiles) > 0 {
		if err := godotenv.Load(envFiles...); err != nil {
			return nil, errors.Wrap(err, "failed to load env file")
		}
	}

	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return nil, errors.Wrap(err, "failed to parse environment")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values envconfig cannot
func (c *Config) Validate() error {
	switch c.Store {
	case StoreMemory, StoreSQLite, StoreMySQL:
	default:
		return errors.Errorf("unsupported store %q, expected memory, sqlite or mysql", c.Store)
	}
	if c.Concurrency < 1 {
		return errors.Errorf("concurrency must be at least 1, got %d", c.Concurrency)
	}
	if c.ReorderPoint < 0 {
		return errors.Errorf("reorder point cannot be negative, got %d", c.ReorderPoint)
	}
	if c.ReorderQuantity < 1 {
		return errors.Errorf("reorder quantity must be at least 1, got %d", c.ReorderQuantity)
	}
	if c.BackorderPenaltyDays < 0 {
		return errors.Errorf("backorder penalty cannot be negative, got %d", c.BackorderPenaltyDays)
	}
	if c.LockTTL <= 0 {
		return errors.Errorf("lock ttl must be positive, got %s", c.LockTTL)
	}
	return nil
}
