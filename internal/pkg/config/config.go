package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/sethvargo/go-envconfig"
	"gopkg.in/yaml.v3"
)

const (
	StoreFile  = "file"
	StoreMongo = "mongo"

	LockLocal = "local"
	LockRedis = "redis"
)

// Config values come from an optional YAML file first; environment variables
// override them and defaults fill whatever is still empty.
type Config struct {
	Port            string        `yaml:"port"             env:"PORT,             overwrite, default=8080"`
	Env             string        `yaml:"env"              env:"ENV,              overwrite, default=development"`
	LogLevel        string        `yaml:"log_level"        env:"LOG_LEVEL,        overwrite, default=info"`
	DataDir         string        `yaml:"data_dir"         env:"DATA_DIR,         overwrite, default=./data"`
	StoreDriver     string        `yaml:"store_driver"     env:"STORE_DRIVER,     overwrite, default=file"`
	LockDriver      string        `yaml:"lock_driver"      env:"LOCK_DRIVER,      overwrite, default=local"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SHUTDOWN_TIMEOUT, overwrite, default=10s"`

	Mongo MongoConfig `yaml:"mongo"`
	Redis RedisConfig `yaml:"redis"`
}

type MongoConfig struct {
	URI      string `yaml:"uri"      env:"MONGO_URI, overwrite, default=mongodb://localhost:27017"`
	Database string `yaml:"database" env:"MONGO_DB,  overwrite, default=chirper"`
}

type RedisConfig struct {
	Addr    string        `yaml:"addr"     env:"REDIS_ADDR,     overwrite, default=localhost:6379"`
	DB      int           `yaml:"db"       env:"REDIS_DB,       overwrite, default=0"`
	LockTTL time.Duration `yaml:"lock_ttl" env:"REDIS_LOCK_TTL, overwrite, default=10s"`
}

// Load reads configuration from the optional YAML file at path and the
// process environment.
func Load(ctx context.Context, path string) (*Config, error) {
	return LoadWith(ctx, path, envconfig.OsLookuper())
}

// LoadWith is Load with an explicit environment source.
func LoadWith(ctx context.Context, path string, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if path != "" {
		if err := readFile(path, &cfg); err != nil {
			return nil, err
		}
	}

	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("config: process environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func readFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}
	return nil
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs []error

	if strings.TrimSpace(c.Port) == "" {
		errs = append(errs, errors.New("port must not be empty"))
	}

	switch c.StoreDriver {
	case StoreFile:
		if strings.TrimSpace(c.DataDir) == "" {
			errs = append(errs, errors.New("data_dir must not be empty for the file store"))
		}
	case StoreMongo:
		if c.Mongo.URI == "" || c.Mongo.Database == "" {
			errs = append(errs, errors.New("mongo uri and database are required for the mongo store"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown store driver %q (want %s or %s)", c.StoreDriver, StoreFile, StoreMongo))
	}

	switch c.LockDriver {
	case LockLocal:
	case LockRedis:
		if c.Redis.Addr == "" {
			errs = append(errs, errors.New("redis addr is required for the redis lock"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown lock driver %q (want %s or %s)", c.LockDriver, LockLocal, LockRedis))
	}

	if c.ShutdownTimeout <= 0 {
		errs = append(errs, errors.New("shutdown_timeout must be positive"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}

// IsDevelopment reports whether human-friendly log output should be used.
func (c *Config) IsDevelopment() bool {
	return strings.EqualFold(c.Env, "development")
}
