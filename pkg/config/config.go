package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

const DefaultEnvFile = "./configs/.env"

type Config struct {
	API      APIConfig
	Storage  StorageConfig
	Postgres PostgresConfig
	SQLite   SQLiteConfig
	Auth     AuthConfig
	Stats    StatsConfig
	Redis    RedisConfig
	Log      LogConfig
}

type APIConfig struct {
	Address        string        `env:"API_ADDRESS"         env-default:"0.0.0.0:8080"`
	RequestTimeout time.Duration `env:"API_REQUEST_TIMEOUT" env-default:"5s"`
}

type StorageConfig struct {
	// postgres or sqlite
	Driver        string `env:"STORAGE_DRIVER" env-default:"postgres"`
	MigrationsDir string `env:"MIGRATIONS_DIR" env-default:"./migrations"`
}

type PostgresConfig struct {
	Address  string `env:"POSTGRES_DB_ADDRESS" env-default:"localhost:5432"`
	User     string `env:"POSTGRES_USER"`
	Password string `env:"POSTGRES_PASSWORD"`
	DB       string `env:"POSTGRES_DB"`
	SSLMode  string `env:"POSTGRES_SSL_MODE"`
}

type SQLiteConfig struct {
	Path string `env:"SQLITE_PATH" env-default:"./data/healthlog.db"`
}

type AuthConfig struct {
	JWTSecret string `env:"JWT_SECRET"`
}

type StatsConfig struct {
	TimeZone          string        `env:"STATS_TIME_ZONE"           env-default:"UTC"`
	StreakHorizonDays int           `env:"STATS_STREAK_HORIZON_DAYS" env-default:"365"`
	CacheTTL          time.Duration `env:"STATS_CACHE_TTL"           env-default:"1m"`
}

type RedisConfig struct {
	// Empty address disables the stats cache
	Address  string `env:"REDIS_ADDRESS"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB" env-default:"0"`
}

type LogConfig struct {
	Level  string `env:"LOG_LEVEL"  env-default:"info"`
	Format string `env:"LOG_FORMAT" env-default:"json"`
	// Rolling log file, stderr only when empty
	File string `env:"LOG_FILE"`
}

// Load reads the optional env file into the process environment, then
// fills Config from the environment. Variables already set take priority.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("config: load %s: %w", envFile, err)
		}
	}
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config: read env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}
	return &cfg, nil
}

// Validate checks settings that do not depend on other packages.
// Time zone and streak horizon are checked by stats.NewSettings.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Storage.Driver) {
	case "postgres":
		if c.Postgres.User == "" || c.Postgres.DB == "" {
			return errors.New("POSTGRES_USER and POSTGRES_DB are required for postgres storage")
		}
	case "sqlite":
		if c.SQLite.Path == "" {
			return errors.New("SQLITE_PATH is required for sqlite storage")
		}
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q", c.Storage.Driver)
	}
	if c.Stats.CacheTTL < 0 {
		return fmt.Errorf("STATS_CACHE_TTL must not be negative (got %s)", c.Stats.CacheTTL)
	}
	return nil
}

// ValidateAuth is required by the api server but not by the admin cli.
func (c *Config) ValidateAuth() error {
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("JWT_SECRET must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}
	return nil
}
