package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	_ "github.com/lib/pq"
	"github.com/limbo/healthlog/pkg/config"
	"github.com/pressly/goose"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

func PGConfigFrom(cfg config.PostgresConfig) *PGCfg {
	return &PGCfg{
		Address:  cfg.Address,
		Username: cfg.User,
		Password: cfg.Password,
		DB:       cfg.DB,
		SSLMode:  cfg.SSLMode,
	}
}

// Open builds the records repository selected by STORAGE_DRIVER.
func Open(ctx context.Context, cfg *config.Config, logger *slog.Logger) (RecordsRepositoryI, error) {
	switch strings.ToLower(cfg.Storage.Driver) {
	case DriverPostgres:
		return NewRecordsRepo(ctx, PGConfigFrom(cfg.Postgres))
	case DriverSQLite:
		return NewGormRecordsRepo(cfg.SQLite.Path, logger)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}

// Migrate applies pending migrations. SQLite schema is migrated on open.
func Migrate(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	switch strings.ToLower(cfg.Storage.Driver) {
	case DriverPostgres:
		db, err := sql.Open("postgres", PGConfigFrom(cfg.Postgres).ConnString())
		if err != nil {
			return fmt.Errorf("open postgres: %w", err)
		}
		defer db.Close()
		if err := db.PingContext(ctx); err != nil {
			return fmt.Errorf("ping postgres: %w", err)
		}
		if err := goose.SetDialect("postgres"); err != nil {
			return err
		}
		return goose.Up(db, cfg.Storage.MigrationsDir)
	case DriverSQLite:
		db, err := OpenSQLite(cfg.SQLite.Path, logger)
		if err != nil {
			return err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	default:
		return fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}
