// @title Healthlog API
// @description Owner-scoped health records and statistics
// @BasePath /api/v1
// @schemes http
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/limbo/healthlog/internal/api"
	"github.com/limbo/healthlog/internal/repository"
	"github.com/limbo/healthlog/internal/service"
	"github.com/limbo/healthlog/internal/stats"
	"github.com/limbo/healthlog/pkg/cleanup"
	"github.com/limbo/healthlog/pkg/config"
	jwtservice "github.com/limbo/healthlog/pkg/jwt_service"
	"github.com/limbo/healthlog/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func init() {
	service.InitValidator()
}

func main() {
	envFile := flag.String("env", config.DefaultEnvFile, "path to .env file")
	flag.Parse()

	if err := run(*envFile); err != nil {
		cleanup.CleanUp()
		log.Fatal(err)
	}
	cleanup.CleanUp()
}

func run(envFile string) error {
	cfg, err := config.Load(envFile)
	if err != nil {
		return err
	}
	if err := cfg.ValidateAuth(); err != nil {
		return err
	}
	appLogger := logger.New(cfg.Log)
	settings, err := stats.NewSettings(cfg.Stats.TimeZone, cfg.Stats.StreakHorizonDays)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repo, err := repository.Open(ctx, cfg, appLogger)
	if err != nil {
		return err
	}
	recordsService := service.NewRecordsService(repo)
	services := &api.ServicesList{
		RecordsService: recordsService,
		StatsService:   service.NewStatsService(recordsService, settings),
		JwtService:     jwtservice.New(cfg.Auth.JWTSecret),
		RequestTimeout: cfg.API.RequestTimeout,
	}
	cache, err := api.NewRedisStatsCache(ctx, cfg.Redis, cfg.Stats.CacheTTL)
	switch {
	case err != nil:
		appLogger.Warn("stats cache disabled: redis unavailable", slog.String("error", err.Error()))
	case cache != nil:
		services.StatsCache = cache
	}
	serv := api.New(services)

	errCh := make(chan error, 1)
	go func() {
		errCh <- serv.Run(cfg.API.Address)
	}()
	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	appLogger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := serv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return <-errCh
}
