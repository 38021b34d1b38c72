package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/bytedance/sonic"
	"github.com/limbo/healthlog/internal/repository"
	"github.com/limbo/healthlog/internal/service"
	"github.com/limbo/healthlog/internal/stats"
	"github.com/limbo/healthlog/pkg/config"
	jwtservice "github.com/limbo/healthlog/pkg/jwt_service"
	"github.com/limbo/healthlog/pkg/logger"
	"github.com/spf13/cobra"
)

type app struct {
	cfg    *config.Config
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	var envFile string
	a := &app{}
	rootCmd := &cobra.Command{
		Use:          "healthlogctl",
		Short:        "Administration of the healthlog record store",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(envFile)
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.logger = logger.New(cfg.Log)
			return nil
		},
	}
	rootCmd.PersistentFlags().StringVar(&envFile, "env", config.DefaultEnvFile, "path to .env file")

	rootCmd.AddCommand(a.migrateCmd())
	rootCmd.AddCommand(a.purgeCmd())
	rootCmd.AddCommand(a.statsCmd())
	rootCmd.AddCommand(a.tokenCmd())
	return rootCmd
}

func (a *app) recordsService(ctx context.Context) (*service.RecordsService, error) {
	repo, err := repository.Open(ctx, a.cfg, a.logger)
	if err != nil {
		return nil, err
	}
	return service.NewRecordsService(repo), nil
}

func (a *app) migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := repository.Migrate(cmd.Context(), a.cfg, a.logger); err != nil {
				return fmt.Errorf("migrate: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "migrations applied (%s)\n", a.cfg.Storage.Driver)
			return nil
		},
	}
}

func (a *app) purgeCmd() *cobra.Command {
	var ownerID string
	var confirmed bool
	cmd := &cobra.Command{
		Use:   "purge",
		Short: "Delete every record of one owner",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !confirmed {
				return fmt.Errorf("refusing to purge records of %q without --yes", ownerID)
			}
			rs, err := a.recordsService(cmd.Context())
			if err != nil {
				return err
			}
			deleted, err := rs.PurgeOwner(cmd.Context(), ownerID)
			if err != nil {
				return err
			}
			a.logger.Info("owner purged", slog.String("uid", ownerID), slog.Int("deleted", deleted))
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %d records of %s\n", deleted, ownerID)
			return nil
		},
	}
	cmd.Flags().StringVar(&ownerID, "owner", "", "owner id")
	cmd.Flags().BoolVar(&confirmed, "yes", false, "confirm deletion")
	cmd.MarkFlagRequired("owner")
	return cmd
}

func (a *app) statsCmd() *cobra.Command {
	var ownerID string
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print the summary statistics of one owner",
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := stats.NewSettings(a.cfg.Stats.TimeZone, a.cfg.Stats.StreakHorizonDays)
			if err != nil {
				return err
			}
			rs, err := a.recordsService(cmd.Context())
			if err != nil {
				return err
			}
			summary, err := service.NewStatsService(rs, settings).Overview(cmd.Context(), ownerID)
			if err != nil {
				return err
			}
			out, err := sonic.ConfigStd.MarshalIndent(summary, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}
	cmd.Flags().StringVar(&ownerID, "owner", "", "owner id")
	cmd.MarkFlagRequired("owner")
	return cmd
}

func (a *app) tokenCmd() *cobra.Command {
	var ownerID string
	var ttl time.Duration
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a bearer token for an owner (development)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.cfg.ValidateAuth(); err != nil {
				return err
			}
			token, err := jwtservice.New(a.cfg.Auth.JWTSecret).WithTTL(ttl).GenerateToken(ownerID)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().StringVar(&ownerID, "owner", "", "owner id")
	cmd.Flags().DurationVar(&ttl, "ttl", jwtservice.DefaultTokenTTL, "token lifetime")
	cmd.MarkFlagRequired("owner")
	return cmd
}
