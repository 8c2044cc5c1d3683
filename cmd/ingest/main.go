// Package main provides the entry point for the ingestion service.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/strikeout-edge/internal/config"
	"github.com/yourusername/strikeout-edge/internal/database"
	"github.com/yourusername/strikeout-edge/internal/health"
	"github.com/yourusername/strikeout-edge/internal/logger"
	"github.com/yourusername/strikeout-edge/internal/metrics"
	"github.com/yourusername/strikeout-edge/internal/pipeline"
	"github.com/yourusername/strikeout-edge/internal/repository"
	"github.com/yourusername/strikeout-edge/internal/scheduler"
	"github.com/yourusername/strikeout-edge/internal/scorer"
)

var (
	configFile string
	sourcePath string
	appLogger  *logrus.Logger
	cfg        *config.Config
	db         *database.DB
	svc        *pipeline.Service
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "./config/config.yaml", "Path to configuration file")
	mergeCmd.Flags().StringVarP(&sourcePath, "source", "s", "", "Incoming box score CSV (default data.incoming_path)")
	rootCmd.AddCommand(mergeCmd)
	rootCmd.AddCommand(scheduleCmd)
}

var rootCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Merge box scores and run the scheduled prediction pipeline",
	Long:  `Maintains the master box score ledger and optionally runs the daily merge-then-predict pipeline on a cron schedule.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := loadConfig(); err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		if err := setupDependencies(cmd.Context()); err != nil {
			return fmt.Errorf("failed to setup dependencies: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if db != nil {
			db.Close()
		}
	},
}

var mergeCmd = &cobra.Command{
	Use:   "merge",
	Short: "Merge an incoming box score CSV into the master ledger",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := sourcePath
		if path == "" {
			path = cfg.Data.IncomingPath
		}
		if path == "" {
			return fmt.Errorf("no incoming path given; use --source or set data.incoming_path")
		}

		merged, added, err := svc.MergeBoxScores(cmd.Context(), path)
		if err != nil {
			return err
		}

		appLogger.WithFields(logrus.Fields{
			"added": added,
			"total": merged.Len(),
		}).Info("Ledger merge complete")
		return nil
	},
}

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Run the daily pipeline on the configured cron schedule",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		if cfg.Metrics.Enabled {
			var pinger health.DatabasePinger
			if db != nil {
				pinger = db
			}
			healthServer := health.NewServer(health.Config{
				ServiceName: cfg.App.Name,
				Port:        cfg.Metrics.Port,
				MetricsPath: cfg.Metrics.Path,
				Logger:      appLogger,
				DB:          pinger,
			})
			if err := healthServer.Start(ctx); err != nil {
				return fmt.Errorf("failed to start health server: %w", err)
			}
			healthServer.SetReady(true)
		}

		sched := scheduler.NewScheduler(svc, appLogger)
		if err := sched.ScheduleDailyRun(cfg.Schedule.DailyRun); err != nil {
			return err
		}
		if err := sched.Start(); err != nil {
			return err
		}
		appLogger.WithField("next_run", sched.GetNextRun()).Info("Pipeline scheduler running")

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigCh
		appLogger.WithField("signal", sig.String()).Info("Shutting down")

		cancel()
		return sched.Stop()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func loadConfig() error {
	var err error
	cfg, err = config.LoadWithDefaults(configFile)
	if err != nil {
		return err
	}

	if os.Getenv("AWS_SECRETS_ENABLED") == "true" {
		region := cfg.App.AWSRegion
		secretName := cfg.App.SecretsName
		if region == "" || secretName == "" {
			return fmt.Errorf("app.aws_region and app.secrets_name must be set when AWS_SECRETS_ENABLED is true")
		}
		if err := config.LoadSecretsFromAWS(cfg, region, secretName); err != nil {
			return err
		}
	}

	return config.Validate(cfg)
}

func setupDependencies(ctx context.Context) error {
	appLogger = logger.NewLogger(cfg.App.LogLevel, cfg.App.Environment)
	metrics.InitRegistry()

	model, err := scorer.LoadLinear(cfg.Model.Path)
	if err != nil {
		return fmt.Errorf("failed to load scorer artifact: %w", err)
	}

	var predictions repository.PredictionRepository
	if cfg.Database.Enabled {
		db, err = database.Initialize(ctx, cfg)
		if err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
		predictions = repository.NewPostgresPredictionRepository(db)
	}

	svc, err = pipeline.NewService(cfg, model, predictions, appLogger)
	return err
}
