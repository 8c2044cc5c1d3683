// Package main provides the entry point for the daily prediction CLI tool.
package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/yourusername/strikeout-edge/internal/config"
	"github.com/yourusername/strikeout-edge/internal/database"
	"github.com/yourusername/strikeout-edge/internal/logger"
	"github.com/yourusername/strikeout-edge/internal/metrics"
	"github.com/yourusername/strikeout-edge/internal/models"
	"github.com/yourusername/strikeout-edge/internal/pipeline"
	"github.com/yourusername/strikeout-edge/internal/repository"
	"github.com/yourusername/strikeout-edge/internal/scorer"
)

func main() {
	var (
		configPath = flag.String("config", "config/config.yaml", "Path to config file")
		dateArg    = flag.String("date", "", "Game date to predict (YYYY-MM-DD, default today UTC)")
	)
	flag.Parse()

	bootLog := logrus.New()
	cfg := loadConfigWithSecrets(*configPath, bootLog)
	log := logger.NewLogger(cfg.App.LogLevel, cfg.App.Environment)
	metrics.InitRegistry()

	date := time.Now().UTC()
	if *dateArg != "" {
		parsed, err := time.Parse("2006-01-02", *dateArg)
		if err != nil {
			log.Fatalf("Invalid date %q: %v", *dateArg, err)
		}
		date = parsed
	}

	ctx := context.Background()

	model, err := scorer.LoadLinear(cfg.Model.Path)
	if err != nil {
		log.Fatalf("Failed to load scorer artifact: %v", err)
	}

	var predictions repository.PredictionRepository
	if cfg.Database.Enabled {
		db, err := database.Initialize(ctx, cfg)
		if err != nil {
			log.Fatalf("Failed to initialize database: %v", err)
		}
		defer db.Close()
		predictions = repository.NewPostgresPredictionRepository(db)
	}

	svc, err := pipeline.NewService(cfg, model, predictions, log)
	if err != nil {
		log.Fatalf("Failed to build pipeline: %v", err)
	}

	records, err := svc.PredictDate(ctx, date)
	if err != nil {
		log.Fatalf("Prediction run failed: %v", err)
	}

	log.WithFields(logrus.Fields{
		"date":        models.DateKey(date),
		"predictions": len(records),
	}).Info("Prediction run complete")
}

func loadConfigWithSecrets(path string, log *logrus.Logger) *config.Config {
	cfg, err := config.LoadWithDefaults(path)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if os.Getenv("AWS_SECRETS_ENABLED") == "true" {
		region := cfg.App.AWSRegion
		if region == "" {
			region = os.Getenv("AWS_REGION")
		}
		secretName := cfg.App.SecretsName
		if secretName == "" {
			secretName = os.Getenv("AWS_SECRET_NAME")
		}
		if region == "" || secretName == "" {
			log.Fatalf("AWS region and secret name must be set when AWS_SECRETS_ENABLED is true")
		}
		if err := config.LoadSecretsFromAWS(cfg, region, secretName); err != nil {
			log.Fatalf("Failed to load secrets: %v", err)
		}
	}
	if err := config.Validate(cfg); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	return cfg
}
