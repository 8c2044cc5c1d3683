// Package main provides the entry point for the backfill evaluation CLI tool.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/yourusername/strikeout-edge/internal/backfill"
	"github.com/yourusername/strikeout-edge/internal/config"
	"github.com/yourusername/strikeout-edge/internal/database"
	"github.com/yourusername/strikeout-edge/internal/features"
	"github.com/yourusername/strikeout-edge/internal/ledger"
	"github.com/yourusername/strikeout-edge/internal/logger"
	"github.com/yourusername/strikeout-edge/internal/metrics"
	"github.com/yourusername/strikeout-edge/internal/models"
	"github.com/yourusername/strikeout-edge/internal/odds"
	"github.com/yourusername/strikeout-edge/internal/predictor"
	"github.com/yourusername/strikeout-edge/internal/repository"
	"github.com/yourusername/strikeout-edge/internal/resolver"
	"github.com/yourusername/strikeout-edge/internal/scorer"
)

func main() {
	var (
		configPath = flag.String("config", "config/config.yaml", "Path to config file")
		startDate  = flag.String("start", "", "Override start date (YYYY-MM-DD)")
		endDate    = flag.String("end", "", "Override end date (YYYY-MM-DD)")
		flatLine   = flag.Float64("line", 0, "Override flat market line")
		propsPath  = flag.String("props", "", "Props CSV for historical market lines")
		output     = flag.String("output", "", "Override output path for the evaluated table")
		persist    = flag.Bool("persist", false, "Persist evaluated rows to the database")
	)
	flag.Parse()

	bootLog := logrus.New()
	cfg := loadConfig(*configPath, bootLog)
	log := logger.NewLogger(cfg.App.LogLevel, cfg.App.Environment)
	metrics.InitRegistry()

	runCfg := buildRunConfig(cfg, *startDate, *endDate, *flatLine, log)

	outputPath := cfg.Backfill.OutputPath
	if *output != "" {
		outputPath = *output
	}

	box, err := ledger.Load(cfg.Data.BoxScorePath, log)
	if err != nil {
		log.Fatalf("Failed to load box score ledger: %v", err)
	}

	feats, err := features.LoadFile(cfg.Data.FeaturePath, log)
	if err != nil {
		log.Fatalf("Failed to load feature file: %v", err)
	}

	model, err := scorer.LoadLinear(cfg.Model.Path)
	if err != nil {
		log.Fatalf("Failed to load scorer artifact: %v", err)
	}

	res := resolver.New(resolver.TokenSortSimilarity{}, cfg.Resolver.MinScore, cfg.ResolverCacheTTL(), log)
	evaluator, err := backfill.NewEvaluator(res, model, log)
	if err != nil {
		log.Fatalf("Failed to build evaluator: %v", err)
	}

	var lines map[string]float64
	if *propsPath != "" {
		props, err := odds.Load(*propsPath, cfg.Odds.Market, log)
		if err != nil {
			log.Fatalf("Failed to load props: %v", err)
		}
		lines = odds.ReconcileLines(props)
	}

	ctx := context.Background()
	records, summary, err := evaluator.Run(ctx, runCfg, box, feats, lines)
	if err != nil {
		log.Fatalf("Backfill evaluation failed: %v", err)
	}

	if err := predictor.WriteTable(outputPath, records); err != nil {
		log.Fatalf("Failed to write evaluated table: %v", err)
	}

	if *persist && cfg.Database.Enabled {
		persistRecords(ctx, cfg, records, log)
	}

	logger.NewPipelineLogger(log).LogBackfillSummary(
		models.DateKey(runCfg.Start), models.DateKey(runCfg.End),
		summary.Hits, summary.Misses, summary.NoData, summary.HitRate)
	fmt.Println(summary.String())
}

func loadConfig(path string, log *logrus.Logger) *config.Config {
	cfg, err := config.LoadWithDefaults(path)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if os.Getenv("AWS_SECRETS_ENABLED") == "true" {
		region := cfg.App.AWSRegion
		secretName := cfg.App.SecretsName
		if region == "" || secretName == "" {
			log.Fatalf("app.aws_region and app.secrets_name must be set when AWS_SECRETS_ENABLED is true")
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

func buildRunConfig(cfg *config.Config, startOverride, endOverride string, lineOverride float64, log *logrus.Logger) backfill.Config {
	start, end, err := cfg.BackfillRange()
	if err != nil {
		log.Fatalf("Invalid backfill range: %v", err)
	}

	runCfg := backfill.Config{Start: start, End: end, FlatLine: cfg.Backfill.FlatLine}
	if startOverride != "" {
		parsed, err := time.Parse("2006-01-02", startOverride)
		if err != nil {
			log.Fatalf("Invalid start date: %v", err)
		}
		runCfg.Start = parsed
	}
	if endOverride != "" {
		parsed, err := time.Parse("2006-01-02", endOverride)
		if err != nil {
			log.Fatalf("Invalid end date: %v", err)
		}
		runCfg.End = parsed
	}
	if lineOverride > 0 {
		runCfg.FlatLine = lineOverride
	}
	if runCfg.End.Before(runCfg.Start) {
		log.Fatalf("End date %s precedes start date %s", models.DateKey(runCfg.End), models.DateKey(runCfg.Start))
	}
	return runCfg
}

func persistRecords(ctx context.Context, cfg *config.Config, records []models.PredictionRecord, log *logrus.Logger) {
	db, err := database.Initialize(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	repo := repository.NewPostgresPredictionRepository(db)
	batch := make([]*models.PredictionRecord, 0, len(records))
	for i := range records {
		batch = append(batch, &records[i])
	}
	if err := repo.InsertBatch(ctx, batch); err != nil {
		log.Fatalf("Failed to persist evaluated rows: %v", err)
	}
}
