// Package pipeline orchestrates the daily merge-then-predict workflow.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/yourusername/strikeout-edge/internal/config"
	"github.com/yourusername/strikeout-edge/internal/features"
	"github.com/yourusername/strikeout-edge/internal/ledger"
	"github.com/yourusername/strikeout-edge/internal/logger"
	"github.com/yourusername/strikeout-edge/internal/metrics"
	"github.com/yourusername/strikeout-edge/internal/models"
	"github.com/yourusername/strikeout-edge/internal/odds"
	"github.com/yourusername/strikeout-edge/internal/predictor"
	"github.com/yourusername/strikeout-edge/internal/repository"
	"github.com/yourusername/strikeout-edge/internal/scorer"
)

const masterTableName = "master_predictions.csv"

// Service coordinates box score merging, scoring, and prediction table
// management for one run. Predictions is optional; when nil, CSV remains the
// only persistence boundary.
type Service struct {
	cfg         *config.Config
	engine      *predictor.Engine
	predictions repository.PredictionRepository
	log         *logrus.Logger
	plog        *logger.PipelineLogger
}

// NewService creates a pipeline service
func NewService(cfg *config.Config, s scorer.Scorer, predictions repository.PredictionRepository, log *logrus.Logger) (*Service, error) {
	if cfg == nil {
		return nil, fmt.Errorf("pipeline: config is required")
	}
	if log == nil {
		return nil, fmt.Errorf("pipeline: logger is required")
	}

	builder := features.NewBuilder(features.DefaultPolicy(), log)
	engine, err := predictor.NewEngine(builder, s, log)
	if err != nil {
		return nil, err
	}

	return &Service{
		cfg:         cfg,
		engine:      engine,
		predictions: predictions,
		log:         log,
		plog:        logger.NewPipelineLogger(log),
	}, nil
}

// MergeBoxScores merges incoming box score rows into the master ledger,
// dropping rows already present. The merged ledger is rewritten in place.
func (s *Service) MergeBoxScores(ctx context.Context, incomingPath string) (*ledger.Table, int, error) {
	existing, err := ledger.Load(s.cfg.Data.BoxScorePath, s.log)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, 0, fmt.Errorf("failed to load box score ledger: %w", err)
		}
		existing = ledger.NewTable(nil)
	}

	incoming, err := ledger.Load(incomingPath, s.log)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to load incoming box scores: %w", err)
	}

	merged, added := ledger.Merge(existing.Rows(), incoming.Rows())
	skipped := incoming.Len() - added

	if added > 0 {
		if err := ledger.Write(s.cfg.Data.BoxScorePath, merged); err != nil {
			return nil, 0, fmt.Errorf("failed to write merged ledger: %w", err)
		}
	}

	metrics.ObservationsIngestedTotal.Add(float64(added))
	metrics.DuplicateRowsSkippedTotal.Add(float64(skipped))
	metrics.LedgerRows.Set(float64(len(merged)))
	s.plog.LogMergeSummary(filepath.Base(incomingPath), incoming.Len(), added, skipped, len(merged))

	return ledger.NewTable(merged), added, nil
}

// PredictDate scores the scheduled starters for a date, writes a timestamped
// prediction table, and promotes it to the master table when it carries
// strictly more matched market lines than the current master.
func (s *Service) PredictDate(ctx context.Context, date time.Time) ([]models.PredictionRecord, error) {
	history, err := ledger.Load(s.cfg.Data.BoxScorePath, s.log)
	if err != nil {
		return nil, fmt.Errorf("failed to load box score ledger: %w", err)
	}

	dateKey := models.DateKey(date)
	starters, err := predictor.LoadSchedule(s.cfg.Data.SchedulePath, dateKey)
	if err != nil {
		return nil, fmt.Errorf("failed to load schedule: %w", err)
	}
	if len(starters) == 0 {
		s.log.WithField("date", dateKey).Warn("No starters scheduled, nothing to predict")
		return nil, nil
	}

	lines := s.loadLines()

	records, err := s.engine.PredictDate(ctx, date, starters, history, lines)
	if err != nil {
		return nil, err
	}

	if err := s.writeTables(dateKey, records); err != nil {
		return nil, err
	}

	if s.predictions != nil {
		if err := s.persist(ctx, records); err != nil {
			s.log.WithError(err).Error("Failed to persist predictions to database")
		}
	}

	return records, nil
}

// RunDaily executes one full merge-then-predict cycle. A missing incoming
// file is not an error; the merge step is simply skipped.
func (s *Service) RunDaily(ctx context.Context, date time.Time) error {
	if s.cfg.Data.IncomingPath != "" {
		if _, err := os.Stat(s.cfg.Data.IncomingPath); err == nil {
			if _, _, err := s.MergeBoxScores(ctx, s.cfg.Data.IncomingPath); err != nil {
				s.plog.LogPipelineError("merge", err.Error())
				return err
			}
		} else {
			s.log.WithField("path", s.cfg.Data.IncomingPath).Debug("No incoming box scores to merge")
		}
	}

	if _, err := s.PredictDate(ctx, date); err != nil {
		s.plog.LogPipelineError("predict", err.Error())
		return err
	}

	return nil
}

// loadLines loads and reconciles market lines; an unreadable props file
// degrades to predictions without lines rather than failing the run.
func (s *Service) loadLines() map[string]float64 {
	if s.cfg.Odds.PropsPath == "" {
		return nil
	}

	props, err := odds.Load(s.cfg.Odds.PropsPath, s.cfg.Odds.Market, s.log)
	if err != nil {
		s.log.WithError(err).Warn("Failed to load props, predicting without market lines")
		return nil
	}

	return odds.ReconcileLines(props)
}

func (s *Service) writeTables(dateKey string, records []models.PredictionRecord) error {
	if err := os.MkdirAll(s.cfg.Data.PredictionsDir, 0o755); err != nil {
		return fmt.Errorf("failed to create predictions dir: %w", err)
	}

	stamp := time.Now().UTC().Format("20060102_150405")
	candidatePath := filepath.Join(s.cfg.Data.PredictionsDir, fmt.Sprintf("predictions_%s_%s.csv", dateKey, stamp))
	if err := predictor.WriteTable(candidatePath, records); err != nil {
		return fmt.Errorf("failed to write prediction table: %w", err)
	}

	masterPath := filepath.Join(s.cfg.Data.PredictionsDir, masterTableName)
	existing, err := predictor.ReadTable(masterPath)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to read master table: %w", err)
	}

	accepted := len(existing) == 0 || predictor.AcceptMaster(existing, records)
	if accepted {
		if err := predictor.WriteTable(masterPath, records); err != nil {
			return fmt.Errorf("failed to write master table: %w", err)
		}
	}

	s.plog.LogMasterAcceptance(dateKey, predictor.MatchedLines(records), predictor.MatchedLines(existing), accepted)
	return nil
}

func (s *Service) persist(ctx context.Context, records []models.PredictionRecord) error {
	batch := make([]*models.PredictionRecord, 0, len(records))
	for i := range records {
		batch = append(batch, &records[i])
	}
	return s.predictions.InsertBatch(ctx, batch)
}
