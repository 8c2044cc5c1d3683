// Package predictor scores scheduled starters against the trained model
// and classifies the result against the reconciled market line.
package predictor

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/strikeout-edge/internal/features"
	"github.com/yourusername/strikeout-edge/internal/metrics"
	"github.com/yourusername/strikeout-edge/internal/models"
	"github.com/yourusername/strikeout-edge/internal/namekey"
	"github.com/yourusername/strikeout-edge/internal/scorer"
)

// Starter is one scheduled start to predict, as supplied by the external
// schedule feed.
type Starter struct {
	Name     string
	Team     string
	Opponent string
	Home     bool
}

// Engine wires the feature builder and scorer into the daily prediction
// path.
type Engine struct {
	builder *features.Builder
	scorer  scorer.Scorer
	logger  *logrus.Logger
}

// NewEngine creates a prediction engine
func NewEngine(builder *features.Builder, s scorer.Scorer, logger *logrus.Logger) (*Engine, error) {
	if builder == nil {
		return nil, fmt.Errorf("feature builder is required")
	}
	if s == nil {
		return nil, fmt.Errorf("scorer is required")
	}
	if logger == nil {
		logger = logrus.New()
	}
	return &Engine{builder: builder, scorer: s, logger: logger}, nil
}

// PredictDate scores every scheduled starter for one date. History comes
// from the observation ledger, so features only see games strictly before
// the date. Starters with short history are skipped and logged; a missing
// line leaves pick and confidence unset. Output is sorted by line
// descending with line-less rows last, the order the report consumer
// expects.
func (e *Engine) PredictDate(ctx context.Context, date time.Time, starters []Starter, history features.Ledger, lines map[string]float64) ([]models.PredictionRecord, error) {
	date = models.Day(date)
	records := make([]models.PredictionRecord, 0, len(starters))

	for _, starter := range starters {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		key := namekey.Normalize(starter.Name)
		fv, err := e.builder.Build(key, date, history)
		if errors.Is(err, models.ErrInsufficientHistory) {
			e.logger.WithFields(logrus.Fields{
				"pitcher": starter.Name,
				"date":    models.DateKey(date),
			}).Info("Skipping starter with insufficient history")
			continue
		}
		if err != nil {
			return nil, err
		}

		fv.Values[features.FeatureHome] = 0
		if starter.Home {
			fv.Values[features.FeatureHome] = 1
		}

		if err := scorer.ValidateCoverage(e.scorer, fv.Values); err != nil {
			return nil, fmt.Errorf("feature contract violated for %s: %w", starter.Name, err)
		}
		predicted, err := e.scorer.Predict(fv.Values)
		if err != nil {
			return nil, fmt.Errorf("scoring failed for %s: %w", starter.Name, err)
		}

		record := models.PredictionRecord{
			ID:          uuid.New(),
			Date:        date,
			PitcherKey:  key,
			PitcherName: starter.Name,
			Team:        starter.Team,
			Opponent:    starter.Opponent,
			Predicted:   round2(predicted),
			Result:      models.ResultPending,
			MatchScore:  100,
			CreatedAt:   time.Now().UTC(),
		}
		if line, ok := lines[key]; ok {
			l := line
			record.Line = &l
		}
		record.Pick, record.Confidence = Classify(record.Predicted, record.Line)
		if record.Confidence != nil {
			record.Tier = Tier(*record.Confidence)
		}

		metrics.PredictionsEmittedTotal.Inc()
		records = append(records, record)
	}

	sort.SliceStable(records, func(i, j int) bool {
		li, lj := records[i].Line, records[j].Line
		switch {
		case li != nil && lj != nil:
			return *li > *lj
		case li != nil:
			return true
		default:
			return false
		}
	})

	e.logger.WithFields(logrus.Fields{
		"date":     models.DateKey(date),
		"starters": len(starters),
		"emitted":  len(records),
	}).Info("Daily prediction table built")
	return records, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
