// Package backfill replays the prediction pipeline over historical dates
// whose outcomes are known and scores the picks against realized results.
package backfill

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/strikeout-edge/internal/features"
	"github.com/yourusername/strikeout-edge/internal/ledger"
	"github.com/yourusername/strikeout-edge/internal/metrics"
	"github.com/yourusername/strikeout-edge/internal/models"
	"github.com/yourusername/strikeout-edge/internal/predictor"
	"github.com/yourusername/strikeout-edge/internal/resolver"
	"github.com/yourusername/strikeout-edge/internal/scorer"
)

// Config controls a backfill run. FlatLine is the fallback comparison line
// applied when no per-pitcher odds ledger is supplied.
type Config struct {
	Start    time.Time
	End      time.Time
	FlatLine float64
}

// Summary aggregates a backfill run. Hit rate excludes NO DATA from the
// denominator.
type Summary struct {
	Hits    int
	Misses  int
	NoData  int
	HitRate float64
}

// String renders the summary the way the report consumer prints it
func (s Summary) String() string {
	return fmt.Sprintf("hits=%d misses=%d no_data=%d hit_rate=%.1f%%", s.Hits, s.Misses, s.NoData, s.HitRate*100)
}

// Evaluator replays resolver + feature join + scorer across a date range
type Evaluator struct {
	resolver *resolver.Resolver
	scorer   scorer.Scorer
	logger   *logrus.Logger
}

// NewEvaluator creates a backfill evaluator
func NewEvaluator(res *resolver.Resolver, s scorer.Scorer, logger *logrus.Logger) (*Evaluator, error) {
	if res == nil {
		return nil, fmt.Errorf("resolver is required")
	}
	if s == nil {
		return nil, fmt.Errorf("scorer is required")
	}
	if logger == nil {
		logger = logrus.New()
	}
	return &Evaluator{resolver: res, scorer: s, logger: logger}, nil
}

// Run walks the date range day by day, joining each day's realized box
// scores to that day's feature rows by resolved identity, scoring the
// joined rows and evaluating the pick against the line. Days missing
// either side are skipped and logged, never fatal; a single pitcher's
// failure does not abort the replay. lines may be nil, in which case the
// flat line applies to every pitcher.
func (e *Evaluator) Run(ctx context.Context, cfg Config, box *ledger.Table, feats *features.Table, lines map[string]float64) ([]models.PredictionRecord, Summary, error) {
	var records []models.PredictionRecord

	start := models.Day(cfg.Start)
	end := models.Day(cfg.End)
	for date := start; !date.After(end); date = date.AddDate(0, 0, 1) {
		if err := ctx.Err(); err != nil {
			return nil, Summary{}, err
		}

		dateKey := models.DateKey(date)
		gameRows := box.ByDate(dateKey)
		if len(gameRows) == 0 || !feats.HasDate(dateKey) {
			e.logger.WithField("date", dateKey).Debug("Skipping date with missing box scores or features")
			continue
		}

		candidates := feats.KeysForDate(dateKey)
		seen := make(map[string]struct{}, len(gameRows))
		for _, obs := range gameRows {
			if _, done := seen[obs.PitcherKey]; done {
				continue
			}
			seen[obs.PitcherKey] = struct{}{}

			record, ok := e.evaluateOne(date, obs, box, feats, candidates, lines, cfg.FlatLine)
			if !ok {
				continue
			}
			records = append(records, record)
		}
	}

	summary := Summarize(records)
	metrics.BackfillHitRate.Set(summary.HitRate)
	e.logger.WithFields(logrus.Fields{
		"start":   models.DateKey(start),
		"end":     models.DateKey(end),
		"records": len(records),
		"summary": summary.String(),
	}).Info("Backfill complete")
	return records, summary, nil
}

func (e *Evaluator) evaluateOne(date time.Time, obs models.Observation, box *ledger.Table, feats *features.Table, candidates []string, lines map[string]float64, flatLine float64) (models.PredictionRecord, bool) {
	dateKey := models.DateKey(date)

	match, ok := e.resolver.ResolveAsOf(date, obs.PitcherKey, candidates)
	if !ok {
		return models.PredictionRecord{}, false
	}
	row, ok := feats.RowFor(dateKey, match.Key)
	if !ok {
		return models.PredictionRecord{}, false
	}

	if err := scorer.ValidateCoverage(e.scorer, row.Values); err != nil {
		e.logger.WithFields(logrus.Fields{
			"pitcher": row.PitcherName,
			"date":    dateKey,
			"error":   err.Error(),
		}).Warn("Feature row incomplete, skipping")
		return models.PredictionRecord{}, false
	}
	predicted, err := e.scorer.Predict(row.Values)
	if err != nil {
		e.logger.WithError(err).WithField("pitcher", row.PitcherName).Warn("Scoring failed, skipping")
		return models.PredictionRecord{}, false
	}
	predicted = round2(predicted)

	var linePtr *float64
	if lines == nil {
		l := flatLine
		linePtr = &l
	} else if l, ok := lines[match.Key]; ok {
		linePtr = &l
	}

	pick, confidence := predictor.Classify(predicted, linePtr)
	actual := box.ActualStrikeouts(obs.PitcherKey, dateKey)
	result := Evaluate(pick, actual, linePtr)
	metrics.BackfillResultsTotal.WithLabelValues(string(result)).Inc()

	record := models.PredictionRecord{
		ID:          uuid.New(),
		Date:        date,
		PitcherKey:  match.Key,
		PitcherName: row.PitcherName,
		Team:        obs.Team,
		Opponent:    obs.Opponent,
		Predicted:   predicted,
		Line:        linePtr,
		Pick:        pick,
		Confidence:  confidence,
		Actual:      actual,
		Result:      result,
		MatchScore:  match.Score,
		CreatedAt:   time.Now().UTC(),
	}
	if confidence != nil {
		record.Tier = predictor.Tier(*confidence)
	}
	return record, true
}

// Evaluate classifies a realized outcome. NO DATA whenever the actual or
// the line is unknown. HIT requires a strict inequality on the pick's
// side; a Push pick can therefore never be a HIT, which is deliberate.
func Evaluate(pick models.Pick, actual, line *float64) models.Result {
	if actual == nil || line == nil {
		return models.ResultNoData
	}
	switch pick {
	case models.PickOver:
		if *actual > *line {
			return models.ResultHit
		}
	case models.PickUnder:
		if *actual < *line {
			return models.ResultHit
		}
	case models.PickPush:
		// falls through to MISS
	default:
		return models.ResultNoData
	}
	return models.ResultMiss
}

// Summarize aggregates results into hit/miss/no-data counts and hit rate
func Summarize(records []models.PredictionRecord) Summary {
	var s Summary
	for _, rec := range records {
		switch rec.Result {
		case models.ResultHit:
			s.Hits++
		case models.ResultMiss:
			s.Misses++
		case models.ResultNoData:
			s.NoData++
		}
	}
	if decided := s.Hits + s.Misses; decided > 0 {
		s.HitRate = float64(s.Hits) / float64(decided)
	}
	return s
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
