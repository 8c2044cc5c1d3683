// Package logger provides pipeline-specific logging.
package logger

import (
	"github.com/sirupsen/logrus"
)

// PipelineLogger provides dedicated logging for pipeline runs.
type PipelineLogger struct {
	*logrus.Entry
}

// NewPipelineLogger creates a new pipeline logger.
func NewPipelineLogger(baseLogger *logrus.Logger) *PipelineLogger {
	return &PipelineLogger{
		Entry: baseLogger.WithField("component", "pipeline"),
	}
}

// LogMergeSummary logs the outcome of a box score merge.
func (pl *PipelineLogger) LogMergeSummary(source string, rowsRead, rowsAdded, duplicatesSkipped, ledgerTotal int) {
	pl.WithFields(logrus.Fields{
		"source":             source,
		"rows_read":          rowsRead,
		"rows_added":         rowsAdded,
		"duplicates_skipped": duplicatesSkipped,
		"ledger_total":       ledgerTotal,
	}).Info("Box score merge completed")
}

// LogPredictionRun logs the outcome of a daily prediction run.
func (pl *PipelineLogger) LogPredictionRun(date string, startersScheduled, predictionsEmitted, skippedInsufficient int, durationMs float64) {
	pl.WithFields(logrus.Fields{
		"date":                 date,
		"starters_scheduled":   startersScheduled,
		"predictions_emitted":  predictionsEmitted,
		"skipped_insufficient": skippedInsufficient,
		"duration_ms":          durationMs,
	}).Info("Prediction run completed")
}

// LogMasterAcceptance logs a master prediction table acceptance decision.
func (pl *PipelineLogger) LogMasterAcceptance(date string, candidateLines, existingLines int, accepted bool) {
	pl.WithFields(logrus.Fields{
		"date":            date,
		"candidate_lines": candidateLines,
		"existing_lines":  existingLines,
		"accepted":        accepted,
	}).Info("Master table acceptance evaluated")
}

// LogBackfillSummary logs the outcome of a backfill evaluation.
func (pl *PipelineLogger) LogBackfillSummary(startDate, endDate string, hits, misses, noData int, hitRate float64) {
	pl.WithFields(logrus.Fields{
		"start_date": startDate,
		"end_date":   endDate,
		"hits":       hits,
		"misses":     misses,
		"no_data":    noData,
		"hit_rate":   hitRate,
	}).Info("Backfill evaluation completed")
}

// LogPipelineError logs a pipeline stage failure.
func (pl *PipelineLogger) LogPipelineError(stage string, errorReason string) {
	pl.WithFields(logrus.Fields{
		"stage":        stage,
		"error_reason": errorReason,
	}).Error("Pipeline stage failed")
}
