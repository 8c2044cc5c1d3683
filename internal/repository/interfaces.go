package repository

import (
	"context"
	"time"

	"github.com/yourusername/strikeout-edge/internal/models"
)

// PredictionRepository defines the interface for prediction data access
type PredictionRepository interface {
	Insert(ctx context.Context, prediction *models.PredictionRecord) error
	InsertBatch(ctx context.Context, predictions []*models.PredictionRecord) error
	GetByDate(ctx context.Context, date time.Time) ([]*models.PredictionRecord, error)
	GetByDateRange(ctx context.Context, start, end time.Time) ([]*models.PredictionRecord, error)
	GetByPitcherKey(ctx context.Context, pitcherKey string, limit int) ([]*models.PredictionRecord, error)
	UpdateResult(ctx context.Context, date time.Time, pitcherKey string, actual *float64, result models.Result) error
	HitRate(ctx context.Context, start, end time.Time) (float64, error)
}
