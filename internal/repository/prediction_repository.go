package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/yourusername/strikeout-edge/internal/database"
	"github.com/yourusername/strikeout-edge/internal/models"
)

const predictionColumns = `id, game_date, pitcher_key, pitcher_name, team, opponent,
	       predicted_k, vegas_line, pick, confidence, tier, actual_k, result, match_score, created_at`

// PostgresPredictionRepository implements PredictionRepository for PostgreSQL
type PostgresPredictionRepository struct {
	db *database.DB
}

// NewPostgresPredictionRepository creates a new prediction repository
func NewPostgresPredictionRepository(db *database.DB) PredictionRepository {
	return &PostgresPredictionRepository{db: db}
}

// Insert inserts a single prediction, replacing any prior row for the same
// pitcher and date. Recomputed runs overwrite rather than accumulate.
func (p *PostgresPredictionRepository) Insert(ctx context.Context, prediction *models.PredictionRecord) error {
	query := `
		INSERT INTO predictions (id, game_date, pitcher_key, pitcher_name, team, opponent,
		                         predicted_k, vegas_line, pick, confidence, tier, actual_k, result, match_score, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		ON CONFLICT (game_date, pitcher_key) DO UPDATE SET
			id = EXCLUDED.id,
			pitcher_name = EXCLUDED.pitcher_name,
			team = EXCLUDED.team,
			opponent = EXCLUDED.opponent,
			predicted_k = EXCLUDED.predicted_k,
			vegas_line = EXCLUDED.vegas_line,
			pick = EXCLUDED.pick,
			confidence = EXCLUDED.confidence,
			tier = EXCLUDED.tier,
			actual_k = EXCLUDED.actual_k,
			result = EXCLUDED.result,
			match_score = EXCLUDED.match_score,
			created_at = EXCLUDED.created_at
	`

	_, err := p.db.GetPool().Exec(ctx, query,
		prediction.ID, prediction.Date, prediction.PitcherKey, prediction.PitcherName,
		prediction.Team, prediction.Opponent, prediction.Predicted, prediction.Line,
		prediction.Pick, prediction.Confidence, prediction.Tier, prediction.Actual,
		prediction.Result, prediction.MatchScore, prediction.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert prediction: %w", err)
	}

	return nil
}

// InsertBatch inserts predictions in a single transaction
func (p *PostgresPredictionRepository) InsertBatch(ctx context.Context, predictions []*models.PredictionRecord) error {
	if len(predictions) == 0 {
		return nil
	}

	return p.db.WithTransaction(ctx, func(tx pgx.Tx) error {
		query := `
			INSERT INTO predictions (id, game_date, pitcher_key, pitcher_name, team, opponent,
			                         predicted_k, vegas_line, pick, confidence, tier, actual_k, result, match_score, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
			ON CONFLICT (game_date, pitcher_key) DO UPDATE SET
				id = EXCLUDED.id,
				pitcher_name = EXCLUDED.pitcher_name,
				team = EXCLUDED.team,
				opponent = EXCLUDED.opponent,
				predicted_k = EXCLUDED.predicted_k,
				vegas_line = EXCLUDED.vegas_line,
				pick = EXCLUDED.pick,
				confidence = EXCLUDED.confidence,
				tier = EXCLUDED.tier,
				actual_k = EXCLUDED.actual_k,
				result = EXCLUDED.result,
				match_score = EXCLUDED.match_score,
				created_at = EXCLUDED.created_at
		`

		for _, prediction := range predictions {
			_, err := tx.Exec(ctx, query,
				prediction.ID, prediction.Date, prediction.PitcherKey, prediction.PitcherName,
				prediction.Team, prediction.Opponent, prediction.Predicted, prediction.Line,
				prediction.Pick, prediction.Confidence, prediction.Tier, prediction.Actual,
				prediction.Result, prediction.MatchScore, prediction.CreatedAt,
			)
			if err != nil {
				return fmt.Errorf("failed to insert prediction for %s: %w", prediction.PitcherKey, err)
			}
		}
		return nil
	})
}

// GetByDate retrieves all predictions for a single game date
func (p *PostgresPredictionRepository) GetByDate(ctx context.Context, date time.Time) ([]*models.PredictionRecord, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM predictions
		WHERE game_date = $1
		ORDER BY vegas_line DESC NULLS LAST, pitcher_key
	`, predictionColumns)

	rows, err := p.db.GetPool().Query(ctx, query, date)
	if err != nil {
		return nil, fmt.Errorf("failed to query predictions by date: %w", err)
	}
	defer rows.Close()

	return scanPredictions(rows)
}

// GetByDateRange retrieves predictions within a date range, inclusive on both ends
func (p *PostgresPredictionRepository) GetByDateRange(ctx context.Context, start, end time.Time) ([]*models.PredictionRecord, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM predictions
		WHERE game_date >= $1 AND game_date <= $2
		ORDER BY game_date, pitcher_key
	`, predictionColumns)

	rows, err := p.db.GetPool().Query(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query predictions by date range: %w", err)
	}
	defer rows.Close()

	return scanPredictions(rows)
}

// GetByPitcherKey retrieves the most recent predictions for a pitcher
func (p *PostgresPredictionRepository) GetByPitcherKey(ctx context.Context, pitcherKey string, limit int) ([]*models.PredictionRecord, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM predictions
		WHERE pitcher_key = $1
		ORDER BY game_date DESC
		LIMIT $2
	`, predictionColumns)

	rows, err := p.db.GetPool().Query(ctx, query, pitcherKey, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query predictions by pitcher: %w", err)
	}
	defer rows.Close()

	return scanPredictions(rows)
}

// UpdateResult records the realized outcome for one prediction
func (p *PostgresPredictionRepository) UpdateResult(ctx context.Context, date time.Time, pitcherKey string, actual *float64, result models.Result) error {
	query := `
		UPDATE predictions
		SET actual_k = $1, result = $2
		WHERE game_date = $3 AND pitcher_key = $4
	`

	tag, err := p.db.GetPool().Exec(ctx, query, actual, result, date, pitcherKey)
	if err != nil {
		return fmt.Errorf("failed to update prediction result: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}

	return nil
}

// HitRate computes the hit rate over decided predictions within a date range.
// Rows evaluated as NO DATA or still pending are excluded from the denominator.
func (p *PostgresPredictionRepository) HitRate(ctx context.Context, start, end time.Time) (float64, error) {
	query := `
		SELECT
			COUNT(*) FILTER (WHERE result = 'HIT'),
			COUNT(*) FILTER (WHERE result IN ('HIT', 'MISS'))
		FROM predictions
		WHERE game_date >= $1 AND game_date <= $2
	`

	var hits, decided int64
	err := p.db.GetPool().QueryRow(ctx, query, start, end).Scan(&hits, &decided)
	if err != nil {
		return 0, fmt.Errorf("failed to compute hit rate: %w", err)
	}
	if decided == 0 {
		return 0, nil
	}

	return float64(hits) / float64(decided), nil
}

func scanPredictions(rows pgx.Rows) ([]*models.PredictionRecord, error) {
	var predictions []*models.PredictionRecord
	for rows.Next() {
		prediction := &models.PredictionRecord{}
		err := rows.Scan(
			&prediction.ID, &prediction.Date, &prediction.PitcherKey, &prediction.PitcherName,
			&prediction.Team, &prediction.Opponent, &prediction.Predicted, &prediction.Line,
			&prediction.Pick, &prediction.Confidence, &prediction.Tier, &prediction.Actual,
			&prediction.Result, &prediction.MatchScore, &prediction.CreatedAt,
		)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, models.ErrNotFound
			}
			return nil, fmt.Errorf("failed to scan prediction: %w", err)
		}
		predictions = append(predictions, prediction)
	}

	return predictions, rows.Err()
}
