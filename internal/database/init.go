package database

import (
	"context"
	"fmt"

	"github.com/yourusername/strikeout-edge/internal/config"
)

const predictionsSchema = `
CREATE TABLE IF NOT EXISTS predictions (
	id UUID PRIMARY KEY,
	game_date DATE NOT NULL,
	pitcher_key TEXT NOT NULL,
	pitcher_name TEXT NOT NULL,
	team TEXT NOT NULL,
	opponent TEXT NOT NULL,
	predicted_k DOUBLE PRECISION NOT NULL,
	vegas_line DOUBLE PRECISION,
	pick TEXT NOT NULL DEFAULT '',
	confidence DOUBLE PRECISION,
	tier INT NOT NULL DEFAULT 0,
	actual_k DOUBLE PRECISION,
	result TEXT NOT NULL DEFAULT 'PENDING',
	match_score INT NOT NULL DEFAULT 0,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	UNIQUE (game_date, pitcher_key)
);
CREATE INDEX IF NOT EXISTS idx_predictions_game_date ON predictions (game_date);
CREATE INDEX IF NOT EXISTS idx_predictions_pitcher_key ON predictions (pitcher_key);
`

// Initialize creates a database connection pool and ensures the predictions
// schema exists
func Initialize(ctx context.Context, cfg *config.Config) (*DB, error) {
	db, err := NewDB(ctx, &cfg.Database)
	if err != nil {
		return nil, err
	}

	if _, err := db.pool.Exec(ctx, predictionsSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ensure predictions schema: %w", err)
	}

	return db, nil
}
