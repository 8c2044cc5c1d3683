package models

import (
	"time"

	"github.com/google/uuid"
)

// Pick represents the directional call against the market line
type Pick string

const (
	PickOver  Pick = "Over"
	PickUnder Pick = "Under"
	PickPush  Pick = "Push"
)

// Result represents the evaluated outcome of a prediction
type Result string

const (
	ResultPending Result = "PENDING"
	ResultHit     Result = "HIT"
	ResultMiss    Result = "MISS"
	ResultNoData  Result = "NO DATA"
)

// FeatureVector is the derived, point-in-time feature set for a pitcher.
// AsOf is strictly greater than every observation date that contributed.
type FeatureVector struct {
	PitcherKey string
	AsOf       time.Time
	Count      int
	Values     map[string]float64
	ERA        *float64
	WHIP       *float64
}

// MarketLine is an externally supplied prop line for a pitcher and date
type MarketLine struct {
	PitcherKey string
	Player     string
	Market     string
	Line       float64
	Book       string
}

// PredictionRecord is one scored pitcher/date row. It is created at scoring
// time and enriched by the backfill evaluator once the realized outcome is
// known; after a result is assigned it is only replaced by recomputation,
// never mutated in place.
type PredictionRecord struct {
	ID          uuid.UUID  `db:"id" json:"id"`
	Date        time.Time  `db:"game_date" json:"date"`
	PitcherKey  string     `db:"pitcher_key" json:"pitcher_key"`
	PitcherName string     `db:"pitcher_name" json:"pitcher_name"`
	Team        string     `db:"team" json:"team"`
	Opponent    string     `db:"opponent" json:"opponent"`
	Predicted   float64    `db:"predicted" json:"predicted"`
	Line        *float64   `db:"vegas_line" json:"vegas_line"`
	Pick        Pick       `db:"pick" json:"pick"`
	Confidence  *float64   `db:"confidence" json:"confidence"`
	Tier        int        `db:"tier" json:"tier"`
	Actual      *float64   `db:"actual" json:"actual"`
	Result      Result     `db:"result" json:"result"`
	MatchScore  int        `db:"match_score" json:"match_score"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
}
