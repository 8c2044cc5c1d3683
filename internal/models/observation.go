package models

import (
	"fmt"
	"time"
)

// Observation is one recorded appearance (a game start) by a pitcher.
// Observations are immutable once written to the ledger; stat fields that
// failed numeric parsing are nil rather than zero so that a bad upstream
// cell never masquerades as a real value.
type Observation struct {
	PitcherKey   string     `json:"pitcher_key"`
	PitcherName  string     `json:"pitcher_name"`
	Date         time.Time  `json:"date"`
	Team         string     `json:"team"`
	Opponent     string     `json:"opponent"`
	Home         bool       `json:"home"`
	GameResult   string     `json:"game_result"`
	InningsText  string     `json:"innings_text"`
	Innings      *float64   `json:"innings"`
	Strikeouts   *float64   `json:"strikeouts"`
	EarnedRuns   *float64   `json:"earned_runs"`
	Walks        *float64   `json:"walks"`
	Hits         *float64   `json:"hits"`
	BattersFaced *float64   `json:"batters_faced"`
}

// DedupKey is the natural key used by the append-only ledger to prevent
// re-scraped rows from double counting. The raw innings text (not the
// parsed value) participates so that "6.2" and a later corrected "6.1"
// are distinct rows.
func (o Observation) DedupKey() string {
	return fmt.Sprintf("%s|%s|%s|%s|%s",
		o.PitcherKey, DateKey(o.Date), o.Team, o.InningsText, o.GameResult)
}

// DateKey formats a time as the calendar-date key used throughout the
// pipeline. All dates are UTC calendar dates; time-of-day is ignored.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// Day truncates a time to its UTC calendar date.
func Day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
