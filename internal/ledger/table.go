// Package ledger manages the append-only master ledger of pitcher
// observations. Writers merge then deduplicate rather than blindly append,
// so re-running over overlapping date ranges is idempotent.
package ledger

import (
	"github.com/yourusername/strikeout-edge/internal/models"
)

// Table is an in-memory snapshot of the observation ledger with the
// indexes the pipeline joins on.
type Table struct {
	rows      []models.Observation
	byDate    map[string][]models.Observation
	byPitcher map[string][]models.Observation
}

// NewTable builds a table over a row slice
func NewTable(rows []models.Observation) *Table {
	t := &Table{
		rows:      rows,
		byDate:    make(map[string][]models.Observation),
		byPitcher: make(map[string][]models.Observation),
	}
	for _, o := range rows {
		dk := models.DateKey(o.Date)
		t.byDate[dk] = append(t.byDate[dk], o)
		t.byPitcher[o.PitcherKey] = append(t.byPitcher[o.PitcherKey], o)
	}
	return t
}

// Rows returns all observations in file order
func (t *Table) Rows() []models.Observation {
	return t.rows
}

// Len returns the row count
func (t *Table) Len() int {
	return len(t.rows)
}

// ByDate returns the observations recorded on a calendar date
func (t *Table) ByDate(dateKey string) []models.Observation {
	return t.byDate[dateKey]
}

// ObservationsFor returns a pitcher's observations; implements
// features.Ledger.
func (t *Table) ObservationsFor(pitcherKey string) []models.Observation {
	return t.byPitcher[pitcherKey]
}

// ActualStrikeouts returns the realized strikeout count for a pitcher on a
// date. When a pitcher has multiple ledger rows for one date (re-scrapes
// with differing stat columns) the maximum K is taken, matching how the
// box-score source resolves the same ambiguity.
func (t *Table) ActualStrikeouts(pitcherKey string, dateKey string) *float64 {
	var best *float64
	for _, o := range t.byDate[dateKey] {
		if o.PitcherKey != pitcherKey || o.Strikeouts == nil {
			continue
		}
		if best == nil || *o.Strikeouts > *best {
			v := *o.Strikeouts
			best = &v
		}
	}
	return best
}

// Merge appends incoming observations to existing ones, dropping any
// incoming row whose deduplication key is already present. Existing rows
// and their order are preserved. Pure; callers handle file I/O.
func Merge(existing, incoming []models.Observation) (merged []models.Observation, added int) {
	seen := make(map[string]struct{}, len(existing)+len(incoming))
	merged = make([]models.Observation, 0, len(existing)+len(incoming))
	for _, o := range existing {
		key := o.DedupKey()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		merged = append(merged, o)
	}
	for _, o := range incoming {
		key := o.DedupKey()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		merged = append(merged, o)
		added++
	}
	return merged, added
}
