package features

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/strikeout-edge/internal/ledger"
	"github.com/yourusername/strikeout-edge/internal/models"
	"github.com/yourusername/strikeout-edge/internal/namekey"
	"github.com/yourusername/strikeout-edge/internal/schema"
)

// Row is one precomputed feature-file row: a pitcher's rolling aggregates
// as of a date, produced by an upstream feature build.
type Row struct {
	Date        string
	PitcherKey  string
	PitcherName string
	Team        string
	Opponent    string
	Values      map[string]float64
}

// Table indexes a precomputed feature file by date
type Table struct {
	byDate map[string][]Row
}

// featureColumns are the value columns lifted from the feature file
var featureColumns = []string{
	FeatureKLast3, FeatureIPLast3, FeatureERLast3, FeatureBBLast3, FeatureBFLast3, FeatureHome,
}

// LoadFile reads an engineered-feature CSV through the schema adapter.
// Missing or malformed numeric cells leave the feature absent from the
// row, which downstream coverage validation turns into a skip, not a zero.
func LoadFile(path string, logger *logrus.Logger) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open feature file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read feature file %s: %w", path, err)
	}
	t := &Table{byDate: make(map[string][]Row)}
	if len(records) == 0 {
		return t, nil
	}

	cols, err := schema.Resolve(records[0], schema.ColPitcher, schema.ColDate)
	if err != nil {
		return nil, fmt.Errorf("feature file %s: %w", path, err)
	}

	dropped := 0
	for _, rec := range records[1:] {
		name := cols.Get(rec, schema.ColPitcher)
		date, ok := ledger.ParseDate(cols.Get(rec, schema.ColDate))
		if name == "" || !ok {
			dropped++
			continue
		}
		row := Row{
			Date:        models.DateKey(date),
			PitcherKey:  namekey.Normalize(name),
			PitcherName: name,
			Team:        cols.Get(rec, schema.ColTeam),
			Opponent:    cols.Get(rec, schema.ColOpponent),
			Values:      make(map[string]float64, len(featureColumns)),
		}
		for _, fc := range featureColumns {
			if v := ledger.ParseStat(cols.Get(rec, fc)); v != nil {
				row.Values[fc] = *v
			}
		}
		t.byDate[row.Date] = append(t.byDate[row.Date], row)
	}
	if dropped > 0 && logger != nil {
		logger.WithFields(logrus.Fields{"path": path, "dropped": dropped}).
			Warn("Dropped feature rows with unparseable name or date")
	}
	return t, nil
}

// KeysForDate returns the pitcher keys with features on a date, in file
// order. The resolver's tie-break depends on this order being stable.
func (t *Table) KeysForDate(dateKey string) []string {
	rows := t.byDate[dateKey]
	keys := make([]string, 0, len(rows))
	for _, row := range rows {
		keys = append(keys, row.PitcherKey)
	}
	return keys
}

// RowFor returns the feature row for a pitcher key on a date
func (t *Table) RowFor(dateKey, pitcherKey string) (Row, bool) {
	for _, row := range t.byDate[dateKey] {
		if row.PitcherKey == pitcherKey {
			return row, true
		}
	}
	return Row{}, false
}

// HasDate reports whether any features exist for a date
func (t *Table) HasDate(dateKey string) bool {
	return len(t.byDate[dateKey]) > 0
}
