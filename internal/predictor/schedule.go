package predictor

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/yourusername/strikeout-edge/internal/ledger"
	"github.com/yourusername/strikeout-edge/internal/models"
	"github.com/yourusername/strikeout-edge/internal/schema"
)

// LoadSchedule reads the upstream schedule/starters feed and returns the
// starters for one date.
func LoadSchedule(path string, dateKey string) ([]Starter, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open schedule file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read schedule file %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	cols, err := schema.Resolve(records[0], schema.ColPitcher, schema.ColDate, schema.ColTeam)
	if err != nil {
		return nil, fmt.Errorf("schedule file %s: %w", path, err)
	}

	var starters []Starter
	for _, rec := range records[1:] {
		date, ok := ledger.ParseDate(cols.Get(rec, schema.ColDate))
		if !ok || models.DateKey(date) != dateKey {
			continue
		}
		name := cols.Get(rec, schema.ColPitcher)
		if name == "" {
			continue
		}
		home := false
		if cols.Has(schema.ColHome) {
			home = cols.Get(rec, schema.ColHome) == "1"
		} else if cols.Has(schema.ColHomeAway) {
			home = ledger.ParseHome(cols.Get(rec, schema.ColHomeAway))
		}
		starters = append(starters, Starter{
			Name:     name,
			Team:     cols.Get(rec, schema.ColTeam),
			Opponent: cols.Get(rec, schema.ColOpponent),
			Home:     home,
		})
	}
	return starters, nil
}
