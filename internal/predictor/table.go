package predictor

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/google/uuid"

	"github.com/yourusername/strikeout-edge/internal/ledger"
	"github.com/yourusername/strikeout-edge/internal/models"
	"github.com/yourusername/strikeout-edge/internal/namekey"
	"github.com/yourusername/strikeout-edge/internal/schema"
)

// WriteTable persists a prediction table as CSV for the report consumer
func WriteTable(path string, records []models.PredictionRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create prediction table: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := []string{"Date", "Team", "Opponent", "Pitcher", "Predicted K", "Vegas Line", "Confidence", "Model Pick", "Actual K", "Result"}
	if err := w.Write(header); err != nil {
		return fmt.Errorf("failed to write prediction header: %w", err)
	}
	for _, rec := range records {
		row := []string{
			models.DateKey(rec.Date),
			rec.Team,
			rec.Opponent,
			rec.PitcherName,
			strconv.FormatFloat(rec.Predicted, 'f', 2, 64),
			formatFloat(rec.Line),
			formatFloat(rec.Confidence),
			string(rec.Pick),
			formatFloat(rec.Actual),
			string(rec.Result),
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("failed to write prediction row: %w", err)
		}
	}
	w.Flush()
	return w.Error()
}

// ReadTable loads a previously written prediction table. Used when
// comparing a fresh candidate against the stored master.
func ReadTable(path string) ([]models.PredictionRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open prediction table: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	recs, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read prediction table %s: %w", path, err)
	}
	if len(recs) == 0 {
		return nil, nil
	}

	cols, err := schema.Resolve(recs[0], schema.ColPitcher, schema.ColDate, schema.ColPredicted)
	if err != nil {
		return nil, fmt.Errorf("prediction table %s: %w", path, err)
	}

	out := make([]models.PredictionRecord, 0, len(recs)-1)
	for _, rec := range recs[1:] {
		name := cols.Get(rec, schema.ColPitcher)
		date, ok := ledger.ParseDate(cols.Get(rec, schema.ColDate))
		predicted := ledger.ParseStat(cols.Get(rec, schema.ColPredicted))
		if name == "" || !ok || predicted == nil {
			continue
		}
		pr := models.PredictionRecord{
			ID:          uuid.New(),
			Date:        date,
			PitcherKey:  namekey.Normalize(name),
			PitcherName: name,
			Team:        cols.Get(rec, schema.ColTeam),
			Opponent:    cols.Get(rec, schema.ColOpponent),
			Predicted:   *predicted,
			Line:        ledger.ParseStat(cols.Get(rec, schema.ColVegasLine)),
			Confidence:  ledger.ParseStat(cols.Get(rec, schema.ColConfidence)),
			Actual:      ledger.ParseStat(cols.Get(rec, schema.ColActual)),
			Pick:        models.Pick(cols.Get(rec, schema.ColPick)),
			Result:      models.ResultPending,
		}
		if res := cols.Get(rec, schema.ColResult); res != "" {
			pr.Result = models.Result(res)
		}
		if pr.Confidence != nil {
			pr.Tier = Tier(*pr.Confidence)
		}
		out = append(out, pr)
	}
	return out, nil
}

// MatchedLines counts records carrying a market line
func MatchedLines(records []models.PredictionRecord) int {
	n := 0
	for _, rec := range records {
		if rec.Line != nil {
			n++
		}
	}
	return n
}

// AcceptMaster decides whether a freshly computed table replaces the
// stored master. Only strictly more matched lines wins; an equal or worse
// candidate is kept as a timestamped artifact but never promoted, so the
// master can only become more complete.
func AcceptMaster(existing, candidate []models.PredictionRecord) bool {
	return MatchedLines(candidate) > MatchedLines(existing)
}

func formatFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
