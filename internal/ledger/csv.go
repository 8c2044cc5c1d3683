package ledger

import (
	"encoding/csv"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/strikeout-edge/internal/models"
	"github.com/yourusername/strikeout-edge/internal/namekey"
	"github.com/yourusername/strikeout-edge/internal/schema"
)

// dateLayouts are tried in order when parsing ledger dates. Upstream files
// carry either bare dates or datetimes with a suffix.
var dateLayouts = []string{"2006-01-02", "2006-01-02 15:04:05", time.RFC3339}

// Load reads a box-score ledger CSV into a Table. Headers resolve through
// the schema adapter; an absent file or unresolvable required columns are
// fatal, while malformed stat cells degrade to missing values.
func Load(path string, logger *logrus.Logger) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open box score ledger: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read box score ledger %s: %w", path, err)
	}
	if len(records) == 0 {
		return NewTable(nil), nil
	}

	cols, err := schema.Resolve(records[0],
		schema.ColPitcher, schema.ColDate, schema.ColTeam, schema.ColSO)
	if err != nil {
		return nil, fmt.Errorf("box score ledger %s: %w", path, err)
	}

	rows := make([]models.Observation, 0, len(records)-1)
	skipped := 0
	for _, rec := range records[1:] {
		obs, ok := parseRow(cols, rec)
		if !ok {
			skipped++
			continue
		}
		rows = append(rows, obs)
	}
	if skipped > 0 && logger != nil {
		logger.WithFields(logrus.Fields{"path": path, "skipped": skipped}).
			Warn("Dropped ledger rows with unparseable name or date")
	}
	return NewTable(rows), nil
}

func parseRow(cols schema.Columns, rec []string) (models.Observation, bool) {
	name := cols.Get(rec, schema.ColPitcher)
	date, ok := ParseDate(cols.Get(rec, schema.ColDate))
	if name == "" || !ok {
		return models.Observation{}, false
	}

	ipText := cols.Get(rec, schema.ColIP)
	return models.Observation{
		PitcherKey:   namekey.Normalize(name),
		PitcherName:  name,
		Date:         date,
		Team:         cols.Get(rec, schema.ColTeam),
		Opponent:     cols.Get(rec, schema.ColOpponent),
		Home:         ParseHome(cols.Get(rec, schema.ColHomeAway)),
		GameResult:   cols.Get(rec, schema.ColResult),
		InningsText:  ipText,
		Innings:      ParseInnings(ipText),
		Strikeouts:   ParseStat(cols.Get(rec, schema.ColSO)),
		EarnedRuns:   ParseStat(cols.Get(rec, schema.ColER)),
		Walks:        ParseStat(cols.Get(rec, schema.ColBB)),
		Hits:         ParseStat(cols.Get(rec, schema.ColH)),
		BattersFaced: ParseStat(cols.Get(rec, schema.ColBF)),
	}, true
}

// ParseDate parses a ledger date cell, ignoring any time-of-day suffix
func ParseDate(text string) (time.Time, bool) {
	if len(text) > 10 {
		if t, err := time.Parse("2006-01-02", text[:10]); err == nil {
			return t, true
		}
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, text); err == nil {
			return models.Day(t), true
		}
	}
	return time.Time{}, false
}

// Write persists a ledger snapshot as CSV with canonical headers
func Write(path string, rows []models.Observation) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create ledger file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := []string{"Pitcher", "Date", "Team", "Opponent", "HomeAway", "Result", "IP", "SO", "ER", "BB", "H", "BF"}
	if err := w.Write(header); err != nil {
		return fmt.Errorf("failed to write ledger header: %w", err)
	}
	for _, o := range rows {
		homeAway := ""
		if !o.Home {
			homeAway = "@"
		}
		rec := []string{
			o.PitcherName,
			models.DateKey(o.Date),
			o.Team,
			o.Opponent,
			homeAway,
			o.GameResult,
			o.InningsText,
			formatStat(o.Strikeouts),
			formatStat(o.EarnedRuns),
			formatStat(o.Walks),
			formatStat(o.Hits),
			formatStat(o.BattersFaced),
		}
		if err := w.Write(rec); err != nil {
			return fmt.Errorf("failed to write ledger row: %w", err)
		}
	}
	w.Flush()
	return w.Error()
}

func formatStat(v *float64) string {
	if v == nil {
		return ""
	}
	if *v == float64(int64(*v)) {
		return fmt.Sprintf("%d", int64(*v))
	}
	return fmt.Sprintf("%g", *v)
}
