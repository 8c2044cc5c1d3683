// Package odds loads the props ledger and reconciles per-pitcher market
// lines across books.
package odds

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/strikeout-edge/internal/namekey"
	"github.com/yourusername/strikeout-edge/internal/schema"
)

// DefaultMarket is the prop market this pipeline predicts
const DefaultMarket = "pitcher_strikeouts"

// Prop is one book's quote for one player market
type Prop struct {
	PitcherKey string
	Player     string
	Market     string
	Line       decimal.Decimal
	Price      *decimal.Decimal
	Book       string
}

// Load reads a props ledger CSV, keeping only rows for the given market
// with a parseable line. Row-level junk is dropped and counted, not fatal.
func Load(path string, market string, logger *logrus.Logger) ([]Prop, error) {
	if market == "" {
		market = DefaultMarket
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open props ledger: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read props ledger %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	cols, err := schema.Resolve(records[0], schema.ColMarket, schema.ColPlayer, schema.ColLine)
	if err != nil {
		return nil, fmt.Errorf("props ledger %s: %w", path, err)
	}

	props := make([]Prop, 0, len(records)-1)
	dropped := 0
	for _, rec := range records[1:] {
		if !strings.EqualFold(cols.Get(rec, schema.ColMarket), market) {
			continue
		}
		player := cols.Get(rec, schema.ColPlayer)
		line, err := decimal.NewFromString(cols.Get(rec, schema.ColLine))
		if player == "" || err != nil {
			dropped++
			continue
		}
		prop := Prop{
			PitcherKey: namekey.Normalize(player),
			Player:     player,
			Market:     market,
			Line:       line,
			Book:       cols.Get(rec, schema.ColBook),
		}
		if price, err := decimal.NewFromString(cols.Get(rec, schema.ColPrice)); err == nil {
			prop.Price = &price
		}
		props = append(props, prop)
	}
	if dropped > 0 && logger != nil {
		logger.WithFields(logrus.Fields{"path": path, "dropped": dropped}).
			Warn("Dropped prop rows with missing player or unparseable line")
	}
	return props, nil
}

// ReconcileLines collapses multiple book quotes per pitcher into one line
// by taking the most frequent value. A tie for most frequent means the
// books genuinely disagree; the pitcher gets no line rather than an
// arbitrary one, and shows up downstream as NO DATA.
func ReconcileLines(props []Prop) map[string]float64 {
	counts := make(map[string]map[string]int)
	values := make(map[string]map[string]decimal.Decimal)
	for _, p := range props {
		if counts[p.PitcherKey] == nil {
			counts[p.PitcherKey] = make(map[string]int)
			values[p.PitcherKey] = make(map[string]decimal.Decimal)
		}
		k := p.Line.String()
		counts[p.PitcherKey][k]++
		values[p.PitcherKey][k] = p.Line
	}

	lines := make(map[string]float64, len(counts))
	for pitcher, byLine := range counts {
		best, bestCount, tied := "", 0, false
		for k, n := range byLine {
			switch {
			case n > bestCount:
				best, bestCount, tied = k, n, false
			case n == bestCount:
				tied = true
			}
		}
		if tied || bestCount == 0 {
			continue
		}
		lines[pitcher] = values[pitcher][best].InexactFloat64()
	}
	return lines
}
