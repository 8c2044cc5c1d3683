// Package schema declares the canonical column contract for every tabular
// input and maps variant upstream headers onto it at the ingestion
// boundary. The core never sniffs headers by substring; header-naming
// drift is absorbed here or fails loudly.
package schema

import (
	"fmt"
	"strings"

	"github.com/yourusername/strikeout-edge/internal/namekey"
)

// Canonical column names
const (
	ColPitcher   = "pitcher"
	ColDate      = "date"
	ColTeam      = "team"
	ColOpponent  = "opponent"
	ColHomeAway  = "home_away"
	ColResult    = "result"
	ColIP        = "ip"
	ColSO        = "so"
	ColER        = "er"
	ColBB        = "bb"
	ColH         = "h"
	ColBF        = "bf"
	ColMarket    = "market"
	ColPlayer    = "description"
	ColLine      = "line"
	ColPrice     = "price"
	ColBook      = "bookmaker"
	ColPredicted = "predicted_k"
	ColVegasLine = "vegas_line"
	ColHome      = "home"
	ColPick      = "pick"
	ColActual    = "actual_k"
	ColConfidence = "confidence"
)

// variants maps normalized upstream headers to canonical names. Upstream
// exports have shifted between Player/Pitcher/starting_pitcher, Opp and
// Opponent, and pandas-style "Unnamed: N" markers for the home/away glyph
// column.
var variants = map[string]string{
	"pitcher":          ColPitcher,
	"player":           ColPitcher,
	"starting_pitcher": ColPitcher,
	"date":             ColDate,
	"gamedate":         ColDate,
	"game date":        ColDate,
	"team":             ColTeam,
	"opponent":         ColOpponent,
	"opp":              ColOpponent,
	"home_away":        ColHomeAway,
	"homeaway":         ColHomeAway,
	"unnamed: 3":       ColHomeAway,
	"unnamed: 5":       ColHomeAway,
	"result":           ColResult,
	"final score":      ColResult,
	"finalscore":       ColResult,
	"ip":               ColIP,
	"so":               ColSO,
	"k":                ColSO,
	"er":               ColER,
	"bb":               ColBB,
	"h":                ColH,
	"bf":               ColBF,
	"market":           ColMarket,
	"description":      ColPlayer,
	"line":             ColLine,
	"price":            ColPrice,
	"odds":             ColPrice,
	"bookmaker":        ColBook,
	"book":             ColBook,
	"predicted_k":      ColPredicted,
	"predicted k":      ColPredicted,
	"predicted_ks":     ColPredicted,
	"predicted ks":     ColPredicted,
	"vegas_line":       ColVegasLine,
	"vegas line":       ColVegasLine,
	"home":             ColHome,
	"model_pick":       ColPick,
	"model pick":       ColPick,
	"pick":             ColPick,
	"actual_k":         ColActual,
	"actual k":         ColActual,
	"confidence":       ColConfidence,
}

// Columns is the resolved mapping from canonical column name to index in a
// particular file's header row.
type Columns map[string]int

// Resolve maps a header row onto the canonical schema. Every required
// column must resolve or the file is rejected; this is the fatal branch of
// the error taxonomy, since scoring against a misread column is worse than
// aborting.
func Resolve(header []string, required ...string) (Columns, error) {
	cols := make(Columns, len(header))
	for i, raw := range header {
		norm := namekey.NormalizeColumn(raw)
		canonical, ok := variants[norm]
		if !ok {
			canonical = norm
		}
		if _, taken := cols[canonical]; !taken {
			cols[canonical] = i
		}
	}

	var missing []string
	for _, name := range required {
		if _, ok := cols[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("required columns missing from header: %s", strings.Join(missing, ", "))
	}
	return cols, nil
}

// Get returns the cell for a canonical column, or "" when the column is
// absent or the row is ragged.
func (c Columns) Get(row []string, name string) string {
	idx, ok := c[name]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// Has reports whether a canonical column resolved
func (c Columns) Has(name string) bool {
	_, ok := c[name]
	return ok
}
