package ledger

import (
	"strings"

	"github.com/shopspring/decimal"
)

var three = decimal.NewFromInt(3)

// ParseInnings converts fractional-thirds innings text to a float: "6.2"
// means six and two thirds. Unparseable text yields nil, never an abort; a
// single bad cell must not take down a batch.
func ParseInnings(text string) *float64 {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	whole, frac, _ := strings.Cut(text, ".")
	w, err := decimal.NewFromString(whole)
	if err != nil {
		return nil
	}
	total := w
	if frac != "" {
		f, err := decimal.NewFromString(frac)
		if err != nil {
			return nil
		}
		total = total.Add(f.Div(three))
	}
	v := total.InexactFloat64()
	return &v
}

// ParseStat coerces a numeric stat cell, returning nil for malformed text
func ParseStat(text string) *float64 {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	d, err := decimal.NewFromString(text)
	if err != nil {
		return nil
	}
	v := d.InexactFloat64()
	return &v
}

// ParseHome interprets the home/away marker column: the "@" glyph marks an
// away game, anything else is home.
func ParseHome(text string) bool {
	return strings.TrimSpace(text) != "@"
}
