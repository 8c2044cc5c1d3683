package predictor

import (
	"math"

	"github.com/yourusername/strikeout-edge/internal/models"
)

// Classify compares a prediction against the market line. With no line
// there is nothing to call: pick and confidence are both nil, never
// guessed. Confidence is the absolute edge over the line, rounded to two
// decimals; it is the source of truth, the tier is display-only.
func Classify(predicted float64, line *float64) (models.Pick, *float64) {
	if line == nil {
		return "", nil
	}
	confidence := math.Round(math.Abs(predicted-*line)*100) / 100
	switch {
	case predicted > *line:
		return models.PickOver, &confidence
	case predicted < *line:
		return models.PickUnder, &confidence
	default:
		return models.PickPush, &confidence
	}
}

// Tier maps confidence to the discrete display tier. A deterministic step
// function with inclusive lower bounds at 0.6, 1.1, 1.6 and 2.0; exactly
// zero and the band below 0.6 both render as tier 0.
func Tier(confidence float64) int {
	switch {
	case confidence >= 2.0:
		return 5
	case confidence >= 1.6:
		return 4
	case confidence >= 1.1:
		return 3
	case confidence >= 0.6:
		return 2
	default:
		return 0
	}
}
