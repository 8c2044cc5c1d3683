// Package scorer defines the contract with the externally trained model
// and a linear implementation over a coefficients artifact. The core never
// sees the training side; it validates feature coverage and calls.
package scorer

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/yourusername/strikeout-edge/internal/models"
)

// Scorer is the trained scoring function. RequiredFeatures is the ordered
// feature contract; Predict scores one feature row.
type Scorer interface {
	RequiredFeatures() []string
	Predict(features map[string]float64) (float64, error)
}

// ValidateCoverage checks that every required feature is present before a
// scoring call. A missing column is a fatal contract violation, not a
// per-row skip; it means the feature build and the artifact disagree.
func ValidateCoverage(s Scorer, features map[string]float64) error {
	var missing []string
	for _, name := range s.RequiredFeatures() {
		if _, ok := features[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", models.ErrMissingFeatures, strings.Join(missing, ", "))
	}
	return nil
}

// LinearScorer scores with an intercept plus per-feature weights loaded
// from a model artifact.
type LinearScorer struct {
	intercept float64
	features  []string
	weights   map[string]float64
}

type artifact struct {
	Intercept float64            `json:"intercept"`
	Features  []string           `json:"features"`
	Weights   map[string]float64 `json:"weights"`
}

// LoadLinear reads a JSON coefficients artifact. Every declared feature
// must have a weight.
func LoadLinear(path string) (*LinearScorer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read model artifact: %w", err)
	}
	var a artifact
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("failed to parse model artifact %s: %w", path, err)
	}
	if len(a.Features) == 0 {
		return nil, fmt.Errorf("model artifact %s declares no features", path)
	}
	for _, name := range a.Features {
		if _, ok := a.Weights[name]; !ok {
			return nil, fmt.Errorf("model artifact %s: feature %q has no weight", path, name)
		}
	}
	return &LinearScorer{intercept: a.Intercept, features: a.Features, weights: a.Weights}, nil
}

// NewLinear builds a scorer directly from coefficients
func NewLinear(intercept float64, features []string, weights map[string]float64) *LinearScorer {
	return &LinearScorer{intercept: intercept, features: features, weights: weights}
}

// RequiredFeatures implements Scorer
func (s *LinearScorer) RequiredFeatures() []string {
	return s.features
}

// Predict implements Scorer
func (s *LinearScorer) Predict(features map[string]float64) (float64, error) {
	if err := ValidateCoverage(s, features); err != nil {
		return 0, err
	}
	total := s.intercept
	for _, name := range s.features {
		total += s.weights[name] * features[name]
	}
	return total, nil
}
