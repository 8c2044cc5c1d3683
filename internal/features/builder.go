// Package features computes point-in-time rolling statistics for pitchers.
// Every window is built from observations strictly before the as-of date;
// including the as-of date's own game is look-ahead leakage and a
// correctness violation, not a tuning choice.
package features

import (
	"fmt"
	"sort"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/strikeout-edge/internal/metrics"
	"github.com/yourusername/strikeout-edge/internal/models"
)

// Canonical model feature names. The trained scorer's contract is declared
// in these terms.
const (
	FeatureKLast3  = "k_last3"
	FeatureIPLast3 = "ip_last3"
	FeatureERLast3 = "er_last3"
	FeatureBBLast3 = "bb_last3"
	FeatureBFLast3 = "bf_last3"
	FeatureHome    = "home"
)

// Policy controls window sizing. Live prediction requires a full window;
// the engineered-feature file accepts partial windows down to two starts.
type Policy struct {
	Window          int
	MinObservations int
}

// DefaultPolicy is the full-window live-prediction policy
func DefaultPolicy() Policy {
	return Policy{Window: 3, MinObservations: 3}
}

// PartialPolicy accepts partial windows, matching the feature-file builder
func PartialPolicy() Policy {
	return Policy{Window: 3, MinObservations: 2}
}

// Ledger supplies a pitcher's recorded observations
type Ledger interface {
	ObservationsFor(pitcherKey string) []models.Observation
}

// Builder computes rolling feature vectors against a ledger
type Builder struct {
	policy Policy
	logger *logrus.Logger
}

// NewBuilder creates a feature builder
func NewBuilder(policy Policy, logger *logrus.Logger) *Builder {
	if policy.Window <= 0 {
		policy = DefaultPolicy()
	}
	if logger == nil {
		logger = logrus.New()
	}
	return &Builder{policy: policy, logger: logger}
}

// Build computes the rolling feature vector for a pitcher as of a date.
// Mean aggregates feed the model features; earned runs, hits, walks and
// innings are additionally summed across the window so that the rate stats
// divide once over window totals. Averaging per-game ERAs would weight a
// two-inning start the same as an eight-inning one and bias the estimate.
func (b *Builder) Build(pitcherKey string, asOf time.Time, ledger Ledger) (models.FeatureVector, error) {
	window := Window(ledger.ObservationsFor(pitcherKey), asOf, b.policy.Window)
	if len(window) < b.policy.MinObservations {
		metrics.SkippedInsufficientHistoryTotal.Inc()
		return models.FeatureVector{}, fmt.Errorf("%s as of %s: %d prior starts: %w",
			pitcherKey, models.DateKey(asOf), len(window), models.ErrInsufficientHistory)
	}

	fv := models.FeatureVector{
		PitcherKey: pitcherKey,
		AsOf:       asOf,
		Count:      len(window),
		Values:     make(map[string]float64),
	}

	setMean(fv.Values, FeatureKLast3, window, func(o models.Observation) *float64 { return o.Strikeouts })
	setMean(fv.Values, FeatureIPLast3, window, func(o models.Observation) *float64 { return o.Innings })
	setMean(fv.Values, FeatureERLast3, window, func(o models.Observation) *float64 { return o.EarnedRuns })
	setMean(fv.Values, FeatureBBLast3, window, func(o models.Observation) *float64 { return o.Walks })
	setMean(fv.Values, FeatureBFLast3, window, func(o models.Observation) *float64 { return o.BattersFaced })

	fv.ERA = RollingERA(window)
	fv.WHIP = RollingWHIP(window)
	return fv, nil
}

// Window returns the trailing n observations strictly before asOf, sorted
// ascending by date. Fewer are returned when history is short.
func Window(obs []models.Observation, asOf time.Time, n int) []models.Observation {
	prior := make([]models.Observation, 0, len(obs))
	cutoff := models.Day(asOf)
	for _, o := range obs {
		if models.Day(o.Date).Before(cutoff) {
			prior = append(prior, o)
		}
	}
	sort.SliceStable(prior, func(i, j int) bool {
		return prior[i].Date.Before(prior[j].Date)
	})
	if len(prior) > n {
		prior = prior[len(prior)-n:]
	}
	return prior
}

// RollingERA computes 9 * sum(earned runs) / sum(innings) over the window.
// Rate stats sum numerator and denominator separately before dividing; zero
// window innings leaves the stat undefined.
func RollingERA(window []models.Observation) *float64 {
	er, okER := sum(window, func(o models.Observation) *float64 { return o.EarnedRuns })
	ip, okIP := sum(window, func(o models.Observation) *float64 { return o.Innings })
	if !okER || !okIP || ip == 0 {
		return nil
	}
	era := 9 * er / ip
	return &era
}

// RollingWHIP computes (sum(hits) + sum(walks)) / sum(innings) over the window
func RollingWHIP(window []models.Observation) *float64 {
	h, okH := sum(window, func(o models.Observation) *float64 { return o.Hits })
	bb, okBB := sum(window, func(o models.Observation) *float64 { return o.Walks })
	ip, okIP := sum(window, func(o models.Observation) *float64 { return o.Innings })
	if !okH || !okBB || !okIP || ip == 0 {
		return nil
	}
	whip := (h + bb) / ip
	return &whip
}

// setMean stores the mean of the non-missing values for a field. A field
// missing from every window row stays absent from the map, so the scorer's
// coverage check fails loudly instead of scoring a silent zero.
func setMean(values map[string]float64, name string, window []models.Observation, get func(models.Observation) *float64) {
	total := 0.0
	n := 0
	for _, o := range window {
		if v := get(o); v != nil {
			total += *v
			n++
		}
	}
	if n == 0 {
		return
	}
	values[name] = total / float64(n)
}

func sum(window []models.Observation, get func(models.Observation) *float64) (float64, bool) {
	total := 0.0
	seen := false
	for _, o := range window {
		if v := get(o); v != nil {
			total += *v
			seen = true
		}
	}
	return total, seen
}
