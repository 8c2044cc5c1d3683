// Package resolver aligns player identities across sources whose name keys
// disagree. Exact key matches short-circuit; otherwise the best fuzzy
// similarity above a minimum acceptance score wins.
package resolver

import (
	"fmt"
	"time"

	cache "github.com/patrickmn/go-cache"
	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/strikeout-edge/internal/metrics"
)

// DefaultMinScore is the acceptance threshold on the 0-100 similarity
// scale. A deliberate precision/recall tradeoff; tune via config.
const DefaultMinScore = 80

// ExactScore is reported for exact key matches
const ExactScore = 100

// Similarity scores two name keys in [0, 100]. Any token-order-insensitive
// metric satisfies the contract.
type Similarity interface {
	Score(a, b string) int
}

// TokenSortSimilarity scores with a token-sort Levenshtein ratio, which is
// robust to name reordering ("cole gerrit" vs "gerrit cole") but not to
// typos beyond a moderate edit distance.
type TokenSortSimilarity struct{}

// Score implements Similarity
func (TokenSortSimilarity) Score(a, b string) int {
	return fuzzy.TokenSortRatio(a, b)
}

// Match is an accepted resolution with its audit score
type Match struct {
	Key   string
	Score int
	Exact bool
}

// Resolver resolves a target name key against a candidate pool
type Resolver struct {
	sim      Similarity
	minScore int
	cache    *cache.Cache
	logger   *logrus.Logger
}

// New creates a resolver. A nil similarity defaults to token-sort; ttl <= 0
// disables resolution caching.
func New(sim Similarity, minScore int, ttl time.Duration, logger *logrus.Logger) *Resolver {
	if sim == nil {
		sim = TokenSortSimilarity{}
	}
	if minScore <= 0 {
		minScore = DefaultMinScore
	}
	if logger == nil {
		logger = logrus.New()
	}
	var c *cache.Cache
	if ttl > 0 {
		c = cache.New(ttl, ttl*2)
	}
	return &Resolver{sim: sim, minScore: minScore, cache: c, logger: logger}
}

// MinScore returns the acceptance threshold in use
func (r *Resolver) MinScore() int {
	return r.minScore
}

// Resolve finds the best match for target within candidates. An exact key
// match returns immediately with score 100. Otherwise the highest-scoring
// candidate is returned when its score is at least the minimum; ties at the
// maximum keep the first tying candidate in slice order, so results are
// deterministic for a given candidate ordering. Accepted fuzzy matches are
// logged for manual audit; a silent mis-match corrupts every downstream
// statistic.
func (r *Resolver) Resolve(target string, candidates []string) (Match, bool) {
	for _, c := range candidates {
		if c == target {
			metrics.ExactResolutionsTotal.Inc()
			return Match{Key: c, Score: ExactScore, Exact: true}, true
		}
	}

	best := Match{Score: -1}
	for _, c := range candidates {
		if s := r.sim.Score(target, c); s > best.Score {
			best = Match{Key: c, Score: s}
		}
	}
	if best.Score < r.minScore {
		metrics.UnresolvedNamesTotal.Inc()
		r.logger.WithFields(logrus.Fields{
			"target":     target,
			"best_score": best.Score,
			"candidates": len(candidates),
		}).Debug("No acceptable name match")
		return Match{}, false
	}

	metrics.FuzzyResolutionsTotal.Inc()
	metrics.FuzzyMatchScore.Observe(float64(best.Score))
	r.logger.WithFields(logrus.Fields{
		"target":  target,
		"matched": best.Key,
		"score":   best.Score,
	}).Info("Fuzzy name match accepted")
	return best, true
}

// ResolveAsOf resolves with a per-(date, target) cache in front, for batch
// replays that revisit the same roster repeatedly.
func (r *Resolver) ResolveAsOf(asOf time.Time, target string, candidates []string) (Match, bool) {
	if r.cache == nil {
		return r.Resolve(target, candidates)
	}

	key := fmt.Sprintf("%s|%s", asOf.UTC().Format("2006-01-02"), target)
	if cached, found := r.cache.Get(key); found {
		if res, ok := cached.(resolution); ok {
			return res.match, res.ok
		}
	}

	match, ok := r.Resolve(target, candidates)
	r.cache.Set(key, resolution{match: match, ok: ok}, cache.DefaultExpiration)
	return match, ok
}

type resolution struct {
	match Match
	ok    bool
}
