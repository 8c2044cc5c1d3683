package resolver

import (
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubSimilarity scores from a fixed table, defaulting to zero.
type stubSimilarity struct {
	scores map[string]int
}

func (s stubSimilarity) Score(a, b string) int {
	return s.scores[a+"|"+b]
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

func TestResolveExactMatchShortCircuits(t *testing.T) {
	r := New(stubSimilarity{}, 80, 0, quietLogger())

	match, ok := r.Resolve("gerrit cole", []string{"jose berrios", "gerrit cole"})
	require.True(t, ok)
	assert.Equal(t, "gerrit cole", match.Key)
	assert.Equal(t, ExactScore, match.Score)
	assert.True(t, match.Exact)
}

func TestResolveTokenReorder(t *testing.T) {
	r := New(TokenSortSimilarity{}, 80, 0, quietLogger())

	match, ok := r.Resolve("cole gerrit", []string{"gerrit cole", "kevin gausman"})
	require.True(t, ok)
	assert.Equal(t, "gerrit cole", match.Key)
	assert.False(t, match.Exact)
	assert.GreaterOrEqual(t, match.Score, 80)
}

func TestResolveBelowMinScoreRejected(t *testing.T) {
	sim := stubSimilarity{scores: map[string]int{
		"target|a": 79,
		"target|b": 42,
	}}
	r := New(sim, 80, 0, quietLogger())

	_, ok := r.Resolve("target", []string{"a", "b"})
	assert.False(t, ok)
}

func TestResolveKeepsFirstOfTiedBest(t *testing.T) {
	sim := stubSimilarity{scores: map[string]int{
		"target|first":  90,
		"target|second": 90,
	}}
	r := New(sim, 80, 0, quietLogger())

	match, ok := r.Resolve("target", []string{"first", "second"})
	require.True(t, ok)
	assert.Equal(t, "first", match.Key)
	assert.Equal(t, 90, match.Score)
}

func TestResolveEmptyCandidates(t *testing.T) {
	r := New(nil, 0, 0, quietLogger())
	_, ok := r.Resolve("anyone", nil)
	assert.False(t, ok)
}

func TestResolveAsOfCachesPerDate(t *testing.T) {
	sim := stubSimilarity{scores: map[string]int{"target|match": 95}}
	r := New(sim, 80, time.Minute, quietLogger())

	asOf := time.Date(2024, 6, 16, 0, 0, 0, 0, time.UTC)
	first, ok := r.ResolveAsOf(asOf, "target", []string{"match"})
	require.True(t, ok)

	// Cached result survives the candidate pool changing underneath.
	second, ok := r.ResolveAsOf(asOf, "target", nil)
	require.True(t, ok)
	assert.Equal(t, first, second)

	// A different date misses the cache and re-resolves.
	_, ok = r.ResolveAsOf(asOf.AddDate(0, 0, 1), "target", nil)
	assert.False(t, ok)
}

func TestNewDefaults(t *testing.T) {
	r := New(nil, 0, 0, nil)
	assert.Equal(t, DefaultMinScore, r.MinScore())
}
