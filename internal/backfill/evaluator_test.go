package backfill

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/strikeout-edge/internal/features"
	"github.com/yourusername/strikeout-edge/internal/ledger"
	"github.com/yourusername/strikeout-edge/internal/models"
	"github.com/yourusername/strikeout-edge/internal/resolver"
	"github.com/yourusername/strikeout-edge/internal/scorer"
)

func fp(v float64) *float64 { return &v }

func quiet() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name   string
		pick   models.Pick
		actual *float64
		line   *float64
		want   models.Result
	}{
		{"over hit", models.PickOver, fp(8), fp(6.5), models.ResultHit},
		{"over miss", models.PickOver, fp(5), fp(6.5), models.ResultMiss},
		{"over exact is miss", models.PickOver, fp(6), fp(6), models.ResultMiss},
		{"under hit", models.PickUnder, fp(5), fp(6.5), models.ResultHit},
		{"under miss", models.PickUnder, fp(8), fp(6.5), models.ResultMiss},
		{"push never hits", models.PickPush, fp(6), fp(6), models.ResultMiss},
		{"no actual", models.PickOver, nil, fp(6.5), models.ResultNoData},
		{"no line", models.PickOver, fp(8), nil, models.ResultNoData},
		{"no pick", models.Pick(""), fp(8), fp(6.5), models.ResultNoData},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Evaluate(tt.pick, tt.actual, tt.line))
		})
	}
}

func TestSummarize(t *testing.T) {
	records := []models.PredictionRecord{
		{Result: models.ResultHit},
		{Result: models.ResultHit},
		{Result: models.ResultMiss},
		{Result: models.ResultNoData},
		{Result: models.ResultNoData},
	}

	s := Summarize(records)
	assert.Equal(t, 2, s.Hits)
	assert.Equal(t, 1, s.Misses)
	assert.Equal(t, 2, s.NoData)
	assert.InDelta(t, 2.0/3.0, s.HitRate, 1e-9, "NO DATA stays out of the denominator")

	assert.Equal(t, Summary{}, Summarize(nil))
}

func writeFixtures(t *testing.T) (*ledger.Table, *features.Table) {
	t.Helper()
	dir := t.TempDir()

	boxPath := filepath.Join(dir, "box.csv")
	boxCSV := "Player,Date,Team,Opponent,IP,SO\n" +
		"Berríos José,2024-06-16,TOR,TEX,6.0,8\n" +
		"Gerrit Cole,2024-06-16,NYY,KCR,6.0,5\n" +
		"Gerrit Cole,2024-06-17,NYY,KCR,6.0,7\n"
	require.NoError(t, os.WriteFile(boxPath, []byte(boxCSV), 0o644))

	featPath := filepath.Join(dir, "features.csv")
	featCSV := "Player,Date,k_last3,home\n" +
		"José Berríos,2024-06-16,5.0,0\n" +
		"Gerrit Cole,2024-06-16,7.0,1\n"
	require.NoError(t, os.WriteFile(featPath, []byte(featCSV), 0o644))

	box, err := ledger.Load(boxPath, quiet())
	require.NoError(t, err)
	feats, err := features.LoadFile(featPath, quiet())
	require.NoError(t, err)
	return box, feats
}

func testModel() scorer.Scorer {
	return scorer.NewLinear(1.0, []string{"k_last3", "home"}, map[string]float64{
		"k_last3": 1.0,
		"home":    0.5,
	})
}

func TestRunFlatLine(t *testing.T) {
	box, feats := writeFixtures(t)

	res := resolver.New(resolver.TokenSortSimilarity{}, 80, 0, quiet())
	e, err := NewEvaluator(res, testModel(), quiet())
	require.NoError(t, err)

	cfg := Config{
		Start:    time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC),
		End:      time.Date(2024, 6, 17, 0, 0, 0, 0, time.UTC),
		FlatLine: 6.5,
	}

	records, summary, err := e.Run(context.Background(), cfg, box, feats, nil)
	require.NoError(t, err)

	// 2024-06-15 has no rows; 2024-06-17 has box scores but no features
	// and is skipped; only 2024-06-16 is evaluated.
	require.Len(t, records, 2)

	byKey := map[string]models.PredictionRecord{}
	for _, rec := range records {
		byKey[rec.PitcherKey] = rec
	}

	// Reordered box name resolves to the feature row fuzzily.
	berrios, ok := byKey["jose berrios"]
	require.True(t, ok)
	assert.InDelta(t, 6.0, berrios.Predicted, 1e-9)
	assert.Equal(t, models.PickUnder, berrios.Pick)
	require.NotNil(t, berrios.Actual)
	assert.Equal(t, 8.0, *berrios.Actual)
	assert.Equal(t, models.ResultMiss, berrios.Result)
	assert.Equal(t, 100, berrios.MatchScore)

	cole, ok := byKey["gerrit cole"]
	require.True(t, ok)
	assert.InDelta(t, 8.5, cole.Predicted, 1e-9)
	assert.Equal(t, models.PickOver, cole.Pick)
	assert.Equal(t, models.ResultMiss, cole.Result, "actual 5 under an Over pick misses")

	assert.Equal(t, 0, summary.Hits)
	assert.Equal(t, 2, summary.Misses)
	assert.InDelta(t, 0.0, summary.HitRate, 1e-9)
}

func TestRunWithLines(t *testing.T) {
	box, feats := writeFixtures(t)

	res := resolver.New(resolver.TokenSortSimilarity{}, 80, 0, quiet())
	e, err := NewEvaluator(res, testModel(), quiet())
	require.NoError(t, err)

	cfg := Config{
		Start:    time.Date(2024, 6, 16, 0, 0, 0, 0, time.UTC),
		End:      time.Date(2024, 6, 16, 0, 0, 0, 0, time.UTC),
		FlatLine: 6.5,
	}
	// Cole has a book line; Berrios does not and becomes NO DATA.
	lines := map[string]float64{"gerrit cole": 7.5}

	records, summary, err := e.Run(context.Background(), cfg, box, feats, lines)
	require.NoError(t, err)
	require.Len(t, records, 2)

	byKey := map[string]models.PredictionRecord{}
	for _, rec := range records {
		byKey[rec.PitcherKey] = rec
	}

	assert.Equal(t, models.ResultNoData, byKey["jose berrios"].Result)
	assert.Nil(t, byKey["jose berrios"].Line)

	cole := byKey["gerrit cole"]
	require.NotNil(t, cole.Line)
	assert.Equal(t, models.PickOver, cole.Pick, "8.5 over the 7.5 line")
	assert.Equal(t, models.ResultMiss, cole.Result)

	assert.Equal(t, 1, summary.NoData)
	assert.Equal(t, 1, summary.Misses)
}

func TestRunCancelledContext(t *testing.T) {
	box, feats := writeFixtures(t)
	res := resolver.New(nil, 0, 0, quiet())
	e, err := NewEvaluator(res, testModel(), quiet())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err = e.Run(ctx, Config{Start: time.Now(), End: time.Now()}, box, feats, nil)
	assert.ErrorIs(t, err, context.Canceled)
}
