package predictor

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/strikeout-edge/internal/models"
)

func record(name string, predicted float64, line *float64) models.PredictionRecord {
	rec := models.PredictionRecord{
		ID:          uuid.New(),
		Date:        time.Date(2024, 6, 16, 0, 0, 0, 0, time.UTC),
		PitcherKey:  name,
		PitcherName: name,
		Team:        "NYY",
		Opponent:    "BOS",
		Predicted:   predicted,
		Line:        line,
		Result:      models.ResultPending,
	}
	rec.Pick, rec.Confidence = Classify(predicted, line)
	if rec.Confidence != nil {
		rec.Tier = Tier(*rec.Confidence)
	}
	return rec
}

func TestWriteReadTableRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "predictions.csv")
	records := []models.PredictionRecord{
		record("gerrit cole", 8.5, lp(7.5)),
		record("jose berrios", 6.0, nil),
	}

	require.NoError(t, WriteTable(path, records))

	got, err := ReadTable(path)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "gerrit cole", got[0].PitcherKey)
	assert.InDelta(t, 8.5, got[0].Predicted, 1e-9)
	require.NotNil(t, got[0].Line)
	assert.InDelta(t, 7.5, *got[0].Line, 1e-9)
	assert.Equal(t, models.PickOver, got[0].Pick)
	assert.Equal(t, 2, got[0].Tier, "tier is recomputed from confidence on read")

	assert.Nil(t, got[1].Line)
	assert.Equal(t, models.Pick(""), got[1].Pick)
}

func TestReadTableMissingFile(t *testing.T) {
	_, err := ReadTable(filepath.Join(t.TempDir(), "absent.csv"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestMatchedLines(t *testing.T) {
	records := []models.PredictionRecord{
		record("a", 5, lp(4.5)),
		record("b", 5, nil),
		record("c", 5, lp(6.5)),
	}
	assert.Equal(t, 2, MatchedLines(records))
	assert.Equal(t, 0, MatchedLines(nil))
}

func TestAcceptMasterRequiresStrictlyMoreLines(t *testing.T) {
	two := []models.PredictionRecord{record("a", 5, lp(4.5)), record("b", 5, lp(5.5))}
	one := []models.PredictionRecord{record("a", 5, lp(4.5)), record("b", 5, nil)}

	assert.True(t, AcceptMaster(one, two))
	assert.False(t, AcceptMaster(two, one))
	assert.False(t, AcceptMaster(two, two), "equal coverage does not replace the master")
}
