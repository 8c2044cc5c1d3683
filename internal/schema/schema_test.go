package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveVariantHeaders(t *testing.T) {
	header := []string{"Player", "Game Date", "Team", "Opp", "Unnamed: 3", "Final Score", "IP", "K"}
	cols, err := Resolve(header, ColPitcher, ColDate, ColTeam, ColSO)
	require.NoError(t, err)

	row := []string{"Gerrit Cole", "2024-06-16", "NYY", "KCR", "@", "W 4-1", "7.0", "8"}
	assert.Equal(t, "Gerrit Cole", cols.Get(row, ColPitcher))
	assert.Equal(t, "2024-06-16", cols.Get(row, ColDate))
	assert.Equal(t, "KCR", cols.Get(row, ColOpponent))
	assert.Equal(t, "@", cols.Get(row, ColHomeAway))
	assert.Equal(t, "W 4-1", cols.Get(row, ColResult))
	assert.Equal(t, "8", cols.Get(row, ColSO))
}

func TestResolveMissingRequired(t *testing.T) {
	_, err := Resolve([]string{"Team", "Opp"}, ColPitcher, ColDate)
	require.Error(t, err)
	assert.Contains(t, err.Error(), ColPitcher)
	assert.Contains(t, err.Error(), ColDate)
}

func TestResolveFirstDuplicateWins(t *testing.T) {
	cols, err := Resolve([]string{"Player", "Pitcher"}, ColPitcher)
	require.NoError(t, err)
	assert.Equal(t, "first", cols.Get([]string{"first", "second"}, ColPitcher))
}

func TestResolveUnknownHeaderPassesThrough(t *testing.T) {
	cols, err := Resolve([]string{"Player", "k_last3"}, ColPitcher, "k_last3")
	require.NoError(t, err)
	assert.True(t, cols.Has("k_last3"))
}

func TestGetRaggedRow(t *testing.T) {
	cols, err := Resolve([]string{"Player", "Date", "SO"}, ColPitcher)
	require.NoError(t, err)
	assert.Equal(t, "", cols.Get([]string{"Gerrit Cole"}, ColSO))
}

func TestPredictionTableHeaders(t *testing.T) {
	header := []string{"Date", "Team", "Opponent", "Pitcher", "Predicted K", "Vegas Line", "Confidence", "Model Pick", "Actual K", "Result"}
	cols, err := Resolve(header, ColPitcher, ColDate, ColPredicted)
	require.NoError(t, err)
	assert.True(t, cols.Has(ColVegasLine))
	assert.True(t, cols.Has(ColPick))
	assert.True(t, cols.Has(ColActual))
	assert.True(t, cols.Has(ColConfidence))
}
