package features

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFeatureFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "features.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFile(t *testing.T) {
	path := writeFeatureFile(t,
		"Player,Date,Team,Opponent,k_last3,ip_last3,home\n"+
			"Gerrit Cole,2024-06-16,NYY,KCR,7.0,6.33,1\n"+
			"José Berríos,2024-06-16,TOR,TEX,5.0,,0\n"+
			"Bad Row,not-a-date,NYY,KCR,1.0,1.0,0\n")

	table, err := LoadFile(path, quiet())
	require.NoError(t, err)

	require.True(t, table.HasDate("2024-06-16"))
	assert.False(t, table.HasDate("2024-06-17"))

	// Keys preserve file order; the resolver tie-break depends on it.
	keys := table.KeysForDate("2024-06-16")
	require.Equal(t, []string{"gerrit cole", "jose berrios"}, keys)

	row, ok := table.RowFor("2024-06-16", "gerrit cole")
	require.True(t, ok)
	assert.InDelta(t, 7.0, row.Values[FeatureKLast3], 1e-9)
	assert.InDelta(t, 1.0, row.Values[FeatureHome], 1e-9)

	// Malformed numeric cell leaves the feature absent, not zero.
	row, ok = table.RowFor("2024-06-16", "jose berrios")
	require.True(t, ok)
	_, present := row.Values[FeatureIPLast3]
	assert.False(t, present)

	_, ok = table.RowFor("2024-06-16", "bad row")
	assert.False(t, ok, "rows with unparseable dates are dropped")
}

func TestLoadFileMissingRequiredColumns(t *testing.T) {
	path := writeFeatureFile(t, "Team,k_last3\nNYY,7.0\n")
	_, err := LoadFile(path, quiet())
	assert.Error(t, err)
}
