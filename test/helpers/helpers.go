// Package helpers provides shared fixtures for integration and e2e tests.
package helpers

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// FloatPtr returns a pointer to v.
func FloatPtr(v float64) *float64 {
	return &v
}

// WriteCSV writes rows to path, creating parent directories as needed.
func WriteCSV(t *testing.T, path string, rows [][]string) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	w := csv.NewWriter(f)
	require.NoError(t, w.WriteAll(rows))
	w.Flush()
	require.NoError(t, w.Error())
}

// BoxScoreFixture returns a box score ledger with three prior starts for
// each of two pitchers before 2024-06-16, plus realized rows on that date.
// Gerrit Cole averages 7 strikeouts over his window, Jose Berrios 5.
func BoxScoreFixture() [][]string {
	return [][]string{
		{"Player", "Date", "Team", "Opponent", "HomeAway", "Result", "IP", "SO", "ER", "BB", "H", "BF"},
		{"Gerrit Cole", "2024-06-01", "NYY", "BOS", "", "W 5-2", "6.0", "6", "2", "1", "5", "24"},
		{"Gerrit Cole", "2024-06-06", "NYY", "TBR", "@", "L 1-3", "6.1", "7", "3", "2", "6", "26"},
		{"Gerrit Cole", "2024-06-11", "NYY", "BAL", "", "W 4-1", "7.0", "8", "1", "1", "4", "27"},
		{"José Berríos", "2024-06-01", "TOR", "DET", "@", "W 6-3", "5.2", "4", "2", "2", "6", "24"},
		{"José Berríos", "2024-06-06", "TOR", "CLE", "", "L 2-4", "6.0", "5", "3", "1", "7", "25"},
		{"José Berríos", "2024-06-11", "TOR", "SEA", "", "W 3-0", "6.2", "6", "0", "2", "3", "25"},
		{"Gerrit Cole", "2024-06-16", "NYY", "KCR", "", "W 7-2", "6.0", "9", "2", "1", "5", "25"},
		{"José Berríos", "2024-06-16", "TOR", "TEX", "@", "L 2-5", "5.1", "5", "4", "3", "8", "26"},
	}
}

// ScheduleFixture returns a starters feed containing the two fixture
// pitchers on 2024-06-16 and an unrelated earlier date row.
func ScheduleFixture() [][]string {
	return [][]string{
		{"Pitcher", "Date", "Team", "Opponent", "Home"},
		{"Gerrit Cole", "2024-06-16", "NYY", "KCR", "1"},
		{"José Berríos", "2024-06-16", "TOR", "TEX", "0"},
		{"Gerrit Cole", "2024-06-11", "NYY", "BAL", "1"},
	}
}

// PropsFixture returns a props ledger with agreeing books for Cole at 7.5
// and a single book for Berrios at 6.5, plus an off-market row.
func PropsFixture() [][]string {
	return [][]string{
		{"market", "description", "line", "price", "bookmaker"},
		{"pitcher_strikeouts", "Gerrit Cole", "7.5", "-115", "draftkings"},
		{"pitcher_strikeouts", "Gerrit Cole", "7.5", "-110", "fanduel"},
		{"pitcher_strikeouts", "José Berríos", "6.5", "-120", "draftkings"},
		{"batter_home_runs", "Aaron Judge", "0.5", "+220", "draftkings"},
	}
}

// WriteModelArtifact writes a linear scorer artifact predicting
// 1.0 + k_last3 + 0.5*home and returns its path.
func WriteModelArtifact(t *testing.T, dir string) string {
	t.Helper()

	artifact := map[string]interface{}{
		"intercept": 1.0,
		"features":  []string{"k_last3", "home"},
		"weights": map[string]float64{
			"k_last3": 1.0,
			"home":    0.5,
		},
	}

	data, err := json.Marshal(artifact)
	require.NoError(t, err)

	path := filepath.Join(dir, "model.json")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}
