package scorer

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/strikeout-edge/internal/models"
)

func writeArtifact(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "model.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadLinear(t *testing.T) {
	path := writeArtifact(t, `{
		"intercept": 1.25,
		"features": ["k_last3", "home"],
		"weights": {"k_last3": 0.9, "home": 0.4}
	}`)

	s, err := LoadLinear(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"k_last3", "home"}, s.RequiredFeatures())

	got, err := s.Predict(map[string]float64{"k_last3": 7.0, "home": 1.0})
	require.NoError(t, err)
	assert.InDelta(t, 1.25+0.9*7.0+0.4, got, 1e-9)
}

func TestLoadLinearRejectsWeightlessFeature(t *testing.T) {
	path := writeArtifact(t, `{
		"intercept": 0,
		"features": ["k_last3", "home"],
		"weights": {"k_last3": 0.9}
	}`)

	_, err := LoadLinear(path)
	assert.ErrorContains(t, err, "home")
}

func TestLoadLinearRejectsEmptyFeatureList(t *testing.T) {
	path := writeArtifact(t, `{"intercept": 1.0, "features": [], "weights": {}}`)
	_, err := LoadLinear(path)
	assert.Error(t, err)
}

func TestLoadLinearMissingFile(t *testing.T) {
	_, err := LoadLinear(filepath.Join(t.TempDir(), "absent.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestValidateCoverage(t *testing.T) {
	s := NewLinear(0, []string{"k_last3", "home"}, map[string]float64{"k_last3": 1, "home": 1})

	assert.NoError(t, ValidateCoverage(s, map[string]float64{"k_last3": 7, "home": 0}))

	err := ValidateCoverage(s, map[string]float64{"k_last3": 7})
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrMissingFeatures))
	assert.ErrorContains(t, err, "home")
}

func TestPredictFailsOnMissingFeature(t *testing.T) {
	s := NewLinear(0, []string{"k_last3"}, map[string]float64{"k_last3": 1})
	_, err := s.Predict(map[string]float64{})
	assert.True(t, errors.Is(err, models.ErrMissingFeatures))
}

func TestPredictZeroValuedFeatureIsCovered(t *testing.T) {
	s := NewLinear(2.0, []string{"home"}, map[string]float64{"home": 0.5})
	got, err := s.Predict(map[string]float64{"home": 0})
	require.NoError(t, err)
	assert.InDelta(t, 2.0, got, 1e-9)
}
