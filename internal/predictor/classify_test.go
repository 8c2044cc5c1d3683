package predictor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/strikeout-edge/internal/models"
)

func lp(v float64) *float64 { return &v }

func TestClassify(t *testing.T) {
	tests := []struct {
		name       string
		predicted  float64
		line       *float64
		wantPick   models.Pick
		wantConf   float64
	}{
		{"over", 5.2, lp(4.5), models.PickOver, 0.7},
		{"under", 4.1, lp(4.5), models.PickUnder, 0.4},
		{"push", 4.5, lp(4.5), models.PickPush, 0.0},
		{"big edge", 8.5, lp(6.5), models.PickOver, 2.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pick, conf := Classify(tt.predicted, tt.line)
			assert.Equal(t, tt.wantPick, pick)
			require.NotNil(t, conf)
			assert.InDelta(t, tt.wantConf, *conf, 1e-9)
		})
	}
}

func TestClassifyNoLine(t *testing.T) {
	pick, conf := Classify(5.2, nil)
	assert.Equal(t, models.Pick(""), pick)
	assert.Nil(t, conf)
}

func TestClassifyRoundsConfidence(t *testing.T) {
	_, conf := Classify(5.533, lp(4.5))
	require.NotNil(t, conf)
	assert.InDelta(t, 1.03, *conf, 1e-9)
}

func TestTier(t *testing.T) {
	tests := []struct {
		confidence float64
		want       int
	}{
		{0.0, 0},
		{0.3, 0},
		{0.59, 0},
		{0.6, 2},
		{1.09, 2},
		{1.1, 3},
		{1.59, 3},
		{1.6, 4},
		{1.99, 4},
		{2.0, 5},
		{3.4, 5},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Tier(tt.confidence), "Tier(%v)", tt.confidence)
	}
}
