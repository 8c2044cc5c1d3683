package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseInnings(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"6.2", 6.0 + 2.0/3.0},
		{"6.1", 6.0 + 1.0/3.0},
		{"7.0", 7.0},
		{"7", 7.0},
		{"0.2", 2.0 / 3.0},
	}
	for _, tt := range tests {
		got := ParseInnings(tt.in)
		require.NotNil(t, got, "ParseInnings(%q)", tt.in)
		assert.InDelta(t, tt.want, *got, 1e-9, "ParseInnings(%q)", tt.in)
	}
}

func TestParseInningsMalformed(t *testing.T) {
	for _, in := range []string{"", "  ", "abc", "6.x", "x.2"} {
		assert.Nil(t, ParseInnings(in), "ParseInnings(%q)", in)
	}
}

func TestParseStat(t *testing.T) {
	got := ParseStat(" 8 ")
	require.NotNil(t, got)
	assert.Equal(t, 8.0, *got)

	got = ParseStat("4.5")
	require.NotNil(t, got)
	assert.Equal(t, 4.5, *got)

	assert.Nil(t, ParseStat(""))
	assert.Nil(t, ParseStat("DNP"))
}

func TestParseHome(t *testing.T) {
	assert.False(t, ParseHome("@"))
	assert.False(t, ParseHome(" @ "))
	assert.True(t, ParseHome(""))
	assert.True(t, ParseHome("vs"))
}
