package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDedupKey(t *testing.T) {
	base := Observation{
		PitcherKey:  "gerrit cole",
		Date:        time.Date(2024, 6, 16, 0, 0, 0, 0, time.UTC),
		Team:        "NYY",
		InningsText: "6.2",
		GameResult:  "W 5-2",
	}

	same := base
	same.Strikeouts = nil
	assert.Equal(t, base.DedupKey(), same.DedupKey(), "parsed stats never enter the key")

	corrected := base
	corrected.InningsText = "6.1"
	assert.NotEqual(t, base.DedupKey(), corrected.DedupKey(), "innings text corrections are distinct rows")

	otherDay := base
	otherDay.Date = base.Date.AddDate(0, 0, 1)
	assert.NotEqual(t, base.DedupKey(), otherDay.DedupKey())
}

func TestDateKey(t *testing.T) {
	est, err := time.LoadLocation("America/New_York")
	assert.NoError(t, err)

	// 11pm Eastern on the 16th is already the 17th in UTC.
	late := time.Date(2024, 6, 16, 23, 0, 0, 0, est)
	assert.Equal(t, "2024-06-17", DateKey(late))
	assert.Equal(t, "2024-06-16", DateKey(time.Date(2024, 6, 16, 15, 4, 5, 0, time.UTC)))
}

func TestDay(t *testing.T) {
	d := Day(time.Date(2024, 6, 16, 15, 4, 5, 123, time.UTC))
	assert.Equal(t, time.Date(2024, 6, 16, 0, 0, 0, 0, time.UTC), d)
	assert.Equal(t, d, Day(d))
}
