package scrape

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fixscore/internal/models"
)

func TestParseStatRatio(t *testing.T) {
	r, err := parseStatRatio("88% (522/592)")
	require.NoError(t, err)
	assert.Equal(t, 522, r.Completed)
	assert.Equal(t, 592, r.Total)

	r, err = parseStatRatio(" 100%  ( 7 / 7 ) ")
	require.NoError(t, err)
	assert.Equal(t, models.Ratio{Completed: 7, Total: 7}, r)

	_, err = parseStatRatio("522/592")
	assert.Error(t, err)
	_, err = parseStatRatio("88%")
	assert.Error(t, err)
}

func TestParseStatPercent(t *testing.T) {
	v, err := parseStatPercent("65%")
	require.NoError(t, err)
	assert.Equal(t, 65, v)

	_, err = parseStatPercent("n/a")
	assert.Error(t, err)
}

func TestApplyStatRow(t *testing.T) {
	st := models.NewMatchStatistics(uuid.New())

	known, err := applyStatRow(st, "Expected Goals (xG)", "1.84", "0.97")
	require.NoError(t, err)
	require.True(t, known)
	require.NotNil(t, st.ExpectedGoals)
	assert.InDelta(t, 1.84, st.ExpectedGoals.Home, 0.001)
	assert.InDelta(t, 0.97, st.ExpectedGoals.Away, 0.001)

	known, err = applyStatRow(st, "Ball Possession", "58%", "42%")
	require.NoError(t, err)
	require.True(t, known)
	assert.Equal(t, &models.IntStat{Home: 58, Away: 42}, st.Possession)

	known, err = applyStatRow(st, "Passes", "88% (522/592)", "79% (310/392)")
	require.NoError(t, err)
	require.True(t, known)
	assert.Equal(t, models.Ratio{Completed: 522, Total: 592}, st.Passes.Home)
	assert.Equal(t, models.Ratio{Completed: 310, Total: 392}, st.Passes.Away)

	known, err = applyStatRow(st, "Corner Kicks", "7", "2")
	require.NoError(t, err)
	require.True(t, known)
	assert.Equal(t, &models.IntStat{Home: 7, Away: 2}, st.CornerKicks)
}

func TestApplyStatRowUnknownLabel(t *testing.T) {
	st := models.NewMatchStatistics(uuid.New())

	known, err := applyStatRow(st, "Dangerous Attacks", "44", "31")
	assert.NoError(t, err)
	assert.False(t, known)
}

func TestApplyStatRowMalformedValue(t *testing.T) {
	st := models.NewMatchStatistics(uuid.New())

	known, err := applyStatRow(st, "Fouls", "eleven", "9")
	assert.True(t, known)
	assert.Error(t, err)
	assert.Nil(t, st.Fouls, "a malformed row must not leave a partial value")
}
