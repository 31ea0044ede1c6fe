package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeadToHeadRecordsAreSymmetric(t *testing.T) {
	a := NewTeam("Liverpool", "https://example.org/liverpool")
	b := NewTeam("Everton", "https://example.org/everton")

	h2h := NewHeadToHead(a, b, []*PlayedMatch{
		played(a, b, 2, 0, day(1)),
		played(b, a, 1, 1, day(5)),
		played(a, b, 0, 3, day(9)),
		played(b, a, 0, 1, day(13)),
	})

	recordA, err := h2h.TeamRecord(a)
	require.NoError(t, err)
	recordB, err := h2h.TeamRecord(b)
	require.NoError(t, err)

	assert.Equal(t, Record{Wins: 2, Draws: 1, Losses: 1}, recordA)
	assert.Equal(t, Record{Wins: 1, Draws: 1, Losses: 2}, recordB)

	// One side's wins are exactly the other side's losses.
	assert.Equal(t, recordA.Wins, recordB.Losses)
	assert.Equal(t, recordA.Losses, recordB.Wins)
	assert.Equal(t, recordA.Draws, recordB.Draws)
	assert.Equal(t, len(h2h.Matches), recordA.Wins+recordA.Draws+recordA.Losses)
}

func TestHeadToHeadRejectsOutsider(t *testing.T) {
	a := NewTeam("Liverpool", "https://example.org/liverpool")
	b := NewTeam("Everton", "https://example.org/everton")
	c := NewTeam("Arsenal", "https://example.org/arsenal")

	h2h := NewHeadToHead(a, b, []*PlayedMatch{played(a, b, 1, 0, day(1))})
	_, err := h2h.TeamRecord(c)
	assert.Error(t, err)
}

func TestPlayedMatchWinner(t *testing.T) {
	a := NewTeam("Liverpool", "https://example.org/liverpool")
	b := NewTeam("Everton", "https://example.org/everton")

	win := played(a, b, 3, 1, day(1))
	assert.True(t, win.Winner().Is(a))
	assert.False(t, win.IsDraw())
	assert.Equal(t, 2, win.GoalDifference())
	assert.Equal(t, 4, win.TotalGoals())

	draw := played(a, b, 2, 2, day(2))
	assert.Nil(t, draw.Winner())
	assert.True(t, draw.IsDraw())
}

func TestTeamIs(t *testing.T) {
	a := NewTeam("Liverpool", "https://example.org/liverpool")
	same := NewTeam("Liverpool FC", "https://example.org/liverpool")
	other := NewTeam("Everton", "https://example.org/everton")

	assert.True(t, a.Is(same), "identity follows the URL")
	assert.False(t, a.Is(other))

	noURL := &Team{Name: "Liverpool"}
	assert.True(t, a.Is(noURL), "name fallback when a URL is missing")

	var nilTeam *Team
	assert.False(t, a.Is(nilTeam))
	assert.False(t, nilTeam.Is(a))
}
