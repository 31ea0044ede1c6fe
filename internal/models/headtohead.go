package models

import (
	"fmt"

	"github.com/google/uuid"
)

// HeadToHead is the historical record between two specific teams. The match
// list keeps insertion order for display; the record summary is
// order-independent.
type HeadToHead struct {
	ID      uuid.UUID
	TeamA   *Team
	TeamB   *Team
	Matches []*PlayedMatch
}

// NewHeadToHead creates a head-to-head record with a fresh ID.
func NewHeadToHead(teamA, teamB *Team, matches []*PlayedMatch) *HeadToHead {
	return &HeadToHead{ID: uuid.New(), TeamA: teamA, TeamB: teamB, Matches: matches}
}

// Record is a wins/draws/losses summary from one team's perspective.
type Record struct {
	Wins   int `json:"wins"`
	Draws  int `json:"draws"`
	Losses int `json:"losses"`
}

// TeamRecord computes the record for the given team against the other. The
// team must be one of the two participants.
func (h *HeadToHead) TeamRecord(team *Team) (Record, error) {
	if !team.Is(h.TeamA) && !team.Is(h.TeamB) {
		return Record{}, fmt.Errorf("team %q is not part of this head-to-head record", team.Name)
	}

	var r Record
	for _, m := range h.Matches {
		winner := m.Winner()
		switch {
		case winner.Is(team):
			r.Wins++
		case winner == nil:
			r.Draws++
		default:
			r.Losses++
		}
	}
	return r, nil
}
