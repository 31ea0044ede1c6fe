package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// TeamForm is a team's outcomes over its most recent played matches. The
// period bounds are always derived from the match list, never stored stale.
type TeamForm struct {
	ID          uuid.UUID
	Team        *Team
	Matches     []*PlayedMatch
	PeriodStart time.Time
	PeriodEnd   time.Time
}

// NewTeamForm builds a form record over a non-empty match list and computes
// the covered period from the match dates.
func NewTeamForm(team *Team, matches []*PlayedMatch) (*TeamForm, error) {
	if len(matches) == 0 {
		return nil, errors.New("team form requires at least one match")
	}

	start, end := matches[0].Date, matches[0].Date
	for _, m := range matches[1:] {
		if m.Date.Before(start) {
			start = m.Date
		}
		if m.Date.After(end) {
			end = m.Date
		}
	}

	return &TeamForm{
		ID:          uuid.New(),
		Team:        team,
		Matches:     matches,
		PeriodStart: start,
		PeriodEnd:   end,
	}, nil
}

// Wins counts matches the team won in the period.
func (f *TeamForm) Wins() int {
	n := 0
	for _, m := range f.Matches {
		if m.Winner().Is(f.Team) {
			n++
		}
	}
	return n
}

// Draws counts drawn matches in the period.
func (f *TeamForm) Draws() int {
	n := 0
	for _, m := range f.Matches {
		if m.IsDraw() {
			n++
		}
	}
	return n
}

// Losses counts matches the team lost in the period.
func (f *TeamForm) Losses() int {
	return len(f.Matches) - f.Wins() - f.Draws()
}

// GoalsScored totals the team's goals across the period.
func (f *TeamForm) GoalsScored() int {
	n := 0
	for _, m := range f.Matches {
		if m.HomeTeam.Is(f.Team) {
			n += m.HomeScore
		} else {
			n += m.AwayScore
		}
	}
	return n
}

// GoalsConceded totals the goals scored against the team across the period.
func (f *TeamForm) GoalsConceded() int {
	n := 0
	for _, m := range f.Matches {
		if m.HomeTeam.Is(f.Team) {
			n += m.AwayScore
		} else {
			n += m.HomeScore
		}
	}
	return n
}
