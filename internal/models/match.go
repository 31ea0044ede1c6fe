package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Match is the base record shared by all match variants. PlayedMatch and
// FixtureMatch embed it and add their payload; consumers branch on Status
// rather than on dynamic type.
type Match struct {
	ID          uuid.UUID
	URL         string
	Country     string
	Competition string
	Date        time.Time
	Round       string
	HomeTeam    *Team
	AwayTeam    *Team
	Status      Status
}

// NewMatch creates a base match record with a fresh ID.
func NewMatch(url, country, competition string, date time.Time, round string, home, away *Team, status Status) *Match {
	return &Match{
		ID:          uuid.New(),
		URL:         url,
		Country:     country,
		Competition: competition,
		Date:        date,
		Round:       round,
		HomeTeam:    home,
		AwayTeam:    away,
		Status:      status,
	}
}

func (m *Match) String() string {
	return fmt.Sprintf("%s vs %s - %s (%s) - %s",
		m.HomeTeam.Name, m.AwayTeam.Name, m.Competition, m.Country,
		m.Date.Format("2006-01-02 15:04"))
}

// PlayedMatch is a finished match with its final score and, when extraction
// succeeded, detailed statistics. Scores are structurally required;
// Statistics stays nil when the stats block could not be read, which is a
// legitimate outcome for archived matches.
type PlayedMatch struct {
	Match
	HomeScore  int
	AwayScore  int
	Statistics *MatchStatistics
}

// Winner returns the winning team, or nil for a draw.
func (m *PlayedMatch) Winner() *Team {
	switch {
	case m.HomeScore > m.AwayScore:
		return m.HomeTeam
	case m.AwayScore > m.HomeScore:
		return m.AwayTeam
	default:
		return nil
	}
}

// IsDraw reports whether the match ended level.
func (m *PlayedMatch) IsDraw() bool { return m.HomeScore == m.AwayScore }

// GoalDifference is positive for a home win, negative for an away win.
func (m *PlayedMatch) GoalDifference() int { return m.HomeScore - m.AwayScore }

// TotalGoals is the number of goals scored by both sides.
func (m *PlayedMatch) TotalGoals() int { return m.HomeScore + m.AwayScore }

func (m *PlayedMatch) String() string {
	return fmt.Sprintf("%s %d - %d %s (%s, %s)",
		m.HomeTeam.Name, m.HomeScore, m.AwayScore, m.AwayTeam.Name,
		m.Competition, m.Country)
}

// FixtureMatch is a match not yet played, enriched with predictive context.
// Every enrichment is optional: a fixture with no form or head-to-head data
// is still a valid fixture.
type FixtureMatch struct {
	Match
	HomeForm   *TeamForm
	AwayForm   *TeamForm
	HeadToHead *HeadToHead
}

// DaysUntil returns the number of whole days until kickoff, negative when
// the date has passed.
func (m *FixtureMatch) DaysUntil() int {
	now := time.Now()
	kickoff := time.Date(m.Date.Year(), m.Date.Month(), m.Date.Day(), 0, 0, 0, 0, m.Date.Location())
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, m.Date.Location())
	return int(kickoff.Sub(today).Hours() / 24)
}
