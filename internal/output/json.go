// Package output serializes extraction results to JSON files.
package output

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"fixscore/internal/models"
	"fixscore/internal/scrape"
)

const (
	fixturesFileName = "fixtures.json"
	errorsFileName   = "errors.json"
)

// Writer renders a run's fixtures and its error bundle into a directory.
type Writer struct {
	dir string
}

// NewWriter creates a writer targeting dir, creating it if needed.
func NewWriter(dir string) (*Writer, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}
	return &Writer{dir: dir}, nil
}

// FixturesPath is where the fixtures file will be written.
func (w *Writer) FixturesPath() string { return filepath.Join(w.dir, fixturesFileName) }

// ErrorsPath is where the errors file will be written.
func (w *Writer) ErrorsPath() string { return filepath.Join(w.dir, errorsFileName) }

// WriteFixtures writes fixtures.json, and errors.json when the bundle holds
// anything. An empty fixture list still produces a file with an empty array.
func (w *Writer) WriteFixtures(fixtures []*models.FixtureMatch, bundle *scrape.ErrorBundle) error {
	docs := make([]fixtureDoc, 0, len(fixtures))
	for _, f := range fixtures {
		docs = append(docs, newFixtureDoc(f))
	}
	if err := writeJSON(w.FixturesPath(), docs); err != nil {
		return err
	}

	if bundle != nil && !bundle.Empty() {
		if err := writeJSON(w.ErrorsPath(), bundle.ByStage()); err != nil {
			return err
		}
	}
	return nil
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return nil
}

type teamDoc struct {
	TeamID      string `json:"team_id"`
	Name        string `json:"name"`
	URL         string `json:"url"`
	Country     string `json:"country,omitempty"`
	Stadium     string `json:"stadium,omitempty"`
	StadiumCity string `json:"stadium_city,omitempty"`
	Capacity    int    `json:"capacity,omitempty"`
}

type playedMatchDoc struct {
	MatchID     string                  `json:"match_id"`
	MatchURL    string                  `json:"match_url"`
	Country     string                  `json:"country"`
	Competition string                  `json:"competition"`
	MatchDate   string                  `json:"match_date"`
	Round       string                  `json:"round,omitempty"`
	HomeTeam    *teamDoc                `json:"home_team"`
	AwayTeam    *teamDoc                `json:"away_team"`
	HomeScore   int                     `json:"home_score"`
	AwayScore   int                     `json:"away_score"`
	Status      string                  `json:"status"`
	Statistics  *models.MatchStatistics `json:"statistics,omitempty"`
}

type formSummaryDoc struct {
	Wins          int `json:"wins"`
	Draws         int `json:"draws"`
	Losses        int `json:"losses"`
	GoalsScored   int `json:"goals_scored"`
	GoalsConceded int `json:"goals_conceded"`
}

type teamFormDoc struct {
	FormID      string           `json:"form_id"`
	TeamID      string           `json:"team_id"`
	PeriodStart string           `json:"period_start"`
	PeriodEnd   string           `json:"period_end"`
	Summary     formSummaryDoc   `json:"summary"`
	Matches     []playedMatchDoc `json:"matches"`
}

type headToHeadDoc struct {
	H2HID       string           `json:"head_to_head_id"`
	TeamAID     string           `json:"team_a_id"`
	TeamBID     string           `json:"team_b_id"`
	TeamARecord *models.Record   `json:"team_a_record,omitempty"`
	TeamBRecord *models.Record   `json:"team_b_record,omitempty"`
	Matches     []playedMatchDoc `json:"matches"`
}

type fixtureDoc struct {
	MatchID      string         `json:"match_id"`
	MatchURL     string         `json:"match_url"`
	Country      string         `json:"country"`
	Competition  string         `json:"competition"`
	MatchDate    string         `json:"match_date"`
	Round        string         `json:"round,omitempty"`
	HomeTeam     *teamDoc       `json:"home_team"`
	AwayTeam     *teamDoc       `json:"away_team"`
	Status       string         `json:"status"`
	HomeTeamForm *teamFormDoc   `json:"home_team_form,omitempty"`
	AwayTeamForm *teamFormDoc   `json:"away_team_form,omitempty"`
	HeadToHead   *headToHeadDoc `json:"head_to_head,omitempty"`
}

func newTeamDoc(t *models.Team) *teamDoc {
	if t == nil {
		return nil
	}
	return &teamDoc{
		TeamID:      t.ID.String(),
		Name:        t.Name,
		URL:         t.URL,
		Country:     t.Country,
		Stadium:     t.Stadium,
		StadiumCity: t.StadiumCity,
		Capacity:    t.Capacity,
	}
}

func newPlayedMatchDoc(m *models.PlayedMatch) playedMatchDoc {
	return playedMatchDoc{
		MatchID:     m.ID.String(),
		MatchURL:    m.URL,
		Country:     m.Country,
		Competition: m.Competition,
		MatchDate:   m.Date.Format(time.RFC3339),
		Round:       m.Round,
		HomeTeam:    newTeamDoc(m.HomeTeam),
		AwayTeam:    newTeamDoc(m.AwayTeam),
		HomeScore:   m.HomeScore,
		AwayScore:   m.AwayScore,
		Status:      m.Status.String(),
		Statistics:  m.Statistics,
	}
}

func newTeamFormDoc(f *models.TeamForm) *teamFormDoc {
	if f == nil {
		return nil
	}
	matches := make([]playedMatchDoc, 0, len(f.Matches))
	for _, m := range f.Matches {
		matches = append(matches, newPlayedMatchDoc(m))
	}
	return &teamFormDoc{
		FormID:      f.ID.String(),
		TeamID:      f.Team.ID.String(),
		PeriodStart: f.PeriodStart.Format(time.RFC3339),
		PeriodEnd:   f.PeriodEnd.Format(time.RFC3339),
		Summary: formSummaryDoc{
			Wins:          f.Wins(),
			Draws:         f.Draws(),
			Losses:        f.Losses(),
			GoalsScored:   f.GoalsScored(),
			GoalsConceded: f.GoalsConceded(),
		},
		Matches: matches,
	}
}

func newHeadToHeadDoc(h *models.HeadToHead) *headToHeadDoc {
	if h == nil {
		return nil
	}
	matches := make([]playedMatchDoc, 0, len(h.Matches))
	for _, m := range h.Matches {
		matches = append(matches, newPlayedMatchDoc(m))
	}
	doc := &headToHeadDoc{
		H2HID:   h.ID.String(),
		TeamAID: h.TeamA.ID.String(),
		TeamBID: h.TeamB.ID.String(),
		Matches: matches,
	}
	if record, err := h.TeamRecord(h.TeamA); err == nil {
		doc.TeamARecord = &record
	}
	if record, err := h.TeamRecord(h.TeamB); err == nil {
		doc.TeamBRecord = &record
	}
	return doc
}

func newFixtureDoc(f *models.FixtureMatch) fixtureDoc {
	return fixtureDoc{
		MatchID:      f.ID.String(),
		MatchURL:     f.URL,
		Country:      f.Country,
		Competition:  f.Competition,
		MatchDate:    f.Date.Format(time.RFC3339),
		Round:        f.Round,
		HomeTeam:     newTeamDoc(f.HomeTeam),
		AwayTeam:     newTeamDoc(f.AwayTeam),
		Status:       f.Status.String(),
		HomeTeamForm: newTeamFormDoc(f.HomeForm),
		AwayTeamForm: newTeamFormDoc(f.AwayForm),
		HeadToHead:   newHeadToHeadDoc(f.HeadToHead),
	}
}
