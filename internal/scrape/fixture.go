package scrape

import (
	"fmt"
	"log/slog"

	"fixscore/internal/browser"
	"fixscore/internal/models"
)

// FixtureExtractor builds a fully enriched upcoming match: the base match
// plus recent form for both teams and their head-to-head history. Enrichment
// is best effort, the base match survives any enrichment failure.
type FixtureExtractor struct {
	session *browser.Session
	base    *MatchExtractor
	teams   *TeamExtractor
	form    *TeamFormService
	h2h     *HeadToHeadService
	log     *slog.Logger
}

// NewFixtureExtractor wires the extractor from its parts.
func NewFixtureExtractor(s *browser.Session, base *MatchExtractor, teams *TeamExtractor, form *TeamFormService, h2h *HeadToHeadService) *FixtureExtractor {
	return &FixtureExtractor{
		session: s,
		base:    base,
		teams:   teams,
		form:    form,
		h2h:     h2h,
		log:     s.Logger(),
	}
}

// Fixture extracts the upcoming match at matchURL. A nil, nil return means
// the page did not hold a usable fixture (already played, or missing core
// fields); an error means the browser session itself failed.
func (e *FixtureExtractor) Fixture(matchURL string) (*models.FixtureMatch, error) {
	base, err := e.base.Match(matchURL)
	if err != nil {
		return nil, fmt.Errorf("fixture %s: %w", matchURL, err)
	}
	if base == nil {
		return nil, nil
	}
	if base.Status != models.StatusScheduled {
		e.log.Info("skipping non-upcoming match", "url", matchURL, "status", base.Status)
		return nil, nil
	}

	fixture := &models.FixtureMatch{Match: *base}

	e.profileTeam(base.HomeTeam, matchURL)
	e.profileTeam(base.AwayTeam, matchURL)

	// Form extraction navigates the main tab to the team results pages, so
	// every enrichment that reads the match page restores it first.
	if form, ok := e.teamForm(base.HomeTeam); ok {
		fixture.HomeForm = form
	}
	if form, ok := e.teamForm(base.AwayTeam); ok {
		fixture.AwayForm = form
	}

	if h2h, ok := e.h2h.HeadToHead(matchURL, base.HomeTeam, base.AwayTeam); ok {
		fixture.HeadToHead = h2h
	}

	return fixture, nil
}

func (e *FixtureExtractor) profileTeam(team *models.Team, returnURL string) {
	if team == nil || team.URL == "" {
		return
	}
	if _, ok := e.teams.TeamWithReturn(team.URL, returnURL); !ok {
		e.log.Warn("team profile unavailable", "team", team.Name)
	}
}

func (e *FixtureExtractor) teamForm(team *models.Team) (*models.TeamForm, bool) {
	if team == nil {
		return nil, false
	}
	form, ok := e.form.TeamForm(team)
	if !ok {
		e.log.Warn("team form unavailable", "team", team.Name)
		return nil, false
	}
	return form, true
}
