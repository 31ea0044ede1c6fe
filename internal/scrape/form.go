package scrape

import (
	"log/slog"

	"fixscore/internal/browser"
	"fixscore/internal/models"
)

// Team results page locators. Coupled to the target site's markup.
const (
	resultsPathSuffix    = "results/"
	resultsTableSelector = "#live-table > div.event.event--results > div > div"
	matchRowSelector     = "div[class^='event__match']"
	matchLinkSelector    = "a.eventRowLink"

	showMoreSelector      = "a.event__more"
	showMoreDisabledClass = "event__more--disable"
)

// TeamFormService extracts a team's recent form from its results page.
type TeamFormService struct {
	session   *browser.Session
	played    *PlayedMatchExtractor
	discloser *Discloser
	log       *slog.Logger

	// formMatches is the number of recent matches a form record covers.
	formMatches int
}

// NewTeamFormService creates the service. formMatches bounds the history
// depth (typically 5).
func NewTeamFormService(s *browser.Session, played *PlayedMatchExtractor, formMatches int) *TeamFormService {
	return &TeamFormService{
		session:     s,
		played:      played,
		discloser:   NewDiscloser(s.Logger(), matchRowSelector, showMoreSelector, showMoreDisabledClass),
		log:         s.Logger(),
		formMatches: formMatches,
	}
}

// TeamForm navigates to the team's results page and builds the form record
// over its most recent matches. Absent when the page, the match list or
// every single match extraction fails.
func (svc *TeamFormService) TeamForm(team *models.Team) (*models.TeamForm, bool) {
	urls := svc.recentMatchURLs(team)
	if len(urls) == 0 {
		return nil, false
	}

	var matches []*models.PlayedMatch
	for _, url := range urls {
		match, err := svc.played.PlayedMatch(url)
		if err != nil {
			svc.log.Error("form match extraction failed", "url", url, "error", err)
			continue
		}
		if match != nil {
			matches = append(matches, match)
		}
	}
	if len(matches) == 0 {
		return nil, false
	}

	form, err := models.NewTeamForm(team, matches)
	if err != nil {
		svc.log.Error("build team form failed", "team", team.Name, "error", err)
		return nil, false
	}
	return form, true
}

// recentMatchURLs loads the results list, discloses enough rows, and
// collects the first formMatches match links.
func (svc *TeamFormService) recentMatchURLs(team *models.Team) []string {
	if err := svc.session.Navigate(team.URL + resultsPathSuffix); err != nil {
		svc.log.Error("navigate to results page failed", "team", team.Name, "error", err)
		return nil
	}

	table, ok := svc.session.Find(browser.CSS(resultsTableSelector), browser.FindOpts{Suppress: true})
	if !ok {
		svc.log.Error("results table not found", "team", team.Name)
		return nil
	}

	svc.discloser.LoadAtLeast(table, svc.formMatches)

	rows, err := table.Elements(matchRowSelector)
	if err != nil {
		svc.log.Error("read result rows failed", "team", team.Name, "error", err)
		return nil
	}

	var urls []string
	for _, row := range rows {
		if len(urls) >= svc.formMatches {
			break
		}
		href, ok := linkHref(row, matchLinkSelector)
		if !ok {
			continue
		}
		urls = append(urls, href)
	}
	return urls
}
