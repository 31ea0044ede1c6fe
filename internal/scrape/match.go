package scrape

import (
	"log/slog"
	"strings"
	"time"

	"github.com/go-rod/rod"

	"fixscore/internal/browser"
	"fixscore/internal/models"
)

// Match page locators and formats. Coupled to the target site's markup.
const (
	tournamentHeaderXPath = `//*[@id="detail"]/div[3]/div/span[3]`
	matchDateSelector     = "div.duelParticipant > div.duelParticipant__startTime"
	homeTeamSelector      = "#detail > div.duelParticipant > div.duelParticipant__home"
	awayTeamSelector      = "#detail > div.duelParticipant > div.duelParticipant__away"
	matchStatusXPath      = `//*[@id="detail"]/div[4]/div[3]/div/div[2]/span`

	// matchDateLayout is the fixed textual format, e.g. "24.08.2026 18:30".
	matchDateLayout = "02.01.2006 15:04"
)

// MatchExtractor reads the base match record shared by fixtures and played
// matches from a match page.
type MatchExtractor struct {
	session *browser.Session
	cache   *TeamCache
	log     *slog.Logger
}

// NewMatchExtractor creates a base-record extractor sharing the run-wide
// team cache.
func NewMatchExtractor(s *browser.Session, cache *TeamCache) *MatchExtractor {
	return &MatchExtractor{session: s, cache: cache, log: s.Logger()}
}

// Match navigates to matchURL and assembles the base record. Country,
// competition, date and both teams are structurally required; a missing one
// rejects the whole entity. Navigation failures are session-level faults and
// come back as errors.
func (e *MatchExtractor) Match(matchURL string) (*models.Match, error) {
	if err := e.session.Navigate(matchURL); err != nil {
		return nil, err
	}

	country, competition, round := e.tournamentHeader()
	date, dateOK := e.matchDate()
	status := e.matchStatus()
	home := e.participant(homeTeamSelector)
	away := e.participant(awayTeamSelector)

	if country == "" || competition == "" || !dateOK || home == nil || away == nil {
		e.log.Error("missing required match data", "url", matchURL)
		return nil, nil
	}

	m := models.NewMatch(matchURL, country, competition, date, round, home, away, status)
	e.log.Info("extracted match",
		"home", home.Name, "away", away.Name,
		"competition", competition, "status", status.String())
	return m, nil
}

// IsFixture reports whether the match page currently loaded describes a
// not-yet-played match.
func (e *MatchExtractor) IsFixture() bool {
	return e.matchStatus() == models.StatusScheduled
}

// tournamentHeader splits "COUNTRY: Competition - Round 12" into its parts.
func (e *MatchExtractor) tournamentHeader() (country, competition, round string) {
	text, ok := e.session.Text(browser.XPath(tournamentHeaderXPath), browser.FindOpts{Suppress: true})
	if !ok {
		return "", "", ""
	}

	head, tail, found := cutLast(text, " - ")
	if !found {
		return "", "", ""
	}
	country, competition, found = strings.Cut(head, ": ")
	if !found {
		return "", "", ""
	}
	return strings.TrimSpace(country), strings.TrimSpace(competition), strings.TrimSpace(tail)
}

func (e *MatchExtractor) matchDate() (time.Time, bool) {
	text, ok := e.session.Text(browser.CSS(matchDateSelector), browser.FindOpts{Suppress: true})
	if !ok {
		return time.Time{}, false
	}
	date, err := time.Parse(matchDateLayout, strings.TrimSpace(text))
	if err != nil {
		e.log.Error("unparsable match date", "text", text, "error", err)
		return time.Time{}, false
	}
	return date, true
}

func (e *MatchExtractor) matchStatus() models.Status {
	text, ok := e.session.Text(browser.XPath(matchStatusXPath), browser.FindOpts{Suppress: true})
	if !ok {
		return models.StatusScheduled
	}
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "finished", "after extra time", "after penalties":
		return models.StatusFinished
	case "postponed":
		return models.StatusPostponed
	case "cancelled":
		return models.StatusCancelled
	case "abandoned":
		return models.StatusAbandoned
	case "live", "half time":
		return models.StatusLive
	default:
		return models.StatusScheduled
	}
}

// participant reads one side's name and team-page link. Teams are created
// once per distinct URL through the cache.
func (e *MatchExtractor) participant(selector string) *models.Team {
	el, ok := e.session.Find(browser.CSS(selector), browser.FindOpts{Suppress: true})
	if !ok {
		return nil
	}

	name, err := el.Text()
	if err != nil || strings.TrimSpace(name) == "" {
		return nil
	}

	href, ok := linkHref(el, "a")
	if !ok {
		return nil
	}

	if cached, ok := e.cache.ByURL(href); ok {
		return cached
	}
	team := models.NewTeam(strings.TrimSpace(name), href)
	e.cache.Add(team)
	return team
}

// linkHref reads the address of the first anchor matching selector inside el.
// The href property, unlike the raw attribute, is resolved by the browser and
// therefore always absolute; relative attribute values would not survive a
// later Navigate.
func linkHref(el *rod.Element, selector string) (string, bool) {
	links, err := el.Elements(selector)
	if err != nil || len(links) == 0 {
		return "", false
	}
	href, err := links.First().Property("href")
	if err != nil || href.Str() == "" {
		return "", false
	}
	return href.Str(), true
}

// cutLast splits s around the last occurrence of sep.
func cutLast(s, sep string) (before, after string, found bool) {
	i := strings.LastIndex(s, sep)
	if i < 0 {
		return s, "", false
	}
	return s[:i], s[i+len(sep):], true
}
