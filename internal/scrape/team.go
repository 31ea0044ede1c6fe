package scrape

import (
	"log/slog"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"fixscore/internal/browser"
	"fixscore/internal/models"
)

// Team page locators. Coupled to the target site's markup.
const (
	teamNameXPath    = `//*[@id="mc"]/div[5]/div[1]/div[2]/div[1]/div[1]`
	teamCountryXPath = `//*[@id="mc"]/div[5]/div[1]/h2/a[2]`
	teamStadiumXPath = `//*[@id="mc"]/div[5]/div[1]/div[2]/div[2]`
)

// TeamExtractor builds full team profiles from team pages. The identity
// cache guarantees one record per URL; a visited set guarantees each team
// page is loaded at most once per run, even when the record was first
// created minimally from a match page link.
type TeamExtractor struct {
	session *browser.Session
	cache   *TeamCache
	visited map[string]bool
	log     *slog.Logger
}

// NewTeamExtractor creates a team extractor sharing the run-wide cache.
func NewTeamExtractor(s *browser.Session, cache *TeamCache) *TeamExtractor {
	return &TeamExtractor{
		session: s,
		cache:   cache,
		visited: make(map[string]bool),
		log:     s.Logger(),
	}
}

// Team returns the profiled team at teamURL. A cached record whose page was
// already visited comes back without navigation; a cached but unprofiled
// record is filled in place, so every holder of the pointer sees the
// profile. Name is structurally required; the stadium block is
// supplementary.
func (e *TeamExtractor) Team(teamURL string) (*models.Team, bool) {
	team, cached := e.cache.ByURL(teamURL)
	if cached && e.visited[teamURL] {
		return team, true
	}

	if err := e.session.Navigate(teamURL); err != nil {
		e.log.Error("navigate to team page failed", "url", teamURL, "error", err)
		return nil, false
	}

	name, ok := e.session.Text(browser.XPath(teamNameXPath), browser.FindOpts{Suppress: true})
	if !ok || strings.TrimSpace(name) == "" {
		e.log.Error("team name not found", "url", teamURL)
		return nil, false
	}

	if !cached {
		team = models.NewTeam(strings.TrimSpace(name), teamURL)
		e.cache.Add(team)
	}
	if country, ok := e.session.Text(browser.XPath(teamCountryXPath), browser.FindOpts{Suppress: true}); ok {
		// The site renders the country in all caps.
		team.Country = titleCase(country)
	}
	e.fillStadium(team)

	e.visited[teamURL] = true
	return team, true
}

// TeamWithReturn extracts a team and then restores the page the caller was
// on, so the caller's extraction context survives the detour.
func (e *TeamExtractor) TeamWithReturn(teamURL, returnURL string) (*models.Team, bool) {
	team, ok := e.Team(teamURL)
	if err := e.session.Restore(returnURL); err != nil {
		e.log.Error("restore page after team extraction failed", "url", returnURL, "error", err)
	}
	return team, ok
}

// fillStadium parses the venue block, shaped as:
//
//	Stadium: Anfield (Liverpool)
//	Capacity: 61 276
func (e *TeamExtractor) fillStadium(team *models.Team) {
	text, ok := e.session.Text(browser.XPath(teamStadiumXPath), browser.FindOpts{Suppress: true})
	if !ok {
		return
	}

	lines := strings.Split(text, "\n")
	if len(lines) < 1 {
		return
	}

	if name, city, ok := parseStadiumLine(lines[0]); ok {
		team.Stadium = name
		team.StadiumCity = city
	}
	if len(lines) > 1 {
		if capacity, ok := parseCapacityLine(lines[1]); ok {
			team.Capacity = capacity
		}
	}
}

func parseStadiumLine(line string) (name, city string, ok bool) {
	_, value, found := strings.Cut(line, ":")
	if !found {
		return "", "", false
	}
	value = strings.TrimSpace(value)

	name, rest, found := strings.Cut(value, " (")
	if !found {
		return strings.TrimSpace(value), "", value != ""
	}
	city = strings.TrimSuffix(strings.TrimSpace(rest), ")")
	return strings.TrimSpace(name), city, true
}

func titleCase(s string) string {
	words := strings.Fields(strings.ToLower(strings.TrimSpace(s)))
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + w[size:]
	}
	return strings.Join(words, " ")
}

func parseCapacityLine(line string) (int, bool) {
	_, value, found := strings.Cut(line, ":")
	if !found {
		return 0, false
	}
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, value)
	capacity, err := strconv.Atoi(digits)
	if err != nil {
		return 0, false
	}
	return capacity, true
}
