package scrape

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-rod/rod"

	"fixscore/internal/browser"
	"fixscore/internal/config"
)

// Fixtures page locators. Coupled to the target site's markup.
const (
	fixturesPathSuffix    = "fixtures/"
	fixturesTableSelector = "#live-table > div.event.event--fixtures > div > div"
	roundHeaderSelector   = "div.event__round"
	cookieConsentSelector = "#onetrust-accept-btn-handler"
)

// FixtureURLSource discovers the match URLs for the requested number of
// upcoming rounds of one league.
type FixtureURLSource struct {
	session   *browser.Session
	cfg       *config.Run
	discloser *Discloser
	log       *slog.Logger
}

// NewFixtureURLSource creates the source for one run configuration.
func NewFixtureURLSource(s *browser.Session, cfg *config.Run) *FixtureURLSource {
	return &FixtureURLSource{
		session:   s,
		cfg:       cfg,
		discloser: NewDiscloser(s.Logger(), roundHeaderSelector, showMoreSelector, showMoreDisabledClass),
		log:       s.Logger(),
	}
}

// FixtureURLs loads the league's fixtures page, expands it far enough for
// the configured round count, and collects match links round by round.
// Partial availability (fewer rounds than asked) yields whatever is there; a
// navigation failure is a session-level fault and comes back as an error.
func (f *FixtureURLSource) FixtureURLs() ([]string, error) {
	fixturesURL := f.cfg.LeagueURL + fixturesPathSuffix
	if err := f.session.Navigate(fixturesURL); err != nil {
		return nil, fmt.Errorf("open fixtures page: %w", err)
	}

	f.acceptCookieConsent()

	table, ok := f.session.Find(browser.CSS(fixturesTableSelector), browser.FindOpts{Suppress: true})
	if !ok {
		f.log.Error("fixtures table not found", "url", fixturesURL)
		return nil, nil
	}

	loaded := f.discloser.LoadAtLeast(table, f.cfg.Rounds)
	if loaded < f.cfg.Rounds {
		f.log.Warn("fewer rounds available than requested",
			"loaded", loaded, "requested", f.cfg.Rounds)
	}

	urls := f.collectRoundURLs(table)
	f.log.Info("fixture urls discovered", "count", len(urls), "rounds", f.cfg.Rounds)
	return urls, nil
}

func (f *FixtureURLSource) acceptCookieConsent() {
	consent := browser.CSS(cookieConsentSelector)
	if !f.session.IsPresent(consent, browser.FindOpts{Suppress: true}) {
		return
	}
	if !f.session.Click(consent, browser.FindOpts{Suppress: true}) {
		f.log.Warn("cookie consent not dismissed, continuing")
	}
}

// collectRoundURLs walks the interleaved round-header/match-row blocks in
// document order. Round counting is exclusive: rows are collected while the
// current round number is in [1, rounds], and the walk stops at header
// rounds+1. This is the single boundary policy for the whole engine.
func (f *FixtureURLSource) collectRoundURLs(table *rod.Element) []string {
	blocks, err := table.Elements(roundHeaderSelector + ", " + matchRowSelector)
	if err != nil {
		f.log.Error("read fixture blocks failed", "error", err)
		return nil
	}
	f.log.Info("fixture blocks found", "count", len(blocks))

	var urls []string
	round := 0
	for _, block := range blocks {
		class, err := block.Attribute("class")
		if err != nil || class == nil {
			continue
		}

		switch {
		case strings.Contains(*class, "event__round"):
			round++
			if round > f.cfg.Rounds {
				return urls
			}
		case strings.Contains(*class, "event__match"):
			if round < 1 || round > f.cfg.Rounds {
				continue
			}
			href, ok := linkHref(block, matchLinkSelector)
			if !ok {
				f.log.Warn("fixture row without match link")
				continue
			}
			urls = append(urls, href)
		}
	}
	return urls
}
