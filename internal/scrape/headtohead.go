package scrape

import (
	"log/slog"

	"fixscore/internal/browser"
	"fixscore/internal/models"
)

// Head-to-head tab locators. Coupled to the target site's markup.
const (
	h2hTabButtonSelector = "#detail > div.detailOver > div > a:nth-child(3) > button"
	h2hSectionSelector   = "#detail > div.h2hSection > div.h2h > div:nth-child(3)"
	h2hRowsSelector      = "#detail > div.h2hSection > div.h2h > div:nth-child(3) > div.rows"
	h2hRowSelector       = "div.h2h__row"
	h2hShowMoreSelector  = "div.showMore"
)

// HeadToHeadService extracts the historical record between the two teams of
// a match. Each history row only exposes its match URL by opening a new tab,
// so the service leans on the session's multi-tab protocol.
type HeadToHeadService struct {
	session   *browser.Session
	played    *PlayedMatchExtractor
	discloser *Discloser
	log       *slog.Logger

	// maxMatches bounds how many historical meetings are extracted.
	maxMatches int
}

// NewHeadToHeadService creates the service. maxMatches bounds the history
// depth (typically 5).
func NewHeadToHeadService(s *browser.Session, played *PlayedMatchExtractor, maxMatches int) *HeadToHeadService {
	return &HeadToHeadService{
		session:    s,
		played:     played,
		discloser:  NewDiscloser(s.Logger(), h2hRowSelector, h2hShowMoreSelector, ""),
		log:        s.Logger(),
		maxMatches: maxMatches,
	}
}

// HeadToHead reads the record between teamA and teamB from the match page at
// matchURL. The URL collection over new tabs happens first, while the main
// tab still shows the match page; only then are the collected matches
// extracted, which navigates the main tab away.
func (svc *HeadToHeadService) HeadToHead(matchURL string, teamA, teamB *models.Team) (*models.HeadToHead, bool) {
	if err := svc.session.Restore(matchURL); err != nil {
		svc.log.Error("navigate to match page failed", "url", matchURL, "error", err)
		return nil, false
	}

	if !svc.openH2HTab() {
		return nil, false
	}

	urls := svc.historyMatchURLs()
	if len(urls) == 0 {
		return nil, false
	}
	if len(urls) > svc.maxMatches {
		urls = urls[:svc.maxMatches]
	}

	var matches []*models.PlayedMatch
	for _, url := range urls {
		match, err := svc.played.PlayedMatch(url)
		if err != nil {
			svc.log.Error("h2h match extraction failed", "url", url, "error", err)
			continue
		}
		if match != nil {
			matches = append(matches, match)
		}
	}
	if len(matches) == 0 {
		return nil, false
	}

	return models.NewHeadToHead(teamA, teamB, matches), true
}

// openH2HTab switches the match page to its head-to-head tab. The tab button
// shares the page with ad overlays, hence the forced click-through.
func (svc *HeadToHeadService) openH2HTab() bool {
	if !svc.session.ClickThroughOverlay(browser.CSS(h2hTabButtonSelector), browser.FindOpts{Suppress: true}) {
		return false
	}
	return svc.session.IsPresent(browser.CSS(h2hSectionSelector), browser.FindOpts{Suppress: true})
}

// historyMatchURLs walks the visible history rows and resolves each row's
// match URL through a short-lived new tab. Rows that fail to produce a tab
// are skipped; focus is back on the main tab after every attempt.
func (svc *HeadToHeadService) historyMatchURLs() []string {
	if section, ok := svc.session.Find(browser.CSS(h2hSectionSelector), browser.FindOpts{Suppress: true}); ok {
		svc.discloser.LoadAtLeast(section, svc.maxMatches)
	}

	rows := svc.session.FindAll(browser.CSS(h2hRowsSelector+" > "+h2hRowSelector), browser.FindOpts{Suppress: true})
	var urls []string
	for _, row := range rows {
		if len(urls) >= svc.maxMatches {
			break
		}
		url, ok := svc.session.FollowLinkInNewTab(row)
		if !ok {
			continue
		}
		urls = append(urls, url)
	}
	return urls
}
