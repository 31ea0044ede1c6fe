package scrape

import (
	"log/slog"
	"strconv"
	"strings"

	"fixscore/internal/browser"
	"fixscore/internal/models"
)

// Played-match locators. Coupled to the target site's markup.
const (
	homeScoreSelector = "#detail > div.duelParticipant > div.duelParticipant__score > div > div.detailScore__wrapper > span:nth-child(1)"
	awayScoreSelector = "#detail > div.duelParticipant > div.duelParticipant__score > div > div.detailScore__wrapper > span:nth-child(3)"

	statsButtonSelector    = "#detail > div.filterOver.filterOver--indent > div > a:nth-child(2) > button"
	statsContainerSelector = "#detail > div.section"
	statsRowSelector       = "div[class^='wcl-row_']"
)

// PlayedMatchExtractor assembles finished matches: the base record, the final
// score, and (when the statistics tab cooperates) the detailed statistics.
// Score is structurally required; statistics are supplementary and their
// absence only earns a warning.
type PlayedMatchExtractor struct {
	session *browser.Session
	base    *MatchExtractor
	log     *slog.Logger
}

// NewPlayedMatchExtractor creates an extractor over the shared base-record
// extractor.
func NewPlayedMatchExtractor(s *browser.Session, base *MatchExtractor) *PlayedMatchExtractor {
	return &PlayedMatchExtractor{session: s, base: base, log: s.Logger()}
}

// PlayedMatch extracts the finished match at matchURL. A missing or
// unparsable score rejects the entity; missing statistics do not.
func (e *PlayedMatchExtractor) PlayedMatch(matchURL string) (*models.PlayedMatch, error) {
	base, err := e.base.Match(matchURL)
	if err != nil || base == nil {
		return nil, err
	}

	homeScore, awayScore, ok := e.score()
	if !ok {
		e.log.Error("score not found for played match", "url", matchURL)
		return nil, nil
	}

	played := &models.PlayedMatch{
		Match:     *base,
		HomeScore: homeScore,
		AwayScore: awayScore,
	}
	if base.Status == models.StatusScheduled {
		// A page with a final score describes a finished match even when
		// the status banner is missing.
		played.Status = models.StatusFinished
	}

	stats, ok := e.statistics(played)
	if !ok {
		e.log.Warn("statistics unavailable for played match", "url", matchURL)
	} else {
		played.Statistics = stats
	}

	return played, nil
}

func (e *PlayedMatchExtractor) score() (home, away int, ok bool) {
	homeText, ok := e.session.Text(browser.CSS(homeScoreSelector), browser.FindOpts{Suppress: true})
	if !ok {
		return 0, 0, false
	}
	awayText, ok := e.session.Text(browser.CSS(awayScoreSelector), browser.FindOpts{Suppress: true})
	if !ok {
		return 0, 0, false
	}

	home, err := strconv.Atoi(strings.TrimSpace(homeText))
	if err != nil {
		return 0, 0, false
	}
	away, err = strconv.Atoi(strings.TrimSpace(awayText))
	if err != nil {
		return 0, 0, false
	}
	if home < 0 || away < 0 {
		return 0, 0, false
	}
	return home, away, true
}

// statistics opens the statistics tab and parses its labeled rows. The tab
// button hides behind ad overlays often enough that the forced click-through
// is the default path.
func (e *PlayedMatchExtractor) statistics(match *models.PlayedMatch) (*models.MatchStatistics, bool) {
	if !e.session.ClickThroughOverlay(browser.CSS(statsButtonSelector), browser.FindOpts{Suppress: true}) {
		return nil, false
	}

	container, ok := e.session.Find(browser.CSS(statsContainerSelector), browser.FindOpts{Suppress: true})
	if !ok {
		return nil, false
	}

	rows, err := container.Elements(statsRowSelector)
	if err != nil || len(rows) == 0 {
		return nil, false
	}

	stats := models.NewMatchStatistics(match.ID)
	for _, row := range rows {
		cells, err := row.ElementsX("./div[1]/div")
		if err != nil || len(cells) < 3 {
			continue
		}
		home, err := cells[0].Text()
		if err != nil {
			continue
		}
		label, err := cells[1].Text()
		if err != nil {
			continue
		}
		away, err := cells[2].Text()
		if err != nil {
			continue
		}

		known, err := applyStatRow(stats, label, home, away)
		switch {
		case !known:
			e.log.Warn("unknown statistic label", "label", label)
		case err != nil:
			e.log.Warn("unparsable statistic values",
				"label", label, "home", home, "away", away, "error", err)
		}
	}

	return stats, true
}
