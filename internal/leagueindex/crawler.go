// Package leagueindex crawls the site's static country and league index
// pages and assembles the country -> league -> URL mapping the extraction
// engine validates its arguments against. The index pages render without
// JavaScript, so this goes over plain HTTP instead of a browser session.
package leagueindex

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/gocolly/colly/v2"
)

// Index page selectors. Coupled to the target site's markup.
const (
	countryBlockSelector = "div.lmc__menu div.lmc__block"
	leaguesZoneSelector  = "div.selected-country-list"
	leagueItemSelector   = "div.leftMenu__item"
)

const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/126.0 Safari/537.36"

// CrawlerConfig tunes request behavior.
type CrawlerConfig struct {
	// UserAgent sent on every request. A browser-like default is used when
	// empty, the index pages reject obvious bots.
	UserAgent string
	// Delay between requests to the same domain.
	Delay time.Duration
	// Logger for per-country progress; slog default when nil.
	Logger *slog.Logger
}

// Crawler reads the country and league index pages.
type Crawler struct {
	cfg CrawlerConfig
	log *slog.Logger
}

// NewCrawler creates a crawler with the given config.
func NewCrawler(cfg CrawlerConfig) *Crawler {
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaultUserAgent
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Crawler{cfg: cfg, log: cfg.Logger}
}

func (c *Crawler) collector() *colly.Collector {
	// colly v2.1.0's Async option ignores its argument and always enables
	// async mode; synchronous is the default, so the option is omitted.
	col := colly.NewCollector(
		colly.UserAgent(c.cfg.UserAgent),
	)
	if c.cfg.Delay > 0 {
		_ = col.Limit(&colly.LimitRule{
			DomainGlob: "*",
			Delay:      c.cfg.Delay,
		})
	}
	return col
}

// Countries reads the country menu from the football index page and returns
// normalized country name to country page URL.
func (c *Crawler) Countries(indexURL string) (map[string]string, error) {
	countries := make(map[string]string)
	var requestErr error

	col := c.collector()
	col.OnHTML(countryBlockSelector, func(e *colly.HTMLElement) {
		name := normalizeName(e.DOM.Text())
		href := e.ChildAttr("a", "href")
		if name == "" || href == "" {
			return
		}
		countries[name] = e.Request.AbsoluteURL(href)
	})
	col.OnError(func(r *colly.Response, err error) {
		requestErr = err
	})

	if err := col.Visit(indexURL); err != nil {
		return nil, fmt.Errorf("visit index page: %w", err)
	}
	if requestErr != nil {
		return nil, fmt.Errorf("fetch index page: %w", requestErr)
	}
	return countries, nil
}

// Leagues reads the league list of one country page and returns normalized
// league name to fixtures base URL.
func (c *Crawler) Leagues(countryURL string) (map[string]string, error) {
	leagues := make(map[string]string)
	var requestErr error

	col := c.collector()
	col.OnHTML(leaguesZoneSelector, func(e *colly.HTMLElement) {
		e.DOM.Find(leagueItemSelector).Each(func(_ int, item *goquery.Selection) {
			name := normalizeName(item.Text())
			href, ok := item.Find("a").First().Attr("href")
			if name == "" || !ok || href == "" {
				return
			}
			leagues[name] = e.Request.AbsoluteURL(href)
		})
	})
	col.OnError(func(r *colly.Response, err error) {
		requestErr = err
	})

	if err := col.Visit(countryURL); err != nil {
		return nil, fmt.Errorf("visit country page: %w", err)
	}
	if requestErr != nil {
		return nil, fmt.Errorf("fetch country page: %w", requestErr)
	}
	return leagues, nil
}

// BuildMapping crawls the whole index. One bad country page is logged and
// skipped, the mapping keeps every country that crawled cleanly.
func (c *Crawler) BuildMapping(indexURL string) (map[string]map[string]string, error) {
	countries, err := c.Countries(indexURL)
	if err != nil {
		return nil, err
	}
	if len(countries) == 0 {
		return nil, fmt.Errorf("no countries found on %s", indexURL)
	}
	c.log.Info("countries discovered", "count", len(countries))

	names := make([]string, 0, len(countries))
	for name := range countries {
		names = append(names, name)
	}
	sort.Strings(names)

	mapping := make(map[string]map[string]string, len(names))
	for _, name := range names {
		leagues, err := c.Leagues(countries[name])
		if err != nil {
			c.log.Warn("country crawl failed", "country", name, "error", err)
			continue
		}
		if len(leagues) == 0 {
			c.log.Warn("no leagues found", "country", name)
			continue
		}
		mapping[name] = leagues
		c.log.Info("leagues extracted", "country", name, "count", len(leagues))
	}
	return mapping, nil
}

// normalizeName lowercases a menu label and joins its words with dashes, so
// mapping keys match what users type on the command line.
func normalizeName(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(strings.TrimSpace(s))), "-")
}
