package scrape

import (
	"fmt"
	"log/slog"
	"sync"

	"fixscore/internal/models"
)

// Stage names used in the error bundle.
const (
	StageFixtureURLs    = "fixture_urls"
	StageFixtureMatches = "fixture_matches"
)

// URLSource discovers the match URLs a run should extract.
type URLSource interface {
	FixtureURLs() ([]string, error)
}

// FixtureBuilder extracts one enriched fixture. A nil, nil return is an
// ordinary structural reject; an error is a session-level fault.
type FixtureBuilder interface {
	Fixture(matchURL string) (*models.FixtureMatch, error)
}

// Coordinator runs a full extraction: URL discovery, then per-URL fixture
// extraction with fault isolation. One bad target never stops the run, but
// maxConsecutiveFaults session faults in a row abort it.
type Coordinator struct {
	source  URLSource
	builder FixtureBuilder
	bundle  *ErrorBundle
	log     *slog.Logger
	events  chan Event

	maxConsecutiveFaults int

	// Control
	stopMu  sync.Mutex
	stopped bool
}

// NewCoordinator wires a coordinator from its parts.
func NewCoordinator(source URLSource, builder FixtureBuilder, maxConsecutiveFaults int, log *slog.Logger) *Coordinator {
	return &Coordinator{
		source:               source,
		builder:              builder,
		bundle:               NewErrorBundle(),
		log:                  log,
		events:               make(chan Event, 256),
		maxConsecutiveFaults: maxConsecutiveFaults,
	}
}

// Events returns the progress event channel. It is closed when
// ExtractFixtures returns.
func (c *Coordinator) Events() <-chan Event {
	return c.events
}

// Errors returns the bundle of problems recorded during the run.
func (c *Coordinator) Errors() *ErrorBundle {
	return c.bundle
}

// Stop requests a graceful stop. The target currently being extracted
// finishes; everything after it is skipped. Safe to call from any goroutine.
func (c *Coordinator) Stop() {
	c.stopMu.Lock()
	defer c.stopMu.Unlock()
	c.stopped = true
}

func (c *Coordinator) isStopped() bool {
	c.stopMu.Lock()
	defer c.stopMu.Unlock()
	return c.stopped
}

// ExtractFixtures performs the whole run and returns every fixture that
// extracted successfully, in discovery order.
func (c *Coordinator) ExtractFixtures() []*models.FixtureMatch {
	defer close(c.events)
	c.emit(Event{Type: EventRunStarted})

	urls, err := c.source.FixtureURLs()
	if err != nil {
		c.log.Error("fixture url discovery failed", "error", err)
		c.bundle.Add(StageFixtureURLs, err.Error())
		c.emit(Event{Type: EventRunAborted, Message: "url discovery failed"})
		return nil
	}
	if len(urls) == 0 {
		c.log.Warn("no fixture urls discovered, nothing to extract")
		c.bundle.Add(StageFixtureURLs, "no fixture urls discovered")
		c.emit(Event{Type: EventRunFinished, Done: 0, Total: 0})
		return nil
	}
	c.emit(Event{Type: EventURLsDiscovered, Total: len(urls)})

	var fixtures []*models.FixtureMatch
	consecutiveFaults := 0
	for i, url := range urls {
		if c.isStopped() {
			c.log.Info("run stopped on request", "done", i, "total", len(urls))
			c.bundle.Add(StageFixtureMatches, "run interrupted")
			c.emit(Event{Type: EventRunAborted, Message: "run interrupted", Done: i, Total: len(urls)})
			return fixtures
		}
		c.emit(Event{Type: EventFixtureStarted, Message: url, Done: i, Total: len(urls)})

		fixture, err := c.builder.Fixture(url)
		if err != nil {
			consecutiveFaults++
			c.log.Error("fixture extraction failed", "url", url, "error", err)
			c.bundle.Add(StageFixtureMatches, fmt.Sprintf("%s: %v", url, err))
			c.emit(Event{Type: EventFixtureError, Message: url, Done: i + 1, Total: len(urls)})

			if consecutiveFaults >= c.maxConsecutiveFaults {
				msg := fmt.Sprintf("aborted after %d consecutive session faults", consecutiveFaults)
				c.log.Error("run aborted", "faults", consecutiveFaults)
				c.bundle.Add(StageFixtureMatches, msg)
				c.emit(Event{Type: EventRunAborted, Message: msg, Done: i + 1, Total: len(urls)})
				return fixtures
			}
			continue
		}
		consecutiveFaults = 0

		if fixture == nil {
			// A page that held no extractable fixture is not a fault, but
			// the run record still has to account for the target.
			c.bundle.Add(StageFixtureMatches, fmt.Sprintf("%s: no extractable fixture", url))
			c.emit(Event{Type: EventFixtureSkipped, Message: url, Done: i + 1, Total: len(urls)})
			continue
		}

		fixtures = append(fixtures, fixture)
		c.emit(Event{Type: EventFixtureDone, Message: fixture.String(), Done: i + 1, Total: len(urls)})
	}

	c.emit(Event{Type: EventRunFinished, Done: len(urls), Total: len(urls)})
	return fixtures
}

func (c *Coordinator) emit(event Event) {
	select {
	case c.events <- event:
	default:
		// Consumer is behind, progress events are droppable.
	}
}
