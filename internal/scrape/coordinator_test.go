package scrape

import (
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fixscore/internal/models"
)

type stubSource struct {
	urls []string
	err  error
}

func (s *stubSource) FixtureURLs() ([]string, error) { return s.urls, s.err }

// stubBuilder maps each URL to one scripted outcome.
type stubBuilder struct {
	outcomes map[string]outcome
	calls    []string
}

type outcome struct {
	fixture *models.FixtureMatch
	err     error
}

func (b *stubBuilder) Fixture(url string) (*models.FixtureMatch, error) {
	b.calls = append(b.calls, url)
	o := b.outcomes[url]
	return o.fixture, o.err
}

func fixtureFor(url string) *models.FixtureMatch {
	home := models.NewTeam("Liverpool", "https://example.org/liverpool")
	away := models.NewTeam("Everton", "https://example.org/everton")
	base := models.NewMatch(url, "England", "Premier League",
		time.Date(2026, 9, 12, 15, 0, 0, 0, time.UTC), "Round 4", home, away, models.StatusScheduled)
	return &models.FixtureMatch{Match: *base}
}

func drain(c *Coordinator) []Event {
	var events []Event
	for e := range c.Events() {
		events = append(events, e)
	}
	return events
}

func TestCoordinatorIsolatesFailures(t *testing.T) {
	builder := &stubBuilder{outcomes: map[string]outcome{
		"u1": {fixture: fixtureFor("u1")},
		"u2": {err: errors.New("session fault")},
		"u3": {fixture: fixtureFor("u3")},
	}}
	c := NewCoordinator(&stubSource{urls: []string{"u1", "u2", "u3"}}, builder, 3, slog.Default())

	done := make(chan []Event)
	go func() { done <- drain(c) }()
	fixtures := c.ExtractFixtures()
	events := <-done

	require.Len(t, fixtures, 2)
	assert.Equal(t, "u1", fixtures[0].URL)
	assert.Equal(t, "u3", fixtures[1].URL)
	assert.Equal(t, []string{"u1", "u2", "u3"}, builder.calls)

	require.False(t, c.Errors().Empty())
	msgs := c.Errors().Messages(StageFixtureMatches)
	require.Len(t, msgs, 1)
	assert.Contains(t, msgs[0], "u2")
	assert.Contains(t, msgs[0], "session fault")

	assert.Equal(t, EventRunFinished, events[len(events)-1].Type)
}

func TestCoordinatorSkipsStructuralRejects(t *testing.T) {
	builder := &stubBuilder{outcomes: map[string]outcome{
		"u1": {}, // nil fixture, nil error: page was not a usable fixture
		"u2": {fixture: fixtureFor("u2")},
	}}
	c := NewCoordinator(&stubSource{urls: []string{"u1", "u2"}}, builder, 3, slog.Default())

	go func() { drain(c) }()
	fixtures := c.ExtractFixtures()

	require.Len(t, fixtures, 1)
	assert.Equal(t, "u2", fixtures[0].URL)

	// The reject does not abort anything, but the run record accounts for it.
	require.False(t, c.Errors().Empty())
	msgs := c.Errors().Messages(StageFixtureMatches)
	require.Len(t, msgs, 1)
	assert.Contains(t, msgs[0], "u1")
	assert.Contains(t, msgs[0], "no extractable fixture")
}

func TestCoordinatorShortCircuitsOnEmptyDiscovery(t *testing.T) {
	builder := &stubBuilder{}
	c := NewCoordinator(&stubSource{}, builder, 3, slog.Default())

	go func() { drain(c) }()
	fixtures := c.ExtractFixtures()

	assert.Empty(t, fixtures)
	assert.Empty(t, builder.calls)
	assert.Equal(t,
		[]string{"no fixture urls discovered"},
		c.Errors().Messages(StageFixtureURLs))
}

func TestCoordinatorRecordsDiscoveryFault(t *testing.T) {
	c := NewCoordinator(&stubSource{err: errors.New("navigation lost")}, &stubBuilder{}, 3, slog.Default())

	done := make(chan []Event)
	go func() { done <- drain(c) }()
	fixtures := c.ExtractFixtures()
	events := <-done

	assert.Empty(t, fixtures)
	msgs := c.Errors().Messages(StageFixtureURLs)
	require.Len(t, msgs, 1)
	assert.Contains(t, msgs[0], "navigation lost")
	assert.Equal(t, EventRunAborted, events[len(events)-1].Type)
}

func TestCoordinatorAbortsAfterConsecutiveFaults(t *testing.T) {
	fault := outcome{err: errors.New("browser gone")}
	builder := &stubBuilder{outcomes: map[string]outcome{
		"u1": fault, "u2": fault, "u3": fault, "u4": {fixture: fixtureFor("u4")},
	}}
	c := NewCoordinator(&stubSource{urls: []string{"u1", "u2", "u3", "u4"}}, builder, 3, slog.Default())

	go func() { drain(c) }()
	fixtures := c.ExtractFixtures()

	assert.Empty(t, fixtures)
	assert.Equal(t, []string{"u1", "u2", "u3"}, builder.calls, "u4 must never be attempted")

	msgs := c.Errors().Messages(StageFixtureMatches)
	require.Len(t, msgs, 4, "three faults plus the abort entry")
	assert.Contains(t, msgs[3], "consecutive")
}

func TestCoordinatorSuccessResetsFaultCount(t *testing.T) {
	fault := outcome{err: errors.New("browser gone")}
	builder := &stubBuilder{outcomes: map[string]outcome{
		"u1": fault, "u2": fault,
		"u3": {fixture: fixtureFor("u3")},
		"u4": fault, "u5": fault,
		"u6": {fixture: fixtureFor("u6")},
	}}
	urls := []string{"u1", "u2", "u3", "u4", "u5", "u6"}
	c := NewCoordinator(&stubSource{urls: urls}, builder, 3, slog.Default())

	go func() { drain(c) }()
	fixtures := c.ExtractFixtures()

	require.Len(t, fixtures, 2, "a success between faults resets the abort counter")
	assert.Equal(t, urls, builder.calls)
}

func TestErrorBundleKeepsOrder(t *testing.T) {
	b := NewErrorBundle()
	assert.True(t, b.Empty())

	b.Add("second_stage", "a")
	b.Add("first_seen", "b")
	b.Add("second_stage", "c")

	assert.Equal(t, []string{"second_stage", "first_seen"}, b.Stages())
	assert.Equal(t, []string{"a", "c"}, b.Messages("second_stage"))
	assert.Equal(t, 3, b.Len())

	snapshot := b.ByStage()
	snapshot["second_stage"][0] = "mutated"
	assert.Equal(t, "a", b.Messages("second_stage")[0], "snapshots must not alias internal state")
}
