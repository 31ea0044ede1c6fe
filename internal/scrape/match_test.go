package scrape

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fixscore/internal/browser"
)

func TestLinkHrefResolvesRelativeTargets(t *testing.T) {
	s := newPageSession(t, `
		<div id="row">
			Liverpool vs Everton
			<a class="eventRowLink" href="/match/abc/">detail</a>
		</div>`)

	row, ok := s.Find(browser.CSS("#row"), browser.FindOpts{})
	require.True(t, ok)

	href, ok := linkHref(row, "a.eventRowLink")
	require.True(t, ok)
	assert.True(t, strings.HasPrefix(href, "http://"), "got %q", href)
	assert.True(t, strings.HasSuffix(href, "/match/abc/"), "got %q", href)

	_, ok = linkHref(row, "a.missing")
	assert.False(t, ok)
}

func TestCutLast(t *testing.T) {
	head, tail, found := cutLast("ENGLAND: Premier League - Round 4", " - ")
	require.True(t, found)
	assert.Equal(t, "ENGLAND: Premier League", head)
	assert.Equal(t, "Round 4", tail)

	head, tail, found = cutLast("A - B - C", " - ")
	require.True(t, found)
	assert.Equal(t, "A - B", head)
	assert.Equal(t, "C", tail)

	_, _, found = cutLast("no separator", " - ")
	assert.False(t, found)
}
