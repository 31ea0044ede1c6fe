package scrape

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/go-rod/rod"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fixscore/internal/browser"
)

// newPageSession starts a headless browser on a locally served page.
// Environments without a usable browser skip instead of failing.
func newPageSession(t *testing.T, html string) *browser.Session {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<html><body>" + html + "</body></html>"))
	}))
	t.Cleanup(srv.Close)

	s, err := browser.Launch(true, browser.Options{
		Timeout:      3 * time.Second,
		PollInterval: 50 * time.Millisecond,
	})
	if err != nil {
		t.Skipf("browser unavailable: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	require.NoError(t, s.Navigate(srv.URL))
	return s
}

// expandingList renders `initial` items and a show-more control that appends
// `step` items per click, flagging itself disabled once `max` is reached.
func expandingList(initial, step, max int) string {
	return `
	<div id="list">
		<div class="item">seed</div>
		<a class="more" href="#" onclick="addMore(); return false;">show more</a>
	</div>
	<script>
		let n = 1;
		const list = document.getElementById("list");
		const more = document.querySelector(".more");
		function append(count) {
			for (let i = 0; i < count; i++) {
				n++;
				const d = document.createElement("div");
				d.className = "item";
				d.textContent = "item " + n;
				list.insertBefore(d, more);
			}
		}
		append(` + strconv.Itoa(initial-1) + `);
		function addMore() {
			if (more.classList.contains("off")) return;
			append(` + strconv.Itoa(step) + `);
			if (n >= ` + strconv.Itoa(max) + `) more.classList.add("off");
		}
	</script>`
}

func listContainer(t *testing.T, s *browser.Session) *rod.Element {
	t.Helper()
	el, ok := s.Find(browser.CSS("#list"), browser.FindOpts{})
	require.True(t, ok)
	return el
}

func TestDiscloserLoadsOnePastTarget(t *testing.T) {
	s := newPageSession(t, expandingList(3, 3, 100))
	d := NewDiscloser(s.Logger(), "div.item", "a.more", "off")

	got := d.LoadAtLeast(listContainer(t, s), 5)
	assert.Equal(t, 6, got, "one extra item proves the target count is complete")
}

func TestDiscloserStopsWhenControlDisables(t *testing.T) {
	s := newPageSession(t, expandingList(3, 3, 9))
	d := NewDiscloser(s.Logger(), "div.item", "a.more", "off")

	got := d.LoadAtLeast(listContainer(t, s), 50)
	assert.Equal(t, 9, got, "partial availability returns what is there")
}

func TestDiscloserWithoutControl(t *testing.T) {
	s := newPageSession(t, `<div id="list"><div class="item">a</div><div class="item">b</div></div>`)
	d := NewDiscloser(s.Logger(), "div.item", "a.more", "off")

	got := d.LoadAtLeast(listContainer(t, s), 10)
	assert.Equal(t, 2, got)
}

func TestDiscloserCapsClickAttempts(t *testing.T) {
	s := newPageSession(t, expandingList(1, 1, 1000))
	d := NewDiscloser(s.Logger(), "div.item", "a.more", "off")

	got := d.LoadAtLeast(listContainer(t, s), 500)
	assert.Equal(t, 11, got, "expansion is capped at ten clicks per call")
}
