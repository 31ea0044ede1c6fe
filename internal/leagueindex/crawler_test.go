package leagueindex

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func page(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<html><body>" + body + "</body></html>"))
	}
}

func newIndexServer(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/football/", page(`
		<div class="lmc__menu">
			<div class="lmc__block">England<a href="/football/england/"></a></div>
			<div class="lmc__block">Spain<a href="/football/spain/"></a></div>
			<div class="lmc__block">Broken Land<a href="/football/broken/"></a></div>
			<div class="lmc__block">No Link Here</div>
		</div>`))
	mux.HandleFunc("/football/england/", page(`
		<div class="selected-country-list">
			<div class="leftMenu__item">Premier League<a href="/football/england/premier-league/"></a></div>
			<div class="leftMenu__item">Championship<a href="/football/england/championship/"></a></div>
			<div class="leftMenu__item">Linkless Entry</div>
		</div>`))
	mux.HandleFunc("/football/spain/", page(`
		<div class="selected-country-list">
			<div class="leftMenu__item">LaLiga<a href="/football/spain/laliga/"></a></div>
		</div>`))
	mux.HandleFunc("/football/broken/", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestCountries(t *testing.T) {
	srv := newIndexServer(t)
	c := NewCrawler(CrawlerConfig{})

	countries, err := c.Countries(srv.URL + "/football/")
	require.NoError(t, err)

	assert.Equal(t, map[string]string{
		"england":     srv.URL + "/football/england/",
		"spain":       srv.URL + "/football/spain/",
		"broken-land": srv.URL + "/football/broken/",
	}, countries, "blocks without a link are dropped, names are normalized")
}

func TestLeagues(t *testing.T) {
	srv := newIndexServer(t)
	c := NewCrawler(CrawlerConfig{})

	leagues, err := c.Leagues(srv.URL + "/football/england/")
	require.NoError(t, err)

	assert.Equal(t, map[string]string{
		"premier-league": srv.URL + "/football/england/premier-league/",
		"championship":   srv.URL + "/football/england/championship/",
	}, leagues)
}

func TestBuildMappingSkipsBadCountries(t *testing.T) {
	srv := newIndexServer(t)
	c := NewCrawler(CrawlerConfig{})

	mapping, err := c.BuildMapping(srv.URL + "/football/")
	require.NoError(t, err)

	require.Len(t, mapping, 2, "the failing country is skipped, the rest survives")
	assert.Contains(t, mapping, "england")
	assert.Contains(t, mapping, "spain")
	assert.NotContains(t, mapping, "broken-land")
	assert.Equal(t, srv.URL+"/football/spain/laliga/", mapping["spain"]["laliga"])
}

func TestBuildMappingFailsOnDeadIndex(t *testing.T) {
	srv := newIndexServer(t)
	c := NewCrawler(CrawlerConfig{})

	_, err := c.BuildMapping(srv.URL + "/nowhere/")
	assert.Error(t, err)
}

func TestNormalizeName(t *testing.T) {
	assert.Equal(t, "premier-league", normalizeName("  Premier   League "))
	assert.Equal(t, "laliga", normalizeName("LaLiga"))
	assert.Equal(t, "", normalizeName("   "))
}
