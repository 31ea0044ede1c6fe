package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadSettingsAppliesDefaults(t *testing.T) {
	path := writeFile(t, "settings.yaml", "find_timeout_seconds: 5\n")

	s, err := LoadSettings(path)
	require.NoError(t, err)

	assert.Equal(t, 5*time.Second, s.FindTimeout())
	// Everything not in the file keeps its default.
	assert.Equal(t, 250*time.Millisecond, s.PollInterval())
	assert.Equal(t, 30*time.Second, s.PageLoadTimeout())
	assert.Equal(t, 5, s.FormMatches)
	assert.Equal(t, 5, s.HeadToHeadMatches)
	assert.Equal(t, 3, s.MaxConsecutiveFaults)
}

func TestLoadSettingsRejectsBadValues(t *testing.T) {
	path := writeFile(t, "settings.yaml", "poll_millis: -10\n")
	_, err := LoadSettings(path)
	assert.Error(t, err)

	path = writeFile(t, "settings.yaml", "form_matches: 0\n")
	_, err = LoadSettings(path)
	assert.Error(t, err)

	path = writeFile(t, "settings.yaml", "find_timeout_seconds: [broken\n")
	_, err = LoadSettings(path)
	assert.Error(t, err)
}

func TestLoadSettingsMissingFile(t *testing.T) {
	_, err := LoadSettings(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestResolveSettingsPath(t *testing.T) {
	dir := t.TempDir()
	oldWD, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(oldWD) })

	// An explicit path always wins, existing or not.
	assert.Equal(t, "custom.yaml", ResolveSettingsPath("custom.yaml"))
	assert.Equal(t, "", ResolveSettingsPath(""))

	require.NoError(t, os.WriteFile(DefaultSettingsFile, []byte("poll_millis: 100\n"), 0o644))
	assert.Equal(t, DefaultSettingsFile, ResolveSettingsPath(""))
}

const mappingJSON = `{
    "England": {
        "Premier-League": "https://example.org/england/premier-league",
        "Championship": "https://example.org/england/championship"
    },
    "spain": {
        "laliga": "https://example.org/spain/laliga/"
    }
}`

func TestMappingLookupIsCaseInsensitive(t *testing.T) {
	path := writeFile(t, "mapping.json", mappingJSON)
	m, err := LoadMapping(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"england", "spain"}, m.Countries())
	assert.Equal(t, []string{"championship", "premier-league"}, m.Leagues("ENGLAND"))
	assert.Nil(t, m.Leagues("france"))

	url, ok := m.URL("England", "premier-league")
	require.True(t, ok)
	assert.Equal(t, "https://example.org/england/premier-league", url)

	_, ok = m.URL("england", "serie-a")
	assert.False(t, ok)
}

func TestNewRunValidation(t *testing.T) {
	path := writeFile(t, "mapping.json", mappingJSON)
	m, err := LoadMapping(path)
	require.NoError(t, err)
	settings := DefaultSettings()

	run, err := NewRun(m, settings, "England", "Premier-League", 2)
	require.NoError(t, err)
	assert.Equal(t, "england", run.Country)
	assert.Equal(t, "premier-league", run.League)
	assert.Equal(t, "https://example.org/england/premier-league/", run.LeagueURL,
		"league URL always gains a trailing slash")
	assert.Equal(t, 2, run.Rounds)

	run, err = NewRun(m, settings, "spain", "laliga", 1)
	require.NoError(t, err)
	assert.Equal(t, "https://example.org/spain/laliga/", run.LeagueURL)

	_, err = NewRun(m, settings, "france", "ligue-1", 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "england")
	assert.Contains(t, err.Error(), "spain")

	_, err = NewRun(m, settings, "england", "serie-a", 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "premier-league")

	_, err = NewRun(m, settings, "england", "premier-league", 0)
	assert.Error(t, err)

	_, err = NewRun(m, settings, "", "", 1)
	assert.Error(t, err)
}
