package config

import (
	"fmt"
	"strings"
)

// Run is the resolved configuration of one extraction run.
type Run struct {
	Country   string
	League    string
	LeagueURL string
	Rounds    int

	Settings Settings
}

// NewRun resolves and validates a run against the league mapping. Unknown
// countries and leagues come back as errors that list what is available.
func NewRun(m *Mapping, settings Settings, country, league string, rounds int) (*Run, error) {
	if country == "" {
		return nil, fmt.Errorf("country is required, available: %s", strings.Join(m.Countries(), ", "))
	}
	leagues := m.Leagues(country)
	if leagues == nil {
		return nil, fmt.Errorf("unknown country %q, available: %s", country, strings.Join(m.Countries(), ", "))
	}
	if league == "" {
		return nil, fmt.Errorf("league is required, available in %s: %s", country, strings.Join(leagues, ", "))
	}
	url, ok := m.URL(country, league)
	if !ok {
		return nil, fmt.Errorf("unknown league %q in %s, available: %s", league, country, strings.Join(leagues, ", "))
	}
	if rounds < 1 {
		return nil, fmt.Errorf("rounds must be at least 1, got %d", rounds)
	}

	if !strings.HasSuffix(url, "/") {
		url += "/"
	}
	return &Run{
		Country:   strings.ToLower(country),
		League:    strings.ToLower(league),
		LeagueURL: url,
		Rounds:    rounds,
		Settings:  settings,
	}, nil
}
