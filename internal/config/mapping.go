package config

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
)

// Mapping is the country to league to fixtures URL index, normally produced
// by the leaguemap tool. Lookups are case insensitive.
type Mapping struct {
	leagues map[string]map[string]string
}

// LoadMapping reads the league URL mapping JSON at path.
func LoadMapping(path string) (*Mapping, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read league mapping: %w", err)
	}
	var raw map[string]map[string]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse league mapping: %w", err)
	}

	m := &Mapping{leagues: make(map[string]map[string]string, len(raw))}
	for country, leagues := range raw {
		normalized := make(map[string]string, len(leagues))
		for league, url := range leagues {
			normalized[strings.ToLower(league)] = url
		}
		m.leagues[strings.ToLower(country)] = normalized
	}
	return m, nil
}

// Countries lists the known countries, sorted.
func (m *Mapping) Countries() []string {
	countries := make([]string, 0, len(m.leagues))
	for country := range m.leagues {
		countries = append(countries, country)
	}
	sort.Strings(countries)
	return countries
}

// Leagues lists the known leagues of a country, sorted. Empty when the
// country is unknown.
func (m *Mapping) Leagues(country string) []string {
	byLeague, ok := m.leagues[strings.ToLower(country)]
	if !ok {
		return nil
	}
	leagues := make([]string, 0, len(byLeague))
	for league := range byLeague {
		leagues = append(leagues, league)
	}
	sort.Strings(leagues)
	return leagues
}

// URL resolves the fixtures base URL for a country and league.
func (m *Mapping) URL(country, league string) (string, bool) {
	byLeague, ok := m.leagues[strings.ToLower(country)]
	if !ok {
		return "", false
	}
	url, ok := byLeague[strings.ToLower(league)]
	return url, ok
}
