package models

import "github.com/google/uuid"

// Team is a football club profile. Identity is the page URL first, name and
// ID second; the team cache enforces one instance per distinct URL. Profile
// fields are filled in when the team's own page gets visited.
type Team struct {
	ID          uuid.UUID
	Name        string
	URL         string
	Country     string
	Stadium     string
	StadiumCity string
	Capacity    int
}

// NewTeam creates a team with a fresh ID. Optional profile fields stay zero
// when the team page could not be read.
func NewTeam(name, url string) *Team {
	return &Team{ID: uuid.New(), Name: name, URL: url}
}

// Is reports whether other denotes the same club. URL is the primary
// identity; name is the fallback when either side has no URL.
func (t *Team) Is(other *Team) bool {
	if t == nil || other == nil {
		return t == other
	}
	if t == other {
		return true
	}
	if t.URL != "" && other.URL != "" {
		return t.URL == other.URL
	}
	return t.Name == other.Name
}
