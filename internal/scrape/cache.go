// Package scrape contains the entity extractors and their supporting
// services: the progressive-disclosure loader, the team identity cache and
// the orchestration coordinator.
package scrape

import (
	"github.com/google/uuid"

	"fixscore/internal/models"
)

// TeamCache deduplicates teams for the duration of one run. Three key
// mappings (URL, name, ID) point at the same record; extractors must consult
// ByURL before navigating to a team page, so a hit skips the page load
// entirely. No eviction; the cache dies with the process.
type TeamCache struct {
	byURL  map[string]*models.Team
	byName map[string]*models.Team
	byID   map[uuid.UUID]*models.Team
}

// NewTeamCache creates an empty cache.
func NewTeamCache() *TeamCache {
	return &TeamCache{
		byURL:  make(map[string]*models.Team),
		byName: make(map[string]*models.Team),
		byID:   make(map[uuid.UUID]*models.Team),
	}
}

// Add inserts the team under all three keys.
func (c *TeamCache) Add(team *models.Team) {
	c.byURL[team.URL] = team
	c.byName[team.Name] = team
	c.byID[team.ID] = team
}

// ByURL looks a team up by its page URL, the primary identity.
func (c *TeamCache) ByURL(url string) (*models.Team, bool) {
	t, ok := c.byURL[url]
	return t, ok
}

// ByName looks a team up by name.
func (c *TeamCache) ByName(name string) (*models.Team, bool) {
	t, ok := c.byName[name]
	return t, ok
}

// ByID looks a team up by its run-local ID.
func (c *TeamCache) ByID(id uuid.UUID) (*models.Team, bool) {
	t, ok := c.byID[id]
	return t, ok
}

// ContainsURL reports whether a team with this URL is cached.
func (c *TeamCache) ContainsURL(url string) bool {
	_, ok := c.byURL[url]
	return ok
}

// ContainsName reports whether a team with this name is cached.
func (c *TeamCache) ContainsName(name string) bool {
	_, ok := c.byName[name]
	return ok
}

// ContainsID reports whether a team with this ID is cached.
func (c *TeamCache) ContainsID(id uuid.UUID) bool {
	_, ok := c.byID[id]
	return ok
}

// Clear empties all three mappings.
func (c *TeamCache) Clear() {
	c.byURL = make(map[string]*models.Team)
	c.byName = make(map[string]*models.Team)
	c.byID = make(map[uuid.UUID]*models.Team)
}

// Size is the number of cached teams.
func (c *TeamCache) Size() int { return len(c.byURL) }
