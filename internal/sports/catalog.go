package sports

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// Category groups sports for presentation.
type Category string

const (
	CategoryAmerican     Category = "American"
	CategorySoccer       Category = "Soccer"
	CategorySouthAfrican Category = "South African"
	CategoryOther        Category = "Other"
)

// Sport describes one bettable competition offered by the upstream provider.
type Sport struct {
	ID       string   `yaml:"id" json:"id"`
	Name     string   `yaml:"name" json:"name"`
	Category Category `yaml:"category" json:"category"`
	Flag     string   `yaml:"flag" json:"flag"`
	Enabled  bool     `yaml:"enabled" json:"enabled"`
	// Regions are the bookmaker regions to request for this sport. Empty
	// means "use the prefix-based default" (soccer_* -> us,uk,eu, else us).
	Regions []string `yaml:"regions,omitempty" json:"regions,omitempty"`
}

// Catalog manages the set of known sports. Safe for concurrent use.
type Catalog struct {
	mu     sync.RWMutex
	sports map[string]Sport
	order  []string
}

// NewCatalog creates a catalog pre-loaded with the built-in sports.
func NewCatalog() *Catalog {
	c := &Catalog{sports: make(map[string]Sport)}
	for _, s := range builtinSports() {
		c.put(s)
	}
	return c
}

// LoadCatalog builds a catalog from a YAML file, replacing the built-ins.
// The file holds a list of Sport entries.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read sports file: %w", err)
	}

	var list []Sport
	if err := yaml.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("parse sports file: %w", err)
	}
	if len(list) == 0 {
		return nil, fmt.Errorf("sports file %s contains no sports", path)
	}

	c := &Catalog{sports: make(map[string]Sport)}
	for _, s := range list {
		if s.ID == "" {
			return nil, fmt.Errorf("sports file %s: sport with empty id", path)
		}
		c.put(s)
	}
	return c, nil
}

func (c *Catalog) put(s Sport) {
	if _, exists := c.sports[s.ID]; !exists {
		c.order = append(c.order, s.ID)
	}
	c.sports[s.ID] = s
}

// Get retrieves a sport by its upstream ID.
func (c *Catalog) Get(id string) (Sport, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	s, ok := c.sports[id]
	return s, ok
}

// All returns every sport in registration order.
func (c *Catalog) All() []Sport {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]Sport, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.sports[id])
	}
	return out
}

// Enabled returns every enabled sport in registration order.
func (c *Catalog) Enabled() []Sport {
	out := c.All()[:0:0]
	for _, s := range c.All() {
		if s.Enabled {
			out = append(out, s)
		}
	}
	return out
}

// ByCategory returns enabled sports in the given category.
func (c *Catalog) ByCategory(cat Category) []Sport {
	var out []Sport
	for _, s := range c.Enabled() {
		if s.Category == cat {
			out = append(out, s)
		}
	}
	return out
}

// RegionOverrides returns the explicitly configured regions per sport ID,
// for injection into the odds client.
func (c *Catalog) RegionOverrides() map[string][]string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make(map[string][]string, len(c.sports))
	for id, s := range c.sports {
		if len(s.Regions) > 0 {
			out[id] = append([]string(nil), s.Regions...)
		}
	}
	return out
}

// Suggestions returns enabled sport IDs to offer when a requested sport is
// not available upstream, excluding the sport that failed.
func (c *Catalog) Suggestions(failedID string) []string {
	var out []string
	for _, s := range c.Enabled() {
		if s.ID != failedID {
			out = append(out, s.ID)
		}
	}
	if len(out) > 5 {
		out = out[:5]
	}
	return out
}

// MapLegacyName translates short UI names (nfl, epl, ...) to upstream IDs.
// Unknown names pass through unchanged.
func MapLegacyName(name string) string {
	legacy := map[string]string{
		"nfl": "americanfootball_nfl",
		"epl": "soccer_epl",
		"nba": "basketball_nba",
		"mlb": "baseball_mlb",
		"nhl": "icehockey_nhl",
	}
	if id, ok := legacy[strings.ToLower(name)]; ok {
		return id
	}
	return name
}

func builtinSports() []Sport {
	return []Sport{
		// American sports
		{ID: "americanfootball_nfl", Name: "NFL", Category: CategoryAmerican, Flag: "🏈", Enabled: true, Regions: []string{"us"}},
		{ID: "basketball_nba", Name: "NBA", Category: CategoryAmerican, Flag: "🏀", Enabled: true, Regions: []string{"us"}},
		{ID: "baseball_mlb", Name: "MLB", Category: CategoryAmerican, Flag: "⚾", Enabled: true, Regions: []string{"us"}},
		{ID: "icehockey_nhl", Name: "NHL", Category: CategoryAmerican, Flag: "🏒", Enabled: true, Regions: []string{"us"}},

		// Soccer
		{ID: "soccer_epl", Name: "Premier League (England)", Category: CategorySoccer, Flag: "⚽", Enabled: true},
		{ID: "soccer_uefa_champs_league", Name: "Champions League", Category: CategorySoccer, Flag: "⚽", Enabled: true},
		{ID: "soccer_spain_la_liga", Name: "La Liga (Spain)", Category: CategorySoccer, Flag: "⚽", Enabled: true},
		{ID: "soccer_germany_bundesliga", Name: "Bundesliga (Germany)", Category: CategorySoccer, Flag: "⚽", Enabled: true},
		{ID: "soccer_italy_serie_a", Name: "Serie A (Italy)", Category: CategorySoccer, Flag: "⚽", Enabled: true},
		{ID: "soccer_france_ligue_one", Name: "Ligue 1 (France)", Category: CategorySoccer, Flag: "⚽", Enabled: true},

		// South African sports poll regionally localized books
		{ID: "soccer_south_africa_premiership", Name: "PSL - Premier Soccer League", Category: CategorySouthAfrican, Flag: "⚽🇿🇦", Enabled: true, Regions: []string{"uk", "za"}},
		{ID: "rugbyunion_super_rugby", Name: "URC Rugby", Category: CategorySouthAfrican, Flag: "🏉🇿🇦", Enabled: true, Regions: []string{"uk", "za"}},
		{ID: "cricket_test_match", Name: "Cricket - Test Matches", Category: CategorySouthAfrican, Flag: "🏏🇿🇦", Enabled: true, Regions: []string{"uk", "za"}},

		// Other
		{ID: "mma_mixed_martial_arts", Name: "UFC/MMA", Category: CategoryOther, Flag: "🥊", Enabled: true, Regions: []string{"us", "uk"}},
	}
}
