package sports_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/betpilot/tipster/internal/sports"
)

func TestMapLegacyName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"nfl", "americanfootball_nfl"},
		{"NFL", "americanfootball_nfl"},
		{"epl", "soccer_epl"},
		{"nba", "basketball_nba"},
		{"mlb", "baseball_mlb"},
		{"nhl", "icehockey_nhl"},
		{"basketball_nba", "basketball_nba"},
		{"soccer_south_africa_premiership", "soccer_south_africa_premiership"},
		{"quidditch", "quidditch"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := sports.MapLegacyName(tt.in); got != tt.want {
				t.Errorf("MapLegacyName(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestCatalogGet(t *testing.T) {
	catalog := sports.NewCatalog()

	sport, ok := catalog.Get("basketball_nba")
	if !ok {
		t.Fatal("basketball_nba missing from built-in catalog")
	}
	if sport.Name != "NBA" || sport.Category != sports.CategoryAmerican {
		t.Errorf("sport = %+v", sport)
	}

	if _, ok := catalog.Get("quidditch"); ok {
		t.Error("unknown sport should not resolve")
	}
}

func TestCatalogByCategory(t *testing.T) {
	catalog := sports.NewCatalog()

	soccer := catalog.ByCategory(sports.CategorySoccer)
	if len(soccer) == 0 {
		t.Fatal("no soccer sports in built-in catalog")
	}
	for _, s := range soccer {
		if s.Category != sports.CategorySoccer {
			t.Errorf("%s has category %s", s.ID, s.Category)
		}
		if !s.Enabled {
			t.Errorf("%s is disabled but listed", s.ID)
		}
	}
}

func TestCatalogRegionOverrides(t *testing.T) {
	overrides := sports.NewCatalog().RegionOverrides()

	if got := overrides["soccer_south_africa_premiership"]; len(got) != 2 || got[0] != "uk" || got[1] != "za" {
		t.Errorf("PSL regions = %v, want [uk za]", got)
	}
	// Sports with no explicit regions use the client's prefix default.
	if _, ok := overrides["soccer_epl"]; ok {
		t.Error("soccer_epl should have no override entry")
	}
}

func TestCatalogSuggestions(t *testing.T) {
	catalog := sports.NewCatalog()

	suggestions := catalog.Suggestions("basketball_nba")
	if len(suggestions) == 0 || len(suggestions) > 5 {
		t.Fatalf("got %d suggestions, want 1..5", len(suggestions))
	}
	for _, id := range suggestions {
		if id == "basketball_nba" {
			t.Error("the failed sport must not be suggested back")
		}
	}
}

func TestLoadCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sports.yaml")
	content := `
- id: basketball_nba
  name: NBA
  category: American
  flag: "B"
  enabled: true
  regions: [us]
- id: soccer_epl
  name: Premier League
  category: Soccer
  flag: "S"
  enabled: false
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	catalog, err := sports.LoadCatalog(path)
	if err != nil {
		t.Fatalf("LoadCatalog failed: %v", err)
	}

	if got := len(catalog.All()); got != 2 {
		t.Fatalf("loaded %d sports, want 2", got)
	}
	if got := catalog.Enabled(); len(got) != 1 || got[0].ID != "basketball_nba" {
		t.Errorf("enabled = %v", got)
	}

	epl, _ := catalog.Get("soccer_epl")
	if epl.Enabled {
		t.Error("soccer_epl should load disabled")
	}
}

func TestLoadCatalogRejectsBadFiles(t *testing.T) {
	dir := t.TempDir()

	empty := filepath.Join(dir, "empty.yaml")
	os.WriteFile(empty, []byte("[]"), 0o600)
	if _, err := sports.LoadCatalog(empty); err == nil {
		t.Error("empty sports file should be rejected")
	}

	noID := filepath.Join(dir, "noid.yaml")
	os.WriteFile(noID, []byte("- name: Mystery Sport\n  enabled: true\n"), 0o600)
	if _, err := sports.LoadCatalog(noID); err == nil {
		t.Error("sport without an id should be rejected")
	}

	if _, err := sports.LoadCatalog(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("missing file should be rejected")
	}
}
