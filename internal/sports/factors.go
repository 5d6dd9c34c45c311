package sports

import "strings"

// analysisFactors lists what the prediction collaborator should weigh for
// each sport. Keyed by exact sport ID, with family fallbacks below.
var analysisFactors = map[string][]string{
	"americanfootball_nfl": {
		"Injuries and inactive players",
		"Weather conditions (wind, temperature, precipitation)",
		"Home/away records",
		"Head-to-head history",
		"Division rivalry factors",
		"Recent form (last 5 games)",
		"Offensive and defensive rankings",
		"Turnover differential",
	},
	"basketball_nba": {
		"Back-to-back games and rest days",
		"Home/away performance",
		"Injury reports (especially star players)",
		"Head-to-head matchups",
		"Recent form and momentum",
		"Pace and scoring trends",
		"Defensive efficiency",
	},
	"baseball_mlb": {
		"Starting pitcher matchup",
		"Bullpen strength",
		"Home/away splits",
		"Weather (wind direction, temperature)",
		"Recent batting form",
		"Head-to-head records",
		"Ballpark factors",
	},
	"icehockey_nhl": {
		"Goalie matchups",
		"Home/away records",
		"Recent form (last 10 games)",
		"Special teams (power play/penalty kill)",
		"Rest days between games",
		"Head-to-head history",
		"Injuries",
	},
	"soccer": {
		"Recent form (last 5 matches)",
		"Head-to-head records",
		"League position and points",
		"Home/away performance",
		"Injuries and suspensions",
		"Motivation factors (title race, relegation battle)",
		"Squad rotation and fixture congestion",
		"Tactical matchups",
	},
	"rugby": {
		"Forward pack dominance",
		"Try-scoring records",
		"Home advantage",
		"Weather conditions",
		"Recent form",
		"Head-to-head history",
		"Injury list (especially front row)",
		"Defensive strength",
	},
	"cricket": {
		"Pitch conditions",
		"Weather forecast",
		"Batting/bowling lineups",
		"Recent form in format",
		"Head-to-head records",
		"Home advantage",
		"Powerplay performance",
		"Death bowling strength",
	},
	"mma_mixed_martial_arts": {
		"Fight styles and matchup",
		"Recent form and momentum",
		"Reach and size advantage",
		"Ground game vs striking",
		"Cardio and conditioning",
		"Experience level",
		"Weight cut issues",
	},
}

// AnalysisFactors returns the factors for a sport, falling back by family
// (soccer_*, *rugby*, *cricket*) and then to a generic set.
func AnalysisFactors(sportID string) []string {
	if f, ok := analysisFactors[sportID]; ok {
		return f
	}
	switch {
	case strings.HasPrefix(sportID, "soccer_"):
		return analysisFactors["soccer"]
	case strings.Contains(sportID, "rugby"):
		return analysisFactors["rugby"]
	case strings.Contains(sportID, "cricket"):
		return analysisFactors["cricket"]
	}
	return []string{
		"Recent form",
		"Head-to-head history",
		"Home/away advantage",
		"Injuries and team news",
		"Motivation factors",
	}
}
