package sports

import "time"

// SeasonWindow is a recurring yearly window during which a sport is active.
// Windows may wrap the year boundary (NFL runs September through February).
type SeasonWindow struct {
	StartMonth time.Month
	StartDay   int
	EndMonth   time.Month
	EndDay     int
}

// seasonWindows maps sport IDs to their regular-season windows. Sports
// without an entry are treated as year-round (MMA, international cricket).
var seasonWindows = map[string]SeasonWindow{
	"americanfootball_nfl":       {time.September, 1, time.February, 28},
	"basketball_nba":             {time.October, 1, time.June, 30},
	"icehockey_nhl":              {time.October, 1, time.June, 30},
	"baseball_mlb":               {time.March, 20, time.October, 31},
	"soccer_epl":                 {time.August, 1, time.May, 31},
	"soccer_uefa_champs_league":  {time.September, 1, time.May, 31},
	"soccer_spain_la_liga":       {time.August, 1, time.May, 31},
	"soccer_germany_bundesliga":  {time.August, 1, time.May, 31},
	"soccer_italy_serie_a":       {time.August, 1, time.May, 31},
	"soccer_france_ligue_one":    {time.August, 1, time.May, 31},
	"soccer_south_africa_premiership": {time.August, 1, time.May, 31},
	"rugbyunion_super_rugby":     {time.February, 1, time.June, 30},
}

// Contains reports whether t falls inside the window, ignoring the year.
func (w SeasonWindow) Contains(t time.Time) bool {
	start := time.Date(t.Year(), w.StartMonth, w.StartDay, 0, 0, 0, 0, t.Location())
	end := time.Date(t.Year(), w.EndMonth, w.EndDay, 23, 59, 59, 0, t.Location())

	if !end.Before(start) {
		return !t.Before(start) && !t.After(end)
	}

	// Window wraps the new year: active when past the start or before the end.
	return !t.Before(start) || !t.After(end)
}

// IsInSeason reports whether the sport is in season at t. Sports without a
// configured window are always in season.
func IsInSeason(sportID string, t time.Time) bool {
	w, ok := seasonWindows[sportID]
	if !ok {
		return true
	}
	return w.Contains(t)
}

// Active returns the enabled sports that are in season at t.
func (c *Catalog) Active(t time.Time) []Sport {
	var out []Sport
	for _, s := range c.Enabled() {
		if IsInSeason(s.ID, t) {
			out = append(out, s)
		}
	}
	return out
}
