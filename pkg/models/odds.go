package models

import "time"

// Market keys served by The Odds API featured endpoint.
const (
	MarketMoneyline = "h2h"
	MarketSpreads   = "spreads"
	MarketTotals    = "totals"
)

// Outcome names used by totals markets.
const (
	OutcomeOver  = "Over"
	OutcomeUnder = "Under"
)

// Fixture is a single scheduled event with odds from one or more bookmakers.
// Field tags match The Odds API v4 JSON format.
type Fixture struct {
	ID           string      `json:"id"`
	SportKey     string      `json:"sport_key"`
	SportTitle   string      `json:"sport_title"`
	CommenceTime time.Time   `json:"commence_time"`
	HomeTeam     string      `json:"home_team"`
	AwayTeam     string      `json:"away_team"`
	Bookmakers   []Bookmaker `json:"bookmakers"`
}

// Bookmaker holds one book's markets for a fixture.
type Bookmaker struct {
	Key     string   `json:"key"`
	Title   string   `json:"title"`
	Markets []Market `json:"markets"`
}

// Market is one priced market (h2h, spreads or totals) from a bookmaker.
type Market struct {
	Key      string    `json:"key"`
	Outcomes []Outcome `json:"outcomes"`
}

// Outcome is a single priced side of a market. Price uses the American odds
// convention (signed integer, higher is always better for the bettor).
// Point is set for spreads/totals and nil for h2h.
type Outcome struct {
	Name  string   `json:"name"`
	Price int      `json:"price"`
	Point *float64 `json:"point,omitempty"`
}

// GetOddsOptions contains parameters for fetching odds for one sport.
// Zero-value fields fall back to sport-appropriate defaults.
type GetOddsOptions struct {
	// Days bounds the commence-time window to [now, now+Days). Must be 1..30.
	Days int

	// Regions overrides the sport's default bookmaker regions.
	Regions []string

	// Markets overrides the default featured markets (h2h, spreads, totals).
	Markets []string

	// OddsFormat overrides the default "american" format.
	OddsFormat string
}

// RateLimits tracks upstream quota as reported by response headers.
type RateLimits struct {
	RequestsRemaining int
	RequestsUsed      int
}

// BestQuote is the most favorable price found for one outcome across all
// bookmakers, with the book that offered it.
type BestQuote struct {
	Price     int      `json:"price"`
	Bookmaker string   `json:"bookmaker"`
	Point     *float64 `json:"point,omitempty"`
}

// BestPriceSummary holds per-fixture best prices per market. A nil quote means
// no bookmaker offered that outcome. Derived, never persisted.
type BestPriceSummary struct {
	FixtureID string     `json:"fixture_id"`
	HomeTeam  string     `json:"home_team"`
	AwayTeam  string     `json:"away_team"`
	HomeML    *BestQuote `json:"home_moneyline,omitempty"`
	AwayML    *BestQuote `json:"away_moneyline,omitempty"`
	HomeSprd  *BestQuote `json:"home_spread,omitempty"`
	AwaySprd  *BestQuote `json:"away_spread,omitempty"`
	Over      *BestQuote `json:"over,omitempty"`
	Under     *BestQuote `json:"under,omitempty"`
}

// ValueBet flags an h2h price worth surfacing: a favorite priced less extreme
// than the configured threshold.
type ValueBet struct {
	Fixture   string  `json:"fixture"`
	Bet       string  `json:"bet"`
	BestOdds  int     `json:"best_odds"`
	Bookmaker string  `json:"bookmaker"`
	Value     float64 `json:"value"`
}
