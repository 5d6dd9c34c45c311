// Package bestprice reduces multi-bookmaker fixture odds to the most
// favorable price per outcome per market.
package bestprice

import (
	"github.com/betpilot/tipster/pkg/models"
)

// DefaultValueThreshold flags favorites priced better than -150, roughly a
// 60% implied-probability favorite.
const DefaultValueThreshold = -150

// DefaultValueLimit caps value-bet suggestions.
const DefaultValueLimit = 5

// Extract computes the best price per outcome across every bookmaker of the
// fixture. "Best" is the numerically greatest signed American price. For
// spreads and totals the point of the winning quote rides along; points are
// NOT required to match across books before comparing prices, so the best
// price may belong to a different line than a given book's (known
// limitation, kept deliberately).
func Extract(fixture models.Fixture) models.BestPriceSummary {
	summary := models.BestPriceSummary{
		FixtureID: fixture.ID,
		HomeTeam:  fixture.HomeTeam,
		AwayTeam:  fixture.AwayTeam,
	}

	for _, book := range fixture.Bookmakers {
		for _, market := range book.Markets {
			for _, outcome := range market.Outcomes {
				switch market.Key {
				case models.MarketMoneyline:
					switch outcome.Name {
					case fixture.HomeTeam:
						summary.HomeML = better(summary.HomeML, outcome, book.Title)
					case fixture.AwayTeam:
						summary.AwayML = better(summary.AwayML, outcome, book.Title)
					}
				case models.MarketSpreads:
					if outcome.Point == nil {
						continue
					}
					switch outcome.Name {
					case fixture.HomeTeam:
						summary.HomeSprd = better(summary.HomeSprd, outcome, book.Title)
					case fixture.AwayTeam:
						summary.AwaySprd = better(summary.AwaySprd, outcome, book.Title)
					}
				case models.MarketTotals:
					if outcome.Point == nil {
						continue
					}
					switch outcome.Name {
					case models.OutcomeOver:
						summary.Over = better(summary.Over, outcome, book.Title)
					case models.OutcomeUnder:
						summary.Under = better(summary.Under, outcome, book.Title)
					}
				}
			}
		}
	}

	return summary
}

// ExtractAll summarizes a batch of fixtures.
func ExtractAll(fixtures []models.Fixture) []models.BestPriceSummary {
	out := make([]models.BestPriceSummary, 0, len(fixtures))
	for _, f := range fixtures {
		out = append(out, Extract(f))
	}
	return out
}

func better(current *models.BestQuote, candidate models.Outcome, bookmaker string) *models.BestQuote {
	if current != nil && candidate.Price <= current.Price {
		return current
	}
	quote := &models.BestQuote{Price: candidate.Price, Bookmaker: bookmaker}
	if candidate.Point != nil {
		point := *candidate.Point
		quote.Point = &point
	}
	return quote
}

// FindValueBets scans every bookmaker's h2h outcomes for favorites priced
// less extreme than threshold (threshold < price < 0) and returns at most
// limit suggestions. threshold 0 and limit 0 use the defaults.
func FindValueBets(fixtures []models.Fixture, threshold, limit int) []models.ValueBet {
	if threshold >= 0 {
		threshold = DefaultValueThreshold
	}
	if limit <= 0 {
		limit = DefaultValueLimit
	}

	var bets []models.ValueBet
	for _, fixture := range fixtures {
		matchup := fixture.AwayTeam + " @ " + fixture.HomeTeam

		for _, book := range fixture.Bookmakers {
			for _, market := range book.Markets {
				if market.Key != models.MarketMoneyline {
					continue
				}
				for _, outcome := range market.Outcomes {
					if outcome.Price > threshold && outcome.Price < 0 {
						bets = append(bets, models.ValueBet{
							Fixture:   matchup,
							Bet:       outcome.Name + " ML",
							BestOdds:  outcome.Price,
							Bookmaker: book.Title,
							Value:     float64(-outcome.Price) / float64(-threshold),
						})
					}
				}
			}
		}
	}

	if len(bets) > limit {
		bets = bets[:limit]
	}
	return bets
}
