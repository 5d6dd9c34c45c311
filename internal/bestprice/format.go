package bestprice

import (
	"fmt"
	"strings"

	"github.com/betpilot/tipster/internal/parlay"
	"github.com/betpilot/tipster/pkg/models"
)

// NoOddsMessage is rendered when there is nothing to format.
const NoOddsMessage = "No live odds available at the moment."

// FormatForModel renders fixtures as a deterministic text block for the
// prediction collaborator. Markets with no priced outcomes are omitted
// rather than rendered empty.
func FormatForModel(fixtures []models.Fixture) string {
	if len(fixtures) == 0 {
		return NoOddsMessage
	}

	var b strings.Builder
	b.WriteString("=== LIVE BETTING ODDS ===\n\n")

	for i, fixture := range fixtures {
		summary := Extract(fixture)

		fmt.Fprintf(&b, "%d. %s @ %s\n", i+1, fixture.AwayTeam, fixture.HomeTeam)
		fmt.Fprintf(&b, "   Commence: %s\n", fixture.CommenceTime.UTC().Format("Mon, 02 Jan 2006 15:04 MST"))

		if summary.HomeML != nil || summary.AwayML != nil {
			b.WriteString("\n   MONEYLINE:\n")
			if summary.AwayML != nil {
				fmt.Fprintf(&b, "     %s: %s (best at %s)\n",
					fixture.AwayTeam, parlay.FormatOdds(summary.AwayML.Price), summary.AwayML.Bookmaker)
			}
			if summary.HomeML != nil {
				fmt.Fprintf(&b, "     %s: %s (best at %s)\n",
					fixture.HomeTeam, parlay.FormatOdds(summary.HomeML.Price), summary.HomeML.Bookmaker)
			}
		}

		if summary.HomeSprd != nil || summary.AwaySprd != nil {
			b.WriteString("\n   SPREADS:\n")
			if summary.AwaySprd != nil {
				fmt.Fprintf(&b, "     %s %s (%s)\n",
					fixture.AwayTeam, formatPoint(summary.AwaySprd.Point), parlay.FormatOdds(summary.AwaySprd.Price))
			}
			if summary.HomeSprd != nil {
				fmt.Fprintf(&b, "     %s %s (%s)\n",
					fixture.HomeTeam, formatPoint(summary.HomeSprd.Point), parlay.FormatOdds(summary.HomeSprd.Price))
			}
		}

		if summary.Over != nil || summary.Under != nil {
			b.WriteString("\n   TOTALS:\n")
			if summary.Over != nil {
				fmt.Fprintf(&b, "     Over %s (%s)\n",
					trimPoint(summary.Over.Point), parlay.FormatOdds(summary.Over.Price))
			}
			if summary.Under != nil {
				fmt.Fprintf(&b, "     Under %s (%s)\n",
					trimPoint(summary.Under.Point), parlay.FormatOdds(summary.Under.Price))
			}
		}

		b.WriteString("\n")
	}

	return b.String()
}

// formatPoint renders a spread line with an explicit sign: +3.5, -7.
func formatPoint(point *float64) string {
	if point == nil {
		return ""
	}
	if *point >= 0 {
		return "+" + trimPoint(point)
	}
	return trimPoint(point)
}

// trimPoint renders a line value without trailing zeros: 44.5, 44.
func trimPoint(point *float64) string {
	if point == nil {
		return ""
	}
	s := fmt.Sprintf("%g", *point)
	return s
}
