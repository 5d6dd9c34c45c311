// Package parlay converts between odds formats and prices multi-leg bets.
package parlay

import (
	"fmt"
	"math"
)

// AmericanToDecimal converts signed American odds to decimal odds.
func AmericanToDecimal(american int) float64 {
	if american > 0 {
		return float64(american)/100 + 1
	}
	return 100/math.Abs(float64(american)) + 1
}

// DecimalToAmerican converts decimal odds to signed American odds.
func DecimalToAmerican(decimal float64) int {
	if decimal >= 2 {
		return int(math.Round((decimal - 1) * 100))
	}
	return int(math.Round(-100 / (decimal - 1)))
}

// CombinedOdds multiplies the decimal odds of every leg and reports the
// result in both conventions.
func CombinedOdds(americanLegs []int) (decimal float64, american int) {
	decimal = 1
	for _, leg := range americanLegs {
		decimal *= AmericanToDecimal(leg)
	}
	decimal = math.Round(decimal*100) / 100
	return decimal, DecimalToAmerican(decimal)
}

// Payout returns the total return (stake included) for a stake at the given
// American odds, rounded to cents.
func Payout(stake float64, american int) float64 {
	return math.Round(stake*AmericanToDecimal(american)*100) / 100
}

// Result prices a full parlay.
type Result struct {
	CombinedDecimal    float64 `json:"combined_decimal"`
	CombinedAmerican   int     `json:"combined_american"`
	CombinedFractional string  `json:"combined_fractional"`
	TotalPayout        float64 `json:"total_payout"`
	Profit           float64 `json:"profit"`
	RiskLevel        string  `json:"risk_level"`
	RiskNote         string  `json:"risk_note"`
}

// Price computes combined odds, payout and a risk assessment for the legs.
func Price(stake float64, americanLegs []int) Result {
	decimal, american := CombinedOdds(americanLegs)
	payout := Payout(stake, american)
	level, note := AssessRisk(len(americanLegs), american)

	return Result{
		CombinedDecimal:    decimal,
		CombinedAmerican:   american,
		CombinedFractional: AmericanToFractional(american),
		TotalPayout:        payout,
		Profit:             math.Round((payout-stake)*100) / 100,
		RiskLevel:          level,
		RiskNote:           note,
	}
}

// Risk thresholds by leg count and combined odds magnitude.
const (
	lowLegs      = 2
	moderateLegs = 3
	highLegs     = 4
	lowOdds      = 300
	moderateOdds = 500
	highOdds     = 1000
)

// AssessRisk grades a parlay by leg count and combined odds.
func AssessRisk(legs int, combinedAmerican int) (level, note string) {
	abs := int(math.Abs(float64(combinedAmerican)))
	switch {
	case legs <= lowLegs && abs < lowOdds:
		return "Low", "Few legs with favorable odds"
	case legs <= moderateLegs && abs < moderateOdds:
		return "Moderate", "Standard parlay with manageable risk"
	case legs <= highLegs || abs < highOdds:
		return "High", "Multiple legs increase difficulty"
	default:
		return "Very High", "High number of legs - all must win"
	}
}

// AmericanToFractional renders American odds as a reduced fraction of profit
// over stake: +120 -> 6/5, -110 -> 10/11, +100 -> 1/1.
func AmericanToFractional(american int) string {
	num, den := american, 100
	if american < 0 {
		num, den = 100, -american
	}
	g := gcd(num, den)
	return fmt.Sprintf("%d/%d", num/g, den/g)
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// FormatOdds renders American odds with an explicit sign: +120, -110.
func FormatOdds(american int) string {
	if american > 0 {
		return fmt.Sprintf("+%d", american)
	}
	return fmt.Sprintf("%d", american)
}
