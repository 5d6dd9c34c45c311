// Package predictor assembles deterministic prompts for the prediction
// collaborator. The model call itself lives behind contracts.Predictor and
// is outside this repository's scope.
package predictor

import (
	"fmt"
	"strings"

	"github.com/betpilot/tipster/internal/sports"
)

// BuildPrompt composes the analyst prompt from the user query, the sport's
// analysis factors, and the pre-formatted odds context block. Identical
// inputs always produce identical output.
func BuildPrompt(userPrompt, sportID, oddsContext string) string {
	var b strings.Builder

	b.WriteString("You are a professional sports betting analyst with access to live odds and betting markets.\n\n")
	fmt.Fprintf(&b, "Sport: %s\n", strings.ToUpper(sportID))
	fmt.Fprintf(&b, "User Query: %s\n", userPrompt)

	factors := sports.AnalysisFactors(sportID)
	if len(factors) > 0 {
		b.WriteString("\nKey factors to weigh:\n")
		for _, f := range factors {
			fmt.Fprintf(&b, "- %s\n", f)
		}
	}

	if oddsContext != "" {
		b.WriteString("\nCurrent Odds & Markets:\n")
		b.WriteString(oddsContext)
	}

	b.WriteString("\nProvide your response in JSON format with:\n")
	b.WriteString("- prediction: Your betting prediction with specific picks\n")
	b.WriteString("- confidence: Confidence score 0-100\n")
	b.WriteString("- reasoning: Detailed explanation including form, stats, and value analysis\n")
	b.WriteString("- suggestedBet: Specific betting suggestion with odds\n")

	return b.String()
}
