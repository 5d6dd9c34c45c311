package predictor

import (
	"strings"
	"testing"
)

func TestBuildPromptIncludesEverySection(t *testing.T) {
	prompt := BuildPrompt("Who wins tonight?", "basketball_nba", "=== LIVE BETTING ODDS ===\n1. A @ B")

	for _, want := range []string{
		"professional sports betting analyst",
		"Sport: BASKETBALL_NBA",
		"User Query: Who wins tonight?",
		"Key factors to weigh:",
		"Back-to-back games and rest days",
		"Current Odds & Markets:",
		"=== LIVE BETTING ODDS ===",
		"- prediction:",
		"- confidence:",
		"- reasoning:",
		"- suggestedBet:",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestBuildPromptDeterministic(t *testing.T) {
	a := BuildPrompt("q", "soccer_epl", "odds")
	b := BuildPrompt("q", "soccer_epl", "odds")
	if a != b {
		t.Error("identical inputs should produce identical prompts")
	}
}

func TestBuildPromptOmitsEmptyOddsContext(t *testing.T) {
	prompt := BuildPrompt("q", "soccer_epl", "")
	if strings.Contains(prompt, "Current Odds & Markets:") {
		t.Error("empty odds context should omit the odds section")
	}
}
