package models

// PredictionRequest carries everything the prediction collaborator needs.
// OddsContext is the pre-formatted odds text block built from live fixtures.
type PredictionRequest struct {
	Prompt      string `json:"prompt"`
	SportKey    string `json:"sport"`
	OddsContext string `json:"odds_context,omitempty"`
}

// PredictionResponse is the structured output of the prediction collaborator.
type PredictionResponse struct {
	Prediction   string `json:"prediction"`
	Confidence   int    `json:"confidence"`
	Reasoning    string `json:"reasoning"`
	SuggestedBet string `json:"suggestedBet,omitempty"`
}
