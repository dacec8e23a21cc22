package model

// Request is the body POSTed to /api/correct.
type Request struct {
	Text string `json:"text"` // trimmed, non-empty
}

// Response is the correction service result. JSON-serialisable as-is.
type Response struct {
	Original         string              `json:"original"`
	BestSuggestion   string              `json:"best_suggestion"`
	Confidence       float64             `json:"confidence"` // percentage 0–100
	GrammarCorrected string              `json:"grammar_corrected"`
	PerWord          []PerWordSuggestion `json:"per_word,omitempty"` // nil when absent or unusable
}

// PerWordSuggestion holds the breakdown for one input word, in input order.
type PerWordSuggestion struct {
	Original        string           `json:"original"`
	SpellCorrection string           `json:"spell_correction"`
	SpellCandidates []string         `json:"spell_candidates"`
	FuzzyCandidates []FuzzyCandidate `json:"fuzzy_candidates"`
}

// FuzzyCandidate is one vocabulary match and its similarity score.
type FuzzyCandidate struct {
	Word      string   `json:"word"`
	Score     float64  `json:"score"`                // percentage
	FreqScore *float64 `json:"freq_score,omitempty"` // zipf frequency, not displayed
}
