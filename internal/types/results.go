package types

// ResumeMatchResult is the structured comparison of a resume against a job description.
type ResumeMatchResult struct {
	MatchScore int      `json:"matchScore"`
	Strengths  []string `json:"strengths"`
	Gaps       []string `json:"gaps"`
	Summary    string   `json:"summary"`
}

// RareSkill is a skill that makes a professional unusually valuable.
type RareSkill struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// MarketAnalysisResult is the structured salary and skills estimate for a role.
// SalaryRange is free text (e.g. "R$ 5.000 - R$ 7.000"), not a number.
type MarketAnalysisResult struct {
	SalaryRange   string      `json:"salaryRange"`
	Currency      string      `json:"currency"`
	MarketOutlook string      `json:"marketOutlook"`
	RareSkills    []RareSkill `json:"rareSkills"`
}

// TextResult wraps a free-text operation's output for JSON callers.
type TextResult struct {
	Text     string `json:"text"`
	Fallback bool   `json:"fallback"`
}
