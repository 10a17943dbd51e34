package gateway

import "github.com/google/generative-ai-go/genai"

// ResumeMatchResponseSchema is the structured-output constraint sent with resume match prompts.
func ResumeMatchResponseSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"matchScore": {Type: genai.TypeInteger, Description: "Fit score from 0 to 100"},
			"strengths": {
				Type:        genai.TypeArray,
				Items:       &genai.Schema{Type: genai.TypeString},
				Description: "The candidate's 3 biggest strengths for this job",
			},
			"gaps": {
				Type:        genai.TypeArray,
				Items:       &genai.Schema{Type: genai.TypeString},
				Description: "The candidate's 3 biggest gaps for this job",
			},
			"summary": {Type: genai.TypeString, Description: "Short summary of the analysis"},
		},
		Required: []string{"matchScore", "strengths", "gaps", "summary"},
	}
}

// MarketAnalysisResponseSchema is the structured-output constraint sent with market analysis prompts.
func MarketAnalysisResponseSchema(currency string) *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"salaryRange": {Type: genai.TypeString, Description: "Monthly salary range, e.g. 5,000 - 7,000"},
			"currency":    {Type: genai.TypeString, Description: "Currency used (" + currency + ")"},
			"marketOutlook": {
				Type:        genai.TypeString,
				Description: "Short sentence about current demand for this professional",
			},
			"rareSkills": {
				Type:        genai.TypeArray,
				Description: "3 skills that make the professional more valuable",
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"name":        {Type: genai.TypeString},
						"description": {Type: genai.TypeString},
					},
					Required: []string{"name", "description"},
				},
			},
		},
		Required: []string{"salaryRange", "currency", "marketOutlook", "rareSkills"},
	}
}
