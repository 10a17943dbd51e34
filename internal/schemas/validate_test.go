package schemas

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedSchemas_ValidJSON(t *testing.T) {
	for _, name := range []string{ResumeMatch, MarketAnalysis} {
		t.Run(name, func(t *testing.T) {
			content, err := Get(name)
			require.NoError(t, err)

			var v map[string]any
			require.NoError(t, json.Unmarshal([]byte(content), &v), "schema should be valid JSON")
			assert.Equal(t, "object", v["type"])
		})
	}
}

func TestGet_UnknownSchema(t *testing.T) {
	_, err := Get("nope")
	require.Error(t, err)

	var loadErr *SchemaLoadError
	require.True(t, errors.As(err, &loadErr))
	assert.Equal(t, "nope", loadErr.Path)
}

func TestValidateResponse_ResumeMatch(t *testing.T) {
	tests := []struct {
		name       string
		doc        string
		wantFields []string
	}{
		{
			name: "valid",
			doc:  `{"matchScore": 82, "strengths": ["a","b","c"], "gaps": ["d","e"], "summary": "x"}`,
		},
		{
			name:       "missing summary",
			doc:        `{"matchScore": 82, "strengths": [], "gaps": []}`,
			wantFields: []string{"summary"},
		},
		{
			name:       "score as string",
			doc:        `{"matchScore": "82", "strengths": [], "gaps": [], "summary": "x"}`,
			wantFields: []string{"matchScore"},
		},
		{
			name:       "fractional score",
			doc:        `{"matchScore": 82.5, "strengths": [], "gaps": [], "summary": "x"}`,
			wantFields: []string{"matchScore"},
		},
		{
			name:       "score out of range",
			doc:        `{"matchScore": 140, "strengths": [], "gaps": [], "summary": "x"}`,
			wantFields: []string{"matchScore"},
		},
		{
			name:       "strengths not strings",
			doc:        `{"matchScore": 10, "strengths": [1], "gaps": [], "summary": "x"}`,
			wantFields: []string{"strengths.0"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateResponse(ResumeMatch, tt.doc)
			if len(tt.wantFields) == 0 {
				assert.NoError(t, err)
				return
			}

			var validationErr *ValidationError
			require.True(t, errors.As(err, &validationErr), "want ValidationError, got %T: %v", err, err)
			assert.Equal(t, tt.wantFields, validationErr.Fields())
		})
	}
}

func TestValidateResponse_MarketAnalysisNestedRequired(t *testing.T) {
	doc := `{
		"salaryRange": "R$ 5.000 - R$ 7.000",
		"currency": "BRL",
		"marketOutlook": "High demand",
		"rareSkills": [{"name": "Figma"}, {"name": "Research", "description": "User interviews"}]
	}`

	err := ValidateResponse(MarketAnalysis, doc)

	var validationErr *ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.Equal(t, []string{"rareSkills.0.description"}, validationErr.Fields())
}

func TestValidateJSONString_Valid(t *testing.T) {
	schemaContent := `{
		"$schema": "http://json-schema.org/draft-07/schema#",
		"type": "object",
		"required": ["name"],
		"properties": {
			"name": {"type": "string"}
		}
	}`

	assert.NoError(t, ValidateJSONString(schemaContent, `{"name": "test"}`))
}

func TestValidateJSONString_MalformedDocument(t *testing.T) {
	err := ValidateJSONString(`{"type": "object"}`, `{"name": `)
	require.Error(t, err)

	var loadErr *SchemaLoadError
	assert.True(t, errors.As(err, &loadErr))
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{
		Errors: []FieldError{
			{Field: "summary", Message: "summary is required"},
			{Field: "matchScore", Message: "Invalid type. Expected: integer, given: string"},
			{Field: "summary", Message: "duplicate"},
		},
	}

	errorMsg := err.Error()
	assert.Contains(t, errorMsg, "validation failed")
	assert.Contains(t, errorMsg, "1. summary")
	assert.Contains(t, errorMsg, "2. matchScore")
	assert.Equal(t, []string{"matchScore", "summary"}, err.Fields())
}
