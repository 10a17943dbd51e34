package gateway

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/jonathan/recruiter-copilot/internal/llm"
	"github.com/jonathan/recruiter-copilot/internal/schemas"
	"github.com/jonathan/recruiter-copilot/internal/types"
)

// ParseResumeMatch validates a raw model reply and decodes it into a ResumeMatchResult.
// It never returns a partially populated result.
func ParseResumeMatch(raw string) (*types.ResumeMatchResult, error) {
	var result types.ResumeMatchResult
	if err := parseStructured(OpResumeMatch, schemas.ResumeMatch, raw, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ParseMarketAnalysis validates a raw model reply and decodes it into a MarketAnalysisResult.
// It never returns a partially populated result.
func ParseMarketAnalysis(raw string) (*types.MarketAnalysisResult, error) {
	var result types.MarketAnalysisResult
	if err := parseStructured(OpMarketAnalysis, schemas.MarketAnalysis, raw, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func parseStructured(op Operation, schemaName, raw string, out any) error {
	text := llm.CleanJSONBlock(raw)
	if strings.TrimSpace(text) == "" {
		return &EmptyResponseError{Operation: op}
	}

	if !json.Valid([]byte(text)) {
		return &SchemaViolationError{Operation: op, Message: "response is not valid JSON"}
	}

	if err := schemas.ValidateResponse(schemaName, text); err != nil {
		var validationErr *schemas.ValidationError
		if errors.As(err, &validationErr) {
			return &SchemaViolationError{
				Operation: op,
				Message:   "response does not match schema",
				Fields:    validationErr.Errors,
				Cause:     err,
			}
		}
		return &SchemaViolationError{Operation: op, Message: "response could not be validated", Cause: err}
	}

	if err := json.Unmarshal([]byte(text), out); err != nil {
		return &SchemaViolationError{Operation: op, Message: "failed to decode response", Cause: err}
	}
	return nil
}
