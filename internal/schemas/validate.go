// Package schemas validates structured model replies against embedded JSON Schemas.
package schemas

import (
	"embed"
	"fmt"
	"sort"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed *.schema.json
var schemaFiles embed.FS

// Names of the embedded response schemas
const (
	ResumeMatch    = "resume_match"
	MarketAnalysis = "market_analysis"
)

// ValidationError represents a schema validation error with field paths
type ValidationError struct {
	Errors []FieldError
}

// FieldError represents a single validation error at a specific field
type FieldError struct {
	Field   string
	Message string
}

// SchemaLoadError represents errors loading or parsing the schema itself
type SchemaLoadError struct {
	Path    string
	Message string
	Cause   error
}

func (e *SchemaLoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to load schema %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to load schema %s: %s", e.Path, e.Message)
}

func (e *SchemaLoadError) Unwrap() error {
	return e.Cause
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("validation failed:\n")
	for i, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.Field, err.Message))
	}
	return sb.String()
}

// Fields returns the distinct field paths that failed, sorted.
func (ve *ValidationError) Fields() []string {
	seen := make(map[string]bool, len(ve.Errors))
	fields := make([]string, 0, len(ve.Errors))
	for _, err := range ve.Errors {
		if !seen[err.Field] {
			seen[err.Field] = true
			fields = append(fields, err.Field)
		}
	}
	sort.Strings(fields)
	return fields
}

// Get returns the content of an embedded schema by name (without the .schema.json suffix).
func Get(name string) (string, error) {
	data, err := schemaFiles.ReadFile(name + ".schema.json")
	if err != nil {
		return "", &SchemaLoadError{Path: name, Message: "schema not embedded", Cause: err}
	}
	return string(data), nil
}

// ValidateResponse validates JSON content against the named embedded schema.
func ValidateResponse(name, jsonContent string) error {
	schemaContent, err := Get(name)
	if err != nil {
		return err
	}
	return validate(name, schemaContent, jsonContent)
}

// ValidateJSONString validates JSON string content against schema string content
func ValidateJSONString(schemaContent, jsonContent string) error {
	return validate("(string schema)", schemaContent, jsonContent)
}

func validate(path, schemaContent, jsonContent string) error {
	schemaLoader := gojsonschema.NewStringLoader(schemaContent)
	documentLoader := gojsonschema.NewStringLoader(jsonContent)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return &SchemaLoadError{
			Path:    path,
			Message: "schema validation failed during load",
			Cause:   err,
		}
	}

	if result.Valid() {
		return nil
	}

	validationErr := &ValidationError{
		Errors: make([]FieldError, 0, len(result.Errors())),
	}

	for _, desc := range result.Errors() {
		validationErr.Errors = append(validationErr.Errors, FieldError{
			Field:   fieldPath(desc),
			Message: desc.Description(),
		})
	}

	return validationErr
}

// fieldPath names the offending field; a missing required key is reported
// under the key itself rather than under its parent object.
func fieldPath(desc gojsonschema.ResultError) string {
	field := desc.Field()
	if field == "" {
		field = "(root)"
	}
	if desc.Type() != "required" {
		return field
	}
	property, ok := desc.Details()["property"].(string)
	if !ok || property == "" {
		return field
	}
	if field == "(root)" {
		return property
	}
	return field + "." + property
}
