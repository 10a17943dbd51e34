package gateway

import (
	"fmt"
	"strings"

	"github.com/jonathan/recruiter-copilot/internal/schemas"
)

// TransportError means the call to the model endpoint could not complete
// (network, auth, quota or cancellation).
type TransportError struct {
	Operation Operation
	Cause     error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: model call failed: %v", e.Operation, e.Cause)
}

func (e *TransportError) Unwrap() error {
	return e.Cause
}

// EmptyResponseError means the call succeeded but the model returned no text.
type EmptyResponseError struct {
	Operation Operation
}

func (e *EmptyResponseError) Error() string {
	if e.Operation == "" {
		return "no response from model"
	}
	return fmt.Sprintf("%s: no response from model", e.Operation)
}

// SchemaViolationError means a structured reply was not JSON or did not match its schema.
type SchemaViolationError struct {
	Operation Operation
	Message   string
	Fields    []schemas.FieldError
	Cause     error
}

func (e *SchemaViolationError) Error() string {
	var sb strings.Builder
	if e.Operation != "" {
		sb.WriteString(string(e.Operation))
		sb.WriteString(": ")
	}
	sb.WriteString("schema violation: ")
	sb.WriteString(e.Message)
	if len(e.Fields) > 0 {
		names := make([]string, 0, len(e.Fields))
		for _, f := range e.Fields {
			names = append(names, f.Field)
		}
		sb.WriteString(" (")
		sb.WriteString(strings.Join(names, ", "))
		sb.WriteString(")")
	} else if e.Cause != nil {
		sb.WriteString(": ")
		sb.WriteString(e.Cause.Error())
	}
	return sb.String()
}

func (e *SchemaViolationError) Unwrap() error {
	return e.Cause
}
