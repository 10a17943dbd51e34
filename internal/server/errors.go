// Package server provides the HTTP REST API for the recruiting assistant.
package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/recruiter-copilot/internal/gateway"
	"github.com/jonathan/recruiter-copilot/internal/ingestion"
	"github.com/jonathan/recruiter-copilot/internal/types"
)

// ErrValidation indicates a malformed request body or form field
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("validation error: %s", e.Message)
	}
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		validationErr  *ErrValidation
		requestErr     *types.RequestError
		unsupportedErr *ingestion.UnsupportedFormatError
		transportErr   *gateway.TransportError
		emptyErr       *gateway.EmptyResponseError
		schemaErr      *gateway.SchemaViolationError
	)

	switch {
	case errors.As(err, &validationErr), errors.As(err, &requestErr):
		return http.StatusBadRequest
	case errors.As(err, &unsupportedErr):
		return http.StatusUnsupportedMediaType
	case errors.As(err, &transportErr), errors.As(err, &emptyErr), errors.As(err, &schemaErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
