// Package types provides the request and result records exchanged with the prompt gateway.
package types

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(fmt.Sprintf("failed to register notblank validation: %v", err))
	}
	// Report fields by their JSON names so errors match what callers sent
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// JobPostingRequest holds the fields for a generated job posting.
type JobPostingRequest struct {
	Title      string `json:"title" validate:"required,notblank"`
	Department string `json:"department" validate:"required,notblank"`
	Seniority  string `json:"seniority" validate:"required,notblank"`
	Skills     string `json:"skills" validate:"required,notblank"`
	Tone       string `json:"tone" validate:"required,notblank"`
}

// ResumeMatchRequest holds a resume and the job description it is compared against.
type ResumeMatchRequest struct {
	JobDescription string `json:"jobDescription" validate:"required,notblank"`
	ResumeText     string `json:"resumeText" validate:"required,notblank"`
}

// InterviewScriptRequest holds the role for an interview script. Skills may be empty.
type InterviewScriptRequest struct {
	Title  string `json:"title" validate:"required,notblank"`
	Skills string `json:"skills"`
}

// MarketAnalysisRequest holds the role for a salary and skills estimate.
type MarketAnalysisRequest struct {
	Title     string `json:"title" validate:"required,notblank"`
	Seniority string `json:"seniority" validate:"required,notblank"`
}

// Validate validates the JobPostingRequest using the validator.
func (r *JobPostingRequest) Validate() error {
	return validateStruct(r)
}

// Validate validates the ResumeMatchRequest using the validator.
func (r *ResumeMatchRequest) Validate() error {
	return validateStruct(r)
}

// Validate validates the InterviewScriptRequest using the validator.
func (r *InterviewScriptRequest) Validate() error {
	return validateStruct(r)
}

// Validate validates the MarketAnalysisRequest using the validator.
func (r *MarketAnalysisRequest) Validate() error {
	return validateStruct(r)
}

// RequestError lists the request fields that failed validation.
type RequestError struct {
	Fields []string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("missing required fields: %s", strings.Join(e.Fields, ", "))
}

func validateStruct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	reqErr := &RequestError{Fields: make([]string, 0, len(fieldErrs))}
	for _, fe := range fieldErrs {
		reqErr.Fields = append(reqErr.Fields, fe.Field())
	}
	return reqErr
}
