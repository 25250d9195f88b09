// Package server provides the HTTP REST API for careerview.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/careerview/internal/careers"
	"github.com/jonathan/careerview/internal/extraction"
	"github.com/jonathan/careerview/internal/llm"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrBadRequest indicates a body or form that could not be decoded
type ErrBadRequest struct {
	Err error
}

func (e *ErrBadRequest) Error() string {
	return fmt.Sprintf("invalid request body: %v", e.Err)
}

func (e *ErrBadRequest) Unwrap() error { return e.Err }

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		validation    *ErrValidation
		badRequest    *ErrBadRequest
		svcValidation *careers.ErrValidation
		tooLarge      *careers.ErrFileTooLarge
		noResume      *careers.ErrNoResume
		notFound      *careers.ErrNotFound
		maxBytes      *http.MaxBytesError
	)
	switch {
	case errors.As(err, &validation), errors.As(err, &badRequest),
		errors.As(err, &svcValidation), errors.As(err, &tooLarge),
		errors.As(err, &maxBytes), errors.Is(err, extraction.ErrUnsupportedFormat):
		return http.StatusBadRequest
	case errors.As(err, &noResume), errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.Is(err, llm.ErrNotConfigured):
		return http.StatusServiceUnavailable
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// validationError turns validator errors into an ErrValidation for the first
// failing field.
func validationError(err error) error {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
		ve := validationErrors[0]
		return &ErrValidation{Field: ve.Field(), Message: ve.Tag()}
	}
	return &ErrValidation{Field: "request", Message: "invalid request"}
}
