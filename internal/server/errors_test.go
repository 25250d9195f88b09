package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"

	"github.com/jonathan/careerview/internal/careers"
	"github.com/jonathan/careerview/internal/extraction"
	"github.com/jonathan/careerview/internal/llm"
)

func TestErrValidation(t *testing.T) {
	err := &ErrValidation{Field: "message", Message: "required"}
	assert.Equal(t, "validation error: message - required", err.Error())
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(err))
}

func TestErrBadRequest(t *testing.T) {
	inner := errors.New("unexpected EOF")
	err := &ErrBadRequest{Err: inner}
	assert.Equal(t, "invalid request body: unexpected EOF", err.Error())
	assert.ErrorIs(t, err, inner)
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(err))
}

func TestHTTPStatus(t *testing.T) {
	_, formatErr := extraction.FormatFromContentType("text/plain")

	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"service validation", &careers.ErrValidation{Field: "user_id", Message: "is required"}, http.StatusBadRequest},
		{"file too large", &careers.ErrFileTooLarge{Size: 11 << 20, Limit: 10 << 20}, http.StatusBadRequest},
		{"max bytes", &http.MaxBytesError{Limit: 10}, http.StatusBadRequest},
		{"unsupported format", formatErr, http.StatusBadRequest},
		{"no resume", &careers.ErrNoResume{}, http.StatusNotFound},
		{"not found", &careers.ErrNotFound{Kind: "Persona", ID: "nurse"}, http.StatusNotFound},
		{"wrapped not found", fmt.Errorf("lookup: %w", &careers.ErrNotFound{Kind: "Persona", ID: "x"}), http.StatusNotFound},
		{"llm not configured", llm.ErrNotConfigured, http.StatusServiceUnavailable},
		{"deadline", context.DeadlineExceeded, http.StatusGatewayTimeout},
		{"storage", &careers.ErrStorage{Op: "save persona"}, http.StatusInternalServerError},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, HTTPStatus(tt.err))
		})
	}
}

func TestValidationError(t *testing.T) {
	type payload struct {
		Message string `validate:"required"`
	}
	err := validationError(validator.New().Struct(payload{}))

	var ve *ErrValidation
	assert.ErrorAs(t, err, &ve)
	assert.Equal(t, "Message", ve.Field)
	assert.Equal(t, "required", ve.Message)
}
