package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
		code     string
	}{
		{"not found", NewNotFoundError("alert", "a1"), http.StatusNotFound, "NOT_FOUND"},
		{"validation", NewValidationError("email", "required"), http.StatusBadRequest, "VALIDATION_ERROR"},
		{"unauthorized", NewUnauthorizedError("missing token"), http.StatusUnauthorized, "UNAUTHORIZED"},
		{"upstream", NewUpstreamError("run query", 500, "boom"), http.StatusBadGateway, "UPSTREAM_ERROR"},
		{"upstream not found", NewUpstreamError("get query", 404, "missing"), http.StatusNotFound, "UPSTREAM_ERROR"},
		{"internal", NewInternalError("db", fmt.Errorf("closed")), http.StatusInternalServerError, "INTERNAL_ERROR"},
		{"wrapped", fmt.Errorf("load: %w", NewNotFoundError("alert", "a1")), http.StatusNotFound, "NOT_FOUND"},
		{"plain", fmt.Errorf("plain"), http.StatusInternalServerError, "UNKNOWN_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetHTTPStatus(tt.err))
			assert.Equal(t, tt.code, ToResponse(tt.err).Code)
		})
	}
}

func TestIsHelpers(t *testing.T) {
	wrapped := fmt.Errorf("outer: %w", NewValidationError("", "bad"))
	assert.True(t, IsValidation(wrapped))
	assert.False(t, IsNotFound(wrapped))
	assert.True(t, IsUpstream(NewUpstreamError("x", 0, "y")))
	assert.True(t, IsUnauthorized(NewUnauthorizedError("")))
	assert.Equal(t, "alert 'a1' not found", NewNotFoundError("alert", "a1").Error())
	assert.Equal(t, "validation error: bad", NewValidationError("", "bad").Error())
}
