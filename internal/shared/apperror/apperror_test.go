package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"bookshelf-api/pkg/token"
)

func TestNewDefaultsErrorCode(t *testing.T) {
	err := New("boom", http.StatusTeapot, "")
	assert.Equal(t, DefaultCode, err.ErrorCode)

	err = New("boom", http.StatusTeapot, "TEAPOT")
	assert.Equal(t, "TEAPOT", err.ErrorCode)
}

func TestStatusDerivation(t *testing.T) {
	assert.Equal(t, "fail", Validation("x").Status())
	assert.Equal(t, "fail", NotFound("x").Status())
	assert.Equal(t, "fail", Unauthorized("x").Status())
	assert.Equal(t, "error", Internal().Status())
	assert.Equal(t, "error", New("x", 503, "").Status())
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		name       string
		err        *Error
		statusCode int
		errorCode  string
	}{
		{"validation", Validation("Name is required!"), 400, "BAD REQUEST"},
		{"conflict", Conflict("Email has been taken"), 403, "FORBIDDEN"},
		{"not found", NotFound("Book Not Found!"), 404, "NOT FOUND"},
		{"unauthorized", Unauthorized("Invalid Credentials!"), 401, "UNAUTHORIZED"},
		{"token malformed", TokenMalformed(), 401, "INVALID TOKEN"},
		{"internal", Internal(), 500, "INTERNAL SERVER ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.statusCode, tt.err.StatusCode)
			assert.Equal(t, tt.errorCode, tt.err.ErrorCode)
		})
	}
}

func TestFromClassifiesTokenFailureFirst(t *testing.T) {
	wrapped := fmt.Errorf("%w: signature is invalid", token.ErrMalformed)

	classified := From(wrapped)
	assert.Equal(t, http.StatusUnauthorized, classified.StatusCode)
	assert.Equal(t, "INVALID TOKEN", classified.ErrorCode)
	// The message is fixed regardless of the underlying cause.
	assert.Equal(t, "Token is invalid! Please Login!", classified.Message)
}

func TestFromPassesTaggedErrorsThrough(t *testing.T) {
	tagged := NotFound("Book Not Found!")

	classified := From(fmt.Errorf("lookup: %w", tagged))
	assert.Same(t, tagged, classified)
}

func TestFromHidesUnexpectedFailures(t *testing.T) {
	classified := From(errors.New("pq: connection refused"))

	assert.Equal(t, http.StatusInternalServerError, classified.StatusCode)
	assert.Equal(t, "Internal Server Error", classified.Message)
	assert.NotContains(t, classified.Message, "connection refused")
}
