package apperror

import (
	"errors"
	"net/http"

	"bookshelf-api/pkg/token"
)

// DefaultCode is used when a caller constructs an error without naming a
// machine code.
const DefaultCode = "INTERNAL SERVER ERROR"

// Error is the single tagged error type the whole application raises.
// Every failure that reaches the HTTP boundary is either one of these or
// gets replaced by a generic internal one.
type Error struct {
	Message    string
	StatusCode int
	ErrorCode  string
}

func (e *Error) Error() string {
	return e.Message
}

// Status derives the fail/error class from the status code. It is never
// supplied by callers.
func (e *Error) Status() string {
	if e.StatusCode >= http.StatusInternalServerError {
		return "error"
	}
	return "fail"
}

// New builds a tagged error. An empty errorCode falls back to DefaultCode.
func New(message string, statusCode int, errorCode string) *Error {
	if errorCode == "" {
		errorCode = DefaultCode
	}
	return &Error{
		Message:    message,
		StatusCode: statusCode,
		ErrorCode:  errorCode,
	}
}

// Validation is a 400 with a field-specific message.
func Validation(message string) *Error {
	return New(message, http.StatusBadRequest, "BAD REQUEST")
}

// Conflict is a 403 raised for duplicate resources.
func Conflict(message string) *Error {
	return New(message, http.StatusForbidden, "FORBIDDEN")
}

// NotFound is a 404 with a resource-specific message.
func NotFound(message string) *Error {
	return New(message, http.StatusNotFound, "NOT FOUND")
}

// Unauthorized is a 401 for bad credentials or a bad bearer header.
func Unauthorized(message string) *Error {
	return New(message, http.StatusUnauthorized, "UNAUTHORIZED")
}

// TokenMalformed is the fixed 401 for tokens that fail verification. The
// message never varies with the underlying cause.
func TokenMalformed() *Error {
	return New("Token is invalid! Please Login!", http.StatusUnauthorized, "INVALID TOKEN")
}

// Internal is the generic 500. The original cause is logged server-side
// and never reaches the client.
func Internal() *Error {
	return New("Internal Server Error", http.StatusInternalServerError, DefaultCode)
}

// From classifies any failure into the closed taxonomy. First match wins:
// a token verification failure beats a tagged error, a tagged error beats
// the generic internal fallback.
func From(err error) *Error {
	if errors.Is(err, token.ErrMalformed) {
		return TokenMalformed()
	}

	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}

	return Internal()
}
