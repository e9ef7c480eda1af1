package apierrors

import "net/http"

// Error codes returned to API clients
const (
	CodeInvalidInput       = "INVALID_INPUT"
	CodeUnknownChannel     = "UNKNOWN_CHANNEL"
	CodeUnknownCity        = "UNKNOWN_CITY"
	CodeUnknownAlias       = "UNKNOWN_ALIAS"
	CodeUnknownUser        = "UNKNOWN_USER"
	CodeUnknownSource      = "UNKNOWN_SOURCE"
	CodeHistoryUnavailable = "HISTORY_UNAVAILABLE"
	CodeInternalError      = "INTERNAL_ERROR"
)

// APIError is an error that already knows how it is rendered to clients.
// Err keeps the internal cause for logging and is never serialized.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
	Err        error
}

func (e *APIError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// BadRequest builds a 400 error
func BadRequest(code, message string) *APIError {
	return &APIError{StatusCode: http.StatusBadRequest, Code: code, Message: message}
}

// NotFound builds a 404 error
func NotFound(code, message string) *APIError {
	return &APIError{StatusCode: http.StatusNotFound, Code: code, Message: message}
}

// InternalError builds a sanitized 500 error - never exposes internal details
func InternalError(err error) *APIError {
	return &APIError{
		StatusCode: http.StatusInternalServerError,
		Code:       CodeInternalError,
		Message:    "An internal error occurred. Please try again later.",
		Err:        err,
	}
}
