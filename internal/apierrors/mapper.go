package apierrors

import (
	"errors"

	"utm-som/internal/links/processor"
)

// MapError converts domain/processor errors to APIErrors.
//
// If the error is already an APIError, it returns it as-is.
// If the error is unknown, it returns a sanitized InternalError (500).
func MapError(err error) *APIError {
	if err == nil {
		return nil
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}

	switch {
	case errors.Is(err, processor.ErrUnknownChannel):
		return BadRequest(CodeUnknownChannel, "Unknown channel")

	case errors.Is(err, processor.ErrUnknownCity):
		return BadRequest(CodeUnknownCity, "Unknown city")

	case errors.Is(err, processor.ErrUnknownAlias):
		return BadRequest(CodeUnknownAlias, "Unknown alias")

	case errors.Is(err, processor.ErrUnknownUser):
		return BadRequest(CodeUnknownUser, "Unknown user")

	case errors.Is(err, processor.ErrUnknownSource):
		return BadRequest(CodeUnknownSource, "Source does not belong to the selected channel")

	case errors.Is(err, processor.ErrHistoryUnavailable):
		return NotFound(CodeHistoryUnavailable, "Link history is kept in the shared sheet")

	default:
		return InternalError(err)
	}
}
