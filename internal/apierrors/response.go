package apierrors

import (
	"errors"

	"utm-som/internal/observability"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// Package-level logger that uses context for observability
var logger = observability.NewLogger()

// ErrorResponse is the JSON structure returned to API clients for errors
type ErrorResponse struct {
	Error string `json:"error"`          // User-friendly error message
	Code  string `json:"code,omitempty"` // Machine-readable error code
}

// RespondWithError logs and sends a sanitized JSON response to the client.
//
//	if err != nil {
//	    apierrors.RespondWithError(c, err)
//	    return
//	}
func RespondWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	ctx := c.Request.Context()
	apiErr := MapError(err)

	if apiErr.Err != nil {
		logger.Error(ctx, "request failed", apiErr.Err)
	}

	ctx = observability.WithFields(ctx,
		observability.Field{Key: "status_code", Value: apiErr.StatusCode},
		observability.Field{Key: "error_code", Value: apiErr.Code},
		observability.Field{Key: "error_message", Value: apiErr.Message},
	)
	logger.Info(ctx, "API error response")

	c.JSON(apiErr.StatusCode, ErrorResponse{
		Error: apiErr.Message,
		Code:  apiErr.Code,
	})
}

// RespondWithValidationError handles Gin binding errors. Validator errors get
// a field by field message, anything else is reported as malformed JSON.
func RespondWithValidationError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	ctx := c.Request.Context()

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		apiErr := ValidationError(validationErrs)
		logger.Error(ctx, "Validation failed", err)

		c.JSON(apiErr.StatusCode, ErrorResponse{
			Error: apiErr.Message,
			Code:  apiErr.Code,
		})
		return
	}

	logger.Error(ctx, "Request binding failed", err)
	c.JSON(400, ErrorResponse{
		Error: "Invalid request format. Please check your JSON syntax.",
		Code:  CodeInvalidInput,
	})
}
