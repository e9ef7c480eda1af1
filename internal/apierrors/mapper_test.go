package apierrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"utm-som/internal/links/processor"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"unknown channel", fmt.Errorf("%w: %q", processor.ErrUnknownChannel, "x"), http.StatusBadRequest, CodeUnknownChannel},
		{"unknown city", processor.ErrUnknownCity, http.StatusBadRequest, CodeUnknownCity},
		{"unknown alias", processor.ErrUnknownAlias, http.StatusBadRequest, CodeUnknownAlias},
		{"unknown user", processor.ErrUnknownUser, http.StatusBadRequest, CodeUnknownUser},
		{"unknown source", processor.ErrUnknownSource, http.StatusBadRequest, CodeUnknownSource},
		{"no history", processor.ErrHistoryUnavailable, http.StatusNotFound, CodeHistoryUnavailable},
		{"api error passes through", BadRequest(CodeInvalidInput, "bad"), http.StatusBadRequest, CodeInvalidInput},
		{"anything else", errors.New("pq: connection reset"), http.StatusInternalServerError, CodeInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapError(tt.err)
			if got.StatusCode != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, got.StatusCode)
			}
			if got.Code != tt.wantCode {
				t.Errorf("expected code %s, got %s", tt.wantCode, got.Code)
			}
		})
	}
}

func TestMapError_InternalIsSanitized(t *testing.T) {
	got := MapError(errors.New("dial tcp 10.0.0.3:5432: connection refused"))
	if got.Message != "An internal error occurred. Please try again later." {
		t.Errorf("internal details leaked: %q", got.Message)
	}
	if MapError(nil) != nil {
		t.Error("expected nil for nil error")
	}
}
