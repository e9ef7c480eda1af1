package sink

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"utm-som/internal/observability"
	"utm-som/internal/utm"
)

// ScriptSink posts records to the sheet logger web app. The logger answers
// {"status":"ok"} or {"status":"error"} but the answer is not read: a request
// that went out without a transport error counts as delivered.
type ScriptSink struct {
	endpoint   string
	httpClient *http.Client
	logger     *observability.Logger
}

// NewScriptSink builds a sink for endpoint. With an empty endpoint Append is a
// silent no-op.
func NewScriptSink(endpoint string, timeout time.Duration, logger *observability.Logger) *ScriptSink {
	return &ScriptSink{
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

func (s *ScriptSink) Name() string { return "script" }

// Append sends the record as a single JSON POST.
func (s *ScriptSink) Append(ctx context.Context, record utm.Record) error {
	if s.endpoint == "" {
		return nil
	}

	body, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "utm-som/1.0")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send record: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 10240))

	if resp.StatusCode >= http.StatusBadRequest {
		ctx = observability.WithFields(ctx, observability.Field{Key: "response_status", Value: resp.StatusCode})
		s.logger.Warn(ctx, "sheet logger answered with an error status")
	}
	return nil
}
