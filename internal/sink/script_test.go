package sink

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"utm-som/internal/observability"
	"utm-som/internal/utm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRecord() utm.Record {
	return utm.Record{
		Timestamp: time.Date(2026, 3, 1, 10, 30, 0, 0, time.UTC),
		User:      "La Vida es Maravillosa",
		Alias:     "Venta Oficial",
		BaseURL:   "entradas.jardin.com",
		City:      "Valencia",
		Channel:   "Redes sociales orgánicas",
		Source:    "instagram",
		Medium:    "social",
		Campaign:  "jardin_delicias_valencia_2026",
		FinalURL:  "https://entradas.jardin.com/?utm_source=instagram&utm_medium=social&utm_campaign=jardin_delicias_valencia_2026",
	}
}

func TestScriptSink_PostsRecord(t *testing.T) {
	var (
		gotMethod string
		gotType   string
		gotBody   map[string]string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotType = r.Header.Get("Content-Type")
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &gotBody)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}))
	defer srv.Close()

	s := NewScriptSink(srv.URL, time.Second, observability.NewNopLogger())
	err := s.Append(context.Background(), testRecord())

	require.NoError(t, err)
	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "application/json", gotType)
	assert.Equal(t, map[string]string{
		"timestamp":    "2026-03-01T10:30:00.000Z",
		"usuario":      "La Vida es Maravillosa",
		"alias":        "Venta Oficial",
		"url_base":     "entradas.jardin.com",
		"ciudad":       "Valencia",
		"canal":        "Redes sociales orgánicas",
		"utm_source":   "instagram",
		"utm_medium":   "social",
		"utm_campaign": "jardin_delicias_valencia_2026",
		"utm_content":  "",
		"url_final":    "https://entradas.jardin.com/?utm_source=instagram&utm_medium=social&utm_campaign=jardin_delicias_valencia_2026",
	}, gotBody)
}

func TestScriptSink_IgnoresResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"status":"error","message":"boom"}`))
	}))
	defer srv.Close()

	s := NewScriptSink(srv.URL, time.Second, observability.NewNopLogger())

	assert.NoError(t, s.Append(context.Background(), testRecord()))
}

func TestScriptSink_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	s := NewScriptSink(url, time.Second, observability.NewNopLogger())

	assert.Error(t, s.Append(context.Background(), testRecord()))
}

func TestScriptSink_EmptyEndpointIsNoop(t *testing.T) {
	s := NewScriptSink("", time.Second, observability.NewNopLogger())

	assert.NoError(t, s.Append(context.Background(), testRecord()))
}

func TestRecord_RoundTrip(t *testing.T) {
	record := testRecord()
	record.Content = "black_friday"

	raw, err := json.Marshal(record)
	require.NoError(t, err)

	var decoded utm.Record
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.True(t, record.Timestamp.Equal(decoded.Timestamp))
	decoded.Timestamp = record.Timestamp
	assert.Equal(t, record, decoded)
}
