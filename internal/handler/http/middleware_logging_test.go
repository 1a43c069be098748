package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/MKhiriev/go-brainstorm/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLoggingHandler(buf *bytes.Buffer) *Handler {
	return &Handler{logger: logger.New(buf, "test")}
}

func lastLogLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.NotEmpty(t, lines)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[len(lines)-1]), &entry))
	return entry
}

func TestWithLogging_WritesAccessEntry(t *testing.T) {
	var buf bytes.Buffer
	h := newLoggingHandler(&buf)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
		_, _ = w.Write([]byte("12345"))
	})

	req := httptest.NewRequest(http.MethodPost, "/api/usage", nil)
	rec := httptest.NewRecorder()
	h.withTraceID(h.withLogging(next)).ServeHTTP(rec, req)

	entry := lastLogLine(t, &buf)
	assert.Equal(t, "request handled", entry["message"])
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "POST", entry["method"])
	assert.Equal(t, "/api/usage", entry["uri"])
	assert.EqualValues(t, http.StatusAccepted, entry["status"])
	assert.EqualValues(t, 5, entry["size"])
	assert.Equal(t, rec.Header().Get(traceIDHeader), entry["trace_id"])
}

func TestWithLogging_ServerErrorsAtErrorLevel(t *testing.T) {
	var buf bytes.Buffer
	h := newLoggingHandler(&buf)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	h.withTraceID(h.withLogging(next)).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/api/ai/chat", nil))

	entry := lastLogLine(t, &buf)
	assert.Equal(t, "error", entry["level"])
	assert.EqualValues(t, http.StatusBadGateway, entry["status"])
}
