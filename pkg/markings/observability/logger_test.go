package observability

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randalmurphal/markings/pkg/markings"
)

// testHandler captures log records as JSON lines.
type testHandler struct {
	buf   *bytes.Buffer
	attrs []slog.Attr
}

func newTestHandler() *testHandler {
	return &testHandler{buf: &bytes.Buffer{}}
}

func (h *testHandler) Enabled(_ context.Context, _ slog.Level) bool { return true }

func (h *testHandler) Handle(_ context.Context, r slog.Record) error {
	data := map[string]any{
		"level": r.Level.String(),
		"msg":   r.Message,
	}
	for _, attr := range h.attrs {
		data[attr.Key] = attr.Value.Any()
	}
	r.Attrs(func(a slog.Attr) bool {
		data[a.Key] = a.Value.Any()
		return true
	})
	return json.NewEncoder(h.buf).Encode(data)
}

func (h *testHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	merged = append(merged, h.attrs...)
	merged = append(merged, attrs...)
	return &testHandler{buf: h.buf, attrs: merged}
}

func (h *testHandler) WithGroup(_ string) slog.Handler { return h }

func (h *testHandler) lastRecord() map[string]any {
	lines := bytes.Split(bytes.TrimSpace(h.buf.Bytes()), []byte("\n"))
	if len(lines) == 0 || len(lines[len(lines)-1]) == 0 {
		return nil
	}
	var m map[string]any
	if err := json.Unmarshal(lines[len(lines)-1], &m); err != nil {
		return nil
	}
	return m
}

func TestEnrichLogger(t *testing.T) {
	t.Run("adds template_id and source", func(t *testing.T) {
		h := newTestHandler()
		enriched := EnrichLogger(slog.New(h), "tmpl-1", "catalog")
		enriched.Info("test message")

		record := h.lastRecord()
		require.NotNil(t, record)
		assert.Equal(t, "tmpl-1", record["template_id"])
		assert.Equal(t, "catalog", record["source"])
	})

	t.Run("nil logger returns nil", func(t *testing.T) {
		assert.Nil(t, EnrichLogger(nil, "x", "inline"))
	})
}

func TestLogParse(t *testing.T) {
	h := newTestHandler()
	LogParse(slog.New(h), 3, 1.5)

	record := h.lastRecord()
	require.NotNil(t, record)
	assert.Equal(t, "DEBUG", record["level"])
	assert.Equal(t, "template parsed", record["msg"])
	assert.Equal(t, float64(3), record["keys"])
	assert.Equal(t, 1.5, record["duration_ms"])
}

func TestLogParseError(t *testing.T) {
	h := newTestHandler()
	LogParseError(slog.New(h), &markings.NestedMarkerError{Pos: 2})

	record := h.lastRecord()
	require.NotNil(t, record)
	assert.Equal(t, "WARN", record["level"])
	assert.Equal(t, "malformed", record["kind"])
	assert.Equal(t, "nested template starting at offset 2", record["error"])
}

func TestLogApply(t *testing.T) {
	h := newTestHandler()
	LogApply(slog.New(h), 2, 40, 0.25)

	record := h.lastRecord()
	require.NotNil(t, record)
	assert.Equal(t, "template applied", record["msg"])
	assert.Equal(t, float64(2), record["args"])
	assert.Equal(t, float64(40), record["output_bytes"])
}

func TestLogApplyError(t *testing.T) {
	h := newTestHandler()
	LogApplyError(slog.New(h), &markings.UnmatchedArgumentError{Key: "x"})

	record := h.lastRecord()
	require.NotNil(t, record)
	assert.Equal(t, "unmatched_argument", record["kind"])
}

func TestLogCatalogError(t *testing.T) {
	h := newTestHandler()
	LogCatalogError(slog.New(h), "put", "greeting", errors.New("disk full"))

	record := h.lastRecord()
	require.NotNil(t, record)
	assert.Equal(t, "ERROR", record["level"])
	assert.Equal(t, "put", record["operation"])
	assert.Equal(t, "greeting", record["name"])
	assert.Equal(t, "disk full", record["error"])
}

// TestLogHelpers_NilLogger verifies every helper tolerates a nil logger.
func TestLogHelpers_NilLogger(t *testing.T) {
	assert.NotPanics(t, func() {
		LogParse(nil, 1, 1)
		LogParseError(nil, errors.New("x"))
		LogApply(nil, 1, 1, 1)
		LogApplyError(nil, errors.New("x"))
		LogCatalogError(nil, "get", "n", errors.New("x"))
	})
}

func TestTimedOperation(t *testing.T) {
	done := TimedOperation()
	time.Sleep(5 * time.Millisecond)
	assert.GreaterOrEqual(t, done(), 5*time.Millisecond)
	assert.Equal(t, 1.5, Milliseconds(1500*time.Microsecond))
}
