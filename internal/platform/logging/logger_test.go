package logging

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()

	var out map[string]any
	require.NoError(t, sonic.Unmarshal(bytes.TrimSpace(buf.Bytes()), &out))
	return out
}

func TestLogger_KeyValueFields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONWriter(LevelInfo, &buf)

	logger.Info("standings recomputed", "season_id", 3, "rows", 18, "error", errors.New("boom"))
	require.NoError(t, logger.Sync())

	line := decodeLine(t, &buf)
	assert.Equal(t, "standings recomputed", line["msg"])
	assert.Equal(t, "INFO", line["level"])
	assert.EqualValues(t, 3, line["season_id"])
	assert.EqualValues(t, 18, line["rows"])
	assert.Equal(t, "boom", line["error"])
}

func TestLogger_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONWriter(LevelWarn, &buf)

	logger.Info("hidden")
	logger.Debug("hidden")

	assert.Zero(t, buf.Len())
}

func TestLogger_ContextRequestID(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONWriter(LevelInfo, &buf)

	ctx := WithRequestID(context.Background(), "req-1")
	logger.WarnContext(ctx, "request failed", "status", 404)

	line := decodeLine(t, &buf)
	assert.Equal(t, "req-1", line["request_id"])
	assert.NotContains(t, line, "trace_id")
}

func TestLogger_OddArgs(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONWriter(LevelInfo, &buf)

	logger.With("component", "coordinator").Info("dangling", "key")

	line := decodeLine(t, &buf)
	assert.Equal(t, "coordinator", line["component"])
	assert.Contains(t, line, "key")
}

func TestDefault_NilSafe(t *testing.T) {
	SetDefault(nil)

	var logger *Logger
	logger.Info("no panic")
	assert.NotNil(t, Default())
}
