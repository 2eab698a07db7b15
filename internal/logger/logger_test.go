package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithContext_AddsFields(t *testing.T) {
	var buf bytes.Buffer
	prev := Default()
	SetDefault(New(&buf, "debug"))
	t.Cleanup(func() { SetDefault(prev) })

	ctx := WithService(WithRequestID(context.Background(), "req-1"), "api")
	DebugContext(ctx, "reserve", "seat", "12A")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "reserve", entry["msg"])
	assert.Equal(t, "req-1", entry["request_id"])
	assert.Equal(t, "api", entry["service"])
	assert.Equal(t, "12A", entry["seat"])
}

func TestNew_InfoLevelDropsDebug(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "")
	l.Debug("hidden")
	assert.Zero(t, buf.Len())
}
