package instrument

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()

	var out map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	return out
}

func TestNewLogger_MasksSensitiveFields(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(&buf, Config{ServiceName: "dinebite", MaskFields: []string{"otp", " New_Password "}}, nil)

	ctx := SetCorrelationID(context.Background(), "cid-1")
	log.InfoContext(ctx, "reset requested",
		"email", "ana@example.com",
		"otp", "482913",
		"body", `{"email":"ana@example.com","new_password":"secret123","nested":[{"otp":"1"}]}`,
		slog.Group("req", slog.String("otp", "482913")),
		"headers", map[string]string{"new_password": "x", "accept": "json"},
	)

	line := decodeLine(t, &buf)
	assert.Equal(t, "INFO", line["severity"])
	assert.Equal(t, "cid-1", line["_cID"])
	assert.Equal(t, "dinebite", line["service"])
	assert.Equal(t, "ana@example.com", line["email"])
	assert.Equal(t, "***", line["otp"])
	assert.Equal(t, map[string]any{"otp": "***"}, line["req"])
	assert.Equal(t, map[string]any{"new_password": "***", "accept": "json"}, line["headers"])
	assert.Contains(t, line, "ts")
	assert.Contains(t, line["file"], "internal/pkg/instrument/logging_test.go:")

	var body map[string]any
	require.NoError(t, json.Unmarshal([]byte(line["body"].(string)), &body))
	assert.Equal(t, "***", body["new_password"])
	assert.Equal(t, []any{map[string]any{"otp": "***"}}, body["nested"])
}

func TestNewLogger_Level(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(&buf, Config{LogLevel: "warn"}, nil)

	log.Info("dropped")
	assert.Zero(t, buf.Len())

	log.Warn("kept")
	assert.Equal(t, "kept", decodeLine(t, &buf)["msg"])
}

func TestCorrelationID(t *testing.T) {
	assert.Empty(t, GetCorrelationID(context.Background()))
	assert.Equal(t, "abc", GetCorrelationID(SetCorrelationID(context.Background(), "abc")))
}

func TestNewNoop(t *testing.T) {
	ins := NewNoop()
	_, span := ins.Tracer("t").Start(context.Background(), "op")
	span.End()
	assert.NoError(t, ins.Shutdown(context.Background()))
}
