package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lastLine(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	t.Helper()
	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(lines[len(lines)-1], &out))
	return out
}

func TestNew_ServicioYNivel(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Env: "production", Level: "warn", Service: "Taller API", Out: &buf})

	l.Info().Msg("oculto")
	assert.Zero(t, buf.Len())

	l.Warn().Msg("visible")
	line := lastLine(t, &buf)
	assert.Equal(t, "Taller API", line["service"])
	assert.Equal(t, "warn", line["level"])
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, parseLevel(" DEBUG "))
	assert.Equal(t, zerolog.InfoLevel, parseLevel(""))
	assert.Equal(t, zerolog.InfoLevel, parseLevel("ruidoso"))
}

func TestRequest_ViajaEnElContexto(t *testing.T) {
	var buf bytes.Buffer
	root := New(Config{Out: &buf})

	ctx := root.Request("req-42").WithContext(context.Background())
	FromContext(ctx, root).Info().Msg("cotización creada")
	assert.Equal(t, "req-42", lastLine(t, &buf)["request_id"])

	FromContext(context.Background(), root).Info().Msg("sin petición")
	_, ok := lastLine(t, &buf)["request_id"]
	assert.False(t, ok)

	assert.Same(t, root, root.Request(""))
	assert.NotNil(t, FromContext(context.Background(), nil))
}
