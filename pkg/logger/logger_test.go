package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_JSONConCampos(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Env: "production", Level: "info", Service: "production-portal", Out: &buf})

	log.Component("mrp").Info().Str("run_id", "abc").Msg("corrida iniciada")
	log.Debug().Msg("no se escribe")

	var event map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &event))
	assert.Equal(t, "production-portal", event["service"])
	assert.Equal(t, "mrp", event["component"])
	assert.Equal(t, "abc", event["run_id"])
	assert.Equal(t, "info", event["level"])
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, "debug", parseLevel("debug").String())
	assert.Equal(t, "info", parseLevel("desconocido").String())
}
