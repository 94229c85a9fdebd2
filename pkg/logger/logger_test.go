package logger_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/receituario-api/pkg/logger"
)

func TestNew_JSONConServicioYComponente(t *testing.T) {
	var buf bytes.Buffer
	l := logger.New(logger.Config{Env: "production", Level: "debug", Service: "receituario-api", Out: &buf})

	sub := l.Component("signature")
	sub.Info().Str("document_id", "d1").Msg("firma solicitada")

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "receituario-api", line["service"])
	assert.Equal(t, "signature", line["component"])
	assert.Equal(t, "d1", line["document_id"])
	assert.Equal(t, "info", line["level"])
}

func TestNew_NivelFiltra(t *testing.T) {
	var buf bytes.Buffer
	l := logger.New(logger.Config{Env: "production", Level: "warn", Out: &buf})

	l.Info().Msg("no debe aparecer")
	assert.Empty(t, buf.String())

	l.Warn().Msg("sí aparece")
	assert.Contains(t, buf.String(), "sí aparece")
}
