package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/deppfellow/employees/internal/config"
	"github.com/jackc/pgx/v5/tracelog"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestNewLogger_JSON(t *testing.T) {
	cfg := config.DefaultObservabilityConfig()
	cfg.Environment = "production"
	cfg.Logging.Level = "warn"

	var buf bytes.Buffer
	log := newLogger(cfg, nil, &buf)

	log.Info().Msg("dropped")
	require.Zero(t, buf.Len())

	log.Warn().Str("employee_id", "7").Msg("kept")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "kept", entry["message"])
	require.Equal(t, "warn", entry["level"])
	require.Equal(t, config.ServiceName, entry["service"])
	require.Equal(t, "production", entry["environment"])
	require.Equal(t, "7", entry["employee_id"])
}

func TestNewLogger_InvalidLevelFallsBackToInfo(t *testing.T) {
	cfg := config.DefaultObservabilityConfig()
	cfg.Logging.Level = "loud"

	var buf bytes.Buffer
	log := newLogger(cfg, nil, &buf)
	require.Equal(t, zerolog.InfoLevel, log.GetLevel())
}

func TestLoggerService_Disabled(t *testing.T) {
	service, err := NewLoggerService(config.DefaultObservabilityConfig())
	require.NoError(t, err)
	require.Nil(t, service.GetApplication())

	var nilService *LoggerService
	require.Nil(t, nilService.GetApplication())
	nilService.Shutdown()
}

func TestGetPgxTraceLogLevel(t *testing.T) {
	require.Equal(t, int(tracelog.LogLevelDebug), GetPgxTraceLogLevel(zerolog.DebugLevel))
	require.Equal(t, int(tracelog.LogLevelInfo), GetPgxTraceLogLevel(zerolog.InfoLevel))
	require.Equal(t, int(tracelog.LogLevelWarn), GetPgxTraceLogLevel(zerolog.WarnLevel))
	require.Equal(t, int(tracelog.LogLevelError), GetPgxTraceLogLevel(zerolog.ErrorLevel))
	require.Equal(t, int(tracelog.LogLevelNone), GetPgxTraceLogLevel(zerolog.Disabled))
}

func TestWithTraceContext_NilTransaction(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf)

	traced := WithTraceContext(log, nil)
	traced.Info().Msg("no trace")
	require.NotContains(t, buf.String(), "trace.id")
}
