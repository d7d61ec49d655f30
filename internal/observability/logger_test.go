package observability

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/boxsim/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestInitialize_Console(t *testing.T) {
	ResetForTest()
	defer ResetForTest()

	var buf bytes.Buffer
	Initialize(config.LoggerConfig{Level: "debug", Format: "console", ServiceName: "test"}, zapcore.AddSync(&buf))

	GetLogger().Debug("run started", zap.Int("particles", 3))
	Sync()

	out := buf.String()
	assert.Contains(t, out, "DEBUG")
	assert.Contains(t, out, "test.")
	assert.Contains(t, out, "run started")
	assert.Contains(t, out, `"particles": 3`)
}

func TestInitialize_JSON(t *testing.T) {
	ResetForTest()
	defer ResetForTest()

	var buf bytes.Buffer
	Initialize(config.LoggerConfig{Level: "info", Format: "json"}, zapcore.AddSync(&buf))

	GetLogger().Info("run finished", zap.String("reason", "expired"))
	Sync()

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "INFO", entry["level"])
	assert.Equal(t, "boxsim", entry["logger"])
	assert.Equal(t, "expired", entry["reason"])
}

func TestInitialize_LevelFilter(t *testing.T) {
	ResetForTest()
	defer ResetForTest()

	var buf bytes.Buffer
	Initialize(config.LoggerConfig{Level: "warn", Format: "json"}, zapcore.AddSync(&buf))

	GetLogger().Info("hidden")
	GetLogger().Warn("shown")
	Sync()

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestInitialize_BadLevelFallsBackToInfo(t *testing.T) {
	ResetForTest()
	defer ResetForTest()

	var buf bytes.Buffer
	Initialize(config.LoggerConfig{Level: "loud", Format: "json"}, zapcore.AddSync(&buf))

	GetLogger().Debug("hidden")
	GetLogger().Info("shown")
	Sync()

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestInitialize_File(t *testing.T) {
	ResetForTest()
	defer ResetForTest()

	path := filepath.Join(t.TempDir(), "boxsim.log")
	var buf bytes.Buffer
	Initialize(config.LoggerConfig{Level: "info", Format: "console", File: path, MaxSize: 1}, zapcore.AddSync(&buf))

	GetLogger().Info("to file")
	Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	line := strings.TrimSpace(string(data))
	assert.True(t, strings.HasPrefix(line, "{"), "file output should be JSON: %s", line)
	assert.Contains(t, line, "to file")
}

func TestInitialize_OnlyOnce(t *testing.T) {
	ResetForTest()
	defer ResetForTest()

	var first, second bytes.Buffer
	Initialize(config.LoggerConfig{Level: "info", Format: "json"}, zapcore.AddSync(&first))
	Initialize(config.LoggerConfig{Level: "info", Format: "json"}, zapcore.AddSync(&second))

	GetLogger().Info("hello")
	Sync()

	assert.Contains(t, first.String(), "hello")
	assert.Empty(t, second.String())
}

func TestGetLogger_Fallback(t *testing.T) {
	ResetForTest()
	assert.NotNil(t, GetLogger())
}
