package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func chTempDir(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })
}

func TestLoadDefaults(t *testing.T) {
	chTempDir(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 3001, cfg.Server.Port)
	assert.False(t, cfg.Server.StrictErrors)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, 4, cfg.Pipeline.MaxConcurrent)
	assert.Equal(t, "Upwork", cfg.Pipeline.Platform)
	assert.Equal(t, "command", cfg.Evaluator.Engine)
	assert.Equal(t, "claude", cfg.Evaluator.Command)
	assert.Equal(t, []string{"--print", "--continue"}, cfg.Evaluator.CommandArgs)
	assert.Equal(t, 60, cfg.Evaluator.TimeoutSecs)
	assert.Equal(t, "python3", cfg.Tracker.Command)
	assert.Equal(t, "scripts/track-lead.py", cfg.Tracker.Script)
	assert.Equal(t, 30, cfg.Tracker.TimeoutSecs)
	assert.Equal(t, "memory", cfg.Approval.Driver)
	assert.Equal(t, 72, cfg.Approval.TTLHours)
	assert.Equal(t, "https://api.telegram.org", cfg.Telegram.BaseURL)
	assert.Equal(t, "claude-sonnet-4-5-20250929", cfg.Anthropic.Model)
	assert.Equal(t, int64(1024), cfg.Anthropic.MaxTokens)
}

func TestLoadFromYAML(t *testing.T) {
	chTempDir(t)

	yaml := `
server:
  port: 4001
  strict_errors: true
evaluator:
  engine: heuristic
approval:
  driver: sqlite
  database_url: leadflow.db
log:
  level: debug
  format: console
`
	dir, _ := os.Getwd()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 4001, cfg.Server.Port)
	assert.True(t, cfg.Server.StrictErrors)
	assert.Equal(t, "heuristic", cfg.Evaluator.Engine)
	assert.Equal(t, "sqlite", cfg.Approval.Driver)
	assert.Equal(t, "leadflow.db", cfg.Approval.DatabaseURL)
	assert.Equal(t, "debug", cfg.Log.Level)
	// Defaults still apply for unset values
	assert.Equal(t, 4, cfg.Pipeline.MaxConcurrent)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	chTempDir(t)

	yaml := `
evaluator:
  engine: command
log:
  level: debug
`
	dir, _ := os.Getwd()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	t.Setenv("LEADFLOW_EVALUATOR_ENGINE", "api")
	t.Setenv("LEADFLOW_LOG_LEVEL", "warn")

	cfg, err := Load()
	require.NoError(t, err)

	// Env overrides file
	assert.Equal(t, "api", cfg.Evaluator.Engine)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoadEnvOverridesDefaults(t *testing.T) {
	chTempDir(t)

	t.Setenv("LEADFLOW_SERVER_PORT", "3005")
	t.Setenv("LEADFLOW_APPROVAL_DRIVER", "sqlite")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 3005, cfg.Server.Port)
	assert.Equal(t, "sqlite", cfg.Approval.Driver)
}

func TestInitLoggerConsole(t *testing.T) {
	err := InitLogger(LogConfig{Level: "debug", Format: "console"})
	require.NoError(t, err)
	assert.NotNil(t, zap.L())
}

func TestInitLoggerJSON(t *testing.T) {
	err := InitLogger(LogConfig{Level: "info", Format: "json"})
	require.NoError(t, err)
	assert.NotNil(t, zap.L())
}

func TestInitLoggerInvalidLevel(t *testing.T) {
	err := InitLogger(LogConfig{Level: "invalid", Format: "json"})
	assert.Error(t, err)
}
