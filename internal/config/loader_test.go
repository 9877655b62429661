package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadDefaultsWithoutFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	require.Equal(t, "openai", cfg.LLM.Provider)
	require.Equal(t, "feed", cfg.Tools.FailurePolicy)
	require.Equal(t, 8, cfg.Session.QueueSize)
	require.Equal(t, "python", cfg.Server.Launchers["py"].Command)
	require.Equal(t, "node", cfg.Server.Launchers["js"].Command)
	require.Equal(t, 60*time.Second, cfg.Timeouts.LLM())
	require.Equal(t, 30*time.Second, cfg.Timeouts.Connect())
	require.Equal(t, "127.0.0.1:8080", cfg.Gateway.Addr)
	require.False(t, cfg.Gateway.AllowCommands)
}

func TestLoadFileOverrides(t *testing.T) {
	path := writeConfig(t, `
llm:
  provider: deepseek
  settings:
    model: deepseek-chat
    max_tokens: 512
server:
  target: ../weather/weather.py
  launchers:
    py:
      command: python3
      args: ["-u"]
tools:
  failure_policy: abort
timeouts:
  tool_ms: 1500
gateway:
  allow_commands: true
log_level: debug
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "deepseek", cfg.LLM.Provider)
	require.Equal(t, "deepseek-chat", cfg.LLM.Settings["model"])
	require.Equal(t, "../weather/weather.py", cfg.Server.Target)
	require.Equal(t, "python3", cfg.Server.Launchers["py"].Command)
	require.Equal(t, []string{"-u"}, cfg.Server.Launchers["py"].Args)
	require.Equal(t, "abort", cfg.Tools.FailurePolicy)
	require.Equal(t, 1500*time.Millisecond, cfg.Timeouts.Tool())
	require.Equal(t, "debug", cfg.LogLevel)
	require.True(t, cfg.Gateway.AllowCommands)
}

func TestLoadEnvironment(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("MCP_CLIENT_SERVER_TARGET", "weather.py")
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	require.Equal(t, "sk-test", cfg.LLM.Settings["api_key"])
	require.Equal(t, "weather.py", cfg.Server.Target)
}

func TestLoadRejectsBadPolicy(t *testing.T) {
	path := writeConfig(t, "tools:\n  failure_policy: retry\n")
	_, err := Load(path)
	require.ErrorContains(t, err, "failure_policy")
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	path := writeConfig(t, "llm: [unclosed\n")
	_, err := Load(path)
	require.ErrorContains(t, err, "read config")
}
