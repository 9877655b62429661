package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// DefaultPath is where the client looks for its config file.
const DefaultPath = "config/config.yaml"

type Config struct {
	LLM       VendorConfig   `mapstructure:"llm"`
	Server    ServerConfig   `mapstructure:"server"`
	Session   SessionConfig  `mapstructure:"session"`
	Timeouts  TimeoutsConfig `mapstructure:"timeouts"`
	Tools     ToolsConfig    `mapstructure:"tools"`
	Gateway   GatewayConfig  `mapstructure:"gateway"`
	LogLevel  string         `mapstructure:"log_level"`
	LogFormat string         `mapstructure:"log_format"`
}

// VendorConfig selects a provider and carries its free-form settings,
// decoded later by the provider itself.
type VendorConfig struct {
	Provider string         `mapstructure:"provider"`
	Settings map[string]any `mapstructure:"settings"`
}

type LauncherConfig struct {
	Command string   `mapstructure:"command"`
	Args    []string `mapstructure:"args"`
}

// ServerConfig describes the tool server. Launchers are keyed by file
// extension without the dot ("py", "js").
type ServerConfig struct {
	Target     string                    `mapstructure:"target"`
	ClientName string                    `mapstructure:"client_name"`
	Launchers  map[string]LauncherConfig `mapstructure:"launchers"`
}

type SessionConfig struct {
	QueueSize int `mapstructure:"queue_size"`
}

type TimeoutsConfig struct {
	ConnectMS int `mapstructure:"connect_ms"`
	ToolMS    int `mapstructure:"tool_ms"`
	LLMMS     int `mapstructure:"llm_ms"`
}

func (t TimeoutsConfig) Connect() time.Duration { return time.Duration(t.ConnectMS) * time.Millisecond }
func (t TimeoutsConfig) Tool() time.Duration    { return time.Duration(t.ToolMS) * time.Millisecond }
func (t TimeoutsConfig) LLM() time.Duration     { return time.Duration(t.LLMMS) * time.Millisecond }

type ToolsConfig struct {
	FailurePolicy string `mapstructure:"failure_policy"`
}

type GatewayConfig struct {
	Addr string `mapstructure:"addr"`
	// AllowCommands lets gateway clients connect to "stdio://" targets.
	AllowCommands bool `mapstructure:"allow_commands"`
}

// Load reads configuration from path (DefaultPath when empty). A missing
// file is not an error: defaults and environment variables still apply.
// Environment variables use the MCP_CLIENT_ prefix, e.g.
// MCP_CLIENT_SERVER_TARGET; the API key is also read from OPENAI_API_KEY
// or DEEPSEEK_API_KEY.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath
	}
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("MCP_CLIENT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("llm.settings.api_key", "MCP_CLIENT_LLM_SETTINGS_API_KEY", "OPENAI_API_KEY", "DEEPSEEK_API_KEY"); err != nil {
		return nil, fmt.Errorf("bind env: %w", err)
	}

	if _, err := os.Stat(path); err == nil {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("stat config: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("llm.provider", "openai")
	// AutomaticEnv only reaches keys viper already knows, so every
	// overridable key gets a default.
	v.SetDefault("server.target", "")
	v.SetDefault("server.client_name", "mcp-client")
	v.SetDefault("server.launchers.py.command", "python")
	v.SetDefault("server.launchers.js.command", "node")
	v.SetDefault("session.queue_size", 8)
	v.SetDefault("timeouts.connect_ms", 30000)
	v.SetDefault("timeouts.tool_ms", 60000)
	v.SetDefault("timeouts.llm_ms", 60000)
	v.SetDefault("tools.failure_policy", "feed")
	v.SetDefault("gateway.addr", "127.0.0.1:8080")
	v.SetDefault("gateway.allow_commands", false)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")
}

// Validate checks the fields every front end depends on.
func (c *Config) Validate() error {
	if err := RequireString(c.LLM.Provider, "llm.provider"); err != nil {
		return err
	}
	switch c.Tools.FailurePolicy {
	case "feed", "abort":
	default:
		return fmt.Errorf("tools.failure_policy must be feed or abort, got %q", c.Tools.FailurePolicy)
	}
	if c.Session.QueueSize <= 0 {
		return fmt.Errorf("session.queue_size must be positive")
	}
	for ext, l := range c.Server.Launchers {
		if err := RequireString(l.Command, "server.launchers."+ext+".command"); err != nil {
			return err
		}
	}
	return nil
}
