package model

import (
	"fmt"
	"strings"

	"github.com/windlant/mcp-client/internal/config"
)

// Settings are the provider settings under llm.settings.
type Settings struct {
	APIKey        string   `mapstructure:"api_key"`
	BaseURL       string   `mapstructure:"base_url"`
	Model         string   `mapstructure:"model"`
	MaxTokens     int      `mapstructure:"max_tokens"`
	Temperature   *float64 `mapstructure:"temperature"`
	FunctionStyle string   `mapstructure:"function_style"`
	SystemPrompt  string   `mapstructure:"system_prompt"`
	TimeoutMS     int      `mapstructure:"timeout_ms"`
}

var settingsSchema = config.Schema{
	Required: []string{"api_key"},
	Optional: []string{"base_url", "model", "max_tokens", "temperature", "function_style", "system_prompt", "timeout_ms"},
}

type providerDefaults struct {
	baseURL string
	model   string
}

var providers = map[string]providerDefaults{
	"openai":   {baseURL: "https://api.openai.com/v1", model: "gpt-4o-mini"},
	"deepseek": {baseURL: "https://api.deepseek.com", model: "deepseek-chat"},
}

// New builds the model named by cfg.Provider.
func New(cfg config.VendorConfig) (Model, error) {
	name := strings.ToLower(strings.TrimSpace(cfg.Provider))
	defaults, ok := providers[name]
	if !ok {
		return nil, fmt.Errorf("unknown llm provider %q", cfg.Provider)
	}
	s := Settings{
		BaseURL:   defaults.baseURL,
		Model:     defaults.model,
		MaxTokens: 1000,
	}
	if err := config.DecodeSection("llm.settings", cfg.Settings, settingsSchema, &s); err != nil {
		return nil, err
	}
	return NewOpenAIModel(name, s)
}
