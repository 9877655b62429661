package config

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type providerSettings struct {
	APIKey    string  `mapstructure:"api_key"`
	MaxTokens int     `mapstructure:"max_tokens"`
	Temp      float64 `mapstructure:"temperature"`
}

func TestDecodeSettingsNormalizesKeys(t *testing.T) {
	var out providerSettings
	err := DecodeSettings(map[string]any{
		"API-Key":     "k",
		"maxTokens":   "256",
		"temperature": 0.2,
	}, &out)
	require.NoError(t, err)
	require.Equal(t, "k", out.APIKey)
	require.Equal(t, 256, out.MaxTokens)
	require.InDelta(t, 0.2, out.Temp, 1e-9)
}

func TestDecodeSettingsEmpty(t *testing.T) {
	out := providerSettings{MaxTokens: 7}
	require.NoError(t, DecodeSettings(nil, &out))
	require.Equal(t, 7, out.MaxTokens)
}

func TestValidateSettings(t *testing.T) {
	schema := Schema{Required: []string{"api_key"}, Optional: []string{"model"}}
	require.NoError(t, ValidateSettings(map[string]any{"api_key": "x", "Model": "m"}, schema))

	err := ValidateSettings(map[string]any{"api_key": "  ", "colour": "red"}, schema)
	require.EqualError(t, err, "missing: api_key; unknown: colour")

	err = ValidateSettings(map[string]any{}, schema)
	require.EqualError(t, err, "missing: api_key")

	schema.AllowUnknown = true
	require.NoError(t, ValidateSettings(map[string]any{"api_key": "x", "colour": "red"}, schema))
}

func TestRequireString(t *testing.T) {
	require.NoError(t, RequireString("x", "a.b"))
	require.EqualError(t, RequireString(" ", "a.b"), "a.b is required")
}

func TestDecodeSectionNamesSection(t *testing.T) {
	schema := Schema{Required: []string{"api_key"}, Optional: []string{"max_tokens"}}

	var out providerSettings
	err := DecodeSection("llm.settings", map[string]any{"max_tokens": 5, "colour": "red"}, schema, &out)
	require.EqualError(t, err, "llm.settings: missing: api_key; unknown: colour")
	var se *SettingsError
	require.True(t, errors.As(err, &se))
	require.Equal(t, []string{"api_key"}, se.Missing)
	require.Equal(t, []string{"colour"}, se.Unknown)

	require.NoError(t, DecodeSection("llm.settings", map[string]any{"apiKey": "k", "max_tokens": "64"}, schema, &out))
	require.Equal(t, "k", out.APIKey)
	require.Equal(t, 64, out.MaxTokens)
}

func TestDecodeSettingsHooks(t *testing.T) {
	var out struct {
		Timeout time.Duration `mapstructure:"timeout"`
		Stop    []string      `mapstructure:"stop"`
	}
	require.NoError(t, DecodeSettings(map[string]any{"timeout": "1m30s", "stop": "a,b"}, &out))
	require.Equal(t, 90*time.Second, out.Timeout)
	require.Equal(t, []string{"a", "b"}, out.Stop)
}
