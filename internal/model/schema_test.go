package model

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/windlant/mcp-client/internal/tools"
)

func TestTranslateToolsVerbatim(t *testing.T) {
	schema := map[string]any{
		"type":       "object",
		"properties": map[string]any{"city": map[string]any{"type": "string"}},
		"required":   []any{"city"},
	}
	specs, err := TranslateTools([]tools.Descriptor{
		{Name: "get_forecast", Description: "Forecast", InputSchema: schema},
		{Name: "ping"},
	})
	require.NoError(t, err)
	require.Equal(t, []FunctionSpec{
		{Name: "get_forecast", Description: "Forecast", Parameters: schema},
		{Name: "ping", Parameters: map[string]any{"type": "object", "properties": map[string]any{}}},
	}, specs)
}

func TestTranslateToolsCollision(t *testing.T) {
	_, err := TranslateTools([]tools.Descriptor{{Name: "a"}, {Name: "b"}, {Name: "a"}})
	require.ErrorIs(t, err, ErrToolNameCollision)
}

func TestTranslateToolsEmpty(t *testing.T) {
	specs, err := TranslateTools(nil)
	require.NoError(t, err)
	require.Empty(t, specs)
}
