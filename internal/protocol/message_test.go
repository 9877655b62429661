package protocol

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestToolTurnsShape(t *testing.T) {
	call := ToolCall{ID: "call_1", Type: "function", Function: Function{Name: "get_forecast", Arguments: `{"city":"Paris"}`}}

	assistant := ToolCallMessage(call)
	raw, err := json.Marshal(assistant)
	require.NoError(t, err)
	require.JSONEq(t, `{"role":"assistant","tool_calls":[{"id":"call_1","type":"function","function":{"name":"get_forecast","arguments":"{\"city\":\"Paris\"}"}}]}`, string(raw))

	result := ToolResultMessage(call, "Sunny, 22C")
	require.Equal(t, RoleTool, result.Role)
	require.Equal(t, "get_forecast", result.Name)
	require.Equal(t, "call_1", result.ToolCallID)
	require.Equal(t, "Sunny, 22C", result.Content)
}
