package toolserver

import (
	"context"
	"errors"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"

	"github.com/windlant/mcp-client/internal/tools"
	"github.com/windlant/mcp-client/internal/tools/local"
	"github.com/windlant/mcp-client/internal/tools/local/registry"
	"github.com/windlant/mcp-client/internal/tools/stdio"
)

func connect(t *testing.T, reg *registry.Registry) *stdio.Client {
	t.Helper()
	ctx := context.Background()
	serverTransport, clientTransport := mcp.NewInMemoryTransports()
	ss, err := New(reg, "test-server", "test").Connect(ctx, serverTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = ss.Close() })

	client, err := stdio.Connect(ctx, clientTransport, "inmemory", stdio.Options{})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestBuiltinsOverMCP(t *testing.T) {
	reg, err := local.NewBuiltinRegistry()
	require.NoError(t, err)
	client := connect(t, reg)

	descs, err := client.ListTools(context.Background())
	require.NoError(t, err)
	names := make([]string, 0, len(descs))
	for _, d := range descs {
		names = append(names, d.Name)
	}
	require.ElementsMatch(t, []string{"get_forecast", "get_time"}, names)
	for _, d := range descs {
		def, ok := reg.Get(d.Name)
		require.True(t, ok)
		require.Equal(t, def.Descriptor().Description, d.Description)
		if d.Name == "get_forecast" {
			require.Equal(t, []any{"city"}, d.InputSchema["required"])
		}
	}

	out, err := client.CallTool(context.Background(), "get_forecast", tools.ToolArguments{"city": "Paris"})
	require.NoError(t, err)
	require.Equal(t, "Sunny, 22C", tools.Normalize(out))
}

func TestToolFailureIsErrorResult(t *testing.T) {
	reg := registry.NewRegistry()
	require.NoError(t, reg.Register(registry.Definition{
		Name: "fail",
		Function: func(context.Context, tools.ToolArguments) (string, error) {
			return "", errors.New("disk on fire")
		},
	}))
	client := connect(t, reg)

	_, err := client.CallTool(context.Background(), "fail", nil)
	require.ErrorIs(t, err, tools.ErrInvocation)
	require.ErrorContains(t, err, "disk on fire")
}

func TestNilSchemaGetsEmptyObject(t *testing.T) {
	tool := toolFor(tools.Descriptor{Name: "bare"})
	require.Equal(t, map[string]any{"type": "object", "properties": map[string]any{}}, tool.InputSchema)
}
