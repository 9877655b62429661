package stdio

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"

	"github.com/windlant/mcp-client/internal/tools"
)

func newTestServer() *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{Name: "test-server", Version: "test"}, nil)
	server.AddTool(&mcp.Tool{
		Name:        "echo",
		Description: "Echo input",
		InputSchema: map[string]any{
			"type":       "object",
			"properties": map[string]any{"text": map[string]any{"type": "string"}},
		},
	}, func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var payload map[string]string
		if err := json.Unmarshal(req.Params.Arguments, &payload); err != nil {
			return nil, err
		}
		return &mcp.CallToolResult{
			Content: []mcp.Content{
				&mcp.TextContent{Text: "echo:" + payload["text"]},
				&mcp.TextContent{Text: "done"},
			},
		}, nil
	})
	server.AddTool(&mcp.Tool{
		Name:        "broken",
		InputSchema: map[string]any{"type": "object"},
	}, func(context.Context, *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return &mcp.CallToolResult{
			IsError: true,
			Content: []mcp.Content{&mcp.TextContent{Text: "backend unavailable"}},
		}, nil
	})
	return server
}

func dialInMemory(t *testing.T) *Client {
	t.Helper()
	serverTransport, clientTransport := mcp.NewInMemoryTransports()
	ss, err := newTestServer().Connect(context.Background(), serverTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = ss.Close() })

	orig := transportBuilder
	transportBuilder = func(string, Options) (mcp.Transport, error) { return clientTransport, nil }
	t.Cleanup(func() { transportBuilder = orig })

	client, err := Dial(context.Background(), "inmemory", Options{ClientName: "test"})
	require.NoError(t, err)
	return client
}

func TestListAndCall(t *testing.T) {
	client := dialInMemory(t)
	defer client.Close()

	descs, err := client.ListTools(context.Background())
	require.NoError(t, err)
	require.Len(t, descs, 2)
	byName := map[string]tools.Descriptor{}
	for _, d := range descs {
		byName[d.Name] = d
	}
	require.Equal(t, "Echo input", byName["echo"].Description)
	require.Equal(t, "object", byName["echo"].InputSchema["type"])

	out, err := client.CallTool(context.Background(), "echo", tools.ToolArguments{"text": "hi"})
	require.NoError(t, err)
	require.Equal(t, "echo:hi\ndone", tools.Normalize(out))
}

func TestCallErrors(t *testing.T) {
	client := dialInMemory(t)
	defer client.Close()

	_, err := client.CallTool(context.Background(), "broken", nil)
	require.ErrorIs(t, err, tools.ErrInvocation)
	require.ErrorContains(t, err, "backend unavailable")

	_, err = client.CallTool(context.Background(), "missing", nil)
	require.ErrorIs(t, err, tools.ErrInvocation)
}

func TestCloseIsIdempotent(t *testing.T) {
	client := dialInMemory(t)
	require.NoError(t, client.Close())
	require.NoError(t, client.Close())

	_, err := client.CallTool(context.Background(), "echo", nil)
	require.ErrorIs(t, err, tools.ErrInvocation)
	_, err = client.ListTools(context.Background())
	require.ErrorIs(t, err, tools.ErrInvocation)
}

func TestDialTransportFailure(t *testing.T) {
	orig := transportBuilder
	transportBuilder = func(string, Options) (mcp.Transport, error) { return failingTransport{}, nil }
	t.Cleanup(func() { transportBuilder = orig })

	_, err := Dial(context.Background(), "weather.py", Options{})
	require.ErrorContains(t, err, "connect to weather.py")
}

func TestToOutputStructured(t *testing.T) {
	out := toOutput(&mcp.CallToolResult{StructuredContent: map[string]any{"text": "structured"}})
	require.Equal(t, "structured", tools.Normalize(out))
	require.Equal(t, tools.ItemList{}, toOutput(nil))
}

type failingTransport struct{}

func (failingTransport) Connect(context.Context) (mcp.Connection, error) {
	return nil, errors.New("connect failed")
}
