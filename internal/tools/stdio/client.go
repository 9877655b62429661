package stdio

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/windlant/mcp-client/internal/tools"
)

// transportBuilder is overridden in tests to stub the subprocess.
var transportBuilder = buildTransport

// Options configures Dial.
type Options struct {
	Launchers  map[string]Launcher
	ClientName string
	Version    string
	// Stderr receives the server's stderr; nil discards it.
	Stderr io.Writer
}

// Client is an MCP session with one tool server process.
type Client struct {
	target  string
	mu      sync.Mutex
	session *mcp.ClientSession
}

// Dial starts the server for target and completes the MCP handshake.
// Unsupported targets fail with ErrUnsupportedTarget before anything is
// spawned.
func Dial(ctx context.Context, target string, opts Options) (*Client, error) {
	transport, err := transportBuilder(target, opts)
	if err != nil {
		return nil, err
	}
	return Connect(ctx, transport, target, opts)
}

// Connect runs the MCP handshake over an existing transport.
func Connect(ctx context.Context, transport mcp.Transport, target string, opts Options) (*Client, error) {
	name := opts.ClientName
	if name == "" {
		name = "mcp-client"
	}
	version := opts.Version
	if version == "" {
		version = "dev"
	}
	impl := mcp.NewClient(&mcp.Implementation{Name: name, Version: version}, nil)
	session, err := impl.Connect(ctx, transport, nil)
	if err != nil {
		return nil, fmt.Errorf("connect to %s: %w", target, err)
	}
	return &Client{target: target, session: session}, nil
}

func buildTransport(target string, opts Options) (mcp.Transport, error) {
	launchers := opts.Launchers
	if launchers == nil {
		launchers = DefaultLaunchers()
	}
	cmd, err := Resolve(target, launchers)
	if err != nil {
		return nil, err
	}
	cmd.Stderr = opts.Stderr
	return &mcp.CommandTransport{Command: cmd}, nil
}

func (c *Client) current() (*mcp.ClientSession, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session == nil {
		return nil, fmt.Errorf("%w: channel to %s is closed", tools.ErrInvocation, c.target)
	}
	return c.session, nil
}

// ListTools fetches every page of the server's tool list.
func (c *Client) ListTools(ctx context.Context) ([]tools.Descriptor, error) {
	session, err := c.current()
	if err != nil {
		return nil, err
	}
	var out []tools.Descriptor
	for tool, err := range session.Tools(ctx, nil) {
		if err != nil {
			return nil, fmt.Errorf("list tools: %w", err)
		}
		out = append(out, toDescriptor(tool))
	}
	return out, nil
}

// CallTool invokes name on the server.
func (c *Client) CallTool(ctx context.Context, name string, args tools.ToolArguments) (tools.Output, error) {
	session, err := c.current()
	if err != nil {
		return nil, err
	}
	if args == nil {
		args = tools.ToolArguments{}
	}
	res, err := session.CallTool(ctx, &mcp.CallToolParams{Name: name, Arguments: map[string]any(args)})
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", tools.ErrInvocation, name, err)
	}
	out := toOutput(res)
	if res.IsError {
		return nil, fmt.Errorf("%w: %s: %s", tools.ErrInvocation, name, tools.Normalize(out))
	}
	return out, nil
}

// Close ends the session, which closes the server's stdin and reaps the
// process. Calling it again is a no-op.
func (c *Client) Close() error {
	c.mu.Lock()
	session := c.session
	c.session = nil
	c.mu.Unlock()
	if session == nil {
		return nil
	}
	return session.Close()
}

func toDescriptor(tool *mcp.Tool) tools.Descriptor {
	if tool == nil {
		return tools.Descriptor{}
	}
	return tools.Descriptor{
		Name:        tool.Name,
		Description: tool.Description,
		InputSchema: schemaToMap(tool.InputSchema),
	}
}

// schemaToMap accepts whatever shape the SDK decoded the schema into.
func schemaToMap(schema any) map[string]any {
	switch s := schema.(type) {
	case nil:
		return nil
	case map[string]any:
		return s
	}
	raw, err := json.Marshal(schema)
	if err != nil {
		return nil
	}
	var out map[string]any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil
	}
	return out
}

func toOutput(res *mcp.CallToolResult) tools.Output {
	if res == nil {
		return tools.ItemList{}
	}
	if len(res.Content) == 0 && res.StructuredContent != nil {
		return tools.FromValue(res.StructuredContent)
	}
	items := make([]tools.Output, 0, len(res.Content))
	for _, content := range res.Content {
		if text, ok := content.(*mcp.TextContent); ok {
			items = append(items, tools.TextItem{Text: text.Text})
			continue
		}
		items = append(items, tools.Unknown{Value: content})
	}
	return tools.ItemList{Items: items}
}
