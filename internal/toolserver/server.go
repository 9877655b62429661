// Package toolserver exposes a local tool registry as an MCP server.
package toolserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/windlant/mcp-client/internal/tools"
	"github.com/windlant/mcp-client/internal/tools/local/registry"
)

// New creates an MCP server serving every tool in reg. Calls look the
// tool up in reg by name, so the registry stays the single source.
func New(reg *registry.Registry, name, version string) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{Name: name, Version: version}, nil)
	for _, def := range reg.ListAll() {
		server.AddTool(toolFor(def.Descriptor()), handlerFor(reg, def.Name))
	}
	return server
}

func toolFor(desc tools.Descriptor) *mcp.Tool {
	schema := desc.InputSchema
	if schema == nil {
		schema = map[string]any{"type": "object", "properties": map[string]any{}}
	}
	return &mcp.Tool{
		Name:        desc.Name,
		Description: desc.Description,
		InputSchema: schema,
	}
}

// handlerFor adapts the registered ToolFunc. Tool failures are reported
// as error results so the client sees them as tool output, not protocol
// faults.
func handlerFor(reg *registry.Registry, name string) mcp.ToolHandler {
	return func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		def, ok := reg.Get(name)
		if !ok || def.Function == nil {
			return errorResult(fmt.Sprintf("tool %s has no implementation", name)), nil
		}
		args := tools.ToolArguments{}
		if raw := req.Params.Arguments; len(raw) > 0 {
			if err := json.Unmarshal(raw, &args); err != nil {
				return errorResult(fmt.Sprintf("arguments must be an object: %v", err)), nil
			}
		}
		text, err := def.Function(ctx, args)
		if err != nil {
			return errorResult(fmt.Sprintf("tool execution failed: %v", err)), nil
		}
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: text}},
		}, nil
	}
}

func errorResult(message string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: message}},
	}
}
