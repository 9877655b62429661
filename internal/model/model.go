package model

import (
	"context"

	"github.com/windlant/mcp-client/internal/protocol"
)

// FunctionSpec is a tool as the LLM API expects it.
type FunctionSpec struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Parameters  map[string]any `json:"parameters"` // JSON Schema object
}

// ToolForAPI is the "tools" array entry of a chat completions request.
type ToolForAPI struct {
	Type     string       `json:"type"` // "function"
	Function FunctionSpec `json:"function"`
}

// Reply is the model's answer: either content or tool calls.
type Reply struct {
	Content   string
	ToolCalls []protocol.ToolCall
}

// WantsTool reports whether the model asked for a tool.
func (r Reply) WantsTool() bool {
	return len(r.ToolCalls) > 0
}

// Model is the interface of every chat backend.
type Model interface {
	// Chat handles a plain exchange without tools.
	Chat(ctx context.Context, messages []protocol.Message) (string, error)

	// ChatWithTools offers the functions to the model in "auto" mode and
	// returns either its content or the tool calls it made.
	ChatWithTools(ctx context.Context, messages []protocol.Message, functions []FunctionSpec) (Reply, error)
}
