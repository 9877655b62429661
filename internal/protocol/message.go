// internal/protocol/message.go
package protocol

// Chat roles understood by the orchestrator.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleTool      = "tool"
)

// Message is one conversation turn in OpenAI-compatible chat form.
// An assistant turn that requests a tool carries ToolCalls and no content.
type Message struct {
	Role       string     `json:"role"`
	Content    string     `json:"content,omitempty"`
	Name       string     `json:"name,omitempty"`         // for tool messages
	ToolCalls  []ToolCall `json:"tool_calls,omitempty"`   // assistant -> tool calls
	ToolCallID string     `json:"tool_call_id,omitempty"` // tool -> response to a call
}

// ToolCall represents a single function/tool invocation request from the model.
type ToolCall struct {
	ID       string   `json:"id"`
	Type     string   `json:"type"` // must be "function"
	Function Function `json:"function"`
}

// Function describes the function to be called.
type Function struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"` // JSON-encoded string, e.g., "{\"city\": \"Paris\"}"
}

// UserMessage builds a user turn.
func UserMessage(text string) Message {
	return Message{Role: RoleUser, Content: text}
}

// SystemMessage builds a system turn.
func SystemMessage(text string) Message {
	return Message{Role: RoleSystem, Content: text}
}

// ToolCallMessage builds the assistant turn recording a tool request.
func ToolCallMessage(call ToolCall) Message {
	return Message{Role: RoleAssistant, ToolCalls: []ToolCall{call}}
}

// ToolResultMessage builds the tool turn answering call.
func ToolResultMessage(call ToolCall, content string) Message {
	return Message{
		Role:       RoleTool,
		Name:       call.Function.Name,
		ToolCallID: call.ID,
		Content:    content,
	}
}
