package errorsx

// ReasonCode is a short machine-readable error reason.
type ReasonCode string

const (
	ReasonUnknown ReasonCode = "unknown"

	// Session lifecycle.
	ReasonUnsupportedTarget ReasonCode = "unsupported_target"
	ReasonForbiddenTarget   ReasonCode = "forbidden_target"
	ReasonConnect           ReasonCode = "connect"
	ReasonNotConnected      ReasonCode = "not_connected"
	ReasonBusy              ReasonCode = "busy"
	ReasonCanceled          ReasonCode = "canceled"

	// Query processing.
	ReasonToolInvocation    ReasonCode = "tool_invocation"
	ReasonUnknownTool       ReasonCode = "unknown_tool"
	ReasonToolNameCollision ReasonCode = "tool_name_collision"
	ReasonMalformedArgs     ReasonCode = "malformed_arguments"

	ReasonLLMRequest ReasonCode = "llm_request"
)

// fixedMessages replaces the error text shown to users for reasons whose
// underlying error says nothing useful to them.
var fixedMessages = map[ReasonCode]string{
	ReasonNotConnected:    "Not connected. Connect to a tool server first.",
	ReasonBusy:            "Another request is still running, try again shortly.",
	ReasonCanceled:        "Request canceled or timed out before it finished.",
	ReasonForbiddenTarget: "Running commands as tool servers is disabled here.",
}
