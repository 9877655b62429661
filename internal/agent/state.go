package agent

// State is the orchestrator's position within one query.
type State int32

const (
	StateIdle State = iota
	StateAwaitingFirstResponse
	StateAwaitingToolResult
	StateAwaitingFollowupResponse
	StateDone
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAwaitingFirstResponse:
		return "awaiting_first_response"
	case StateAwaitingToolResult:
		return "awaiting_tool_result"
	case StateAwaitingFollowupResponse:
		return "awaiting_followup_response"
	case StateDone:
		return "done"
	default:
		return "unknown"
	}
}

// FailurePolicy decides what a failed tool call does to the query.
type FailurePolicy string

const (
	// PolicyFeed hands the failure to the model as the tool's result.
	PolicyFeed FailurePolicy = "feed"
	// PolicyAbort ends the query with the tool error.
	PolicyAbort FailurePolicy = "abort"
)
