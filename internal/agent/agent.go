package agent

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/windlant/mcp-client/internal/errorsx"
	"github.com/windlant/mcp-client/internal/logging"
	"github.com/windlant/mcp-client/internal/model"
	"github.com/windlant/mcp-client/internal/observability"
	"github.com/windlant/mcp-client/internal/protocol"
	"github.com/windlant/mcp-client/internal/session"
	"github.com/windlant/mcp-client/internal/tools"
)

// ErrUnknownTool is returned when the model asks for a tool the server
// did not advertise.
var ErrUnknownTool = errors.New("unknown tool")

// Options tunes an Agent.
type Options struct {
	FailurePolicy FailurePolicy
	// ToolTimeout bounds each tool list and tool call; LLMTimeout bounds
	// each model request. Zero means no extra bound.
	ToolTimeout time.Duration
	LLMTimeout  time.Duration
	Logger      *slog.Logger
	Observer    observability.Observer
}

// Agent answers queries with the model, calling at most one tool per query.
type Agent struct {
	model    model.Model
	session  *session.Manager
	policy   FailurePolicy
	toolTO   time.Duration
	llmTO    time.Duration
	logger   *slog.Logger
	observer observability.Observer
	state    atomic.Int32
}

func NewAgent(m model.Model, s *session.Manager, opts Options) *Agent {
	policy := opts.FailurePolicy
	if policy == "" {
		policy = PolicyFeed
	}
	return &Agent{
		model:    m,
		session:  s,
		policy:   policy,
		toolTO:   opts.ToolTimeout,
		llmTO:    opts.LLMTimeout,
		logger:   logging.NewComponentLogger(opts.Logger, "agent"),
		observer: opts.Observer,
	}
}

// Connect connects the session to a tool server and returns its tool summary.
func (a *Agent) Connect(ctx context.Context, target string) (string, error) {
	return a.session.Connect(ctx, target)
}

// Disconnect closes the tool server channel, if any.
func (a *Agent) Disconnect(ctx context.Context) error {
	return a.session.Disconnect(ctx)
}

func (a *Agent) IsConnected() bool { return a.session.IsConnected() }

// Tools returns the tool list fetched by the latest connect or query.
func (a *Agent) Tools() []tools.Descriptor { return a.session.Tools() }

// State reports the phase of the query in flight, or StateIdle.
func (a *Agent) State() State { return State(a.state.Load()) }

// Close disconnects and stops the session worker.
func (a *Agent) Close() { a.session.Close() }

// SubmitQuery runs one query to completion. Queries are serialized by the
// session; a query submitted while disconnected fails with
// session.ErrNotConnected and leaves the session untouched.
func (a *Agent) SubmitQuery(ctx context.Context, text string) (string, error) {
	queryID := uuid.NewString()
	answer, err := a.session.WithConnection(ctx, func(ctx context.Context, conn session.Conn) (string, error) {
		return a.process(ctx, conn, queryID, text)
	})
	if err != nil {
		a.logger.Warn("query failed", "query_id", queryID, "reason", errorsx.Reason(err), "error", err)
		observability.Emit(ctx, a.observer, "agent", observability.EventQueryError, observability.LevelError,
			map[string]any{"query_id": queryID, "reason": string(errorsx.Reason(err)), "error": err.Error()})
		return "", err
	}
	return answer, nil
}

func (a *Agent) process(ctx context.Context, conn session.Conn, queryID, text string) (string, error) {
	defer a.state.Store(int32(StateIdle))
	a.logger.Debug("query started", "query_id", queryID)
	observability.Emit(ctx, a.observer, "agent", observability.EventQueryStart, observability.LevelInfo,
		map[string]any{"query_id": queryID})

	descs, err := a.listTools(ctx, conn)
	if err != nil {
		return "", errorsx.Wrapf(err, errorsx.ReasonToolInvocation, "list tools")
	}
	specs, err := model.TranslateTools(descs)
	if err != nil {
		return "", errorsx.Wrap(err, errorsx.ReasonToolNameCollision)
	}

	messages := []protocol.Message{protocol.UserMessage(text)}

	a.transition(ctx, queryID, StateAwaitingFirstResponse)
	reply, err := a.chatWithTools(ctx, messages, specs)
	if err != nil {
		return "", errorsx.Wrapf(err, errorsx.ReasonLLMRequest, "model call failed")
	}
	if !reply.WantsTool() {
		a.complete(ctx, queryID, false)
		return reply.Content, nil
	}

	a.transition(ctx, queryID, StateAwaitingToolResult)
	call := reply.ToolCalls[0]
	if len(reply.ToolCalls) > 1 {
		a.logger.Warn("model requested several tools, using the first", "query_id", queryID,
			"requested", len(reply.ToolCalls), "tool", call.Function.Name)
	}
	if call.ID == "" {
		call.ID = "call_" + uuid.NewString()
	}
	if call.Type == "" {
		call.Type = "function"
	}
	if !known(descs, call.Function.Name) {
		return "", errorsx.Wrap(fmt.Errorf("%w: %q", ErrUnknownTool, call.Function.Name), errorsx.ReasonUnknownTool)
	}

	content, err := a.invoke(ctx, conn, queryID, call)
	if err != nil {
		return "", err
	}

	messages = append(messages,
		protocol.ToolCallMessage(call),
		protocol.ToolResultMessage(call, content),
	)

	a.transition(ctx, queryID, StateAwaitingFollowupResponse)
	answer, err := a.chat(ctx, messages)
	if err != nil {
		return "", errorsx.Wrapf(err, errorsx.ReasonLLMRequest, "follow-up model call failed")
	}
	a.complete(ctx, queryID, true)
	return answer, nil
}

// invoke runs the tool and returns the text fed back to the model. Under
// PolicyFeed a failure becomes that text; under PolicyAbort it is returned.
func (a *Agent) invoke(ctx context.Context, conn session.Conn, queryID string, call protocol.ToolCall) (string, error) {
	name := call.Function.Name
	args, perr := tools.ParseArguments(call.Function.Arguments)
	if perr != nil {
		a.logger.Warn("tool arguments are not a JSON object, using {}", "query_id", queryID, "tool", name,
			"reason", errorsx.ReasonMalformedArgs, "error", perr)
	}

	observability.Emit(ctx, a.observer, "agent", observability.EventToolInvoke, observability.LevelInfo,
		map[string]any{"query_id": queryID, "tool": name})

	tctx, cancel := withTimeout(ctx, a.toolTO)
	out, err := conn.CallTool(tctx, name, args)
	cancel()
	if err == nil {
		return tools.Normalize(out), nil
	}

	observability.Emit(ctx, a.observer, "agent", observability.EventToolError, observability.LevelWarning,
		map[string]any{"query_id": queryID, "tool": name, "error": err.Error()})
	if a.policy == PolicyAbort {
		return "", errorsx.Wrapf(err, errorsx.ReasonToolInvocation, "call %s", name)
	}
	a.logger.Warn("tool call failed, passing error to the model", "query_id", queryID, "tool", name, "error", err)
	return "Error: " + err.Error(), nil
}

func (a *Agent) listTools(ctx context.Context, conn session.Conn) ([]tools.Descriptor, error) {
	ctx, cancel := withTimeout(ctx, a.toolTO)
	defer cancel()
	return conn.ListTools(ctx)
}

func (a *Agent) chatWithTools(ctx context.Context, messages []protocol.Message, specs []model.FunctionSpec) (model.Reply, error) {
	ctx, cancel := withTimeout(ctx, a.llmTO)
	defer cancel()
	return a.model.ChatWithTools(ctx, messages, specs)
}

func (a *Agent) chat(ctx context.Context, messages []protocol.Message) (string, error) {
	ctx, cancel := withTimeout(ctx, a.llmTO)
	defer cancel()
	return a.model.Chat(ctx, messages)
}

func (a *Agent) transition(ctx context.Context, queryID string, to State) {
	from := State(a.state.Swap(int32(to)))
	observability.Emit(ctx, a.observer, "agent", observability.EventQueryState, observability.LevelVerbose,
		map[string]any{"query_id": queryID, "from": from.String(), "to": to.String()})
}

func (a *Agent) complete(ctx context.Context, queryID string, usedTool bool) {
	a.transition(ctx, queryID, StateDone)
	observability.Emit(ctx, a.observer, "agent", observability.EventQueryComplete, observability.LevelInfo,
		map[string]any{"query_id": queryID, "used_tool": usedTool})
}

func known(descs []tools.Descriptor, name string) bool {
	for _, d := range descs {
		if d.Name == name {
			return true
		}
	}
	return false
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}
