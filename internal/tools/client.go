package tools

import (
	"context"
	"errors"
)

// ToolClient is one live channel to a tool server.
type ToolClient interface {
	// ListTools returns the server's current tool set. It has no side
	// effects and may be called as often as needed.
	ListTools(ctx context.Context) ([]Descriptor, error)

	// CallTool invokes a tool by name. Server-side failures, including
	// results flagged as errors, come back as ErrInvocation.
	CallTool(ctx context.Context, name string, args ToolArguments) (Output, error)

	// Close releases the channel and everything it owns (subprocess, pipes).
	Close() error
}

// ErrInvocation marks a failed tool call.
var ErrInvocation = errors.New("tool invocation failed")
