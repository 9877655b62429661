package tools

import (
	"context"
	"encoding/json"
	"errors"
)

var errNotObject = errors.New("arguments are not a JSON object")

// ToolArguments represents the input parameters for a tool call.
// It is a JSON-serializable map of key-value pairs.
type ToolArguments map[string]any

// ToolFunc is the signature of tools served by the local tool server.
// The result should be plain text.
type ToolFunc func(ctx context.Context, args ToolArguments) (string, error)

// Descriptor describes one callable tool as reported by the server.
// InputSchema is a JSON Schema object.
type Descriptor struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	InputSchema map[string]any `json:"input_schema,omitempty"`
}

// ParseArguments decodes the model's JSON argument string. Empty input
// yields an empty object. Invalid JSON or a non-object value also yields
// an empty object, together with an error the caller may log.
func ParseArguments(raw string) (ToolArguments, error) {
	args := ToolArguments{}
	if len(raw) == 0 {
		return args, nil
	}
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return args, err
	}
	switch obj := v.(type) {
	case map[string]any:
		return ToolArguments(obj), nil
	case nil:
		return args, nil
	default:
		return args, errNotObject
	}
}
