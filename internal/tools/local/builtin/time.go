package builtin

import (
	"context"
	"fmt"
	"time"

	"github.com/windlant/mcp-client/internal/tools"
	"github.com/windlant/mcp-client/internal/tools/local/registry"
)

// GetTimeToolDef reports the current time, optionally in an IANA zone.
var GetTimeToolDef = registry.Definition{
	Name:        "get_time",
	Description: "Get the current date and time, optionally in a given IANA time zone.",
	Parameters: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"timezone": map[string]any{
				"type":        "string",
				"description": "IANA time zone name, e.g. Europe/Paris. Defaults to local time.",
			},
		},
	},
	Function: GetTimeTool,
}

// now is replaced in tests.
var now = time.Now

// GetTimeTool returns the current time as "2006-01-02 15:04:05 MST".
func GetTimeTool(_ context.Context, args tools.ToolArguments) (string, error) {
	t := now()
	if zone, _ := args["timezone"].(string); zone != "" {
		loc, err := time.LoadLocation(zone)
		if err != nil {
			return "", fmt.Errorf("unknown timezone %q", zone)
		}
		t = t.In(loc)
	}
	return t.Format("2006-01-02 15:04:05 MST"), nil
}
