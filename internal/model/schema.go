package model

import (
	"errors"
	"fmt"

	"github.com/windlant/mcp-client/internal/tools"
)

// ErrToolNameCollision is returned when two tools share a name.
var ErrToolNameCollision = errors.New("tool name collision")

// TranslateTools maps each descriptor to a function spec, keeping name,
// description and schema as given. A missing schema becomes an empty
// object schema, since providers reject a null "parameters".
func TranslateTools(descs []tools.Descriptor) ([]FunctionSpec, error) {
	specs := make([]FunctionSpec, 0, len(descs))
	seen := make(map[string]struct{}, len(descs))
	for _, d := range descs {
		if _, dup := seen[d.Name]; dup {
			return nil, fmt.Errorf("%w: %q is advertised more than once", ErrToolNameCollision, d.Name)
		}
		seen[d.Name] = struct{}{}

		params := d.InputSchema
		if params == nil {
			params = map[string]any{"type": "object", "properties": map[string]any{}}
		}
		specs = append(specs, FunctionSpec{
			Name:        d.Name,
			Description: d.Description,
			Parameters:  params,
		})
	}
	return specs, nil
}
