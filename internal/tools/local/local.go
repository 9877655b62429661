// internal/tools/local/local.go
package local

import (
	"fmt"

	"github.com/windlant/mcp-client/internal/tools/local/builtin"
	"github.com/windlant/mcp-client/internal/tools/local/registry"
)

// NewBuiltinRegistry returns a registry holding every builtin tool.
func NewBuiltinRegistry() (*registry.Registry, error) {
	forecasts, err := builtin.DefaultForecasts()
	if err != nil {
		return nil, err
	}
	r := registry.NewRegistry()
	for _, def := range []registry.Definition{
		builtin.GetTimeToolDef,
		builtin.ForecastToolDef(forecasts),
	} {
		if err := r.Register(def); err != nil {
			return nil, fmt.Errorf("register %s: %w", def.Name, err)
		}
	}
	return r, nil
}
