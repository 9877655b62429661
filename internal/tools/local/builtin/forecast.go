package builtin

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/windlant/mcp-client/internal/tools"
	"github.com/windlant/mcp-client/internal/tools/local/registry"
)

//go:embed forecasts.yaml
var forecastsYAML []byte

// Forecast is one city's canned weather.
type Forecast struct {
	Summary      string `yaml:"summary"`
	TemperatureC int    `yaml:"temperature_c"`
}

func (f Forecast) String() string {
	return fmt.Sprintf("%s, %dC", f.Summary, f.TemperatureC)
}

// ForecastTable maps lower-case city names to forecasts.
type ForecastTable struct {
	Cities map[string]Forecast `yaml:"cities"`
}

// LoadForecasts parses a forecast table in YAML form.
func LoadForecasts(data []byte) (*ForecastTable, error) {
	var table ForecastTable
	if err := yaml.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("parse forecasts: %w", err)
	}
	normalized := make(map[string]Forecast, len(table.Cities))
	for city, f := range table.Cities {
		normalized[strings.ToLower(strings.TrimSpace(city))] = f
	}
	table.Cities = normalized
	return &table, nil
}

// Lookup finds the forecast for city, ignoring case.
func (t *ForecastTable) Lookup(city string) (Forecast, bool) {
	f, ok := t.Cities[strings.ToLower(strings.TrimSpace(city))]
	return f, ok
}

// ForecastToolDef builds the get_forecast tool over table.
func ForecastToolDef(table *ForecastTable) registry.Definition {
	return registry.Definition{
		Name:        "get_forecast",
		Description: "Get the weather forecast for a city.",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"city": map[string]any{
					"type":        "string",
					"description": "City name, e.g. Paris",
				},
			},
			"required": []any{"city"},
		},
		Function: func(_ context.Context, args tools.ToolArguments) (string, error) {
			city, _ := args["city"].(string)
			if strings.TrimSpace(city) == "" {
				return "", errors.New("city is required")
			}
			f, ok := table.Lookup(city)
			if !ok {
				return fmt.Sprintf("No forecast available for %s.", city), nil
			}
			return f.String(), nil
		},
	}
}

// DefaultForecasts returns the embedded forecast table.
func DefaultForecasts() (*ForecastTable, error) {
	return LoadForecasts(forecastsYAML)
}
