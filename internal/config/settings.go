package config

import (
	"fmt"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// DecodeSection validates a provider settings section against schema and
// decodes it into out. Errors name the section, e.g. "llm.settings".
func DecodeSection(section string, input map[string]any, schema Schema, out any) error {
	if err := validateSection(section, input, schema); err != nil {
		return err
	}
	if err := DecodeSettings(input, out); err != nil {
		return fmt.Errorf("%s: %w", section, err)
	}
	return nil
}

// DecodeSettings decodes a free-form settings map into out. Values from
// environment variables arrive as strings, so input is weakly typed:
// "512" fills an int, "30s" a time.Duration and "a,b" a []string.
func DecodeSettings(input map[string]any, out any) error {
	if len(input) == 0 {
		return nil
	}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "mapstructure",
		Result:           out,
		WeaklyTypedInput: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
		MatchName: func(mapKey, fieldName string) bool {
			return normalizeKey(mapKey) == normalizeKey(fieldName)
		},
	})
	if err != nil {
		return err
	}
	return decoder.Decode(input)
}

// RequireString ensures a value is present for a required config field.
func RequireString(value, path string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%s is required", path)
	}
	return nil
}

func normalizeKey(value string) string {
	return strings.NewReplacer("_", "", "-", "").Replace(strings.ToLower(value))
}
