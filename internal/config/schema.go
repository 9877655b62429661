package config

import (
	"sort"
	"strings"
)

// Schema lists the keys a provider's settings section accepts.
type Schema struct {
	Required     []string
	Optional     []string
	AllowUnknown bool
}

// SettingsError reports what was wrong with a settings section.
type SettingsError struct {
	// Section is the config path of the map, e.g. "llm.settings".
	Section string
	Missing []string
	Unknown []string
}

func (e *SettingsError) Error() string {
	var parts []string
	if len(e.Missing) > 0 {
		parts = append(parts, "missing: "+strings.Join(e.Missing, ", "))
	}
	if len(e.Unknown) > 0 {
		parts = append(parts, "unknown: "+strings.Join(e.Unknown, ", "))
	}
	msg := strings.Join(parts, "; ")
	if e.Section != "" {
		msg = e.Section + ": " + msg
	}
	return msg
}

// ValidateSettings checks input against schema. Keys match ignoring case,
// underscores and hyphens, so "apiKey" satisfies "api_key". A blank
// string counts as missing.
func ValidateSettings(input map[string]any, schema Schema) error {
	return validateSection("", input, schema)
}

func validateSection(section string, input map[string]any, schema Schema) error {
	allowed := make(map[string]struct{}, len(schema.Required)+len(schema.Optional))
	for _, k := range schema.Optional {
		allowed[normalizeKey(k)] = struct{}{}
	}
	present := make(map[string]bool, len(input))
	errs := &SettingsError{Section: section}
	for k, v := range input {
		nk := normalizeKey(k)
		present[nk] = !isBlank(v)
		if _, ok := allowed[nk]; !ok && !schema.AllowUnknown && !isRequired(schema, nk) {
			errs.Unknown = append(errs.Unknown, k)
		}
	}
	for _, k := range schema.Required {
		if !present[normalizeKey(k)] {
			errs.Missing = append(errs.Missing, k)
		}
	}
	if len(errs.Missing) == 0 && len(errs.Unknown) == 0 {
		return nil
	}
	sort.Strings(errs.Missing)
	sort.Strings(errs.Unknown)
	return errs
}

func isRequired(schema Schema, nk string) bool {
	for _, k := range schema.Required {
		if normalizeKey(k) == nk {
			return true
		}
	}
	return false
}

func isBlank(v any) bool {
	if v == nil {
		return true
	}
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s) == ""
	}
	return false
}
