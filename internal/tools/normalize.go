package tools

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Normalize flattens a tool result into the single string fed back to the
// model. It never fails: shapes it does not recognise degrade to their
// JSON (or fmt) form.
func Normalize(out Output) string {
	switch o := out.(type) {
	case nil:
		return "null"
	case TextItem:
		return o.Text
	case ItemList:
		parts := make([]string, 0, len(o.Items))
		for _, item := range o.Items {
			parts = append(parts, itemString(item))
		}
		return strings.Join(parts, "\n")
	case Scalar:
		return jsonString(o.Value)
	case Unknown:
		return jsonString(o.Value)
	default:
		return jsonString(o)
	}
}

func itemString(item Output) string {
	switch it := item.(type) {
	case TextItem:
		return it.Text
	case Unknown:
		if s, ok := it.Value.(string); ok {
			return s
		}
		return jsonString(it.Value)
	default:
		return Normalize(item)
	}
}

func jsonString(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(b)
}
