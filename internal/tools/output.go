package tools

// Output is the shape of a tool result. It is one of Scalar, TextItem,
// ItemList or Unknown.
type Output interface {
	isOutput()
}

// Scalar is a plain string, number, boolean or null.
type Scalar struct {
	Value any
}

// TextItem is a structured value exposing a textual field.
type TextItem struct {
	Text string
}

// ItemList is a sequence of content items, each a TextItem or Unknown.
type ItemList struct {
	Items []Output
}

// Unknown is any other structured value, kept as-is.
type Unknown struct {
	Value any
}

func (Scalar) isOutput()   {}
func (TextItem) isOutput() {}
func (ItemList) isOutput() {}
func (Unknown) isOutput()  {}

// textFields are checked in order when looking for an object's text.
var textFields = []string{"text", "content"}

// FromValue classifies a decoded JSON value.
func FromValue(v any) Output {
	switch val := v.(type) {
	case nil, string, bool, float64, float32, int, int64, int32, uint, uint64, uint32:
		return Scalar{Value: val}
	case map[string]any:
		if text, ok := textOf(val); ok {
			return TextItem{Text: text}
		}
		return Unknown{Value: val}
	case []any:
		items := make([]Output, 0, len(val))
		for _, item := range val {
			items = append(items, itemFromValue(item))
		}
		return ItemList{Items: items}
	case Output:
		return val
	default:
		return Unknown{Value: val}
	}
}

// itemFromValue classifies a list element: anything without a textual
// field is Unknown, including scalars.
func itemFromValue(v any) Output {
	if obj, ok := v.(map[string]any); ok {
		if text, ok := textOf(obj); ok {
			return TextItem{Text: text}
		}
	}
	return Unknown{Value: v}
}

func textOf(obj map[string]any) (string, bool) {
	for _, field := range textFields {
		if s, ok := obj[field].(string); ok {
			return s, true
		}
	}
	return "", false
}
