package flatten

import (
	"encoding/json"
	"fmt"
)

// Resolve determines the ordered item sequence for a decoded document.
// Three root shapes are recognized: an object with a payload.results
// sequence, a bare sequence of items, and a single object treated as a
// one-element sequence. Anything else is an UnsupportedShapeError.
func Resolve(doc any) ([]any, error) {
	switch v := doc.(type) {
	case map[string]any:
		if payload, ok := v["payload"].(map[string]any); ok {
			if results, ok := payload["results"].([]any); ok {
				return results, nil
			}
		}
		return []any{v}, nil
	case []any:
		return v, nil
	default:
		return nil, &UnsupportedShapeError{Got: shapeOf(doc)}
	}
}

// shapeOf names the JSON type of a decoded value for error messages.
func shapeOf(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case string:
		return "string"
	case json.Number:
		return "number"
	case []any:
		return "sequence"
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}
