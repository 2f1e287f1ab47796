package flatten

import "fmt"

// InputNotFoundError reports an input path that does not resolve to a
// readable file.
type InputNotFoundError struct {
	Path string
	Err  error
}

func (e *InputNotFoundError) Error() string {
	return fmt.Sprintf("input file not found: %s", e.Path)
}

func (e *InputNotFoundError) Unwrap() error { return e.Err }

// InvalidJSONError reports input content that is not well-formed JSON.
type InvalidJSONError struct {
	Path string
	Err  error
}

func (e *InvalidJSONError) Error() string {
	return fmt.Sprintf("invalid JSON in %s: %v", e.Path, e.Err)
}

func (e *InvalidJSONError) Unwrap() error { return e.Err }

// UnsupportedShapeError reports a document root that matches none of the
// three recognized forms (payload.results wrapper, sequence, single object).
type UnsupportedShapeError struct {
	Got string // JSON type of the root value
}

func (e *UnsupportedShapeError) Error() string {
	return fmt.Sprintf("unsupported document shape: root is a %s", e.Got)
}

// MalformedEntryError reports an item or entry that has the wrong type for
// a field the transform must iterate. Path locates the failing structure,
// e.g. "items[2].high_order_text".
type MalformedEntryError struct {
	Path   string
	Reason string
}

func (e *MalformedEntryError) Error() string {
	return fmt.Sprintf("malformed entry at %s: %s", e.Path, e.Reason)
}
