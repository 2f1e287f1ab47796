package flatten

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
)

// Load reads and decodes the JSON document at path. Numbers are decoded as
// json.Number so their source text survives into the policies' lookup and
// matching rules.
func Load(path string) (any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &InputNotFoundError{Path: path, Err: err}
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, &InvalidJSONError{Path: path, Err: err}
	}
	if dec.More() {
		return nil, &InvalidJSONError{Path: path, Err: errors.New("trailing data after document")}
	}
	return doc, nil
}
