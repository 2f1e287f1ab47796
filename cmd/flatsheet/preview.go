package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/tessella-ai/flatsheet/internal/flatten"
)

// runPreview flattens the input and prints the rows as JSON on stdout,
// without writing a spreadsheet.
func runPreview(input string, policy flatten.Policy, limit int) error {
	if input == "" {
		return fmt.Errorf("usage: flatsheet -preview -input <results.json>")
	}

	doc, err := flatten.Load(input)
	if err != nil {
		return err
	}

	rows, err := flatten.Flatten(doc, policy)
	if err != nil {
		return err
	}
	if limit > 0 && limit < len(rows) {
		rows = rows[:limit]
	}

	out, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal JSON: %w", err)
	}

	_, err = os.Stdout.Write(append(out, '\n'))
	return err
}
