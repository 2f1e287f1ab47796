package main

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/tessella-ai/flatsheet/internal/excel"
	"github.com/tessella-ai/flatsheet/internal/flatten"
)

func runConvert(input, output string, policy flatten.Policy, opts excel.Options, logger *zap.Logger) error {
	if input == "" || output == "" {
		return fmt.Errorf("usage: flatsheet -input <results.json> -output <out.xlsx>")
	}

	doc, err := flatten.Load(input)
	if err != nil {
		return err
	}

	rows, err := flatten.Flatten(doc, policy)
	if err != nil {
		return err
	}
	logger.Debug("flattened document",
		zap.String("input", input),
		zap.Stringer("policy", policy),
		zap.Int("rows", len(rows)))

	if err := excel.Write(output, rows, opts); err != nil {
		return err
	}

	fmt.Printf("Wrote %d rows to %s\n", len(rows), output)
	return nil
}
