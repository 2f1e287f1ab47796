// Package excel serializes flattened rows into a styled xlsx workbook.
// It is a presentation boundary: row order and the field-to-column mapping
// are preserved exactly as produced by the flatten engine.
package excel

import (
	"encoding/json"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/tessella-ai/flatsheet/internal/flatten"
)

// Options control worksheet presentation.
type Options struct {
	// SheetName is the single worksheet's name. Defaults to "Sheet1".
	SheetName string

	// MaxColumnWidth caps the auto-fitted column width, in character
	// widths. Defaults to 50.
	MaxColumnWidth float64
}

const (
	defaultSheetName = "Sheet1"
	defaultMaxWidth  = 50
)

func (o Options) withDefaults() Options {
	if o.SheetName == "" {
		o.SheetName = defaultSheetName
	}
	if o.MaxColumnWidth <= 0 {
		o.MaxColumnWidth = defaultMaxWidth
	}
	return o
}

// Write creates a single-sheet workbook at path: one bold, bordered header
// row of the seven column names, one wrapped top-aligned bordered row per
// record, column widths fitted to content. The file is written in one shot;
// nothing is left on disk if any step fails before SaveAs.
func Write(path string, rows []flatten.Row, opts Options) error {
	opts = opts.withDefaults()

	f := excelize.NewFile()
	defer f.Close()

	sheet := opts.SheetName
	if sheet != defaultSheetName {
		if err := f.SetSheetName(defaultSheetName, sheet); err != nil {
			return fmt.Errorf("rename sheet: %w", err)
		}
	}

	headers := flatten.Headers()
	widths := make([]int, len(headers))

	for col, h := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return fmt.Errorf("header cell name: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return fmt.Errorf("write header %q: %w", h, err)
		}
		widths[col] = len(h)
	}

	for i, row := range rows {
		for col, v := range row.Cells() {
			if n := len(cellString(v)); n > widths[col] {
				widths[col] = n
			}
			if v == nil {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return fmt.Errorf("cell name: %w", err)
			}
			if err := f.SetCellValue(sheet, cell, cellValue(v)); err != nil {
				return fmt.Errorf("write row %d: %w", i+1, err)
			}
		}
	}

	if err := applyStyles(f, sheet, len(rows)); err != nil {
		return err
	}

	for col, w := range widths {
		name, err := excelize.ColumnNumberToName(col + 1)
		if err != nil {
			return fmt.Errorf("column name: %w", err)
		}
		width := float64(w + 2)
		if width > opts.MaxColumnWidth {
			width = opts.MaxColumnWidth
		}
		if err := f.SetColWidth(sheet, name, name, width); err != nil {
			return fmt.Errorf("set column width: %w", err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("write workbook %s: %w", path, err)
	}
	return nil
}

func applyStyles(f *excelize.File, sheet string, dataRows int) error {
	thin := []excelize.Border{
		{Type: "left", Style: 1, Color: "000000"},
		{Type: "right", Style: 1, Color: "000000"},
		{Type: "top", Style: 1, Color: "000000"},
		{Type: "bottom", Style: 1, Color: "000000"},
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{WrapText: true, Vertical: "center"},
		Border:    thin,
	})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}
	dataStyle, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{WrapText: true, Vertical: "top"},
		Border:    thin,
	})
	if err != nil {
		return fmt.Errorf("data style: %w", err)
	}

	lastCol, err := excelize.ColumnNumberToName(len(flatten.Headers()))
	if err != nil {
		return fmt.Errorf("last column name: %w", err)
	}

	if err := f.SetCellStyle(sheet, "A1", lastCol+"1", headerStyle); err != nil {
		return fmt.Errorf("style header row: %w", err)
	}
	if dataRows > 0 {
		last := fmt.Sprintf("%s%d", lastCol, dataRows+1)
		if err := f.SetCellStyle(sheet, "A2", last, dataStyle); err != nil {
			return fmt.Errorf("style data rows: %w", err)
		}
	}
	return nil
}

// cellValue converts a decoded JSON scalar to the type excelize should
// store: numbers become numeric cells, everything else keeps its Go type.
func cellValue(v any) any {
	if n, ok := v.(json.Number); ok {
		if i, err := n.Int64(); err == nil {
			return i
		}
		if f, err := n.Float64(); err == nil {
			return f
		}
		return n.String()
	}
	return v
}

// cellString renders a cell for width measurement.
func cellString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	default:
		return fmt.Sprintf("%v", t)
	}
}
