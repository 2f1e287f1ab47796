package mcptools

// --- MCP Tool Types for the server mode (--serve-mcp) ---
// These tools are exposed when the binary runs as an MCP server, so agents
// can call the conversion as structured tools instead of shelling out.

import "github.com/tessella-ai/flatsheet/internal/flatten"

// ConvertFileInput is the input for the convert_file MCP tool.
type ConvertFileInput struct {
	InputPath  string `json:"inputPath" jsonschema:"path to the annotation results JSON file"`
	OutputPath string `json:"outputPath" jsonschema:"path for the generated xlsx file"`
	Policy     string `json:"policy,omitempty" jsonschema:"reasoning policy: per-high-order (default) or per-item"`
}

// ConvertFileOutput is the result of the convert_file MCP tool.
type ConvertFileOutput struct {
	OutputPath string `json:"outputPath,omitempty"`
	RowCount   int    `json:"rowCount"`
	HighOrder  int    `json:"highOrder"`
	LowOrder   int    `json:"lowOrder"`
	Status     string `json:"status"` // "completed" or "failed"
	Message    string `json:"message,omitempty"`
}

// PreviewRowsInput is the input for the preview_rows MCP tool.
type PreviewRowsInput struct {
	InputPath string `json:"inputPath" jsonschema:"path to the annotation results JSON file"`
	Policy    string `json:"policy,omitempty" jsonschema:"reasoning policy: per-high-order (default) or per-item"`
	Limit     int    `json:"limit,omitempty" jsonschema:"maximum number of rows to return (0 = all)"`
}

// PreviewRowsOutput is the result of the preview_rows MCP tool.
type PreviewRowsOutput struct {
	Rows      []flatten.Row `json:"rows"`
	Total     int           `json:"total"`
	Truncated bool          `json:"truncated,omitempty"`
}
