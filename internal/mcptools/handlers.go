package mcptools

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/tessella-ai/flatsheet/internal/excel"
	"github.com/tessella-ai/flatsheet/internal/flatten"
)

// ConvertService handles MCP tool calls for the flatsheet server mode.
// It wraps the same load, flatten, and write pipeline the CLI runs.
type ConvertService struct {
	defaultPolicy flatten.Policy
	excelOpts     excel.Options
	logger        *zap.Logger
}

// NewConvertService creates a ConvertService with the given defaults.
// A nil logger disables logging.
func NewConvertService(defaultPolicy flatten.Policy, excelOpts excel.Options, logger *zap.Logger) *ConvertService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ConvertService{
		defaultPolicy: defaultPolicy,
		excelOpts:     excelOpts,
		logger:        logger,
	}
}

// ConvertFile runs the full pipeline and writes the workbook.
func (s *ConvertService) ConvertFile(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input ConvertFileInput,
) (*mcp.CallToolResult, ConvertFileOutput, error) {
	if input.InputPath == "" || input.OutputPath == "" {
		return nil, ConvertFileOutput{
			Status:  "failed",
			Message: "inputPath and outputPath are required",
		}, fmt.Errorf("inputPath and outputPath are required")
	}

	policy, err := s.resolvePolicy(input.Policy)
	if err != nil {
		return nil, ConvertFileOutput{Status: "failed", Message: err.Error()}, err
	}

	rows, err := s.flattenFile(input.InputPath, policy)
	if err != nil {
		return nil, ConvertFileOutput{Status: "failed", Message: err.Error()}, nil
	}

	if err := excel.Write(input.OutputPath, rows, s.excelOpts); err != nil {
		return nil, ConvertFileOutput{Status: "failed", Message: err.Error()}, nil
	}

	high := countHighOrder(rows)
	s.logger.Info("converted annotation results",
		zap.String("input", input.InputPath),
		zap.String("output", input.OutputPath),
		zap.Stringer("policy", policy),
		zap.Int("rows", len(rows)))

	return nil, ConvertFileOutput{
		OutputPath: input.OutputPath,
		RowCount:   len(rows),
		HighOrder:  high,
		LowOrder:   len(rows) - high,
		Status:     "completed",
	}, nil
}

// PreviewRows runs load and flatten only, returning the rows as JSON.
func (s *ConvertService) PreviewRows(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input PreviewRowsInput,
) (*mcp.CallToolResult, PreviewRowsOutput, error) {
	if input.InputPath == "" {
		return nil, PreviewRowsOutput{}, fmt.Errorf("inputPath is required")
	}

	policy, err := s.resolvePolicy(input.Policy)
	if err != nil {
		return nil, PreviewRowsOutput{}, err
	}

	rows, err := s.flattenFile(input.InputPath, policy)
	if err != nil {
		return nil, PreviewRowsOutput{}, err
	}

	out := PreviewRowsOutput{Rows: rows, Total: len(rows)}
	if input.Limit > 0 && input.Limit < len(rows) {
		out.Rows = rows[:input.Limit]
		out.Truncated = true
	}
	return nil, out, nil
}

func (s *ConvertService) resolvePolicy(name string) (flatten.Policy, error) {
	if name == "" {
		return s.defaultPolicy, nil
	}
	return flatten.ParsePolicy(name)
}

func (s *ConvertService) flattenFile(path string, policy flatten.Policy) ([]flatten.Row, error) {
	doc, err := flatten.Load(path)
	if err != nil {
		return nil, err
	}
	return flatten.Flatten(doc, policy)
}

func countHighOrder(rows []flatten.Row) int {
	n := 0
	for _, r := range rows {
		if r.TextType == "High-Order Text" {
			n++
		}
	}
	return n
}
