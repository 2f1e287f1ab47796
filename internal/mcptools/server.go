package mcptools

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// version is set by the linker at build time.
var version = "dev"

// NewConvertMCPServer creates an MCP server with the 2 flatsheet tools
// registered: convert_file and preview_rows.
func NewConvertMCPServer(svc *ConvertService) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "flatsheet",
		Version: version,
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "convert_file",
		Description: "Convert an annotation results JSON file into a styled xlsx spreadsheet. Returns the row counts and output path.",
	}, svc.ConvertFile)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "preview_rows",
		Description: "Flatten an annotation results JSON file and return the output rows as JSON without writing a spreadsheet.",
	}, svc.PreviewRows)

	return server
}

// RunConvertMCPServerStdio runs the MCP server on stdio transport, blocking
// until stdin is closed or the context is cancelled.
func RunConvertMCPServerStdio(ctx context.Context, server *mcp.Server) error {
	return server.Run(ctx, &mcp.StdioTransport{})
}
