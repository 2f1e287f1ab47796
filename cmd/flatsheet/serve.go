package main

import (
	"context"

	"go.uber.org/zap"

	"github.com/tessella-ai/flatsheet/internal/excel"
	"github.com/tessella-ai/flatsheet/internal/flatten"
	"github.com/tessella-ai/flatsheet/internal/mcptools"
)

// runServeMCP serves the conversion tools over MCP stdio, blocking until
// stdin closes.
func runServeMCP(policy flatten.Policy, opts excel.Options, logger *zap.Logger) error {
	svc := mcptools.NewConvertService(policy, opts, logger)
	server := mcptools.NewConvertMCPServer(svc)
	return mcptools.RunConvertMCPServerStdio(context.Background(), server)
}
