package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/tessella-ai/flatsheet/internal/config"
	"github.com/tessella-ai/flatsheet/internal/excel"
	"github.com/tessella-ai/flatsheet/internal/flatten"
)

// CLI flags parsed from command line.
type cliFlags struct {
	Input    string
	Output   string
	Policy   string
	Preview  bool
	Limit    int
	Verbose  bool
	ServeMCP bool
	Version  bool
}

// version is set by goreleaser at build time.
var version = "dev"

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	var flags cliFlags

	fs := flag.NewFlagSet("flatsheet", flag.ContinueOnError)
	fs.StringVar(&flags.Input, "input", "", "input JSON file path")
	fs.StringVar(&flags.Output, "output", "", "output xlsx file path")
	fs.StringVar(&flags.Policy, "policy", "", "reasoning policy: per-high-order or per-item")
	fs.BoolVar(&flags.Preview, "preview", false, "print flattened rows as JSON instead of writing a spreadsheet")
	fs.IntVar(&flags.Limit, "limit", 0, "maximum rows to print with -preview (0 = all)")
	fs.BoolVar(&flags.Verbose, "verbose", false, "enable verbose output")
	fs.BoolVar(&flags.ServeMCP, "serve-mcp", false, "run as MCP server exposing the conversion tools")
	fs.BoolVar(&flags.Version, "version", false, "print version and exit")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if flags.Version {
		fmt.Println(version)
		return nil
	}

	cfg, err := config.Load(".")
	if err != nil {
		return err
	}

	policyName := flags.Policy
	if policyName == "" {
		policyName = cfg.Policy
	}
	policy, err := flatten.ParsePolicy(policyName)
	if err != nil {
		return err
	}

	logger, err := newLogger(flags.Verbose || cfg.Verbose)
	if err != nil {
		return fmt.Errorf("initialize logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	opts := excel.Options{
		SheetName:      cfg.SheetName,
		MaxColumnWidth: cfg.MaxColumnWidth,
	}

	switch {
	case flags.ServeMCP:
		return runServeMCP(policy, opts, logger)
	case flags.Preview:
		return runPreview(flags.Input, policy, flags.Limit)
	default:
		return runConvert(flags.Input, flags.Output, policy, opts, logger)
	}
}

// newLogger builds the process logger. Verbose mode lowers the level to
// debug; otherwise only info and above reach stderr.
func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return cfg.Build()
}
