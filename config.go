package harness

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/urfave/cli/v2"

	"github.com/ethereum-optimism/infra/harness-report/flags"
	"github.com/ethereum-optimism/infra/harness-report/results"
	"github.com/ethereum/go-ethereum/log"
)

// Config holds the application configuration
type Config struct {
	Input              string         // Results file to read
	Output             string         // HTML destination, flags.StdoutPath for stdout
	InputFormat        results.Format // Decoder for Input, FormatAuto picks by extension
	Title              string
	StylesheetURL      string // Empty disables the external stylesheet
	StripANSI          bool   // Remove ANSI escape sequences from program outputs
	SummaryFile        string // Optional plain-text summary destination
	PrintSummary       bool   // Print a results table to stderr
	FailOnTestFailure  bool   // Exit with code 1 when any overview reports failures
	MetricsTextfile    string
	MetricsPushgateway string
	MetricsJob         string
	Log                log.Logger
}

// NewConfig creates a new Config from cli context
func NewConfig(ctx *cli.Context, log log.Logger) (*Config, error) {
	// Parse flags
	if err := flags.CheckRequired(ctx); err != nil {
		return nil, fmt.Errorf("missing required flags: %w", err)
	}

	input := ctx.String(flags.Input.Name)
	if input == "" {
		return nil, errors.New("input file is required")
	}

	// Validate input format (this should already be validated by the CLI flag, but double-check)
	format := results.Format(ctx.String(flags.InputFormat.Name))
	if !format.IsValid() {
		return nil, fmt.Errorf("invalid input format: %s", format)
	}

	// Resolve the absolute paths
	absInput, err := filepath.Abs(input)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve absolute path for input '%s': %w", input, err)
	}

	output := ctx.String(flags.Output.Name)
	if output == "" {
		output = flags.StdoutPath
	}
	if output != flags.StdoutPath {
		output, err = filepath.Abs(output)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve absolute path for output '%s': %w", ctx.String(flags.Output.Name), err)
		}
	}

	summaryFile := ctx.String(flags.SummaryFile.Name)
	if summaryFile != "" {
		summaryFile, err = filepath.Abs(summaryFile)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve absolute path for summary file '%s': %w", ctx.String(flags.SummaryFile.Name), err)
		}
	}

	return &Config{
		Input:              absInput,
		Output:             output,
		InputFormat:        format,
		Title:              ctx.String(flags.Title.Name),
		StylesheetURL:      ctx.String(flags.StylesheetURL.Name),
		StripANSI:          ctx.Bool(flags.StripANSI.Name),
		SummaryFile:        summaryFile,
		PrintSummary:       ctx.Bool(flags.PrintSummary.Name),
		FailOnTestFailure:  ctx.Bool(flags.FailOnTestFailure.Name),
		MetricsTextfile:    ctx.String(flags.MetricsTextfile.Name),
		MetricsPushgateway: ctx.String(flags.MetricsPushgateway.Name),
		MetricsJob:         ctx.String(flags.MetricsJob.Name),
		Log:                log,
	}, nil
}

// WritesToStdout reports whether the HTML report goes to standard output
func (c *Config) WritesToStdout() bool {
	return c.Output == flags.StdoutPath
}
