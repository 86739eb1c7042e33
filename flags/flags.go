package flags

import (
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"

	opservice "github.com/ethereum-optimism/optimism/op-service"
	oplog "github.com/ethereum-optimism/optimism/op-service/log"

	"github.com/ethereum-optimism/infra/harness-report/reporting"
	"github.com/ethereum-optimism/infra/harness-report/results"
)

const EnvVarPrefix = "HARNESS_REPORT"

// StdoutPath selects standard output as the HTML destination
const StdoutPath = "-"

var (
	Input = &cli.StringFlag{
		Name:     "input",
		Value:    "",
		Required: true,
		EnvVars:  opservice.PrefixEnvVar(EnvVarPrefix, "INPUT"),
		Usage:    "Path to the harness results file (eg. 'results.xml')",
	}
	Output = &cli.StringFlag{
		Name:    "output",
		Value:   StdoutPath,
		EnvVars: opservice.PrefixEnvVar(EnvVarPrefix, "OUTPUT"),
		Usage:   "Path of the HTML report to write, '-' for stdout",
	}
	InputFormat = &cli.StringFlag{
		Name:    "input-format",
		Value:   string(results.FormatAuto),
		EnvVars: opservice.PrefixEnvVar(EnvVarPrefix, "INPUT_FORMAT"),
		Usage:   fmt.Sprintf("Format of the results file. Options: %s", formatOptions()),
		Action: func(ctx *cli.Context, value string) error {
			return validateInputFormat(value)
		},
	}
	Title = &cli.StringFlag{
		Name:    "title",
		Value:   reporting.DefaultTitle,
		EnvVars: opservice.PrefixEnvVar(EnvVarPrefix, "TITLE"),
		Usage:   "Title of the HTML document",
	}
	StylesheetURL = &cli.StringFlag{
		Name:    "stylesheet-url",
		Value:   reporting.DefaultStylesheetURL,
		EnvVars: opservice.PrefixEnvVar(EnvVarPrefix, "STYLESHEET_URL"),
		Usage:   "External stylesheet linked from the HTML report. Empty disables the link",
	}
	StripANSI = &cli.BoolFlag{
		Name:    "strip-ansi",
		Value:   false,
		EnvVars: opservice.PrefixEnvVar(EnvVarPrefix, "STRIP_ANSI"),
		Usage:   "Remove ANSI escape sequences from program outputs",
	}
	SummaryFile = &cli.StringFlag{
		Name:    "summary-file",
		Value:   "",
		EnvVars: opservice.PrefixEnvVar(EnvVarPrefix, "SUMMARY_FILE"),
		Usage:   "Optional path of a plain-text summary listing failing tests",
	}
	PrintSummary = &cli.BoolFlag{
		Name:    "print-summary",
		Value:   true,
		EnvVars: opservice.PrefixEnvVar(EnvVarPrefix, "PRINT_SUMMARY"),
		Usage:   "Print a results table to stderr",
	}
	FailOnTestFailure = &cli.BoolFlag{
		Name:    "fail-on-test-failure",
		Value:   false,
		EnvVars: opservice.PrefixEnvVar(EnvVarPrefix, "FAIL_ON_TEST_FAILURE"),
		Usage:   "Exit with code 1 when any component reports failing tests",
	}
	MetricsTextfile = &cli.StringFlag{
		Name:    "metrics.textfile",
		Value:   "",
		EnvVars: opservice.PrefixEnvVar(EnvVarPrefix, "METRICS_TEXTFILE"),
		Usage:   "Write Prometheus metrics in text format to this path",
	}
	MetricsPushgateway = &cli.StringFlag{
		Name:    "metrics.pushgateway",
		Value:   "",
		EnvVars: opservice.PrefixEnvVar(EnvVarPrefix, "METRICS_PUSHGATEWAY"),
		Usage:   "Push metrics to the Prometheus Pushgateway at this URL",
	}
	MetricsJob = &cli.StringFlag{
		Name:    "metrics.job",
		Value:   "harness_report",
		EnvVars: opservice.PrefixEnvVar(EnvVarPrefix, "METRICS_JOB"),
		Usage:   "Job name used when pushing metrics",
	}
)

var requiredFlags = []cli.Flag{
	Input,
}

var optionalFlags = []cli.Flag{
	Output,
	InputFormat,
	Title,
	StylesheetURL,
	StripANSI,
	SummaryFile,
	PrintSummary,
	FailOnTestFailure,
	MetricsTextfile,
	MetricsPushgateway,
	MetricsJob,
}
var Flags []cli.Flag

func init() {
	optionalFlags = append(optionalFlags, oplog.CLIFlags(EnvVarPrefix)...)

	Flags = append(requiredFlags, optionalFlags...)
}

func CheckRequired(ctx *cli.Context) error {
	for _, f := range requiredFlags {
		if !ctx.IsSet(f.Names()[0]) {
			return fmt.Errorf("flag %s is required", f.Names()[0])
		}
	}
	return nil
}

func formatOptions() string {
	formats := results.ValidFormats()
	names := make([]string, len(formats))
	for i, f := range formats {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}

func validateInputFormat(value string) error {
	if !results.Format(value).IsValid() {
		return fmt.Errorf("input-format must be one of: %s", formatOptions())
	}
	return nil
}
