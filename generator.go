package harness

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/ethereum-optimism/infra/harness-report/aggregate"
	"github.com/ethereum-optimism/infra/harness-report/metrics"
	"github.com/ethereum-optimism/infra/harness-report/reporting"
	"github.com/ethereum-optimism/infra/harness-report/results"
	"github.com/ethereum-optimism/infra/harness-report/types"
	"github.com/ethereum/go-ethereum/log"
)

// RunResult describes one completed report generation
type RunResult struct {
	RunID    string
	Summary  *aggregate.Summary
	Output   string        // absolute path of the HTML report, or "-" for stdout
	Duration time.Duration // time spent parsing, aggregating and rendering
}

// Generator turns a results file into an HTML report
type Generator struct {
	config  *Config
	stdout  io.Writer
	stderr  io.Writer
	now     func() time.Time
	tracer  trace.Tracer
	metrics MetricsReporter
	console ResultFormatter
}

// NewGenerator creates a generator. The HTML report goes to stdout when the
// config selects it; the console table always goes to stderr.
func NewGenerator(config *Config, stdout, stderr io.Writer) (*Generator, error) {
	if config == nil {
		return nil, errors.New("config is required")
	}
	if config.Log == nil {
		config.Log = log.Root()
	}

	return &Generator{
		config:  config,
		stdout:  stdout,
		stderr:  stderr,
		now:     time.Now,
		tracer:  otel.Tracer("harness report"),
		metrics: NewDefaultMetricsReporter(),
		console: NewConsoleResultFormatter(config.Log, stderr, config.Title),
	}, nil
}

// Run parses, aggregates and renders the report. Input errors leave the
// output untouched. With FailOnTestFailure set, a report containing failures
// is still written and returned along with a *TestFailureError.
func (g *Generator) Run(ctx context.Context) (*RunResult, error) {
	runID := uuid.New().String()
	logger := g.config.Log.New("run_id", runID)
	start := time.Now()

	logger.Info("Generating report", "input", g.config.Input, "output", g.config.Output)

	report, err := g.parse(ctx, logger)
	if err != nil {
		metrics.RecordErrorDetails("parse", err)
		return nil, NewRuntimeError(fmt.Errorf("failed to parse results: %w", err))
	}

	summary, err := g.aggregate(ctx, logger, report)
	if err != nil {
		metrics.RecordErrorDetails("aggregate", err)
		return nil, NewRuntimeError(fmt.Errorf("failed to aggregate results: %w", err))
	}

	doc, err := g.render(ctx, report, summary)
	if err != nil {
		metrics.RecordErrorDetails("render", err)
		return nil, NewRuntimeError(err)
	}

	result := &RunResult{
		RunID:    runID,
		Summary:  summary,
		Output:   g.config.Output,
		Duration: time.Since(start),
	}

	if g.config.SummaryFile != "" {
		summaryGen := reporting.NewReportGenerator(g.documentBuilder(), reporting.NewTextSummaryFormatter(true), reporting.NewFileWriter(g.config.SummaryFile))
		if err := summaryGen.GenerateReport(doc); err != nil {
			metrics.RecordErrorDetails("summary", err)
			return nil, NewRuntimeError(err)
		}
		logger.Debug("Wrote summary file", "path", g.config.SummaryFile)
	}

	if g.config.PrintSummary {
		if err := g.console.FormatResults(doc); err != nil {
			logger.Warn("Failed to print results table", "err", err)
		}
	}

	g.metrics.ReportResults(runID, summary, report.GenerationDuration(), result.Duration)
	g.exportMetrics(logger)

	logger.Info("Report generated",
		"passed", summary.Total.Passed,
		"total", summary.Total.Total,
		"duration", result.Duration)

	if g.config.FailOnTestFailure && summary.HasFailures() {
		logger.Warn("Report contains failing tests, returning exit code 1")
		return result, NewTestFailureError(fmt.Sprintf("%d of %d tests passed", summary.Total.Passed, summary.Total.Total))
	}
	return result, nil
}

func (g *Generator) parse(ctx context.Context, logger log.Logger) (*types.Report, error) {
	_, span := g.tracer.Start(ctx, "parse")
	defer span.End()

	format := results.DetectFormat(g.config.Input, g.config.InputFormat)
	span.SetAttributes(attribute.String("input", g.config.Input), attribute.String("format", string(format)))
	logger.Debug("Parsing results", "format", format)

	report, err := results.ParseFile(g.config.Input, format)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "parse failed")
		return nil, err
	}
	return report, nil
}

func (g *Generator) aggregate(ctx context.Context, logger log.Logger, report *types.Report) (*aggregate.Summary, error) {
	_, span := g.tracer.Start(ctx, "aggregate")
	defer span.End()

	summary, err := aggregate.Summarize(report)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "aggregate failed")
		return nil, err
	}

	for _, tally := range summary.Inconsistent() {
		logger.Warn("Overview disagrees with test records",
			"component", tally.Component,
			"overview_passed", tally.Overview.Passed,
			"overview_total", tally.Overview.Total,
			"observed_passed", tally.Observed.Passed,
			"observed_total", tally.Observed.Total)
	}
	if recorded := report.RecordedTotals(); recorded != summary.Total {
		logger.Warn("Duplicate overview records were dropped",
			"recorded_passed", recorded.Passed,
			"recorded_total", recorded.Total)
	}

	span.SetAttributes(
		attribute.Int("passed", summary.Total.Passed),
		attribute.Int("total", summary.Total.Total),
	)
	return summary, nil
}

// render builds the document and writes the HTML report. The whole document
// is formatted before anything is written.
func (g *Generator) render(ctx context.Context, report *types.Report, summary *aggregate.Summary) (reporting.Document, error) {
	_, span := g.tracer.Start(ctx, "render")
	defer span.End()

	formatter, err := reporting.NewDefaultHTMLFormatter()
	if err != nil {
		span.RecordError(err)
		return reporting.Document{}, err
	}

	var writer reporting.ReportWriter
	if g.config.WritesToStdout() {
		writer = reporting.NewStreamWriter(g.stdout, "stdout")
	} else {
		writer = reporting.NewFileWriter(g.config.Output)
	}

	doc, err := reporting.NewReportGenerator(g.documentBuilder(), formatter, writer).GenerateFromReport(report, summary, g.now())
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "render failed")
		return doc, err
	}
	return doc, nil
}

func (g *Generator) documentBuilder() *reporting.DocumentBuilder {
	return reporting.NewDocumentBuilder().
		WithTitle(g.config.Title).
		WithStylesheetURL(g.config.StylesheetURL).
		WithANSIStripped(g.config.StripANSI)
}

// exportMetrics writes or pushes metrics when configured. Failures are
// logged and never fail the run.
func (g *Generator) exportMetrics(logger log.Logger) {
	if g.config.MetricsTextfile != "" {
		if err := metrics.WriteTextfile(g.config.MetricsTextfile); err != nil {
			logger.Warn("Failed to export metrics", "err", err)
		}
	}
	if g.config.MetricsPushgateway != "" {
		if err := metrics.Push(g.config.MetricsPushgateway, g.config.MetricsJob); err != nil {
			logger.Warn("Failed to push metrics", "err", err)
		}
	}
}
