package harness

import (
	"time"

	"github.com/ethereum-optimism/infra/harness-report/aggregate"
	"github.com/ethereum-optimism/infra/harness-report/metrics"
)

// MetricsReporter is responsible for reporting metrics from a rendered report.
type MetricsReporter interface {
	ReportResults(runID string, summary *aggregate.Summary, harnessDuration, renderDuration time.Duration)
}

// DefaultMetricsReporter implements the MetricsReporter interface.
type DefaultMetricsReporter struct{}

// NewDefaultMetricsReporter creates a new DefaultMetricsReporter.
func NewDefaultMetricsReporter() *DefaultMetricsReporter {
	return &DefaultMetricsReporter{}
}

// ReportResults records the per-component totals, the grand total and its pass rate.
func (r *DefaultMetricsReporter) ReportResults(runID string, summary *aggregate.Summary, harnessDuration, renderDuration time.Duration) {
	for _, tally := range summary.Components {
		metrics.RecordComponent(runID, tally.Component, tally.Overview, tally.Observed)
	}
	metrics.RecordReport(runID, summary.Total, summary.PassRate(), harnessDuration, renderDuration)
}
