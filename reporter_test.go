package harness

import (
	"testing"
	"time"

	"github.com/ethereum-optimism/infra/harness-report/aggregate"
	"github.com/ethereum-optimism/infra/harness-report/types"
)

// TestDefaultMetricsReporter_ReportResults tests the metrics reporter
func TestDefaultMetricsReporter_ReportResults(t *testing.T) {
	// just test that it doesn't panic
	defer func() {
		if r := recover(); r != nil {
			t.Errorf("ReportResults panic'd: %v", r)
		}
	}()

	summary := &aggregate.Summary{
		Components: []aggregate.ComponentTally{
			{Component: types.ComponentLexer, Overview: types.Totals{Passed: 2, Total: 3}, Observed: types.Totals{Passed: 1, Total: 2}},
			{Component: types.ComponentRegalloc},
		},
		Total: types.Totals{Passed: 2, Total: 3},
	}

	NewDefaultMetricsReporter().ReportResults("test-run-1", summary, 125*time.Second, 10*time.Millisecond)
}
