package metrics

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/push"

	"github.com/ethereum-optimism/infra/harness-report/types"
)

const (
	MetricsNamespace = "harness_report"
	DefaultJobName   = "harness_report"
)

var (
	nonAlphanumericRegex = regexp.MustCompile(`[^a-zA-Z ]+`)

	errorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: MetricsNamespace,
		Name:      "errors_total",
		Help:      "Count of errors",
	}, []string{
		"error",
	})

	componentPassed = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: MetricsNamespace,
		Name:      "component_passed",
		Help:      "Passed count reported by the harness overview of a component",
	}, []string{
		"run_id",
		"component",
	})

	componentTotal = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: MetricsNamespace,
		Name:      "component_total",
		Help:      "Total count reported by the harness overview of a component",
	}, []string{
		"run_id",
		"component",
	})

	componentObservedPassed = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: MetricsNamespace,
		Name:      "component_observed_passed",
		Help:      "Passing test records found for a component",
	}, []string{
		"run_id",
		"component",
	})

	componentObservedTotal = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: MetricsNamespace,
		Name:      "component_observed_total",
		Help:      "Test records found for a component",
	}, []string{
		"run_id",
		"component",
	})

	reportPassed = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: MetricsNamespace,
		Name:      "report_passed",
		Help:      "Grand total of passed tests",
	}, []string{
		"run_id",
	})

	reportTotal = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: MetricsNamespace,
		Name:      "report_total",
		Help:      "Grand total of tests",
	}, []string{
		"run_id",
	})

	reportPassRate = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: MetricsNamespace,
		Name:      "report_pass_rate",
		Help:      "Percentage of passed tests in the grand total",
	}, []string{
		"run_id",
	})

	harnessDuration = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: MetricsNamespace,
		Name:      "harness_duration_seconds",
		Help:      "Wall-clock time the harness took to produce the results",
	}, []string{
		"run_id",
	})

	renderDuration = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: MetricsNamespace,
		Name:      "render_duration_seconds",
		Help:      "Time taken to parse, aggregate and render the report",
	}, []string{
		"run_id",
	})
)

// errToLabel tries to make the error string a more valid Prometheus label
func errToLabel(err error) string {
	if err == nil {
		return "nil"
	}
	errClean := nonAlphanumericRegex.ReplaceAllString(err.Error(), "")
	errClean = strings.ReplaceAll(errClean, " ", "_")
	errClean = strings.ReplaceAll(errClean, "__", "_")
	return errClean
}

func RecordError(error string) {
	log.Debug("metric inc",
		"m", "errors_total",
		"error", error,
	)
	errorsTotal.WithLabelValues(error).Inc()
}

// RecordErrorDetails concats the error message to the label
// and also tries to clean the label to be a valid Prometheus label
func RecordErrorDetails(label string, err error) {
	if err == nil {
		return
	}
	label = fmt.Sprintf("%s.%s", label, errToLabel(err))
	RecordError(label)
}

// RecordComponent records the overview and observed counts of one component
func RecordComponent(runID string, component types.Component, overview, observed types.Totals) {
	log.Debug("metric set",
		"m", "component",
		"run_id", runID,
		"component", component,
		"passed", overview.Passed,
		"total", overview.Total,
		"observed_passed", observed.Passed,
		"observed_total", observed.Total)
	name := component.String()
	componentPassed.WithLabelValues(runID, name).Set(float64(overview.Passed))
	componentTotal.WithLabelValues(runID, name).Set(float64(overview.Total))
	componentObservedPassed.WithLabelValues(runID, name).Set(float64(observed.Passed))
	componentObservedTotal.WithLabelValues(runID, name).Set(float64(observed.Total))
}

// RecordReport records the grand total, pass rate and timings of a rendered report
func RecordReport(runID string, total types.Totals, passRate float64, harness time.Duration, render time.Duration) {
	log.Debug("metric set",
		"m", "report",
		"run_id", runID,
		"passed", total.Passed,
		"total", total.Total,
		"pass_rate", passRate)
	reportPassed.WithLabelValues(runID).Set(float64(total.Passed))
	reportTotal.WithLabelValues(runID).Set(float64(total.Total))
	reportPassRate.WithLabelValues(runID).Set(passRate)
	harnessDuration.WithLabelValues(runID).Set(harness.Seconds())
	renderDuration.WithLabelValues(runID).Set(render.Seconds())
}

// WriteTextfile dumps every registered metric to path in the text exposition
// format, for pickup by the node exporter textfile collector.
func WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, prometheus.DefaultGatherer); err != nil {
		return fmt.Errorf("failed to write metrics textfile %s: %w", path, err)
	}
	return nil
}

// Push sends every registered metric to a Prometheus Pushgateway
func Push(url, job string) error {
	if job == "" {
		job = DefaultJobName
	}
	if err := push.New(url, job).Gatherer(prometheus.DefaultGatherer).Push(); err != nil {
		return fmt.Errorf("failed to push metrics to %s: %w", url, err)
	}
	return nil
}
