package types

import (
	"sort"
	"time"
)

// OutputNotAvailable is displayed when a test record carries no output attribute.
// It is distinct from an explicitly empty output.
const OutputNotAvailable = "N/A"

// TestCase captures the outcome of a single harness test
type TestCase struct {
	Component      Component
	Name           string
	ActualResult   string // exit-code-like token, compared verbatim
	ExpectedResult string
	ActualOutput   string // OutputNotAvailable when absent from the input
	ExpectedOutput string
}

// Passed reports whether the actual result token equals the expected one
func (tc TestCase) Passed() bool {
	return tc.ActualResult == tc.ExpectedResult
}

// ComponentOverview is the pass/total pair reported for one component.
// It is sourced independently of the TestCase records and may disagree with them.
type ComponentOverview struct {
	Component Component
	Passed    int
	Total     int
}

// Totals is a plain passed/total pair
type Totals struct {
	Passed int
	Total  int
}

// Add returns the element-wise sum of t and other
func (t Totals) Add(other Totals) Totals {
	return Totals{Passed: t.Passed + other.Passed, Total: t.Total + other.Total}
}

// Report is the validated in-memory form of one harness run.
// It is read-only once built; accessors hand out copies.
type Report struct {
	generationDuration time.Duration
	overviews          map[Component]ComponentOverview
	tests              map[Component]map[string]TestCase
	recordedTotals     Totals
}

// GenerationDuration is the wall-clock time the harness took to produce the results
func (r *Report) GenerationDuration() time.Duration {
	return r.generationDuration
}

// Overview returns the overview for c and whether one was recorded
func (r *Report) Overview(c Component) (ComponentOverview, bool) {
	o, ok := r.overviews[c]
	return o, ok
}

// Tests returns the test cases of c sorted by name
func (r *Report) Tests(c Component) []TestCase {
	byName := r.tests[c]
	out := make([]TestCase, 0, len(byName))
	for _, tc := range byName {
		out = append(out, tc)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Name < out[j].Name
	})
	return out
}

// TestCount returns the number of distinct test cases recorded for c
func (r *Report) TestCount(c Component) int {
	return len(r.tests[c])
}

// RecordedTotals is the running sum of every overview record seen while
// parsing, duplicates included.
func (r *Report) RecordedTotals() Totals {
	return r.recordedTotals
}

// ReportBuilder accumulates records into a Report
type ReportBuilder struct {
	generationDuration time.Duration
	overviews          map[Component]ComponentOverview
	tests              map[Component]map[string]TestCase
	recordedTotals     Totals
}

// NewReportBuilder creates a new report builder
func NewReportBuilder() *ReportBuilder {
	return &ReportBuilder{
		overviews: make(map[Component]ComponentOverview),
		tests:     make(map[Component]map[string]TestCase),
	}
}

// WithGenerationDuration sets the harness run duration; later calls win
func (b *ReportBuilder) WithGenerationDuration(d time.Duration) *ReportBuilder {
	b.generationDuration = d
	return b
}

// AddOverview records an overview. A later overview for the same component
// replaces the earlier one, but both count towards the recorded totals.
func (b *ReportBuilder) AddOverview(o ComponentOverview) *ReportBuilder {
	b.overviews[o.Component] = o
	b.recordedTotals = b.recordedTotals.Add(Totals{Passed: o.Passed, Total: o.Total})
	return b
}

// AddTest records a test case; a later test with the same component and name wins
func (b *ReportBuilder) AddTest(tc TestCase) *ReportBuilder {
	byName, ok := b.tests[tc.Component]
	if !ok {
		byName = make(map[string]TestCase)
		b.tests[tc.Component] = byName
	}
	byName[tc.Name] = tc
	return b
}

// Build returns a Report holding a snapshot of the builder's state
func (b *ReportBuilder) Build() *Report {
	overviews := make(map[Component]ComponentOverview, len(b.overviews))
	for c, o := range b.overviews {
		overviews[c] = o
	}
	tests := make(map[Component]map[string]TestCase, len(b.tests))
	for c, byName := range b.tests {
		cp := make(map[string]TestCase, len(byName))
		for name, tc := range byName {
			cp[name] = tc
		}
		tests[c] = cp
	}
	return &Report{
		generationDuration: b.generationDuration,
		overviews:          overviews,
		tests:              tests,
		recordedTotals:     b.recordedTotals,
	}
}
