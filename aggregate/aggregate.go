// Package aggregate computes the per-component and overall rollups shown in
// the report overview.
package aggregate

import (
	"github.com/ethereum-optimism/infra/harness-report/types"
)

// ComponentTally is the rollup for one component
type ComponentTally struct {
	Component types.Component
	// Overview is the pass/total pair from the component's overview record.
	Overview types.Totals
	// Observed counts the detailed test records. It is informational only and
	// never replaces Overview.
	Observed types.Totals
}

// Consistent reports whether the overview record agrees with the detailed tests
func (t ComponentTally) Consistent() bool {
	return t.Overview == t.Observed
}

// Summary holds the rollups for a report
type Summary struct {
	Components []ComponentTally // in types.Components order
	Total      types.Totals     // sum of the overview pairs
}

// Component returns the tally for c
func (s *Summary) Component(c types.Component) (ComponentTally, bool) {
	for _, tally := range s.Components {
		if tally.Component == c {
			return tally, true
		}
	}
	return ComponentTally{}, false
}

// HasFailures reports whether any overview has fewer passes than cases
func (s *Summary) HasFailures() bool {
	return s.Total.Passed < s.Total.Total
}

// Inconsistent returns the components whose overview disagrees with their tests
func (s *Summary) Inconsistent() []ComponentTally {
	var out []ComponentTally
	for _, tally := range s.Components {
		if !tally.Consistent() {
			out = append(out, tally)
		}
	}
	return out
}

// PassRate returns the overall pass percentage, 0 when there are no cases
func (s *Summary) PassRate() float64 {
	if s.Total.Total == 0 {
		return 0
	}
	return float64(s.Total.Passed) / float64(s.Total.Total) * 100
}

// Summarize builds the Summary for report. Every component must have an
// overview; the first one missing yields an *types.IncompleteReportError.
func Summarize(report *types.Report) (*Summary, error) {
	summary := &Summary{
		Components: make([]ComponentTally, 0, len(types.Components)),
	}
	for _, c := range types.Components {
		overview, ok := report.Overview(c)
		if !ok {
			return nil, &types.IncompleteReportError{Component: c}
		}
		tally := ComponentTally{
			Component: c,
			Overview:  types.Totals{Passed: overview.Passed, Total: overview.Total},
			Observed:  observe(report.Tests(c)),
		}
		summary.Components = append(summary.Components, tally)
		summary.Total = summary.Total.Add(tally.Overview)
	}
	return summary, nil
}

func observe(tests []types.TestCase) types.Totals {
	totals := types.Totals{Total: len(tests)}
	for _, tc := range tests {
		if tc.Passed() {
			totals.Passed++
		}
	}
	return totals
}
