package reporting

import (
	"time"

	"github.com/acarl005/stripansi"

	"github.com/ethereum-optimism/infra/harness-report/aggregate"
	"github.com/ethereum-optimism/infra/harness-report/types"
)

const (
	DefaultTitle         = "Test Report"
	DefaultStylesheetURL = "https://maxcdn.bootstrapcdn.com/bootstrap/3.3.7/css/bootstrap.min.css"
)

// Document is the fully laid out report, independent of output format.
// Builders hand out fresh values; nothing keeps a reference to them.
type Document struct {
	Title              string
	StylesheetURL      string // empty when no external stylesheet is linked
	GeneratedAt        time.Time
	GenerationDuration time.Duration

	Overview []OverviewRow
	Total    types.Totals

	Sections []Section
}

// OverviewRow is one component line of the overview table
type OverviewRow struct {
	Component types.Component
	Anchor    string
	LinkTitle string
	Totals    types.Totals
}

// Section is the detail table of one component
type Section struct {
	Component types.Component
	Anchor    string
	Heading   string
	Rows      []TestRow
}

// Failed returns the rows of the section that did not pass
func (s Section) Failed() []TestRow {
	var out []TestRow
	for _, row := range s.Rows {
		if !row.Passed {
			out = append(out, row)
		}
	}
	return out
}

// TestRow is one test case line of a detail table
type TestRow struct {
	Name           string
	Component      string
	ActualResult   string
	ExpectedResult string
	ActualOutput   string
	ExpectedOutput string
	Passed         bool
}

// DocumentBuilder lays out a Report and its Summary as a Document
type DocumentBuilder struct {
	title         string
	stylesheetURL string
	stripANSI     bool
}

// NewDocumentBuilder creates a new document builder
func NewDocumentBuilder() *DocumentBuilder {
	return &DocumentBuilder{
		title:         DefaultTitle,
		stylesheetURL: DefaultStylesheetURL,
	}
}

// WithTitle sets the document title
func (b *DocumentBuilder) WithTitle(title string) *DocumentBuilder {
	b.title = title
	return b
}

// WithStylesheetURL sets the external stylesheet; empty disables the link
func (b *DocumentBuilder) WithStylesheetURL(url string) *DocumentBuilder {
	b.stylesheetURL = url
	return b
}

// WithANSIStripped controls whether ANSI escape sequences are removed from program outputs
func (b *DocumentBuilder) WithANSIStripped(enabled bool) *DocumentBuilder {
	b.stripANSI = enabled
	return b
}

// Build lays out the document. now is the render timestamp shown in the overview.
func (b *DocumentBuilder) Build(report *types.Report, summary *aggregate.Summary, now time.Time) Document {
	doc := Document{
		Title:              b.title,
		StylesheetURL:      b.stylesheetURL,
		GeneratedAt:        now,
		GenerationDuration: report.GenerationDuration(),
		Overview:           make([]OverviewRow, 0, len(summary.Components)),
		Total:              summary.Total,
		Sections:           make([]Section, 0, len(types.Components)),
	}

	for _, tally := range summary.Components {
		doc.Overview = append(doc.Overview, OverviewRow{
			Component: tally.Component,
			Anchor:    tally.Component.Anchor(),
			LinkTitle: tally.Component.LinkTitle(),
			Totals:    tally.Overview,
		})
	}

	for _, c := range types.Components {
		tests := report.Tests(c)
		section := Section{
			Component: c,
			Anchor:    c.Anchor(),
			Heading:   c.Heading(),
			Rows:      make([]TestRow, 0, len(tests)),
		}
		for _, tc := range tests {
			section.Rows = append(section.Rows, b.row(tc))
		}
		doc.Sections = append(doc.Sections, section)
	}

	return doc
}

// row derives the display flag from the literal tokens, never a stored verdict
func (b *DocumentBuilder) row(tc types.TestCase) TestRow {
	return TestRow{
		Name:           tc.Name,
		Component:      tc.Component.String(),
		ActualResult:   tc.ActualResult,
		ExpectedResult: tc.ExpectedResult,
		ActualOutput:   b.output(tc.ActualOutput),
		ExpectedOutput: b.output(tc.ExpectedOutput),
		Passed:         tc.ActualResult == tc.ExpectedResult,
	}
}

func (b *DocumentBuilder) output(s string) string {
	if b.stripANSI {
		return stripansi.Strip(s)
	}
	return s
}
