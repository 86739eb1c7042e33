package reporting

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"os"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/ethereum-optimism/infra/harness-report/aggregate"
	"github.com/ethereum-optimism/infra/harness-report/templates"
	"github.com/ethereum-optimism/infra/harness-report/types"
	"github.com/ethereum-optimism/infra/harness-report/ui"
)

// ReportFormatter defines the interface for different report output formats
type ReportFormatter interface {
	Format(doc Document) (string, error)
}

// ReportWriter defines the interface for writing reports to various destinations
type ReportWriter interface {
	Write(content string) error
}

// FileWriter writes reports to a file
type FileWriter struct {
	path string
}

// NewFileWriter creates a new file writer
func NewFileWriter(path string) *FileWriter {
	return &FileWriter{path: path}
}

// Write writes the content to the file
func (fw *FileWriter) Write(content string) error {
	if err := os.WriteFile(fw.path, []byte(content), 0644); err != nil {
		return &types.IOError{Op: "write", Path: fw.path, Err: err}
	}
	return nil
}

// StreamWriter writes reports to an io.Writer such as stdout
type StreamWriter struct {
	w    io.Writer
	name string
}

// NewStreamWriter creates a writer for w; name is used in error messages
func NewStreamWriter(w io.Writer, name string) *StreamWriter {
	return &StreamWriter{w: w, name: name}
}

// NewStdoutWriter creates a new stdout writer
func NewStdoutWriter() *StreamWriter {
	return NewStreamWriter(os.Stdout, "stdout")
}

// Write writes the content to the stream
func (sw *StreamWriter) Write(content string) error {
	if _, err := io.WriteString(sw.w, content); err != nil {
		return &types.IOError{Op: "write", Path: sw.name, Err: err}
	}
	return nil
}

// HTMLFormatter formats reports as HTML
type HTMLFormatter struct {
	template *template.Template
}

// NewHTMLFormatter creates a new HTML formatter from template source
func NewHTMLFormatter(templateContent string) (*HTMLFormatter, error) {
	tmpl, err := template.New("report").Funcs(templates.GetTemplateFunc()).Parse(templateContent)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML template: %w", err)
	}

	return &HTMLFormatter{
		template: tmpl,
	}, nil
}

// NewDefaultHTMLFormatter creates an HTML formatter using the embedded report template
func NewDefaultHTMLFormatter() (*HTMLFormatter, error) {
	tmpl, err := templates.GetHTMLTemplate(templates.ReportTemplateName)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML template: %w", err)
	}
	return &HTMLFormatter{
		template: tmpl,
	}, nil
}

// Format formats the document as HTML
func (hf *HTMLFormatter) Format(doc Document) (string, error) {
	var buf bytes.Buffer
	if err := hf.template.Execute(&buf, doc); err != nil {
		return "", fmt.Errorf("failed to execute HTML template: %w", err)
	}
	return buf.String(), nil
}

// TableFormatter formats the overview as an ASCII table
type TableFormatter struct {
	title string
}

// NewTableFormatter creates a new table formatter
func NewTableFormatter(title string) *TableFormatter {
	return &TableFormatter{
		title: title,
	}
}

// Format formats the document overview as an ASCII table
func (tf *TableFormatter) Format(doc Document) (string, error) {
	var buf bytes.Buffer

	t := table.NewWriter()
	t.SetOutputMirror(&buf)
	t.SetTitle(fmt.Sprintf("%s (%s)", tf.title, templates.FormatGenerationTime(doc.GenerationDuration)))

	t.AppendHeader(table.Row{
		"Component", "Passed", "Total", "Tests", "Failing", "Status",
	})

	t.SetColumnConfigs([]table.ColumnConfig{
		{Name: "Component", WidthMax: 50, WidthMaxEnforcer: text.WrapSoft},
		{Name: "Passed", Align: text.AlignRight},
		{Name: "Total", Align: text.AlignRight},
		{Name: "Tests", Align: text.AlignRight},
		{Name: "Failing", Align: text.AlignRight},
	})

	sections := sectionsByComponent(doc)
	for _, row := range doc.Overview {
		section := sections[row.Component]
		t.AppendRow(table.Row{
			row.LinkTitle,
			row.Totals.Passed,
			row.Totals.Total,
			len(section.Rows),
			len(section.Failed()),
			resultString(row.Totals),
		})
	}

	if doc.Total.Passed < doc.Total.Total {
		t.SetStyle(table.StyleColoredBlackOnRedWhite)
	} else {
		t.SetStyle(table.StyleColoredBlackOnGreenWhite)
	}

	failing := 0
	tests := 0
	for _, section := range doc.Sections {
		tests += len(section.Rows)
		failing += len(section.Failed())
	}

	t.AppendFooter(table.Row{
		"TOTAL",
		doc.Total.Passed,
		doc.Total.Total,
		tests,
		failing,
		resultString(doc.Total),
	})

	t.Render()
	return buf.String(), nil
}

const summaryWidth = 60

// TextSummaryFormatter formats reports as plain text summaries
type TextSummaryFormatter struct {
	includeDetails bool
}

// NewTextSummaryFormatter creates a new text summary formatter
func NewTextSummaryFormatter(includeDetails bool) *TextSummaryFormatter {
	return &TextSummaryFormatter{
		includeDetails: includeDetails,
	}
}

// Format formats the document as a text summary
func (tsf *TextSummaryFormatter) Format(doc Document) (string, error) {
	var summary strings.Builder

	summary.WriteString(ui.BuildBoxHeader("TEST SUMMARY", summaryWidth))
	summary.WriteString(ui.BuildBoxLine("Date: "+templates.FormatDate(doc.GeneratedAt), summaryWidth))
	summary.WriteString(ui.BuildBoxLine("Generated in: "+templates.FormatGenerationTime(doc.GenerationDuration), summaryWidth))
	summary.WriteString(ui.BuildBoxLine("", summaryWidth))
	for _, row := range doc.Overview {
		summary.WriteString(ui.BuildBoxLine(fmt.Sprintf("%-30s %d / %d", row.LinkTitle, row.Totals.Passed, row.Totals.Total), summaryWidth))
	}
	summary.WriteString(ui.BuildBoxLine(fmt.Sprintf("%-30s %d / %d", "Total", doc.Total.Passed, doc.Total.Total), summaryWidth))
	summary.WriteString(ui.BuildBoxFooter(summaryWidth))

	var failedSections []Section
	for _, section := range doc.Sections {
		if len(section.Failed()) > 0 {
			failedSections = append(failedSections, section)
		}
	}
	if len(failedSections) == 0 {
		return summary.String(), nil
	}

	fmt.Fprintf(&summary, "\nFailed tests:\n")
	for i, section := range failedSections {
		lastSection := i == len(failedSections)-1
		fmt.Fprintf(&summary, "%s%s\n", ui.BuildTreePrefix(1, lastSection, nil), section.Heading)

		failed := section.Failed()
		for j, row := range failed {
			prefix := ui.BuildTreePrefix(2, j == len(failed)-1, []bool{lastSection})
			fmt.Fprintf(&summary, "%s%s", prefix, row.Name)
			if tsf.includeDetails {
				fmt.Fprintf(&summary, " (exit code %s, expected %s)", row.ActualResult, row.ExpectedResult)
			}
			fmt.Fprintf(&summary, "\n")
		}
	}

	return summary.String(), nil
}

// ReportGenerator combines builder, formatter, and writer for easy report generation
type ReportGenerator struct {
	builder   *DocumentBuilder
	formatter ReportFormatter
	writer    ReportWriter
}

// NewReportGenerator creates a new report generator. A nil builder falls back
// to NewDocumentBuilder.
func NewReportGenerator(builder *DocumentBuilder, formatter ReportFormatter, writer ReportWriter) *ReportGenerator {
	if builder == nil {
		builder = NewDocumentBuilder()
	}
	return &ReportGenerator{
		builder:   builder,
		formatter: formatter,
		writer:    writer,
	}
}

// GenerateFromReport lays out, formats and writes a report. The laid out
// document is returned so other sinks can reuse it.
func (rg *ReportGenerator) GenerateFromReport(report *types.Report, summary *aggregate.Summary, now time.Time) (Document, error) {
	doc := rg.builder.Build(report, summary, now)
	return doc, rg.GenerateReport(doc)
}

// GenerateReport formats and writes a pre-built document. Nothing is
// written when formatting fails.
func (rg *ReportGenerator) GenerateReport(doc Document) error {
	content, err := rg.formatter.Format(doc)
	if err != nil {
		return fmt.Errorf("failed to format report: %w", err)
	}

	if err := rg.writer.Write(content); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	return nil
}

func sectionsByComponent(doc Document) map[types.Component]Section {
	out := make(map[types.Component]Section, len(doc.Sections))
	for _, section := range doc.Sections {
		out[section.Component] = section
	}
	return out
}

func resultString(t types.Totals) string {
	if t.Passed < t.Total {
		return "FAIL"
	}
	return "PASS"
}
