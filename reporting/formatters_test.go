package reporting

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ethereum-optimism/infra/harness-report/types"
)

func TestHTMLFormatter_ExampleReport(t *testing.T) {
	report, summary := exampleReport(t)
	doc := NewDocumentBuilder().Build(report, summary, testNow)

	formatter, err := NewDefaultHTMLFormatter()
	require.NoError(t, err)

	html, err := formatter.Format(doc)
	require.NoError(t, err)

	assert.Contains(t, html, "<title>Test Report</title>")
	assert.Contains(t, html, DefaultStylesheetURL)
	assert.Contains(t, html, "07 Mar 2024 09:05:03")
	assert.Contains(t, html, "2m 5.0s")
	assert.Contains(t, html, `<a href="#lexer">Part I: Lexer</a></td><td>2 / 3</td>`)
	assert.Contains(t, html, "Part I &amp; II: Parser")
	assert.NotContains(t, html, "Part I & II: Parser")
	assert.Contains(t, html, `<td style="text-align: left">Total</td><td style="text-align: left">2 / 3</td>`)

	// caseA sorts before caseB and passes
	caseA := strings.Index(html, `<td class="alert-success">caseA</td>`)
	caseB := strings.Index(html, `<td class="alert-danger">caseB</td>`)
	require.NotEqual(t, -1, caseA)
	require.NotEqual(t, -1, caseB)
	assert.Less(t, caseA, caseB)
	assert.Contains(t, html, `<td class="alert-danger" style="white-space: pre">foo</td>`)
	assert.Contains(t, html, `<td class="alert-danger" style="white-space: pre">bar</td>`)
	assert.Contains(t, html, `<td class="alert-success" style="white-space: pre">N/A</td>`)
	assert.Contains(t, html, `data-status="FAIL"`)

	// detail sections appear in component order
	last := -1
	for _, c := range types.Components {
		idx := strings.Index(html, `<div id="`+c.Anchor()+`">`)
		require.NotEqual(t, -1, idx, "missing section %s", c)
		assert.Greater(t, idx, last)
		last = idx
	}
}

func TestHTMLFormatter_EscapesContent(t *testing.T) {
	b := types.NewReportBuilder()
	for _, c := range types.Components {
		b.AddOverview(types.ComponentOverview{Component: c})
	}
	b.AddTest(types.TestCase{
		Component:      types.ComponentLexer,
		Name:           "<script>",
		ActualResult:   "0",
		ExpectedResult: "0",
		ActualOutput:   "a < b && c",
		ExpectedOutput: types.OutputNotAvailable,
	})
	report := b.Build()

	formatter, err := NewDefaultHTMLFormatter()
	require.NoError(t, err)

	doc := NewDocumentBuilder().WithStylesheetURL("").Build(report, summaryFor(t, report), testNow)
	html, err := formatter.Format(doc)
	require.NoError(t, err)

	assert.NotContains(t, html, "<script>")
	assert.Contains(t, html, "&lt;script&gt;")
	assert.Contains(t, html, "a &lt; b &amp;&amp; c")
	assert.NotContains(t, html, `rel="stylesheet"`)
}

func TestNewHTMLFormatter_InvalidTemplate(t *testing.T) {
	_, err := NewHTMLFormatter("{{.Title")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse HTML template")
}

func TestTableFormatter(t *testing.T) {
	report, summary := exampleReport(t)
	doc := NewDocumentBuilder().Build(report, summary, testNow)

	out, err := NewTableFormatter("Compiler Harness").Format(doc)
	require.NoError(t, err)

	assert.Contains(t, out, "Compiler Harness (2m 5.0s)")
	assert.Contains(t, out, "Part I: Lexer")
	assert.Contains(t, out, "Part IV: Register Allocation")
	assert.Contains(t, out, "TOTAL")
	assert.Contains(t, out, "FAIL")
}

func TestTextSummaryFormatter(t *testing.T) {
	report, summary := exampleReport(t)
	doc := NewDocumentBuilder().Build(report, summary, testNow)

	t.Run("without details", func(t *testing.T) {
		out, err := NewTextSummaryFormatter(false).Format(doc)
		require.NoError(t, err)
		assert.Contains(t, out, "TEST SUMMARY")
		assert.Contains(t, out, "Generated in: 2m 5.0s")
		assert.Contains(t, out, "Failed tests:")
		assert.Contains(t, out, "└── Part I: Lexer")
		assert.Contains(t, out, "    └── caseB\n")
		assert.NotContains(t, out, "caseA")
	})

	t.Run("with details", func(t *testing.T) {
		out, err := NewTextSummaryFormatter(true).Format(doc)
		require.NoError(t, err)
		assert.Contains(t, out, "caseB (exit code 1, expected 0)")
	})

	t.Run("all passing", func(t *testing.T) {
		b := types.NewReportBuilder()
		for _, c := range types.Components {
			b.AddOverview(types.ComponentOverview{Component: c, Passed: 1, Total: 1})
		}
		passing := b.Build()
		doc := NewDocumentBuilder().Build(passing, summaryFor(t, passing), testNow)

		out, err := NewTextSummaryFormatter(true).Format(doc)
		require.NoError(t, err)
		assert.NotContains(t, out, "Failed tests:")
	})
}

func TestFileWriter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.html")
	require.NoError(t, NewFileWriter(path).Write("<html></html>"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "<html></html>", string(data))

	err = NewFileWriter(filepath.Join(t.TempDir(), "missing", "report.html")).Write("x")
	require.Error(t, err)
	assert.True(t, types.IsIOError(err))
}

func TestStreamWriter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewStreamWriter(&buf, "buffer").Write("hello"))
	assert.Equal(t, "hello", buf.String())

	err := NewStreamWriter(failingWriter{}, "broken").Write("hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to write broken")
}

func TestReportGenerator(t *testing.T) {
	report, summary := exampleReport(t)

	t.Run("writes formatted output", func(t *testing.T) {
		formatter, err := NewDefaultHTMLFormatter()
		require.NoError(t, err)
		writer := &recordingWriter{}

		gen := NewReportGenerator(NewDocumentBuilder().WithTitle("Nightly"), formatter, writer)
		doc, err := gen.GenerateFromReport(report, summary, testNow)
		require.NoError(t, err)
		assert.Equal(t, "Nightly", doc.Title)
		assert.Equal(t, types.Totals{Passed: 2, Total: 3}, doc.Total)
		require.Len(t, writer.writes, 1)
		assert.Contains(t, writer.writes[0], "Detailed results")
	})

	t.Run("format failure writes nothing", func(t *testing.T) {
		writer := &recordingWriter{}
		gen := NewReportGenerator(NewDocumentBuilder(), failingFormatter{}, writer)

		_, err := gen.GenerateFromReport(report, summary, testNow)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to format report")
		assert.Empty(t, writer.writes)
	})

	t.Run("write failure is wrapped", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "missing", "report.html")
		gen := NewReportGenerator(NewDocumentBuilder(), NewTableFormatter("t"), NewFileWriter(path))

		_, err := gen.GenerateFromReport(report, summary, testNow)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to write report")
		assert.True(t, types.IsIOError(err))
	})
}

func TestReportGenerator_NilBuilderUsesDefaults(t *testing.T) {
	report, summary := exampleReport(t)
	writer := &recordingWriter{}

	doc, err := NewReportGenerator(nil, NewTextSummaryFormatter(false), writer).GenerateFromReport(report, summary, testNow)
	require.NoError(t, err)
	assert.Equal(t, DefaultTitle, doc.Title)
	require.Len(t, writer.writes, 1)
	assert.Contains(t, writer.writes[0], "TEST SUMMARY")
}

type recordingWriter struct {
	writes []string
}

func (w *recordingWriter) Write(content string) error {
	w.writes = append(w.writes, content)
	return nil
}

type failingFormatter struct{}

func (failingFormatter) Format(Document) (string, error) {
	return "", errors.New("boom")
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("closed")
}
