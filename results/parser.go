// Package results turns a raw harness results record into a validated types.Report.
package results

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/ethereum-optimism/infra/harness-report/types"
)

// Format selects the decoder used for a results record
type Format string

const (
	FormatAuto Format = "auto"
	FormatXML  Format = "xml"
	FormatYAML Format = "yaml"
)

// ValidFormats returns the formats accepted on the command line
func ValidFormats() []Format {
	return []Format{FormatAuto, FormatXML, FormatYAML}
}

// IsValid reports whether f is a known format
func (f Format) IsValid() bool {
	switch f {
	case FormatAuto, FormatXML, FormatYAML:
		return true
	}
	return false
}

// DetectFormat resolves FormatAuto from the file extension; anything that is
// not .yaml or .yml is read as XML.
func DetectFormat(path string, f Format) Format {
	if f != FormatAuto && f != "" {
		return f
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatXML
	}
}

// Attribute names used by the results record
const (
	attrTime           = "time"
	attrComponent      = "component"
	attrPassed         = "passed"
	attrTotal          = "total"
	attrName           = "name"
	attrActual         = "actual"
	attrExpected       = "expected"
	attrActualOutput   = "actualOutput"
	attrExpectedOutput = "expectedOutput"
)

type recordKind string

const (
	kindMeta     recordKind = "meta"
	kindOverview recordKind = "overview"
	kindTest     recordKind = "test"
)

// record is one untyped attribute bag as read from the input
type record struct {
	kind  recordKind
	index int // 1-based position among records of the same kind
	attrs map[string]string
}

func (r record) describe() string {
	desc := fmt.Sprintf("%s record #%d", r.kind, r.index)
	if name, ok := r.attrs[attrName]; ok && r.kind == kindTest {
		desc += fmt.Sprintf(" (name=%q)", name)
	}
	return desc
}

func (r record) required(attr string) (string, error) {
	v, ok := r.attrs[attr]
	if !ok {
		return "", &types.MalformedInputError{Record: r.describe(), Attribute: attr, Reason: "missing required attribute"}
	}
	return v, nil
}

func (r record) optional(attr, fallback string) string {
	if v, ok := r.attrs[attr]; ok {
		return v
	}
	return fallback
}

func (r record) count(attr string) (int, error) {
	raw, err := r.required(attr)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, &types.MalformedInputError{Record: r.describe(), Attribute: attr, Reason: fmt.Sprintf("%q is not an integer", raw)}
	}
	if n < 0 {
		return 0, &types.MalformedInputError{Record: r.describe(), Attribute: attr, Reason: fmt.Sprintf("%d is negative", n)}
	}
	return n, nil
}

func (r record) component() (types.Component, error) {
	raw, err := r.required(attrComponent)
	if err != nil {
		return 0, err
	}
	c, err := types.ParseComponent(raw)
	if err != nil {
		var unknown *types.UnknownComponentError
		if errors.As(err, &unknown) {
			unknown.Record = r.describe()
		}
		return 0, err
	}
	return c, nil
}

// recordSet is what every decoder produces: records grouped by kind, each in input order
type recordSet struct {
	meta     []record
	overview []record
	test     []record
}

// ParseFile reads and parses the results record at path
func ParseFile(path string, format Format) (*types.Report, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &types.IOError{Op: "read", Path: path, Err: err}
	}
	defer f.Close()

	return Parse(f, DetectFormat(path, format))
}

// Parse decodes a results record from r and validates it into a Report.
// FormatAuto is treated as XML since there is no file name to go by.
func Parse(r io.Reader, format Format) (*types.Report, error) {
	var (
		set recordSet
		err error
	)
	switch format {
	case FormatYAML:
		set, err = decodeYAML(r)
	case FormatXML, FormatAuto, "":
		set, err = decodeXML(r)
	default:
		return nil, fmt.Errorf("unsupported input format %q", format)
	}
	if err != nil {
		return nil, err
	}
	return buildReport(set)
}

func buildReport(set recordSet) (*types.Report, error) {
	builder := types.NewReportBuilder()

	for _, rec := range set.meta {
		raw, ok := rec.attrs[attrTime]
		if !ok {
			continue
		}
		ms, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
		if err != nil {
			return nil, &types.MalformedInputError{Record: rec.describe(), Attribute: attrTime, Reason: fmt.Sprintf("%q is not an integer", raw)}
		}
		if ms < 0 {
			return nil, &types.MalformedInputError{Record: rec.describe(), Attribute: attrTime, Reason: fmt.Sprintf("%d is negative", ms)}
		}
		if ms > math.MaxInt64/int64(time.Millisecond) {
			return nil, &types.MalformedInputError{Record: rec.describe(), Attribute: attrTime, Reason: fmt.Sprintf("%d overflows the duration range", ms)}
		}
		builder.WithGenerationDuration(time.Duration(ms) * time.Millisecond)
	}

	for _, rec := range set.overview {
		overview, err := parseOverview(rec)
		if err != nil {
			return nil, err
		}
		builder.AddOverview(overview)
	}

	for _, rec := range set.test {
		tc, err := parseTest(rec)
		if err != nil {
			return nil, err
		}
		builder.AddTest(tc)
	}

	return builder.Build(), nil
}

func parseOverview(rec record) (types.ComponentOverview, error) {
	c, err := rec.component()
	if err != nil {
		return types.ComponentOverview{}, err
	}
	passed, err := rec.count(attrPassed)
	if err != nil {
		return types.ComponentOverview{}, err
	}
	total, err := rec.count(attrTotal)
	if err != nil {
		return types.ComponentOverview{}, err
	}
	if passed > total {
		return types.ComponentOverview{}, &types.MalformedInputError{
			Record:    rec.describe(),
			Attribute: attrPassed,
			Reason:    fmt.Sprintf("passed count %d exceeds total %d", passed, total),
		}
	}
	return types.ComponentOverview{Component: c, Passed: passed, Total: total}, nil
}

func parseTest(rec record) (types.TestCase, error) {
	c, err := rec.component()
	if err != nil {
		return types.TestCase{}, err
	}
	tc := types.TestCase{
		Component:      c,
		ActualOutput:   rec.optional(attrActualOutput, types.OutputNotAvailable),
		ExpectedOutput: rec.optional(attrExpectedOutput, types.OutputNotAvailable),
	}
	if tc.Name, err = rec.required(attrName); err != nil {
		return types.TestCase{}, err
	}
	if tc.ActualResult, err = rec.required(attrActual); err != nil {
		return types.TestCase{}, err
	}
	if tc.ExpectedResult, err = rec.required(attrExpected); err != nil {
		return types.TestCase{}, err
	}
	return tc, nil
}
