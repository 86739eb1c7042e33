package templates

import (
	"fmt"
	"html/template"
	"math"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the layout of the render timestamp shown in the overview
const DateLayout = "02 Jan 2006 15:04:05"

// Row classes understood by the report stylesheet
const (
	PassClass = "alert-success"
	FailClass = "alert-danger"
)

// GetTemplateFunc returns the centralized template functions used across the application
func GetTemplateFunc() template.FuncMap {
	return template.FuncMap{
		"formatDate":           FormatDate,
		"formatGenerationTime": FormatGenerationTime,
		"statusClass":          StatusClass,
		"statusText":           StatusText,
	}
}

// FormatDate formats the render timestamp
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// FormatGenerationTime renders d as "<minutes>m <seconds>s", where seconds is
// the remainder below a minute rounded to two decimals and printed in its
// shortest form with at least one decimal, e.g. 125s -> "2m 5.0s".
func FormatGenerationTime(d time.Duration) string {
	raw := float64(d) / float64(time.Second)
	minutes := int64(raw) / 60
	remainder := math.Mod(raw, 60)

	// Round on the decimal expansion (half to even on exact ties), then print
	// the shortest representation of the rounded value.
	rounded, _ := strconv.ParseFloat(strconv.FormatFloat(remainder, 'f', 2, 64), 64)
	seconds := strconv.FormatFloat(rounded, 'f', -1, 64)
	if !strings.Contains(seconds, ".") {
		seconds += ".0"
	}
	return fmt.Sprintf("%dm %ss", minutes, seconds)
}

// StatusClass returns the row class for a pass/fail flag
func StatusClass(passed bool) string {
	if passed {
		return PassClass
	}
	return FailClass
}

// StatusText returns a short status label for a pass/fail flag
func StatusText(passed bool) string {
	if passed {
		return "PASS"
	}
	return "FAIL"
}
