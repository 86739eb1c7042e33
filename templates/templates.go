// Package templates holds the report templates and the functions they use.
package templates

import (
	"embed"
	"fmt"
	"html/template"
)

// ReportTemplateName is the name of the default HTML report template
const ReportTemplateName = "report.html.tmpl"

//go:embed html/*.html.tmpl
var templateFS embed.FS

// GetHTMLTemplateContent returns the raw content of an embedded template
func GetHTMLTemplateContent(name string) (string, error) {
	content, err := templateFS.ReadFile("html/" + name)
	if err != nil {
		return "", fmt.Errorf("template %s not found: %w", name, err)
	}
	return string(content), nil
}

// GetHTMLTemplate parses an embedded template with the shared function map
func GetHTMLTemplate(name string) (*template.Template, error) {
	content, err := GetHTMLTemplateContent(name)
	if err != nil {
		return nil, err
	}
	return template.New(name).Funcs(GetTemplateFunc()).Parse(content)
}
