package output

import (
	"fmt"
	"strings"
)

// Format represents an output format.
type Format string

const (
	FormatTable    Format = "table"
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
	FormatMarkdown Format = "markdown"
	FormatPretty   Format = "pretty"
)

// Formats lists the accepted formats for flag help.
func Formats() []Format {
	return []Format{FormatTable, FormatMarkdown, FormatJSON, FormatYAML, FormatPretty}
}

// Formatter renders views.
type Formatter interface {
	FormatView(view View) (string, error)
}

// ParseFormat validates and normalizes a format string.
func ParseFormat(value string) (Format, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	switch normalized {
	case "", string(FormatTable):
		return FormatTable, nil
	case string(FormatJSON):
		return FormatJSON, nil
	case string(FormatYAML), "yml":
		return FormatYAML, nil
	case string(FormatMarkdown), "md":
		return FormatMarkdown, nil
	case string(FormatPretty):
		return FormatPretty, nil
	default:
		return "", fmt.Errorf("unsupported output format: %s", value)
	}
}

// Extension is the file extension results in this format are saved with.
func (f Format) Extension() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatYAML:
		return "yaml"
	case FormatMarkdown:
		return "md"
	default:
		return "txt"
	}
}

// NewFormatter returns a formatter for the requested format.
func NewFormatter(format Format) Formatter {
	switch format {
	case FormatJSON:
		return &JSONFormatter{Indent: true}
	case FormatYAML:
		return &YAMLFormatter{}
	case FormatMarkdown:
		return &MarkdownFormatter{}
	case FormatPretty:
		return &PrettyFormatter{}
	default:
		return &TableFormatter{}
	}
}

// Render formats view with the requested format.
func Render(format Format, view View) (string, error) {
	return NewFormatter(format).FormatView(view)
}
