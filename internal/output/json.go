package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// JSONFormatter renders views as JSON.
type JSONFormatter struct {
	Indent bool
}

// FormatView renders a view as JSON.
func (f *JSONFormatter) FormatView(view View) (string, error) {
	var (
		data []byte
		err  error
	)

	if f.Indent {
		data, err = json.MarshalIndent(view, "", "  ")
	} else {
		data, err = json.Marshal(view)
	}
	if err != nil {
		return "", err
	}

	return string(data), nil
}

// YAMLFormatter renders views as YAML.
type YAMLFormatter struct{}

// FormatView renders a view as YAML.
func (f *YAMLFormatter) FormatView(view View) (string, error) {
	data, err := yaml.Marshal(view)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(string(data), "\n"), nil
}

// IndentJSON renders any decoded JSON value with two-space indentation.
// Values that cannot be encoded fall back to their Go representation.
func IndentJSON(value any) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(value); err != nil {
		return fmt.Sprintf("%v", value)
	}
	return strings.TrimRight(buf.String(), "\n")
}
