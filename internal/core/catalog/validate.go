package catalog

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/dingolabs/dingo/internal/core"
)

// Defaults returns the pre-filled values of a schema.
func Defaults(schema FormSchema) url.Values {
	values := url.Values{}
	for _, f := range schema.Fields {
		if f.Default != "" {
			values.Set(f.Name, f.Default)
		}
	}
	return values
}

// WithDefaults fills fields that are absent from values with their defaults.
// A field present with an empty value is left alone.
func WithDefaults(schema FormSchema, values url.Values) url.Values {
	merged := url.Values{}
	for key, vals := range values {
		merged[key] = append([]string(nil), vals...)
	}
	for _, f := range schema.Fields {
		if _, ok := merged[f.Name]; !ok && f.Default != "" {
			merged.Set(f.Name, f.Default)
		}
	}
	return merged
}

// Validate applies the checks a browser form would enforce before submit:
// required fields, option membership and numeric bounds.
func Validate(schema FormSchema, values url.Values) error {
	var problems []string
	var fields []string

	for _, f := range schema.Fields {
		raw := nonBlank(values[f.Name])
		if len(raw) == 0 {
			if f.Required {
				problems = append(problems, fmt.Sprintf("%s is required", f.Label))
				fields = append(fields, f.Name)
			}
			continue
		}

		switch f.Kind {
		case KindSelect:
			value := raw[len(raw)-1]
			if !f.HasOption(value) {
				problems = append(problems, fmt.Sprintf("%s: %q is not an allowed value", f.Label, value))
				fields = append(fields, f.Name)
			}
		case KindMultiSelect:
			for _, value := range raw {
				if !f.HasOption(value) {
					problems = append(problems, fmt.Sprintf("%s: %q is not an allowed value", f.Label, value))
					fields = append(fields, f.Name)
					break
				}
			}
		case KindNumber:
			value := raw[len(raw)-1]
			n, err := strconv.Atoi(value)
			if err != nil {
				problems = append(problems, fmt.Sprintf("%s must be a whole number", f.Label))
				fields = append(fields, f.Name)
				continue
			}
			if (f.Min != 0 || f.Max != 0) && (n < f.Min || n > f.Max) {
				problems = append(problems, fmt.Sprintf("%s must be between %d and %d", f.Label, f.Min, f.Max))
				fields = append(fields, f.Name)
			}
		}
	}

	if len(problems) == 0 {
		return nil
	}
	return &core.Error{
		Kind:    core.ErrorValidation,
		Message: strings.Join(problems, "; "),
		Fields:  fields,
	}
}

func nonBlank(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
