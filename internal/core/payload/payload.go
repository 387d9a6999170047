// Package payload turns raw form values into the JSON body sent to the backend.
//
// Transforms are declared per field name, globally and per operation, so the
// mapping for each operation can be read (and tested) as data.
package payload

import (
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/dingolabs/dingo/internal/core"
	"github.com/dingolabs/dingo/internal/core/catalog"
)

// Payload is the request body for one submission.
type Payload map[string]any

// transformFunc converts the submitted values of one field. Returning false
// leaves the field out of the payload.
type transformFunc func(values []string) (any, bool)

// rule describes how one form field lands in the payload.
type rule struct {
	rename    string
	transform transformFunc
}

// globalRules apply to every operation.
var globalRules = map[string]rule{
	"keywords":          {transform: commaList},
	"interaction_types": {transform: allValues},
	"goals":             {transform: allValues},
}

// operationRules override globalRules for a single operation.
var operationRules = map[core.Operation]map[string]rule{
	core.OperationAnalyze: {
		"username": {rename: "user_list", transform: wrapTrimmed},
		"depth":    {rename: "analysis_depth", transform: lastValue},
	},
}

// kindRules are the fallbacks chosen from the field's declared kind.
var kindRules = map[catalog.FieldKind]transformFunc{
	catalog.KindMultiSelect: allValues,
	catalog.KindNumber:      integer,
}

// Build applies the transform table for op to values.
func Build(op core.Operation, values url.Values) Payload {
	schema := catalog.SchemaFor(op)

	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	out := Payload{}
	for _, key := range keys {
		r := ruleFor(op, schema, key)
		value, ok := r.transform(values[key])
		if !ok {
			continue
		}
		name := key
		if r.rename != "" {
			name = r.rename
		}
		out[name] = value
	}
	return out
}

func ruleFor(op core.Operation, schema catalog.FormSchema, key string) rule {
	if rules, ok := operationRules[op]; ok {
		if r, ok := rules[key]; ok {
			return r
		}
	}
	if r, ok := globalRules[key]; ok {
		return r
	}
	if field, ok := schema.Field(key); ok {
		if fn, ok := kindRules[field.Kind]; ok {
			return rule{transform: fn}
		}
	}
	return rule{transform: lastValue}
}

// lastValue keeps the final submitted value, as a browser form does for
// repeated single-valued keys. Blank values are dropped.
func lastValue(values []string) (any, bool) {
	if len(values) == 0 {
		return nil, false
	}
	value := values[len(values)-1]
	if strings.TrimSpace(value) == "" {
		return nil, false
	}
	return value, true
}

func allValues(values []string) (any, bool) {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			continue
		}
		out = append(out, v)
	}
	if len(out) == 0 {
		return nil, false
	}
	return out, true
}

func commaList(values []string) (any, bool) {
	raw, ok := lastValue(values)
	if !ok {
		return nil, false
	}
	parts := strings.Split(raw.(string), ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out, true
}

func wrapTrimmed(values []string) (any, bool) {
	raw, ok := lastValue(values)
	if !ok {
		return nil, false
	}
	return []string{strings.TrimSpace(raw.(string))}, true
}

func integer(values []string) (any, bool) {
	raw, ok := lastValue(values)
	if !ok {
		return nil, false
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw.(string)))
	if err != nil {
		return raw, true
	}
	return n, true
}
