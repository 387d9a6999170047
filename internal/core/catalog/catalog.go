// Package catalog declares the form schema for every operation.
package catalog

import (
	"github.com/dingolabs/dingo/internal/core"
)

// FieldKind is the input control used for a field.
type FieldKind string

const (
	KindText        FieldKind = "text"
	KindSelect      FieldKind = "select"
	KindMultiSelect FieldKind = "multiselect"
	KindNumber      FieldKind = "number"
	KindTextarea    FieldKind = "textarea"
)

// Option is one allowed value of a select or multiselect field.
type Option struct {
	Value string `json:"value" yaml:"value"`
	Label string `json:"label" yaml:"label"`
}

// FieldSpec describes a single form input.
type FieldSpec struct {
	Name        string    `json:"name" yaml:"name"`
	Label       string    `json:"label" yaml:"label"`
	Kind        FieldKind `json:"kind" yaml:"kind"`
	Required    bool      `json:"required" yaml:"required"`
	Options     []Option  `json:"options,omitempty" yaml:"options,omitempty"`
	Default     string    `json:"default,omitempty" yaml:"default,omitempty"`
	Placeholder string    `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	Help        string    `json:"help,omitempty" yaml:"help,omitempty"`
	Min         int       `json:"min,omitempty" yaml:"min,omitempty"`
	Max         int       `json:"max,omitempty" yaml:"max,omitempty"`
}

// MultiValued reports whether the field collects every selected value.
func (f FieldSpec) MultiValued() bool {
	return f.Kind == KindMultiSelect
}

// HasOption reports whether value is one of the field's allowed options.
func (f FieldSpec) HasOption(value string) bool {
	for _, opt := range f.Options {
		if opt.Value == value {
			return true
		}
	}
	return false
}

// FormSchema is the declarative description of an operation's form.
type FormSchema struct {
	Operation   core.Operation `json:"operation" yaml:"operation"`
	Title       string         `json:"title" yaml:"title"`
	Fields      []FieldSpec    `json:"fields" yaml:"fields"`
	SubmitLabel string         `json:"submit_label,omitempty" yaml:"submit_label,omitempty"`
	Body        string         `json:"body,omitempty" yaml:"body,omitempty"`
}

// Placeholder reports whether the schema is the stand-in for an unknown operation.
func (s FormSchema) Placeholder() bool {
	return s.Operation == core.OperationUnknown
}

// Field looks up a field by name.
func (s FormSchema) Field(name string) (FieldSpec, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return FieldSpec{}, false
}

// FieldNames returns the field names in declaration order.
func (s FormSchema) FieldNames() []string {
	names := make([]string, 0, len(s.Fields))
	for _, f := range s.Fields {
		names = append(names, f.Name)
	}
	return names
}

// SchemaFor returns the form schema for op. Unknown operations yield the
// placeholder schema. The returned value is a copy.
func SchemaFor(op core.Operation) FormSchema {
	schema, ok := schemas[op]
	if !ok {
		return placeholder()
	}
	return clone(schema)
}

// All returns the schemas of every known operation in menu order.
func All() []FormSchema {
	ops := core.Operations()
	out := make([]FormSchema, 0, len(ops))
	for _, op := range ops {
		out = append(out, SchemaFor(op))
	}
	return out
}

func placeholder() FormSchema {
	return FormSchema{
		Operation: core.OperationUnknown,
		Title:     "Functionality",
		Fields:    []FieldSpec{},
		Body:      "Functionality under development...",
	}
}

func clone(s FormSchema) FormSchema {
	fields := make([]FieldSpec, len(s.Fields))
	for i, f := range s.Fields {
		if f.Options != nil {
			f.Options = append([]Option(nil), f.Options...)
		}
		fields[i] = f
	}
	s.Fields = fields
	return s
}
