package output

// Field is one labelled value in a summary.
type Field struct {
	Label string `json:"label" yaml:"label"`
	Value string `json:"value" yaml:"value"`
}

// Section is a titled block of a rendered result. A section carries any mix
// of summary fields, verbatim text, preformatted blocks, a bullet list and
// nested sections; formatters emit them in that order.
type Section struct {
	Title       string    `json:"title" yaml:"title"`
	Fields      []Field   `json:"fields,omitempty" yaml:"fields,omitempty"`
	Text        string    `json:"text,omitempty" yaml:"text,omitempty"`
	Blocks      []string  `json:"blocks,omitempty" yaml:"blocks,omitempty"`
	Items       []string  `json:"items,omitempty" yaml:"items,omitempty"`
	Subsections []Section `json:"subsections,omitempty" yaml:"subsections,omitempty"`
}

// Empty reports whether the section has nothing to show.
func (s Section) Empty() bool {
	return len(s.Fields) == 0 && s.Text == "" && len(s.Blocks) == 0 &&
		len(s.Items) == 0 && len(s.Subsections) == 0
}

// View is the typed body of a result or error modal.
type View struct {
	Title     string    `json:"title" yaml:"title"`
	Operation string    `json:"operation,omitempty" yaml:"operation,omitempty"`
	Kind      string    `json:"kind,omitempty" yaml:"kind,omitempty"`
	Header    []Field   `json:"header,omitempty" yaml:"header,omitempty"`
	Sections  []Section `json:"sections,omitempty" yaml:"sections,omitempty"`
}

// Section looks up a top-level section by title.
func (v View) Section(title string) (Section, bool) {
	for _, s := range v.Sections {
		if s.Title == title {
			return s, true
		}
	}
	return Section{}, false
}

// HeaderValue returns the header value with the given label.
func (v View) HeaderValue(label string) (string, bool) {
	return fieldValue(v.Header, label)
}

// Value returns the summary value with the given label.
func (s Section) Value(label string) (string, bool) {
	return fieldValue(s.Fields, label)
}

func fieldValue(fields []Field, label string) (string, bool) {
	for _, f := range fields {
		if f.Label == label {
			return f.Value, true
		}
	}
	return "", false
}
