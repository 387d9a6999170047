package output

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
)

// TableFormatter renders views as ASCII tables with indented text blocks.
type TableFormatter struct{}

// FormatView renders a view as tables.
func (f *TableFormatter) FormatView(view View) (string, error) {
	var sb strings.Builder

	if view.Title != "" {
		sb.WriteString(view.Title)
		sb.WriteString("\n")
	}
	if len(view.Header) > 0 {
		sb.WriteString(fieldTable("", view.Header))
		sb.WriteString("\n")
	}

	for _, section := range view.Sections {
		writeTableSection(&sb, section, 0)
	}

	return strings.TrimRight(sb.String(), "\n"), nil
}

func writeTableSection(sb *strings.Builder, section Section, depth int) {
	if section.Empty() {
		return
	}
	indent := strings.Repeat("  ", depth)

	if len(section.Fields) > 0 {
		sb.WriteString("\n")
		sb.WriteString(indentBlock(fieldTable(section.Title, section.Fields), indent))
		sb.WriteString("\n")
	} else {
		sb.WriteString(fmt.Sprintf("\n%s%s:\n", indent, section.Title))
	}

	if section.Text != "" {
		sb.WriteString(indentBlock(section.Text, indent+"  "))
		sb.WriteString("\n")
	}
	for _, block := range section.Blocks {
		sb.WriteString(indentBlock(block, indent+"  "))
		sb.WriteString("\n")
	}
	for _, item := range section.Items {
		sb.WriteString(fmt.Sprintf("%s  - %s\n", indent, item))
	}
	for _, sub := range section.Subsections {
		writeTableSection(sb, sub, depth+1)
	}
}

func fieldTable(title string, fields []Field) string {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	if title != "" {
		t.SetTitle(title)
	}
	for _, field := range fields {
		t.AppendRow(table.Row{field.Label, field.Value})
	}
	return t.Render()
}

func indentBlock(text, indent string) string {
	if indent == "" {
		return text
	}
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = indent + line
		}
	}
	return strings.Join(lines, "\n")
}
