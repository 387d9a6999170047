package output

import (
	"fmt"
	"strings"
)

// MarkdownFormatter renders views as Markdown.
type MarkdownFormatter struct{}

// FormatView renders a view as Markdown.
func (f *MarkdownFormatter) FormatView(view View) (string, error) {
	var sb strings.Builder

	if view.Title != "" {
		sb.WriteString(fmt.Sprintf("## %s\n", view.Title))
	}
	if len(view.Header) > 0 {
		sb.WriteString("\n")
		writeFieldTable(&sb, view.Header)
	}
	for _, section := range view.Sections {
		writeMarkdownSection(&sb, section, 3)
	}

	return strings.TrimRight(sb.String(), "\n") + "\n", nil
}

func writeMarkdownSection(sb *strings.Builder, section Section, level int) {
	if section.Empty() {
		return
	}
	if level > 6 {
		level = 6
	}

	sb.WriteString(fmt.Sprintf("\n%s %s\n", strings.Repeat("#", level), section.Title))
	if len(section.Fields) > 0 {
		sb.WriteString("\n")
		writeFieldTable(sb, section.Fields)
	}
	if section.Text != "" {
		sb.WriteString("\n")
		sb.WriteString(section.Text)
		sb.WriteString("\n")
	}
	for _, block := range section.Blocks {
		sb.WriteString("\n```json\n")
		sb.WriteString(block)
		sb.WriteString("\n```\n")
	}
	if len(section.Items) > 0 {
		sb.WriteString("\n")
		for _, item := range section.Items {
			sb.WriteString(fmt.Sprintf("- %s\n", item))
		}
	}
	for _, sub := range section.Subsections {
		writeMarkdownSection(sb, sub, level+1)
	}
}

func writeFieldTable(sb *strings.Builder, fields []Field) {
	sb.WriteString("| Field | Value |\n")
	sb.WriteString("|-------|-------|\n")
	for _, field := range fields {
		sb.WriteString(fmt.Sprintf("| %s | %s |\n",
			escapeMarkdownCell(field.Label),
			escapeMarkdownCell(field.Value),
		))
	}
}

func escapeMarkdownCell(value string) string {
	value = strings.ReplaceAll(value, "|", "\\|")
	return strings.ReplaceAll(value, "\n", " ")
}
