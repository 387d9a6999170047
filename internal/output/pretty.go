package output

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// DefaultWordWrap is the wrap width used when none is configured.
const DefaultWordWrap = 80

// PrettyFormatter renders the Markdown form of a view for a terminal.
type PrettyFormatter struct {
	// Style is a glamour style name ("dark", "light", "notty"); empty or
	// "auto" detects the terminal background.
	Style    string
	WordWrap int
}

// FormatView renders a view as styled terminal text.
func (f *PrettyFormatter) FormatView(view View) (string, error) {
	md, err := (&MarkdownFormatter{}).FormatView(view)
	if err != nil {
		return "", err
	}
	return RenderMarkdown(md, f.Style, f.WordWrap)
}

// NewRenderer builds a glamour renderer for the given style and width.
func NewRenderer(style string, wordWrap int) (*glamour.TermRenderer, error) {
	if wordWrap <= 0 {
		wordWrap = DefaultWordWrap
	}
	style = strings.ToLower(strings.TrimSpace(style))
	if style == "" || style == "auto" {
		return glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(wordWrap),
		)
	}
	return glamour.NewTermRenderer(
		glamour.WithStylePath(style),
		glamour.WithWordWrap(wordWrap),
	)
}

// RenderMarkdown renders md with a fresh renderer.
func RenderMarkdown(md, style string, wordWrap int) (string, error) {
	renderer, err := NewRenderer(style, wordWrap)
	if err != nil {
		return "", err
	}
	rendered, err := renderer.Render(md)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(rendered, "\n"), nil
}
