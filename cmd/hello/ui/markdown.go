package ui

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"hellonerd/internal/display"

	"github.com/charmbracelet/glamour"
)

// Markdown renders a settled page as markdown: the heading as an h1 and
// the display state in bold after the label. Text is escaped so it prints
// as shown on the page; line breaks become spaces.
func Markdown(heading, label string, state display.State) string {
	var sb strings.Builder
	if heading != "" {
		sb.WriteString("# ")
		sb.WriteString(escapeMarkdown(heading))
		sb.WriteString("\n\n")
	}
	sb.WriteString(escapeMarkdown(label))
	if text := escapeMarkdown(state.Text()); text != "" {
		fmt.Fprintf(&sb, " **%s**", text)
	}
	sb.WriteString("\n")
	return sb.String()
}

// escapeMarkdown backslash-escapes every ASCII punctuation character, which
// CommonMark always treats literally when escaped.
func escapeMarkdown(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	for _, r := range s {
		switch {
		case r == '\r':
			continue
		case r == '\n':
			sb.WriteByte(' ')
		case r < utf8.RuneSelf && (unicode.IsPunct(r) || unicode.IsSymbol(r)):
			sb.WriteByte('\\')
			sb.WriteRune(r)
		default:
			sb.WriteRune(r)
		}
	}
	return strings.TrimSpace(sb.String())
}

// NewRenderer builds a glamour renderer. style is "auto", "dark", "light"
// or "notty"; width <= 0 means 80.
func NewRenderer(style string, width int) (*glamour.TermRenderer, error) {
	if width <= 0 {
		width = 80
	}
	opts := []glamour.TermRendererOption{glamour.WithWordWrap(width)}
	switch style {
	case "", "auto":
		opts = append(opts, glamour.WithAutoStyle())
	case "dark", "light", "notty":
		opts = append(opts, glamour.WithStylePath(style))
	default:
		return nil, fmt.Errorf("unknown style %q (valid: auto, dark, light, notty)", style)
	}
	return glamour.NewTermRenderer(opts...)
}
