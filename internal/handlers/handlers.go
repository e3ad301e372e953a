package handlers

import (
	"bytes"
	"html/template"
	"log/slog"

	"github.com/yuin/goldmark"
)

// renderMarkdown converts entry markdown to HTML. Raw HTML in the source is
// escaped by goldmark's default renderer.
func renderMarkdown(src string) template.HTML {
	if src == "" {
		return ""
	}
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(src), &buf); err != nil {
		slog.Error("failed to convert markdown", "error", err)
		return template.HTML("<p>" + template.HTMLEscapeString(src) + "</p>")
	}
	return template.HTML(buf.String())
}
