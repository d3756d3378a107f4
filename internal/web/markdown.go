package web

import (
	"bytes"
	"html/template"
	"strings"

	"github.com/yuin/goldmark"
	emoji "github.com/yuin/goldmark-emoji"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

var cellRenderer = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,
		emoji.Emoji,
	),
	goldmark.WithRendererOptions(
		// Raw HTML passthrough stays disabled (no html.WithUnsafe): cell
		// values are user input.
		html.WithHardWraps(),
	),
)

// markdownCell renders a textarea cell's value for the grid page. Task titles
// and remarks routinely carry markdown emphasis and links.
func markdownCell(src string) template.HTML {
	src = strings.TrimSpace(src)
	if src == "" {
		return template.HTML("")
	}
	var b bytes.Buffer
	if err := cellRenderer.Convert([]byte(src), &b); err != nil {
		return template.HTML("<pre>" + template.HTMLEscapeString(src) + "</pre>")
	}
	// Trusted only because raw HTML is disabled above.
	return template.HTML(b.String())
}
