package sheet

import (
	"context"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// MarkdownSink writes each document as a pipe table in <Dir>/<title>.md, or,
// with HTML set, as a standalone page in <Dir>/<title>.html.
type MarkdownSink struct {
	Dir  string
	HTML bool
}

// CreateAndWrite implements Sink.
func (s MarkdownSink) CreateAndWrite(_ context.Context, title string, rows [][]string) (string, error) {
	md := MarkdownTable(rows)
	if !s.HTML {
		return writeDocument(s.Dir, title, ".md", md)
	}
	return writeDocument(s.Dir, title, ".html", RenderHTML(title, md))
}

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`,
	"|", `\|`,
	"*", `\*`,
	"_", `\_`,
	"`", "\\`",
	"[", `\[`,
	"]", `\]`,
	"<", `\<`,
	">", `\>`,
	"\r", "",
	"\n", " ",
)

// MarkdownTable renders rows, the first being the header, as a GitHub
// flavoured pipe table.
func MarkdownTable(rows [][]string) []byte {
	if len(rows) == 0 {
		return nil
	}
	width := len(rows[0])

	var b strings.Builder
	writeRow := func(row []string) {
		b.WriteString("|")
		for i := 0; i < width; i++ {
			cell := ""
			if i < len(row) {
				cell = markdownEscaper.Replace(row[i])
			}
			b.WriteString(" ")
			b.WriteString(cell)
			b.WriteString(" |")
		}
		b.WriteString("\n")
	}

	writeRow(rows[0])
	b.WriteString("|")
	for i := 0; i < width; i++ {
		b.WriteString(" --- |")
	}
	b.WriteString("\n")
	for _, row := range rows[1:] {
		writeRow(row)
	}
	return []byte(b.String())
}

// smartypantsFlags make the renderer pass the page title through unescaped
// and rewrite dashes and fractions in labels.
const smartypantsFlags = html.Smartypants | html.SmartypantsFractions |
	html.SmartypantsDashes | html.SmartypantsLatexDashes

// RenderHTML converts a markdown document into a complete HTML page. The
// title is HTML-escaped.
func RenderHTML(title string, md []byte) []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions)
	doc := p.Parse(md)

	opts := html.RendererOptions{
		Flags: (html.CommonFlags | html.CompletePage) &^ smartypantsFlags,
		Title: title,
	}
	return markdown.Render(doc, html.NewRenderer(opts))
}
