package reporting

import (
	"html/template"
	"strings"

	"insightlens/domain/validation"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// pageTemplate wraps the rendered report body into a self-contained page.
var pageTemplate = template.Must(template.New("report").Parse(`<!doctype html>
<html lang="en">
  <head>
    <meta charset="utf-8">
    <meta name="viewport" content="width=device-width, initial-scale=1">
    <title>{{ .Title }}</title>
    <style>
      body { font-family: Arial, sans-serif; margin: 2rem; max-width: 60rem; }
      h1 { font-size: 1.5rem; }
      h2 { font-size: 1.2rem; margin-top: 1.5rem; }
      table { border-collapse: collapse; margin: 0.5rem 0; }
      td, th { border: 1px solid #ddd; padding: 6px 8px; text-align: left; }
      code { background: #f4f4f4; padding: 1px 4px; border-radius: 3px; }
      li { margin: 0.25rem 0; }
    </style>
  </head>
  <body>
{{ .Body }}
  </body>
</html>
`))

// RenderHTML produces the self-contained HTML report by converting the
// markdown report into the page template.
func RenderHTML(filename string, report validation.Report) (string, error) {
	md := RenderMarkdown(filename, report)
	return MarkdownToHTML(md)
}

// MarkdownToHTML converts a markdown report into a full HTML page.
func MarkdownToHTML(md string) (string, error) {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.Tables)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	body := markdown.ToHTML([]byte(md), p, renderer)

	var b strings.Builder
	err := pageTemplate.Execute(&b, struct {
		Title string
		Body  template.HTML
	}{
		Title: "InsightLens Report",
		Body:  template.HTML(body),
	})
	if err != nil {
		return "", err
	}
	return b.String(), nil
}
