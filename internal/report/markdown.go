package report

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/CageChen/eolconv/internal/walker"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// WriteMarkdown renders rep as a GitHub-flavoured Markdown document with a
// summary table and a per-entry table.
func WriteMarkdown(w io.Writer, rep *Report) error {
	var b strings.Builder

	b.WriteString("# eolconv report\n\n")
	fmt.Fprintf(&b, "- Direction: `%s`\n", rep.Direction)
	fmt.Fprintf(&b, "- Target: `%s`\n", rep.Target)
	if rep.DryRun {
		b.WriteString("- Dry run: no files were modified\n")
	}

	b.WriteString("\n## Summary\n\n| Outcome | Count |\n|---|---:|\n")
	for _, o := range walker.Outcomes {
		if n := rep.Summary[o.String()]; n > 0 {
			fmt.Fprintf(&b, "| %s | %d |\n", o, n)
		}
	}

	b.WriteString("\n## Entries\n\n| Path | Outcome | Style | Language | Error |\n|---|---|---|---|---|\n")
	for _, e := range rep.Entries {
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s |\n",
			cell(e.Path), e.Outcome, e.Style, cell(e.Language), cell(e.Error))
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// cell escapes a value for use inside a table cell.
func cell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "\n", " ")
}

// htmlRenderer converts the Markdown report to HTML with GFM tables.
var htmlRenderer = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,
	),
	goldmark.WithRendererOptions(
		html.WithXHTML(),
	),
)

// WriteHTML renders rep as a standalone HTML page.
func WriteHTML(w io.Writer, rep *Report) error {
	var src bytes.Buffer
	if err := WriteMarkdown(&src, rep); err != nil {
		return err
	}

	var body bytes.Buffer
	if err := htmlRenderer.Convert(src.Bytes(), &body); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>eolconv report</title>
</head>
<body>
%s</body>
</html>
`, body.String())
	return err
}
