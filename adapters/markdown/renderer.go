// Package markdown renders report documents as Markdown tables and HTML.
package markdown

import (
	"bytes"
	"fmt"
	"strings"

	"gopairs/domain/report"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// Renderer implements ports.PreviewRenderer.
type Renderer struct {
	// MaxRows truncates long tables in previews. Zero renders every row.
	MaxRows int
}

// NewRenderer creates a preview renderer.
func NewRenderer(maxRows int) *Renderer {
	return &Renderer{MaxRows: maxRows}
}

// Markdown writes every sheet as a level-2 heading followed by its tables.
func (r *Renderer) Markdown(doc *report.Document) []byte {
	var buf bytes.Buffer
	if doc == nil {
		return buf.Bytes()
	}
	for _, sheet := range doc.Sheets {
		fmt.Fprintf(&buf, "## %s\n\n", escape(sheet.Name))
		for _, table := range sheet.Tables {
			r.writeTable(&buf, table)
			buf.WriteString("\n")
		}
	}
	return buf.Bytes()
}

// HTML renders the Markdown form with the tables extension. Typographic
// substitutions stay off so cells read exactly as in the workbook.
func (r *Renderer) HTML(doc *report.Document) []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.FlagsNone})
	return markdown.ToHTML(r.Markdown(doc), p, renderer)
}

func (r *Renderer) writeTable(buf *bytes.Buffer, table report.Table) {
	if len(table.Columns) == 0 {
		return
	}
	header := make([]string, len(table.Columns))
	rule := make([]string, len(table.Columns))
	for i, c := range table.Columns {
		header[i] = escape(c)
		rule[i] = "---"
	}
	writeRow(buf, header)
	writeRow(buf, rule)

	rows := table.Rows
	if r.MaxRows > 0 && len(rows) > r.MaxRows {
		rows = rows[:r.MaxRows]
	}
	for _, row := range rows {
		cells := make([]string, len(table.Columns))
		for i := range cells {
			if i < len(row) {
				cells[i] = escape(fmt.Sprint(row[i]))
			}
		}
		writeRow(buf, cells)
	}
	if omitted := len(table.Rows) - len(rows); omitted > 0 {
		fmt.Fprintf(buf, "\n_… %d more rows_\n", omitted)
	}
}

func writeRow(buf *bytes.Buffer, cells []string) {
	buf.WriteString("| ")
	buf.WriteString(strings.Join(cells, " | "))
	buf.WriteString(" |\n")
}

var escaper = strings.NewReplacer(
	`\`, `\\`, "|", `\|`, "<", `\<`, ">", `\>`, "&", `\&`,
	"*", `\*`, "_", `\_`, "`", "\\`", "[", `\[`, "]", `\]`,
	"\n", " ", "\r", "",
)

func escape(s string) string {
	return escaper.Replace(s)
}
