package docx

import (
	"fmt"
	"html"
	"strings"
)

// DebugHTML controls whether paragraph IDs and change flags are emitted as
// data attributes in the rendered HTML.
var DebugHTML bool

// -----------------------------------------------------------------------------
// Paragraph rendering
// -----------------------------------------------------------------------------

func renderParagraphHTML(p *Paragraph) string {
	text := html.EscapeString(p.Text)
	text = strings.ReplaceAll(text, "\n", "<br>")
	debugAttr := ""
	if DebugHTML {
		debugAttr = fmt.Sprintf(" data-para=\"%d\" data-changed=\"%t\"", p.ID, p.Changed())
	}
	if text == "" {
		text = "&nbsp;"
	}
	return fmt.Sprintf("<p%s>%s</p>\n", debugAttr, text)
}

// -----------------------------------------------------------------------------
// Table rendering
// -----------------------------------------------------------------------------

func renderTableHTML(t *Table) string {
	var b strings.Builder
	b.WriteString("<table style=\"border-collapse:collapse;\">\n")
	for _, row := range t.Rows {
		b.WriteString("  <tr>")
		for _, cell := range row.Cells {
			var cellHTML string
			if len(cell.Paragraphs) == 0 && len(cell.Tables) == 0 {
				cellHTML = "&nbsp;"
			} else {
				var inner strings.Builder
				for _, p := range cell.Paragraphs {
					inner.WriteString(renderParagraphHTML(p))
				}
				for _, nested := range cell.Tables {
					inner.WriteString(renderTableHTML(nested))
				}
				cellHTML = inner.String()
			}
			b.WriteString(fmt.Sprintf("    <td style=\"border:1px solid #333; padding:4px;\">%s</td>", cellHTML))
		}
		b.WriteString("  </tr>\n")
	}
	b.WriteString("</table>\n")
	return b.String()
}

// -----------------------------------------------------------------------------
// Top-level rendering entry point
// -----------------------------------------------------------------------------

// RenderHTML renders the body of d as an HTML fragment in body order.
func RenderHTML(d *Document) string {
	var b strings.Builder

	if len(d.Blocks) > 0 {
		for _, blk := range d.Blocks {
			if blk.Paragraph != nil {
				b.WriteString(renderParagraphHTML(blk.Paragraph))
			} else if blk.Table != nil {
				b.WriteString(renderTableHTML(blk.Table))
			}
		}
	} else {
		// Detached documents have no block order.
		for _, p := range d.Paragraphs {
			b.WriteString(renderParagraphHTML(p))
		}
		for _, tbl := range d.Tables {
			b.WriteString(renderTableHTML(tbl))
		}
	}

	return b.String()
}
