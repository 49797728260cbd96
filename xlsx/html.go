package xlsx

import (
	"fmt"
	"html"
	"strings"
)

// RenderColumnHTML renders the column as a two-column HTML table of cell
// reference and value. Blank values are shown as an empty cell.
func RenderColumnHTML(c Column) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("<table class=\"column\" data-sheet=\"%s\">\n", html.EscapeString(c.Sheet)))
	b.WriteString("  <tr><th>Cell</th><th>Value</th></tr>\n")
	for i, v := range c.Values {
		b.WriteString(fmt.Sprintf("  <tr><td>%s</td><td>%s</td></tr>\n", c.Ref(i), html.EscapeString(v)))
	}
	b.WriteString("</table>\n")
	return b.String()
}
