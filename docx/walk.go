package docx

// Walk passes the text of every paragraph in d through fn and stores the
// result back on the paragraph. It returns the number of paragraphs visited.
//
// Order: top-level paragraphs in document order, then each table row by row,
// cell by cell; inside a cell its paragraphs first, then its nested tables.
// Each paragraph is visited exactly once and the tree shape is left alone.
//
// Paragraph text includes runs inside hyperlinks, content controls and smart
// tags, with tabs as "\t" and line breaks as "\n". Text in tracked
// insertions and simple fields is not seen.
func Walk(d *Document, fn func(string) string) int {
	n := 0
	visit := func(p *Paragraph) {
		p.Text = fn(p.Text)
		n++
	}
	walkParagraphs(d.Paragraphs, visit)
	walkTables(d.Tables, visit)
	return n
}

func walkParagraphs(paras []*Paragraph, visit func(*Paragraph)) {
	for _, p := range paras {
		visit(p)
	}
}

func walkTables(tables []*Table, visit func(*Paragraph)) {
	for _, t := range tables {
		for _, row := range t.Rows {
			for _, cell := range row.Cells {
				walkParagraphs(cell.Paragraphs, visit)
				walkTables(cell.Tables, visit)
			}
		}
	}
}
