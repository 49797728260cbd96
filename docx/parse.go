package docx

import (
	"bytes"
	"io"

	"github.com/unidoc/unioffice/document"
	"github.com/unidoc/unioffice/schema/soo/wml"
)

// Parse reads a DOCX document from r/size and builds the template tree.
// Top-level paragraphs and tables are collected in body order; table cells
// are walked recursively so nested tables are part of the tree as well.
func Parse(r io.ReaderAt, size int64) (*Document, error) {
	doc, err := document.Read(r, size)
	if err != nil {
		return nil, err
	}

	d := &Document{doc: doc}

	body := doc.X().Body
	if body == nil {
		// Empty document
		return d, nil
	}

	for _, bl := range body.EG_BlockLevelElts {
		for _, c := range bl.EG_ContentBlockContent {
			for _, cp := range c.P {
				p := d.convertParagraph(cp)
				d.Paragraphs = append(d.Paragraphs, p)
				d.Blocks = append(d.Blocks, Block{Paragraph: p})
			}
			for _, ct := range c.Tbl {
				t := d.convertTable(ct)
				d.Tables = append(d.Tables, t)
				d.Blocks = append(d.Blocks, Block{Table: t})
			}
		}
	}

	return d, nil
}

// ParseBytes is Parse over an in-memory file.
func ParseBytes(b []byte) (*Document, error) {
	return Parse(bytes.NewReader(b), int64(len(b)))
}

func (d *Document) convertParagraph(p *wml.CT_P) *Paragraph {
	return d.newParagraph(paragraphText(p), p)
}

func (d *Document) convertTable(t *wml.CT_Tbl) *Table {
	tbl := &Table{}

	for _, rc := range t.EG_ContentRowContent {
		for _, tr := range rc.Tr {
			row := &Row{}

			for _, cc := range tr.EG_ContentCellContent {
				for _, tc := range cc.Tc {
					row.Cells = append(row.Cells, d.convertCell(tc))
				}
			}

			tbl.Rows = append(tbl.Rows, row)
		}
	}

	return tbl
}

func (d *Document) convertCell(tc *wml.CT_Tc) *Cell {
	cell := &Cell{}

	for _, bl := range tc.EG_BlockLevelElts {
		for _, c := range bl.EG_ContentBlockContent {
			for _, cp := range c.P {
				cell.Paragraphs = append(cell.Paragraphs, d.convertParagraph(cp))
			}
			for _, ct := range c.Tbl {
				cell.Tables = append(cell.Tables, d.convertTable(ct))
			}
		}
	}

	return cell
}
