package docx

import (
	"fmt"

	"github.com/unidoc/unioffice/document"
	"github.com/unidoc/unioffice/schema/soo/wml"
)

// In-memory tree for DOCX templates.
//
// The tree is owned by this package rather than by unioffice: every paragraph
// lives in a single arena on the Document and carries its own Text. Tables,
// rows and cells only hold pointers into that arena. The loader binds each
// paragraph to the <w:p> element it was read from and Save writes changed
// text back before serializing.

// -----------------------------------------------------------------------------
// Paragraphs
// -----------------------------------------------------------------------------

// Paragraph is a single text-bearing node.
type Paragraph struct {
	ID   int    // position in the document arena, in load order
	Text string // current text, free to mutate

	orig string   // text as loaded
	x    *wml.CT_P // underlying element, nil for detached paragraphs
}

// Changed reports whether Text differs from the loaded text.
func (p *Paragraph) Changed() bool {
	return p.Text != p.orig
}

func (p *Paragraph) String() string {
	return fmt.Sprintf("ID: %d, Text: %q, Changed: %t", p.ID, p.Text, p.Changed())
}

// -----------------------------------------------------------------------------
// Tables
// -----------------------------------------------------------------------------

// Cell holds its paragraphs and any tables nested inside it, each in
// document order.
type Cell struct {
	Paragraphs []*Paragraph
	Tables     []*Table
}

func (c *Cell) String() string {
	return fmt.Sprintf("Paragraphs: %d, Tables: %d", len(c.Paragraphs), len(c.Tables))
}

// Row is a table row, cells left to right.
type Row struct {
	Cells []*Cell
}

func (r *Row) String() string {
	return fmt.Sprintf("Cells: %d", len(r.Cells))
}

// Table is a table, rows top to bottom.
type Table struct {
	Rows []*Row
}

func (t *Table) String() string {
	return fmt.Sprintf("Rows: %d", len(t.Rows))
}

// -----------------------------------------------------------------------------
// Block ordering
// -----------------------------------------------------------------------------

// Block is a top-level body element. Exactly one of Paragraph/Table is set.
type Block struct {
	Paragraph *Paragraph
	Table     *Table
}

// -----------------------------------------------------------------------------
// Document
// -----------------------------------------------------------------------------

// Document is the template tree.
//
// Paragraphs and Tables list the top-level body elements by kind; Blocks keeps
// them interleaved in body order for rendering.
type Document struct {
	Paragraphs []*Paragraph
	Tables     []*Table
	Blocks     []Block

	arena []*Paragraph
	doc   *document.Document
}

// NewDocument returns an empty, detached document. Detached documents can be
// built and walked but not saved.
func NewDocument() *Document {
	return &Document{}
}

// NewParagraph allocates a detached paragraph in the document arena. The
// caller decides where it is attached.
func (d *Document) NewParagraph(text string) *Paragraph {
	return d.newParagraph(text, nil)
}

func (d *Document) newParagraph(text string, x *wml.CT_P) *Paragraph {
	p := &Paragraph{
		ID:   len(d.arena),
		Text: text,
		orig: text,
		x:    x,
	}
	d.arena = append(d.arena, p)
	return p
}

// AllParagraphs returns the paragraph arena in load order.
func (d *Document) AllParagraphs() []*Paragraph {
	return d.arena
}

func (d *Document) String() string {
	return fmt.Sprintf("Blocks: %d, Paragraphs: %d, Tables: %d, Arena: %d", len(d.Blocks), len(d.Paragraphs), len(d.Tables), len(d.arena))
}
