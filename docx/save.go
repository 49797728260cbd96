package docx

import (
	"bytes"
	"errors"
	"io"
)

// ErrDetached is returned when saving a document that was not loaded from a
// DOCX file.
var ErrDetached = errors.New("docx: document has no underlying file")

// Sync writes the text of every changed paragraph back into its XML element.
// Unchanged paragraphs keep their runs as loaded.
func (d *Document) Sync() int {
	n := 0
	for _, p := range d.arena {
		if p.x == nil || !p.Changed() {
			continue
		}
		setParagraphText(p.x, p.Text)
		p.orig = p.Text
		n++
	}
	return n
}

// Save syncs pending text changes and serializes the document to w.
func (d *Document) Save(w io.Writer) error {
	if d.doc == nil {
		return ErrDetached
	}
	d.Sync()
	return d.doc.Save(w)
}

// Bytes is Save into memory.
func (d *Document) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := d.Save(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
