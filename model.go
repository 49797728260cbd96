package docfill

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// Defaults for the sheet and column of a Request.
const (
	DefaultSheet  = "Заявка"
	DefaultColumn = "B"
)

// Request carries everything a single run needs. File contents are passed in
// memory; the names are only used to derive the output name and in messages.
type Request struct {
	Spreadsheet     []byte
	SpreadsheetName string // e.g. "orders.xlsx"
	Template        []byte
	TemplateName    string // e.g. "letter.docx"
	Sheet           string
	Column          string
}

func (r Request) String() string {
	return fmt.Sprintf("Spreadsheet: %s (%d bytes), Template: %s (%d bytes), Sheet: %s, Column: %s",
		r.SpreadsheetName, len(r.Spreadsheet), r.TemplateName, len(r.Template), r.Sheet, r.Column)
}

// missing returns the names of the required fields that are empty.
func (r Request) missing() []string {
	var out []string
	if len(r.Spreadsheet) == 0 {
		out = append(out, "spreadsheet")
	}
	if len(r.Template) == 0 {
		out = append(out, "template")
	}
	if strings.TrimSpace(r.Sheet) == "" {
		out = append(out, "sheet")
	}
	if strings.TrimSpace(r.Column) == "" {
		out = append(out, "column")
	}
	return out
}

// OutputName is the spreadsheet base name with the template's extension,
// e.g. "orders.xlsx" + "letter.docx" -> "orders.docx".
func (r Request) OutputName() string {
	base := filepath.Base(r.SpreadsheetName)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	if base == "" || base == "." || base == string(filepath.Separator) {
		base = "output"
	}
	ext := filepath.Ext(r.TemplateName)
	if ext == "" {
		ext = ".docx"
	}
	return base + ext
}

// Result is the outcome of a successful run.
type Result struct {
	Document   []byte        // filled document
	OutputName string        // file name the document is saved under
	Path       string        // where it was saved; empty until persisted
	Values     []string      // the column as read
	Tokens     int           // placeholder map entries
	Paragraphs int           // paragraphs visited
	Preview    string        // HTML rendering of the filled body
	Elapsed    time.Duration // wall-clock time of the run
}

func (r Result) String() string {
	return fmt.Sprintf("OutputName: %s, Path: %s, Tokens: %d, Paragraphs: %d, Elapsed: %s",
		r.OutputName, r.Path, r.Tokens, r.Paragraphs, r.Elapsed)
}
