// Package docfill fills numbered placeholders (<f1>, <f2>, ...) in a DOCX
// template with the values of one spreadsheet column.
package docfill

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/aerissecure/docfill/docx"
	"github.com/aerissecure/docfill/output"
	"github.com/aerissecure/docfill/placeholder"
	"github.com/aerissecure/docfill/xlsx"
)

// Filler runs the fill pipeline. A Filler holds no per-run state and may be
// shared between goroutines.
type Filler struct {
	reader xlsx.Reader
	sink   output.Sink
}

// New returns a Filler reading spreadsheets with reader and saving results
// to sink. A nil reader selects the default one; a nil sink makes Run
// behave like Fill.
func New(reader xlsx.Reader, sink output.Sink) *Filler {
	if reader == nil {
		reader = xlsx.UniofficeReader{}
	}
	return &Filler{reader: reader, sink: sink}
}

// Fill runs the pipeline in memory: read the column, build the placeholder
// map, load the template, substitute every paragraph and serialize.
func (f *Filler) Fill(ctx context.Context, req Request) (*Result, error) {
	return f.fill(ctx, req, time.Now())
}

// Run is Fill followed by saving the document to the sink. Nothing is saved
// unless every earlier step succeeded.
func (f *Filler) Run(ctx context.Context, req Request) (*Result, error) {
	start := time.Now()
	res, err := f.fill(ctx, req, start)
	if err != nil {
		return nil, err
	}
	if f.sink == nil {
		return res, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path, err := f.sink.Save(ctx, res.OutputName, res.Document)
	if err != nil {
		return nil, fmt.Errorf("save %s: %w", res.OutputName, err)
	}
	res.Path = path
	res.Elapsed = time.Since(start)

	slog.Info("Document saved", "file", res.Path, "elapsed", res.Elapsed)
	return res, nil
}

func (f *Filler) fill(ctx context.Context, req Request, start time.Time) (*Result, error) {
	if missing := req.missing(); len(missing) > 0 {
		return nil, &MissingInputError{Fields: missing}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	slog.Debug("Starting run", "request", req.String())

	col, err := xlsx.ReadColumn(f.reader, req.Spreadsheet, req.Sheet, req.Column)
	if err != nil {
		return nil, &DataSourceError{Sheet: req.Sheet, Column: req.Column, Err: err}
	}
	slog.Debug("Read column", "sheet", col.Sheet, "column", col.Letter, "rows", len(col.Values))

	tokens := placeholder.Build(col.Values)

	doc, err := docx.ParseBytes(req.Template)
	if err != nil {
		return nil, &TemplateLoadError{Name: req.TemplateName, Err: err}
	}

	visited := docx.Walk(doc, tokens.Replace)
	preview := docx.RenderHTML(doc)

	out, err := doc.Bytes()
	if err != nil {
		return nil, fmt.Errorf("serialize document: %w", err)
	}

	res := &Result{
		Document:   out,
		OutputName: req.OutputName(),
		Values:     col.Values,
		Tokens:     tokens.Len(),
		Paragraphs: visited,
		Preview:    preview,
		Elapsed:    time.Since(start),
	}

	slog.Info("Filled template",
		"spreadsheet", req.SpreadsheetName,
		"template", req.TemplateName,
		"sheet", req.Sheet,
		"column", col.Letter,
		"tokens", res.Tokens,
		"paragraphs", res.Paragraphs,
		"elapsed", res.Elapsed,
	)
	return res, nil
}

// RequestFromFiles reads both inputs from disk. An empty path leaves that
// input empty so Fill reports it as missing. An unreadable spreadsheet is
// reported as a DataSourceError and an unreadable template as a
// TemplateLoadError.
func RequestFromFiles(spreadsheetPath, templatePath, sheet, column string) (Request, error) {
	req := Request{Sheet: sheet, Column: column}
	if spreadsheetPath != "" {
		req.SpreadsheetName = filepath.Base(spreadsheetPath)
		b, err := os.ReadFile(spreadsheetPath)
		if err != nil {
			return req, &DataSourceError{Sheet: sheet, Column: column, Err: err}
		}
		req.Spreadsheet = b
	}
	if templatePath != "" {
		req.TemplateName = filepath.Base(templatePath)
		b, err := os.ReadFile(templatePath)
		if err != nil {
			return req, &TemplateLoadError{Name: req.TemplateName, Err: err}
		}
		req.Template = b
	}
	return req, nil
}
