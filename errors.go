package docfill

import (
	"fmt"
	"strings"
)

// DataSourceError reports a spreadsheet that could not be read or a sheet or
// column reference that does not resolve.
type DataSourceError struct {
	Sheet  string
	Column string
	Err    error
}

func (e *DataSourceError) Error() string {
	return fmt.Sprintf("read column %q of sheet %q: %v", e.Column, e.Sheet, e.Err)
}

func (e *DataSourceError) Unwrap() error {
	return e.Err
}

// TemplateLoadError reports a template that could not be read as a document.
type TemplateLoadError struct {
	Name string
	Err  error
}

func (e *TemplateLoadError) Error() string {
	return fmt.Sprintf("load template %q: %v", e.Name, e.Err)
}

func (e *TemplateLoadError) Unwrap() error {
	return e.Err
}

// MissingInputError lists the request fields that were absent. No run is
// attempted when it is returned.
type MissingInputError struct {
	Fields []string
}

func (e *MissingInputError) Error() string {
	return "missing required input: " + strings.Join(e.Fields, ", ")
}
