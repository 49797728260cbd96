package xlsx

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// ExcelizeReader reads columns with excelize.
type ExcelizeReader struct{}

// ReadColumn implements Reader.
func (ExcelizeReader) ReadColumn(b []byte, sheet, column string) (Column, error) {
	colIdx, letter, err := ColumnIndex(column)
	if err != nil {
		return Column{}, err
	}

	f, err := excelize.OpenReader(bytes.NewReader(b))
	if err != nil {
		return Column{}, err
	}
	defer f.Close()

	// GetRows trims trailing empty rows and the blank tail of every row.
	rows, err := f.GetRows(sheet)
	if err != nil {
		var notExist excelize.ErrSheetNotExist
		if errors.As(err, &notExist) {
			return Column{}, fmt.Errorf("%w: %q", ErrSheetNotFound, sheet)
		}
		return Column{}, err
	}

	col := Column{Sheet: sheet, Letter: letter, Values: make([]string, len(rows))}
	for i, row := range rows {
		if colIdx < len(row) {
			col.Values[i] = row[colIdx]
		}
	}
	return col, nil
}
