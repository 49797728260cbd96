package xlsx

import (
	"bytes"
	"fmt"

	"github.com/unidoc/unioffice/spreadsheet"
	"github.com/unidoc/unioffice/spreadsheet/reference"
)

// UniofficeReader reads columns with unioffice's spreadsheet package.
type UniofficeReader struct{}

// ReadColumn implements Reader.
func (UniofficeReader) ReadColumn(b []byte, sheet, column string) (Column, error) {
	colIdx, letter, err := ColumnIndex(column)
	if err != nil {
		return Column{}, err
	}

	wb, err := spreadsheet.Read(bytes.NewReader(b), int64(len(b)))
	if err != nil {
		return Column{}, err
	}

	var (
		sh    spreadsheet.Sheet
		found bool
	)
	for _, s := range wb.Sheets() {
		if s.Name() == sheet {
			sh, found = s, true
			break
		}
	}
	if !found {
		return Column{}, fmt.Errorf("%w: %q", ErrSheetNotFound, sheet)
	}

	col := Column{Sheet: sheet, Letter: letter}

	// Rows are sparse; only rows with at least one value extend the column.
	for _, row := range sh.Rows() {
		rowIdx := int(row.RowNumber()) - 1
		if rowIdx < 0 {
			continue
		}

		var (
			val    string
			hasAny bool
		)
		for _, cell := range row.Cells() {
			v := cell.GetFormattedValue()
			if v == "" {
				continue
			}
			hasAny = true

			colName, err := cell.Column()
			if err != nil {
				continue
			}
			if int(reference.ColumnToIndex(colName)) == colIdx {
				val = v
			}
		}
		if hasAny {
			col.Values = setValue(col.Values, rowIdx, val)
		}
	}

	return col, nil
}
