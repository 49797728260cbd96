// Package xlsx extracts a single column of display values from a spreadsheet.
package xlsx

import (
	"errors"
	"fmt"

	"github.com/xuri/excelize/v2"
)

var (
	// ErrSheetNotFound is returned when the workbook has no sheet with the
	// requested name.
	ErrSheetNotFound = errors.New("sheet not found")
	// ErrInvalidColumn is returned for column identifiers that are not
	// spreadsheet column letters in A..XFD.
	ErrInvalidColumn = errors.New("invalid column")
	// ErrUnsupportedFormat is returned for spreadsheet formats no reader
	// handles, such as legacy .xls.
	ErrUnsupportedFormat = errors.New("unsupported spreadsheet format")
)

// Reader reads one column of one sheet, rows 1 through the last row holding
// any value on the sheet. Cells without a value yield "".
type Reader interface {
	ReadColumn(b []byte, sheet, column string) (Column, error)
}

// Backend names accepted by NewReader.
const (
	BackendUnioffice = "unioffice"
	BackendExcelize  = "excelize"
)

// NewReader returns the reader registered under name. An empty name selects
// the unioffice reader.
func NewReader(name string) (Reader, error) {
	switch name {
	case "", BackendUnioffice:
		return UniofficeReader{}, nil
	case BackendExcelize:
		return ExcelizeReader{}, nil
	default:
		return nil, fmt.Errorf("unknown spreadsheet reader %q", name)
	}
}

// ReadColumn sniffs the format of b and reads the column with r.
func ReadColumn(r Reader, b []byte, sheet, column string) (Column, error) {
	if err := CheckFormat(b); err != nil {
		return Column{}, err
	}
	return r.ReadColumn(b, sheet, column)
}

// ColumnIndex validates a column identifier such as "B" or "aa" and returns
// its 0-based index and normalized letters.
func ColumnIndex(column string) (int, string, error) {
	letter := normalizeLetter(column)
	n, err := excelize.ColumnNameToNumber(letter)
	if err != nil {
		return 0, "", fmt.Errorf("%w %q: %v", ErrInvalidColumn, column, err)
	}
	return n - 1, letter, nil
}

// setValue stores v at 0-based row idx, growing values as needed.
func setValue(values []string, idx int, v string) []string {
	if idx >= len(values) {
		values = append(values, make([]string, idx-len(values)+1)...)
	}
	values[idx] = v
	return values
}
