package xlsx

import (
	"fmt"
	"strings"
)

// Column is one spreadsheet column read top to bottom.
type Column struct {
	Sheet  string   // sheet name as requested
	Letter string   // normalized column letters, e.g. "B"
	Values []string // formatted cell values, row 1 first; blanks are ""
}

func (c Column) String() string {
	return fmt.Sprintf("Sheet: %s, Letter: %s, Rows: %d", c.Sheet, c.Letter, len(c.Values))
}

// Ref returns the A1 reference of the i-th value (0-based).
func (c Column) Ref(i int) string {
	return fmt.Sprintf("%s%d", c.Letter, i+1)
}

func normalizeLetter(col string) string {
	return strings.ToUpper(strings.TrimSpace(col))
}
