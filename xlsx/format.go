package xlsx

import (
	"fmt"

	"github.com/yamitzky/xlrd-go/xlrd"
)

// DetectFormat sniffs the container format of b: "xlsx", "xls", "xlsb",
// "ods", "zip" or "" when unknown.
func DetectFormat(b []byte) string {
	format, err := xlrd.InspectFormat("", b)
	if err != nil {
		return ""
	}
	return format
}

// CheckFormat rejects formats that are recognized but cannot be read. Unknown
// content is let through so the reader reports its own parse error.
func CheckFormat(b []byte) error {
	switch format := DetectFormat(b); format {
	case "xls", "xlsb", "ods":
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, xlrd.FileFormatDescriptions[format])
	}
	return nil
}
