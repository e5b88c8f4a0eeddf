// Package export writes tables to the console and to txt, csv and
// spreadsheet files.
package export

import (
	"fmt"
	"path/filepath"
	"strings"

	"str2table/internal/diag"
	"str2table/internal/source"
)

// Format is an output format.
type Format uint8

const (
	FormatConsole Format = iota
	FormatTxt
	FormatCSV
	FormatExcel
)

func (f Format) String() string {
	switch f {
	case FormatConsole:
		return "console"
	case FormatTxt:
		return "txt"
	case FormatCSV:
		return "csv"
	case FormatExcel:
		return "excel"
	}
	return "unknown"
}

// FormatFromPath picks the format from the file suffix: csv, txt, xls or xlsx.
func FormatFromPath(path string) (Format, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	switch ext {
	case "txt":
		return FormatTxt, nil
	case "csv":
		return FormatCSV, nil
	case "xls", "xlsx":
		return FormatExcel, nil
	}
	return FormatConsole, diag.NewArgError(diag.ArgFormatError, path, source.Whole(path),
		fmt.Sprintf("has the unsupported suffix %q, expected csv, txt, xls or xlsx.", ext))
}
