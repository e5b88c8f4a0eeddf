package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"str2table/internal/table"
)

// Text writes one line per table line, cells joined by sep.
func Text(w io.Writer, t *table.Table, sep string) error {
	for _, row := range t.Rows(table.Cell.String) {
		if _, err := io.WriteString(w, strings.Join(row, sep)+"\n"); err != nil {
			return err
		}
	}
	return nil
}

// CSV writes the table as comma separated records. Short lines stay short.
func CSV(w io.Writer, t *table.Table) error {
	cw := csv.NewWriter(w)
	for _, row := range t.Rows(table.Cell.String) {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv record: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
