package export

import (
	"fmt"
	"io"
	"math"

	"github.com/xuri/excelize/v2"

	"str2table/internal/cell"
	"str2table/internal/table"
)

const sheet = "Sheet1"

// Workbook builds a single sheet workbook holding the table. Integers that
// fit int64 and finite floats are stored as numbers, everything else as text.
func Workbook(t *table.Table) (*excelize.File, error) {
	f := excelize.NewFile()
	for i, line := range t.Lines() {
		for j, c := range line {
			name, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				_ = f.Close()
				return nil, err
			}
			if err := f.SetCellValue(sheet, name, excelValue(c.Value)); err != nil {
				_ = f.Close()
				return nil, fmt.Errorf("set %s: %w", name, err)
			}
		}
	}
	return f, nil
}

func excelValue(v cell.Value) any {
	switch v.Kind() {
	case cell.KindInt:
		if i := v.Int(); i.IsInt64() {
			return i.Int64()
		}
	case cell.KindFloat:
		if f := v.Float64(); !math.IsInf(f, 0) && !math.IsNaN(f) {
			return f
		}
	}
	return v.String()
}

// Excel writes the table as an xlsx workbook.
func Excel(w io.Writer, t *table.Table) error {
	f, err := Workbook(t)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()
	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
