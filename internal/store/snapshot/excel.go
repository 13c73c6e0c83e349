package snapshot

import (
	"fmt"
	"math"

	"github.com/xuri/excelize/v2"

	"macrostat/internal/series"
)

const sheetName = "Monthly Data"

// ExportXLSX writes the table as a spreadsheet: dates in the first
// column, numeric cells typed as numbers so formulas work on them,
// placeholders kept as text.
func ExportXLSX(t series.Table, path string) error {
	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	if err := setCell(f, 1, 1, "Date"); err != nil {
		return err
	}
	for i, col := range t.Columns {
		if err := setCell(f, i+2, 1, col); err != nil {
			return err
		}
	}
	endHeader, _ := excelize.CoordinatesToCellName(len(t.Columns)+1, 1)
	if err := f.SetCellStyle(sheetName, "A1", endHeader, headerStyle); err != nil {
		return err
	}

	for r, row := range t.Rows {
		if err := setCell(f, 1, r+2, row.Date.Format(dateLayout)); err != nil {
			return err
		}
		for cIdx, col := range t.Columns {
			raw := row.Value(col)
			if raw == "" {
				continue
			}
			var v any = raw
			if num := series.Numeric(raw); !math.IsNaN(num) {
				v = num
			}
			if err := setCell(f, cIdx+2, r+2, v); err != nil {
				return err
			}
		}
	}

	if err := f.SetColWidth(sheetName, "A", "A", 12); err != nil {
		return err
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("writing %s failed: %w", path, err)
	}
	return nil
}

func setCell(f *excelize.File, col, row int, v any) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	return f.SetCellValue(sheetName, cell, v)
}
