package storage

import (
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/xuri/excelize/v2"

	"house-insights/models"
)

// XLSXWriter writes display tables into a workbook, one sheet per table.
type XLSXWriter struct{}

// NewXLSXWriter creates an XLSXWriter.
func NewXLSXWriter() *XLSXWriter {
	return &XLSXWriter{}
}

// WriteTables writes one sheet per table, named after the table title.
// Cells that parse as numbers are stored as numbers.
func (x *XLSXWriter) WriteTables(w io.Writer, tables ...models.Table) error {
	f := excelize.NewFile()
	defer f.Close()

	for i, t := range tables {
		name := sheetName(t.Title, i)
		if i == 0 {
			if err := f.SetSheetName("Sheet1", name); err != nil {
				return fmt.Errorf("xlsx: rename sheet: %w", err)
			}
		} else if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("xlsx: new sheet %q: %w", name, err)
		}

		if err := writeSheetRow(f, name, 1, t.Columns); err != nil {
			return err
		}
		for r, row := range t.Rows {
			if err := writeSheetRow(f, name, r+2, row); err != nil {
				return err
			}
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("xlsx: write workbook: %w", err)
	}
	return nil
}

func writeSheetRow(f *excelize.File, sheet string, rowNum int, cells []string) error {
	for c, cell := range cells {
		ref, err := excelize.CoordinatesToCellName(c+1, rowNum)
		if err != nil {
			return fmt.Errorf("xlsx: cell name: %w", err)
		}
		var value any = cell
		if n, err := strconv.ParseFloat(cell, 64); err == nil && rowNum > 1 && !math.IsNaN(n) && !math.IsInf(n, 0) {
			value = n
		}
		if err := f.SetCellValue(sheet, ref, value); err != nil {
			return fmt.Errorf("xlsx: set %s!%s: %w", sheet, ref, err)
		}
	}
	return nil
}

// sheetName trims titles to the 31-character limit and avoids empty names.
func sheetName(title string, idx int) string {
	if title == "" {
		return "Sheet" + strconv.Itoa(idx+1)
	}
	if len(title) > 31 {
		return title[:31]
	}
	return title
}
