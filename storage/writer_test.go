package storage

import (
	"bytes"
	"testing"

	"github.com/xuri/excelize/v2"

	"house-insights/models"
)

func sampleTables() []models.Table {
	return []models.Table{
		{
			Title:   "Average Values",
			Columns: []string{"Zipcode", "Total Houses", "Price"},
			Rows:    [][]string{{"98001", "2", "150000.00"}, {"98002", "2", "350000.00"}},
		},
		{
			Title:   "Descriptive Analysis",
			Columns: []string{"Attributes", "Max"},
			Rows:    [][]string{{"price", "+Inf"}},
		},
	}
}

func TestCSVWriterWriteTables(t *testing.T) {
	var buf bytes.Buffer
	if err := NewCSVWriter().WriteTables(&buf, sampleTables()...); err != nil {
		t.Fatalf("WriteTables: %v", err)
	}

	want := "Zipcode,Total Houses,Price\n98001,2,150000.00\n98002,2,350000.00\n\nAttributes,Max\nprice,+Inf\n"
	if buf.String() != want {
		t.Errorf("got:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestXLSXWriterWriteTables(t *testing.T) {
	var buf bytes.Buffer
	if err := NewXLSXWriter().WriteTables(&buf, sampleTables()...); err != nil {
		t.Fatalf("WriteTables: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("OpenReader: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) != 2 || sheets[0] != "Average Values" || sheets[1] != "Descriptive Analysis" {
		t.Fatalf("sheets: got %v", sheets)
	}

	rows, err := f.GetRows("Average Values")
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(rows) != 3 || rows[0][0] != "Zipcode" || rows[2][0] != "98002" {
		t.Errorf("unexpected rows: %v", rows)
	}

	inf, err := f.GetCellValue("Descriptive Analysis", "B2")
	if err != nil {
		t.Fatalf("GetCellValue: %v", err)
	}
	if inf != "+Inf" {
		t.Errorf("non-finite cell should stay text, got %q", inf)
	}
}
