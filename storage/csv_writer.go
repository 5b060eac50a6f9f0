package storage

import (
	"encoding/csv"
	"fmt"
	"io"

	"house-insights/models"
)

// CSVWriter writes display tables as CSV. Multiple tables are separated by a blank record.
type CSVWriter struct{}

// NewCSVWriter creates a CSVWriter.
func NewCSVWriter() *CSVWriter {
	return &CSVWriter{}
}

// WriteTables writes each table's header row followed by its rows.
func (c *CSVWriter) WriteTables(w io.Writer, tables ...models.Table) error {
	writer := csv.NewWriter(w)

	for i, t := range tables {
		if i > 0 {
			if err := writer.Write([]string{}); err != nil {
				return fmt.Errorf("csv: write separator: %w", err)
			}
		}
		if err := writer.Write(t.Columns); err != nil {
			return fmt.Errorf("csv: write header: %w", err)
		}
		for _, row := range t.Rows {
			if err := writer.Write(row); err != nil {
				return fmt.Errorf("csv: write row: %w", err)
			}
		}
	}

	writer.Flush()
	return writer.Error()
}
