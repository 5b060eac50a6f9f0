package storage

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"house-insights/models"
)

// CSVReader reads sales from a local CSV file.
type CSVReader struct {
	path string
}

// NewCSVReader returns a reader for the CSV file at path.
func NewCSVReader(path string) *CSVReader {
	return &CSVReader{path: path}
}

// ReadSales opens the file and parses every row.
func (c *CSVReader) ReadSales(_ context.Context) (*models.Dataset, error) {
	f, err := os.Open(c.path)
	if err != nil {
		return nil, fmt.Errorf("csv: open %q: %w", c.path, err)
	}
	defer f.Close()

	return ParseCSV(c.path, f)
}

// ParseCSV parses CSV text with a header row into a Dataset.
func ParseCSV(source string, r io.Reader) (*models.Dataset, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("csv: %s is empty", source)
	}
	if err != nil {
		return nil, fmt.Errorf("csv: read header: %w", err)
	}

	ds, err := parseRows(source, header, reader.Read)
	if err != nil {
		return nil, fmt.Errorf("csv: %w", err)
	}
	return ds, nil
}
