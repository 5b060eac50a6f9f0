package storage

import (
	"context"
	"io"

	"house-insights/models"
)

// SaleReader is the interface any sale source must satisfy. Sources are read-only.
type SaleReader interface {
	ReadSales(ctx context.Context) (*models.Dataset, error)
}

// TableWriter is the interface for exporting display tables.
type TableWriter interface {
	WriteTables(w io.Writer, tables ...models.Table) error
}
