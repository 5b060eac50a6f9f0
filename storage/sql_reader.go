package storage

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"house-insights/models"
	"house-insights/utils"
)

var tableNameRegexp = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_.]*$`)

// SQLReader reads sales from a table in PostgreSQL or SQLite. It never writes.
type SQLReader struct {
	source string
	driver string
	dsn    string
	table  string
	retry  *utils.RetryConfig
}

// NewSQLReader builds a reader for postgres://, postgresql:// or sqlite:// sources.
func NewSQLReader(source, table string) (*SQLReader, error) {
	if !tableNameRegexp.MatchString(table) {
		return nil, fmt.Errorf("sql: invalid table name %q", table)
	}

	r := &SQLReader{
		source: utils.RedactSource(source),
		table:  table,
		retry:  &utils.RetryConfig{MaxAttempts: 3, BaseDelay: 500 * time.Millisecond},
	}
	switch {
	case strings.HasPrefix(source, "postgres://"), strings.HasPrefix(source, "postgresql://"):
		r.driver, r.dsn = "postgres", source
	case strings.HasPrefix(source, "sqlite://"):
		r.driver, r.dsn = "sqlite", strings.TrimPrefix(source, "sqlite://")
	default:
		return nil, fmt.Errorf("sql: unsupported source %q", r.source)
	}
	return r, nil
}

// ReadSales selects every row of the table and parses it like a CSV row.
func (r *SQLReader) ReadSales(ctx context.Context) (*models.Dataset, error) {
	db, err := sql.Open(r.driver, r.dsn)
	if err != nil {
		return nil, fmt.Errorf("%s: open: %w", r.driver, err)
	}
	defer db.Close()

	err = r.retry.Do(ctx, r.driver+" ping", func() error {
		return db.PingContext(ctx)
	})
	if err != nil {
		return nil, fmt.Errorf("%s: ping failed after retries: %w", r.driver, err)
	}

	rows, err := db.QueryContext(ctx, "SELECT * FROM "+r.table)
	if err != nil {
		return nil, fmt.Errorf("%s: query %s: %w", r.driver, r.table, err)
	}
	defer rows.Close()

	header, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("%s: columns: %w", r.driver, err)
	}

	cells := make([]sql.NullString, len(header))
	dest := make([]any, len(header))
	for i := range cells {
		dest[i] = &cells[i]
	}

	next := func() ([]string, error) {
		if !rows.Next() {
			if err := rows.Err(); err != nil {
				return nil, err
			}
			return nil, io.EOF
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		row := make([]string, len(cells))
		for i, c := range cells {
			if c.Valid {
				row[i] = c.String
			}
		}
		return row, nil
	}

	ds, err := parseRows(r.source, header, next)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", r.driver, err)
	}
	return ds, nil
}
