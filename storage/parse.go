package storage

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"house-insights/models"
)

// RequiredColumns is the fixed header every source must provide, in source order.
var RequiredColumns = []string{
	"id", "date", "price", "bedrooms", "bathrooms", "sqft_living", "sqft_lot",
	"floors", "waterfront", "view", "condition", "grade", "sqft_above",
	"sqft_basement", "yr_built", "yr_renovated", "zipcode", "lat", "long",
	"sqft_living15", "sqft_lot15",
}

type fieldParser func(s *models.Sale, raw string) error

// price and sqft_lot are parsed leniently: bad cells become NaN and are
// rejected later by the feature deriver, which owns that failure.
var fieldParsers = map[string]fieldParser{
	"id": func(s *models.Sale, raw string) (err error) {
		s.ID, err = strconv.ParseInt(raw, 10, 64)
		return
	},
	"date": func(s *models.Sale, raw string) error {
		s.Date = raw
		return nil
	},
	"price": func(s *models.Sale, raw string) error {
		s.Price = lenientFloat(raw)
		return nil
	},
	"bedrooms":    intField(func(s *models.Sale, v int) { s.Bedrooms = v }),
	"bathrooms":   floatField(func(s *models.Sale, v float64) { s.Bathrooms = v }),
	"sqft_living": floatField(func(s *models.Sale, v float64) { s.SqftLiving = v }),
	"sqft_lot": func(s *models.Sale, raw string) error {
		s.SqftLot = lenientFloat(raw)
		return nil
	},
	"floors": floatField(func(s *models.Sale, v float64) { s.Floors = v }),
	"waterfront": func(s *models.Sale, raw string) error {
		switch strings.ToLower(raw) {
		case "1", "1.0", "true":
			s.Waterfront = true
		case "0", "0.0", "false":
			s.Waterfront = false
		default:
			return fmt.Errorf("invalid waterfront flag %q", raw)
		}
		return nil
	},
	"view":          intField(func(s *models.Sale, v int) { s.View = v }),
	"condition":     intField(func(s *models.Sale, v int) { s.Condition = v }),
	"grade":         intField(func(s *models.Sale, v int) { s.Grade = v }),
	"sqft_above":    floatField(func(s *models.Sale, v float64) { s.SqftAbove = v }),
	"sqft_basement": floatField(func(s *models.Sale, v float64) { s.SqftBasement = v }),
	"yr_built":      intField(func(s *models.Sale, v int) { s.YrBuilt = v }),
	"yr_renovated":  intField(func(s *models.Sale, v int) { s.YrRenovated = v }),
	"zipcode": func(s *models.Sale, raw string) error {
		if raw == "" {
			return errors.New("empty zipcode")
		}
		s.Zipcode = strings.TrimSuffix(raw, ".0")
		return nil
	},
	"lat":           floatField(func(s *models.Sale, v float64) { s.Lat = v }),
	"long":          floatField(func(s *models.Sale, v float64) { s.Long = v }),
	"sqft_living15": floatField(func(s *models.Sale, v float64) { s.SqftLiving15 = v }),
	"sqft_lot15":    floatField(func(s *models.Sale, v float64) { s.SqftLot15 = v }),
}

func intField(set func(*models.Sale, int)) fieldParser {
	return func(s *models.Sale, raw string) error {
		if n, err := strconv.Atoi(raw); err == nil {
			set(s, n)
			return nil
		}
		// exports sometimes write integral columns as "3.0"
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil || f != math.Trunc(f) {
			return fmt.Errorf("invalid integer %q", raw)
		}
		set(s, int(f))
		return nil
	}
}

func floatField(set func(*models.Sale, float64)) fieldParser {
	return func(s *models.Sale, raw string) error {
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return fmt.Errorf("invalid number %q", raw)
		}
		set(s, f)
		return nil
	}
}

func lenientFloat(raw string) float64 {
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return math.NaN()
	}
	return f
}

// rowSource yields one record per call and io.EOF when exhausted.
type rowSource func() ([]string, error)

// parseRows validates the header and converts every row into a Sale.
// columnName folds the fixed header names to lower case and keeps the
// spelling of pass-through columns.
func columnName(h string) string {
	name := strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
	if lower := strings.ToLower(name); fieldParsers[lower] != nil {
		return lower
	}
	return name
}

func parseRows(source string, header []string, next rowSource) (*models.Dataset, error) {
	columns := make([]string, len(header))
	seen := make(map[string]bool, len(header))
	for i, h := range header {
		name := columnName(h)
		if seen[name] {
			return nil, fmt.Errorf("duplicate column %q", name)
		}
		seen[name] = true
		columns[i] = name
	}

	var missing []string
	for _, col := range RequiredColumns {
		if !seen[col] {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required columns: %s", strings.Join(missing, ", "))
	}

	ds := &models.Dataset{
		Source:   source,
		Columns:  columns,
		Sales:    make([]*models.Sale, 0),
		LoadedAt: time.Now(),
	}

	for line := 2; ; line++ {
		row, err := next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", line, err)
		}
		if len(row) != len(columns) {
			return nil, fmt.Errorf("row %d: got %d fields, want %d", line, len(row), len(columns))
		}

		sale := &models.Sale{}
		for i, raw := range row {
			raw = strings.TrimSpace(raw)
			parse, ok := fieldParsers[columns[i]]
			if !ok {
				if sale.Extra == nil {
					sale.Extra = make(map[string]string)
				}
				sale.Extra[columns[i]] = raw
				continue
			}
			if err := parse(sale, raw); err != nil {
				return nil, fmt.Errorf("row %d column %q: %w", line, columns[i], err)
			}
		}
		ds.Sales = append(ds.Sales, sale)
	}

	return ds, nil
}
