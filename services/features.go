package services

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"house-insights/models"
	"house-insights/utils"
)

// NormalizedDateLayout is the canonical form of every sale date.
const NormalizedDateLayout = "2006-01-02"

// dateLayouts are tried in order; the first is the King County export format.
var dateLayouts = []string{
	"20060102T150405",
	NormalizedDateLayout,
	"2006-01-02 15:04:05",
	time.RFC3339,
	"1/2/2006",
}

// FeatureDeriver adds price_per_area and normalized_date to every sale.
type FeatureDeriver struct {
	logger *utils.Logger
}

// NewFeatureDeriver creates a FeatureDeriver with the given logger.
func NewFeatureDeriver(logger *utils.Logger) *FeatureDeriver {
	return &FeatureDeriver{logger: logger}
}

// DeriveFeatures returns a new dataset whose sales carry the derived columns.
// The input is never modified. The whole batch is rejected when a price or
// lot area is missing or when a date cannot be parsed. A zero lot area is not
// an error: it yields +Inf, or NaN for a zero price.
func (f *FeatureDeriver) DeriveFeatures(ds *models.Dataset) (*models.Dataset, error) {
	if ds == nil {
		return nil, &FeatureDerivationError{Err: errors.New("nil dataset")}
	}

	out := &models.Dataset{
		Source:   ds.Source,
		Columns:  append([]string(nil), ds.Columns...),
		Sales:    make([]*models.Sale, len(ds.Sales)),
		LoadedAt: ds.LoadedAt,
		Derived:  true,
	}

	for i, s := range ds.Sales {
		row := i + 1
		if math.IsNaN(s.Price) {
			return nil, &FeatureDerivationError{Row: row, Column: "price", Err: errors.New("missing or non-numeric")}
		}
		if math.IsNaN(s.SqftLot) {
			return nil, &FeatureDerivationError{Row: row, Column: "sqft_lot", Err: errors.New("missing or non-numeric")}
		}
		saleDate, err := ParseSaleDate(s.Date)
		if err != nil {
			return nil, &FeatureDerivationError{Row: row, Column: "date", Err: err}
		}

		c := *s
		c.Extra = copyExtra(s.Extra)
		c.PricePerArea = s.Price / s.SqftLot
		c.SaleDate = saleDate
		c.NormalizedDate = saleDate.Format(NormalizedDateLayout)
		out.Sales[i] = &c
	}

	if f.logger != nil {
		f.logger.Debug("[features] Derived features for %d sales from %s", len(out.Sales), ds.Source)
	}
	return out, nil
}

// ParseSaleDate parses a raw sale date in any of the accepted layouts and
// truncates it to the calendar day.
func ParseSaleDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised date %q", raw)
}

func copyExtra(m map[string]string) map[string]string {
	if m == nil {
		return nil
	}
	c := make(map[string]string, len(m))
	for k, v := range m {
		c[k] = v
	}
	return c
}

func requireDerived(ds *models.Dataset) error {
	if ds == nil || !ds.Derived {
		return ErrFeaturesMissing
	}
	return nil
}
