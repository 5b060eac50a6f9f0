package services

import (
	"fmt"
	"math"
	"strconv"

	"house-insights/models"
)

// ColumnKind tells whether a column takes part in descriptive statistics.
type ColumnKind int

const (
	KindNumeric ColumnKind = iota
	KindText
)

// PricePerAreaColumn is the name of the derived price/lot-area column.
const PricePerAreaColumn = "price_per_area"

// Column is a typed accessor for one named field of a Sale.
type Column struct {
	Name  string
	Kind  ColumnKind
	Value func(*models.Sale) float64
	Text  func(*models.Sale) string
}

func numericColumn(name string, value func(*models.Sale) float64) Column {
	return Column{
		Name:  name,
		Kind:  KindNumeric,
		Value: value,
		Text:  func(s *models.Sale) string { return FormatNumber(value(s)) },
	}
}

func textColumn(name string, text func(*models.Sale) string) Column {
	return Column{
		Name:  name,
		Kind:  KindText,
		Value: func(*models.Sale) float64 { return math.NaN() },
		Text:  text,
	}
}

var builtinColumns = map[string]Column{
	"id":            numericColumn("id", func(s *models.Sale) float64 { return float64(s.ID) }),
	"date":          textColumn("date", saleDateText),
	"price":         numericColumn("price", func(s *models.Sale) float64 { return s.Price }),
	"bedrooms":      numericColumn("bedrooms", func(s *models.Sale) float64 { return float64(s.Bedrooms) }),
	"bathrooms":     numericColumn("bathrooms", func(s *models.Sale) float64 { return s.Bathrooms }),
	"sqft_living":   numericColumn("sqft_living", func(s *models.Sale) float64 { return s.SqftLiving }),
	"sqft_lot":      numericColumn("sqft_lot", func(s *models.Sale) float64 { return s.SqftLot }),
	"floors":        numericColumn("floors", func(s *models.Sale) float64 { return s.Floors }),
	"waterfront":    numericColumn("waterfront", (*models.Sale).WaterfrontValue),
	"view":          numericColumn("view", func(s *models.Sale) float64 { return float64(s.View) }),
	"condition":     numericColumn("condition", func(s *models.Sale) float64 { return float64(s.Condition) }),
	"grade":         numericColumn("grade", func(s *models.Sale) float64 { return float64(s.Grade) }),
	"sqft_above":    numericColumn("sqft_above", func(s *models.Sale) float64 { return s.SqftAbove }),
	"sqft_basement": numericColumn("sqft_basement", func(s *models.Sale) float64 { return s.SqftBasement }),
	"yr_built":      numericColumn("yr_built", func(s *models.Sale) float64 { return float64(s.YrBuilt) }),
	"yr_renovated":  numericColumn("yr_renovated", func(s *models.Sale) float64 { return float64(s.YrRenovated) }),
	"zipcode":       textColumn("zipcode", func(s *models.Sale) string { return s.Zipcode }),
	"lat":           numericColumn("lat", func(s *models.Sale) float64 { return s.Lat }),
	"long":          numericColumn("long", func(s *models.Sale) float64 { return s.Long }),
	"sqft_living15": numericColumn("sqft_living15", func(s *models.Sale) float64 { return s.SqftLiving15 }),
	"sqft_lot15":    numericColumn("sqft_lot15", func(s *models.Sale) float64 { return s.SqftLot15 }),
	PricePerAreaColumn: numericColumn(PricePerAreaColumn, func(s *models.Sale) float64 {
		return s.PricePerArea
	}),
}

func saleDateText(s *models.Sale) string {
	if s.NormalizedDate != "" {
		return s.NormalizedDate
	}
	return s.Date
}

// ColumnRegistry maps the column names of one dataset to typed accessors,
// in dataset order. Pass-through columns are exposed as text.
type ColumnRegistry struct {
	order  []string
	byName map[string]Column
}

// NewColumnRegistry builds the registry for ds. The derived price_per_area
// column is appended when ds has been through the feature deriver.
func NewColumnRegistry(ds *models.Dataset) *ColumnRegistry {
	r := &ColumnRegistry{byName: make(map[string]Column)}
	for _, name := range ds.Columns {
		r.add(name)
	}
	if ds.Derived {
		r.add(PricePerAreaColumn)
	}
	return r
}

func (r *ColumnRegistry) add(name string) {
	if _, dup := r.byName[name]; dup {
		return
	}
	col, ok := builtinColumns[name]
	if !ok {
		key := name
		col = textColumn(name, func(s *models.Sale) string { return s.Extra[key] })
	}
	r.order = append(r.order, name)
	r.byName[name] = col
}

// Names returns every column name in dataset order.
func (r *ColumnRegistry) Names() []string {
	return append([]string(nil), r.order...)
}

// Lookup returns the accessor for name.
func (r *ColumnRegistry) Lookup(name string) (Column, error) {
	col, ok := r.byName[name]
	if !ok {
		return Column{}, fmt.Errorf("%w: %q", ErrUnknownColumn, name)
	}
	return col, nil
}

// Project resolves names in the order given; an empty list selects every column.
func (r *ColumnRegistry) Project(names []string) ([]Column, error) {
	if len(names) == 0 {
		names = r.order
	}
	cols := make([]Column, 0, len(names))
	for _, name := range names {
		col, err := r.Lookup(name)
		if err != nil {
			return nil, err
		}
		cols = append(cols, col)
	}
	return cols, nil
}

// FormatNumber renders v with the shortest exact representation.
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// FormatStat renders a statistic with two decimals, the display precision of
// every aggregated value.
func FormatStat(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
