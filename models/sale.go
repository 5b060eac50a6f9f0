package models

import (
	"math"
	"strconv"
	"time"
)

// Sale is one historical house sale as read from the dataset.
// Fields below the blank line are derived once by the feature deriver.
type Sale struct {
	ID           int64
	Date         string
	Price        float64
	Bedrooms     int
	Bathrooms    float64
	SqftLiving   float64
	SqftLot      float64
	Floors       float64
	Waterfront   bool
	View         int
	Condition    int
	Grade        int
	SqftAbove    float64
	SqftBasement float64
	YrBuilt      int
	YrRenovated  int
	Zipcode      string
	Lat          float64
	Long         float64
	SqftLiving15 float64
	SqftLot15    float64

	// Extra holds pass-through columns outside the fixed header.
	Extra map[string]string

	PricePerArea   float64
	NormalizedDate string
	SaleDate       time.Time
}

// WaterfrontValue returns the waterfront flag in its 0/1 encoding.
func (s *Sale) WaterfrontValue() float64 {
	if s.Waterfront {
		return 1
	}
	return 0
}

// Dataset is the full, immutable record set of one source.
type Dataset struct {
	Source   string
	Columns  []string
	Sales    []*Sale
	LoadedAt time.Time
	Derived  bool
}

// Len returns the number of sales in the dataset.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Sales)
}

// Float is a float64 that encodes NaN and ±Inf as JSON null.
type Float float64

func (f Float) MarshalJSON() ([]byte, error) {
	v := float64(f)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return []byte("null"), nil
	}
	return strconv.AppendFloat(nil, v, 'f', -1, 64), nil
}

// IsFinite reports whether f is neither NaN nor infinite.
func (f Float) IsFinite() bool {
	v := float64(f)
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
