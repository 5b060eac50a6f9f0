package models

import "time"

// Table is a rectangular, display-ready view: one header row plus string cells.
type Table struct {
	Title   string     `json:"title"`
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// SummaryRow holds the per-zipcode averages of the overview.
type SummaryRow struct {
	Zipcode      string `json:"zipcode"`
	TotalHouses  int    `json:"total_houses"`
	Price        Float  `json:"price"`
	SqftLiving   Float  `json:"sqft_living"`
	PricePerArea Float  `json:"price_per_area"`
}

// StatRow holds the descriptive statistics of one numeric attribute.
type StatRow struct {
	Attribute string `json:"attribute"`
	Max       Float  `json:"max"`
	Min       Float  `json:"min"`
	Mean      Float  `json:"mean"`
	Median    Float  `json:"median"`
	Std       Float  `json:"std"`
}

// OverviewReport is the data behind the "Data Overview" section.
type OverviewReport struct {
	Data           Table        `json:"data"`
	Summary        []SummaryRow `json:"summary"`
	Stats          []StatRow    `json:"stats"`
	ColumnOptions  []string     `json:"column_options"`
	ZipcodeOptions []string     `json:"zipcode_options"`
}

// Empty reports whether the row selection matched nothing.
func (r *OverviewReport) Empty() bool {
	return len(r.Data.Rows) == 0
}

// LatLng is a geographic coordinate.
type LatLng struct {
	Lat  float64 `json:"lat"`
	Long float64 `json:"long"`
}

// Marker is one map pin; clustering is left to the map client.
type Marker struct {
	ID    int64   `json:"id"`
	Lat   float64 `json:"lat"`
	Long  float64 `json:"long"`
	Label string  `json:"label"`
}

// DensityMap is the data behind the "Portfolio Density" map.
type DensityMap struct {
	Center   LatLng   `json:"center"`
	Fallback bool     `json:"fallback"`
	Zoom     int      `json:"zoom"`
	Markers  []Marker `json:"markers"`
}

// Point is one (x, y) sample of a line chart.
type Point struct {
	X     float64 `json:"x"`
	Label string  `json:"label"`
	Y     Float   `json:"y"`
}

// Series is the input of a line chart.
type Series struct {
	Title  string  `json:"title"`
	XLabel string  `json:"x_label"`
	YLabel string  `json:"y_label"`
	Points []Point `json:"points"`
}

// Bin is one histogram bucket covering [Min, Max).
type Bin struct {
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Count int     `json:"count"`
}

// Histogram is the input of a histogram chart.
type Histogram struct {
	Title     string `json:"title"`
	Attribute string `json:"attribute"`
	NBins     int    `json:"nbins"`
	Total     int    `json:"total"`
	Bins      []Bin  `json:"bins"`
}

// CommercialOptions are the slider domains of the commercial section.
type CommercialOptions struct {
	MinYearBuilt int       `json:"min_year_built"`
	MaxYearBuilt int       `json:"max_year_built"`
	MinDate      time.Time `json:"min_date"`
	MaxDate      time.Time `json:"max_date"`
	MinPrice     int       `json:"min_price"`
	MaxPrice     int       `json:"max_price"`
	AvgPrice     int       `json:"avg_price"`
}

// CommercialThresholds are the thresholds actually applied.
type CommercialThresholds struct {
	YearBuilt int       `json:"year_built"`
	Date      time.Time `json:"date"`
	Price     float64   `json:"price"`
}

// CommercialReport is the data behind the "Commercial Attributes" section.
type CommercialReport struct {
	Options          CommercialOptions    `json:"options"`
	Thresholds       CommercialThresholds `json:"thresholds"`
	PriceByYearBuilt Series               `json:"price_by_year_built"`
	PriceByDate      Series               `json:"price_by_date"`
	PriceHistogram   Histogram            `json:"price_histogram"`
}

// AttributeOptions are the select-box domains of the attributes section.
type AttributeOptions struct {
	Bedrooms  []int     `json:"bedrooms"`
	Bathrooms []float64 `json:"bathrooms"`
	Floors    []float64 `json:"floors"`
}

// AttributeThresholds are the choices actually applied.
type AttributeThresholds struct {
	Bedrooms       int     `json:"bedrooms"`
	Bathrooms      float64 `json:"bathrooms"`
	Floors         float64 `json:"floors"`
	WaterfrontOnly bool    `json:"waterfront_only"`
}

// AttributeReport is the data behind the "House Attributes" section.
type AttributeReport struct {
	Options    AttributeOptions    `json:"options"`
	Thresholds AttributeThresholds `json:"thresholds"`
	Bedrooms   Histogram           `json:"bedrooms"`
	Bathrooms  Histogram           `json:"bathrooms"`
	Floors     Histogram           `json:"floors"`
	Waterfront Histogram           `json:"waterfront"`
}
