package services

import (
	"sort"
	"strconv"
	"time"

	"house-insights/models"
	"house-insights/utils"
)

// PriceHistogramBins is the resolution of the price histogram.
const PriceHistogramBins = 50

// CommercialRequest holds the three slider positions. A nil field takes the
// default: the minimum build year, the earliest sale date and the truncated
// mean price.
type CommercialRequest struct {
	MaxYearBuilt *int
	MaxDate      *time.Time
	MaxPrice     *float64
}

// CommercialReporter builds the price trend charts.
type CommercialReporter struct {
	logger *utils.Logger
}

// NewCommercialReporter creates a CommercialReporter with the given logger.
func NewCommercialReporter(logger *utils.Logger) *CommercialReporter {
	return &CommercialReporter{logger: logger}
}

// Report filters each view independently with a strict upper bound.
func (r *CommercialReporter) Report(ds *models.Dataset, req CommercialRequest) (*models.CommercialReport, error) {
	if err := requireDerived(ds); err != nil {
		return nil, err
	}

	opts := commercialOptions(ds.Sales)
	th := models.CommercialThresholds{
		YearBuilt: opts.MinYearBuilt,
		Date:      opts.MinDate,
		Price:     float64(opts.AvgPrice),
	}
	if req.MaxYearBuilt != nil {
		th.YearBuilt = *req.MaxYearBuilt
	}
	if req.MaxDate != nil {
		th.Date = *req.MaxDate
	}
	if req.MaxPrice != nil {
		th.Price = *req.MaxPrice
	}

	report := &models.CommercialReport{
		Options:          opts,
		Thresholds:       th,
		PriceByYearBuilt: priceByYearBuilt(ds.Sales, th.YearBuilt),
		PriceByDate:      priceByDate(ds.Sales, th.Date),
		PriceHistogram:   priceHistogram(ds.Sales, th.Price),
	}

	if r.logger != nil {
		r.logger.Debug("[commercial] year<%d: %d points, date<%s: %d points, price<%.0f: %d sales",
			th.YearBuilt, len(report.PriceByYearBuilt.Points),
			th.Date.Format(NormalizedDateLayout), len(report.PriceByDate.Points),
			th.Price, report.PriceHistogram.Total)
	}
	return report, nil
}

func commercialOptions(sales []*models.Sale) models.CommercialOptions {
	var opts models.CommercialOptions
	if len(sales) == 0 {
		return opts
	}

	first := sales[0]
	opts.MinYearBuilt, opts.MaxYearBuilt = first.YrBuilt, first.YrBuilt
	opts.MinDate, opts.MaxDate = first.SaleDate, first.SaleDate
	minPrice, maxPrice := first.Price, first.Price
	prices := make([]float64, len(sales))

	for i, s := range sales {
		if s.YrBuilt < opts.MinYearBuilt {
			opts.MinYearBuilt = s.YrBuilt
		}
		if s.YrBuilt > opts.MaxYearBuilt {
			opts.MaxYearBuilt = s.YrBuilt
		}
		if s.SaleDate.Before(opts.MinDate) {
			opts.MinDate = s.SaleDate
		}
		if s.SaleDate.After(opts.MaxDate) {
			opts.MaxDate = s.SaleDate
		}
		if s.Price < minPrice {
			minPrice = s.Price
		}
		if s.Price > maxPrice {
			maxPrice = s.Price
		}
		prices[i] = s.Price
	}

	opts.MinPrice = int(minPrice)
	opts.MaxPrice = int(maxPrice)
	opts.AvgPrice = int(mean(prices))
	return opts
}

func priceByYearBuilt(sales []*models.Sale, maxYear int) models.Series {
	type acc struct{ sum, n float64 }
	groups := make(map[int]*acc)
	for _, s := range sales {
		if s.YrBuilt >= maxYear {
			continue
		}
		a, ok := groups[s.YrBuilt]
		if !ok {
			a = &acc{}
			groups[s.YrBuilt] = a
		}
		a.sum += s.Price
		a.n++
	}

	years := make([]int, 0, len(groups))
	for y := range groups {
		years = append(years, y)
	}
	sort.Ints(years)

	series := models.Series{Title: "Average Price per Year Built", XLabel: "yr_built", YLabel: "price", Points: make([]models.Point, 0, len(years))}
	for _, y := range years {
		a := groups[y]
		series.Points = append(series.Points, models.Point{X: float64(y), Label: strconv.Itoa(y), Y: models.Float(a.sum / a.n)})
	}
	return series
}

func priceByDate(sales []*models.Sale, maxDate time.Time) models.Series {
	type acc struct {
		day    time.Time
		sum, n float64
	}
	groups := make(map[string]*acc)
	for _, s := range sales {
		if !s.SaleDate.Before(maxDate) {
			continue
		}
		a, ok := groups[s.NormalizedDate]
		if !ok {
			a = &acc{day: s.SaleDate}
			groups[s.NormalizedDate] = a
		}
		a.sum += s.Price
		a.n++
	}

	days := make([]string, 0, len(groups))
	for d := range groups {
		days = append(days, d)
	}
	sort.Strings(days)

	series := models.Series{Title: "Average Price per Day", XLabel: "date", YLabel: "price", Points: make([]models.Point, 0, len(days))}
	for _, d := range days {
		a := groups[d]
		series.Points = append(series.Points, models.Point{X: float64(a.day.Unix()), Label: d, Y: models.Float(a.sum / a.n)})
	}
	return series
}

func priceHistogram(sales []*models.Sale, maxPrice float64) models.Histogram {
	values := make([]float64, 0)
	for _, s := range sales {
		if s.Price < maxPrice {
			values = append(values, s.Price)
		}
	}
	return BuildHistogram("Price Distribution", "price", values, PriceHistogramBins)
}
