package services

import (
	"fmt"
	"sort"

	"house-insights/models"
	"house-insights/utils"
)

const (
	// AttributeHistogramBins is the resolution of the bedroom, bathroom and floor histograms.
	AttributeHistogramBins = 19
	// WaterfrontHistogramBins is the resolution of the waterfront histogram.
	WaterfrontHistogramBins = 10
)

// AttributeRequest holds the select-box choices. A nil threshold takes the
// first observed value.
type AttributeRequest struct {
	MaxBedrooms    *int
	MaxBathrooms   *float64
	MaxFloors      *float64
	WaterfrontOnly bool
}

// AttributeReporter builds the structural-attribute histograms. Each view
// filters the full dataset on its own.
type AttributeReporter struct {
	logger *utils.Logger
}

// NewAttributeReporter creates an AttributeReporter with the given logger.
func NewAttributeReporter(logger *utils.Logger) *AttributeReporter {
	return &AttributeReporter{logger: logger}
}

// Report validates each threshold against its domain and builds the four histograms.
func (r *AttributeReporter) Report(ds *models.Dataset, req AttributeRequest) (*models.AttributeReport, error) {
	if err := requireDerived(ds); err != nil {
		return nil, err
	}

	opts := models.AttributeOptions{
		Bedrooms:  distinctInts(ds.Sales, func(s *models.Sale) int { return s.Bedrooms }),
		Bathrooms: distinctFloats(ds.Sales, func(s *models.Sale) float64 { return s.Bathrooms }),
		Floors:    distinctFloats(ds.Sales, func(s *models.Sale) float64 { return s.Floors }),
	}

	th := models.AttributeThresholds{WaterfrontOnly: req.WaterfrontOnly}
	var err error
	if th.Bedrooms, err = pick("bedrooms", opts.Bedrooms, req.MaxBedrooms); err != nil {
		return nil, err
	}
	if th.Bathrooms, err = pick("bathrooms", opts.Bathrooms, req.MaxBathrooms); err != nil {
		return nil, err
	}
	if th.Floors, err = pick("floors", opts.Floors, req.MaxFloors); err != nil {
		return nil, err
	}

	report := &models.AttributeReport{
		Options:    opts,
		Thresholds: th,
		Bedrooms: attributeHistogram(ds.Sales, "Houses per Bedrooms", "bedrooms",
			func(s *models.Sale) float64 { return float64(s.Bedrooms) }, float64(th.Bedrooms)),
		Bathrooms: attributeHistogram(ds.Sales, "Houses per Bathrooms", "bathrooms",
			func(s *models.Sale) float64 { return s.Bathrooms }, th.Bathrooms),
		Floors: attributeHistogram(ds.Sales, "Houses per Floors", "floors",
			func(s *models.Sale) float64 { return s.Floors }, th.Floors),
		Waterfront: waterfrontHistogram(ds.Sales, th.WaterfrontOnly),
	}

	if r.logger != nil {
		r.logger.Debug("[attributes] bedrooms<%d: %d, bathrooms<%v: %d, floors<%v: %d, waterfront: %d",
			th.Bedrooms, report.Bedrooms.Total, th.Bathrooms, report.Bathrooms.Total,
			th.Floors, report.Floors.Total, report.Waterfront.Total)
	}
	return report, nil
}

func attributeHistogram(sales []*models.Sale, title, attribute string, value func(*models.Sale) float64, limit float64) models.Histogram {
	values := make([]float64, 0)
	for _, s := range sales {
		if v := value(s); v < limit {
			values = append(values, v)
		}
	}
	return BuildHistogram(title, attribute, values, AttributeHistogramBins)
}

func waterfrontHistogram(sales []*models.Sale, only bool) models.Histogram {
	values := make([]float64, 0, len(sales))
	for _, s := range sales {
		if only && !s.Waterfront {
			continue
		}
		values = append(values, s.WaterfrontValue())
	}
	return BuildHistogram("Houses per Waterfront", "waterfront", values, WaterfrontHistogramBins)
}

// pick returns the requested threshold, or the first domain value when none
// was requested. An empty domain yields the zero value.
func pick[T int | float64](name string, domain []T, requested *T) (T, error) {
	if requested == nil {
		var zero T
		if len(domain) == 0 {
			return zero, nil
		}
		return domain[0], nil
	}
	i := sort.Search(len(domain), func(i int) bool { return domain[i] >= *requested })
	if i == len(domain) || domain[i] != *requested {
		return *requested, fmt.Errorf("%w: %s=%v", ErrThresholdOutOfDomain, name, *requested)
	}
	return *requested, nil
}

func distinctInts(sales []*models.Sale, value func(*models.Sale) int) []int {
	seen := make(map[int]struct{})
	out := make([]int, 0)
	for _, s := range sales {
		v := value(s)
		if _, ok := seen[v]; !ok {
			seen[v] = struct{}{}
			out = append(out, v)
		}
	}
	sort.Ints(out)
	return out
}

func distinctFloats(sales []*models.Sale, value func(*models.Sale) float64) []float64 {
	seen := make(map[float64]struct{})
	out := make([]float64, 0)
	for _, s := range sales {
		v := value(s)
		if _, ok := seen[v]; !ok {
			seen[v] = struct{}{}
			out = append(out, v)
		}
	}
	sort.Float64s(out)
	return out
}
