package services

import (
	"math"

	"house-insights/models"
)

// BuildHistogram counts values into nbins equal-width bins spanning
// [min, max]. Each bin is half-open except the last, which is closed. When
// every value is equal the range is widened to [v-0.5, v+0.5]. Non-finite
// values are skipped. Empty input yields a histogram with no bins.
func BuildHistogram(title, attribute string, values []float64, nbins int) models.Histogram {
	h := models.Histogram{Title: title, Attribute: attribute, NBins: nbins, Bins: []models.Bin{}}

	finite := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			finite = append(finite, v)
		}
	}
	if len(finite) == 0 || nbins < 1 {
		return h
	}

	lo, hi := finite[0], finite[0]
	for _, v := range finite[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if lo == hi {
		lo, hi = lo-0.5, hi+0.5
	}

	width := (hi - lo) / float64(nbins)
	h.Bins = make([]models.Bin, nbins)
	for i := range h.Bins {
		h.Bins[i].Min = lo + float64(i)*width
		h.Bins[i].Max = lo + float64(i+1)*width
	}
	h.Bins[nbins-1].Max = hi

	for _, v := range finite {
		idx := int((v - lo) / width)
		if idx >= nbins {
			idx = nbins - 1
		}
		if idx < 0 {
			idx = 0
		}
		h.Bins[idx].Count++
	}
	h.Total = len(finite)
	return h
}
