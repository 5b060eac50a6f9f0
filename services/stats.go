package services

import (
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"house-insights/models"
)

// StatsColumns are the display labels of the descriptive-statistics table.
var StatsColumns = []string{"Attributes", "Max", "Min", "Mean", "Median", "Std"}

// Describe computes max, min, mean, median and population standard deviation
// of values. ok is false for an empty slice.
func Describe(attribute string, values []float64) (row models.StatRow, ok bool) {
	if len(values) == 0 {
		return models.StatRow{Attribute: attribute}, false
	}
	mean, std := stat.PopMeanStdDev(values, nil)
	return models.StatRow{
		Attribute: attribute,
		Max:       models.Float(floats.Max(values)),
		Min:       models.Float(floats.Min(values)),
		Mean:      models.Float(mean),
		Median:    models.Float(median(values)),
		Std:       models.Float(std),
	}, true
}

// median averages the two middle values for even counts.
func median(values []float64) float64 {
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return floats.Sum(values) / float64(len(values))
}

// StatsTable renders stat rows for display and export.
func StatsTable(rows []models.StatRow) models.Table {
	t := models.Table{Title: "Descriptive Analysis", Columns: StatsColumns, Rows: make([][]string, 0, len(rows))}
	for _, r := range rows {
		t.Rows = append(t.Rows, []string{
			r.Attribute,
			FormatStat(float64(r.Max)),
			FormatStat(float64(r.Min)),
			FormatStat(float64(r.Mean)),
			FormatStat(float64(r.Median)),
			FormatStat(float64(r.Std)),
		})
	}
	return t
}
