package services

import (
	"testing"
	"time"

	"house-insights/models"
)

func TestCommercialDefaults(t *testing.T) {
	r, err := NewCommercialReporter(newTestLogger()).Report(derivedAB(t), CommercialRequest{})
	if err != nil {
		t.Fatalf("Report: %v", err)
	}

	o := r.Options
	if o.MinYearBuilt != 1950 || o.MaxYearBuilt != 2000 {
		t.Errorf("year domain: %d..%d", o.MinYearBuilt, o.MaxYearBuilt)
	}
	if o.MinPrice != 100000 || o.MaxPrice != 400000 || o.AvgPrice != 250000 {
		t.Errorf("price domain: %d..%d avg %d", o.MinPrice, o.MaxPrice, o.AvgPrice)
	}
	if got := o.MinDate.Format(NormalizedDateLayout); got != "2014-10-13" {
		t.Errorf("min date: %s", got)
	}

	// defaults sit on the minimum, so strict < drops everything
	if n := len(r.PriceByYearBuilt.Points); n != 0 {
		t.Errorf("year series at default: %d points", n)
	}
	if n := len(r.PriceByDate.Points); n != 0 {
		t.Errorf("date series at default: %d points", n)
	}
	// price defaults to the mean: 100k and 200k remain
	if r.PriceHistogram.Total != 2 || r.PriceHistogram.NBins != PriceHistogramBins {
		t.Errorf("price histogram: total %d nbins %d", r.PriceHistogram.Total, r.PriceHistogram.NBins)
	}
}

func TestCommercialThresholdBoundaries(t *testing.T) {
	ds := derivedAB(t)
	rep := NewCommercialReporter(newTestLogger())

	minYear, maxYear := 1950, 2001
	minPrice, maxPrice := 100000.0, 400001.0
	minDate := time.Date(2014, 10, 13, 0, 0, 0, 0, time.UTC)
	maxDate := time.Date(2015, 2, 26, 0, 0, 0, 0, time.UTC)

	atMin, err := rep.Report(ds, CommercialRequest{MaxYearBuilt: &minYear, MaxDate: &minDate, MaxPrice: &minPrice})
	if err != nil {
		t.Fatalf("Report: %v", err)
	}
	if len(atMin.PriceByYearBuilt.Points) != 0 || len(atMin.PriceByDate.Points) != 0 || atMin.PriceHistogram.Total != 0 {
		t.Errorf("threshold at minimum should select nothing: %+v", atMin)
	}
	if len(atMin.PriceHistogram.Bins) != 0 {
		t.Errorf("empty histogram should have no bins, got %d", len(atMin.PriceHistogram.Bins))
	}

	aboveMax, err := rep.Report(ds, CommercialRequest{MaxYearBuilt: &maxYear, MaxDate: &maxDate, MaxPrice: &maxPrice})
	if err != nil {
		t.Fatalf("Report: %v", err)
	}
	if aboveMax.PriceHistogram.Total != 4 {
		t.Errorf("price histogram total: got %d, want 4", aboveMax.PriceHistogram.Total)
	}

	wantYears := []models.Point{
		{X: 1950, Label: "1950", Y: 100000},
		{X: 1960, Label: "1960", Y: 250000},
		{X: 2000, Label: "2000", Y: 400000},
	}
	if len(aboveMax.PriceByYearBuilt.Points) != len(wantYears) {
		t.Fatalf("year points: got %d, want %d", len(aboveMax.PriceByYearBuilt.Points), len(wantYears))
	}
	for i, w := range wantYears {
		if got := aboveMax.PriceByYearBuilt.Points[i]; got != w {
			t.Errorf("year point %d: got %+v, want %+v", i, got, w)
		}
	}

	dates := aboveMax.PriceByDate.Points
	if len(dates) != 3 {
		t.Fatalf("date points: got %d, want 3", len(dates))
	}
	if dates[2].Label != "2015-02-25" || dates[2].Y != 350000 {
		t.Errorf("last date point: %+v", dates[2])
	}
	if dates[0].X >= dates[1].X || dates[1].X >= dates[2].X {
		t.Error("date points should be ascending")
	}
}

func TestCommercialEmptyDataset(t *testing.T) {
	r, err := NewCommercialReporter(newTestLogger()).Report(emptyDerived(), CommercialRequest{})
	if err != nil {
		t.Fatalf("Report: %v", err)
	}
	if len(r.PriceByYearBuilt.Points) != 0 || len(r.PriceByDate.Points) != 0 || len(r.PriceHistogram.Bins) != 0 {
		t.Error("empty dataset should give empty views")
	}
}
