package services

import (
	"math"
	"testing"
)

func TestBuildHistogram(t *testing.T) {
	h := BuildHistogram("t", "x", []float64{0, 1, 2, 3, 4, 10}, 5)
	if len(h.Bins) != 5 || h.Total != 6 {
		t.Fatalf("bins %d total %d", len(h.Bins), h.Total)
	}
	want := []int{2, 2, 1, 0, 1}
	for i, w := range want {
		if h.Bins[i].Count != w {
			t.Errorf("bin %d [%v,%v): got %d, want %d", i, h.Bins[i].Min, h.Bins[i].Max, h.Bins[i].Count, w)
		}
	}
	if h.Bins[0].Min != 0 || h.Bins[4].Max != 10 {
		t.Errorf("range: [%v, %v]", h.Bins[0].Min, h.Bins[4].Max)
	}
}

func TestBuildHistogramEdgeCases(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		bins   int
		total  int
	}{
		{"empty", nil, 10, 0},
		{"single value", []float64{3}, 19, 1},
		{"all equal", []float64{1, 1, 1}, 10, 3},
		{"non-finite skipped", []float64{1, math.Inf(1), math.NaN(), 2}, 4, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := BuildHistogram("t", "x", tt.values, tt.bins)
			if h.Total != tt.total {
				t.Errorf("total: got %d, want %d", h.Total, tt.total)
			}
			sum := 0
			for _, b := range h.Bins {
				sum += b.Count
			}
			if sum != tt.total {
				t.Errorf("bin counts sum to %d, want %d", sum, tt.total)
			}
			if tt.total == 0 && len(h.Bins) != 0 {
				t.Errorf("expected no bins, got %d", len(h.Bins))
			}
		})
	}
}

func TestBuildHistogramWaterfrontBinning(t *testing.T) {
	h := BuildHistogram("t", "waterfront", []float64{0, 0, 0, 1}, WaterfrontHistogramBins)
	if h.Bins[0].Count != 3 || h.Bins[WaterfrontHistogramBins-1].Count != 1 {
		t.Errorf("waterfront bins: first %d last %d", h.Bins[0].Count, h.Bins[WaterfrontHistogramBins-1].Count)
	}
}
