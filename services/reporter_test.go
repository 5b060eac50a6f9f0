package services

import (
	"bytes"
	"strings"
	"testing"
)

func TestPrinterPrint(t *testing.T) {
	ds := derivedAB(t)
	r, err := NewOverviewReporter(newTestLogger()).Report(ds, OverviewRequest{Columns: []string{"price"}})
	if err != nil {
		t.Fatalf("Report: %v", err)
	}

	var buf bytes.Buffer
	NewPrinter(&buf).Print(ds.Source, ds.Len(), r)
	out := buf.String()

	for _, want := range []string{"HOUSE SALES INSIGHTS", "$150,000", "$350,000", "Descriptive Analysis", "250,000"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestPrinterEmptyReport(t *testing.T) {
	r, err := NewOverviewReporter(newTestLogger()).Report(emptyDerived(), OverviewRequest{})
	if err != nil {
		t.Fatalf("Report: %v", err)
	}

	var buf bytes.Buffer
	NewPrinter(&buf).Print("empty", 0, r)
	if !strings.Contains(buf.String(), "No sales selected") {
		t.Error("empty report should say no sales were selected")
	}
}
