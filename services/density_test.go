package services

import (
	"encoding/json"
	"math"
	"strings"
	"testing"

	"house-insights/models"
)

var fallbackCenter = models.LatLng{Lat: 47.5480, Long: -121.9836}

func TestDensityCentroidAndMarkers(t *testing.T) {
	m, err := NewDensityReporter(fallbackCenter, 10, newTestLogger()).Report(derivedAB(t), nil)
	if err != nil {
		t.Fatalf("Report: %v", err)
	}
	if m.Fallback {
		t.Error("non-empty map should not use the fallback center")
	}
	if math.Abs(m.Center.Lat-47.3) > 1e-9 || math.Abs(m.Center.Long+122.3) > 1e-9 {
		t.Errorf("center: got %+v, want 47.3,-122.3", m.Center)
	}
	if len(m.Markers) != 4 {
		t.Fatalf("markers: got %d, want 4", len(m.Markers))
	}
	if m.Markers[2].Lat != 47.4 || m.Markers[2].Long != -122.4 {
		t.Errorf("marker 3 at %v,%v", m.Markers[2].Lat, m.Markers[2].Long)
	}
	if m.Zoom != 10 {
		t.Errorf("zoom: got %d, want 10", m.Zoom)
	}
}

func TestDensityEmptyUsesFallback(t *testing.T) {
	r := NewDensityReporter(fallbackCenter, 10, newTestLogger())

	for name, run := range map[string]func() (*models.DensityMap, error){
		"empty dataset":  func() (*models.DensityMap, error) { return r.Report(emptyDerived(), nil) },
		"no zip matches": func() (*models.DensityMap, error) { return r.Report(derivedAB(t), []string{"none"}) },
	} {
		m, err := run()
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if !m.Fallback || m.Center != fallbackCenter {
			t.Errorf("%s: center %+v fallback=%v", name, m.Center, m.Fallback)
		}
		if len(m.Markers) != 0 {
			t.Errorf("%s: expected no markers, got %d", name, len(m.Markers))
		}
	}
}

func TestMarkerLabel(t *testing.T) {
	s := derivedAB(t).Sales[1]
	got := MarkerLabel(s)
	want := "Sold $200,000 on: 2014-12-09. Features: 2000 sqft, 3 bedrooms, 1.5 bathrooms, year built: 1960"
	if got != want {
		t.Errorf("label:\n got %q\nwant %q", got, want)
	}
}

func TestGeoJSON(t *testing.T) {
	m, err := NewDensityReporter(fallbackCenter, 10, newTestLogger()).Report(derivedAB(t), []string{"A"})
	if err != nil {
		t.Fatalf("Report: %v", err)
	}
	fc := GeoJSON(m)
	if len(fc.Features) != 2 {
		t.Fatalf("features: got %d, want 2", len(fc.Features))
	}

	raw, err := json.Marshal(fc)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	body := string(raw)
	if !strings.Contains(body, `"FeatureCollection"`) || !strings.Contains(body, `[-122,47]`) {
		t.Errorf("unexpected geojson: %s", body)
	}
}
