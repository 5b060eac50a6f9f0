package services

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"house-insights/models"
	"house-insights/utils"
)

// DensityReporter places one marker per sale around the data centroid.
type DensityReporter struct {
	logger   *utils.Logger
	fallback models.LatLng
	zoom     int
}

// NewDensityReporter creates a DensityReporter. fallback is the center used
// when no sale is selected.
func NewDensityReporter(fallback models.LatLng, zoom int, logger *utils.Logger) *DensityReporter {
	return &DensityReporter{logger: logger, fallback: fallback, zoom: zoom}
}

// Report builds the map for the sales in zipcodes, or every sale when zipcodes is empty.
func (r *DensityReporter) Report(ds *models.Dataset, zipcodes []string) (*models.DensityMap, error) {
	if err := requireDerived(ds); err != nil {
		return nil, err
	}

	rows := ds.Sales
	if len(zipcodes) > 0 {
		rows = filterByZipcode(rows, zipcodes)
	}

	m := &models.DensityMap{Zoom: r.zoom, Markers: make([]models.Marker, 0, len(rows))}
	if len(rows) == 0 {
		m.Center = r.fallback
		m.Fallback = true
		return m, nil
	}

	var sumLat, sumLong float64
	for _, s := range rows {
		sumLat += s.Lat
		sumLong += s.Long
		m.Markers = append(m.Markers, models.Marker{
			ID:    s.ID,
			Lat:   s.Lat,
			Long:  s.Long,
			Label: MarkerLabel(s),
		})
	}
	n := float64(len(rows))
	m.Center = models.LatLng{Lat: sumLat / n, Long: sumLong / n}

	if r.logger != nil {
		r.logger.Debug("[density] %d markers centered on %.4f,%.4f", len(m.Markers), m.Center.Lat, m.Center.Long)
	}
	return m, nil
}

// MarkerLabel is the popup text of one sale.
func MarkerLabel(s *models.Sale) string {
	return fmt.Sprintf("Sold $%s on: %s. Features: %s sqft, %d bedrooms, %s bathrooms, year built: %d",
		humanize.Commaf(s.Price), saleDateText(s), FormatNumber(s.SqftLiving),
		s.Bedrooms, FormatNumber(s.Bathrooms), s.YrBuilt)
}

// GeoJSON converts the markers into a FeatureCollection of points.
func GeoJSON(m *models.DensityMap) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, mk := range m.Markers {
		f := geojson.NewFeature(orb.Point{mk.Long, mk.Lat})
		f.ID = mk.ID
		f.Properties["label"] = mk.Label
		fc.Append(f)
	}
	return fc
}
