package services

import (
	"sort"

	"house-insights/models"
	"house-insights/utils"
)

// SummaryColumns are the display labels of the per-zipcode summary.
var SummaryColumns = []string{"Zipcode", "Total Houses", "Price", "Sqft Living", "Price/M2"}

// OverviewRequest is the state of the overview widgets. Empty slices mean "all".
type OverviewRequest struct {
	Columns  []string
	Zipcodes []string
}

// OverviewReporter builds the data table, zipcode summary and descriptive statistics.
type OverviewReporter struct {
	logger *utils.Logger
}

// NewOverviewReporter creates an OverviewReporter with the given logger.
func NewOverviewReporter(logger *utils.Logger) *OverviewReporter {
	return &OverviewReporter{logger: logger}
}

// Report applies the zipcode row filter and the column projection. The
// summary is computed from the selected rows whatever the projection is;
// statistics cover the numeric columns of the projection in projection order.
func (r *OverviewReporter) Report(ds *models.Dataset, req OverviewRequest) (*models.OverviewReport, error) {
	if err := requireDerived(ds); err != nil {
		return nil, err
	}

	registry := NewColumnRegistry(ds)
	cols, err := registry.Project(req.Columns)
	if err != nil {
		return nil, err
	}

	var rows []*models.Sale
	switch {
	case len(req.Zipcodes) > 0 && len(req.Columns) > 0:
		rows = filterByZipcode(ds.Sales, req.Zipcodes)
	case len(req.Zipcodes) > 0:
		rows = filterByZipcode(ds.Sales, req.Zipcodes)
		cols, _ = registry.Project(nil)
	case len(req.Columns) > 0:
		rows = ds.Sales
	default:
		rows = ds.Sales
		cols, _ = registry.Project(nil)
	}

	report := &models.OverviewReport{
		Data:           dataTable(rows, cols),
		Summary:        summarize(rows),
		Stats:          describeColumns(rows, cols),
		ColumnOptions:  registry.Names(),
		ZipcodeOptions: distinctZipcodes(ds.Sales),
	}

	if r.logger != nil {
		r.logger.Debug("[overview] %d rows, %d columns, %d zipcodes", len(rows), len(cols), len(report.Summary))
	}
	return report, nil
}

func filterByZipcode(sales []*models.Sale, zipcodes []string) []*models.Sale {
	want := make(map[string]struct{}, len(zipcodes))
	for _, z := range zipcodes {
		want[z] = struct{}{}
	}
	out := make([]*models.Sale, 0)
	for _, s := range sales {
		if _, ok := want[s.Zipcode]; ok {
			out = append(out, s)
		}
	}
	return out
}

func dataTable(rows []*models.Sale, cols []Column) models.Table {
	t := models.Table{Title: "Data", Columns: make([]string, len(cols)), Rows: make([][]string, 0, len(rows))}
	for i, c := range cols {
		t.Columns[i] = c.Name
	}
	for _, s := range rows {
		cells := make([]string, len(cols))
		for i, c := range cols {
			cells[i] = c.Text(s)
		}
		t.Rows = append(t.Rows, cells)
	}
	return t
}

func summarize(rows []*models.Sale) []models.SummaryRow {
	type acc struct {
		n                        int
		price, living, pricePerA float64
	}
	groups := make(map[string]*acc)
	for _, s := range rows {
		a, ok := groups[s.Zipcode]
		if !ok {
			a = &acc{}
			groups[s.Zipcode] = a
		}
		a.n++
		a.price += s.Price
		a.living += s.SqftLiving
		a.pricePerA += s.PricePerArea
	}

	zips := make([]string, 0, len(groups))
	for z := range groups {
		zips = append(zips, z)
	}
	sort.Strings(zips)

	out := make([]models.SummaryRow, 0, len(zips))
	for _, z := range zips {
		a := groups[z]
		n := float64(a.n)
		out = append(out, models.SummaryRow{
			Zipcode:      z,
			TotalHouses:  a.n,
			Price:        models.Float(a.price / n),
			SqftLiving:   models.Float(a.living / n),
			PricePerArea: models.Float(a.pricePerA / n),
		})
	}
	return out
}

func describeColumns(rows []*models.Sale, cols []Column) []models.StatRow {
	out := make([]models.StatRow, 0)
	if len(rows) == 0 {
		return out
	}
	for _, c := range cols {
		if c.Kind != KindNumeric {
			continue
		}
		values := make([]float64, len(rows))
		for i, s := range rows {
			values[i] = c.Value(s)
		}
		if row, ok := Describe(c.Name, values); ok {
			out = append(out, row)
		}
	}
	return out
}

func distinctZipcodes(sales []*models.Sale) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, s := range sales {
		if _, ok := seen[s.Zipcode]; !ok {
			seen[s.Zipcode] = struct{}{}
			out = append(out, s.Zipcode)
		}
	}
	sort.Strings(out)
	return out
}

// SummaryTable renders summary rows for display and export.
func SummaryTable(rows []models.SummaryRow) models.Table {
	t := models.Table{Title: "Summary", Columns: SummaryColumns, Rows: make([][]string, 0, len(rows))}
	for _, r := range rows {
		t.Rows = append(t.Rows, []string{
			r.Zipcode,
			FormatNumber(float64(r.TotalHouses)),
			FormatStat(float64(r.Price)),
			FormatStat(float64(r.SqftLiving)),
			FormatStat(float64(r.PricePerArea)),
		})
	}
	return t
}
