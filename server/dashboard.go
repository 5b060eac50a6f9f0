package server

import (
	"embed"
	"html/template"
	"net/http"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gin-gonic/gin"

	"house-insights/models"
	"house-insights/services"
	"house-insights/utils"
)

//go:embed templates/*.html
var templateFS embed.FS

var templateFuncs = template.FuncMap{
	"comma":  func(n int) string { return humanize.Comma(int64(n)) },
	"commaf": func(f float64) string { return humanize.Commaf(f) },
	"ago":    humanize.Time,
	"date":   func(t time.Time) string { return t.Format(services.NormalizedDateLayout) },
	"contains": func(list []string, s string) bool {
		for _, v := range list {
			if v == s {
				return true
			}
		}
		return false
	},
}

var chartNames = []string{
	"price-by-year", "price-by-date", "price-histogram",
	"bedrooms", "bathrooms", "floors", "waterfront",
}

type dashboardView struct {
	Source   string
	Sales    int
	LoadedAt time.Time
	Error    string
	Charts   map[string]template.URL
	GeoJSON  template.URL

	Request   services.OverviewRequest
	Overview  *models.OverviewReport
	Preview   models.Table
	Truncated bool
	Summary   models.Table
	Stats     models.Table

	Map        *models.DensityMap
	Commercial *models.CommercialReport
	Attributes *models.AttributeReport
}

func (s *Server) handleDashboard(c *gin.Context) {
	view := dashboardView{Source: utils.RedactSource(s.cfg.DataPath), Charts: make(map[string]template.URL)}
	suffix := ""
	if q := c.Request.URL.RawQuery; q != "" {
		suffix = "?" + q
	}
	for _, name := range chartNames {
		view.Charts[name] = template.URL("/charts/" + name + ".png" + suffix)
	}
	view.GeoJSON = template.URL("/api/map.geojson" + suffix)

	if err := s.buildDashboard(c, &view); err != nil {
		s.logger.Warn("[server] dashboard: %v", err)
		view.Error = err.Error()
		c.HTML(statusFor(err), "dashboard.html", view)
		return
	}
	c.HTML(http.StatusOK, "dashboard.html", view)
}

func (s *Server) buildDashboard(c *gin.Context, view *dashboardView) error {
	commercialReq, err := commercialRequest(c)
	if err != nil {
		return err
	}
	attributeReq, err := attributeRequest(c)
	if err != nil {
		return err
	}

	ds, err := s.dataset(c.Request.Context())
	if err != nil {
		return err
	}
	view.Sales = ds.Len()
	view.LoadedAt = ds.LoadedAt

	view.Request = overviewRequest(c)
	if view.Overview, err = s.overview.Report(ds, view.Request); err != nil {
		return err
	}
	view.Preview = view.Overview.Data
	if limit := s.cfg.OverviewPreviewRows; limit > 0 && len(view.Preview.Rows) > limit {
		view.Preview.Rows = view.Preview.Rows[:limit]
		view.Truncated = true
	}
	view.Summary = services.SummaryTable(view.Overview.Summary)
	view.Stats = services.StatsTable(view.Overview.Stats)

	if view.Map, err = s.density.Report(ds, view.Request.Zipcodes); err != nil {
		return err
	}
	if view.Commercial, err = s.commercial.Report(ds, commercialReq); err != nil {
		return err
	}
	if view.Attributes, err = s.attributes.Report(ds, attributeReq); err != nil {
		return err
	}
	return nil
}
