package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"house-insights/models"
	"house-insights/services"
	"house-insights/storage"
)

const (
	csvContentType  = "text/csv; charset=utf-8"
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	pngContentType  = "image/png"
	geoContentType  = "application/geo+json"
)

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleOverview(c *gin.Context) {
	ds, err := s.dataset(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}
	report, err := s.overview.Report(ds, overviewRequest(c))
	if err != nil {
		abortWithError(c, err)
		return
	}

	tables := map[string]models.Table{
		"data":    report.Data,
		"summary": services.SummaryTable(report.Summary),
		"stats":   services.StatsTable(report.Stats),
	}

	switch format := strings.ToLower(c.DefaultQuery("format", "json")); format {
	case "json":
		c.JSON(http.StatusOK, report)
	case "csv":
		name := strings.ToLower(c.DefaultQuery("table", "data"))
		table, ok := tables[name]
		if !ok {
			abortWithError(c, &paramError{name: "table", value: name, err: fmt.Errorf("want data, summary or stats")})
			return
		}
		s.writeTables(c, storage.NewCSVWriter(), csvContentType, "overview-"+name+".csv", table)
	case "xlsx":
		s.writeTables(c, storage.NewXLSXWriter(), xlsxContentType, "overview.xlsx",
			tables["data"], tables["summary"], tables["stats"])
	default:
		abortWithError(c, &paramError{name: "format", value: format, err: fmt.Errorf("want json, csv or xlsx")})
	}
}

func (s *Server) writeTables(c *gin.Context, w storage.TableWriter, contentType, filename string, tables ...models.Table) {
	var buf bytes.Buffer
	if err := w.WriteTables(&buf, tables...); err != nil {
		abortWithError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, contentType, buf.Bytes())
}

func (s *Server) densityMap(c *gin.Context) (*models.DensityMap, error) {
	ds, err := s.dataset(c.Request.Context())
	if err != nil {
		return nil, err
	}
	return s.density.Report(ds, listParam(c, "zipcodes"))
}

func (s *Server) handleMap(c *gin.Context) {
	m, err := s.densityMap(c)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, m)
}

func (s *Server) handleGeoJSON(c *gin.Context) {
	m, err := s.densityMap(c)
	if err != nil {
		abortWithError(c, err)
		return
	}
	body, err := json.Marshal(services.GeoJSON(m))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.Data(http.StatusOK, geoContentType, body)
}

func (s *Server) commercialReport(c *gin.Context) (*models.CommercialReport, error) {
	req, err := commercialRequest(c)
	if err != nil {
		return nil, err
	}
	ds, err := s.dataset(c.Request.Context())
	if err != nil {
		return nil, err
	}
	return s.commercial.Report(ds, req)
}

func (s *Server) handleCommercial(c *gin.Context) {
	r, err := s.commercialReport(c)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

func (s *Server) attributeReport(c *gin.Context) (*models.AttributeReport, error) {
	req, err := attributeRequest(c)
	if err != nil {
		return nil, err
	}
	ds, err := s.dataset(c.Request.Context())
	if err != nil {
		return nil, err
	}
	return s.attributes.Report(ds, req)
}

func (s *Server) handleAttributes(c *gin.Context) {
	r, err := s.attributeReport(c)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

func (s *Server) handleChart(c *gin.Context) {
	name := strings.TrimSuffix(c.Param("name"), ".png")
	var buf bytes.Buffer
	var err error

	switch name {
	case "price-by-year", "price-by-date", "price-histogram":
		var r *models.CommercialReport
		if r, err = s.commercialReport(c); err != nil {
			break
		}
		switch name {
		case "price-by-year":
			err = s.charts.RenderSeries(&buf, r.PriceByYearBuilt, false)
		case "price-by-date":
			err = s.charts.RenderSeries(&buf, r.PriceByDate, true)
		default:
			err = s.charts.RenderHistogram(&buf, r.PriceHistogram)
		}
	case "bedrooms", "bathrooms", "floors", "waterfront":
		var r *models.AttributeReport
		if r, err = s.attributeReport(c); err != nil {
			break
		}
		h := map[string]models.Histogram{
			"bedrooms":   r.Bedrooms,
			"bathrooms":  r.Bathrooms,
			"floors":     r.Floors,
			"waterfront": r.Waterfront,
		}[name]
		err = s.charts.RenderHistogram(&buf, h)
	default:
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("unknown chart %q", name)})
		return
	}

	if err != nil {
		abortWithError(c, err)
		return
	}
	c.Data(http.StatusOK, pngContentType, buf.Bytes())
}
