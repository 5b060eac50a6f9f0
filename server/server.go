package server

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"house-insights/config"
	"house-insights/models"
	"house-insights/services"
	"house-insights/utils"
)

// Server exposes the reports of one data source over HTTP.
type Server struct {
	cfg    *config.Config
	logger *utils.Logger
	loader *services.Loader

	deriver    *services.FeatureDeriver
	overview   *services.OverviewReporter
	density    *services.DensityReporter
	commercial *services.CommercialReporter
	attributes *services.AttributeReporter
	charts     *services.ChartRenderer

	engine *gin.Engine
}

// New wires the reporters and builds the router.
func New(cfg *config.Config, loader *services.Loader, logger *utils.Logger) (*Server, error) {
	s := &Server{
		cfg:        cfg,
		logger:     logger,
		loader:     loader,
		deriver:    services.NewFeatureDeriver(logger),
		overview:   services.NewOverviewReporter(logger),
		density:    services.NewDensityReporter(models.LatLng{Lat: cfg.MapDefaultLat, Long: cfg.MapDefaultLong}, cfg.MapZoom, logger),
		commercial: services.NewCommercialReporter(logger),
		attributes: services.NewAttributeReporter(logger),
		charts:     services.NewChartRenderer(),
	}

	tmpl, err := template.New("").Funcs(templateFuncs).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	r := gin.New()
	r.Use(gin.Recovery(), requestID(), accessLog(logger), metrics())
	r.SetHTMLTemplate(tmpl)

	r.GET("/", s.handleDashboard)
	r.GET("/healthz", s.handleHealth)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	api.GET("/overview", s.handleOverview)
	api.GET("/map", s.handleMap)
	api.GET("/map.geojson", s.handleGeoJSON)
	api.GET("/commercial", s.handleCommercial)
	api.GET("/attributes", s.handleAttributes)

	r.GET("/charts/:name", s.handleChart)

	s.engine = r
	return s, nil
}

// Handler returns the router.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run listens on the configured address until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.HTTPAddr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.cfg.HTTPAddr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve handles requests on ln until ctx is cancelled, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("[server] Listening on http://%s", ln.Addr())
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s.logger.Info("[server] Shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// dataset loads the cached raw data and derives the features for this request.
func (s *Server) dataset(ctx context.Context) (*models.Dataset, error) {
	raw, err := s.loader.Load(ctx, s.cfg.DataPath)
	if err != nil {
		return nil, err
	}
	return s.deriver.DeriveFeatures(raw)
}
