package main

import (
	"context"
	"flag"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"house-insights/config"
	"house-insights/server"
	"house-insights/services"
	"house-insights/snapshot"
	"house-insights/storage"
	"house-insights/utils"
)

func main() {
	logger := utils.NewLogger()
	cfg := config.Load()

	dataPath := flag.String("data", cfg.DataPath, "sales source: CSV path, s3://bucket/key, postgres://... or sqlite://path")
	addr := flag.String("addr", cfg.HTTPAddr, "HTTP listen address")
	report := flag.Bool("report", false, "print the overview report to the terminal and exit")
	snapshotDir := flag.String("snapshot", "", "save dashboard screenshots into this directory and exit")
	flag.Parse()

	cfg.DataPath = *dataPath
	cfg.HTTPAddr = *addr
	logger.SetDebug(cfg.LogDebug)

	logger.Info("=== House Sales Insights starting ===")
	logger.Info("Config: source %s | cache %d | addr %s", utils.RedactSource(cfg.DataPath), cfg.LoaderCacheSize, cfg.HTTPAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	loader, err := services.NewLoader(services.LoaderConfig{
		CacheSize:  cfg.LoaderCacheSize,
		SalesTable: cfg.SalesTable,
		S3: storage.S3Config{
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3Endpoint,
			PathStyle: cfg.S3PathStyle,
		},
	}, logger)
	if err != nil {
		logger.Error("Failed to create loader: %v", err)
		os.Exit(1)
	}

	// Fail fast on an unreadable source.
	raw, err := loader.Load(ctx, cfg.DataPath)
	if err != nil {
		logger.Error("Data load failed: %v", err)
		os.Exit(1)
	}
	ds, err := services.NewFeatureDeriver(logger).DeriveFeatures(raw)
	if err != nil {
		logger.Error("Feature derivation failed: %v", err)
		os.Exit(1)
	}

	if *report {
		overview, err := services.NewOverviewReporter(logger).Report(ds, services.OverviewRequest{})
		if err != nil {
			logger.Error("Overview failed: %v", err)
			os.Exit(1)
		}
		services.NewPrinter(os.Stdout).Print(ds.Source, ds.Len(), overview)
		return
	}

	if !cfg.LogDebug {
		gin.SetMode(gin.ReleaseMode)
	}
	srv, err := server.New(cfg, loader, logger)
	if err != nil {
		logger.Error("Failed to build server: %v", err)
		os.Exit(1)
	}

	if *snapshotDir != "" {
		if err := runSnapshot(ctx, cfg, srv, logger, *snapshotDir); err != nil {
			logger.Error("Snapshot failed: %v", err)
			os.Exit(1)
		}
		return
	}

	if err := srv.Run(ctx); err != nil {
		logger.Error("Server stopped: %v", err)
		os.Exit(1)
	}
}

// runSnapshot serves the dashboard on a loopback port just long enough to capture it.
func runSnapshot(ctx context.Context, cfg *config.Config, srv *server.Server, logger *utils.Logger, dir string) error {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}

	serveCtx, cancel := context.WithCancel(ctx)
	done := make(chan error, 1)
	go func() { done <- srv.Serve(serveCtx, ln) }()

	paths, captureErr := snapshot.New(cfg, logger).Capture(ctx, "http://"+ln.Addr().String()+"/", dir)
	cancel()
	if err := <-done; err != nil {
		logger.Warn("[snapshot] Server shutdown: %v", err)
	}

	for _, p := range paths {
		fmt.Printf("  %s\n", p)
	}
	return captureErr
}
