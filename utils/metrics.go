package utils

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	LoaderCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "house_insights_loader_cache_hits_total",
		Help: "Dataset loads served from the loader cache.",
	})
	LoaderCacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "house_insights_loader_cache_misses_total",
		Help: "Dataset loads that read the source.",
	})
	LoadedSales = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "house_insights_loaded_sales",
		Help: "Number of sales in each cached source.",
	}, []string{"source"})

	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "house_insights_http_requests_total",
		Help: "HTTP requests by route and status code.",
	}, []string{"route", "code"})
	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "house_insights_http_request_duration_seconds",
		Help:    "HTTP request latency by route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"route"})
)
