package services

import (
	"context"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"

	"house-insights/models"
	"house-insights/storage"
	"house-insights/utils"
)

// LoaderConfig selects how sources are opened.
type LoaderConfig struct {
	CacheSize  int
	SalesTable string
	S3         storage.S3Config
}

// Loader reads datasets and memoizes them by source string for the process
// lifetime. Concurrent first loads of one source share a single read.
type Loader struct {
	cfg    LoaderConfig
	logger *utils.Logger
	cache  *lru.Cache[string, *models.Dataset]
	group  singleflight.Group

	// openFn is swapped in tests.
	openFn func(source string) (storage.SaleReader, error)
}

// NewLoader creates a Loader with a bounded cache.
func NewLoader(cfg LoaderConfig, logger *utils.Logger) (*Loader, error) {
	if cfg.CacheSize < 1 {
		cfg.CacheSize = 1
	}
	cache, err := lru.New[string, *models.Dataset](cfg.CacheSize)
	if err != nil {
		return nil, err
	}
	l := &Loader{cfg: cfg, logger: logger, cache: cache}
	l.openFn = l.open
	return l, nil
}

// Load returns the raw dataset for source. Failures are *DataLoadError and
// are not cached, so a fixed source is picked up on the next call. Credentials
// in source never reach errors, logs or metric labels.
func (l *Loader) Load(ctx context.Context, source string) (*models.Dataset, error) {
	if ds, ok := l.cache.Get(source); ok {
		utils.LoaderCacheHits.Inc()
		return ds, nil
	}

	v, err, _ := l.group.Do(source, func() (any, error) {
		if ds, ok := l.cache.Get(source); ok {
			utils.LoaderCacheHits.Inc()
			return ds, nil
		}
		utils.LoaderCacheMisses.Inc()
		shown := utils.RedactSource(source)

		reader, err := l.openFn(source)
		if err != nil {
			return nil, &DataLoadError{Source: shown, Err: err}
		}
		// The read is shared by every waiter, so one caller cancelling must
		// not fail the others.
		ds, err := reader.ReadSales(context.WithoutCancel(ctx))
		if err != nil {
			return nil, &DataLoadError{Source: shown, Err: err}
		}

		l.cache.Add(source, ds)
		utils.LoadedSales.WithLabelValues(shown).Set(float64(ds.Len()))
		l.logger.Info("[loader] Loaded %d sales from %s", ds.Len(), shown)
		return ds, nil
	})
	if err != nil {
		l.logger.Error("[loader] %v", err)
		return nil, err
	}
	return v.(*models.Dataset), nil
}

func (l *Loader) open(source string) (storage.SaleReader, error) {
	switch {
	case strings.HasPrefix(source, "s3://"):
		return storage.NewS3Reader(source, l.cfg.S3)
	case strings.HasPrefix(source, "postgres://"),
		strings.HasPrefix(source, "postgresql://"),
		strings.HasPrefix(source, "sqlite://"):
		return storage.NewSQLReader(source, l.cfg.SalesTable)
	default:
		return storage.NewCSVReader(source), nil
	}
}
