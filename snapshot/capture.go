package snapshot

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/chromedp/chromedp"

	"house-insights/config"
	"house-insights/utils"
)

// Sections are the element ids of the dashboard sections captured one by one.
var Sections = []string{"overview", "map", "commercial", "attributes"}

// Capturer saves PNG screenshots of a running dashboard.
type Capturer struct {
	cfg    *config.Config
	logger *utils.Logger
	pool   *utils.WorkerPool
	retry  *utils.RetryConfig

	// settle is how long a page gets to load tiles and chart images.
	settle time.Duration
}

// New creates a Capturer. Section captures share a bounded worker pool.
func New(cfg *config.Config, logger *utils.Logger) *Capturer {
	return &Capturer{
		cfg:    cfg,
		logger: logger,
		pool:   utils.NewWorkerPool(cfg.SnapshotConcurrency, cfg.SnapshotRateLimitMs),
		retry: &utils.RetryConfig{
			MaxAttempts: cfg.MaxRetries,
			BaseDelay:   2 * time.Second,
			Logger:      logger,
		},
		settle: 3 * time.Second,
	}
}

// Capture writes dashboard.png plus one <section>.png per section into outDir
// and returns the written paths.
func (c *Capturer) Capture(ctx context.Context, pageURL, outDir string) ([]string, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("snapshot: create %s: %w", outDir, err)
	}

	chromeBin := findChromeBinary(c.cfg.ChromeBin)
	c.logger.Info("[snapshot] Using browser binary: %s", displayBin(chromeBin))

	browserCtx, cancel := newBrowser(ctx, chromeBin)
	defer cancel()

	full := filepath.Join(outDir, "dashboard.png")
	err := c.retry.Do(ctx, "full-page", func() error {
		return c.shoot(browserCtx, pageURL, full, func(buf *[]byte) chromedp.Action {
			return chromedp.FullScreenshot(buf, 100)
		})
	})
	if err != nil {
		return nil, err
	}
	written := []string{full}

	var mu sync.Mutex
	for _, section := range Sections {
		section := section
		path := filepath.Join(outDir, section+".png")
		c.pool.Submit(func() error {
			err := c.retry.Do(ctx, "section-"+section, func() error {
				return c.shoot(browserCtx, pageURL, path, func(buf *[]byte) chromedp.Action {
					return chromedp.Screenshot("#"+section, buf, chromedp.NodeVisible, chromedp.ByQuery)
				})
			})
			if err != nil {
				c.logger.Warn("[snapshot] Section %s failed: %v", section, err)
				return err
			}
			mu.Lock()
			written = append(written, path)
			mu.Unlock()
			c.logger.Debug("[snapshot] Saved %s", path)
			return nil
		})
	}

	if errs := c.pool.Wait(); len(errs) > 0 {
		return written, fmt.Errorf("snapshot: %d of %d sections failed: %w", len(errs), len(Sections), errors.Join(errs...))
	}

	c.logger.Info("[snapshot] Saved %d screenshots to %s", len(written), outDir)
	return written, nil
}

// shoot opens pageURL in a new tab, waits for it to settle and saves one screenshot.
func (c *Capturer) shoot(browserCtx context.Context, pageURL, path string, action func(*[]byte) chromedp.Action) error {
	tabCtx, cancelTab := chromedp.NewContext(browserCtx)
	defer cancelTab()

	tabCtx, cancelTimeout := context.WithTimeout(tabCtx, 60*time.Second)
	defer cancelTimeout()

	var buf []byte
	err := chromedp.Run(tabCtx,
		chromedp.Navigate(pageURL),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Sleep(c.settle),
		action(&buf),
	)
	if err != nil {
		return fmt.Errorf("chromedp %s: %w", filepath.Base(path), err)
	}
	return os.WriteFile(path, buf, 0o644)
}

func displayBin(bin string) string {
	if bin == "" {
		return "(chromedp default)"
	}
	return bin
}
