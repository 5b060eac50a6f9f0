package snapshot

import (
	"context"
	"os"
	"os/exec"

	"github.com/chromedp/chromedp"
)

var (
	chromeCommands = []string{"google-chrome-stable", "google-chrome", "chromium", "chromium-browser"}
	chromePaths    = []string{
		"/usr/bin/google-chrome-stable",
		"/usr/bin/chromium",
		"/snap/bin/chromium",
		"/opt/google/chrome/google-chrome",
		"/Applications/Google Chrome.app/Contents/MacOS/Google Chrome",
	}
)

// browserFlags are the allocator options for a headless, sandbox-free Chrome
// sized like a laptop screen.
func browserFlags(chromeBin string) []chromedp.ExecAllocatorOption {
	opts := make([]chromedp.ExecAllocatorOption, 0, len(chromedp.DefaultExecAllocatorOptions)+7)
	opts = append(opts, chromedp.DefaultExecAllocatorOptions[:]...)
	opts = append(opts,
		chromedp.Headless,
		chromedp.DisableGPU,
		chromedp.NoSandbox,
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("hide-scrollbars", true),
		chromedp.WindowSize(1440, 900),
	)
	if chromeBin != "" {
		opts = append(opts, chromedp.ExecPath(chromeBin))
	}
	return opts
}

// newBrowser starts Chrome and returns a context bound to its first tab.
func newBrowser(parent context.Context, chromeBin string) (context.Context, context.CancelFunc) {
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(parent, browserFlags(chromeBin)...)
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx, chromedp.WithLogf(func(string, ...any) {}))

	return browserCtx, func() {
		cancelBrowser()
		cancelAlloc()
	}
}

// findChromeBinary returns configured when set, else the first Chrome found
// on PATH or at a well-known install location. An empty result lets chromedp
// fall back to its own lookup.
func findChromeBinary(configured string) string {
	if configured != "" {
		return configured
	}
	for _, name := range chromeCommands {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}
	for _, p := range chromePaths {
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p
		}
	}
	return ""
}
