package capture

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/chromedp/chromedp"

	appLog "hellocal/internal/log"
)

// Default capture parameters: an A4 page at 150 DPI.
const (
	DefaultWidth      = 1240
	DefaultHeight     = 1754
	DefaultTimeoutSec = 30
)

// Options defines a Chromium-based screenshot of a rendered document.
type Options struct {
	// HTMLPath is the rendered document on disk.
	HTMLPath string

	// OutputPath is where the PNG screenshot will be written.
	OutputPath string

	// Width and Height are the viewport dimensions in pixels. If zero,
	// DefaultWidth / DefaultHeight are used.
	Width  int
	Height int

	// Timeout bounds the entire capture. If zero, DefaultTimeoutSec is used.
	Timeout time.Duration
}

// FileURL converts a local path into a file:// URL Chromium can navigate to.
func FileURL(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}
	return u.String(), nil
}

// CapturePNG opens opts.HTMLPath in headless Chromium and writes a
// full-page PNG screenshot to opts.OutputPath.
func CapturePNG(parentCtx context.Context, opts Options) error {
	if opts.HTMLPath == "" {
		return fmt.Errorf("capture: HTMLPath is required")
	}
	if opts.OutputPath == "" {
		return fmt.Errorf("capture: OutputPath is required")
	}
	if opts.Width <= 0 {
		opts.Width = DefaultWidth
	}
	if opts.Height <= 0 {
		opts.Height = DefaultHeight
	}
	if opts.Timeout <= 0 {
		opts.Timeout = time.Duration(DefaultTimeoutSec) * time.Second
	}

	target, err := FileURL(opts.HTMLPath)
	if err != nil {
		return fmt.Errorf("capture: resolve document path: %w", err)
	}

	ctx, cancel := chromedp.NewContext(parentCtx)
	defer cancel()

	ctx, timeoutCancel := context.WithTimeout(ctx, opts.Timeout)
	defer timeoutCancel()

	var png []byte
	tasks := chromedp.Tasks{
		chromedp.EmulateViewport(int64(opts.Width), int64(opts.Height)),
		chromedp.Navigate(target),
		chromedp.WaitReady("body", chromedp.ByQuery),
		// Small extra delay to allow web fonts and images to paint.
		chromedp.Sleep(300 * time.Millisecond),
		chromedp.FullScreenshot(&png, 100),
	}

	if err := chromedp.Run(ctx, tasks); err != nil {
		return fmt.Errorf("capture: chromedp run failed: %w", err)
	}

	if err := os.WriteFile(opts.OutputPath, png, 0o644); err != nil {
		return fmt.Errorf("capture: failed to write PNG: %w", err)
	}

	appLog.Info("preview captured", "path", opts.OutputPath, "width", opts.Width, "height", opts.Height)
	return nil
}
