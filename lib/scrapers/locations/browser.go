package locations

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/chromedp/chromedp"
)

type BrowserOptions struct {
	URL string
	// ExecPath is the chrome/chromium executable, when empty chromedp looks
	// for one in the usual places.
	ExecPath string
	Timeout  time.Duration
}

// BrowserSource loads the endpoint in a headless browser and returns the
// rendered document.
type BrowserSource struct {
	opts BrowserOptions
}

func NewBrowserSource(opts BrowserOptions) *BrowserSource {
	return &BrowserSource{opts: opts}
}

func (s *BrowserSource) Name() string {
	return "browser"
}

func (s *BrowserSource) Fetch(ctx context.Context) ([]byte, error) {
	if s.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.opts.Timeout)
		defer cancel()
	}

	allocOpts := append(
		chromedp.DefaultExecAllocatorOptions[:],
		chromedp.UserAgent(userAgent),
	)
	if s.opts.ExecPath != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(s.opts.ExecPath))
	}

	// both cancels terminate the browser process, they run on every return
	// path including a failed navigation
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, allocOpts...)
	defer cancelAlloc()
	browserCtx, cancelBrowser := chromedp.NewContext(
		allocCtx,
		chromedp.WithLogf(func(format string, args ...any) {
			slog.DebugContext(ctx, fmt.Sprintf(format, args...))
		}),
	)
	defer cancelBrowser()

	var document string
	err := chromedp.Run(
		browserCtx,
		chromedp.Navigate(s.opts.URL),
		chromedp.OuterHTML("html", &document, chromedp.ByQuery),
	)
	if err != nil {
		return nil, fmt.Errorf("browse %s: %w", s.opts.URL, err)
	}
	return []byte(document), nil
}
