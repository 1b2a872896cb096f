package fetch

import (
	"context"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
	"go.uber.org/zap"
)

// MinContentLength is the shortest extracted text accepted from a plain HTTP fetch.
// Shorter text usually means a JavaScript-rendered page.
const MinContentLength = 500

// DefaultRenderTimeout bounds a headless browser render.
const DefaultRenderTimeout = 30 * time.Second

// NeedsRendering reports whether extracted text is too short to be a real job description.
func NeedsRendering(text string) bool {
	return len(strings.TrimSpace(text)) < MinContentLength
}

// Render loads urlStr in headless Chrome and returns the rendered HTML.
// Chrome or Chromium must be installed.
func Render(ctx context.Context, urlStr string, timeout time.Duration, logger *zap.Logger) (string, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if timeout <= 0 {
		timeout = DefaultRenderTimeout
	}
	logger.Debug("rendering page in headless browser", zap.String("url", urlStr))

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
		)...,
	)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	browserCtx, cancelTimeout := context.WithTimeout(browserCtx, timeout)
	defer cancelTimeout()

	var html string
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(urlStr),
		chromedp.WaitReady("body"),
		// job boards hydrate the description after load
		chromedp.Sleep(3*time.Second),
		chromedp.OuterHTML("html", &html),
	)
	if err != nil {
		return "", &Error{URL: urlStr, Message: "browser rendering failed", Cause: err}
	}

	logger.Debug("rendered page", zap.String("url", urlStr), zap.Int("bytes", len(html)))
	return html, nil
}

// JobOptions configures JobPosting.
type JobOptions struct {
	Fetch *Options
	// UseBrowser enables the headless browser fallback for short pages
	UseBrowser    bool
	RenderTimeout time.Duration
	Logger        *zap.Logger
}

// JobPage is the extracted text of a job posting.
type JobPage struct {
	URL      string
	Platform Platform
	Text     string
	Rendered bool
}

// JobPosting fetches a job posting and extracts its description text using platform-specific selectors.
// When UseBrowser is set and the text is suspiciously short, the page is re-rendered in a headless
// browser; a failed render keeps the HTTP text.
func JobPosting(ctx context.Context, urlStr string, opts JobOptions) (*JobPage, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	platform := DetectPlatform(urlStr)
	content, noise := ContentSelectors(platform), NoiseSelectors(platform)

	page, err := Get(ctx, urlStr, opts.Fetch)
	if err != nil {
		return nil, err
	}

	text, err := ExtractMainText(page.HTML, content, noise...)
	if err != nil {
		return nil, &Error{URL: urlStr, Message: "content extraction failed", Cause: err}
	}
	logger.Debug("extracted job posting",
		zap.String("url", urlStr),
		zap.String("platform", string(platform)),
		zap.Int("chars", len(text)))

	result := &JobPage{URL: urlStr, Platform: platform, Text: text}
	if !opts.UseBrowser || !NeedsRendering(text) {
		return result, nil
	}

	html, err := Render(ctx, urlStr, opts.RenderTimeout, logger)
	if err != nil {
		logger.Warn("browser fallback failed, keeping HTTP text", zap.Error(err))
		return result, nil
	}
	rendered, err := ExtractMainText(html, content, noise...)
	if err != nil {
		logger.Warn("rendered page extraction failed", zap.Error(err))
		return result, nil
	}

	result.Text = rendered
	result.Rendered = true
	return result, nil
}
