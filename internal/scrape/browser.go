package scrape

import (
	"context"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
)

// minStaticContentLength is the description length below which a static
// fetch is assumed to have missed JavaScript-rendered content.
const minStaticContentLength = 500

// NeedsBrowser reports whether a statically fetched posting looks too
// thin to be the real page content.
func NeedsBrowser(p *Posting) bool {
	if p == nil {
		return true
	}
	return len(strings.TrimSpace(p.Description)) < minStaticContentLength
}

// URLWithBrowser fetches a posting through headless Chrome, for pages
// that render their content client-side.
func URLWithBrowser(ctx context.Context, rawURL string) (*Posting, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	browserCtx, cancelTimeout := context.WithTimeout(browserCtx, 30*time.Second)
	defer cancelTimeout()

	var html string
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(rawURL),
		chromedp.WaitReady("body"),
		chromedp.Sleep(3*time.Second),
		chromedp.OuterHTML("html", &html),
	)
	if err != nil {
		return nil, &Error{URL: rawURL, Message: "browser rendering failed", Cause: err}
	}

	return FromHTML(rawURL, html)
}
