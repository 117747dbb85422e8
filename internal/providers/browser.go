package providers

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/chromedp/chromedp"
)

// BrowserFetcher renders pages in a headless Chrome before parsing them.
// One browser process is shared by every Fetch until Close is called.
type BrowserFetcher struct {
	timeout    time.Duration
	browserCtx context.Context
	cancel     []context.CancelFunc
	log        interface{ Debugf(string, ...any) }
}

func NewBrowserFetcher(ctx context.Context, timeout time.Duration, userAgent string, log interface{ Debugf(string, ...any) }) *BrowserFetcher {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if userAgent != "" {
		opts = append(opts, chromedp.UserAgent(userAgent))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)

	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &BrowserFetcher{
		timeout:    timeout,
		browserCtx: browserCtx,
		cancel:     []context.CancelFunc{cancelBrowser, cancelAlloc},
		log:        log,
	}
}

func (b *BrowserFetcher) Fetch(ctx context.Context, target string) (*goquery.Document, error) {
	tabCtx, cancelTab := chromedp.NewContext(b.browserCtx)
	defer cancelTab()

	tabCtx, cancelTimeout := context.WithTimeout(tabCtx, b.timeout)
	defer cancelTimeout()

	// stop the tab as soon as the caller gives up
	stop := context.AfterFunc(ctx, cancelTab)
	defer stop()

	var html string
	err := chromedp.Run(tabCtx,
		chromedp.Navigate(target),
		chromedp.WaitReady("body"),
		chromedp.OuterHTML("html", &html),
	)
	if err != nil {
		return nil, &TransportError{URL: target, Err: fmt.Errorf("browser rendering failed: %w", err)}
	}

	if b.log != nil {
		b.log.Debugf("Rendered %s: %d bytes\n", target, len(html))
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, &TransportError{URL: target, Err: fmt.Errorf("parse html: %w", err)}
	}

	return doc, nil
}

func (b *BrowserFetcher) Close() {
	for _, c := range b.cancel {
		c()
	}
}
