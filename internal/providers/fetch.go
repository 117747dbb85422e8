package providers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/brogergvhs/noveld/internal/util"
)

// HTTPFetcher fetches pages with a plain HTTP client.
type HTTPFetcher struct {
	client   *http.Client
	attempts int
	backoff  time.Duration
	log      interface{ Debugf(string, ...any) }
}

func NewHTTPFetcher(c *http.Client, attempts int, log interface{ Debugf(string, ...any) }) *HTTPFetcher {
	if attempts < 1 {
		attempts = 1
	}

	return &HTTPFetcher{
		client:   c,
		attempts: attempts,
		backoff:  500 * time.Millisecond,
		log:      log,
	}
}

func (f *HTTPFetcher) Fetch(ctx context.Context, target string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, &TransportError{URL: target, Err: err}
	}

	resp, err := util.DoWithRetry(ctx, f.client, req, f.attempts, f.backoff)
	if err != nil {
		return nil, &TransportError{URL: target, Err: err}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &TransportError{URL: target, StatusCode: resp.StatusCode}
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, &TransportError{URL: target, Err: fmt.Errorf("parse html: %w", err)}
	}

	if f.log != nil {
		f.log.Debugf("Fetched %s (%s)\n", target, resp.Status)
	}

	return doc, nil
}
