package vnthuquan

import (
	"context"
	"fmt"

	"github.com/brogergvhs/noveld/internal/providers"
)

type Scraper struct {
	fetcher providers.Fetcher
	log     interface{ Debugf(string, ...any) }
}

func NewScraper(f providers.Fetcher, log interface{ Debugf(string, ...any) }) *Scraper {
	return &Scraper{fetcher: f, log: log}
}

func (s *Scraper) GetListing(ctx context.Context, pageURL string) (*providers.Listing, error) {
	doc, err := s.fetcher.Fetch(ctx, pageURL)
	if err != nil {
		return nil, err
	}

	listing, err := ExtractListing(doc, pageURL)
	if err != nil {
		return nil, err
	}

	if s.log != nil {
		s.log.Debugf("Listing %s: %q by %q, %d chapters\n",
			pageURL, listing.Metadata.Title, listing.Metadata.Author, len(listing.Chapters))
	}

	return listing, nil
}

func (s *Scraper) GetChapterBody(ctx context.Context, chapterURL string) (string, error) {
	if chapterURL == "" {
		return "", fmt.Errorf("%w: chapter has no link", providers.ErrChapterBodyNotFound)
	}

	doc, err := s.fetcher.Fetch(ctx, chapterURL)
	if err != nil {
		return "", err
	}

	return ExtractBody(doc)
}
