package providers

import (
	"context"

	"github.com/PuerkitoBio/goquery"
)

// Metadata is the bibliographic information of one novel. Both fields are
// non-empty once a listing page has been extracted.
type Metadata struct {
	Author string
	Title  string
}

// Chapter is one entry of a listing page. Ordinal is 1-based and follows
// document order.
type Chapter struct {
	Ordinal int
	Title   string
	URL     string
}

// Listing is everything a single listing-page fetch yields.
type Listing struct {
	Metadata Metadata
	Chapters []Chapter
}

// Fetcher retrieves a page and returns it as a queryable document.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*goquery.Document, error)
}

// Scraper knows the markup of one site.
type Scraper interface {
	GetListing(ctx context.Context, url string) (*Listing, error)
	GetChapterBody(ctx context.Context, chapterURL string) (string, error)
}
