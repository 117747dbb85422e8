package vnthuquan

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/brogergvhs/noveld/internal/providers"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ExtractListing reads metadata and the ordered chapter plan from a listing
// page. pageURL is used to resolve relative chapter links.
func ExtractListing(doc *goquery.Document, pageURL string) (*providers.Listing, error) {
	author := strings.TrimSpace(doc.Find(selAuthor).First().Text())
	if author == "" {
		return nil, fmt.Errorf("%w: no author (%s)", providers.ErrMetadataNotFound, selAuthor)
	}

	title := strings.TrimSpace(doc.Find(selTitle).First().Text())
	if title == "" {
		return nil, fmt.Errorf("%w: no title (%s)", providers.ErrMetadataNotFound, selTitle)
	}

	caser := cases.Title(language.Und)

	var out []providers.Chapter
	doc.Find(selChapter).Each(func(i int, marker *goquery.Selection) {
		name, _ := marker.Attr(attrChapterTitle)

		link := ""
		if href, ok := marker.Find(selChapterLink).First().Attr("href"); ok && strings.TrimSpace(href) != "" {
			link = RewriteChapterURL(resolveURL(pageURL, strings.TrimSpace(href)))
		}

		out = append(out, providers.Chapter{
			Ordinal: i + 1,
			Title:   caser.String(strings.TrimSpace(name)),
			URL:     link,
		})
	})

	if len(out) == 0 {
		return nil, fmt.Errorf("%w: no %s markers", providers.ErrNoChaptersFound, selChapter)
	}

	return &providers.Listing{
		Metadata: providers.Metadata{Author: author, Title: title},
		Chapters: out,
	}, nil
}

// RewriteChapterURL turns a listing-page link into the matching full-text
// page link. Links without the listing token are returned unchanged.
func RewriteChapterURL(link string) string {
	return reListingPage.ReplaceAllString(link, fullTextPage)
}

func resolveURL(baseURL, href string) string {
	u, err := url.Parse(href)
	if err != nil {
		return href
	}
	if u.IsAbs() {
		return u.String()
	}

	b, err := url.Parse(baseURL)
	if err != nil || !b.IsAbs() {
		return href
	}

	return b.ResolveReference(u).String()
}
