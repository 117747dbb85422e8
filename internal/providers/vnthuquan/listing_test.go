package vnthuquan

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/brogergvhs/noveld/internal/providers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const listingURL = "http://vnthuquan.net/truyen/truyen.aspx?tid=abc"

func parse(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func TestExtractListing(t *testing.T) {
	doc := parse(t, `<html><body>
		<p class="style28"> Nguyen Du </p>
		<p class="style28">Someone Else</p>
		<div class="viethead">Truyen Kieu</div>
		<acronym title="mở đầu"><a href="truyen.aspx?tid=abc&amp;chuong=1">1</a></acronym>
		<acronym title="kết thúc"><a href="http://vnthuquan.net/truyen/Truyen.aspx?tid=abc&amp;chuong=2">2</a></acronym>
	</body></html>`)

	listing, err := ExtractListing(doc, listingURL)
	require.NoError(t, err)

	assert.Equal(t, providers.Metadata{Author: "Nguyen Du", Title: "Truyen Kieu"}, listing.Metadata)
	require.Len(t, listing.Chapters, 2)

	assert.Equal(t, providers.Chapter{
		Ordinal: 1,
		Title:   "Mở Đầu",
		URL:     "http://vnthuquan.net/truyen/truyentext.aspx?tid=abc&chuong=1",
	}, listing.Chapters[0])
	assert.Equal(t, providers.Chapter{
		Ordinal: 2,
		Title:   "Kết Thúc",
		URL:     "http://vnthuquan.net/truyen/truyentext.aspx?tid=abc&chuong=2",
	}, listing.Chapters[1])
}

func TestExtractListing_OrdinalsFollowDocumentOrder(t *testing.T) {
	doc := parse(t, `<p class="style28">A</p><span class="viethead">B</span>
		<acronym title="zeta"><a href="truyen.aspx?c=z">z</a></acronym>
		<acronym title="alpha"><a href="truyen.aspx?c=a">a</a></acronym>
		<acronym title="CHAPTER ONE"><a href="truyen.aspx?c=m">m</a></acronym>`)

	listing, err := ExtractListing(doc, listingURL)
	require.NoError(t, err)
	require.Len(t, listing.Chapters, 3)

	assert.Equal(t, 1, listing.Chapters[0].Ordinal)
	assert.Equal(t, "Zeta", listing.Chapters[0].Title)
	assert.Equal(t, 2, listing.Chapters[1].Ordinal)
	assert.Equal(t, "Alpha", listing.Chapters[1].Title)
	assert.Equal(t, 3, listing.Chapters[2].Ordinal)
	assert.Equal(t, "Chapter One", listing.Chapters[2].Title)
}

func TestExtractListing_MissingLinkKeepsOrdinal(t *testing.T) {
	doc := parse(t, `<p class="style28">A</p><div class="viethead">B</div>
		<acronym title="one"></acronym>
		<acronym title="two"><a href="truyen.aspx?c=2">2</a></acronym>`)

	listing, err := ExtractListing(doc, listingURL)
	require.NoError(t, err)
	require.Len(t, listing.Chapters, 2)

	assert.Empty(t, listing.Chapters[0].URL)
	assert.Equal(t, 2, listing.Chapters[1].Ordinal)
}

func TestExtractListing_MetadataNotFound(t *testing.T) {
	tests := []struct {
		name string
		html string
	}{
		{"no author", `<div class="viethead">B</div><acronym title="x"><a href="a">a</a></acronym>`},
		{"empty author", `<p class="style28">  </p><div class="viethead">B</div><acronym title="x"><a href="a">a</a></acronym>`},
		{"no title", `<p class="style28">A</p><acronym title="x"><a href="a">a</a></acronym>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ExtractListing(parse(t, tt.html), listingURL)
			assert.ErrorIs(t, err, providers.ErrMetadataNotFound)
		})
	}
}

func TestExtractListing_NoChapters(t *testing.T) {
	doc := parse(t, `<p class="style28">A</p><div class="viethead">B</div>`)

	_, err := ExtractListing(doc, listingURL)
	assert.ErrorIs(t, err, providers.ErrNoChaptersFound)
}

func TestRewriteChapterURL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"http://vnthuquan.net/truyen/truyen.aspx?tid=1", "http://vnthuquan.net/truyen/truyentext.aspx?tid=1"},
		{"http://vnthuquan.net/truyen/TRUYEN.ASPX?tid=1", "http://vnthuquan.net/truyen/truyentext.aspx?tid=1"},
		{"http://vnthuquan.net/truyen/truyentext.aspx?tid=1", "http://vnthuquan.net/truyen/truyentext.aspx?tid=1"},
		{"http://example.com/doc.php?id=1", "http://example.com/doc.php?id=1"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, RewriteChapterURL(tt.in), tt.in)
	}
}
