package vnthuquan

import "regexp"

// Every query this site needs lives here.
const (
	selAuthor      = "p.style28"
	selTitle       = ".viethead"
	selChapter     = "acronym"
	selChapterLink = "a[href]"
	selBody        = "div.truyen_text"

	attrChapterTitle = "title"

	// listing links point at the contents view of a chapter; the text lives
	// under the same query string on the full-text page
	fullTextPage = "truyentext.aspx"
)

var reListingPage = regexp.MustCompile(`(?i)truyen\.aspx`)
