package vnthuquan

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/brogergvhs/noveld/internal/providers"
)

// ExtractBody concatenates every body container of a chapter page. Each
// container becomes one paragraph with its line breaks made explicit.
func ExtractBody(doc *goquery.Document) (string, error) {
	containers := doc.Find(selBody)
	if containers.Length() == 0 {
		return "", fmt.Errorf("%w: no %s", providers.ErrChapterBodyNotFound, selBody)
	}

	var b strings.Builder
	var renderErr error

	containers.EachWithBreak(func(_ int, div *goquery.Selection) bool {
		inner, err := div.Html()
		if err != nil {
			renderErr = err
			return false
		}

		b.WriteString("<p>")
		b.WriteString(explicitBreaks(inner))
		b.WriteString("</p>")
		return true
	})

	if renderErr != nil {
		return "", fmt.Errorf("render body: %w", renderErr)
	}

	return b.String(), nil
}

// explicitBreaks replaces newlines with <br/>, ignoring trailing blank lines.
func explicitBreaks(s string) string {
	lines := strings.Split(s, "\n")
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	return strings.Join(lines, "<br/>")
}
