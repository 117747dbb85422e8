package chapters

import (
	"fmt"

	"github.com/brogergvhs/noveld/internal/providers"
)

type Chapter struct {
	providers.Chapter
}

// FromListing wraps listing entries, keeping their order.
func FromListing(raw []providers.Chapter) []Chapter {
	out := make([]Chapter, len(raw))
	for i, c := range raw {
		out[i] = Chapter{Chapter: c}
	}

	return out
}

// FileName is the artifact name of the chapter inside the output folder.
func (c Chapter) FileName() string {
	return FileName(c.Ordinal)
}

// Heading is the text used for both the page title and the h1.
func (c Chapter) Heading() string {
	return fmt.Sprintf("Chapter %d - %s", c.Ordinal, c.Title)
}

func FileName(ordinal int) string {
	return fmt.Sprintf("%d.html", ordinal)
}
