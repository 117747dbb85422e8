package toc

import (
	"strings"
	"testing"

	"github.com/brogergvhs/noveld/internal/chapters"
	"github.com/brogergvhs/noveld/internal/providers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var meta = providers.Metadata{Author: "Nguyen Du", Title: "Truyen Kieu"}

func list(titles ...string) []chapters.Chapter {
	raw := make([]providers.Chapter, len(titles))
	for i, t := range titles {
		raw[i] = providers.Chapter{Ordinal: i + 1, Title: t}
	}
	return chapters.FromListing(raw)
}

func TestRender(t *testing.T) {
	out, err := Render(meta, list("Mở Đầu", "Kết Thúc"))
	require.NoError(t, err)

	doc := string(out)
	assert.Contains(t, doc, "<title>Nguyen Du - Truyen Kieu</title>")
	assert.Contains(t, doc, "<h1>Table of Contents</h1>")

	first := strings.Index(doc, `<p><a href="1.html">1 - Mở Đầu</a></p>`)
	second := strings.Index(doc, `<p><a href="2.html">2 - Kết Thúc</a></p>`)
	require.NotEqual(t, -1, first)
	require.NotEqual(t, -1, second)
	assert.Less(t, first, second)
}

func TestRender_Idempotent(t *testing.T) {
	chs := list("One", "Two", "Three")

	a, err := Render(meta, chs)
	require.NoError(t, err)
	b, err := Render(meta, chs)
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestRender_SortsByOrdinal(t *testing.T) {
	chs := list("One", "Two", "Three")
	reversed := []chapters.Chapter{chs[2], chs[0], chs[1]}

	a, err := Render(meta, chs)
	require.NoError(t, err)
	b, err := Render(meta, reversed)
	require.NoError(t, err)

	assert.Equal(t, string(a), string(b))
	assert.Equal(t, "Three", reversed[0].Title, "input slice is not reordered")
}
