package store

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/brogergvhs/noveld/internal/chapters"
	"github.com/brogergvhs/noveld/internal/providers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chapter(n int, title string) chapters.Chapter {
	return chapters.Chapter{Chapter: providers.Chapter{Ordinal: n, Title: title}}
}

func TestPrepareIsIdempotent(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "Truyen Kieu")
	s := New(dir)

	require.NoError(t, s.Prepare())
	require.NoError(t, s.Prepare())

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestWriteAndExists(t *testing.T) {
	s := New(t.TempDir())
	require.NoError(t, s.Prepare())

	assert.False(t, s.Exists(1))

	n, err := s.Write(chapter(1, "Mở Đầu"), "<p>body</p>")
	require.NoError(t, err)
	assert.True(t, s.Exists(1))
	assert.False(t, s.Exists(2))

	data, err := os.ReadFile(filepath.Join(s.Dir(), "1.html"))
	require.NoError(t, err)
	assert.Equal(t, int64(len(data)), n)

	doc := string(data)
	assert.Contains(t, doc, "<title>Chapter 1 - Mở Đầu</title>")
	assert.Contains(t, doc, `<h1 class="chapter">Chapter 1 - Mở Đầu</h1>`)
	assert.Contains(t, doc, "charset=utf-8")
	assert.Contains(t, doc, "\n<p>body</p>\n")
	assert.True(t, strings.HasSuffix(doc, "</body>\n</html>\n"))
}

func TestWriteIsDeterministic(t *testing.T) {
	a, err := renderChapter(chapter(3, "Ba"), "<p>x</p>")
	require.NoError(t, err)
	b, err := renderChapter(chapter(3, "Ba"), "<p>x</p>")
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestWriteEscapesTitle(t *testing.T) {
	data, err := renderChapter(chapter(1, "A <b> & C"), "<p>x</p>")
	require.NoError(t, err)

	assert.Contains(t, string(data), "Chapter 1 - A &lt;b&gt; &amp; C")
	assert.Contains(t, string(data), "<p>x</p>")
}

func TestWriteLeavesNoTempFiles(t *testing.T) {
	s := New(t.TempDir())
	require.NoError(t, s.Prepare())

	_, err := s.Write(chapter(1, "One"), "<p>1</p>")
	require.NoError(t, err)
	require.NoError(t, s.WriteIndex([]byte("<html></html>")))

	entries, err := os.ReadDir(s.Dir())
	require.NoError(t, err)

	names := []string{}
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.ElementsMatch(t, []string{"1.html", "index.html"}, names)
}

func TestWriteFailureIsStorageError(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "never-created"))

	_, err := s.Write(chapter(1, "One"), "<p>1</p>")
	require.Error(t, err)
	assert.True(t, IsStorageError(err))
	assert.False(t, s.Exists(1))
}

func TestMissing(t *testing.T) {
	s := New(t.TempDir())
	require.NoError(t, s.Prepare())

	_, err := s.Write(chapter(2, "Two"), "")
	require.NoError(t, err)

	all := []chapters.Chapter{chapter(1, "One"), chapter(2, "Two"), chapter(3, "Three")}
	assert.Equal(t, []int{1, 3}, s.Missing(all))
}

func TestFolderName(t *testing.T) {
	assert.Equal(t, "Truyen Kieu", FolderName(" Truyen Kieu "))
	assert.Equal(t, "A-B", FolderName("A/B"))
	assert.Equal(t, "novel", FolderName(".."))
	assert.Equal(t, "novel", FolderName(""))
}
