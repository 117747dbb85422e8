package vnthuquan

import (
	"testing"

	"github.com/brogergvhs/noveld/internal/providers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractBody(t *testing.T) {
	doc := parse(t, "<html><body>"+
		"<div class=\"truyen_text\">line one\nline two<br>line three\n\n</div>"+
		"<div class=\"other\">ignored</div>"+
		"<div class=\"truyen_text\"><b>second</b></div>"+
		"</body></html>")

	body, err := ExtractBody(doc)
	require.NoError(t, err)

	assert.Equal(t, "<p>line one<br/>line two<br/>line three</p><p><b>second</b></p>", body)
}

func TestExtractBody_NotFound(t *testing.T) {
	doc := parse(t, `<html><body><div class="content">text</div></body></html>`)

	_, err := ExtractBody(doc)
	assert.ErrorIs(t, err, providers.ErrChapterBodyNotFound)
}

func TestExplicitBreaks(t *testing.T) {
	assert.Equal(t, "a<br/><br/>b", explicitBreaks("a\n\nb\n"))
	assert.Equal(t, "", explicitBreaks("\n\n"))
	assert.Equal(t, "plain", explicitBreaks("plain"))
}
