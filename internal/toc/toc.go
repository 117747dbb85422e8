// Package toc renders the index document that links every chapter file.
package toc

import (
	"bytes"
	"fmt"
	"html/template"
	"sort"

	"github.com/brogergvhs/noveld/internal/chapters"
	"github.com/brogergvhs/noveld/internal/providers"
)

var indexTmpl = template.Must(template.New("toc").Parse(`<html>
<head>
<title>{{.Meta.Author}} - {{.Meta.Title}}</title>
<meta http-equiv="Content-Type" content="text/html; charset=utf-8">
</head>
<body>
<h1>Table of Contents</h1>
<div style="text-indent:0pt">
{{range .Chapters}}<p><a href="{{.FileName}}">{{.Ordinal}} - {{.Title}}</a></p>
{{end}}</div>
</body>
</html>
`))

// Render produces the index document. Output depends only on its inputs;
// entries are ordered by ordinal whatever order chs arrives in.
func Render(meta providers.Metadata, chs []chapters.Chapter) ([]byte, error) {
	sorted := make([]chapters.Chapter, len(chs))
	copy(sorted, chs)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Ordinal < sorted[j].Ordinal })

	var buf bytes.Buffer
	err := indexTmpl.Execute(&buf, struct {
		Meta     providers.Metadata
		Chapters []chapters.Chapter
	}{meta, sorted})
	if err != nil {
		return nil, fmt.Errorf("render toc: %w", err)
	}

	return buf.Bytes(), nil
}
