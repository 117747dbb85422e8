package store

import (
	"bytes"
	"html/template"

	"github.com/brogergvhs/noveld/internal/chapters"
)

var chapterTmpl = template.Must(template.New("chapter").Parse(`<html>
<head>
<title>{{.Heading}}</title>
<meta http-equiv="Content-Type" content="text/html; charset=utf-8">
</head>
<body>
<h1 class="chapter">{{.Heading}}</h1>
{{.Body}}
</body>
</html>
`))

func renderChapter(ch chapters.Chapter, body string) ([]byte, error) {
	var buf bytes.Buffer
	err := chapterTmpl.Execute(&buf, struct {
		Heading string
		Body    template.HTML
	}{
		Heading: ch.Heading(),
		Body:    template.HTML(body),
	})
	if err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
