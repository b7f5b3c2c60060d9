package report

import "html/template"

type pageData struct {
	Title string
	Body  string
}

func (p pageData) HTML() template.HTML {
	return template.HTML(p.Body)
}

var pageTmpl = template.Must(template.New("summary").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: Helvetica, Arial, sans-serif; max-width: 46rem; margin: 2rem auto; line-height: 1.5; }
h1.title { text-align: center; }
</style>
</head>
<body>
<h1 class="title">{{.Title}}</h1>
{{.HTML}}
</body>
</html>
`))
