package web

import "html/template"

// pageData feeds pageTemplate. Exactly one of Error and Result is set after a
// run; neither is set on the bare form.
type pageData struct {
	Sheet  string
	Column string
	Error  string
	Result *resultView
}

type resultView struct {
	OutputName  string
	DownloadURL string
	Elapsed     string
	Tokens      int
	Paragraphs  int
	Column      template.HTML
	Preview     template.HTML
}

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>docfill</title>
<style>
body { font-family: sans-serif; margin: 2em; max-width: 60em; }
.error { color: #a00; }
.success { color: #070; }
.preview { border: 1px solid #ccc; padding: 1em; }
table.column td, table.column th { border: 1px solid #ccc; padding: 2px 6px; }
</style>
</head>
<body>
<h1>Fill a Word template from an Excel column</h1>
<form method="post" action="/run" enctype="multipart/form-data">
  <p><label>Excel file <input type="file" name="spreadsheet" accept=".xlsx"></label></p>
  <p><label>Word template <input type="file" name="template" accept=".docx"></label></p>
  <p><label>Sheet <input type="text" name="sheet" value="{{.Sheet}}"></label></p>
  <p><label>Column <input type="text" name="column" value="{{.Column}}" size="4"></label></p>
  <p><button type="submit">Run</button></p>
</form>
{{with .Error}}<p class="error">{{.}}</p>{{end}}
{{with .Result}}
<p class="success">Document saved successfully as {{.OutputName}}</p>
<p>Time taken: {{.Elapsed}}</p>
<p><a href="{{.DownloadURL}}">Download {{.OutputName}}</a></p>
<p>{{.Tokens}} placeholders, {{.Paragraphs}} paragraphs.</p>
<h2>Column</h2>
{{.Column}}
<h2>Preview</h2>
<div class="preview">
{{.Preview}}
</div>
{{end}}
</body>
</html>
`))
