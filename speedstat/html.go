// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package speedstat

import (
	"io"

	"github.com/google/safehtml/template"
)

var htmlTemplate = template.Must(template.New("").Funcs(htmlFuncs).Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
table.speedstat { border-collapse: collapse; font-family: monospace; }
table.speedstat td, table.speedstat th { padding: 0 0.75em; text-align: right; }
table.speedstat td.name { text-align: left; }
tr.better td.geomean { color: #080; }
tr.worse td.geomean { color: #c00; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<table class="speedstat">
<tr><th>series<th>n<th>min<th>max<th>mean<th>geomean<th>stddev
{{range .Summaries -}}
<tr class="{{change .GeoMean}}"><td class="name">{{.Name}}<td>{{.N}}<td>{{format .Min}}<td>{{format .Max}}<td>{{format .Mean}}<td class="geomean">{{format .GeoMean}}<td>{{format .StdDev}}
{{end -}}
</table>
</body>
</html>
`))

var htmlFuncs = template.FuncMap{
	"format": format,
	"change": func(geomean float64) string {
		switch {
		case geomean > 1:
			return "better"
		case geomean < 1:
			return "worse"
		}
		return "unchanged"
	},
}

// FormatHTML writes sums as a standalone HTML page.
func FormatHTML(w io.Writer, title string, sums []Summary) error {
	return htmlTemplate.Execute(w, struct {
		Title     string
		Summaries []Summary
	}{title, sums})
}
