package render

import (
	"fmt"
	"html/template"
	"io"
	"net/url"

	"github.com/soundprediction/episodegrid/pkg/view"
)

// Selection link kinds understood by the server's /select route.
const (
	KindCandidate = "candidate"
	KindChip      = "chip"
)

// SelectPath returns the link that dispatches a selection of entityID.
func SelectPath(entityID, kind string) string {
	return fmt.Sprintf("/select/%s?kind=%s", url.PathEscape(entityID), url.QueryEscape(kind))
}

var funcs = template.FuncMap{
	"selectPath": SelectPath,
	"chipClass": func(focus bool) string {
		if focus {
			return "chip active"
		}
		return "chip"
	},
}

var pageTemplate = template.Must(template.New("page").Funcs(funcs).Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>episodegrid</title>
<style>
body { font-family: sans-serif; margin: 2rem; }
table { border-collapse: collapse; width: 100%; }
th, td { border-bottom: 1px solid #ddd; padding: 0.4rem; text-align: left; vertical-align: top; }
.chip { display: inline-block; margin: 0 0.25rem 0.25rem 0; padding: 0.1rem 0.5rem; border-radius: 1rem; background: #eee; }
.chip a { color: inherit; text-decoration: none; }
.chip.active { background: #2b6cb0; color: #fff; }
.error { color: #b00020; }
.hidden { display: none; }
</style>
</head>
<body data-state="{{.StateName}}">
<form id="search" method="get" action="/">
<input id="query" type="search" name="q" value="{{.Query}}" placeholder="Search entities" autocomplete="off">
</form>
{{- if .Error}}
<p id="error" class="error">{{.Error}}</p>
{{- end}}
<ul id="candidates">
{{- range .Candidates}}
<li><a class="candidate" href="{{selectPath .ID "candidate"}}" data-id="{{.ID}}">{{.Label}}</a></li>
{{- end}}
</ul>
{{- if .Placeholder}}
<p id="placeholder">{{.Placeholder}}</p>
{{- end}}
<div id="results"{{if not .TableVisible}} class="hidden"{{end}}>
<p id="status">{{.Status}}</p>
<table id="grid">
<thead><tr>{{range .Schema.Columns}}<th data-key="{{.Key}}">{{.Title}}</th>{{end}}</tr></thead>
<tbody>
{{- range .Rows}}
<tr data-id="{{.EntityID}}">{{range .Cells}}<td>{{range .Chips}}<span class="{{chipClass .IsFocus}}" data-id="{{.EntityID}}"><a href="{{selectPath .EntityID "chip"}}">{{.Label}}</a></span>{{end}}</td>{{end}}</tr>
{{- end}}
</tbody>
</table>
</div>
</body>
</html>
`))

type page struct {
	view.Snapshot
	Rows []tableRow
}

// HTML writes the full page for snap.
func HTML(w io.Writer, snap view.Snapshot) error {
	p := page{Snapshot: snap}
	if snap.TableVisible {
		p.Rows = layout(snap)
	}
	if err := pageTemplate.Execute(w, p); err != nil {
		return fmt.Errorf("failed to render page: %w", err)
	}
	return nil
}
