package web

import (
	"html/template"
	"strings"
)

const indexTemplate = `<!DOCTYPE html>
<html>
<head>
    <meta charset="utf-8">
    <title>Pathway Overlap Analyzer</title>
    <style>
        body { margin: 0; font-family: Arial, sans-serif; display: flex; }
        #sidebar { width: 360px; padding: 16px; background: #f0f2f6; height: 100vh; overflow-y: auto; box-sizing: border-box; }
        #main { flex: 1; padding: 16px 32px; }
        .notice { padding: 8px 12px; border-radius: 4px; margin-bottom: 8px; }
        .notice.warning { background: #fff3cd; }
        .notice.info { background: #d1ecf1; }
        .pathway { display: block; font-size: 13px; margin: 2px 0; }
        table { border-collapse: collapse; }
        th, td { border-bottom: 1px solid #ddd; padding: 4px 12px; text-align: left; }
        td.count { text-align: right; }
        .swatch { display: inline-block; width: 10px; height: 10px; border-radius: 50%; margin-right: 4px; }
    </style>
</head>
<body>
<div id="sidebar">
    <h3>Select Pathways for Analysis</h3>
    <form id="filter" method="get" action="/">
        <input type="text" name="q" value="{{.Query}}" placeholder="Filter by name">
        <input type="hidden" name="min" value="{{.MinCount}}">
        <button type="submit">Filter</button>
    </form>
    <form id="selection" method="post" action="/select">
        <input type="hidden" name="q" value="{{.Query}}">
        <label>Minimum count (2 for shared genes)
            <input type="number" name="min" min="1" step="1" value="{{.MinCount}}">
        </label>
        <button type="submit" {{if .Computing}}disabled{{end}}>Analyze</button>
        {{range .Hidden}}<input type="hidden" name="pathway" value="{{.}}">
        {{end}}
        {{range .Options}}<label class="pathway"><input type="checkbox" name="pathway" value="{{.ID}}"{{if .Selected}} checked{{end}}><span class="swatch" style="background-color: {{.Color}}"></span>{{.Name}} <small>{{.ID}}</small></label>
        {{end}}
    </form>
</div>
<div id="main">
    <h1>Pathway Overlap Analyzer</h1>
    <p id="state">State: {{.State}}</p>
    {{range .Notices}}<div class="notice {{.Level}}">{{.Message}}</div>
    {{end}}
    {{if .HasResult}}
    <h2>Shared Gene Analysis</h2>
    <p id="summary">{{len .Records}} genes across {{.PathwayCount}} pathways. <a href="/graph">Network Visualization</a> | <a href="/api/result">JSON</a></p>
    <table id="overlap">
        <thead><tr><th>Gene</th><th>Count</th><th>Pathways</th></tr></thead>
        <tbody>
        {{range .Records}}<tr><td class="gene">{{.Gene}}</td><td class="count">{{.Count}}</td><td class="pathways">{{join .Pathways ", "}}</td></tr>
        {{end}}
        </tbody>
    </table>
    {{else}}
    <div class="notice info">Please select pathways from the sidebar to begin the analysis.</div>
    {{end}}
</div>
</body>
</html>
`

var indexPage = template.Must(template.New("index").Funcs(template.FuncMap{
	"join": strings.Join,
}).Parse(indexTemplate))
