package rest

import (
	"bytes"
	"html/template"

	domainSearch "github.com/kabang/kabang/domains/search"
)

var outcomeTemplate = template.Must(template.New("outcome").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
{{- if .Outcome.Link}}
<meta http-equiv="refresh" content="0; url={{.Outcome.Link}}">
{{- end}}
<title>{{.Outcome.Title}}</title>
<style>
body { font-family: system-ui, sans-serif; display: flex; justify-content: center; align-items: center; height: 100vh; margin: 0; background: #f5f5f5; }
.message { background: white; padding: 2rem; border-radius: 8px; box-shadow: 0 2px 8px rgba(0,0,0,0.1); text-align: center; max-width: 400px; }
.success { color: #16a34a; }
.warning { color: #d97706; }
.error { color: #dc2626; }
.back { margin-top: 1.5rem; }
a { color: #4f46e5; text-decoration: none; }
a:hover { text-decoration: underline; }
</style>
</head>
<body>
<div class="message">
<h2 class="{{.Outcome.Level}}">{{.Outcome.Title}}</h2>
<p>{{.Outcome.Message}}</p>
{{- if .Outcome.Link}}
<p><a href="{{.Outcome.Link}}">{{.Outcome.Link}}</a></p>
{{- end}}
{{- if .Outcome.Hint}}
<p><small>{{.Outcome.Hint}}</small></p>
{{- end}}
<div class="back"><a href="{{.DashboardPath}}">Back to Dashboard</a></div>
</div>
</body>
</html>
`))

type outcomePage struct {
	Outcome       domainSearch.Outcome
	DashboardPath string
}

func renderOutcome(outcome domainSearch.Outcome, dashboardPath string) ([]byte, error) {
	var buf bytes.Buffer
	if err := outcomeTemplate.Execute(&buf, outcomePage{Outcome: outcome, DashboardPath: dashboardPath}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
