// internal/workers/report/send-results-notification/templates.go
package sendresultsnotification

import (
	"bytes"
	htmltemplate "html/template"
	"strings"
	"text/template"

	"bizpath-workers/internal/models"
)

type messageData struct {
	Name       string
	Paths      []models.PathSummary
	ResultsURL string
}

var (
	subjectTmpl = template.Must(template.New("subject").Parse(
		`{{if .Name}}{{.Name}}, your{{else}}Your{{end}} top business path{{if gt (len .Paths) 1}}s are{{else}} is{{end}} ready`))

	textTmpl = template.Must(template.New("text").Parse(`Hi {{if .Name}}{{.Name}}{{else}}there{{end}},

Based on your quiz answers, these business paths fit you best:
{{range .Paths}}
{{.Rank}}. {{.Name}} - {{.FitScore}}/100 ({{.FitCategory}})
{{- end}}
{{if .ResultsURL}}
See the full report: {{.ResultsURL}}
{{end}}`))

	htmlTmpl = htmltemplate.Must(htmltemplate.New("html").Parse(`<p>Hi {{if .Name}}{{.Name}}{{else}}there{{end}},</p>
<p>Based on your quiz answers, these business paths fit you best:</p>
<ol>{{range .Paths}}
<li><strong>{{.Name}}</strong> - {{.FitScore}}/100 ({{.FitCategory}})</li>{{end}}
</ol>{{if .ResultsURL}}
<p><a href="{{.ResultsURL}}">See the full report</a></p>{{end}}`))

	smsTmpl = template.Must(template.New("sms").Parse(
		`Your top business path{{if gt (len .Paths) 1}}s{{end}}: {{range $i, $p := .Paths}}{{if $i}}, {{end}}{{$p.Name}} ({{$p.FitScore}}){{end}}.{{if .ResultsURL}} {{.ResultsURL}}{{end}}`))
)

type renderedMessage struct {
	Subject string
	Text    string
	HTML    string
	SMS     string
}

func render(data messageData) (renderedMessage, error) {
	var out renderedMessage
	for _, step := range []struct {
		dst  *string
		exec func(*bytes.Buffer) error
	}{
		{&out.Subject, func(b *bytes.Buffer) error { return subjectTmpl.Execute(b, data) }},
		{&out.Text, func(b *bytes.Buffer) error { return textTmpl.Execute(b, data) }},
		{&out.HTML, func(b *bytes.Buffer) error { return htmlTmpl.Execute(b, data) }},
		{&out.SMS, func(b *bytes.Buffer) error { return smsTmpl.Execute(b, data) }},
	} {
		var buf bytes.Buffer
		if err := step.exec(&buf); err != nil {
			return renderedMessage{}, err
		}
		*step.dst = strings.TrimSpace(buf.String())
	}
	return out, nil
}
