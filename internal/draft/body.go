package draft

import (
	"bytes"
	"html/template"
	"strings"

	"github.com/foxseedlab/meetnotes/internal/notes"
)

type bodyData struct {
	MeetingNotes    []string
	CampaignUpdates []string
	KeyDecisions    []string
	ActionItems     []notes.ActionItem
	Unstructured    []string
	RecordingURL    string
	SignatureFirst  string
	SignatureRest   []string
}

var bodyTemplate = template.Must(template.New("body").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<style>
body { font-family: -apple-system, 'Segoe UI', Roboto, Arial, sans-serif; line-height: 1.6; color: #333; font-size: 14px; }
h3 { color: #000; margin: 20px 0 10px 0; font-size: 16px; }
li { margin: 8px 0; }
th, td { border: 1px solid #ccc; padding: 8px 12px; text-align: left; }
th { background-color: #f0f0f0; }
</style>
</head>
<body>
<p>Hi Everyone,</p>
<p>Thanks for your time today. Please find below a summary of key discussion points and action items from our recent meeting.</p>
{{- with .MeetingNotes}}
<h3 id="meeting-notes">Meeting Notes</h3>
<ul>{{range .}}<li>{{.}}</li>{{end}}</ul>
{{- end}}
{{- with .CampaignUpdates}}
<h3 id="campaign-updates">Campaign Updates, Metrics, and Performance</h3>
<ul>{{range .}}<li>{{.}}</li>{{end}}</ul>
{{- end}}
{{- with .KeyDecisions}}
<h3 id="key-decisions">Key Decisions</h3>
<ul>{{range .}}<li>{{.}}</li>{{end}}</ul>
{{- end}}
{{- with .ActionItems}}
<h3 id="actions">Actions</h3>
<table style="border-collapse: collapse; margin: 15px 0; font-size: 13px;">
<tr><th>Item</th><th>Owner</th><th>Due by</th></tr>
{{- range .}}
<tr><td>{{.Item}}</td><td>{{.Person}}</td><td>{{.Due}}</td></tr>
{{- end}}
</table>
{{- end}}
{{- range .Unstructured}}
<p class="notes">{{.}}</p>
{{- end}}
{{- with .RecordingURL}}
<p><a href="{{.}}">View the call recording</a></p>
{{- end}}
<p>Let us know if there's anything you need in the meantime. Otherwise, we'll keep things moving and circle back in the next call with fresh updates.</p>
<p>Chat soon!</p>
{{- if .SignatureFirst}}
<div class="signature">
<p><strong>{{.SignatureFirst}}</strong>{{range .SignatureRest}}<br>{{.}}{{end}}</p>
</div>
{{- end}}
</body>
</html>
`))

// Body renders the HTML email for formatted notes. The agenda section is not
// mailed. Text with no recognizable sections is included as plain paragraphs.
func Body(formatted, recordingURL string, signature []string) (string, error) {
	n := notes.Parse(formatted)
	data := bodyData{
		MeetingNotes:    sentences(n.MeetingNotes),
		CampaignUpdates: sentences(n.CampaignUpdates),
		KeyDecisions:    sentences(n.KeyDecisions),
		ActionItems:     n.ActionItems,
		RecordingURL:    recordingURL,
	}
	if n.IsEmpty() {
		for _, p := range strings.Split(strings.TrimSpace(formatted), "\n\n") {
			if p = strings.TrimSpace(p); p != "" {
				data.Unstructured = append(data.Unstructured, p)
			}
		}
	}
	if len(signature) > 0 {
		data.SignatureFirst = signature[0]
		data.SignatureRest = signature[1:]
	}

	var buf bytes.Buffer
	if err := bodyTemplate.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// sentences ends every list item with a period for the email.
func sentences(items []string) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		s := strings.TrimRight(strings.TrimSpace(it), ",.")
		if s != "" {
			out = append(out, s+".")
		}
	}
	return out
}
