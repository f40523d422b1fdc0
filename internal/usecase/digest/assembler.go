package digest

import (
	"html/template"
	"strings"
	"time"

	"news-digest/internal/domain/entity"
)

// digestTemplate renders the digest document. One heading block per record,
// separated by horizontal rules, matching the layout of the delivered email.
var digestTemplate = template.Must(template.New("digest").Parse(
	`<html><body><h1>{{.Title}}</h1>{{range .Records}}<h2><a href="{{.Link}}">{{.Title}}</a></h2><h4>{{.Source}}</h4><p>{{.Summary}}</p><hr>{{end}}</body></html>`))

type digestView struct {
	Title   string
	Records []recordView
}

type recordView struct {
	Source  string
	Title   string
	Link    string
	Summary template.HTML
}

// Assemble renders the digest HTML document for one run. It is a pure
// function: records appear in input order, the title carries the given date,
// and newlines in summaries become <br> tags. Empty input yields a minimal
// document containing only the title.
func Assemble(records []entity.DigestRecord, now time.Time) string {
	view := digestView{
		Title:   now.Format("2006年01月02日") + "のニュースサマリー",
		Records: make([]recordView, 0, len(records)),
	}
	for _, r := range records {
		view.Records = append(view.Records, recordView{
			Source:  r.Source,
			Title:   r.Title,
			Link:    r.Link,
			Summary: summaryHTML(r.Summary),
		})
	}

	var b strings.Builder
	// The template executes over a fixed structure; Execute can only fail on
	// writer errors, which strings.Builder never produces.
	_ = digestTemplate.Execute(&b, view)
	return b.String()
}

// summaryHTML escapes the summary text and converts newlines to <br> tags.
// Escaping happens first so the substituted tags survive.
func summaryHTML(summary string) template.HTML {
	escaped := template.HTMLEscapeString(summary)
	return template.HTML(strings.ReplaceAll(escaped, "\n", "<br>"))
}
