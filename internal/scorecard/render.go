package scorecard

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"os"

	"github.com/webcomponents/custom-elements-everywhere/internal/scoring"
)

const indexTemplateName = "index"

//go:embed templates/index.html.tmpl templates/partials/*.html.tmpl
var templateFS embed.FS

type pageData struct {
	Libraries []LibraryEntry
}

var templateFuncs = template.FuncMap{
	"warningLevel": scoring.WarningLevel,
	"percent":      scoring.Rounded,
	"overview":     overviewOf,
}

func overviewOf(entries []LibraryEntry) scoring.Overview {
	counts := make([]scoring.Counts, 0, len(entries))
	for _, e := range entries {
		counts = append(counts, e.Results.Summary.Counts())
	}
	return scoring.Summarize(counts)
}

// Render expands the page template over entries. templatePath replaces the
// embedded index template when set; the embedded partials stay available and
// may be redefined by it. Nothing is returned unless expansion succeeds.
func Render(entries []LibraryEntry, templatePath string) ([]byte, error) {
	name := "embedded:index.html.tmpl"
	if templatePath != "" {
		name = templatePath
	}
	t, err := loadTemplate(templatePath)
	if err != nil {
		return nil, &RenderError{Template: name, Err: err}
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, indexTemplateName, pageData{Libraries: entries}); err != nil {
		return nil, &RenderError{Template: name, Err: err}
	}
	return buf.Bytes(), nil
}

func loadTemplate(templatePath string) (*template.Template, error) {
	t := template.New(indexTemplateName).Funcs(templateFuncs).Option("missingkey=error")
	if _, err := t.ParseFS(templateFS, "templates/partials/*.html.tmpl"); err != nil {
		return nil, fmt.Errorf("parse partials: %w", err)
	}
	var body []byte
	var err error
	if templatePath == "" {
		body, err = templateFS.ReadFile("templates/index.html.tmpl")
	} else {
		body, err = os.ReadFile(templatePath)
	}
	if err != nil {
		return nil, err
	}
	if _, err := t.Parse(string(body)); err != nil {
		return nil, err
	}
	return t, nil
}
