package scorecard

import (
	"html/template"
	"io"

	"github.com/webcomponents/custom-elements-everywhere/internal/scoring"
)

const (
	FixtureResults = "results"
	FixtureIssues  = "issues"
	FixtureSummary = "summary"
)

// Fixture locations relative to a library directory.
const (
	resultsFile = "results/results.json"
	issuesFile  = "meta/issues.json"
	summaryFile = "meta/summary.md"
)

type Config struct {
	Root          string
	LibrariesPath string
	Libraries     []string
	TemplatePath  string
	OutHTMLPath   string
	OutJSONPath   string
	ChecksumsPath string
	RunLogPath    string
	Stdout        io.Writer
	Console       io.Writer
	Args          []string
}

// LibraryEntry is the per-library record handed to the page template.
type LibraryEntry struct {
	Name     string     `json:"name"`
	FullName string     `json:"full_name"`
	Results  TestResult `json:"results"`
	Issues   []Issue    `json:"issues"`
	Summary  Summary    `json:"summary"`
}

type TestResult struct {
	LibraryVersion string      `json:"library_version"`
	Summary        TestSummary `json:"summary"`
}

type TestSummary struct {
	Pass     int           `json:"pass"`
	Fail     int           `json:"fail"`
	Total    int           `json:"total"`
	Skipped  int           `json:"skipped,omitempty"`
	Error    int           `json:"error,omitempty"`
	Score    float64       `json:"score"`
	Basic    *SupportGroup `json:"basic_support,omitempty"`
	Advanced *SupportGroup `json:"advanced_support,omitempty"`
}

type SupportGroup struct {
	Total  int     `json:"total"`
	Passed int     `json:"passed"`
	Failed int     `json:"failed"`
	Score  float64 `json:"score"`
}

type Issue struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

type Summary struct {
	Content template.HTML `json:"content"`
}

func (s TestSummary) Counts() scoring.Counts {
	return scoring.Counts{Pass: s.Pass, Fail: s.Fail, Total: s.Total}
}

type InputDigest struct {
	Kind    string `json:"kind"`
	Library string `json:"library,omitempty"`
	Path    string `json:"path"`
	SHA256  string `json:"sha256"`
	ReadOK  bool   `json:"read_ok"`
}

type Page struct {
	HTML      []byte
	Libraries []LibraryEntry
	Inputs    []InputDigest
}

type Report struct {
	SchemaVersion string           `json:"schema_version"`
	GeneratedAt   string           `json:"generated_at"`
	RunID         string           `json:"run_id"`
	Inputs        []InputDigest    `json:"inputs"`
	Overview      scoring.Overview `json:"overview"`
	Libraries     []LibraryEntry   `json:"libraries"`
}
