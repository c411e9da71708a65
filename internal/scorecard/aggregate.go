package scorecard

import (
	"html/template"
	"path/filepath"

	"github.com/webcomponents/custom-elements-everywhere/internal/catalog"
	"github.com/webcomponents/custom-elements-everywhere/internal/ingest/issues"
	"github.com/webcomponents/custom-elements-everywhere/internal/ingest/results"
	"github.com/webcomponents/custom-elements-everywhere/internal/ingest/summary"
	"github.com/webcomponents/custom-elements-everywhere/internal/scoring"
)

// BuildContext loads the three fixtures of every catalog library under
// root/libraries and returns one entry per library in catalog order. The
// first missing or malformed fixture aborts the whole build.
func BuildContext(root string, cat catalog.Catalog) ([]LibraryEntry, []InputDigest, error) {
	entries := make([]LibraryEntry, 0, len(cat.Libraries))
	digests := []InputDigest{}
	for _, lib := range cat.Libraries {
		entry, libDigests, err := buildEntry(root, lib)
		digests = append(digests, libDigests...)
		if err != nil {
			return nil, digests, err
		}
		entries = append(entries, entry)
	}
	return entries, digests, nil
}

func libraryDir(root, key string) string {
	return filepath.Join(root, "libraries", key)
}

func buildEntry(root string, lib catalog.Library) (LibraryEntry, []InputDigest, error) {
	dir := libraryDir(root, lib.Key)
	var digests []InputDigest

	res, d, err := getTestResults(lib.Key, filepath.Join(dir, filepath.FromSlash(resultsFile)))
	digests = append(digests, d)
	if err != nil {
		return LibraryEntry{}, digests, err
	}
	iss, d, err := getIssues(lib.Key, filepath.Join(dir, filepath.FromSlash(issuesFile)))
	digests = append(digests, d)
	if err != nil {
		return LibraryEntry{}, digests, err
	}
	sum, d, err := getSummary(lib.Key, filepath.Join(dir, filepath.FromSlash(summaryFile)))
	digests = append(digests, d)
	if err != nil {
		return LibraryEntry{}, digests, err
	}

	return LibraryEntry{
		Name:     lib.Key,
		FullName: lib.Name,
		Results:  res,
		Issues:   iss,
		Summary:  sum,
	}, digests, nil
}

func getTestResults(key, path string) (TestResult, InputDigest, error) {
	b, digest, err := readFixture(key, FixtureResults, "results_json", path)
	if err != nil {
		return TestResult{}, digest, err
	}
	r, err := results.Parse(path, b)
	if err != nil {
		return TestResult{}, digest, &FixtureError{Library: key, Fixture: FixtureResults, Path: path, Err: err}
	}
	s := TestSummary{
		Pass:     r.Pass,
		Fail:     r.Fail,
		Total:    r.Total,
		Skipped:  r.Skipped,
		Error:    r.Error,
		Basic:    supportGroup(r.Basic),
		Advanced: supportGroup(r.Advanced),
	}
	s.Score = scoring.Percentage(s.Counts())
	return TestResult{LibraryVersion: r.LibraryVersion, Summary: s}, digest, nil
}

func supportGroup(g *results.Group) *SupportGroup {
	if g == nil {
		return nil
	}
	return &SupportGroup{
		Total:  g.Total,
		Passed: g.Passed,
		Failed: g.Failed,
		Score:  scoring.Percentage(scoring.Counts{Pass: g.Passed, Fail: g.Failed, Total: g.Total}),
	}
}

func getIssues(key, path string) ([]Issue, InputDigest, error) {
	b, digest, err := readFixture(key, FixtureIssues, "issues_json", path)
	if err != nil {
		return nil, digest, err
	}
	parsed, err := issues.Parse(b)
	if err != nil {
		return nil, digest, &FixtureError{Library: key, Fixture: FixtureIssues, Path: path, Err: err}
	}
	out := make([]Issue, 0, len(parsed))
	for _, i := range parsed {
		out = append(out, Issue{Title: i.Title, URL: i.URL})
	}
	return out, digest, nil
}

func getSummary(key, path string) (Summary, InputDigest, error) {
	b, digest, err := readFixture(key, FixtureSummary, "summary_md", path)
	if err != nil {
		return Summary{}, digest, err
	}
	s, err := summary.Parse(path, b)
	if err != nil {
		return Summary{}, digest, &FixtureError{Library: key, Fixture: FixtureSummary, Path: path, Err: err}
	}
	// Content has been through summary.Sanitize.
	return Summary{Content: template.HTML(s.Content)}, digest, nil
}

func readFixture(key, fixture, kind, path string) ([]byte, InputDigest, error) {
	hash, b, err := fileSHA256(path)
	digest := InputDigest{Kind: kind, Library: key, Path: path, SHA256: hash, ReadOK: err == nil}
	if err != nil {
		return nil, digest, &FixtureError{Library: key, Fixture: fixture, Path: path, Missing: true, Err: err}
	}
	return b, digest, nil
}
