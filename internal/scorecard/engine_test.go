package scorecard

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRunWritesHTMLToStdout(t *testing.T) {
	root, cat := writeSampleTree(t)
	libs := writeCatalogYAML(t, t.TempDir(), cat)
	var stdout, console bytes.Buffer
	report, err := Run(Config{
		Root:          root,
		LibrariesPath: libs,
		Stdout:        &stdout,
		Console:       &console,
	})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(stdout.String(), "<!DOCTYPE html>") {
		t.Fatalf("expected html document on stdout, got %q", firstLine(stdout.String()))
	}
	if report.Overview.Libraries != 3 || report.Overview.Primary != 1 || report.Overview.Warning != 2 {
		t.Fatalf("unexpected overview: %+v", report.Overview)
	}
	if report.GeneratedAt != "1970-01-01T00:00:00Z" || report.RunID == "" {
		t.Fatalf("unexpected report meta: %s %s", report.GeneratedAt, report.RunID)
	}
	if !strings.Contains(console.String(), "react") || !strings.Contains(console.String(), "3 libraries: 1 above 75%, 2 above 50%, 0 at or below 50%") {
		t.Fatalf("unexpected console output:\n%s", console.String())
	}
}

func TestRunIsDeterministic(t *testing.T) {
	root, cat := writeSampleTree(t)
	libs := writeCatalogYAML(t, t.TempDir(), cat)
	var first, second bytes.Buffer
	r1, err := Run(Config{Root: root, LibrariesPath: libs, Stdout: &first})
	if err != nil {
		t.Fatal(err)
	}
	r2, err := Run(Config{Root: root, LibrariesPath: libs, Stdout: &second})
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(first.Bytes(), second.Bytes()) {
		t.Fatalf("html differs between identical runs")
	}
	if r1.RunID != r2.RunID {
		t.Fatalf("run id differs between identical runs: %s vs %s", r1.RunID, r2.RunID)
	}
}

func TestRunWritesArtifacts(t *testing.T) {
	root, cat := writeSampleTree(t)
	out := t.TempDir()
	libs := writeCatalogYAML(t, out, cat)
	htmlPath := filepath.Join(out, "site", "index.html")
	jsonPath := filepath.Join(out, "site", "results.json")
	_, err := Run(Config{
		Root:          root,
		LibrariesPath: libs,
		OutHTMLPath:   htmlPath,
		OutJSONPath:   jsonPath,
		Args:          []string{"cee-report", "--root", root, "--out", "index.html"},
	})
	if err != nil {
		t.Fatal(err)
	}

	raw, err := os.ReadFile(jsonPath)
	if err != nil {
		t.Fatal(err)
	}
	var decoded struct {
		RunID     string `json:"run_id"`
		Libraries []struct {
			Name    string `json:"name"`
			Results struct {
				Summary struct {
					Pass  int `json:"pass"`
					Total int `json:"total"`
				} `json:"summary"`
			} `json:"results"`
		} `json:"libraries"`
	}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatal(err)
	}
	if len(decoded.Libraries) != 3 || decoded.Libraries[1].Name != "vue" || decoded.Libraries[1].Results.Summary.Pass != 30 {
		t.Fatalf("unexpected json report: %s", raw)
	}

	sums, err := os.ReadFile(filepath.Join(out, "site", "checksums.sha256"))
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(sums)), "\n")
	if len(lines) != 2 || !strings.HasSuffix(lines[0], "  index.html") || !strings.HasSuffix(lines[1], "  results.json") {
		t.Fatalf("unexpected checksums:\n%s", sums)
	}

	events := readRunLog(t, filepath.Join(out, "site", "cee-report.run.log"))
	if len(events) == 0 || events[0]["event"] != "run.start" || events[len(events)-1]["event"] != "run.complete" {
		t.Fatalf("unexpected run log events: %v", events)
	}
	fields, _ := events[0]["fields"].(map[string]interface{})
	if cmd, _ := fields["command"].(string); !strings.HasPrefix(cmd, "cee-report --root") {
		t.Fatalf("expected quoted command line in run log, got %v", fields["command"])
	}
}

func TestRunMissingFixtureProducesNoOutput(t *testing.T) {
	root, cat := writeSampleTree(t)
	out := t.TempDir()
	libs := writeCatalogYAML(t, out, cat)
	if err := os.Remove(filepath.Join(root, "libraries", "angular", "meta", "issues.json")); err != nil {
		t.Fatal(err)
	}
	var stdout bytes.Buffer
	runLog := filepath.Join(out, "run.log")
	_, err := Run(Config{Root: root, LibrariesPath: libs, Stdout: &stdout, RunLogPath: runLog})
	if !errors.Is(err, ErrFixtureMissing) {
		t.Fatalf("expected missing fixture error, got %v", err)
	}
	if stdout.Len() != 0 {
		t.Fatalf("expected no html on failure, got %d bytes", stdout.Len())
	}
	events := readRunLog(t, runLog)
	last := events[len(events)-1]
	if last["event"] != "run.aggregate.error" || last["level"] != "ERROR" {
		t.Fatalf("unexpected last event: %v", last)
	}
}

func TestRunRenderFailureProducesNoOutput(t *testing.T) {
	root, cat := writeSampleTree(t)
	out := t.TempDir()
	libs := writeCatalogYAML(t, out, cat)
	tmpl := filepath.Join(out, "broken.tmpl")
	writeFixtureFile(t, tmpl, `{{range .Libraries}}{{.Missing}}{{end}}`)
	htmlPath := filepath.Join(out, "index.html")
	_, err := Run(Config{Root: root, LibrariesPath: libs, TemplatePath: tmpl, OutHTMLPath: htmlPath})
	if !errors.Is(err, ErrRender) {
		t.Fatalf("expected render error, got %v", err)
	}
	if _, statErr := os.Stat(htmlPath); !os.IsNotExist(statErr) {
		t.Fatalf("expected no html file on render failure")
	}
}

func TestRunLibrarySubset(t *testing.T) {
	root, cat := writeSampleTree(t)
	libs := writeCatalogYAML(t, t.TempDir(), cat)
	var stdout bytes.Buffer
	report, err := Run(Config{Root: root, LibrariesPath: libs, Libraries: []string{"angular", "react"}, Stdout: &stdout})
	if err != nil {
		t.Fatal(err)
	}
	if len(report.Libraries) != 2 || report.Libraries[0].Name != "react" || report.Libraries[1].Name != "angular" {
		t.Fatalf("unexpected subset: %+v", report.Libraries)
	}
	if strings.Contains(stdout.String(), `id="vue"`) {
		t.Fatalf("vue should not be rendered")
	}

	_, err = Run(Config{Root: root, LibrariesPath: libs, Libraries: []string{"ember"}, Stdout: &stdout})
	if err == nil || !strings.Contains(err.Error(), "unknown library ember") {
		t.Fatalf("expected unknown library error, got %v", err)
	}
}

func TestRunDefaultCatalogRequiresEveryLibrary(t *testing.T) {
	root, _ := writeSampleTree(t)
	var stdout bytes.Buffer
	_, err := Run(Config{Root: root, Stdout: &stdout})
	var fe *FixtureError
	if !errors.As(err, &fe) {
		t.Fatalf("expected fixture error, got %v", err)
	}
	// angular exists in the sample tree; angularjs is next in catalog order.
	if fe.Library != "angularjs" || !fe.Missing {
		t.Fatalf("unexpected failing library: %+v", fe)
	}
}

func readRunLog(t *testing.T, path string) []map[string]interface{} {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	var out []map[string]interface{}
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var ev map[string]interface{}
		if err := json.Unmarshal(sc.Bytes(), &ev); err != nil {
			t.Fatalf("bad run log line %q: %v", sc.Text(), err)
		}
		out = append(out, ev)
	}
	if err := sc.Err(); err != nil {
		t.Fatal(err)
	}
	return out
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
