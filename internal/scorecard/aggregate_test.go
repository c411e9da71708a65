package scorecard

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestBuildContextPreservesOrderAndCounts(t *testing.T) {
	root, cat := writeSampleTree(t)
	entries, digests, err := BuildContext(root, cat)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	for i, want := range []string{"react", "vue", "angular"} {
		if entries[i].Name != want {
			t.Fatalf("entry %d: expected %s, got %s", i, want, entries[i].Name)
		}
	}
	react := entries[0]
	if react.FullName != "React" || react.Results.LibraryVersion != "16.4.1" {
		t.Fatalf("unexpected react entry: %+v", react)
	}
	s := react.Results.Summary
	if s.Pass != 16 || s.Fail != 14 || s.Total != 30 {
		t.Fatalf("counts not copied verbatim: %+v", s)
	}
	if len(react.Issues) != 1 || react.Issues[0].URL != "https://github.com/facebook/react/issues/11347" {
		t.Fatalf("unexpected issues: %+v", react.Issues)
	}
	if !strings.Contains(string(entries[1].Summary.Content), "<strong>excellent</strong>") {
		t.Fatalf("summary markdown not rendered: %s", entries[1].Summary.Content)
	}
	if len(digests) != 9 {
		t.Fatalf("expected 9 input digests, got %d", len(digests))
	}
	for _, d := range digests {
		if !d.ReadOK || d.SHA256 == "" {
			t.Fatalf("unexpected digest: %+v", d)
		}
	}
}

func TestBuildContextScoreDerivedFromCounts(t *testing.T) {
	root, cat := writeSampleTree(t)
	entries, _, err := BuildContext(root, cat)
	if err != nil {
		t.Fatal(err)
	}
	want := map[string]int{"react": 53, "vue": 100, "angular": 60}
	for _, e := range entries {
		got := int(e.Results.Summary.Score + 0.5)
		if got != want[e.Name] {
			t.Fatalf("%s: expected score %d, got %v", e.Name, want[e.Name], e.Results.Summary.Score)
		}
	}
}

func TestBuildContextMissingFixtureFailsWholeRun(t *testing.T) {
	for _, tc := range []struct {
		file    string
		fixture string
	}{
		{"results/results.json", FixtureResults},
		{"meta/issues.json", FixtureIssues},
		{"meta/summary.md", FixtureSummary},
	} {
		t.Run(tc.fixture, func(t *testing.T) {
			root, cat := writeSampleTree(t)
			if err := os.Remove(filepath.Join(root, "libraries", "vue", filepath.FromSlash(tc.file))); err != nil {
				t.Fatal(err)
			}
			entries, _, err := BuildContext(root, cat)
			if err == nil {
				t.Fatalf("expected error for missing %s", tc.file)
			}
			if entries != nil {
				t.Fatalf("expected no partial entries, got %d", len(entries))
			}
			var fe *FixtureError
			if !errors.As(err, &fe) {
				t.Fatalf("expected FixtureError, got %T: %v", err, err)
			}
			if fe.Library != "vue" || fe.Fixture != tc.fixture || !fe.Missing {
				t.Fatalf("unexpected fixture error: %+v", fe)
			}
			if !errors.Is(err, ErrFixtureMissing) || !errors.Is(err, fs.ErrNotExist) {
				t.Fatalf("expected missing sentinel and fs.ErrNotExist: %v", err)
			}
			if errors.Is(err, ErrFixtureMalformed) {
				t.Fatalf("missing fixture must not match malformed: %v", err)
			}
		})
	}
}

func TestBuildContextMalformedFixture(t *testing.T) {
	cases := []struct {
		name    string
		file    string
		content string
		fixture string
		want    string
	}{
		{"results_truncated", "results/results.json", `{"library":`, FixtureResults, "parse results json"},
		{"results_no_summary", "results/results.json", `{"library":{"version":"1"}}`, FixtureResults, "missing top-level summary"},
		{"issues_object", "meta/issues.json", `{}`, FixtureIssues, "parse issues json"},
		{"summary_binary", "meta/summary.md", "\xff\xfe", FixtureSummary, "not valid UTF-8"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			root, cat := writeSampleTree(t)
			writeFixtureFile(t, filepath.Join(root, "libraries", "angular", filepath.FromSlash(tc.file)), tc.content)
			_, _, err := BuildContext(root, cat)
			if err == nil {
				t.Fatalf("expected error")
			}
			var fe *FixtureError
			if !errors.As(err, &fe) || fe.Fixture != tc.fixture || fe.Library != "angular" || fe.Missing {
				t.Fatalf("unexpected error: %v", err)
			}
			if !errors.Is(err, ErrFixtureMalformed) {
				t.Fatalf("expected malformed sentinel: %v", err)
			}
			if !strings.Contains(err.Error(), tc.want) || !strings.Contains(err.Error(), "library angular") {
				t.Fatalf("unexpected error text: %v", err)
			}
		})
	}
}

func TestBuildContextMissingLibraryDirectory(t *testing.T) {
	root, cat := writeSampleTree(t)
	if err := os.RemoveAll(filepath.Join(root, "libraries", "react")); err != nil {
		t.Fatal(err)
	}
	_, digests, err := BuildContext(root, cat)
	if !errors.Is(err, ErrFixtureMissing) {
		t.Fatalf("expected missing fixture, got %v", err)
	}
	if len(digests) != 1 || digests[0].ReadOK {
		t.Fatalf("expected one failed digest, got %+v", digests)
	}
}
