package scorecard

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/webcomponents/custom-elements-everywhere/internal/catalog"
)

type fixture struct {
	key     string
	name    string
	version string
	pass    int
	fail    int
	total   int
	issues  string
	summary string
}

func writeFixtureFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func writeLibrary(t *testing.T, root string, f fixture) {
	t.Helper()
	dir := filepath.Join(root, "libraries", f.key)
	writeFixtureFile(t, filepath.Join(dir, "results", "results.json"), fmt.Sprintf(
		`{"library":{"name":%q,"version":%q},"summary":{"pass":%d,"fail":%d,"total":%d}}`,
		f.key, f.version, f.pass, f.fail, f.total))
	issues := f.issues
	if issues == "" {
		issues = "[]"
	}
	writeFixtureFile(t, filepath.Join(dir, "meta", "issues.json"), issues)
	writeFixtureFile(t, filepath.Join(dir, "meta", "summary.md"), f.summary)
}

func sampleFixtures() []fixture {
	return []fixture{
		{key: "react", name: "React", version: "16.4.1", pass: 16, fail: 14, total: 30,
			issues:  `[{"title":"Support custom element properties","url":"https://github.com/facebook/react/issues/11347"}]`,
			summary: "React passes all basic tests.\n"},
		{key: "vue", name: "Vue", version: "2.5.16", pass: 30, fail: 0, total: 30,
			summary: "Vue has **excellent** support.\n"},
		{key: "angular", name: "Angular", version: "6.0.2", pass: 18, fail: 12, total: 30,
			summary: "Angular passes most tests.\n"},
	}
}

// writeSampleTree writes the sample fixtures and returns the root and a
// catalog listing them in the order given.
func writeSampleTree(t *testing.T) (string, catalog.Catalog) {
	t.Helper()
	root := t.TempDir()
	cat := catalog.Catalog{SchemaVersion: catalog.SchemaVersion}
	for _, f := range sampleFixtures() {
		writeLibrary(t, root, f)
		cat.Libraries = append(cat.Libraries, catalog.Library{Key: f.key, Name: f.name})
	}
	return root, cat
}

func writeCatalogYAML(t *testing.T, dir string, cat catalog.Catalog) string {
	t.Helper()
	content := "schema_version: \"1.0\"\nlibraries:\n"
	for _, l := range cat.Libraries {
		content += fmt.Sprintf("  - key: %s\n    name: %q\n", l.Key, l.Name)
	}
	p := filepath.Join(dir, "libraries.yaml")
	writeFixtureFile(t, p, content)
	return p
}
