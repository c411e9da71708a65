package scorecard

import (
	"fmt"
	"sort"
	"strings"

	"github.com/webcomponents/custom-elements-everywhere/internal/catalog"
)

type librariesFile struct {
	SchemaVersion string         `json:"schema_version"`
	Libraries     []libraryEntry `json:"libraries"`
}

type libraryEntry struct {
	Key  string `json:"key"`
	Name string `json:"name"`
}

// LoadCatalog returns the built-in catalog, or the one in cfg.LibrariesPath,
// narrowed to cfg.Libraries.
func LoadCatalog(cfg Config) (catalog.Catalog, []InputDigest, error) {
	cat := catalog.Default()
	var digests []InputDigest
	if strings.TrimSpace(cfg.LibrariesPath) != "" {
		var f librariesFile
		_, hash, err := parseYAML(cfg.LibrariesPath, kindLibraries, &f)
		digests = append(digests, InputDigest{Kind: "libraries_yaml", Path: cfg.LibrariesPath, SHA256: hash, ReadOK: err == nil})
		if err != nil {
			return catalog.Catalog{}, digests, fmt.Errorf("libraries load failed: %w", err)
		}
		cat = catalog.Catalog{SchemaVersion: f.SchemaVersion}
		for _, l := range f.Libraries {
			cat.Libraries = append(cat.Libraries, catalog.Library{Key: l.Key, Name: l.Name})
		}
	}
	if errs := catalog.Validate(cat); len(errs) > 0 {
		sort.Strings(errs)
		return catalog.Catalog{}, digests, fmt.Errorf("invalid library catalog: %s", strings.Join(errs, "; "))
	}
	sel, err := cat.Select(cfg.Libraries)
	if err != nil {
		return catalog.Catalog{}, digests, err
	}
	return sel, digests, nil
}
