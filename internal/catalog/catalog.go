package catalog

import (
	"fmt"
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

const SchemaVersion = "1.0"

type Library struct {
	Key  string
	Name string
}

type Catalog struct {
	SchemaVersion string
	Libraries     []Library
}

// Default is the set of libraries published on the comparison page, in page order.
func Default() Catalog {
	return Catalog{
		SchemaVersion: SchemaVersion,
		Libraries: []Library{
			{Key: "angular", Name: "Angular"},
			{Key: "angularjs", Name: "AngularJS (1.x)"},
			{Key: "dio", Name: "DIO"},
			{Key: "dojo", Name: "Dojo"},
			{Key: "hybrids", Name: "hybrids"},
			{Key: "hyperhtml", Name: "hyperHTML"},
			{Key: "litelement", Name: "Lit Element"},
			{Key: "mithril", Name: "Mithril"},
			{Key: "omi", Name: "Omi"},
			{Key: "polymer", Name: "Polymer"},
			{Key: "preact", Name: "Preact"},
			{Key: "react", Name: "React"},
			{Key: "riot", Name: "Riot.js"},
			{Key: "skate", Name: "Skate w/ Preact"},
			{Key: "stencil", Name: "Stencil"},
			{Key: "surplus", Name: "Surplus"},
			{Key: "svelte", Name: "Svelte"},
			{Key: "vue", Name: "Vue"},
		},
	}
}

func Validate(c Catalog) []string {
	var errs []string
	if c.SchemaVersion != SchemaVersion {
		errs = append(errs, "unsupported libraries schema_version")
	}
	if len(c.Libraries) == 0 {
		errs = append(errs, "libraries cannot be empty")
	}
	seen := map[string]bool{}
	for i, lib := range c.Libraries {
		key := strings.TrimSpace(lib.Key)
		if key == "" {
			errs = append(errs, fmt.Sprintf("libraries[%d].key required", i))
			continue
		}
		if key != lib.Key || strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
			errs = append(errs, fmt.Sprintf("libraries[%d].key %q is not a plain directory name", i, lib.Key))
		}
		if strings.TrimSpace(lib.Name) == "" {
			errs = append(errs, fmt.Sprintf("libraries[%d].name required", i))
		}
		if seen[key] {
			errs = append(errs, fmt.Sprintf("libraries[%d].key %q duplicated", i, key))
		}
		seen[key] = true
	}
	return errs
}

func (c Catalog) Keys() []string {
	out := make([]string, 0, len(c.Libraries))
	for _, lib := range c.Libraries {
		out = append(out, lib.Key)
	}
	return out
}

func (c Catalog) DisplayName(key string) (string, bool) {
	i := slices.IndexFunc(c.Libraries, func(l Library) bool { return l.Key == key })
	if i < 0 {
		return "", false
	}
	return c.Libraries[i].Name, true
}

// Select narrows the catalog to keys, keeping catalog order. Blank keys are
// skipped; a selection with no keys returns the catalog unchanged.
func (c Catalog) Select(keys []string) (Catalog, error) {
	want := map[string]bool{}
	for _, k := range keys {
		if k = strings.TrimSpace(k); k != "" {
			want[k] = true
		}
	}
	if len(want) == 0 {
		return c, nil
	}
	out := Catalog{SchemaVersion: c.SchemaVersion}
	for _, lib := range c.Libraries {
		if want[lib.Key] {
			out.Libraries = append(out.Libraries, lib)
			delete(want, lib.Key)
		}
	}
	if len(want) > 0 {
		unknown := maps.Keys(want)
		slices.Sort(unknown)
		return Catalog{}, fmt.Errorf("unknown library %s", strings.Join(unknown, ", "))
	}
	return out, nil
}
