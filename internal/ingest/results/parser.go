package results

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Group is one section of the suite (basic or advanced support).
type Group struct {
	Total  int `json:"total"`
	Passed int `json:"passed"`
	Failed int `json:"failed"`
}

type Result struct {
	LibraryName    string
	LibraryVersion string
	Pass           int
	Fail           int
	Total          int
	Skipped        int
	Error          int
	Basic          *Group
	Advanced       *Group
	SourceFile     string
}

type report struct {
	Library libraryMeta `json:"library"`
	Summary summary     `json:"summary"`
}

type libraryMeta struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

type summary struct {
	Pass            *int            `json:"pass"`
	Fail            *int            `json:"fail"`
	Success         *int            `json:"success"`
	Failed          *int            `json:"failed"`
	Total           *int            `json:"total"`
	Skipped         json.RawMessage `json:"skipped"`
	Error           json.RawMessage `json:"error"`
	BasicSupport    *Group          `json:"basicSupport"`
	AdvancedSupport *Group          `json:"advancedSupport"`
}

// Parse reads a results.json payload. pass/fail fall back to the karma
// reporter's success/failed names when absent; counts are never adjusted.
// skipped and error are kept only when they are integers: karma reports
// error as a boolean. Other summary fields are ignored.
func Parse(path string, payload []byte) (Result, error) {
	if err := validateReportEnvelope(payload); err != nil {
		return Result{}, err
	}
	var r report
	if err := json.Unmarshal(payload, &r); err != nil {
		return Result{}, fmt.Errorf("parse results json: %w", err)
	}
	pass, ok := firstCount(r.Summary.Pass, r.Summary.Success)
	if !ok {
		return Result{}, errors.New("parse results json: summary.pass is required")
	}
	fail, ok := firstCount(r.Summary.Fail, r.Summary.Failed)
	if !ok {
		return Result{}, errors.New("parse results json: summary.fail is required")
	}
	if r.Summary.Total == nil {
		return Result{}, errors.New("parse results json: summary.total is required")
	}
	total := *r.Summary.Total
	skipped := optionalCount(r.Summary.Skipped)
	errored := optionalCount(r.Summary.Error)
	counts := []struct {
		name  string
		value int
	}{
		{"pass", pass},
		{"fail", fail},
		{"total", total},
		{"skipped", skipped},
		{"error", errored},
	}
	for _, c := range counts {
		if c.value < 0 {
			return Result{}, fmt.Errorf("parse results json: summary.%s cannot be negative", c.name)
		}
	}
	if err := validateGroup("basicSupport", r.Summary.BasicSupport); err != nil {
		return Result{}, err
	}
	if err := validateGroup("advancedSupport", r.Summary.AdvancedSupport); err != nil {
		return Result{}, err
	}
	return Result{
		LibraryName:    strings.TrimSpace(r.Library.Name),
		LibraryVersion: strings.TrimSpace(r.Library.Version),
		Pass:           pass,
		Fail:           fail,
		Total:          total,
		Skipped:        skipped,
		Error:          errored,
		Basic:          r.Summary.BasicSupport,
		Advanced:       r.Summary.AdvancedSupport,
		SourceFile:     path,
	}, nil
}

func validateGroup(name string, g *Group) error {
	if g == nil {
		return nil
	}
	if g.Total < 0 || g.Passed < 0 || g.Failed < 0 {
		return fmt.Errorf("parse results json: summary.%s counts cannot be negative", name)
	}
	return nil
}

func optionalCount(raw json.RawMessage) int {
	var n int
	if len(raw) == 0 || json.Unmarshal(raw, &n) != nil {
		return 0
	}
	return n
}

func firstCount(v ...*int) (int, bool) {
	for _, c := range v {
		if c != nil {
			return *c, true
		}
	}
	return 0, false
}

func validateReportEnvelope(payload []byte) error {
	var root map[string]json.RawMessage
	if err := json.Unmarshal(payload, &root); err != nil {
		return fmt.Errorf("parse results json: %w", err)
	}
	rawLibrary, ok := root["library"]
	if !ok {
		return errors.New("parse results json: missing top-level library")
	}
	var library map[string]json.RawMessage
	if err := json.Unmarshal(rawLibrary, &library); err != nil || library == nil {
		return errors.New("parse results json: library must be an object")
	}
	rawVersion, ok := library["version"]
	if !ok {
		return errors.New("parse results json: missing library.version")
	}
	var version string
	if err := json.Unmarshal(rawVersion, &version); err != nil {
		return errors.New("parse results json: library.version must be a string")
	}
	rawSummary, ok := root["summary"]
	if !ok {
		return errors.New("parse results json: missing top-level summary")
	}
	var s map[string]json.RawMessage
	if err := json.Unmarshal(rawSummary, &s); err != nil || s == nil {
		return errors.New("parse results json: summary must be an object")
	}
	return nil
}
