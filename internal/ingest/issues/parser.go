package issues

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

type Issue struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

type rawIssue struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	HTMLURL string `json:"html_url"`
}

// Parse reads an issues.json payload: a JSON array, possibly empty. Each entry
// needs a title and a link; GitHub API payloads name the link html_url.
func Parse(payload []byte) ([]Issue, error) {
	var root []json.RawMessage
	if err := json.Unmarshal(payload, &root); err != nil {
		return nil, fmt.Errorf("parse issues json: %w", err)
	}
	if root == nil {
		return nil, errors.New("parse issues json: top-level value must be an array")
	}
	out := make([]Issue, 0, len(root))
	for i, raw := range root {
		var r rawIssue
		if err := json.Unmarshal(raw, &r); err != nil {
			return nil, fmt.Errorf("parse issues json: entry %d: %w", i, err)
		}
		title := strings.TrimSpace(r.Title)
		if title == "" {
			return nil, fmt.Errorf("parse issues json: entry %d: title is required", i)
		}
		url := strings.TrimSpace(firstNonEmpty(r.URL, r.HTMLURL))
		if url == "" {
			return nil, fmt.Errorf("parse issues json: entry %d: url is required", i)
		}
		out = append(out, Issue{Title: title, URL: url})
	}
	return out, nil
}

func firstNonEmpty(v ...string) string {
	for _, s := range v {
		if strings.TrimSpace(s) != "" {
			return s
		}
	}
	return ""
}
