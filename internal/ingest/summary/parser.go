package summary

import (
	"bytes"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	gmhtml "github.com/yuin/goldmark/renderer/html"
)

type Summary struct {
	Content    string
	SourceFile string
}

var markdown = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	// Raw HTML is let through here and stripped down by Sanitize.
	goldmark.WithRendererOptions(gmhtml.WithUnsafe()),
)

// Parse converts a summary.md payload into sanitized HTML. An empty file is
// a valid, empty summary.
func Parse(path string, payload []byte) (Summary, error) {
	if !utf8.Valid(payload) {
		return Summary{}, errors.New("parse summary markdown: content is not valid UTF-8")
	}
	var buf bytes.Buffer
	if err := markdown.Convert(payload, &buf); err != nil {
		return Summary{}, fmt.Errorf("parse summary markdown: %w", err)
	}
	content, err := Sanitize(buf.String())
	if err != nil {
		return Summary{}, fmt.Errorf("sanitize summary html: %w", err)
	}
	return Summary{Content: content, SourceFile: path}, nil
}
