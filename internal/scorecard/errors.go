package scorecard

import (
	"errors"
	"fmt"
)

var (
	ErrFixtureMissing   = errors.New("fixture missing")
	ErrFixtureMalformed = errors.New("fixture malformed")
	ErrRender           = errors.New("render failed")
)

// FixtureError reports a per-library input that could not be read or parsed.
// It matches ErrFixtureMissing or ErrFixtureMalformed under errors.Is as well
// as the underlying cause.
type FixtureError struct {
	Library string
	Fixture string
	Path    string
	Missing bool
	Err     error
}

func (e *FixtureError) Error() string {
	return fmt.Sprintf("library %s: %s: %s: %v", e.Library, e.kind(), e.Path, e.Err)
}

func (e *FixtureError) Unwrap() []error {
	if e.Missing {
		return []error{ErrFixtureMissing, e.Err}
	}
	return []error{ErrFixtureMalformed, e.Err}
}

func (e *FixtureError) kind() string {
	if e.Missing {
		return e.Fixture + " fixture missing"
	}
	return e.Fixture + " fixture malformed"
}

type RenderError struct {
	Template string
	Err      error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render %s: %v", e.Template, e.Err)
}

func (e *RenderError) Unwrap() []error {
	return []error{ErrRender, e.Err}
}
