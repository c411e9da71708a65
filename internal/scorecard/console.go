package scorecard

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/webcomponents/custom-elements-everywhere/internal/scoring"
)

var consolePrimaryColor = color.New(color.FgGreen)
var consoleWarningColor = color.New(color.FgYellow)
var consoleDangerColor = color.New(color.FgRed)
var consoleErrorColor = color.New(color.FgRed, color.Bold)
var consoleFaintColor = color.New(color.Faint)

func colorForClass(class string) *color.Color {
	switch class {
	case scoring.ClassPrimary:
		return consolePrimaryColor
	case scoring.ClassWarning:
		return consoleWarningColor
	default:
		return consoleDangerColor
	}
}

// PrintScores writes one colored line per library and a totals line.
func PrintScores(w io.Writer, entries []LibraryEntry) {
	if w == nil {
		return
	}
	width := 0
	for _, e := range entries {
		if len(e.Name) > width {
			width = len(e.Name)
		}
	}
	for _, e := range entries {
		s := e.Results.Summary
		_, _ = colorForClass(scoring.WarningLevel(s.Score)).Fprintf(w, "  %-*s %3d%%  %d/%d passed",
			width, e.Name, scoring.Rounded(s.Score), s.Pass, s.Total)
		if v := strings.TrimSpace(e.Results.LibraryVersion); v != "" {
			_, _ = consoleFaintColor.Fprintf(w, "  (%s)", v)
		}
		fmt.Fprintln(w)
	}
	ov := overviewOf(entries)
	fmt.Fprintf(w, "%d libraries: %d above 75%%, %d above 50%%, %d at or below 50%%\n",
		ov.Libraries, ov.Primary, ov.Warning, ov.Danger)
}

func PrintError(w io.Writer, err error) {
	if w == nil || err == nil {
		return
	}
	lines := strings.Split(err.Error(), "\n")
	_, _ = consoleErrorColor.Fprintf(w, "cee-report error: %s\n", lines[0])
	for _, line := range lines[1:] {
		_, _ = consoleErrorColor.Fprintf(w, "  %s\n", line)
	}
}
