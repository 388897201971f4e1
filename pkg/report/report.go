// Package report renders the discovered build-dependency set as the text
// written to the output file or stdout.
package report

import (
	"fmt"
	"strings"
	"time"
)

// GeneratorName appears in the header comment of every report.
const GeneratorName = "pipbuilddeps"

// Comment lines emitted for empty and partial results.
const (
	emptyPlaceholder = "# <no build dependencies found>"
	partialWarning   = "# <pip download failed, output may be incomplete!>"
)

// Render formats deps as line-joined text: one header comment with the
// generator name and timestamp, one line per dependency (already sorted
// by the scanner), a placeholder comment if the set is empty, and a
// trailing warning comment if the result may be incomplete.
//
// The returned text has no trailing newline; the writer adds one.
func Render(deps []string, partial bool, now time.Time) string {
	lines := []string{
		fmt.Sprintf("# Generated by %s on %s", GeneratorName, now.Format("Jan 02 2006 15:04:05")),
	}
	if len(deps) > 0 {
		lines = append(lines, deps...)
	} else {
		lines = append(lines, emptyPlaceholder)
	}
	if partial {
		lines = append(lines, partialWarning)
	}
	return strings.Join(lines, "\n")
}
