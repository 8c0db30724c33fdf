// Package report turns walker results into status lines on the console and
// into run reports (YAML, Markdown or HTML).
package report

import (
	"fmt"
	"io"

	"github.com/CageChen/eolconv/internal/eol"
	"github.com/CageChen/eolconv/internal/walker"
)

// Console prints one status line per result.
type Console struct {
	w   io.Writer
	ext string
}

// NewConsole creates a Console writing to w. ext is the extension filter in
// effect, used to word wrong-extension skips.
func NewConsole(w io.Writer, ext string) *Console {
	return &Console{w: w, ext: ext}
}

// Header prints the run direction, before any status line.
func (c *Console) Header(direction string) {
	_, _ = fmt.Fprintf(c.w, "DIRECTION: %s\n", direction)
}

// Record implements walker.Sink.
func (c *Console) Record(r walker.Result) {
	_, _ = fmt.Fprintf(c.w, "%s\t[..%s..]\n", r.Path, Status(r, c.ext))
}

// Status words a result the way the console shows it.
func Status(r walker.Result, ext string) string {
	switch r.Outcome {
	case walker.Touched:
		return "touched"
	case walker.SkippedBinary:
		return "skipped: binary"
	case walker.SkippedEmpty:
		return "skipped: zero-size"
	case walker.SkippedMixed:
		return "skipped: mixed file"
	case walker.SkippedAlreadyCorrect:
		if r.Style == eol.AllDos {
			return "skipped: already DOS EOLs"
		}
		return "skipped: already non-DOS EOLs"
	case walker.SkippedExcluded:
		return "skipped: excluded"
	case walker.SkippedWrongExtension:
		return fmt.Sprintf("skipped: not *.%s", ext)
	case walker.SkippedNotRegular:
		return "skipped: not a regular file"
	case walker.Directory:
		return "directory"
	case walker.Failed:
		return fmt.Sprintf("error: %v", r.Err)
	default:
		return r.Outcome.String()
	}
}
