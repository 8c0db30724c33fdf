// Package walker visits the files selected by a PathSpec, applies the
// exclusion and extension filters, and hands the remaining files to the
// converter.
package walker

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/CageChen/eolconv/internal/config"
	"github.com/CageChen/eolconv/internal/convert"
	"github.com/CageChen/eolconv/internal/ctxlog"
	"github.com/CageChen/eolconv/internal/eol"
	mfs "github.com/CageChen/eolconv/internal/fs"
	"github.com/CageChen/eolconv/internal/pathspec"
)

// Outcome is the status of one visited entry.
type Outcome int

// Entry outcomes.
const (
	Touched Outcome = iota + 1
	SkippedBinary
	SkippedEmpty
	SkippedMixed
	SkippedAlreadyCorrect
	SkippedExcluded
	SkippedWrongExtension
	SkippedNotRegular
	Directory
	Failed
)

// Outcomes lists every outcome in display order.
var Outcomes = []Outcome{
	Touched,
	SkippedBinary,
	SkippedEmpty,
	SkippedMixed,
	SkippedAlreadyCorrect,
	SkippedExcluded,
	SkippedWrongExtension,
	SkippedNotRegular,
	Directory,
	Failed,
}

func (o Outcome) String() string {
	switch o {
	case Touched:
		return "touched"
	case SkippedBinary:
		return "skipped-binary"
	case SkippedEmpty:
		return "skipped-empty"
	case SkippedMixed:
		return "skipped-mixed"
	case SkippedAlreadyCorrect:
		return "skipped-already-correct"
	case SkippedExcluded:
		return "skipped-excluded"
	case SkippedWrongExtension:
		return "skipped-wrong-extension"
	case SkippedNotRegular:
		return "skipped-not-regular"
	case Directory:
		return "directory"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Result is emitted once for every visited entry.
type Result struct {
	Path    string
	Outcome Outcome
	// Style is set when HasStyle is true, i.e. the file got as far as EOL
	// classification.
	Style    eol.Style
	HasStyle bool
	Err      error
}

// Sink receives results in visit order.
type Sink interface {
	Record(Result)
}

// SinkFunc adapts a function to a Sink.
type SinkFunc func(Result)

// Record calls f(r).
func (f SinkFunc) Record(r Result) { f(r) }

// Summary counts results per outcome.
type Summary map[Outcome]int

// Total returns the number of visited entries.
func (s Summary) Total() int {
	n := 0
	for _, c := range s {
		n += c
	}
	return n
}

// Walker walks a PathSpec and converts the files it selects.
type Walker struct {
	fs    mfs.FileSystem
	conv  *convert.Converter
	opts  *config.Options
	dir   convert.Direction
	sinks []Sink
}

// New creates a Walker. Results go to every sink in order.
func New(fsys mfs.FileSystem, conv *convert.Converter, opts *config.Options, dir convert.Direction, sinks ...Sink) *Walker {
	return &Walker{
		fs:    fsys,
		conv:  conv,
		opts:  opts,
		dir:   dir,
		sinks: sinks,
	}
}

// frame is one directory whose entries are being visited.
type frame struct {
	dir     string
	entries []mfs.DirEntry
	next    int
}

// Walk visits spec depth-first. Per-entry failures are reported as Failed
// results and do not stop the walk; only an unreadable root or a cancelled
// context returns an error.
func (w *Walker) Walk(ctx context.Context, spec pathspec.PathSpec) (Summary, error) {
	log := ctxlog.FromContext(ctx)
	summary := make(Summary)

	if spec.Mode == pathspec.ExactFile {
		if w.opts.IsExcluded(spec.Root) {
			w.emit(summary, Result{Path: spec.Root, Outcome: SkippedExcluded})
		} else {
			w.visitFile(ctx, summary, spec.Root)
		}
		return summary, nil
	}

	entries, err := w.fs.ReadDir(spec.Root)
	if err != nil {
		return summary, fmt.Errorf("list %s: %w", spec.Root, err)
	}
	log.Debug("walking", "root", spec.Root, "mode", spec.Mode.String(), "ext", spec.Ext)

	stack := []*frame{{dir: spec.Root, entries: entries}}
	for len(stack) > 0 {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		top := stack[len(stack)-1]
		if top.next >= len(top.entries) {
			stack = stack[:len(stack)-1]
			continue
		}
		entry := top.entries[top.next]
		top.next++
		path := filepath.Join(top.dir, entry.Name)

		switch {
		case w.opts.IsExcluded(entry.Name):
			w.emit(summary, Result{Path: path, Outcome: SkippedExcluded})

		case entry.IsDir:
			children, err := w.fs.ReadDir(path)
			if err != nil {
				w.emit(summary, Result{
					Path:    path,
					Outcome: Failed,
					Err:     &convert.IOError{Op: "list", Path: path, Err: err},
				})
				continue
			}
			w.emit(summary, Result{Path: path, Outcome: Directory})
			log.Debug("descending", "dir", path, "entries", len(children))
			stack = append(stack, &frame{dir: path, entries: children})

		case !entry.IsRegular():
			w.emit(summary, Result{Path: path, Outcome: SkippedNotRegular})

		case spec.Mode == pathspec.WildcardExt && filepath.Ext(entry.Name) != "."+spec.Ext:
			w.emit(summary, Result{Path: path, Outcome: SkippedWrongExtension})

		default:
			w.visitFile(ctx, summary, path)
		}
	}
	return summary, nil
}

func (w *Walker) visitFile(ctx context.Context, summary Summary, path string) {
	verdict, style, err := w.conv.Convert(path, w.dir)
	if err != nil {
		ctxlog.FromContext(ctx).Debug("convert failed", "path", path, "error", err)
		w.emit(summary, Result{Path: path, Outcome: Failed, Err: err})
		return
	}

	r := Result{Path: path, Outcome: outcomeFor(verdict)}
	switch verdict {
	case convert.Mixed, convert.AlreadyCorrect, convert.Rewritten:
		r.Style = style
		r.HasStyle = true
	}
	w.emit(summary, r)
}

func (w *Walker) emit(summary Summary, r Result) {
	summary[r.Outcome]++
	for _, s := range w.sinks {
		s.Record(r)
	}
}

func outcomeFor(v convert.Verdict) Outcome {
	switch v {
	case convert.Empty:
		return SkippedEmpty
	case convert.Binary:
		return SkippedBinary
	case convert.Mixed:
		return SkippedMixed
	case convert.AlreadyCorrect:
		return SkippedAlreadyCorrect
	case convert.Rewritten:
		return Touched
	default:
		return Failed
	}
}
