// Package convert decides whether a single file needs its line endings
// rewritten and performs the rewrite.
package convert

import (
	"bytes"
	"fmt"

	"github.com/CageChen/eolconv/internal/eol"
	mfs "github.com/CageChen/eolconv/internal/fs"
	"github.com/CageChen/eolconv/internal/sniff"
)

// Direction is the requested target style.
type Direction int

// Conversion directions.
const (
	ToUnix Direction = iota + 1
	ToDos
)

// String returns the command name for the direction.
func (d Direction) String() string {
	switch d {
	case ToUnix:
		return "dos2unix"
	case ToDos:
		return "unix2dos"
	default:
		return "unknown"
	}
}

// ParseDirection maps a command name to a Direction.
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "dos2unix":
		return ToUnix, nil
	case "unix2dos":
		return ToDos, nil
	default:
		return 0, fmt.Errorf("unknown direction %q: expected dos2unix or unix2dos", s)
	}
}

// Verdict is the per-file outcome of Convert.
type Verdict int

// Per-file verdicts.
const (
	Empty Verdict = iota + 1
	Binary
	Mixed
	AlreadyCorrect
	Rewritten
)

func (v Verdict) String() string {
	switch v {
	case Empty:
		return "empty"
	case Binary:
		return "binary"
	case Mixed:
		return "mixed"
	case AlreadyCorrect:
		return "already-correct"
	case Rewritten:
		return "rewritten"
	default:
		return "unknown"
	}
}

var (
	crlf = []byte("\r\n")
	lf   = []byte("\n")
)

// IOError records a failed file operation.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// Converter applies the skip rules and rewrites files through a FileSystem.
type Converter struct {
	fs     mfs.FileSystem
	dryRun bool
}

// Option configures a Converter.
type Option func(*Converter)

// WithDryRun makes Convert report Rewritten without touching the file.
func WithDryRun(dryRun bool) Option {
	return func(c *Converter) { c.dryRun = dryRun }
}

// New creates a Converter over fsys.
func New(fsys mfs.FileSystem, opts ...Option) *Converter {
	c := &Converter{fs: fsys}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Convert classifies path and rewrites it when its uniform style differs
// from dir. The returned style is meaningful only once the file got past the
// empty and binary checks.
func (c *Converter) Convert(path string, dir Direction) (Verdict, eol.Style, error) {
	info, err := c.fs.Stat(path)
	if err != nil {
		return 0, 0, &IOError{Op: "stat", Path: path, Err: err}
	}
	if info.Size == 0 {
		return Empty, 0, nil
	}

	isBin, err := sniff.SniffFile(c.fs, path)
	if err != nil {
		return 0, 0, &IOError{Op: "read", Path: path, Err: err}
	}
	if isBin {
		return Binary, 0, nil
	}

	style, err := eol.ClassifyFile(c.fs, path)
	if err != nil {
		return 0, 0, &IOError{Op: "read", Path: path, Err: err}
	}
	switch {
	case style == eol.Mixed:
		return Mixed, style, nil
	case dir == ToDos && style == eol.AllDos:
		return AlreadyCorrect, style, nil
	case dir == ToUnix && style == eol.AllUnix:
		return AlreadyCorrect, style, nil
	}

	data, err := c.fs.ReadFile(path)
	if err != nil {
		return 0, style, &IOError{Op: "read", Path: path, Err: err}
	}
	out := Rewrite(data, dir)
	if bytes.Equal(out, data) {
		// A lone unterminated line counts as DOS but has no CRLF to strip.
		return AlreadyCorrect, styleOf(dir), nil
	}
	if c.dryRun {
		return Rewritten, style, nil
	}
	if err := c.fs.WriteFile(path, out); err != nil {
		return 0, style, &IOError{Op: "write", Path: path, Err: err}
	}
	return Rewritten, style, nil
}

// styleOf names the style of a file that is already in the form dir asks for.
func styleOf(dir Direction) eol.Style {
	if dir == ToDos {
		return eol.AllDos
	}
	return eol.AllUnix
}

// Rewrite substitutes terminators in data. ToDos turns every LF into CRLF,
// so callers must rule out mixed input first.
func Rewrite(data []byte, dir Direction) []byte {
	if dir == ToDos {
		return bytes.ReplaceAll(data, lf, crlf)
	}
	return bytes.ReplaceAll(data, crlf, lf)
}
