// Package pathspec parses the target argument into a traversal mode, a root
// and an optional extension filter.
package pathspec

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	mfs "github.com/CageChen/eolconv/internal/fs"
)

// ErrInvalidPath is returned when the argument is neither an existing regular
// file nor one of the two wildcard forms.
var ErrInvalidPath = errors.New("file not found or malformed wildcard")

// Mode selects how the walker visits the target.
type Mode int

// Traversal modes.
const (
	ExactFile Mode = iota + 1
	WildcardAny
	WildcardExt
)

func (m Mode) String() string {
	switch m {
	case ExactFile:
		return "file"
	case WildcardAny:
		return "wildcard"
	case WildcardExt:
		return "wildcard-ext"
	default:
		return "unknown"
	}
}

// PathSpec is the parsed form of the target argument.
type PathSpec struct {
	Mode Mode
	// Root is the file itself in ExactFile mode, otherwise the directory to walk.
	Root string
	// Ext is the extension without the dot, set only in WildcardExt mode.
	Ext string
}

func (p PathSpec) String() string {
	switch p.Mode {
	case WildcardAny:
		return filepath.Join(p.Root, "*")
	case WildcardExt:
		return filepath.Join(p.Root, "*."+p.Ext)
	default:
		return p.Root
	}
}

var extPattern = regexp.MustCompile(`^(.*)\*\.([A-Za-z]+)$`)

func isSeparator(c byte) bool {
	return c == '/' || c == filepath.Separator
}

// splitDir reports whether prefix is empty or ends with a separator, and
// returns the directory it names.
func splitDir(prefix string) (string, bool) {
	if prefix == "" {
		return ".", true
	}
	if !isSeparator(prefix[len(prefix)-1]) {
		return "", false
	}
	return filepath.Clean(prefix), true
}

// Resolve turns raw into a PathSpec. Wildcard roots must be existing
// directories; a bare directory without a wildcard is rejected.
func Resolve(raw string, fsys mfs.FileSystem) (PathSpec, error) {
	if raw == "" {
		return PathSpec{}, fmt.Errorf("%w: empty path", ErrInvalidPath)
	}

	if strings.HasSuffix(raw, "*") {
		if dir, ok := splitDir(raw[:len(raw)-1]); ok {
			return withDirRoot(PathSpec{Mode: WildcardAny, Root: dir}, raw, fsys)
		}
	}

	if m := extPattern.FindStringSubmatch(raw); m != nil {
		if dir, ok := splitDir(m[1]); ok {
			return withDirRoot(PathSpec{Mode: WildcardExt, Root: dir, Ext: m[2]}, raw, fsys)
		}
	}

	info, err := fsys.Stat(raw)
	if err == nil && info.IsRegular() {
		return PathSpec{Mode: ExactFile, Root: raw}, nil
	}
	return PathSpec{}, fmt.Errorf("%w: %s", ErrInvalidPath, raw)
}

func withDirRoot(spec PathSpec, raw string, fsys mfs.FileSystem) (PathSpec, error) {
	info, err := fsys.Stat(spec.Root)
	if err != nil || !info.IsDir {
		return PathSpec{}, fmt.Errorf("%w: %s", ErrInvalidPath, raw)
	}
	return spec, nil
}
