// Package fs provides the file system abstraction the converter reads and rewrites through.
package fs

import (
	"io"
	iofs "io/fs"
	"time"
)

// FileInfo holds file metadata.
type FileInfo struct {
	Name    string
	IsDir   bool
	Size    int64
	Mode    iofs.FileMode
	ModTime time.Time
}

// IsRegular reports whether the entry is a plain file.
func (i FileInfo) IsRegular() bool {
	return i.Mode.IsRegular()
}

// DirEntry represents a single directory entry. Type holds the mode type bits
// of the entry itself; symlinks are not followed.
type DirEntry struct {
	Name  string
	IsDir bool
	Type  iofs.FileMode
}

// IsRegular reports whether the entry is a plain file.
func (e DirEntry) IsRegular() bool {
	return e.Type.IsRegular()
}

// FileSystem abstracts file operations so the walker and converter can be
// exercised against a temporary tree or the real disk alike.
type FileSystem interface {
	Open(path string) (io.ReadCloser, error)
	ReadFile(path string) ([]byte, error)
	Stat(path string) (FileInfo, error)
	ReadDir(path string) ([]DirEntry, error)
	// WriteFile replaces the content of an existing file. Implementations
	// must never leave a partially written file behind.
	WriteFile(path string, data []byte) error
}
