// Package sniff classifies files as text or binary from a short prefix.
package sniff

import (
	"io"

	mfs "github.com/CageChen/eolconv/internal/fs"
)

// PrefixLen is the number of leading bytes inspected.
const PrefixLen = 1024

// textBytes marks every byte value allowed in a text file: BEL, BS, TAB, LF,
// FF, CR, ESC and everything from 0x20 up except DEL.
var textBytes = func() (t [256]bool) {
	for _, b := range []byte{0x07, 0x08, 0x09, 0x0a, 0x0c, 0x0d, 0x1b} {
		t[b] = true
	}
	for b := 0x20; b <= 0xff; b++ {
		t[b] = true
	}
	t[0x7f] = false
	return t
}()

// IsBinary reports whether data contains a byte outside the text set. Only
// the first PrefixLen bytes are considered.
func IsBinary(data []byte) bool {
	if len(data) > PrefixLen {
		data = data[:PrefixLen]
	}
	for _, b := range data {
		if !textBytes[b] {
			return true
		}
	}
	return false
}

// SniffFile reads up to PrefixLen bytes of path and reports whether they look binary.
func SniffFile(fsys mfs.FileSystem, path string) (bool, error) {
	f, err := fsys.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	buf := make([]byte, PrefixLen)
	n, err := io.ReadFull(f, buf)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return false, err
	}
	return IsBinary(buf[:n]), nil
}
