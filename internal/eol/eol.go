// Package eol determines the dominant line-ending style of a file.
package eol

import (
	"bytes"
	"io"

	mfs "github.com/CageChen/eolconv/internal/fs"
)

// Style is the line-ending style of a whole file.
type Style int

// Line-ending styles.
const (
	AllUnix Style = iota
	AllDos
	Mixed
)

func (s Style) String() string {
	switch s {
	case AllUnix:
		return "unix"
	case AllDos:
		return "dos"
	case Mixed:
		return "mixed"
	default:
		return "unknown"
	}
}

// chunkSize bounds memory use while scanning.
const chunkSize = 32 * 1024

// Counts holds the raw terminator statistics of a byte stream.
type Counts struct {
	// Lines is the number of LF bytes, plus one for trailing content after
	// the last LF.
	Lines int
	// CRLF is the number of non-overlapping CR LF pairs.
	CRLF int
	// Unterminated is set when the stream has content after the last LF.
	Unterminated bool
}

// Style derives the file style from the counts. A CRLF count one short of
// the line count still means DOS, but only when that last line has no
// terminator at all.
func (c Counts) Style() Style {
	switch {
	case c.CRLF == c.Lines:
		return AllDos
	case c.Unterminated && c.CRLF == c.Lines-1:
		return AllDos
	case c.CRLF == 0:
		return AllUnix
	default:
		return Mixed
	}
}

// Count scans r once in fixed-size chunks.
func Count(r io.Reader) (Counts, error) {
	var (
		c       Counts
		buf     = make([]byte, chunkSize)
		prevCR  bool
		last    byte
		nonzero bool
	)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			chunk := buf[:n]
			c.Lines += bytes.Count(chunk, []byte{'\n'})
			c.CRLF += bytes.Count(chunk, []byte("\r\n"))
			if prevCR && chunk[0] == '\n' {
				c.CRLF++
			}
			prevCR = chunk[n-1] == '\r'
			last = chunk[n-1]
			nonzero = true
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return Counts{}, err
		}
	}
	if nonzero && last != '\n' {
		c.Lines++
		c.Unterminated = true
	}
	return c, nil
}

// Classify reads r to the end and returns its line-ending style.
func Classify(r io.Reader) (Style, error) {
	c, err := Count(r)
	if err != nil {
		return Mixed, err
	}
	return c.Style(), nil
}

// ClassifyFile opens path through fsys and classifies it.
func ClassifyFile(fsys mfs.FileSystem, path string) (Style, error) {
	f, err := fsys.Open(path)
	if err != nil {
		return Mixed, err
	}
	defer f.Close()
	return Classify(f)
}
