// Package config holds run options: exclusion globs, dry-run, reporting and verbosity.
package config

import (
	"fmt"
	"path/filepath"
)

// DefaultExclude lists the glob patterns that are always skipped: hidden
// entries (which covers .git, .svn and .hg) and PDF documents.
var DefaultExclude = []string{".*", "*.pdf"}

// Options holds all configuration options for a conversion run
type Options struct {
	// Exclude holds glob patterns matched against entry base names.
	Exclude []string

	DryRun  bool
	Verbose bool

	// ReportPath is where the run report is written; empty disables it.
	ReportPath string
	// ReportFormat overrides the format inferred from ReportPath.
	ReportFormat string
}

// DefaultOptions returns options with default values
func DefaultOptions() *Options {
	return &Options{
		Exclude: append([]string(nil), DefaultExclude...),
	}
}

// AddExclude appends extra patterns after the defaults.
func (o *Options) AddExclude(patterns ...string) {
	o.Exclude = append(o.Exclude, patterns...)
}

// Validate checks every exclusion pattern for glob syntax errors.
func (o *Options) Validate() error {
	for _, pattern := range o.Exclude {
		if _, err := filepath.Match(pattern, ""); err != nil {
			return fmt.Errorf("invalid exclude pattern %q: %w", pattern, err)
		}
	}
	return nil
}

// IsExcluded checks if a path should be excluded. Only the base name is
// matched; "." and ".." are always excluded.
func (o *Options) IsExcluded(path string) bool {
	base := filepath.Base(path)
	if base == "." || base == ".." {
		return true
	}
	for _, exclude := range o.Exclude {
		if matched, _ := filepath.Match(exclude, base); matched {
			return true
		}
	}
	return false
}
