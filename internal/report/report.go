package report

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/CageChen/eolconv/internal/walker"
	"github.com/alecthomas/chroma/v2/lexers"
	"gopkg.in/yaml.v3"
)

// Entry is one visited path in a run report.
type Entry struct {
	Path     string `yaml:"path"`
	Outcome  string `yaml:"outcome"`
	Style    string `yaml:"style,omitempty"`
	Language string `yaml:"language,omitempty"`
	Error    string `yaml:"error,omitempty"`
}

// Report is the serialisable record of a run.
type Report struct {
	Direction string         `yaml:"direction"`
	Target    string         `yaml:"target"`
	DryRun    bool           `yaml:"dry_run"`
	Summary   map[string]int `yaml:"summary"`
	Entries   []Entry        `yaml:"entries"`
}

// Collector is a walker.Sink that accumulates a Report.
type Collector struct {
	report Report
}

// NewCollector creates a Collector for a run.
func NewCollector(direction, target string, dryRun bool) *Collector {
	return &Collector{report: Report{
		Direction: direction,
		Target:    target,
		DryRun:    dryRun,
		Summary:   make(map[string]int),
	}}
}

// Record implements walker.Sink.
func (c *Collector) Record(r walker.Result) {
	e := Entry{
		Path:    r.Path,
		Outcome: r.Outcome.String(),
	}
	if r.HasStyle {
		e.Style = r.Style.String()
	}
	if r.Outcome != walker.Directory {
		e.Language = Language(r.Path)
	}
	if r.Err != nil {
		e.Error = r.Err.Error()
	}
	c.report.Entries = append(c.report.Entries, e)
	c.report.Summary[e.Outcome]++
}

// Report returns the accumulated report.
func (c *Collector) Report() *Report {
	return &c.report
}

// Language names the language chroma associates with the file name, or ""
// when none matches.
func Language(path string) string {
	lexer := lexers.Match(filepath.Base(path))
	if lexer == nil {
		return ""
	}
	return lexer.Config().Name
}

// Format is a report output format.
type Format string

// Supported report formats.
const (
	FormatYAML     Format = "yaml"
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
)

// ParseFormat resolves the report format. An explicit name wins; otherwise
// the extension of path decides, defaulting to YAML.
func ParseFormat(name, path string) (Format, error) {
	if name == "" {
		switch strings.ToLower(filepath.Ext(path)) {
		case ".md", ".markdown":
			return FormatMarkdown, nil
		case ".html", ".htm":
			return FormatHTML, nil
		default:
			return FormatYAML, nil
		}
	}
	switch strings.ToLower(name) {
	case "yaml", "yml":
		return FormatYAML, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "html":
		return FormatHTML, nil
	default:
		return "", fmt.Errorf("unknown report format %q: expected yaml, markdown or html", name)
	}
}

// Write renders rep in the given format.
func Write(w io.Writer, rep *Report, format Format) error {
	switch format {
	case FormatYAML:
		return WriteYAML(w, rep)
	case FormatMarkdown:
		return WriteMarkdown(w, rep)
	case FormatHTML:
		return WriteHTML(w, rep)
	default:
		return fmt.Errorf("unknown report format %q", format)
	}
}

// WriteYAML encodes rep as a YAML document.
func WriteYAML(w io.Writer, rep *Report) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(rep); err != nil {
		return err
	}
	return enc.Close()
}
