package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/CageChen/eolconv/internal/config"
	"github.com/CageChen/eolconv/internal/convert"
	"github.com/CageChen/eolconv/internal/ctxlog"
	mfs "github.com/CageChen/eolconv/internal/fs"
	"github.com/CageChen/eolconv/internal/pathspec"
	"github.com/CageChen/eolconv/internal/report"
	"github.com/CageChen/eolconv/internal/walker"
	"github.com/spf13/cobra"
)

const longHelp = `eolconv rewrites line endings between LF and CRLF.

Files that are binary, empty, mixed-EOL or already in the target form are
skipped, as are hidden entries and PDF documents.

Path forms:
  /dir/file.ext   a single file
  /dir/*          every file under /dir, recursively
  /dir/*.py       every *.py file under /dir, recursively`

// usageError wraps err with the command's usage text and exit code 2.
func usageError(cmd *cobra.Command, err error) error {
	return &ExitError{Code: 2, Message: fmt.Sprintf("Error: %v\n\n%s", err, cmd.UsageString())}
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := config.DefaultOptions()
	var extraExclude []string

	root := &cobra.Command{
		Use:           "eolconv <dos2unix|unix2dos> <path>",
		Short:         "Convert text files between LF and CRLF line endings",
		Long:          longHelp,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return usageError(cmd, fmt.Errorf("missing direction"))
			}
			if _, err := convert.ParseDirection(args[0]); err != nil {
				return usageError(cmd, err)
			}
			return usageError(cmd, fmt.Errorf("expected <direction> <path>"))
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetFlagErrorFunc(usageError)

	flags := root.PersistentFlags()
	flags.StringArrayVar(&extraExclude, "exclude", nil, "additional glob pattern to skip (repeatable)")
	flags.BoolVar(&opts.DryRun, "dry-run", false, "report what would change without rewriting files")
	flags.StringVar(&opts.ReportPath, "report", "", "write a run report to this file")
	flags.StringVar(&opts.ReportFormat, "report-format", "", "report format: yaml, markdown or html (default: from --report extension)")
	flags.BoolVarP(&opts.Verbose, "verbose", "v", false, "enable debug logging")

	for _, dir := range []convert.Direction{convert.ToUnix, convert.ToDos} {
		root.AddCommand(newConvertCmd(dir, opts, &extraExclude, stdout, stderr))
	}
	return root
}

func newConvertCmd(dir convert.Direction, opts *config.Options, extraExclude *[]string, stdout, stderr io.Writer) *cobra.Command {
	short := "Convert CRLF line endings to LF"
	if dir == convert.ToDos {
		short = "Convert LF line endings to CRLF"
	}

	return &cobra.Command{
		Use:   dir.String() + " <path>",
		Short: short,
		Args: func(cmd *cobra.Command, args []string) error {
			if err := cobra.ExactArgs(1)(cmd, args); err != nil {
				return usageError(cmd, err)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.AddExclude(*extraExclude...)
			if err := opts.Validate(); err != nil {
				return usageError(cmd, err)
			}
			return convertPath(cmd.Context(), opts, dir, args[0], stdout, stderr)
		},
	}
}

func convertPath(ctx context.Context, opts *config.Options, dir convert.Direction, raw string, stdout, stderr io.Writer) error {
	var format report.Format
	if opts.ReportPath != "" {
		f, err := report.ParseFormat(opts.ReportFormat, opts.ReportPath)
		if err != nil {
			return &ExitError{Code: 2, Message: err.Error()}
		}
		format = f
	}

	logger := newLogger(stderr, opts.Verbose)
	ctx = ctxlog.WithLogger(ctx, logger)

	fsys := mfs.NewLocalFS("")
	spec, err := pathspec.Resolve(raw, fsys)
	if err != nil {
		return &ExitError{Code: 1, Message: err.Error()}
	}
	logger.Debug("resolved path", "spec", spec.String(), "mode", spec.Mode.String())

	console := report.NewConsole(stdout, spec.Ext)
	collector := report.NewCollector(dir.String(), raw, opts.DryRun)
	console.Header(dir.String())

	conv := convert.New(fsys, convert.WithDryRun(opts.DryRun))
	w := walker.New(fsys, conv, opts, dir, console, collector)
	summary, walkErr := w.Walk(ctx, spec)

	logger.Debug("conversion finished",
		"visited", summary.Total(),
		"touched", summary[walker.Touched],
		"failed", summary[walker.Failed],
	)

	if opts.ReportPath != "" {
		if err := writeReport(opts.ReportPath, collector.Report(), format); err != nil {
			return fmt.Errorf("write report %s: %w", opts.ReportPath, err)
		}
		logger.Info("report written", "path", opts.ReportPath, "format", string(format))
	}

	if walkErr != nil {
		return fmt.Errorf("walk %s: %w", raw, walkErr)
	}
	return nil
}

func writeReport(path string, rep *report.Report, format report.Format) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := report.Write(f, rep, format); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
