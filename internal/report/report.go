// Package report renders csskit analyses and batch results for terminals
// and machine consumers.
package report

import (
	"io"

	"github.com/yacobolo/csskit"
)

// Format selects how an analysis is rendered.
type Format string

const (
	// FormatText renders a styled terminal report.
	FormatText Format = "text"
	// FormatJSON renders a machine-readable JSON export.
	FormatJSON Format = "json"
	// FormatMarkdown renders a shareable Markdown report.
	FormatMarkdown Format = "markdown"
)

// DetermineFormat selects the output format from a flag value.
func DetermineFormat(formatFlag string) Format {
	switch formatFlag {
	case "json":
		return FormatJSON
	case "markdown", "md":
		return FormatMarkdown
	}
	// Unknown values fall back to the terminal report.
	return FormatText
}

// Options carries rendering knobs shared by the writers.
type Options struct {
	UseColors bool
	Verbose   bool
	// Source is the input name shown in headers, empty for stdin.
	Source string
}

// Write renders the analysis in the given format.
func Write(w io.Writer, a *csskit.Analysis, format Format, opts Options) error {
	switch format {
	case FormatJSON:
		return WriteJSON(w, a, opts.Source)
	case FormatMarkdown:
		return WriteMarkdown(w, a, opts.Source)
	}

	r := NewReporter(w, opts.UseColors)
	r.PrintAnalysis(a, opts.Source)
	if opts.Verbose {
		v := NewVerboseReporter(w, opts.UseColors)
		v.PrintMediaQueries(a)
		v.PrintSelectorProperties(a)
		v.PrintComments(a)
	}
	return nil
}
