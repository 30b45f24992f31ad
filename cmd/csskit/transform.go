package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yacobolo/csskit"
	"github.com/yacobolo/csskit/internal/report"
	"github.com/yacobolo/csskit/internal/scan"
)

// transformSpec describes one stylesheet rewrite subcommand. The four
// rewrites share flags and batch behavior and differ only in the
// transform applied.
type transformSpec struct {
	use     string
	aliases []string
	short   string
	long    string
	verb    string // past tense, for the batch summary line
	fn      scan.Transform
}

var transformSpecs = []transformSpec{
	{
		use:   "minify [files...]",
		short: "Minify stylesheets",
		long: `Strip comments and whitespace, drop empty rules and shorten hex
colors. Reads stdin when no files are given.`,
		verb: "Minified",
		fn:   csskit.Minify,
	},
	{
		use:     "beautify [files...]",
		aliases: []string{"fmt"},
		short:   "Reformat stylesheets with consistent indentation",
		long: `Pretty-print stylesheets: four-space indentation, one declaration
per line, comma-separated selectors split across lines.`,
		verb: "Formatted",
		fn:   csskit.Beautify,
	},
	{
		use:   "sort [files...]",
		short: "Sort declarations alphabetically within each rule",
		verb:  "Sorted",
		fn:    csskit.SortProperties,
	},
	{
		use:   "dedupe [files...]",
		short: "Merge duplicate selectors and repeated declarations",
		long: `Merge rules sharing a selector into one (later declarations win),
collapse media blocks with the same condition, and drop repeated
declarations within a rule.`,
		verb: "Deduplicated",
		fn:   csskit.RemoveDuplicates,
	},
}

func newTransformCmd(spec transformSpec) *cobra.Command {
	cmd := &cobra.Command{
		Use:     spec.use,
		Aliases: spec.aliases,
		Short:   spec.short,
		Long:    spec.long,
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			return loadConfig(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTransform(cmd, args, spec)
		},
	}

	f := cmd.Flags()
	f.BoolP("write", "w", false, "Rewrite files in place")
	f.StringP("output", "o", "", "Write result to this file instead of stdout")
	f.StringSlice("include", nil, "Glob patterns for directory arguments")
	cmd.MarkFlagsMutuallyExclusive("write", "output")

	return cmd
}

func runTransform(cmd *cobra.Command, args []string, spec transformSpec) error {
	// No file arguments: filter stdin to stdout (or --output).
	if len(args) == 0 {
		css, err := readInput("")
		if err != nil {
			return err
		}
		out, err := spec.fn(css)
		if err != nil {
			return err
		}
		return writeResult(cmd, out)
	}

	includes := getStringsWithFallback("include", "transform.include", nil)
	files, stats, err := scan.Discover(args, includes)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no stylesheets matched %s", strings.Join(args, " "))
	}

	log := newLogger()
	defer func() { _ = log.Sync() }()

	write, _ := cmd.Flags().GetBool("write")
	results, runErr := scan.Run(files, spec.fn, write, log)

	if !write {
		var sb strings.Builder
		for _, res := range results {
			if res.Err == nil {
				sb.WriteString(res.Output)
			}
		}
		if err := writeResult(cmd, sb.String()); err != nil {
			return err
		}
		return runErr
	}

	if !getBoolWithFallback("quiet", "quiet", false) {
		rep := report.NewReporter(os.Stdout, useColors())
		succeeded, failed := 0, 0
		for _, res := range results {
			rep.PrintFileStatus(scan.RelativePath(res.Path), res.BytesIn, res.BytesOut, res.Err)
			if res.Err != nil {
				failed++
			} else {
				succeeded++
			}
		}
		rep.PrintBatchSummary(spec.verb, succeeded, failed)

		if stats.FilesSkipped > 0 && getBoolWithFallback("verbose", "verbose", false) {
			fmt.Printf("Skipped %d minified or ignored files\n", stats.FilesSkipped)
		}
	}

	return runErr
}
