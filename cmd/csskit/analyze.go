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

var analyzeCmd = &cobra.Command{
	Use:     "analyze [file]",
	Aliases: []string{"stats"},
	Short:   "Analyze a stylesheet and report statistics",
	Long: `Parse a stylesheet and report selectors, properties, colors, fonts,
media queries, imports and comments. Reads stdin when no file is given.`,
	Args: cobra.MaximumNArgs(1),
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: runAnalyze,
}

func init() {
	f := analyzeCmd.Flags()
	f.String("format", "", "Output format: text|json|markdown")
	f.StringP("output", "o", "", "Write the report to this file instead of stdout")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	path := argPath(args)

	css, err := readInput(path)
	if err != nil {
		return err
	}

	analysis, err := csskit.Analyze(css)
	if err != nil {
		if source := displayPath(path); source != "" {
			return fmt.Errorf("%s: %w", source, err)
		}
		return err
	}

	if getBoolWithFallback("quiet", "quiet", false) {
		return nil
	}

	format := report.DetermineFormat(getStringWithFallback("format", "analyze.format", ""))
	opts := report.Options{
		UseColors: useColors(),
		Verbose:   getBoolWithFallback("verbose", "verbose", false),
		Source:    displayPath(path),
	}

	if output, _ := cmd.Flags().GetString("output"); output != "" {
		opts.UseColors = false
		var sb strings.Builder
		if err := report.Write(&sb, analysis, format, opts); err != nil {
			return err
		}
		return scan.WriteOutput(output, sb.String())
	}

	return report.Write(os.Stdout, analysis, format, opts)
}
