package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/yacobolo/csskit"
	"github.com/yacobolo/csskit/internal/report"
	"github.com/yacobolo/csskit/internal/scan"
)

var validateCmd = &cobra.Command{
	Use:     "validate [files...]",
	Aliases: []string{"check"},
	Short:   "Check stylesheets for syntax errors",
	Long: `Parse each stylesheet and report syntax errors with line and column.
Reads stdin when no files are given. Exits 1 when any input fails.`,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		quiet := getBoolWithFallback("quiet", "quiet", false)
		rep := report.NewReporter(os.Stdout, useColors())

		// Stdin mode: one input named "stdin".
		if len(args) == 0 {
			css, err := readInput("")
			if err != nil {
				return err
			}
			if verr := csskit.Validate(css); verr != nil {
				if !quiet {
					rep.PrintDiagnostic("stdin", verr)
				}
				os.Exit(1)
			}
			if !quiet {
				rep.PrintValid("stdin")
			}
			return nil
		}

		includes := getStringsWithFallback("include", "transform.include", nil)
		files, _, err := scan.Discover(args, includes)
		if err != nil {
			return err
		}

		failed := 0
		for _, file := range files {
			data, err := os.ReadFile(file)
			if err != nil {
				if !quiet {
					rep.PrintFileStatus(scan.RelativePath(file), 0, 0, err)
				}
				failed++
				continue
			}
			if verr := csskit.Validate(string(data)); verr != nil {
				if !quiet {
					rep.PrintDiagnostic(scan.RelativePath(file), verr)
				}
				failed++
				continue
			}
			if !quiet {
				rep.PrintValid(scan.RelativePath(file))
			}
		}

		if failed > 0 {
			os.Exit(1)
		}
		return nil
	},
}

func init() {
	validateCmd.Flags().StringSlice("include", nil, "Glob patterns for directory arguments")
}
