package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/yacobolo/csskit/internal/report"
	"github.com/yacobolo/csskit/internal/scan"
)

var rootCmd = &cobra.Command{
	Use:   "csskit",
	Short: "Structural CSS analyzer and transformer",
	Long: `Analyze stylesheets and rewrite them structurally.
Extract colors, fonts, animations and media queries; minify, beautify,
sort, dedupe and merge stylesheets; edit rules by selector.`,
	Args: cobra.ArbitraryArgs,
	// Default behavior: analyze the given files when no subcommand is
	// given. We must call loadConfig here because PreRunE of analyzeCmd
	// is not triggered when delegating via rootCmd.RunE.
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return cmd.Help()
		}
		if err := loadConfig(cmd); err != nil {
			return err
		}
		return runAnalyze(analyzeCmd, args)
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Global persistent flags (inherited by all subcommands)
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().Bool("quiet", false, "Suppress all output (exit code only)")
	rootCmd.PersistentFlags().Bool("color", false, "Force color output")
	rootCmd.PersistentFlags().String("config", ".csskit.yaml", "Config file path")

	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(extractCmd)
	rootCmd.AddCommand(unusedCmd)
	rootCmd.AddCommand(modifyCmd)
	rootCmd.AddCommand(mergeCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(completionCmd)
	rootCmd.AddCommand(versionCmd)

	for _, spec := range transformSpecs {
		rootCmd.AddCommand(newTransformCmd(spec))
	}
}

// newLogger builds the logger for batch runs. Verbose mode gets a
// development logger, anything else a nop.
func newLogger() *zap.Logger {
	if getBoolWithFallback("verbose", "verbose", false) {
		if log, err := zap.NewDevelopment(); err == nil {
			return log
		}
	}
	return zap.NewNop()
}

// useColors resolves the color setting for terminal output.
func useColors() bool {
	return report.ShouldUseColors(getBoolWithFallback("color", "color", false))
}

// readInput returns the stylesheet text from path, or from stdin when
// path is empty or "-".
func readInput(path string) (string, error) {
	if path == "" || path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// displayPath names the input in reports; stdin has no name.
func displayPath(path string) string {
	if path == "" || path == "-" {
		return ""
	}
	return path
}

// argPath picks the trailing optional file argument, if any.
func argPath(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[len(args)-1]
}

// ensureNewline terminates non-empty output with a single newline.
func ensureNewline(s string) string {
	if s != "" && !strings.HasSuffix(s, "\n") {
		s += "\n"
	}
	return s
}

// writeResult sends content to the --output file when set, stdout
// otherwise.
func writeResult(cmd *cobra.Command, content string) error {
	content = ensureNewline(content)

	if output, _ := cmd.Flags().GetString("output"); output != "" {
		return scan.WriteOutput(output, content)
	}

	_, err := fmt.Fprint(os.Stdout, content)
	return err
}
