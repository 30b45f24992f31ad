package main

import (
	"github.com/spf13/cobra"

	"github.com/yacobolo/csskit"
)

var mergeCmd = &cobra.Command{
	Use:   "merge <file>...",
	Short: "Merge stylesheets, combining rules that share a selector",
	Long: `Concatenate stylesheets in order, merging rules with the same selector
into one. Later declarations override earlier ones of the same property.
Use "-" to read one input from stdin.`,
	Args: cobra.MinimumNArgs(1),
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		sheets := make([]string, 0, len(args))
		for _, arg := range args {
			css, err := readInput(arg)
			if err != nil {
				return err
			}
			sheets = append(sheets, css)
		}

		out, err := csskit.MergeStylesheets(sheets...)
		if err != nil {
			return err
		}

		return writeResult(cmd, out)
	},
}

func init() {
	mergeCmd.Flags().StringP("output", "o", "", "Write result to this file instead of stdout")
}
