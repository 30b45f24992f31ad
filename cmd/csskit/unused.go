package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yacobolo/csskit"
)

var unusedCmd = &cobra.Command{
	Use:   "unused [file]",
	Short: "Find selectors an HTML document never references",
	Long: `Compare class and id selectors against an HTML document and list the
ones the document never references. Element and attribute selectors
are skipped; a selector counts as used when any part of it matches.`,
	Args: cobra.MaximumNArgs(1),
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: func(_ *cobra.Command, args []string) error {
		htmlPath := getStringWithFallback("html", "unused.html", "")
		if htmlPath == "" {
			return fmt.Errorf("an HTML document is required (--html or unused.html in config)")
		}

		css, err := readInput(argPath(args))
		if err != nil {
			return err
		}
		html, err := os.ReadFile(htmlPath)
		if err != nil {
			return err
		}

		unused, err := csskit.ExtractUnusedSelectors(css, string(html))
		if err != nil {
			return err
		}

		if getStringWithFallback("format", "unused.format", "text") == "json" {
			return printJSON(unused)
		}
		for _, selector := range unused {
			fmt.Println(selector)
		}
		return nil
	},
}

func init() {
	f := unusedCmd.Flags()
	f.String("html", "", "HTML document to check selectors against")
	f.String("format", "", "Output format: text|json")
}
