package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate a default .csskit.yaml config file",
	Long:  `Create a .csskit.yaml configuration file in the current directory with sensible defaults.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		force, _ := cmd.Flags().GetBool("force")

		if _, err := os.Stat(".csskit.yaml"); err == nil && !force {
			return fmt.Errorf(".csskit.yaml already exists (use --force to overwrite)")
		}

		if err := os.WriteFile(".csskit.yaml", []byte(defaultConfig), 0644); err != nil {
			return fmt.Errorf("writing config file: %w", err)
		}

		fmt.Println("Created .csskit.yaml")
		return nil
	},
}

const defaultConfig = `# csskit configuration
# Docs: https://github.com/yacobolo/csskit

# Shared settings
verbose: false
color: false

# Analysis settings
analyze:
  format: text             # text | json | markdown

# Transform settings (minify, beautify, sort, dedupe, validate)
transform:
  include:
    - "**/*.css"

# Extraction settings
extract:
  format: text             # text | json

# Unused selector settings
unused:
  html: index.html
  format: text             # text | json
`

func init() {
	initCmd.Flags().Bool("force", false, "Overwrite existing config file")
}
