package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yacobolo/csskit"
)

var modifyCmd = &cobra.Command{
	Use:     "modify",
	Aliases: []string{"edit"},
	Short:   "Edit rules and declarations by selector",
	Long: `Structural edits on a stylesheet: set or remove a property, drop a
selector's rules, replace a rule body, or add vendor prefixes. Each
subcommand reads a trailing file argument or stdin and prints the
rewritten stylesheet.`,
}

var modifySetCmd = &cobra.Command{
	Use:   "set <selector> <property> <value> [file]",
	Short: "Set a property on a selector's rule",
	Long: `Set a property in the first rule matching the selector, replacing any
existing declarations of that property. A missing rule is appended at
the end of the stylesheet.`,
	Args: cobra.RangeArgs(3, 4),
	RunE: func(cmd *cobra.Command, args []string) error {
		imp := csskit.ImportantKeep
		if important, _ := cmd.Flags().GetBool("important"); important {
			imp = csskit.ImportantSet
		}
		return runModify(cmd, modifyPath(args, 3), func(css string) (string, error) {
			return csskit.ModifyProperty(css, args[0], args[1], args[2], imp)
		})
	},
}

var modifyRemoveCmd = &cobra.Command{
	Use:   "remove <selector> <property> [file]",
	Short: "Remove a property from a selector's rules",
	Long: `Remove every declaration of the property from all rules matching the
selector. Rules left without declarations are dropped.`,
	Args: cobra.RangeArgs(2, 3),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runModify(cmd, modifyPath(args, 2), func(css string) (string, error) {
			return csskit.RemoveProperty(css, args[0], args[1])
		})
	},
}

var modifyRemoveSelectorCmd = &cobra.Command{
	Use:   "remove-selector <selector> [file]",
	Short: "Remove all rules for a selector",
	Long: `Remove every rule whose selector matches exactly, including inside
media blocks. Media blocks left empty are dropped too.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runModify(cmd, modifyPath(args, 1), func(css string) (string, error) {
			return csskit.RemoveSelector(css, args[0])
		})
	},
}

var modifyReplaceCmd = &cobra.Command{
	Use:   "replace <selector> <declarations> [file]",
	Short: "Replace a rule's whole declaration body",
	Long: `Replace the declaration body of the first rule matching the selector
with a semicolon-separated declaration list, e.g.
"color: red; padding: 4px". A missing rule is appended.`,
	Args: cobra.RangeArgs(2, 3),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runModify(cmd, modifyPath(args, 2), func(css string) (string, error) {
			return csskit.ReplaceSelectorRule(css, args[0], args[1])
		})
	},
}

var modifyPrefixCmd = &cobra.Command{
	Use:   "prefix <property> [file]",
	Short: "Add vendor-prefixed copies of a property",
	Long: `Insert vendor-prefixed copies before every declaration of the
property, in every rule. Without --prefix the usual four vendors are
used: -webkit-, -moz-, -ms-, -o-.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		prefixes, _ := cmd.Flags().GetStringSlice("prefix")
		return runModify(cmd, modifyPath(args, 1), func(css string) (string, error) {
			return csskit.AddVendorPrefix(css, args[0], prefixes)
		})
	},
}

func init() {
	modifyCmd.AddCommand(modifySetCmd)
	modifyCmd.AddCommand(modifyRemoveCmd)
	modifyCmd.AddCommand(modifyRemoveSelectorCmd)
	modifyCmd.AddCommand(modifyReplaceCmd)
	modifyCmd.AddCommand(modifyPrefixCmd)

	modifySetCmd.Flags().Bool("important", false, "Mark the declaration !important")
	modifyPrefixCmd.Flags().StringSlice("prefix", nil, "Vendor prefix to add (repeatable)")

	for _, cmd := range modifyCmd.Commands() {
		f := cmd.Flags()
		f.BoolP("write", "w", false, "Rewrite the file in place")
		f.StringP("output", "o", "", "Write result to this file instead of stdout")
		cmd.MarkFlagsMutuallyExclusive("write", "output")
		cmd.PreRunE = func(cmd *cobra.Command, _ []string) error {
			return loadConfig(cmd)
		}
	}
}

// modifyPath returns the optional trailing file argument of a modify
// subcommand taking required leading arguments.
func modifyPath(args []string, required int) string {
	if len(args) > required {
		return args[len(args)-1]
	}
	return ""
}

// runModify applies one edit to the input and routes the result to
// stdout, --output, or back to the file with --write.
func runModify(cmd *cobra.Command, path string, fn func(string) (string, error)) error {
	css, err := readInput(path)
	if err != nil {
		return err
	}

	out, err := fn(css)
	if err != nil {
		return err
	}

	if write, _ := cmd.Flags().GetBool("write"); write {
		if path == "" || path == "-" {
			return fmt.Errorf("--write needs a file argument")
		}
		return os.WriteFile(path, []byte(ensureNewline(out)), 0644)
	}

	return writeResult(cmd, out)
}
