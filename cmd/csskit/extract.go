package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yacobolo/csskit"
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Pull structured data out of a stylesheet",
	Long: `Extract colors, media queries, animations, fonts, comments, imports
or whole rules from a stylesheet. Each subcommand reads a file argument
or stdin and prints text or JSON.`,
}

func init() {
	extractCmd.AddCommand(extractColorsCmd)
	extractCmd.AddCommand(extractMediaCmd)
	extractCmd.AddCommand(extractAnimationsCmd)
	extractCmd.AddCommand(extractFontsCmd)
	extractCmd.AddCommand(extractCommentsCmd)
	extractCmd.AddCommand(extractImportsCmd)
	extractCmd.AddCommand(extractRulesCmd)

	for _, cmd := range extractCmd.Commands() {
		cmd.Flags().String("format", "", "Output format: text|json")
		cmd.PreRunE = func(cmd *cobra.Command, _ []string) error {
			return loadConfig(cmd)
		}
	}
}

// jsonFormat reports whether extract output should be JSON.
func jsonFormat() bool {
	return getStringWithFallback("format", "extract.format", "text") == "json"
}

func printJSON(v any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

var extractColorsCmd = &cobra.Command{
	Use:   "colors [file]",
	Short: "List color declarations per selector",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		css, err := readInput(argPath(args))
		if err != nil {
			return err
		}
		colors, err := csskit.ExtractColors(css)
		if err != nil {
			return err
		}
		if jsonFormat() {
			return printJSON(colors)
		}
		for _, selector := range sortedMapKeys(colors) {
			fmt.Println(selector)
			for _, decl := range colors[selector] {
				fmt.Printf("  %s\n", decl)
			}
		}
		return nil
	},
}

var extractMediaCmd = &cobra.Command{
	Use:     "media [file]",
	Aliases: []string{"media-queries"},
	Short:   "List media queries and the rules inside them",
	Args:    cobra.MaximumNArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		css, err := readInput(argPath(args))
		if err != nil {
			return err
		}
		queries, err := csskit.ExtractMediaQueries(css)
		if err != nil {
			return err
		}
		if jsonFormat() {
			return printJSON(queries)
		}
		for _, condition := range sortedMapKeys(queries) {
			fmt.Printf("@media %s\n", condition)
			for _, rule := range queries[condition] {
				fmt.Printf("  %s\n", rule.Selector)
				for _, name := range sortedMapKeys(rule.Properties) {
					fmt.Printf("    %s: %s\n", name, rule.Properties[name])
				}
			}
		}
		return nil
	},
}

var extractAnimationsCmd = &cobra.Command{
	Use:   "animations [file]",
	Short: "List keyframes animations and where they are used",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		css, err := readInput(argPath(args))
		if err != nil {
			return err
		}
		animations, err := csskit.ExtractAnimations(css)
		if err != nil {
			return err
		}
		if jsonFormat() {
			return printJSON(animations)
		}
		for _, name := range sortedMapKeys(animations) {
			anim := animations[name]
			fmt.Println(name)
			for _, step := range sortedMapKeys(anim.Keyframes) {
				fmt.Printf("  %s { %s }\n", step, joinProperties(anim.Keyframes[step]))
			}
			if len(anim.UsedBy) > 0 {
				fmt.Printf("  used by: %s\n", strings.Join(anim.UsedBy, ", "))
			}
		}
		return nil
	},
}

var extractFontsCmd = &cobra.Command{
	Use:   "fonts [file]",
	Short: "List font declarations per selector",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		css, err := readInput(argPath(args))
		if err != nil {
			return err
		}
		fonts, err := csskit.ExtractFonts(css)
		if err != nil {
			return err
		}
		if jsonFormat() {
			return printJSON(fonts)
		}
		for _, selector := range sortedMapKeys(fonts) {
			fmt.Println(selector)
			for _, decl := range fonts[selector] {
				fmt.Printf("  %s: %s\n", decl.Property, decl.Value)
			}
		}
		return nil
	},
}

var extractCommentsCmd = &cobra.Command{
	Use:   "comments [file]",
	Short: "List comments and what they annotate",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		css, err := readInput(argPath(args))
		if err != nil {
			return err
		}
		comments, err := csskit.ExtractComments(css)
		if err != nil {
			return err
		}
		if jsonFormat() {
			return printJSON(comments)
		}
		for _, text := range comments.Standalone {
			fmt.Println(text)
		}
		for _, selector := range sortedMapKeys(comments.Rules) {
			for _, text := range comments.Rules[selector] {
				fmt.Printf("%s: %s\n", selector, text)
			}
		}
		for _, selector := range sortedMapKeys(comments.Declarations) {
			decls := comments.Declarations[selector]
			for _, name := range sortedMapKeys(decls) {
				for _, text := range decls[name] {
					fmt.Printf("%s %s: %s\n", selector, name, text)
				}
			}
		}
		return nil
	},
}

var extractImportsCmd = &cobra.Command{
	Use:   "imports [file]",
	Short: "List @import targets and their media conditions",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		css, err := readInput(argPath(args))
		if err != nil {
			return err
		}
		analysis, err := csskit.Analyze(css)
		if err != nil {
			return err
		}
		if jsonFormat() {
			return printJSON(struct {
				Imports      []string          `json:"imports"`
				MediaQueries map[string]string `json:"import_media_queries"`
			}{analysis.Imports, analysis.ImportMediaQueries})
		}
		for _, imp := range analysis.Imports {
			if media, ok := analysis.ImportMediaQueries[imp]; ok {
				fmt.Printf("%s (%s)\n", imp, media)
				continue
			}
			fmt.Println(imp)
		}
		return nil
	},
}

var extractRulesCmd = &cobra.Command{
	Use:   "rules <pattern> [file]",
	Short: "Print rules whose selector contains a pattern",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(_ *cobra.Command, args []string) error {
		pattern := args[0]
		path := ""
		if len(args) == 2 {
			path = args[1]
		}
		css, err := readInput(path)
		if err != nil {
			return err
		}
		rules, err := csskit.RulesBySelector(css, pattern)
		if err != nil {
			return err
		}
		if jsonFormat() {
			type ruleJSON struct {
				Selector string `json:"selector"`
				CSS      string `json:"css"`
			}
			out := make([]ruleJSON, 0, len(rules))
			for _, r := range rules {
				out = append(out, ruleJSON{
					Selector: r.Selector,
					CSS:      csskit.Serialize([]csskit.Item{r}),
				})
			}
			return printJSON(out)
		}
		if len(rules) == 0 {
			return nil
		}
		items := make([]csskit.Item, 0, len(rules))
		for _, r := range rules {
			items = append(items, r)
		}
		fmt.Print(csskit.Serialize(items))
		return nil
	},
}

func joinProperties(props map[string]string) string {
	parts := make([]string, 0, len(props))
	for _, name := range sortedMapKeys(props) {
		parts = append(parts, name+": "+props[name])
	}
	return strings.Join(parts, "; ")
}

func sortedMapKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
