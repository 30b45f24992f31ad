package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/yacobolo/csskit"
)

// WriteMarkdown writes the analysis as a shareable Markdown report.
func WriteMarkdown(w io.Writer, a *csskit.Analysis, source string) error {
	var b strings.Builder

	b.WriteString("# CSS Analysis Report\n\n")
	if source != "" {
		fmt.Fprintf(&b, "Source: `%s`\n\n", escapeMarkdown(source))
	}

	b.WriteString("## Summary\n\n")
	b.WriteString("| Metric | Value |\n")
	b.WriteString("|--------|-------|\n")
	fmt.Fprintf(&b, "| **Selectors** | %d (%d unique) |\n", a.SelectorsCount, a.UniqueSelectors)
	fmt.Fprintf(&b, "| **Declarations** | %d (%d unique properties) |\n", a.PropertiesCount, a.UniqueProperties)
	fmt.Fprintf(&b, "| **Colors** | %d |\n", a.ColorsUsed)
	fmt.Fprintf(&b, "| **Fonts** | %d |\n", a.FontsUsed)
	fmt.Fprintf(&b, "| **Media Queries** | %d |\n", a.MediaQueriesCount)
	fmt.Fprintf(&b, "| **Imports** | %d |\n", a.ImportsCount)
	fmt.Fprintf(&b, "| **Comments** | %d |\n", a.CommentsCount)
	fmt.Fprintf(&b, "| **File Size** | %s |\n", formatBytes(a.FileSizeBytes))
	b.WriteString("\n")

	if len(a.MostUsedProperties) > 0 {
		b.WriteString("## Most Used Properties\n\n")
		b.WriteString("| Property | Count |\n")
		b.WriteString("|----------|-------|\n")
		for _, p := range a.MostUsedProperties {
			fmt.Fprintf(&b, "| `%s` | %d |\n", escapeMarkdown(p.Name), p.Count)
		}
		b.WriteString("\n")
	}

	if len(a.SelectorCategories) > 0 {
		b.WriteString("## Selector Categories\n\n")
		b.WriteString("| Category | Count |\n")
		b.WriteString("|----------|-------|\n")
		for _, cat := range categoryOrder {
			if n := a.SelectorCategories[cat]; n > 0 {
				fmt.Fprintf(&b, "| %s | %d |\n", cat, n)
			}
		}
		b.WriteString("\n")
	}

	if len(a.Colors) > 0 {
		b.WriteString("## Colors\n\n")
		for _, c := range a.Colors {
			fmt.Fprintf(&b, "- `%s`\n", escapeMarkdown(c))
		}
		b.WriteString("\n")
	}

	if len(a.Fonts) > 0 {
		b.WriteString("## Fonts\n\n")
		for _, f := range a.Fonts {
			fmt.Fprintf(&b, "- `%s`\n", escapeMarkdown(f))
		}
		b.WriteString("\n")
	}

	if len(a.MediaQueryDetails) > 0 {
		b.WriteString("## Media Queries\n\n")
		for _, cond := range uniqueInOrder(a.MediaQueries) {
			detail := a.MediaQueryDetails[cond]
			if detail == nil {
				continue
			}
			fmt.Fprintf(&b, "### `@media %s`\n\n", escapeMarkdown(cond))
			for _, sel := range detail.Selectors {
				fmt.Fprintf(&b, "- `%s`\n", escapeMarkdown(sel))
			}
			b.WriteString("\n")
		}
	}

	if len(a.Imports) > 0 {
		b.WriteString("## Imports\n\n")
		for _, imp := range a.Imports {
			if media := a.ImportMediaQueries[imp]; media != "" {
				fmt.Fprintf(&b, "- `%s` (%s)\n", escapeMarkdown(imp), escapeMarkdown(media))
				continue
			}
			fmt.Fprintf(&b, "- `%s`\n", escapeMarkdown(imp))
		}
		b.WriteString("\n")
	}

	b.WriteString("---\n\n")
	b.WriteString("*Generated by csskit*\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// escapeMarkdown neutralizes characters that would break table cells.
func escapeMarkdown(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}
