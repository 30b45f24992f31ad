package report

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yacobolo/csskit"
)

// Terminal styles for consistent output formatting across reporters.
// Lipgloss automatically degrades colors based on terminal capabilities.
var (
	// StyleCyan is used for section headers and file locations.
	StyleCyan = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	// StyleRed is used for failure markers and error diagnostics.
	StyleRed = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("1"))
	// StyleYellow is used for warnings.
	StyleYellow = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("3"))
	// StyleGreen is used for success markers.
	StyleGreen = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2"))
	// StyleGray is used for hints and secondary detail.
	StyleGray = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// RenderStyle applies a lipgloss style to text when colors are enabled.
// When useColors is false, the text is returned unmodified.
func RenderStyle(style lipgloss.Style, text string, useColors bool) string {
	if !useColors {
		return text
	}
	return style.Render(text)
}

// ShouldUseColors determines if colors should be enabled.
func ShouldUseColors(force bool) bool {
	// Explicit flag wins
	if force {
		return true
	}

	// NO_COLOR is a hard opt-out
	if os.Getenv("NO_COLOR") != "" {
		return false
	}

	// Check for FORCE_COLOR environment variable (GitHub Actions, etc.)
	if os.Getenv("FORCE_COLOR") != "" {
		return true
	}

	// GitHub Actions supports colors
	if os.Getenv("GITHUB_ACTIONS") == "true" {
		return true
	}

	// Auto-detect TTY
	if fileInfo, _ := os.Stdout.Stat(); (fileInfo.Mode() & os.ModeCharDevice) != 0 {
		return true
	}

	return false
}

// Reporter renders analyses, diagnostics and batch status for terminals.
type Reporter struct {
	w         io.Writer
	useColors bool
}

// NewReporter creates a reporter writing to w.
func NewReporter(w io.Writer, useColors bool) *Reporter {
	return &Reporter{w: w, useColors: useColors}
}

// UseColors returns whether colors are enabled.
func (r *Reporter) UseColors() bool {
	return r.useColors
}

// categoryOrder fixes the print order of the selector category breakdown.
var categoryOrder = []string{"class", "id", "element", "attribute", "other"}

// PrintAnalysis renders the analysis summary: counts, the most-used
// property ranking, color and font inventories, and the selector category
// breakdown.
func (r *Reporter) PrintAnalysis(a *csskit.Analysis, source string) {
	title := "Stylesheet Analysis"
	if source != "" {
		title += ": " + source
	}
	r.section(title)

	fmt.Fprintf(r.w, "Selectors:      %d (%d unique)\n", a.SelectorsCount, a.UniqueSelectors)
	fmt.Fprintf(r.w, "Declarations:   %d (%d unique properties)\n", a.PropertiesCount, a.UniqueProperties)
	fmt.Fprintf(r.w, "Colors:         %d\n", a.ColorsUsed)
	fmt.Fprintf(r.w, "Fonts:          %d\n", a.FontsUsed)
	fmt.Fprintf(r.w, "Media queries:  %d\n", a.MediaQueriesCount)
	fmt.Fprintf(r.w, "Imports:        %d\n", a.ImportsCount)
	fmt.Fprintf(r.w, "Comments:       %d\n", a.CommentsCount)
	fmt.Fprintf(r.w, "File size:      %s\n", formatBytes(a.FileSizeBytes))

	if len(a.MostUsedProperties) > 0 {
		r.section("Most Used Properties")
		for i, p := range a.MostUsedProperties {
			fmt.Fprintf(r.w, "%2d. %-28s %d\n", i+1, p.Name, p.Count)
		}
	}

	if len(a.Colors) > 0 {
		r.section("Colors")
		for _, c := range a.Colors {
			fmt.Fprintf(r.w, "• %s\n", c)
		}
	}

	if len(a.Fonts) > 0 {
		r.section("Fonts")
		for _, f := range a.Fonts {
			fmt.Fprintf(r.w, "• %s\n", f)
		}
	}

	if len(a.SelectorCategories) > 0 {
		r.section("Selector Categories")
		for _, cat := range categoryOrder {
			if n := a.SelectorCategories[cat]; n > 0 {
				fmt.Fprintf(r.w, "%-11s %d\n", cat+":", n)
			}
		}
	}

	if len(a.Imports) > 0 {
		r.section("Imports")
		for _, imp := range a.Imports {
			if media := a.ImportMediaQueries[imp]; media != "" {
				fmt.Fprintf(r.w, "• %s (%s)\n", imp, media)
				continue
			}
			fmt.Fprintf(r.w, "• %s\n", imp)
		}
	}
}

// PrintDiagnostic formats a validation failure as file:line:col: message,
// golangci-lint style.
func (r *Reporter) PrintDiagnostic(file string, err error) {
	line, col := errorPosition(err)
	location := fmt.Sprintf("%s:%d:%d:", file, line, col)
	fmt.Fprintf(r.w, "%s %s\n",
		RenderStyle(StyleCyan, location, r.useColors),
		errorDetail(err))
}

// PrintValid reports a file that passed validation.
func (r *Reporter) PrintValid(file string) {
	fmt.Fprintf(r.w, "%s %s\n", RenderStyle(StyleGreen, "✓", r.useColors), file)
}

// PrintFileStatus renders one batch entry: the file, its outcome, and the
// size change on success.
func (r *Reporter) PrintFileStatus(path string, bytesIn, bytesOut int, err error) {
	if err != nil {
		fmt.Fprintf(r.w, "%s %s: %v\n",
			RenderStyle(StyleRed, "✗", r.useColors), path, err)
		return
	}
	fmt.Fprintf(r.w, "%s %s: %s → %s\n",
		RenderStyle(StyleGreen, "✓", r.useColors), path,
		formatBytes(bytesIn), formatBytes(bytesOut))
}

// PrintBatchSummary renders the closing count line of a batch run.
func (r *Reporter) PrintBatchSummary(verb string, succeeded, failed int) {
	fmt.Fprintln(r.w, "")
	if failed > 0 {
		fmt.Fprintf(r.w, "%s %s, %s\n",
			verb, pluralizeCount(succeeded, "file", "files"),
			RenderStyle(StyleRed, pluralizeCount(failed, "failure", "failures"), r.useColors))
		return
	}
	fmt.Fprintf(r.w, "%s %s\n", verb, pluralizeCount(succeeded, "file", "files"))
}

// section prints a styled header with an underline.
func (r *Reporter) section(title string) {
	fmt.Fprintln(r.w, "")
	fmt.Fprintln(r.w, RenderStyle(StyleCyan, title, r.useColors))
	fmt.Fprintln(r.w, strings.Repeat("-", len([]rune(title))+2))
}

// errorPosition pulls line and column out of a csskit error, zero when the
// error carries none.
func errorPosition(err error) (line, col int) {
	var serr *csskit.SyntaxError
	if errors.As(err, &serr) {
		return serr.Line, serr.Column
	}
	var perr *csskit.ParseError
	if errors.As(err, &perr) {
		return perr.Line, perr.Column
	}
	return 0, 0
}

// errorDetail strips the position prefix a csskit error renders itself
// with, since PrintDiagnostic prints the location separately.
func errorDetail(err error) string {
	var serr *csskit.SyntaxError
	if errors.As(err, &serr) {
		return serr.Err.Error()
	}
	var perr *csskit.ParseError
	if errors.As(err, &perr) {
		return perr.Err.Error()
	}
	return err.Error()
}

// pluralizeCount returns a formatted string with count and singular/plural form.
func pluralizeCount(count int, singular, plural string) string {
	if count == 1 {
		return fmt.Sprintf("%d %s", count, singular)
	}
	return fmt.Sprintf("%d %s", count, plural)
}

// formatBytes renders a byte count human-readably.
func formatBytes(n int) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(n)/(1<<10))
	}
	return fmt.Sprintf("%d B", n)
}

// uniqueInOrder deduplicates preserving first appearance.
func uniqueInOrder(values []string) []string {
	seen := make(map[string]bool, len(values))
	var out []string
	for _, v := range values {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}

// sortedKeys returns a map's keys in sorted order for stable output.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
