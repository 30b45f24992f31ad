package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/yacobolo/csskit"
)

// VerboseReporter renders the detailed breakdowns behind --verbose:
// per-media-query contents and per-selector resolved properties.
type VerboseReporter struct {
	w         io.Writer
	useColors bool
}

// NewVerboseReporter creates a verbose reporter.
func NewVerboseReporter(w io.Writer, useColors bool) *VerboseReporter {
	return &VerboseReporter{
		w:         w,
		useColors: useColors,
	}
}

// PrintMediaQueries lists each media condition with its selectors and
// per-property declaration counts.
func (r *VerboseReporter) PrintMediaQueries(a *csskit.Analysis) {
	if len(a.MediaQueryDetails) == 0 {
		return
	}

	fmt.Fprintln(r.w, "")
	fmt.Fprintln(r.w, RenderStyle(StyleCyan, "Media Queries", r.useColors))
	fmt.Fprintln(r.w, "---------------")

	for _, cond := range uniqueInOrder(a.MediaQueries) {
		detail := a.MediaQueryDetails[cond]
		if detail == nil {
			continue
		}
		fmt.Fprintf(r.w, "\n@media %s\n", cond)
		for _, sel := range detail.Selectors {
			fmt.Fprintf(r.w, "  %s\n", sel)
		}
		for _, name := range sortedKeys(detail.Properties) {
			fmt.Fprintf(r.w, "    %s ×%d\n", name, detail.Properties[name])
		}
	}
}

// PrintSelectorProperties dumps every selector's resolved properties, the
// last declared value per name.
func (r *VerboseReporter) PrintSelectorProperties(a *csskit.Analysis) {
	if len(a.SelectorProperties) == 0 {
		return
	}

	fmt.Fprintln(r.w, "")
	fmt.Fprintln(r.w, RenderStyle(StyleCyan, "Selector Properties", r.useColors))
	fmt.Fprintln(r.w, "---------------------")

	for _, sel := range uniqueInOrder(a.Selectors) {
		props := a.SelectorProperties[sel]
		if len(props) == 0 {
			continue
		}
		fmt.Fprintf(r.w, "\n%s\n", sel)
		for _, name := range sortedKeys(props) {
			fmt.Fprintf(r.w, "  %s: %s\n", name, props[name])
		}
	}
}

// PrintComments lists the sheet's comments with a gutter marker.
func (r *VerboseReporter) PrintComments(a *csskit.Analysis) {
	if len(a.Comments) == 0 {
		return
	}

	fmt.Fprintln(r.w, "")
	fmt.Fprintln(r.w, RenderStyle(StyleCyan, "Comments", r.useColors))
	fmt.Fprintln(r.w, "----------")

	for _, c := range a.Comments {
		// Collapse multi-line comments to one gutter entry.
		text := strings.Join(strings.Fields(c), " ")
		fmt.Fprintf(r.w, "• %s\n", text)
	}
}
