package csskit

import (
	"regexp"
	"sort"
	"strings"
)

// selectorSqueeze collapses whitespace around commas and combinators.
var selectorSqueeze = regexp.MustCompile(`\s*([,>+~])\s*`)

// Minify renders css in its most compact equivalent form: comments
// stripped, rules with no declarations dropped, selector whitespace around
// combinators squeezed, declarations emitted name:value joined by
// semicolons with none before the closing brace, and whole-value six-digit
// hex colors with pairwise-equal nibbles shortened to three digits. Media
// and keyframes blocks are minified recursively; other at-rules come out
// in compact form unchanged.
func Minify(css string) (string, error) {
	sheet, err := Parse(css)
	if err != nil {
		return "", err
	}
	w := &writer{compact: true}
	w.writeItems(minifyItems(sheet.Items), 0)
	out := w.output()
	if out != "" {
		out += "\n"
	}
	return out, nil
}

func minifyItems(items []Item) []Item {
	var out []Item
	for _, it := range items {
		switch n := it.(type) {
		case *QualifiedRule:
			decls := minifyDeclarations(n.Declarations)
			if len(decls) == 0 {
				continue
			}
			out = append(out, &QualifiedRule{
				Selector:     squeezeSelector(n.Selector),
				Declarations: decls,
			})
		case *AtRule:
			if n.HasBlock && recurseKeywords[n.Keyword] {
				out = append(out, &AtRule{
					Keyword:  n.Keyword,
					Prelude:  n.Prelude,
					HasBlock: true,
					Block:    minifyItems(n.Block),
				})
				continue
			}
			out = append(out, n)
		case *Comment:
			// dropped
		}
	}
	return out
}

func minifyDeclarations(decls []DeclItem) []DeclItem {
	var out []DeclItem
	for _, d := range declarations(decls) {
		out = append(out, &Declaration{Name: d.Name, Value: shortenHex(d.Value), Important: d.Important})
	}
	return out
}

// shortenHex rewrites #rrggbb to #rgb when each channel's two nibbles
// repeat. Anything other than a whole-value six-digit hex is left alone.
func shortenHex(value string) string {
	if len(value) != 7 || value[0] != '#' {
		return value
	}
	if value[1] == value[2] && value[3] == value[4] && value[5] == value[6] {
		return string([]byte{'#', value[1], value[3], value[5]})
	}
	return value
}

func squeezeSelector(selector string) string {
	return selectorSqueeze.ReplaceAllString(selector, "$1")
}

// Beautify renders css in expanded form: 4-space indentation per depth,
// one declaration per line, each comma-separated selector part on its own
// line, comments kept, blank line between blocks.
func Beautify(css string) (string, error) {
	sheet, err := Parse(css)
	if err != nil {
		return "", err
	}
	w := &writer{indent: indentStep, splitSelectors: true}
	w.writeItems(sheet.Items, 0)
	return w.output(), nil
}

// SortProperties alphabetically sorts the declarations inside every rule,
// media and keyframes blocks included. The sort is stable, so repeated
// names keep their relative order; comments move to the end of their
// block.
func SortProperties(css string) (string, error) {
	sheet, err := Parse(css)
	if err != nil {
		return "", err
	}
	sortItems(sheet.Items)
	return Serialize(sheet.Items), nil
}

func sortItems(items []Item) {
	for _, it := range items {
		switch n := it.(type) {
		case *QualifiedRule:
			n.Declarations = sortDeclarations(n.Declarations)
		case *AtRule:
			if n.HasBlock && recurseKeywords[n.Keyword] {
				sortItems(n.Block)
			}
		}
	}
}

func sortDeclarations(decls []DeclItem) []DeclItem {
	ds := declarations(decls)
	sort.SliceStable(ds, func(i, j int) bool { return ds[i].Name < ds[j].Name })
	out := make([]DeclItem, 0, len(decls))
	for _, d := range ds {
		out = append(out, d)
	}
	for _, c := range comments(decls) {
		out = append(out, c)
	}
	return out
}

// RemoveDuplicates collapses repeated constructs. Qualified rules are
// keyed by selector text and media blocks by their trimmed condition; a
// repeat merges into the first occurrence, later declarations overriding
// earlier same-name ones and repeated media bodies merging recursively
// under the same rules. Surviving declarations come out alphabetically
// sorted with comments after them, which makes the operation idempotent.
func RemoveDuplicates(css string) (string, error) {
	sheet, err := Parse(css)
	if err != nil {
		return "", err
	}
	items := dedupeItems(sheet.Items)
	sortItems(items)
	return Serialize(items), nil
}

func dedupeItems(items []Item) []Item {
	ruleIdx := make(map[string]int)
	mediaIdx := make(map[string]int)
	var out []Item
	for _, it := range items {
		switch n := it.(type) {
		case *QualifiedRule:
			if i, ok := ruleIdx[n.Selector]; ok {
				acc := out[i].(*QualifiedRule)
				acc.Declarations = mergeDeclarations(acc.Declarations, n.Declarations)
				continue
			}
			n.Declarations = dedupeDeclarations(n.Declarations)
			ruleIdx[n.Selector] = len(out)
			out = append(out, n)
		case *AtRule:
			if n.HasBlock && n.Keyword == "media" {
				cond := strings.TrimSpace(n.Prelude)
				if i, ok := mediaIdx[cond]; ok {
					acc := out[i].(*AtRule)
					acc.Block = dedupeItems(append(acc.Block, n.Block...))
					continue
				}
				n.Block = dedupeItems(n.Block)
				mediaIdx[cond] = len(out)
				out = append(out, n)
				continue
			}
			out = append(out, n)
		default:
			out = append(out, it)
		}
	}
	return out
}
