package csskit

import "strings"

// SelectorCategory classifies a selector by its leading simple selector.
type SelectorCategory string

const (
	CategoryClass     SelectorCategory = "class"
	CategoryID        SelectorCategory = "id"
	CategoryElement   SelectorCategory = "element"
	CategoryAttribute SelectorCategory = "attribute"
	CategoryOther     SelectorCategory = "other"
)

// CategorizeSelector determines the category of a CSS selector. Compound
// and combinator selectors are judged by their first simple selector, comma
// lists by their first part: ".btn:hover" is a class selector, "#main > p"
// an id selector, "input[type=text]" an element selector.
func CategorizeSelector(selector string) SelectorCategory {
	s := strings.TrimSpace(selector)
	if i := strings.IndexByte(s, ','); i >= 0 {
		s = strings.TrimSpace(s[:i])
	}
	if s == "" {
		return CategoryOther
	}

	switch c := s[0]; {
	case c == '.':
		return CategoryClass
	case c == '#':
		return CategoryID
	case c == '[':
		return CategoryAttribute
	case isNameStart(c):
		return CategoryElement
	}

	// Universal, pseudo-only (":root") and anything unrecognized.
	return CategoryOther
}

func isNameStart(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c == '-' || c == '_'
}

// CategorizeSelectors counts selectors per category. Keys are the category
// names, suitable for direct JSON output.
func CategorizeSelectors(selectors []string) map[string]int {
	out := make(map[string]int)
	for _, sel := range selectors {
		out[string(CategorizeSelector(sel))]++
	}
	return out
}
