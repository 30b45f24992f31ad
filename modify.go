package csskit

import (
	"fmt"
	"strings"
)

// Importance selects how ModifyProperty treats the !important flag.
type Importance int

const (
	// ImportantKeep preserves each rewritten declaration's existing flag.
	ImportantKeep Importance = iota
	// ImportantSet forces !important on.
	ImportantSet
	// ImportantClear forces !important off.
	ImportantClear
)

// DefaultPrefixes is the vendor prefix set AddVendorPrefix applies when the
// caller passes none.
var DefaultPrefixes = []string{"-webkit-", "-moz-", "-ms-", "-o-"}

// AddProperty sets name: value on the first rule whose selector matches
// exactly, replacing the first same-name declaration or appending a new
// one. When no rule in the sheet matches, a new rule is appended at the
// end.
func AddProperty(css, selector, name, value string, important bool) (string, error) {
	sheet, err := Parse(css)
	if err != nil {
		return "", err
	}
	rule := findRule(sheet.Items, selector)
	if rule == nil {
		rule = &QualifiedRule{Selector: selector}
		sheet.Items = append(sheet.Items, rule)
	}
	setDeclaration(rule, name, value, important)
	return mutated(sheet), nil
}

// RemoveProperty deletes every name declaration from every rule whose
// selector matches exactly. A rule left with nothing in its body is
// dropped.
func RemoveProperty(css, selector, name string) (string, error) {
	sheet, err := Parse(css)
	if err != nil {
		return "", err
	}
	sheet.Items = removeProperty(sheet.Items, selector, name)
	return mutated(sheet), nil
}

func removeProperty(items []Item, selector, name string) []Item {
	var out []Item
	for _, it := range items {
		switch n := it.(type) {
		case *QualifiedRule:
			if n.Selector == selector {
				n.Declarations = deleteDeclarations(n.Declarations, name)
				if len(n.Declarations) == 0 {
					continue
				}
			}
			out = append(out, n)
		case *AtRule:
			if n.HasBlock && recurseKeywords[n.Keyword] {
				n.Block = removeProperty(n.Block, selector, name)
			}
			out = append(out, n)
		default:
			out = append(out, it)
		}
	}
	return out
}

// RemoveSelector drops every rule whose selector matches exactly, inside
// media and keyframes blocks too. An at-rule left empty by the removal is
// dropped with it.
func RemoveSelector(css, selector string) (string, error) {
	sheet, err := Parse(css)
	if err != nil {
		return "", err
	}
	sheet.Items = removeSelector(sheet.Items, selector)
	return mutated(sheet), nil
}

func removeSelector(items []Item, selector string) []Item {
	var out []Item
	for _, it := range items {
		switch n := it.(type) {
		case *QualifiedRule:
			if n.Selector == selector {
				continue
			}
			out = append(out, n)
		case *AtRule:
			if n.HasBlock && recurseKeywords[n.Keyword] {
				n.Block = removeSelector(n.Block, selector)
				if len(n.Block) == 0 && len(n.Declarations) == 0 {
					continue
				}
			}
			out = append(out, n)
		default:
			out = append(out, it)
		}
	}
	return out
}

// ModifyProperty rewrites every name declaration in the first rule whose
// selector matches, with imp deciding what happens to the !important flag.
// When the rule has no such declaration one is appended; when no rule
// matches a new rule is appended. In both fallback cases the new
// declaration is important only under ImportantSet.
func ModifyProperty(css, selector, name, value string, imp Importance) (string, error) {
	sheet, err := Parse(css)
	if err != nil {
		return "", err
	}
	rule := findRule(sheet.Items, selector)
	if rule == nil {
		sheet.Items = append(sheet.Items, &QualifiedRule{
			Selector:     selector,
			Declarations: []DeclItem{&Declaration{Name: name, Value: value, Important: imp == ImportantSet}},
		})
		return mutated(sheet), nil
	}
	rewritten := false
	for _, d := range declarations(rule.Declarations) {
		if d.Name != name {
			continue
		}
		d.Value = value
		switch imp {
		case ImportantSet:
			d.Important = true
		case ImportantClear:
			d.Important = false
		}
		rewritten = true
	}
	if !rewritten {
		setDeclaration(rule, name, value, imp == ImportantSet)
	}
	return mutated(sheet), nil
}

// AddVendorPrefix inserts prefixed copies of every property declaration
// immediately before the original, in the given prefix order, value and
// !important flag carried over. Rules inside media and keyframes blocks
// are covered. A nil or empty prefixes list applies DefaultPrefixes.
func AddVendorPrefix(css, property string, prefixes []string) (string, error) {
	sheet, err := Parse(css)
	if err != nil {
		return "", err
	}
	if len(prefixes) == 0 {
		prefixes = DefaultPrefixes
	}
	prefixItems(sheet.Items, property, prefixes)
	return mutated(sheet), nil
}

func prefixItems(items []Item, property string, prefixes []string) {
	for _, it := range items {
		switch n := it.(type) {
		case *QualifiedRule:
			n.Declarations = prefixDeclarations(n.Declarations, property, prefixes)
		case *AtRule:
			if n.HasBlock && recurseKeywords[n.Keyword] {
				prefixItems(n.Block, property, prefixes)
			}
		}
	}
}

func prefixDeclarations(decls []DeclItem, property string, prefixes []string) []DeclItem {
	var out []DeclItem
	for _, it := range decls {
		if d, ok := it.(*Declaration); ok && d.Name == property {
			for _, p := range prefixes {
				out = append(out, &Declaration{Name: p + property, Value: d.Value, Important: d.Important})
			}
		}
		out = append(out, it)
	}
	return out
}

// MergeStylesheets merges sheets in order into one stylesheet. Rules with
// the same selector text collapse into the first occurrence, later sheets
// overriding earlier values property by property; at-rules and comments
// are appended as they come.
func MergeStylesheets(sheets ...string) (string, error) {
	var items []Item
	index := make(map[string]*QualifiedRule)
	for i, css := range sheets {
		sheet, err := Parse(css)
		if err != nil {
			return "", fmt.Errorf("merge input %d: %w", i+1, err)
		}
		for _, it := range sheet.Items {
			r, ok := it.(*QualifiedRule)
			if !ok {
				items = append(items, it)
				continue
			}
			if acc := index[r.Selector]; acc != nil {
				acc.Declarations = mergeDeclarations(acc.Declarations, r.Declarations)
				continue
			}
			index[r.Selector] = r
			items = append(items, r)
		}
	}
	return strings.TrimSpace(Serialize(items)), nil
}

// ReplaceSelectorRule swaps the body of the first rule whose selector
// matches for the given declaration list, e.g. "color: red; margin: 0".
// Every piece must contain a colon and the list as a whole must parse;
// violations surface as *DeclarationSyntaxError. When no rule matches, a
// new one is appended.
func ReplaceSelectorRule(css, selector, declarations string) (string, error) {
	sheet, err := Parse(css)
	if err != nil {
		return "", err
	}
	body, err := parseReplacementList(declarations)
	if err != nil {
		return "", err
	}
	if rule := findRule(sheet.Items, selector); rule != nil {
		rule.Declarations = body
	} else {
		sheet.Items = append(sheet.Items, &QualifiedRule{Selector: selector, Declarations: body})
	}
	return mutated(sheet), nil
}

// parseReplacementList validates a caller-supplied declaration list and
// parses it into body nodes via a probe rule.
func parseReplacementList(declarations string) ([]DeclItem, error) {
	var pieces []string
	for _, piece := range strings.Split(declarations, ";") {
		piece = strings.TrimSpace(piece)
		if piece == "" {
			continue
		}
		if !strings.Contains(piece, ":") {
			return nil, &DeclarationSyntaxError{Declaration: piece, Reason: "missing colon"}
		}
		pieces = append(pieces, piece)
	}
	probe := ".probe { " + strings.Join(pieces, "; ") + " }"
	parsed, err := Parse(probe)
	if err != nil {
		return nil, &DeclarationSyntaxError{Reason: fmt.Sprintf("declaration list does not parse (%v)", err)}
	}
	if len(parsed.Items) != 1 {
		return nil, &DeclarationSyntaxError{Reason: "declaration list does not parse"}
	}
	rule, ok := parsed.Items[0].(*QualifiedRule)
	if !ok {
		return nil, &DeclarationSyntaxError{Reason: "declaration list does not parse"}
	}
	return rule.Declarations, nil
}

// findRule returns the first rule in walk order whose selector matches
// exactly, media and keyframes blocks included.
func findRule(items []Item, selector string) *QualifiedRule {
	var found *QualifiedRule
	Walk(items, Visitor{
		Rule: func(r *QualifiedRule, _ *Context) {
			if found == nil && r.Selector == selector {
				found = r
			}
		},
	})
	return found
}

// setDeclaration replaces the first name declaration in place or appends a
// new one.
func setDeclaration(r *QualifiedRule, name, value string, important bool) {
	for _, d := range declarations(r.Declarations) {
		if d.Name == name {
			d.Value = value
			d.Important = important
			return
		}
	}
	r.Declarations = append(r.Declarations, &Declaration{Name: name, Value: value, Important: important})
}

// deleteDeclarations removes every name declaration, keeping comments.
func deleteDeclarations(decls []DeclItem, name string) []DeclItem {
	var out []DeclItem
	for _, it := range decls {
		if d, ok := it.(*Declaration); ok && d.Name == name {
			continue
		}
		out = append(out, it)
	}
	return out
}

// mutated renders a transformed sheet the way every mutator returns it:
// canonical serialization without the trailing newline.
func mutated(sheet *Stylesheet) string {
	return strings.TrimSpace(sheet.String())
}
