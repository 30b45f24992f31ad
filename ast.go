package csskit

// Item is a top-level stylesheet node: a qualified rule, an at-rule, or a
// comment. The set of implementations is closed.
type Item interface {
	itemNode()
}

// DeclItem is a node inside a declaration block: a declaration or a comment.
type DeclItem interface {
	declNode()
}

// Stylesheet is an ordered sequence of top-level items. Order is semantic:
// later rules win over earlier ones during deduplication and merging, and
// later same-name declarations win within one rule.
type Stylesheet struct {
	Items []Item
}

// String serializes the stylesheet in canonical form.
func (s *Stylesheet) String() string {
	return Serialize(s.Items)
}

// QualifiedRule is a selector plus its declaration block, e.g.
// ".btn, .btn-primary { color: red; }". Selector holds the serialized
// prelude verbatim, not decomposed into parts.
type QualifiedRule struct {
	Selector     string
	Declarations []DeclItem
}

// AtRule is an @-rule. Keyword is lowercased and carries no "@".
// Statement at-rules (@import, @charset) have HasBlock false. Block-bearing
// at-rules hold nested rules in Block (@media, @supports, @keyframes) and
// direct declarations in Declarations (@font-face, @page); a block may hold
// both.
type AtRule struct {
	Keyword      string
	Prelude      string
	HasBlock     bool
	Declarations []DeclItem
	Block        []Item
}

// Comment holds a comment's inner text, trimmed, without the /* */ markers.
type Comment struct {
	Text string
}

// Declaration is a single "property: value" pair. Value holds the serialized
// value text with any "!important" marker stripped into the flag.
type Declaration struct {
	Name      string
	Value     string
	Important bool
}

func (*QualifiedRule) itemNode() {}
func (*AtRule) itemNode()        {}
func (*Comment) itemNode()       {}

func (*Declaration) declNode() {}
func (*Comment) declNode()     {}

// declarations filters the declaration nodes out of a rule body.
func declarations(items []DeclItem) []*Declaration {
	var out []*Declaration
	for _, it := range items {
		if d, ok := it.(*Declaration); ok {
			out = append(out, d)
		}
	}
	return out
}

// comments filters the comment nodes out of a rule body.
func comments(items []DeclItem) []*Comment {
	var out []*Comment
	for _, it := range items {
		if c, ok := it.(*Comment); ok {
			out = append(out, c)
		}
	}
	return out
}

// cloneDecl copies a declaration node.
func cloneDecl(d *Declaration) *Declaration {
	c := *d
	return &c
}

// mergeDeclarations folds src into dst with override-by-name semantics: a
// src declaration replaces the first same-name declaration in dst in place,
// otherwise it is appended. Comments in src are dropped; comments already in
// dst stay where they are.
func mergeDeclarations(dst, src []DeclItem) []DeclItem {
	byName := make(map[string]int)
	for i, it := range dst {
		if d, ok := it.(*Declaration); ok {
			if _, seen := byName[d.Name]; !seen {
				byName[d.Name] = i
			}
		}
	}
	for _, it := range src {
		d, ok := it.(*Declaration)
		if !ok {
			continue
		}
		if i, seen := byName[d.Name]; seen {
			dst[i] = cloneDecl(d)
		} else {
			dst = append(dst, cloneDecl(d))
			byName[d.Name] = len(dst) - 1
		}
	}
	return dst
}

// dedupeDeclarations keeps one declaration per name (the last occurrence
// wins, landing at the first occurrence's position) and preserves comments.
func dedupeDeclarations(items []DeclItem) []DeclItem {
	byName := make(map[string]int)
	var out []DeclItem
	for _, it := range items {
		d, ok := it.(*Declaration)
		if !ok {
			out = append(out, it)
			continue
		}
		if i, seen := byName[d.Name]; seen {
			out[i] = d
			continue
		}
		out = append(out, d)
		byName[d.Name] = len(out) - 1
	}
	return out
}
