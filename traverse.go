package csskit

// keyframesKeywords are the at-rule keywords that define animation steps,
// standard and vendor-prefixed.
var keyframesKeywords = map[string]bool{
	"keyframes":         true,
	"-webkit-keyframes": true,
	"-moz-keyframes":    true,
	"-ms-keyframes":     true,
	"-o-keyframes":      true,
}

// recurseKeywords are the at-rule keywords whose blocks Walk descends into.
// Every other at-rule passes through untouched.
var recurseKeywords = map[string]bool{
	"media":             true,
	"keyframes":         true,
	"-webkit-keyframes": true,
	"-moz-keyframes":    true,
	"-ms-keyframes":     true,
	"-o-keyframes":      true,
}

// Context describes the enclosing at-rule chain during traversal. A nil
// Context means top level; Depth counts enclosing at-rules starting at 1.
type Context struct {
	Keyword string
	Prelude string
	Depth   int
	Parent  *Context
}

// IsMedia reports whether the immediately enclosing at-rule is @media.
func (c *Context) IsMedia() bool {
	return c != nil && c.Keyword == "media"
}

// IsKeyframes reports whether the immediately enclosing at-rule is a
// keyframes block (any vendor spelling).
func (c *Context) IsKeyframes() bool {
	return c != nil && keyframesKeywords[c.Keyword]
}

// Visitor receives traversal callbacks; nil handlers are skipped. Enter
// fires for a recursed at-rule before its block is walked. AtRule fires for
// every at-rule that is not recursed into: statements and pass-through
// blocks alike.
type Visitor struct {
	Rule    func(*QualifiedRule, *Context)
	AtRule  func(*AtRule, *Context)
	Comment func(*Comment, *Context)
	Enter   func(*AtRule, *Context)
}

// Walk traverses items in order, recursing into @media and keyframes blocks
// (standard and the -webkit-/-moz-/-ms-/-o- spellings). All components
// share this traversal; recursion is implemented here and nowhere else.
func Walk(items []Item, v Visitor) {
	walk(items, nil, v)
}

func walk(items []Item, ctx *Context, v Visitor) {
	for _, it := range items {
		switch n := it.(type) {
		case *QualifiedRule:
			if v.Rule != nil {
				v.Rule(n, ctx)
			}
		case *AtRule:
			if n.HasBlock && recurseKeywords[n.Keyword] {
				if v.Enter != nil {
					v.Enter(n, ctx)
				}
				depth := 1
				if ctx != nil {
					depth = ctx.Depth + 1
				}
				walk(n.Block, &Context{Keyword: n.Keyword, Prelude: n.Prelude, Depth: depth, Parent: ctx}, v)
				continue
			}
			if v.AtRule != nil {
				v.AtRule(n, ctx)
			}
		case *Comment:
			if v.Comment != nil {
				v.Comment(n, ctx)
			}
		}
	}
}
