package csskit

import "strings"

// indentStep is one level of indentation in pretty output.
const indentStep = "    "

// Serialize renders items as canonical CSS text: 4-space indentation, one
// declaration per line, blocks separated by blank lines. Whitespace from the
// source is not preserved; structure, order, values and !important flags are.
func Serialize(items []Item) string {
	w := &writer{indent: indentStep}
	w.writeItems(items, 0)
	return w.output()
}

// SerializeDeclarations renders a declaration list inline, e.g.
// "color: red; margin: 0;".
func SerializeDeclarations(decls []DeclItem) string {
	var parts []string
	for _, it := range decls {
		switch d := it.(type) {
		case *Declaration:
			parts = append(parts, d.Name+": "+d.Value+importantSuffix(d.Important)+";")
		case *Comment:
			parts = append(parts, "/* "+d.Text+" */")
		}
	}
	return strings.Join(parts, " ")
}

func importantSuffix(important bool) string {
	if important {
		return " !important"
	}
	return ""
}

// writer renders AST nodes as CSS text. Every synthesizer and mutator goes
// through it so formatting policy lives in one place: indent is the step for
// pretty output, compact drops all non-significant whitespace and comments,
// splitSelectors puts each comma-separated selector part on its own line.
type writer struct {
	sb             strings.Builder
	indent         string
	compact        bool
	splitSelectors bool
}

func (w *writer) output() string {
	out := w.sb.String()
	if w.compact || out == "" {
		return out
	}
	return strings.TrimRight(out, "\n") + "\n"
}

func (w *writer) pad(depth int) string {
	if w.compact {
		return ""
	}
	return strings.Repeat(w.indent, depth)
}

func (w *writer) writeItems(items []Item, depth int) {
	first := true
	for _, it := range items {
		if !first && !w.compact {
			w.sb.WriteByte('\n')
		}
		first = false
		switch n := it.(type) {
		case *QualifiedRule:
			w.writeRule(n, depth)
		case *AtRule:
			w.writeAtRule(n, depth)
		case *Comment:
			w.writeComment(n, depth)
		}
	}
}

func (w *writer) writeRule(r *QualifiedRule, depth int) {
	if w.compact {
		w.sb.WriteString(r.Selector)
		w.sb.WriteByte('{')
		w.writeDeclarations(r.Declarations, 0)
		w.sb.WriteByte('}')
		return
	}
	pad := w.pad(depth)
	sel := r.Selector
	if w.splitSelectors && strings.Contains(sel, ",") {
		sel = strings.Join(splitTrim(sel, ","), ",\n"+pad)
	}
	w.sb.WriteString(pad)
	w.sb.WriteString(sel)
	w.sb.WriteString(" {\n")
	w.writeDeclarations(r.Declarations, depth+1)
	w.sb.WriteString(pad)
	w.sb.WriteString("}\n")
}

func (w *writer) writeAtRule(a *AtRule, depth int) {
	head := "@" + a.Keyword
	if a.Prelude != "" {
		head += " " + a.Prelude
	}
	pad := w.pad(depth)

	if !a.HasBlock {
		if w.compact {
			w.sb.WriteString(head)
			w.sb.WriteByte(';')
			return
		}
		w.sb.WriteString(pad)
		w.sb.WriteString(head)
		w.sb.WriteString(";\n")
		return
	}

	if w.compact {
		w.sb.WriteString(head)
		w.sb.WriteByte('{')
		w.writeDeclarations(a.Declarations, 0)
		if hasDeclaration(a.Declarations) && len(a.Block) > 0 {
			w.sb.WriteByte(';')
		}
		w.writeItems(a.Block, 0)
		w.sb.WriteByte('}')
		return
	}

	w.sb.WriteString(pad)
	w.sb.WriteString(head)
	w.sb.WriteString(" {\n")
	w.writeDeclarations(a.Declarations, depth+1)
	if len(a.Declarations) > 0 && len(a.Block) > 0 {
		w.sb.WriteByte('\n')
	}
	w.writeItems(a.Block, depth+1)
	w.sb.WriteString(pad)
	w.sb.WriteString("}\n")
}

func (w *writer) writeComment(c *Comment, depth int) {
	if w.compact {
		w.sb.WriteString("/*")
		w.sb.WriteString(c.Text)
		w.sb.WriteString("*/")
		return
	}
	w.sb.WriteString(w.pad(depth))
	w.sb.WriteString("/* ")
	w.sb.WriteString(c.Text)
	w.sb.WriteString(" */\n")
}

func (w *writer) writeDeclarations(decls []DeclItem, depth int) {
	if w.compact {
		first := true
		for _, it := range decls {
			d, ok := it.(*Declaration)
			if !ok {
				continue
			}
			if !first {
				w.sb.WriteByte(';')
			}
			first = false
			w.sb.WriteString(d.Name)
			w.sb.WriteByte(':')
			w.sb.WriteString(d.Value)
			if d.Important {
				w.sb.WriteString("!important")
			}
		}
		return
	}
	pad := w.pad(depth)
	for _, it := range decls {
		switch d := it.(type) {
		case *Declaration:
			w.sb.WriteString(pad)
			w.sb.WriteString(d.Name)
			w.sb.WriteString(": ")
			w.sb.WriteString(d.Value)
			w.sb.WriteString(importantSuffix(d.Important))
			w.sb.WriteString(";\n")
		case *Comment:
			w.sb.WriteString(pad)
			w.sb.WriteString("/* ")
			w.sb.WriteString(d.Text)
			w.sb.WriteString(" */\n")
		}
	}
}

func hasDeclaration(decls []DeclItem) bool {
	for _, it := range decls {
		if _, ok := it.(*Declaration); ok {
			return true
		}
	}
	return false
}

// splitTrim splits on sep and trims each part, dropping empties.
func splitTrim(s, sep string) []string {
	var out []string
	for _, part := range strings.Split(s, sep) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
