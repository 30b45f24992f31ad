package csskit

import (
	"regexp"
	"slices"
	"strings"
)

// Extractor owns the property tables the extraction operations consult.
// NewExtractor loads the standard tables; callers may append to the slices
// before use to widen what counts as a color, font, or animation property.
type Extractor struct {
	ColorProperties     []string
	FontProperties      []string
	AnimationProperties []string
	NamedColors         []string
}

// NewExtractor returns an Extractor with the standard property tables.
func NewExtractor() *Extractor {
	return &Extractor{
		ColorProperties: []string{
			"color", "background-color", "border-color", "border-top-color",
			"border-right-color", "border-bottom-color", "border-left-color",
			"outline-color", "text-decoration-color", "box-shadow", "text-shadow",
		},
		FontProperties: []string{
			"font", "font-family", "font-size", "font-weight", "font-style",
			"font-variant", "line-height", "text-transform", "letter-spacing",
		},
		AnimationProperties: []string{
			"animation", "animation-name",
			"-webkit-animation", "-webkit-animation-name",
			"-moz-animation", "-moz-animation-name",
			"-ms-animation", "-ms-animation-name",
			"-o-animation", "-o-animation-name",
		},
		NamedColors: []string{
			"black", "white", "red", "green", "blue", "yellow", "purple",
			"orange", "brown", "gray", "transparent",
		},
	}
}

var defaultExtractor = NewExtractor()

// colorValuePatterns match hex, rgb/rgba and hsl/hsla color notation
// anywhere inside a declaration value.
var colorValuePatterns = []*regexp.Regexp{
	regexp.MustCompile(`#([0-9a-fA-F]{3}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})`),
	regexp.MustCompile(`rgb\(\s*\d+\s*,\s*\d+\s*,\s*\d+\s*\)`),
	regexp.MustCompile(`rgba\(\s*\d+\s*,\s*\d+\s*,\s*\d+\s*,\s*[0-9.]+\s*\)`),
	regexp.MustCompile(`hsl\(\s*\d+\s*,\s*\d+%\s*,\s*\d+%\s*\)`),
	regexp.MustCompile(`hsla\(\s*\d+\s*,\s*\d+%\s*,\s*\d+%\s*,\s*[0-9.]+\s*\)`),
}

// MediaRule is one qualified rule inside a media block. Properties holds the
// last value seen per name.
type MediaRule struct {
	Selector   string            `json:"selector"`
	Properties map[string]string `json:"properties"`
}

// Animation pairs a keyframes definition with the selectors that reference
// it. Keyframes maps step selectors ("0%", "from") to their properties.
type Animation struct {
	Keyframes map[string]map[string]string `json:"keyframes"`
	UsedBy    []string                     `json:"used_by"`
}

// FontDeclaration is one typography-related declaration under a selector.
type FontDeclaration struct {
	Property string `json:"property"`
	Value    string `json:"value"`
}

// CommentReport groups a stylesheet's comments by what they annotate:
// Standalone comments precede nothing attachable, Rules comments precede a
// rule (keyed by its selector), Declarations comments precede a declaration
// (keyed selector then property).
type CommentReport struct {
	Standalone   []string                       `json:"standalone"`
	Rules        map[string][]string            `json:"rules"`
	Declarations map[string]map[string][]string `json:"declarations"`
}

// Colors maps each selector to its color-bearing declarations, rendered
// "property: value". A declaration qualifies when its property is listed in
// ColorProperties or its value reads as a color: hex, rgb/rgba, hsl/hsla,
// or one of NamedColors. Rules inside media and keyframes blocks are
// included.
func (e *Extractor) Colors(css string) (map[string][]string, error) {
	sheet, err := Parse(css)
	if err != nil {
		return nil, err
	}
	out := make(map[string][]string)
	Walk(sheet.Items, Visitor{
		Rule: func(r *QualifiedRule, _ *Context) {
			for _, d := range declarations(r.Declarations) {
				if e.isColorProperty(d.Name) || e.hasColorValue(d.Value) {
					out[r.Selector] = append(out[r.Selector], d.Name+": "+d.Value)
				}
			}
		},
	})
	return out, nil
}

// MediaQueries maps each media condition to the rules inside its blocks.
// A condition that appears more than once collects rules from every
// occurrence; an empty block yields an empty slice.
func (e *Extractor) MediaQueries(css string) (map[string][]MediaRule, error) {
	sheet, err := Parse(css)
	if err != nil {
		return nil, err
	}
	out := make(map[string][]MediaRule)
	Walk(sheet.Items, Visitor{
		Enter: func(a *AtRule, _ *Context) {
			if a.Keyword == "media" {
				if _, ok := out[a.Prelude]; !ok {
					out[a.Prelude] = []MediaRule{}
				}
			}
		},
		Rule: func(r *QualifiedRule, ctx *Context) {
			if !ctx.IsMedia() {
				return
			}
			props := make(map[string]string)
			for _, d := range declarations(r.Declarations) {
				props[d.Name] = d.Value
			}
			out[ctx.Prelude] = append(out[ctx.Prelude], MediaRule{Selector: r.Selector, Properties: props})
		},
	})
	return out, nil
}

// Animations extracts keyframes definitions and cross-references them with
// usage. Pass one collects @keyframes blocks (vendor spellings included),
// pass two scans every rule for animation/animation-name declarations and
// records the using selector under the first value token, quotes stripped.
// Only defined animations appear in the result; UsedBy is empty, not nil,
// for an animation nothing references.
func (e *Extractor) Animations(css string) (map[string]Animation, error) {
	sheet, err := Parse(css)
	if err != nil {
		return nil, err
	}

	defined := make(map[string]map[string]map[string]string)
	usage := make(map[string][]string)
	Walk(sheet.Items, Visitor{
		Enter: func(a *AtRule, _ *Context) {
			if !keyframesKeywords[a.Keyword] {
				return
			}
			name := unquote(strings.TrimSpace(a.Prelude))
			steps := make(map[string]map[string]string)
			for _, it := range a.Block {
				step, ok := it.(*QualifiedRule)
				if !ok {
					continue
				}
				props := make(map[string]string)
				for _, d := range declarations(step.Declarations) {
					props[d.Name] = d.Value
				}
				steps[step.Selector] = props
			}
			defined[name] = steps
		},
		Rule: func(r *QualifiedRule, ctx *Context) {
			if ctx.IsKeyframes() {
				return
			}
			for _, d := range declarations(r.Declarations) {
				if !slices.Contains(e.AnimationProperties, d.Name) {
					continue
				}
				if name := animationName(d.Value); name != "" {
					usage[name] = append(usage[name], r.Selector)
				}
			}
		},
	})

	out := make(map[string]Animation, len(defined))
	for name, steps := range defined {
		used := usage[name]
		if used == nil {
			used = []string{}
		}
		out[name] = Animation{Keyframes: steps, UsedBy: used}
	}
	return out, nil
}

// Fonts maps each selector to its typography declarations, in declaration
// order. Selectors with no font-related properties are omitted.
func (e *Extractor) Fonts(css string) (map[string][]FontDeclaration, error) {
	sheet, err := Parse(css)
	if err != nil {
		return nil, err
	}
	out := make(map[string][]FontDeclaration)
	Walk(sheet.Items, Visitor{
		Rule: func(r *QualifiedRule, ctx *Context) {
			if ctx.IsKeyframes() {
				return
			}
			for _, d := range declarations(r.Declarations) {
				if slices.Contains(e.FontProperties, d.Name) {
					out[r.Selector] = append(out[r.Selector], FontDeclaration{Property: d.Name, Value: d.Value})
				}
			}
		},
	})
	return out, nil
}

// Comments associates comments with what follows them. At top level a run
// of comments attaches to the next qualified rule; inside a rule body a run
// attaches to the next declaration; runs followed by anything else (or by
// nothing) count as standalone, except in-rule trailing comments, which are
// dropped.
func (e *Extractor) Comments(css string) (*CommentReport, error) {
	sheet, err := Parse(css)
	if err != nil {
		return nil, err
	}
	report := &CommentReport{
		Standalone:   []string{},
		Rules:        make(map[string][]string),
		Declarations: make(map[string]map[string][]string),
	}
	var pending []string
	flush := func() {
		report.Standalone = append(report.Standalone, pending...)
		pending = nil
	}
	for _, it := range sheet.Items {
		switch n := it.(type) {
		case *Comment:
			pending = append(pending, n.Text)
		case *QualifiedRule:
			if len(pending) > 0 {
				report.Rules[n.Selector] = append(report.Rules[n.Selector], pending...)
				pending = nil
			}
			attachBodyComments(report, n)
		default:
			flush()
		}
	}
	flush()
	return report, nil
}

func attachBodyComments(report *CommentReport, r *QualifiedRule) {
	var pending []string
	for _, it := range r.Declarations {
		switch d := it.(type) {
		case *Comment:
			pending = append(pending, d.Text)
		case *Declaration:
			if len(pending) == 0 {
				continue
			}
			byProp := report.Declarations[r.Selector]
			if byProp == nil {
				byProp = make(map[string][]string)
				report.Declarations[r.Selector] = byProp
			}
			byProp[d.Name] = append(byProp[d.Name], pending...)
			pending = nil
		}
	}
}

var (
	pseudoPattern        = regexp.MustCompile(`::?[a-zA-Z-]+(\([^)]*\))?`)
	selectorSplitPattern = regexp.MustCompile(`\s*[,>+~]\s*`)
)

// UnusedSelectors reports class and id selectors that the given HTML never
// references. The check is a textual heuristic: pseudo suffixes are
// stripped, selectors split on combinators, and each .class or #id part is
// probed as a class="…"/id="…" substring of the HTML. Element selectors are
// never flagged. Results keep first-appearance order.
func (e *Extractor) UnusedSelectors(css, html string) ([]string, error) {
	sheet, err := Parse(css)
	if err != nil {
		return nil, err
	}

	var parts []string
	seen := make(map[string]bool)
	Walk(sheet.Items, Visitor{
		Rule: func(r *QualifiedRule, ctx *Context) {
			if ctx.IsKeyframes() {
				return
			}
			stripped := pseudoPattern.ReplaceAllString(r.Selector, "")
			for _, part := range selectorSplitPattern.Split(stripped, -1) {
				part = strings.TrimSpace(part)
				if part == "" || seen[part] {
					continue
				}
				seen[part] = true
				parts = append(parts, part)
			}
		},
	})

	unused := []string{}
	for _, part := range parts {
		switch {
		case strings.HasPrefix(part, "."):
			if !attrInHTML(html, "class", part[1:]) {
				unused = append(unused, part)
			}
		case strings.HasPrefix(part, "#"):
			if !attrInHTML(html, "id", part[1:]) {
				unused = append(unused, part)
			}
		}
	}
	return unused, nil
}

func attrInHTML(html, attr, name string) bool {
	return strings.Contains(html, attr+`="`+name+`"`) ||
		strings.Contains(html, attr+`='`+name+`'`)
}

// RulesBySelector returns the qualified rules whose selector text contains
// pattern, in document order, media-nested rules included.
func (e *Extractor) RulesBySelector(css, pattern string) ([]*QualifiedRule, error) {
	sheet, err := Parse(css)
	if err != nil {
		return nil, err
	}
	var out []*QualifiedRule
	Walk(sheet.Items, Visitor{
		Rule: func(r *QualifiedRule, ctx *Context) {
			if ctx.IsKeyframes() {
				return
			}
			if strings.Contains(r.Selector, pattern) {
				out = append(out, r)
			}
		},
	})
	return out, nil
}

func (e *Extractor) isColorProperty(name string) bool {
	return slices.Contains(e.ColorProperties, name)
}

func (e *Extractor) hasColorValue(value string) bool {
	if slices.Contains(e.NamedColors, value) {
		return true
	}
	for _, re := range colorValuePatterns {
		if re.MatchString(value) {
			return true
		}
	}
	return false
}

// animationName pulls the referenced animation out of a declaration value:
// the first whitespace-separated token, quotes stripped.
func animationName(value string) string {
	fields := strings.Fields(value)
	if len(fields) == 0 {
		return ""
	}
	return unquote(fields[0])
}

// unquote strips one layer of matching single or double quotes.
func unquote(s string) string {
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
			return s[1 : len(s)-1]
		}
	}
	return s
}

// ExtractColors extracts color declarations with the default tables.
func ExtractColors(css string) (map[string][]string, error) {
	return defaultExtractor.Colors(css)
}

// ExtractMediaQueries extracts media blocks with the default tables.
func ExtractMediaQueries(css string) (map[string][]MediaRule, error) {
	return defaultExtractor.MediaQueries(css)
}

// ExtractAnimations extracts keyframes definitions and their usage with the
// default tables.
func ExtractAnimations(css string) (map[string]Animation, error) {
	return defaultExtractor.Animations(css)
}

// ExtractFonts extracts typography declarations with the default tables.
func ExtractFonts(css string) (map[string][]FontDeclaration, error) {
	return defaultExtractor.Fonts(css)
}

// ExtractComments groups comments by what they annotate.
func ExtractComments(css string) (*CommentReport, error) {
	return defaultExtractor.Comments(css)
}

// ExtractUnusedSelectors reports selectors the HTML never references.
func ExtractUnusedSelectors(css, html string) ([]string, error) {
	return defaultExtractor.UnusedSelectors(css, html)
}

// RulesBySelector returns rules whose selector contains pattern.
func RulesBySelector(css, pattern string) ([]*QualifiedRule, error) {
	return defaultExtractor.RulesBySelector(css, pattern)
}
