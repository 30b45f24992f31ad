package csskit

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		css   string
		check func(*testing.T, *Stylesheet)
	}{
		{
			name: "single rule",
			css:  ".btn { color: red; }",
			check: func(t *testing.T, s *Stylesheet) {
				require.Len(t, s.Items, 1)
				rule := s.Items[0].(*QualifiedRule)
				assert.Equal(t, ".btn", rule.Selector)
				require.Len(t, rule.Declarations, 1)
				d := rule.Declarations[0].(*Declaration)
				assert.Equal(t, "color", d.Name)
				assert.Equal(t, "red", d.Value)
				assert.False(t, d.Important)
			},
		},
		{
			name: "selector list normalized",
			css:  ".a,.b ,  .c { margin: 0; }",
			check: func(t *testing.T, s *Stylesheet) {
				require.Len(t, s.Items, 1)
				rule := s.Items[0].(*QualifiedRule)
				assert.Equal(t, ".a, .b, .c", rule.Selector)
			},
		},
		{
			name: "important flag split from value",
			css:  ".a { color: red !important; }",
			check: func(t *testing.T, s *Stylesheet) {
				d := s.Items[0].(*QualifiedRule).Declarations[0].(*Declaration)
				assert.Equal(t, "red", d.Value)
				assert.True(t, d.Important)
			},
		},
		{
			name: "custom property",
			css:  ":root { --accent: #007bff; }",
			check: func(t *testing.T, s *Stylesheet) {
				rule := s.Items[0].(*QualifiedRule)
				assert.Equal(t, ":root", rule.Selector)
				d := rule.Declarations[0].(*Declaration)
				assert.Equal(t, "--accent", d.Name)
				assert.Equal(t, "#007bff", d.Value)
			},
		},
		{
			name: "media block nests rules",
			css:  "@media screen and (max-width: 600px) { .a { color: red; } }",
			check: func(t *testing.T, s *Stylesheet) {
				require.Len(t, s.Items, 1)
				at := s.Items[0].(*AtRule)
				assert.Equal(t, "media", at.Keyword)
				assert.Equal(t, "screen and (max-width: 600px)", at.Prelude)
				assert.True(t, at.HasBlock)
				require.Len(t, at.Block, 1)
				rule := at.Block[0].(*QualifiedRule)
				assert.Equal(t, ".a", rule.Selector)
			},
		},
		{
			name: "keyframes steps are rules",
			css:  "@keyframes spin { from { opacity: 0; } to { opacity: 1; } }",
			check: func(t *testing.T, s *Stylesheet) {
				at := s.Items[0].(*AtRule)
				assert.Equal(t, "keyframes", at.Keyword)
				assert.Equal(t, "spin", at.Prelude)
				require.Len(t, at.Block, 2)
				assert.Equal(t, "from", at.Block[0].(*QualifiedRule).Selector)
				assert.Equal(t, "to", at.Block[1].(*QualifiedRule).Selector)
			},
		},
		{
			name: "font-face holds direct declarations",
			css:  `@font-face { font-family: "Inter"; src: url(inter.woff2); }`,
			check: func(t *testing.T, s *Stylesheet) {
				at := s.Items[0].(*AtRule)
				assert.Equal(t, "font-face", at.Keyword)
				assert.Empty(t, at.Block)
				require.Len(t, at.Declarations, 2)
				d := at.Declarations[0].(*Declaration)
				assert.Equal(t, "font-family", d.Name)
				assert.Equal(t, `"Inter"`, d.Value)
			},
		},
		{
			name: "import statement",
			css:  `@import url("nav.css") screen;`,
			check: func(t *testing.T, s *Stylesheet) {
				at := s.Items[0].(*AtRule)
				assert.Equal(t, "import", at.Keyword)
				assert.False(t, at.HasBlock)
				assert.Contains(t, at.Prelude, "nav.css")
				assert.Contains(t, at.Prelude, "screen")
			},
		},
		{
			name: "comments kept at top level and in bodies",
			css:  "/* header */ .a { /* note */ color: red; }",
			check: func(t *testing.T, s *Stylesheet) {
				require.Len(t, s.Items, 2)
				assert.Equal(t, "header", s.Items[0].(*Comment).Text)
				rule := s.Items[1].(*QualifiedRule)
				require.Len(t, rule.Declarations, 2)
				assert.Equal(t, "note", rule.Declarations[0].(*Comment).Text)
			},
		},
		{
			name: "empty input",
			css:  "",
			check: func(t *testing.T, s *Stylesheet) {
				assert.Empty(t, s.Items)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sheet, err := Parse(tt.css)
			require.NoError(t, err)
			tt.check(t, sheet)
		})
	}
}

func TestParseRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		css  string
		want string
	}{
		{
			name: "whitespace normalized",
			css:  ".btn{color:red;margin:0 auto}",
			want: ".btn {\n    color: red;\n    margin: 0 auto;\n}\n",
		},
		{
			name: "blocks separated by blank line",
			css:  ".a{color:red}.b{color:blue}",
			want: ".a {\n    color: red;\n}\n\n.b {\n    color: blue;\n}\n",
		},
		{
			name: "media indents nested rules",
			css:  "@media print{.a{color:black}}",
			want: "@media print {\n    .a {\n        color: black;\n    }\n}\n",
		},
		{
			name: "important marker restored",
			css:  ".a{color:red!important}",
			want: ".a {\n    color: red !important;\n}\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sheet, err := Parse(tt.css)
			require.NoError(t, err)
			assert.Equal(t, tt.want, sheet.String())

			// Canonical output parses back to the same canonical output.
			again, err := Parse(sheet.String())
			require.NoError(t, err)
			assert.Equal(t, tt.want, again.String())
		})
	}
}

func TestParseUnbalancedBraces(t *testing.T) {
	tests := []struct {
		name     string
		css      string
		wantLine int
		wantCol  int
	}{
		{
			name:     "missing closing brace",
			css:      ".a { color: red;",
			wantLine: 1,
			wantCol:  4,
		},
		{
			name:     "stray closing brace",
			css:      ".a { color: red; } }",
			wantLine: 1,
			wantCol:  20,
		},
		{
			name:     "multiline input points at the unclosed brace",
			css:      ".a {\n    color: red;\n",
			wantLine: 1,
			wantCol:  4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.css)
			require.Error(t, err)
			require.ErrorIs(t, err, ErrUnbalancedBraces)

			var serr *SyntaxError
			require.ErrorAs(t, err, &serr)
			assert.Equal(t, tt.wantLine, serr.Line)
			assert.Equal(t, tt.wantCol, serr.Column)
		})
	}
}

func TestParseNestingDepthLimit(t *testing.T) {
	depth := maxNestingDepth + 2
	css := strings.Repeat("@media all {", depth) + ".a{color:red}" + strings.Repeat("}", depth)

	_, err := Parse(css)
	require.Error(t, err)

	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Contains(t, perr.Error(), "nesting")
}

func TestParseDeclarations(t *testing.T) {
	decls, err := ParseDeclarations("color: red; /* spacing */ margin: 0 auto; padding: 4px !important")
	require.NoError(t, err)
	require.Len(t, decls, 4)

	d := decls[0].(*Declaration)
	assert.Equal(t, "color", d.Name)
	assert.Equal(t, "red", d.Value)

	assert.Equal(t, "spacing", decls[1].(*Comment).Text)

	last := decls[3].(*Declaration)
	assert.Equal(t, "padding", last.Name)
	assert.Equal(t, "4px", last.Value)
	assert.True(t, last.Important)
}

func TestParseErrorPosition(t *testing.T) {
	pe := newParseError(errors.New("plain"))
	assert.Zero(t, pe.Line)
	assert.Equal(t, "css parse error: plain", pe.Error())

	pe = &ParseError{Line: 3, Column: 7, Err: errors.New("bad token")}
	assert.Equal(t, "css parse error at line 3, column 7: bad token", pe.Error())
}
