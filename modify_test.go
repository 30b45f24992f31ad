package csskit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddProperty(t *testing.T) {
	tests := []struct {
		name      string
		css       string
		selector  string
		prop      string
		value     string
		important bool
		want      string
	}{
		{
			name:     "replaces existing value",
			css:      ".btn { color: red; }",
			selector: ".btn",
			prop:     "color",
			value:    "blue",
			want:     ".btn {\n    color: blue;\n}",
		},
		{
			name:     "appends new property",
			css:      ".btn { color: red; }",
			selector: ".btn",
			prop:     "margin",
			value:    "0",
			want:     ".btn {\n    color: red;\n    margin: 0;\n}",
		},
		{
			name:      "creates missing rule at the end",
			css:       ".a { color: red; }",
			selector:  ".b",
			prop:      "margin",
			value:     "0",
			important: true,
			want:      ".a {\n    color: red;\n}\n\n.b {\n    margin: 0 !important;\n}",
		},
		{
			name:     "reaches rules inside media blocks",
			css:      "@media screen { .btn { color: red; } }",
			selector: ".btn",
			prop:     "margin",
			value:    "0",
			want:     "@media screen {\n    .btn {\n        color: red;\n        margin: 0;\n    }\n}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := AddProperty(tt.css, tt.selector, tt.prop, tt.value, tt.important)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRemoveProperty(t *testing.T) {
	tests := []struct {
		name     string
		css      string
		selector string
		prop     string
		want     string
	}{
		{
			name:     "drops one property",
			css:      ".a { color: red; margin: 0; }",
			selector: ".a",
			prop:     "color",
			want:     ".a {\n    margin: 0;\n}",
		},
		{
			name:     "drops the rule when its body empties",
			css:      ".a { color: red; }\n.b { margin: 0; }",
			selector: ".a",
			prop:     "color",
			want:     ".b {\n    margin: 0;\n}",
		},
		{
			name:     "a comment keeps the rule alive",
			css:      ".a { /* keep */ color: red; }",
			selector: ".a",
			prop:     "color",
			want:     ".a {\n    /* keep */\n}",
		},
		{
			name:     "covers every matching rule, media included",
			css:      ".a { color: red; }\n@media screen { .a { color: blue; padding: 0; } }",
			selector: ".a",
			prop:     "color",
			want:     "@media screen {\n    .a {\n        padding: 0;\n    }\n}",
		},
		{
			name:     "an emptied at-rule stays",
			css:      "@media screen { .a { color: red; } }",
			selector: ".a",
			prop:     "color",
			want:     "@media screen {\n}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := RemoveProperty(tt.css, tt.selector, tt.prop)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRemoveSelector(t *testing.T) {
	tests := []struct {
		name     string
		css      string
		selector string
		want     string
	}{
		{
			name:     "drops a top level rule",
			css:      ".a { color: red; }\n.b { margin: 0; }",
			selector: ".a",
			want:     ".b {\n    margin: 0;\n}",
		},
		{
			name:     "drops the media block it empties",
			css:      ".keep { color: red; }\n@media screen { .gone { color: blue; } }",
			selector: ".gone",
			want:     ".keep {\n    color: red;\n}",
		},
		{
			name:     "media with remaining rules stays",
			css:      "@media screen { .gone { color: blue; } .stay { margin: 0; } }",
			selector: ".gone",
			want:     "@media screen {\n    .stay {\n        margin: 0;\n    }\n}",
		},
		{
			name:     "removes keyframe steps",
			css:      "@keyframes fade { from { opacity: 0; } to { opacity: 1; } }",
			selector: "from",
			want:     "@keyframes fade {\n    to {\n        opacity: 1;\n    }\n}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := RemoveSelector(tt.css, tt.selector)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestModifyProperty(t *testing.T) {
	tests := []struct {
		name     string
		css      string
		selector string
		prop     string
		value    string
		imp      Importance
		want     string
	}{
		{
			name:     "rewrites every same-name declaration in the rule",
			css:      ".a { color: red; background: white; color: blue; }",
			selector: ".a",
			prop:     "color",
			value:    "green",
			imp:      ImportantKeep,
			want:     ".a {\n    color: green;\n    background: white;\n    color: green;\n}",
		},
		{
			name:     "touches only the first matching rule",
			css:      ".a { color: red; }\n.a { color: blue; }",
			selector: ".a",
			prop:     "color",
			value:    "green",
			imp:      ImportantKeep,
			want:     ".a {\n    color: green;\n}\n\n.a {\n    color: blue;\n}",
		},
		{
			name:     "keep preserves the important flag",
			css:      ".a { color: red !important; }",
			selector: ".a",
			prop:     "color",
			value:    "blue",
			imp:      ImportantKeep,
			want:     ".a {\n    color: blue !important;\n}",
		},
		{
			name:     "clear strips the important flag",
			css:      ".a { color: red !important; }",
			selector: ".a",
			prop:     "color",
			value:    "blue",
			imp:      ImportantClear,
			want:     ".a {\n    color: blue;\n}",
		},
		{
			name:     "set forces the important flag on",
			css:      ".a { color: red; }",
			selector: ".a",
			prop:     "color",
			value:    "blue",
			imp:      ImportantSet,
			want:     ".a {\n    color: blue !important;\n}",
		},
		{
			name:     "appends a plain declaration when the property is missing",
			css:      ".a { margin: 0; }",
			selector: ".a",
			prop:     "color",
			value:    "blue",
			imp:      ImportantKeep,
			want:     ".a {\n    margin: 0;\n    color: blue;\n}",
		},
		{
			name:     "appended declaration honors set",
			css:      ".a { margin: 0; }",
			selector: ".a",
			prop:     "color",
			value:    "blue",
			imp:      ImportantSet,
			want:     ".a {\n    margin: 0;\n    color: blue !important;\n}",
		},
		{
			name:     "appends a rule when the selector is missing",
			css:      ".a { margin: 0; }",
			selector: ".b",
			prop:     "color",
			value:    "red",
			imp:      ImportantSet,
			want:     ".a {\n    margin: 0;\n}\n\n.b {\n    color: red !important;\n}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ModifyProperty(tt.css, tt.selector, tt.prop, tt.value, tt.imp)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAddVendorPrefix(t *testing.T) {
	t.Run("default prefixes precede the original in order", func(t *testing.T) {
		got, err := AddVendorPrefix(".a { transition: all 0.3s; }", "transition", nil)
		require.NoError(t, err)
		want := ".a {\n" +
			"    -webkit-transition: all 0.3s;\n" +
			"    -moz-transition: all 0.3s;\n" +
			"    -ms-transition: all 0.3s;\n" +
			"    -o-transition: all 0.3s;\n" +
			"    transition: all 0.3s;\n" +
			"}"
		assert.Equal(t, want, got)
	})

	t.Run("custom prefix list carries the important flag", func(t *testing.T) {
		got, err := AddVendorPrefix(".a { user-select: none !important; }", "user-select", []string{"-webkit-"})
		require.NoError(t, err)
		assert.Equal(t, ".a {\n    -webkit-user-select: none !important;\n    user-select: none !important;\n}", got)
	})

	t.Run("prefixes inside media blocks", func(t *testing.T) {
		got, err := AddVendorPrefix("@media screen { .a { appearance: none; } }", "appearance", []string{"-moz-"})
		require.NoError(t, err)
		assert.Equal(t, "@media screen {\n    .a {\n        -moz-appearance: none;\n        appearance: none;\n    }\n}", got)
	})

	t.Run("other properties are untouched", func(t *testing.T) {
		got, err := AddVendorPrefix(".a { color: red; }", "transition", nil)
		require.NoError(t, err)
		assert.Equal(t, ".a {\n    color: red;\n}", got)
	})
}

func TestMergeStylesheets(t *testing.T) {
	t.Run("later sheets override property by property", func(t *testing.T) {
		got, err := MergeStylesheets(
			".a { color: red; margin: 0; }",
			".a { color: blue; }\n.b { padding: 0; }",
		)
		require.NoError(t, err)
		assert.Equal(t, ".a {\n    color: blue;\n    margin: 0;\n}\n\n.b {\n    padding: 0;\n}", got)
	})

	t.Run("at-rules and comments pass through in order", func(t *testing.T) {
		got, err := MergeStylesheets(
			`@import url("base.css");`+"\n.a { color: red; }",
			"/* second */\n@media screen { .a { color: blue; } }",
		)
		require.NoError(t, err)
		// The media rule is not merged into the top level .a.
		want := `@import url("base.css");` + "\n\n" +
			".a {\n    color: red;\n}\n\n" +
			"/* second */\n\n" +
			"@media screen {\n    .a {\n        color: blue;\n    }\n}"
		assert.Equal(t, want, got)
	})

	t.Run("a single sheet is normalized", func(t *testing.T) {
		got, err := MergeStylesheets(".x{color:red}")
		require.NoError(t, err)
		assert.Equal(t, ".x {\n    color: red;\n}", got)
	})

	t.Run("parse failures name the offending input", func(t *testing.T) {
		_, err := MergeStylesheets(".a { color: red; }", ".b { color: blue;")
		require.Error(t, err)
		assert.ErrorContains(t, err, "merge input 2:")
		assert.ErrorIs(t, err, ErrUnbalancedBraces)
	})
}

func TestReplaceSelectorRule(t *testing.T) {
	t.Run("replaces the rule body", func(t *testing.T) {
		got, err := ReplaceSelectorRule(".btn { color: red; padding: 4px; }", ".btn", "color: blue; margin: 0")
		require.NoError(t, err)
		assert.Equal(t, ".btn {\n    color: blue;\n    margin: 0;\n}", got)
	})

	t.Run("parses important in the replacement", func(t *testing.T) {
		got, err := ReplaceSelectorRule(".btn { color: red; }", ".btn", "color: blue !important")
		require.NoError(t, err)
		assert.Equal(t, ".btn {\n    color: blue !important;\n}", got)
	})

	t.Run("appends a rule when the selector is missing", func(t *testing.T) {
		got, err := ReplaceSelectorRule(".a { color: red; }", ".b", "margin: 0")
		require.NoError(t, err)
		assert.Equal(t, ".a {\n    color: red;\n}\n\n.b {\n    margin: 0;\n}", got)
	})

	t.Run("an empty list empties the rule", func(t *testing.T) {
		got, err := ReplaceSelectorRule(".btn { color: red; }", ".btn", "")
		require.NoError(t, err)
		assert.Equal(t, ".btn {\n}", got)
	})

	t.Run("rejects a piece without a colon", func(t *testing.T) {
		_, err := ReplaceSelectorRule(".a { color: red; }", ".a", "color red")
		require.Error(t, err)

		var dse *DeclarationSyntaxError
		require.ErrorAs(t, err, &dse)
		assert.Equal(t, "color red", dse.Declaration)
		assert.Equal(t, "missing colon", dse.Reason)
		assert.EqualError(t, err, `invalid declaration syntax: missing colon in "color red"`)
	})
}
