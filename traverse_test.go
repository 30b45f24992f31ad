package csskit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWalkContexts(t *testing.T) {
	css := `
.top { color: red; }
@media screen { .inner { color: blue; } }
@supports (display: grid) { .passed { display: grid; } }
@-webkit-keyframes spin { from { opacity: 0; } }
`
	sheet, err := Parse(css)
	require.NoError(t, err)

	type seenRule struct {
		selector  string
		media     bool
		keyframes bool
		depth     int
	}
	var rules []seenRule
	var entered []string
	var passedThrough []string

	Walk(sheet.Items, Visitor{
		Rule: func(r *QualifiedRule, ctx *Context) {
			depth := 0
			if ctx != nil {
				depth = ctx.Depth
			}
			rules = append(rules, seenRule{
				selector:  r.Selector,
				media:     ctx.IsMedia(),
				keyframes: ctx.IsKeyframes(),
				depth:     depth,
			})
		},
		Enter: func(a *AtRule, _ *Context) {
			entered = append(entered, a.Keyword)
		},
		AtRule: func(a *AtRule, _ *Context) {
			passedThrough = append(passedThrough, a.Keyword)
		},
	})

	assert.Equal(t, []seenRule{
		{selector: ".top"},
		{selector: ".inner", media: true, depth: 1},
		{selector: "from", keyframes: true, depth: 1},
	}, rules)
	assert.Equal(t, []string{"media", "-webkit-keyframes"}, entered)

	// @supports is not recursed into: it fires AtRule and hides its rules.
	assert.Equal(t, []string{"supports"}, passedThrough)
}

func TestWalkNestedMediaDepth(t *testing.T) {
	css := "@media screen { @media (max-width: 600px) { .deep { color: red; } } }"
	sheet, err := Parse(css)
	require.NoError(t, err)

	var got *Context
	Walk(sheet.Items, Visitor{
		Rule: func(_ *QualifiedRule, ctx *Context) { got = ctx },
	})

	require.NotNil(t, got)
	assert.Equal(t, 2, got.Depth)
	assert.Equal(t, "(max-width: 600px)", got.Prelude)
	require.NotNil(t, got.Parent)
	assert.Equal(t, "screen", got.Parent.Prelude)
	assert.Nil(t, got.Parent.Parent)
}

func TestContextNilReceivers(t *testing.T) {
	var ctx *Context
	assert.False(t, ctx.IsMedia())
	assert.False(t, ctx.IsKeyframes())
}
