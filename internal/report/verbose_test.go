package report

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yacobolo/csskit"
)

func TestVerbosePrintMediaQueries(t *testing.T) {
	var buf bytes.Buffer
	v := NewVerboseReporter(&buf, false)
	v.PrintMediaQueries(sampleAnalysis(t))
	out := buf.String()

	assert.Contains(t, out, "Media Queries")
	assert.Contains(t, out, "@media screen\n")
	assert.Contains(t, out, "  .btn\n")
	assert.Contains(t, out, "    padding ×1\n")
}

func TestVerbosePrintSelectorProperties(t *testing.T) {
	var buf bytes.Buffer
	v := NewVerboseReporter(&buf, false)
	v.PrintSelectorProperties(sampleAnalysis(t))
	out := buf.String()

	assert.Contains(t, out, "Selector Properties")
	assert.Contains(t, out, "\n.btn\n")
	assert.Contains(t, out, "  color: #ff0000\n")
	// The media declaration folds into the selector's property map.
	assert.Contains(t, out, "  padding: 4px\n")
	assert.Contains(t, out, "\n#main\n")
	assert.Contains(t, out, "  font-family: Arial\n")
}

func TestVerbosePrintComments(t *testing.T) {
	var buf bytes.Buffer
	v := NewVerboseReporter(&buf, false)
	v.PrintComments(&csskit.Analysis{Comments: []string{"banner", "line one\n   line two"}})
	out := buf.String()

	assert.Contains(t, out, "• banner\n")
	assert.Contains(t, out, "• line one line two\n")
}

func TestVerboseEmptySectionsPrintNothing(t *testing.T) {
	var buf bytes.Buffer
	v := NewVerboseReporter(&buf, false)
	empty := &csskit.Analysis{}
	v.PrintMediaQueries(empty)
	v.PrintSelectorProperties(empty)
	v.PrintComments(empty)

	assert.Empty(t, buf.String())
}
