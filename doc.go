// Package csskit provides structural analysis and transformation of CSS
// stylesheets.
//
// csskit parses CSS into a small AST, extracts facts from it (colors,
// fonts, animations, media queries, comments, unused selectors), mutates
// it (add/remove/rewrite properties and rules, vendor prefixing, merging),
// and re-renders it (minified, beautified, sorted, deduplicated). Malformed
// input is rejected up front; valid input is never partially transformed.
//
// # Extraction
//
// Extract structured facts from a stylesheet:
//
//	colors, err := csskit.ExtractColors(css)
//	report, err := csskit.Analyze(css)
//
// Property tables are owned by an Extractor and can be extended:
//
//	ex := csskit.NewExtractor()
//	ex.ColorProperties = append(ex.ColorProperties, "fill", "stroke")
//	colors, err := ex.Colors(css)
//
// # Transformation
//
// Mutators take CSS text and return the transformed text:
//
//	out, err := csskit.AddProperty(css, ".btn", "color", "red", false)
//	out, err := csskit.AddVendorPrefix(css, "transform", nil)
//	out, err := csskit.MergeStylesheets(base, theme, overrides)
//
// Synthesizers re-render the whole sheet:
//
//	compact, err := csskit.Minify(css)
//	pretty, err := csskit.Beautify(css)
//
// # CLI Tool
//
// csskit also provides a CLI tool. Install with:
//
//	go install github.com/yacobolo/csskit/cmd/csskit@latest
//
// Run "csskit --help" for the command surface.
package csskit
