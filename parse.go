package csskit

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
	"go.uber.org/zap"
)

// maxNestingDepth bounds at-rule recursion during parsing. Real stylesheets
// nest two or three levels; anything deeper is treated as malformed.
const maxNestingDepth = 64

// Parser turns CSS text into the Stylesheet AST. The zero value is not
// usable; construct with NewParser.
type Parser struct {
	log *zap.Logger
}

// NewParser creates a Parser. A nil logger disables debug tracing.
func NewParser(log *zap.Logger) *Parser {
	if log == nil {
		log = zap.NewNop()
	}
	return &Parser{log: log.Named("css-parser")}
}

var defaultParser = NewParser(nil)

// Parse parses a stylesheet with the default parser. It reports a
// *SyntaxError for unbalanced braces and a *ParseError for structural
// errors; malformed input is never partially transformed.
func Parse(text string) (*Stylesheet, error) {
	return defaultParser.Parse(text)
}

// ParseDeclarations parses a bare declaration list (the body of a rule,
// without braces) with the default parser.
func ParseDeclarations(text string) ([]DeclItem, error) {
	return defaultParser.ParseDeclarations(text)
}

// Parse parses CSS text into a Stylesheet.
func (p *Parser) Parse(text string) (*Stylesheet, error) {
	if err := checkBraces(text); err != nil {
		return nil, err
	}

	p.log.Debug("parsing stylesheet", zap.Int("bytes", len(text)))

	parser := css.NewParser(parse.NewInputString(text), false)
	items, _, err := p.parseBlock(parser, 0)
	if err != nil {
		return nil, err
	}

	p.log.Debug("parsed stylesheet", zap.Int("items", len(items)))
	return &Stylesheet{Items: items}, nil
}

// ParseDeclarations parses a declaration list such as "color: red; margin: 0".
func (p *Parser) ParseDeclarations(text string) ([]DeclItem, error) {
	parser := css.NewParser(parse.NewInputString(text), true)

	var body []DeclItem
	for {
		gt, _, data := parser.Next()
		switch gt {
		case css.ErrorGrammar:
			if err := parser.Err(); err != nil && !errors.Is(err, io.EOF) {
				return nil, newParseError(err)
			}
			return body, nil
		case css.CommentGrammar:
			body = append(body, &Comment{Text: commentText(data)})
		case css.DeclarationGrammar, css.CustomPropertyGrammar:
			body = append(body, declarationFromTokens(data, parser.Values()))
		}
	}
}

// newParseError wraps a collaborator error, lifting out the position when
// the underlying type exposes one.
func newParseError(err error) *ParseError {
	pe := &ParseError{Err: err}
	var perr *parse.Error
	if errors.As(err, &perr) {
		pe.Line = perr.Line
		pe.Column = perr.Column
	}
	return pe
}

// parseBlock consumes grammar events until the enclosing block ends (or the
// input does, at depth 0). Nested rules land in items; direct declarations,
// as in @font-face bodies, land in decls.
func (p *Parser) parseBlock(parser *css.Parser, depth int) (items []Item, decls []DeclItem, err error) {
	if depth > maxNestingDepth {
		return nil, nil, &ParseError{Err: fmt.Errorf("at-rule nesting deeper than %d levels", maxNestingDepth)}
	}

	var selectorParts []string
	for {
		gt, _, data := parser.Next()
		switch gt {
		case css.ErrorGrammar:
			if err := parser.Err(); err != nil && !errors.Is(err, io.EOF) {
				return nil, nil, newParseError(err)
			}
			return items, decls, nil

		case css.EndAtRuleGrammar:
			return items, decls, nil

		case css.CommentGrammar:
			items = append(items, &Comment{Text: commentText(data)})

		case css.AtRuleGrammar:
			// Statement at-rule, e.g. @import or @charset.
			items = append(items, &AtRule{
				Keyword: atKeyword(data),
				Prelude: tokensText(nil, parser.Values()),
			})

		case css.BeginAtRuleGrammar:
			at := &AtRule{
				Keyword:  atKeyword(data),
				Prelude:  tokensText(nil, parser.Values()),
				HasBlock: true,
			}
			at.Block, at.Declarations, err = p.parseBlock(parser, depth+1)
			if err != nil {
				return nil, nil, err
			}
			items = append(items, at)

		case css.QualifiedRuleGrammar:
			// One comma-separated selector part; the rest of the prelude
			// arrives with BeginRulesetGrammar.
			selectorParts = append(selectorParts, tokensText(data, parser.Values()))

		case css.BeginRulesetGrammar:
			selectorParts = append(selectorParts, tokensText(data, parser.Values()))
			rule := &QualifiedRule{Selector: strings.Join(selectorParts, ", ")}
			selectorParts = nil
			rule.Declarations, err = p.parseRuleBody(parser)
			if err != nil {
				return nil, nil, err
			}
			items = append(items, rule)

		case css.DeclarationGrammar, css.CustomPropertyGrammar:
			decls = append(decls, declarationFromTokens(data, parser.Values()))
		}
	}
}

// parseRuleBody consumes a ruleset's declarations and comments until the
// closing brace.
func (p *Parser) parseRuleBody(parser *css.Parser) ([]DeclItem, error) {
	var body []DeclItem
	for {
		gt, _, data := parser.Next()
		switch gt {
		case css.ErrorGrammar:
			if err := parser.Err(); err != nil && !errors.Is(err, io.EOF) {
				return nil, newParseError(err)
			}
			return body, nil
		case css.EndRulesetGrammar:
			return body, nil
		case css.CommentGrammar:
			body = append(body, &Comment{Text: commentText(data)})
		case css.DeclarationGrammar, css.CustomPropertyGrammar:
			body = append(body, declarationFromTokens(data, parser.Values()))
		}
	}
}

// declarationFromTokens builds a Declaration from a property name and its
// value tokens, splitting off any trailing !important marker.
func declarationFromTokens(name []byte, values []css.Token) *Declaration {
	values, important := splitImportant(values)
	return &Declaration{
		Name:      string(name),
		Value:     tokensText(nil, values),
		Important: important,
	}
}

// splitImportant strips a trailing "!important" (whitespace tolerated) from
// value tokens and reports whether one was present.
func splitImportant(values []css.Token) ([]css.Token, bool) {
	i := len(values) - 1
	for i >= 0 && values[i].TokenType == css.WhitespaceToken {
		i--
	}
	if i < 0 || values[i].TokenType != css.IdentToken || !strings.EqualFold(string(values[i].Data), "important") {
		return values, false
	}
	j := i - 1
	for j >= 0 && values[j].TokenType == css.WhitespaceToken {
		j--
	}
	if j < 0 || values[j].TokenType != css.DelimToken || string(values[j].Data) != "!" {
		return values, false
	}
	return values[:j], true
}

// tokensText renders tokens as text with whitespace runs collapsed to a
// single space and the ends trimmed. prefix, when non-nil, is prepended
// verbatim (grammar events split a node between data and values).
func tokensText(prefix []byte, tokens []css.Token) string {
	var sb strings.Builder
	sb.Write(prefix)
	for _, t := range tokens {
		if t.TokenType == css.WhitespaceToken {
			sb.WriteByte(' ')
			continue
		}
		sb.Write(t.Data)
	}
	return strings.TrimSpace(sb.String())
}

// commentText strips the /* */ markers and surrounding whitespace.
func commentText(data []byte) string {
	s := string(data)
	s = strings.TrimPrefix(s, "/*")
	s = strings.TrimSuffix(s, "*/")
	return strings.TrimSpace(s)
}

// atKeyword lowercases an at-rule keyword and drops the leading "@".
func atKeyword(data []byte) string {
	return strings.ToLower(strings.TrimPrefix(string(data), "@"))
}

// checkBraces is the pre-parse guard: { and } counts must match. The scan
// locates the offending brace so the error can point at it.
func checkBraces(text string) error {
	if strings.Count(text, "{") == strings.Count(text, "}") {
		return nil
	}
	line, col := 0, 0
	if idx := findUnmatchedBrace(text); idx >= 0 {
		line = 1 + strings.Count(text[:idx], "\n")
		col = idx - strings.LastIndexByte(text[:idx], '\n')
	}
	return &SyntaxError{Line: line, Column: col, Err: ErrUnbalancedBraces}
}

// findUnmatchedBrace returns the byte offset of the first unmatched } or,
// failing that, the deepest unclosed {. Returns -1 when braces pair up.
func findUnmatchedBrace(text string) int {
	var stack []int
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '{':
			stack = append(stack, i)
		case '}':
			if len(stack) == 0 {
				return i
			}
			stack = stack[:len(stack)-1]
		}
	}
	if len(stack) > 0 {
		return stack[len(stack)-1]
	}
	return -1
}
