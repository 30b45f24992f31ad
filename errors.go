package csskit

import (
	"errors"
	"fmt"
)

// ErrUnbalancedBraces is reported when a stylesheet's { and } counts differ.
// It is carried inside a SyntaxError.
var ErrUnbalancedBraces = errors.New("unbalanced braces")

// SyntaxError reports malformed CSS caught by the pre-parse checks. Line and
// Column point at the offending brace when the position is known.
type SyntaxError struct {
	Line   int
	Column int
	Err    error
}

func (e *SyntaxError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("css syntax error at line %d, column %d: %v", e.Line, e.Column, e.Err)
	}
	return fmt.Sprintf("css syntax error: %v", e.Err)
}

func (e *SyntaxError) Unwrap() error { return e.Err }

// ParseError reports a structural error from the parsing collaborator.
// Line and Column are filled in when the underlying error carries a
// position, and stay zero otherwise.
type ParseError struct {
	Line   int
	Column int
	Err    error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("css parse error at line %d, column %d: %v", e.Line, e.Column, e.Err)
	}
	return fmt.Sprintf("css parse error: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// DeclarationSyntaxError reports a caller-supplied declaration list that
// fails validation: a piece without a ":" separator, or one the trial parse
// rejects. Declaration holds the offending piece when there is one.
type DeclarationSyntaxError struct {
	Declaration string
	Reason      string
}

func (e *DeclarationSyntaxError) Error() string {
	if e.Declaration != "" {
		return fmt.Sprintf("invalid declaration syntax: %s in %q", e.Reason, e.Declaration)
	}
	return "invalid declaration syntax: " + e.Reason
}
