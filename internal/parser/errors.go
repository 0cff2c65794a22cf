// Package parser provides a recursive descent parser for the pseudocode dialect.
package parser

import (
	"fmt"

	"github.com/kolkov/bigo/token"
)

// ParseError represents a syntax error encountered during parsing.
// It implements the error interface and includes source position
// information along with the expected and found tokens.
type ParseError struct {
	Pos     token.Position // Position where the error occurred
	Message string         // Human-readable error message
	Got     string         // Token/value that was found (optional)
	Want    string         // Token/value that was expected (optional)
}

// Error returns a formatted error message with position information.
func (e *ParseError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s: %s", e.Pos, e.Message)
	}
	return e.Message
}

// LimitError reports that the nesting-depth budget was exceeded.
type LimitError struct {
	Pos   token.Position
	Limit int
}

func (e *LimitError) Error() string {
	return fmt.Sprintf("%s: nesting depth exceeds limit (max %d)", e.Pos, e.Limit)
}

// errorf creates a ParseError at the given position with formatted message.
func errorf(pos token.Position, format string, args ...any) *ParseError {
	return &ParseError{
		Pos:     pos,
		Message: fmt.Sprintf(format, args...),
	}
}

// expectedError creates a ParseError for an unexpected token.
func expectedError(pos token.Position, want, got string) *ParseError {
	return &ParseError{
		Pos:     pos,
		Message: fmt.Sprintf("expected %s, got %s", want, got),
		Want:    want,
		Got:     got,
	}
}
