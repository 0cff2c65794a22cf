package bigo

import (
	"fmt"
)

// LexError represents an unrecognized character in pseudocode source.
type LexError struct {
	Line   int    // 1-based line number
	Column int    // 1-based column number
	Char   string // The offending character
}

func (e *LexError) Error() string {
	return fmt.Sprintf("lexical error at %d:%d: unrecognized character %q", e.Line, e.Column, e.Char)
}

// ParseError represents a syntax error in pseudocode source.
// Parsing stops at the first structural violation; no partial result
// is ever produced.
type ParseError struct {
	Line     int    // 1-based line number
	Column   int    // 1-based column number
	Expected string // What the parser required at this point
	Found    string // What it saw instead
	Message  string // Full error description
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("syntax error at %d:%d: %s", e.Line, e.Column, e.Message)
}

// ResourceLimitError reports that an analysis budget was exceeded.
// It is fatal for the request: the caller should reject or truncate
// the input rather than retry.
type ResourceLimitError struct {
	Kind  string // "tokens" or "depth"
	Limit int    // The configured budget
}

func (e *ResourceLimitError) Error() string {
	return fmt.Sprintf("resource limit exceeded: more than %d %s", e.Limit, e.Kind)
}

// Finding is a localized, non-fatal analysis finding: an undefined
// variable, an unresolvable loop bound, a recurrence shape outside the
// solver's scope. Findings accompany an otherwise-complete result.
type Finding struct {
	Line    int
	Column  int
	Message string
}

func (f Finding) String() string {
	return fmt.Sprintf("%d:%d: %s", f.Line, f.Column, f.Message)
}
