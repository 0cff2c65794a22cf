package token

import "fmt"

// Position locates a rune in pseudocode source.
//
// Line and Column are what an editor shows: both are 1-indexed, and
// Column counts runes, so a multi-byte glyph such as "←" or "≤" occupies
// a single column. Offset is the 0-indexed byte offset of the rune and is
// the right value for slicing the raw source.
type Position struct {
	Filename string // Source file name, empty for in-memory input
	Line     int
	Column   int
	Offset   int
}

// String formats the position as "filename:line:column", dropping the
// filename when it is empty. This is the prefix every diagnostic carries.
func (p Position) String() string {
	if p.Filename == "" {
		return fmt.Sprintf("%d:%d", p.Line, p.Column)
	}
	return fmt.Sprintf("%s:%d:%d", p.Filename, p.Line, p.Column)
}

// IsValid reports whether p locates real source. The zero value (NoPos)
// is invalid because lines are 1-indexed.
func (p Position) IsValid() bool {
	return p.Line > 0
}

// Before reports whether p precedes other, ordering by line and then by
// column. Positions from different files do not have a meaningful order;
// the filename is ignored.
func (p Position) Before(other Position) bool {
	return p.Line < other.Line || (p.Line == other.Line && p.Column < other.Column)
}

// After reports whether p follows other.
func (p Position) After(other Position) bool {
	return other.Before(p)
}

// Span is an inclusive source range, used to attribute a cost finding to
// the full extent of a statement rather than its first token.
type Span struct {
	Start Position
	End   Position
}

// String formats the span compactly: a single-line span renders as
// "line:col-col", a multi-line one as "line:col-line:col".
func (s Span) String() string {
	if s.Start.Line == s.End.Line {
		return fmt.Sprintf("%s-%d", s.Start.String(), s.End.Column)
	}
	return fmt.Sprintf("%s-%s", s.Start.String(), s.End.String())
}

// Contains reports whether p falls within the span, endpoints included.
func (s Span) Contains(p Position) bool {
	return !p.Before(s.Start) && !p.After(s.End)
}

// NoPos is the invalid zero Position, used where no location applies.
var NoPos = Position{}
