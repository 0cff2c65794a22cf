package ast

import "github.com/kolkov/bigo/token"

// -----------------------------------------------------------------------------
// Literals and references
// -----------------------------------------------------------------------------

// NumLit represents a numeric literal (integer or real).
// Examples: 42, 3.14
type NumLit struct {
	BaseExpr
	Value float64 // Parsed numeric value
	Raw   string  // Original source text (for exact representation)
}

// IsInt reports whether the literal is an integer value.
func (n *NumLit) IsInt() bool {
	return n.Value == float64(int64(n.Value))
}

// Ident represents an identifier (variable name).
// Examples: n, i, low, high
type Ident struct {
	BaseExpr
	Name string // Identifier name
}

// -----------------------------------------------------------------------------
// Operations
// -----------------------------------------------------------------------------

// BinaryExpr represents a binary operation.
// Examples: n / 2, i + 1, x ≤ n
type BinaryExpr struct {
	BaseExpr
	Left  Expr       // Left operand
	Op    token.Kind // Operator token
	Right Expr       // Right operand
}

// UnaryExpr represents a unary operation.
// Examples: -x, not done
type UnaryExpr struct {
	BaseExpr
	Op   token.Kind // Operator token (SUB or NOT)
	Expr Expr       // Operand
}

// GroupExpr represents a parenthesized expression.
// Used to preserve explicit grouping in the source.
// Example: (n + 1)
type GroupExpr struct {
	BaseExpr
	Expr Expr // Inner expression
}

// -----------------------------------------------------------------------------
// Subscripts and calls
// -----------------------------------------------------------------------------

// IndexExpr represents an array subscript expression.
// Examples: A[i], A[i, j]
type IndexExpr struct {
	BaseExpr
	Array *Ident // Array identifier
	Index []Expr // Subscript expressions (multiple for multi-dimensional)
}

// CallExpr represents a routine call in expression position.
// Example: Partition(A, low, high)
//
// Recursive is resolved by semantic analysis: true when the call names the
// enclosing routine.
type CallExpr struct {
	BaseExpr
	Name      string // Routine name
	Args      []Expr // Arguments (may be empty)
	Recursive bool   // Set by semantic resolution
}

// -----------------------------------------------------------------------------
// Compile-time checks
// -----------------------------------------------------------------------------

// Ensure all expression types implement Expr interface.
var (
	_ Expr = (*NumLit)(nil)
	_ Expr = (*Ident)(nil)
	_ Expr = (*BinaryExpr)(nil)
	_ Expr = (*UnaryExpr)(nil)
	_ Expr = (*GroupExpr)(nil)
	_ Expr = (*IndexExpr)(nil)
	_ Expr = (*CallExpr)(nil)
)
