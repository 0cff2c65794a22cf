// Package ast defines the abstract syntax tree for pseudocode programs.
//
// The AST is a closed set of node variants shared by the parser and the
// complexity analyzer:
//
//	Node (interface)
//	├── Expr (interface) - expressions that produce values
//	│   ├── NumLit, Ident - literals and references
//	│   ├── BinaryExpr, UnaryExpr, GroupExpr - operations
//	│   └── IndexExpr, CallExpr - subscripts and calls
//	├── Stmt (interface) - statements
//	│   ├── BlockStmt - statement sequence
//	│   ├── AssignStmt, CallStmt, ReturnStmt - basic
//	│   ├── ForStmt, WhileStmt, RepeatStmt - loops
//	│   └── IfStmt - conditional with ordered branches
//	└── Program, FuncDecl - top-level structures
//
// Every consumer dispatches exhaustively over this set (see Visitor and
// Accept); adding a node kind without updating every consumer fails to
// compile. The tree is never mutated after parsing.
package ast

import "github.com/kolkov/bigo/token"

// Node is the interface implemented by all AST nodes.
// It provides source position information for error reporting.
type Node interface {
	// Pos returns the position of the first character belonging to this node.
	Pos() token.Position

	// End returns the position of the first character immediately after this node.
	End() token.Position
}

// Expr is the interface for all expression nodes.
type Expr interface {
	Node
	exprNode() // marker method to prevent external implementations
}

// Stmt is the interface for all statement nodes.
type Stmt interface {
	Node
	stmtNode() // marker method to prevent external implementations
}

// BaseExpr provides common fields for all expression nodes.
// Embedded in concrete expression types for position tracking.
type BaseExpr struct {
	StartPos token.Position // Position of first token
	EndPos   token.Position // Position after last token
}

func (b *BaseExpr) Pos() token.Position { return b.StartPos }
func (b *BaseExpr) End() token.Position { return b.EndPos }
func (b *BaseExpr) exprNode()           {}

// BaseStmt provides common fields for all statement nodes.
// Embedded in concrete statement types for position tracking.
type BaseStmt struct {
	StartPos token.Position // Position of first token
	EndPos   token.Position // Position after last token
}

func (b *BaseStmt) Pos() token.Position { return b.StartPos }
func (b *BaseStmt) End() token.Position { return b.EndPos }
func (b *BaseStmt) stmtNode()           {}

// MakeBaseExpr creates a BaseExpr with the given positions.
func MakeBaseExpr(start, end token.Position) BaseExpr {
	return BaseExpr{StartPos: start, EndPos: end}
}

// MakeBaseStmt creates a BaseStmt with the given positions.
func MakeBaseStmt(start, end token.Position) BaseStmt {
	return BaseStmt{StartPos: start, EndPos: end}
}
