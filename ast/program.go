package ast

import "github.com/kolkov/bigo/token"

// Program represents a complete pseudocode program.
// A program consists of routine declarations and a main statement
// sequence; Main is always non-nil (possibly empty) and is the single
// Sequence root of the tree.
type Program struct {
	// Source file name (for error messages).
	Filename string

	// Routine declarations, in source order.
	Functions []*FuncDecl

	// Main is the top-level statement sequence.
	Main *BlockStmt

	// Position information for the entire program.
	StartPos token.Position
	EndPos   token.Position
}

// Pos returns the position of the first token in the program.
func (p *Program) Pos() token.Position { return p.StartPos }

// End returns the position after the last token in the program.
func (p *Program) End() token.Position { return p.EndPos }

// Function returns the declaration for the named routine, or nil.
// Lookup is by exact name.
func (p *Program) Function(name string) *FuncDecl {
	for _, f := range p.Functions {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// FuncDecl represents a routine declaration.
// Example: FUNCTION MergeSort(A, low, high) ... END FUNCTION
type FuncDecl struct {
	// Routine name.
	Name string

	// Parameter names in order.
	Params []string

	// Routine body.
	Body *BlockStmt

	// Name position for error messages.
	NamePos token.Position

	// Position information.
	StartPos token.Position
	EndPos   token.Position
}

// Pos returns the position of the first token in the declaration.
func (f *FuncDecl) Pos() token.Position { return f.StartPos }

// End returns the position after the last token in the declaration.
func (f *FuncDecl) End() token.Position { return f.EndPos }

// -----------------------------------------------------------------------------
// Compile-time checks
// -----------------------------------------------------------------------------

var (
	_ Node = (*Program)(nil)
	_ Node = (*FuncDecl)(nil)
)
