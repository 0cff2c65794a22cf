package semantic

import (
	"github.com/kolkov/bigo/ast"
	"github.com/kolkov/bigo/token"
)

// SymbolKind defines the category of a symbol.
type SymbolKind int

const (
	SymbolVar     SymbolKind = iota // Variable created on first assignment
	SymbolParam                     // Routine parameter
	SymbolLoopVar                   // Counted-loop variable
	SymbolRoutine                   // Declared routine
)

// String returns a human-readable name for the symbol kind.
func (k SymbolKind) String() string {
	switch k {
	case SymbolVar:
		return "variable"
	case SymbolParam:
		return "parameter"
	case SymbolLoopVar:
		return "loop variable"
	case SymbolRoutine:
		return "routine"
	default:
		return "unknown"
	}
}

// Symbol holds information about a declared name.
type Symbol struct {
	Name string
	Kind SymbolKind
	Pos  token.Position // First assignment or declaration position
	Used bool           // Whether the symbol is ever read
}

// Scope is a flat symbol table with an optional parent.
// Routine scopes chain to the global scope: globals are visible inside
// routines, routine locals are not visible outside.
type Scope struct {
	name    string
	parent  *Scope
	symbols map[string]*Symbol
}

// NewScope creates a scope with the given parent (nil for global).
func NewScope(parent *Scope, name string) *Scope {
	return &Scope{
		name:    name,
		parent:  parent,
		symbols: make(map[string]*Symbol),
	}
}

// Define adds a symbol to this scope. If the name already exists here,
// the existing symbol is returned unchanged.
func (s *Scope) Define(name string, kind SymbolKind, pos token.Position) *Symbol {
	if sym, ok := s.symbols[name]; ok {
		return sym
	}
	sym := &Symbol{Name: name, Kind: kind, Pos: pos}
	s.symbols[name] = sym
	return sym
}

// Lookup finds a symbol in this scope or any parent.
func (s *Scope) Lookup(name string) *Symbol {
	for sc := s; sc != nil; sc = sc.parent {
		if sym, ok := sc.symbols[name]; ok {
			return sym
		}
	}
	return nil
}

// Local finds a symbol in this scope only.
func (s *Scope) Local(name string) *Symbol {
	return s.symbols[name]
}

// RoutineInfo describes a declared routine and what resolution learned
// about it.
type RoutineInfo struct {
	Name      string
	Params    []string
	Decl      *ast.FuncDecl
	Scope     *Scope
	Recursive bool // The routine calls itself (directly)
	CallCount int  // Number of call sites targeting this routine
	SelfCalls int  // Number of direct self-calls in its own body
	Pos       token.Position
}
