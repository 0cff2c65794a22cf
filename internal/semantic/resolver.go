package semantic

import (
	"sort"

	"github.com/kolkov/bigo/ast"
	"github.com/kolkov/bigo/token"
)

// Info contains the results of semantic analysis.
type Info struct {
	// Global scope symbols
	Globals *Scope

	// Declared routines by name
	Routines map[string]*RoutineInfo

	// Errors found during resolution (non-fatal, see package doc)
	Errors ErrorList

	// Warnings (suspicious but legal usage)
	Warnings WarningList
}

// Resolver performs semantic analysis on an AST.
type Resolver struct {
	info *Info

	// Current scope for variable resolution
	scope *Scope

	// Routine being resolved (nil in the main block)
	routine *RoutineInfo
}

// Resolve performs semantic analysis on the given program. It always
// returns a complete Info: findings land in Info.Errors and
// Info.Warnings rather than aborting.
//
// Resolution also mutates the tree in one controlled way: every
// CallExpr and CallStmt that targets its enclosing routine gets its
// Recursive flag set, which downstream analysis relies on.
func Resolve(prog *ast.Program) *Info {
	r := &Resolver{
		info: &Info{
			Globals:  NewScope(nil, "global"),
			Routines: make(map[string]*RoutineInfo),
		},
	}
	r.scope = r.info.Globals

	// Phase 1: collect routine declarations so forward calls resolve.
	r.collectRoutines(prog)

	// Phase 2: collect assignments per scope. Reads are checked against
	// every assignment visible in the scope, not just earlier ones, so
	// statement order never produces false "undefined" findings.
	r.collectAssignments(prog.Main, r.info.Globals)
	for _, fn := range prog.Functions {
		if info := r.info.Routines[fn.Name]; info != nil {
			r.collectAssignments(fn.Body, info.Scope)
		}
	}

	// Phase 3: resolve reads and call sites.
	r.resolveBlock(prog.Main)
	for _, fn := range prog.Functions {
		info := r.info.Routines[fn.Name]
		if info == nil {
			continue
		}
		r.routine = info
		r.scope = info.Scope
		r.resolveBlock(fn.Body)
		r.routine = nil
		r.scope = r.info.Globals
	}

	r.finalize(prog)
	return r.info
}

// collectRoutines registers all routine declarations and their
// parameter scopes.
func (r *Resolver) collectRoutines(prog *ast.Program) {
	for _, fn := range prog.Functions {
		if _, exists := r.info.Routines[fn.Name]; exists {
			r.info.Errors.Add(fn.NamePos, errDuplicateRoutine, fn.Name)
			continue
		}

		info := &RoutineInfo{
			Name:   fn.Name,
			Params: fn.Params,
			Decl:   fn,
			Scope:  NewScope(r.info.Globals, fn.Name),
			Pos:    fn.NamePos,
		}

		seen := make(map[string]bool)
		for _, param := range fn.Params {
			if seen[param] {
				r.info.Errors.Add(fn.NamePos, errDuplicateParam, param, fn.Name)
				continue
			}
			seen[param] = true
			sym := info.Scope.Define(param, SymbolParam, fn.NamePos)
			sym.Used = true // Parameters are bound by the caller
		}

		r.info.Routines[fn.Name] = info
	}
}

// collectAssignments defines a symbol for every assignment target and
// loop variable in the block, in the given scope.
func (r *Resolver) collectAssignments(block *ast.BlockStmt, scope *Scope) {
	if block == nil {
		return
	}
	ast.Walk(block, func(n ast.Node) bool {
		switch s := n.(type) {
		case *ast.AssignStmt:
			scope.Define(s.Target.Name, SymbolVar, s.Target.Pos())
		case *ast.ForStmt:
			scope.Define(s.Var.Name, SymbolLoopVar, s.Var.Pos())
		}
		return true
	})
}

func (r *Resolver) resolveBlock(block *ast.BlockStmt) {
	if block == nil {
		return
	}
	for _, stmt := range block.Stmts {
		r.resolveStmt(stmt)
	}
}

func (r *Resolver) resolveStmt(stmt ast.Stmt) {
	switch s := stmt.(type) {
	case *ast.BlockStmt:
		r.resolveBlock(s)

	case *ast.AssignStmt:
		// Index expressions and the value are reads; the target is not.
		for _, idx := range s.Index {
			r.resolveExpr(idx)
		}
		r.resolveExpr(s.Value)

	case *ast.CallStmt:
		r.resolveCall(s.Name, s.Args, s.Pos(), func(recursive bool) {
			s.Recursive = recursive
		})

	case *ast.ReturnStmt:
		if s.Value != nil {
			r.resolveExpr(s.Value)
		}

	case *ast.ForStmt:
		r.resolveExpr(s.From)
		r.resolveExpr(s.To)
		if sym := r.scope.Lookup(s.Var.Name); sym != nil {
			sym.Used = true // The loop reads its own counter
		}
		r.resolveBlock(s.Body)

	case *ast.WhileStmt:
		r.resolveExpr(s.Cond)
		r.resolveBlock(s.Body)

	case *ast.RepeatStmt:
		r.resolveBlock(s.Body)
		r.resolveExpr(s.Cond)

	case *ast.IfStmt:
		for _, br := range s.Branches {
			r.resolveExpr(br.Cond)
			r.resolveBlock(br.Body)
		}
		r.resolveBlock(s.Else)
	}
}

func (r *Resolver) resolveExpr(expr ast.Expr) {
	switch e := expr.(type) {
	case *ast.NumLit:
		// Nothing to resolve.

	case *ast.Ident:
		sym := r.scope.Lookup(e.Name)
		if sym == nil {
			r.info.Errors.Add(e.Pos(), errUndefinedVar, e.Name)
			return
		}
		sym.Used = true

	case *ast.BinaryExpr:
		r.resolveExpr(e.Left)
		r.resolveExpr(e.Right)

	case *ast.UnaryExpr:
		r.resolveExpr(e.Expr)

	case *ast.GroupExpr:
		r.resolveExpr(e.Expr)

	case *ast.IndexExpr:
		r.resolveExpr(e.Array)
		for _, idx := range e.Index {
			r.resolveExpr(idx)
		}

	case *ast.CallExpr:
		r.resolveCall(e.Name, e.Args, e.Pos(), func(recursive bool) {
			e.Recursive = recursive
		})
	}
}

// resolveCall resolves a call site against the routine table, checks
// arity, and reports whether the call is a direct self-call.
func (r *Resolver) resolveCall(name string, args []ast.Expr, pos token.Position, mark func(recursive bool)) {
	for _, arg := range args {
		r.resolveExpr(arg)
	}

	target, ok := r.info.Routines[name]
	if !ok {
		r.info.Errors.Add(pos, errUndefinedRoutine, name)
		return
	}

	target.CallCount++
	if len(args) != len(target.Params) {
		r.info.Errors.Add(pos, errArityMismatch, name, len(target.Params), len(args))
	}

	recursive := r.routine != nil && r.routine.Name == name
	if recursive {
		r.routine.SelfCalls++
		r.routine.Recursive = true
	}
	mark(recursive)
}

// finalize emits warnings for symbols that resolution never saw used.
func (r *Resolver) finalize(prog *ast.Program) {
	r.warnUnused(r.info.Globals)
	for _, fn := range prog.Functions {
		if info := r.info.Routines[fn.Name]; info != nil {
			r.warnUnused(info.Scope)
			if info.CallCount == 0 {
				r.info.Warnings.Add(info.Pos, "routine %q is never called", info.Name)
			}
		}
	}
}

func (r *Resolver) warnUnused(scope *Scope) {
	names := make([]string, 0, len(scope.symbols))
	for name := range scope.symbols {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		sym := scope.symbols[name]
		if !sym.Used && sym.Kind == SymbolVar {
			r.info.Warnings.Add(sym.Pos, "variable %q is assigned but never read", name)
		}
	}
}
