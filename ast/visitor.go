package ast

// Visitor defines the generic visitor pattern for AST traversal.
// Type parameter T is the return type of visit methods.
//
// The method set covers the entire closed node-variant set, so a consumer
// that implements Visitor cannot silently ignore a node kind: adding a
// variant extends this interface and breaks every implementation until it
// is updated.
//
// Example usage for cost analysis:
//
//	type coster struct{}
//	func (c *coster) VisitAssignStmt(s *ast.AssignStmt) Cost { return Constant }
//	// ... other methods
type Visitor[T any] interface {
	// Program-level
	VisitProgram(*Program) T
	VisitFuncDecl(*FuncDecl) T

	// Expressions
	VisitNumLit(*NumLit) T
	VisitIdent(*Ident) T
	VisitBinaryExpr(*BinaryExpr) T
	VisitUnaryExpr(*UnaryExpr) T
	VisitGroupExpr(*GroupExpr) T
	VisitIndexExpr(*IndexExpr) T
	VisitCallExpr(*CallExpr) T

	// Statements
	VisitBlockStmt(*BlockStmt) T
	VisitAssignStmt(*AssignStmt) T
	VisitCallStmt(*CallStmt) T
	VisitReturnStmt(*ReturnStmt) T
	VisitForStmt(*ForStmt) T
	VisitWhileStmt(*WhileStmt) T
	VisitRepeatStmt(*RepeatStmt) T
	VisitIfStmt(*IfStmt) T
}

// Accept dispatches to the appropriate visitor method based on node type.
// This implements the double-dispatch pattern for the visitor.
//
// Example:
//
//	result := ast.Accept[Cost](node, myVisitor)
func Accept[T any](node Node, v Visitor[T]) T {
	switch n := node.(type) {
	case *Program:
		return v.VisitProgram(n)
	case *FuncDecl:
		return v.VisitFuncDecl(n)

	case *NumLit:
		return v.VisitNumLit(n)
	case *Ident:
		return v.VisitIdent(n)
	case *BinaryExpr:
		return v.VisitBinaryExpr(n)
	case *UnaryExpr:
		return v.VisitUnaryExpr(n)
	case *GroupExpr:
		return v.VisitGroupExpr(n)
	case *IndexExpr:
		return v.VisitIndexExpr(n)
	case *CallExpr:
		return v.VisitCallExpr(n)

	case *BlockStmt:
		return v.VisitBlockStmt(n)
	case *AssignStmt:
		return v.VisitAssignStmt(n)
	case *CallStmt:
		return v.VisitCallStmt(n)
	case *ReturnStmt:
		return v.VisitReturnStmt(n)
	case *ForStmt:
		return v.VisitForStmt(n)
	case *WhileStmt:
		return v.VisitWhileStmt(n)
	case *RepeatStmt:
		return v.VisitRepeatStmt(n)
	case *IfStmt:
		return v.VisitIfStmt(n)

	default:
		var zero T
		return zero
	}
}

// Walk traverses an AST in depth-first order.
// For each node, it calls fn(node). If fn returns false,
// the children of that node are not visited.
//
// Example: Count all identifiers
//
//	count := 0
//	ast.Walk(program, func(n ast.Node) bool {
//	    if _, ok := n.(*ast.Ident); ok {
//	        count++
//	    }
//	    return true // continue traversal
//	})
func Walk(node Node, fn func(Node) bool) {
	if node == nil || !fn(node) {
		return
	}

	switch n := node.(type) {
	case *Program:
		for _, f := range n.Functions {
			Walk(f, fn)
		}
		Walk(n.Main, fn)

	case *FuncDecl:
		Walk(n.Body, fn)

	case *NumLit, *Ident:
		// no children

	case *BinaryExpr:
		Walk(n.Left, fn)
		Walk(n.Right, fn)

	case *UnaryExpr:
		Walk(n.Expr, fn)

	case *GroupExpr:
		Walk(n.Expr, fn)

	case *IndexExpr:
		Walk(n.Array, fn)
		for _, idx := range n.Index {
			Walk(idx, fn)
		}

	case *CallExpr:
		for _, arg := range n.Args {
			Walk(arg, fn)
		}

	case *BlockStmt:
		for _, s := range n.Stmts {
			Walk(s, fn)
		}

	case *AssignStmt:
		Walk(n.Target, fn)
		for _, idx := range n.Index {
			Walk(idx, fn)
		}
		Walk(n.Value, fn)

	case *CallStmt:
		for _, arg := range n.Args {
			Walk(arg, fn)
		}

	case *ReturnStmt:
		if n.Value != nil {
			Walk(n.Value, fn)
		}

	case *ForStmt:
		Walk(n.Var, fn)
		Walk(n.From, fn)
		Walk(n.To, fn)
		Walk(n.Body, fn)

	case *WhileStmt:
		Walk(n.Cond, fn)
		Walk(n.Body, fn)

	case *RepeatStmt:
		Walk(n.Body, fn)
		Walk(n.Cond, fn)

	case *IfStmt:
		for _, br := range n.Branches {
			Walk(br.Cond, fn)
			Walk(br.Body, fn)
		}
		if n.Else != nil {
			Walk(n.Else, fn)
		}
	}
}

// Inspect traverses an AST with parent tracking.
// For each node, it calls fn(node, parent). The parent is nil for the root
// node. If fn returns false, the children of that node are not visited.
func Inspect(node Node, fn func(node, parent Node) bool) {
	inspect(node, nil, fn)
}

func inspect(node, parent Node, fn func(node, parent Node) bool) {
	if node == nil || !fn(node, parent) {
		return
	}

	switch n := node.(type) {
	case *Program:
		for _, f := range n.Functions {
			inspect(f, n, fn)
		}
		inspect(n.Main, n, fn)

	case *FuncDecl:
		inspect(n.Body, n, fn)

	case *NumLit, *Ident:
		// no children

	case *BinaryExpr:
		inspect(n.Left, n, fn)
		inspect(n.Right, n, fn)

	case *UnaryExpr:
		inspect(n.Expr, n, fn)

	case *GroupExpr:
		inspect(n.Expr, n, fn)

	case *IndexExpr:
		inspect(n.Array, n, fn)
		for _, idx := range n.Index {
			inspect(idx, n, fn)
		}

	case *CallExpr:
		for _, arg := range n.Args {
			inspect(arg, n, fn)
		}

	case *BlockStmt:
		for _, s := range n.Stmts {
			inspect(s, n, fn)
		}

	case *AssignStmt:
		inspect(n.Target, n, fn)
		for _, idx := range n.Index {
			inspect(idx, n, fn)
		}
		inspect(n.Value, n, fn)

	case *CallStmt:
		for _, arg := range n.Args {
			inspect(arg, n, fn)
		}

	case *ReturnStmt:
		if n.Value != nil {
			inspect(n.Value, n, fn)
		}

	case *ForStmt:
		inspect(n.Var, n, fn)
		inspect(n.From, n, fn)
		inspect(n.To, n, fn)
		inspect(n.Body, n, fn)

	case *WhileStmt:
		inspect(n.Cond, n, fn)
		inspect(n.Body, n, fn)

	case *RepeatStmt:
		inspect(n.Body, n, fn)
		inspect(n.Cond, n, fn)

	case *IfStmt:
		for _, br := range n.Branches {
			inspect(br.Cond, n, fn)
			inspect(br.Body, n, fn)
		}
		if n.Else != nil {
			inspect(n.Else, n, fn)
		}
	}
}

// WalkFunc is a convenience type for walk callbacks.
type WalkFunc func(Node) bool

// InspectFunc is a convenience type for inspect callbacks.
type InspectFunc func(node, parent Node) bool
