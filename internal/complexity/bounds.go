package complexity

import (
	"math"

	"github.com/kolkov/bigo/ast"
	"github.com/kolkov/bigo/token"
)

// forFactor derives the symbolic iteration count of a counted loop
// from its bound expressions. A literal range yields a constant factor
// with a known trip count; a range reaching a symbolic size yields a
// polynomial factor; an unrecognized bound shape yields Indeterminate
// for that loop only.
func forFactor(from, to ast.Expr) (Class, int) {
	if f, okF := literalInt(from); okF {
		if t, okT := literalInt(to); okT {
			trips := t - f + 1
			if trips < 0 {
				trips = 0
			}
			return Constant(), trips
		}
	}

	degFrom, okFrom := boundDegree(from)
	degTo, okTo := boundDegree(to)
	if !okFrom || !okTo {
		return Unknown(), -1
	}
	deg := math.Max(degFrom, degTo)
	if deg <= 0 {
		return Constant(), -1
	}
	return Poly(deg), -1
}

// condFactor derives the iteration factor of a condition-controlled
// loop (WHILE, REPEAT-UNTIL) by recognizing how the body moves a
// variable read by the condition:
//
//	v ← v div k, v ← v/k, v ← v*k (k > 1)  →  logarithmic
//	v ← v ± c                              →  linear in the bound
//
// Conflicting or unrecognized updates yield Indeterminate.
func condFactor(cond ast.Expr, body *ast.BlockStmt) Class {
	cmp, ok := comparison(cond)
	if !ok {
		return Unknown()
	}

	factor := Unknown()
	found := false
	conflict := false

	ast.Walk(body, func(n ast.Node) bool {
		assign, ok := n.(*ast.AssignStmt)
		if !ok || len(assign.Index) > 0 {
			return true
		}
		v := assign.Target.Name
		if !readsVar(cmp.left, v) && !readsVar(cmp.right, v) {
			return true
		}

		f, ok := updateFactor(v, assign.Value, cmp.boundFor(v))
		if !ok {
			// The controlling variable is rewritten in a way we do not
			// recognize: the trip count is unknowable here.
			conflict = true
			return true
		}
		if found && !f.Equal(factor) {
			conflict = true
			return true
		}
		factor = f
		found = true
		return true
	})

	if conflict || !found {
		return Unknown()
	}
	return factor
}

// updateFactor classifies one update of the controlling variable.
// bound is the expression the variable is compared against.
func updateFactor(v string, value ast.Expr, bound ast.Expr) (Class, bool) {
	bin, ok := unwrap(value).(*ast.BinaryExpr)
	if !ok {
		return Class{}, false
	}

	// v op k with v on the left
	if id, ok := unwrap(bin.Left).(*ast.Ident); ok && id.Name == v {
		switch bin.Op {
		case token.IDIV, token.DIV:
			if k, ok := literalFloat(bin.Right); ok && k > 1 {
				return Log(), true
			}
		case token.MUL:
			if k, ok := literalFloat(bin.Right); ok && k > 1 {
				return Log(), true
			}
		case token.ADD, token.SUB:
			if _, ok := literalFloat(bin.Right); ok {
				return additiveFactor(bound), true
			}
		}
		return Class{}, false
	}

	// k * v: doubling written with the literal first
	if id, ok := unwrap(bin.Right).(*ast.Ident); ok && id.Name == v && bin.Op == token.MUL {
		if k, ok := literalFloat(bin.Left); ok && k > 1 {
			return Log(), true
		}
	}
	return Class{}, false
}

// additiveFactor is the trip-count class of a unit-step loop: linear
// in whatever the variable is compared against.
func additiveFactor(bound ast.Expr) Class {
	if bound == nil {
		return Unknown()
	}
	deg, ok := boundDegree(bound)
	if !ok {
		return Unknown()
	}
	if deg <= 0 {
		return Constant()
	}
	return Poly(deg)
}

// comparisonExpr is a comparison split into its sides.
type comparisonExpr struct {
	left, right ast.Expr
}

// boundFor returns the side opposite the given variable, the value the
// loop is driving the variable toward.
func (c comparisonExpr) boundFor(v string) ast.Expr {
	if readsVar(c.left, v) {
		return c.right
	}
	return c.left
}

// comparison unwraps a loop condition down to a single comparison, or
// fails for compound and non-relational conditions.
func comparison(e ast.Expr) (comparisonExpr, bool) {
	bin, ok := unwrap(e).(*ast.BinaryExpr)
	if !ok {
		return comparisonExpr{}, false
	}
	switch bin.Op {
	case token.LT, token.LTE, token.GT, token.GTE, token.EQ, token.NEQ:
		return comparisonExpr{left: bin.Left, right: bin.Right}, true
	}
	return comparisonExpr{}, false
}

// boundDegree estimates the polynomial degree of a bound expression in
// the symbolic input size: literals are degree 0, identifiers degree 1,
// products add, quotients subtract. Bound shapes involving calls or
// subscripts are data-dependent and unrecognized.
func boundDegree(e ast.Expr) (float64, bool) {
	switch e := e.(type) {
	case *ast.NumLit:
		return 0, true
	case *ast.Ident:
		return 1, true
	case *ast.GroupExpr:
		return boundDegree(e.Expr)
	case *ast.UnaryExpr:
		if e.Op == token.SUB {
			return boundDegree(e.Expr)
		}
		return 0, false
	case *ast.BinaryExpr:
		left, okL := boundDegree(e.Left)
		right, okR := boundDegree(e.Right)
		if !okL || !okR {
			return 0, false
		}
		switch e.Op {
		case token.ADD, token.SUB:
			return math.Max(left, right), true
		case token.MUL:
			return left + right, true
		case token.DIV, token.IDIV:
			return math.Max(left-right, 0), true
		case token.MOD:
			// v mod m is bounded by m.
			return right, true
		}
		return 0, false
	default:
		return 0, false
	}
}

// -----------------------------------------------------------------------------
// Small expression helpers
// -----------------------------------------------------------------------------

// unwrap strips grouping parentheses.
func unwrap(e ast.Expr) ast.Expr {
	for {
		g, ok := e.(*ast.GroupExpr)
		if !ok {
			return e
		}
		e = g.Expr
	}
}

func literalInt(e ast.Expr) (int, bool) {
	n, ok := unwrap(e).(*ast.NumLit)
	if !ok || !n.IsInt() {
		return 0, false
	}
	return int(n.Value), true
}

func literalFloat(e ast.Expr) (float64, bool) {
	n, ok := unwrap(e).(*ast.NumLit)
	if !ok {
		return 0, false
	}
	return n.Value, true
}

// readsVar reports whether the expression mentions the variable.
func readsVar(e ast.Expr, name string) bool {
	found := false
	ast.Walk(e, func(n ast.Node) bool {
		if id, ok := n.(*ast.Ident); ok && id.Name == name {
			found = true
			return false
		}
		return true
	})
	return found
}
