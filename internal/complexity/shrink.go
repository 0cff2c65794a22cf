package complexity

import (
	"math"

	"github.com/kolkov/bigo/ast"
	"github.com/kolkov/bigo/internal/semantic"
	"github.com/kolkov/bigo/token"
)

// shrinkInfo is how a recursive call shrinks its input: by a division
// ratio or a subtractive step. Exactly one field is set.
type shrinkInfo struct {
	divideBy float64
	subtract float64
}

func (s shrinkInfo) equal(o shrinkInfo) bool {
	return math.Abs(s.divideBy-o.divideBy) < eps && math.Abs(s.subtract-o.subtract) < eps
}

// routineShrink inspects every self-call site of a recursive routine
// and derives a single shrink rate directly from the argument syntax
// (n div 2, n-1 and similar shapes against the parameter in the same
// position). All sites must agree: distinct shrink rates, or a site
// whose arguments show no recognizable shrink, make the recurrence
// unresolvable.
func (a *Analyzer) routineShrink(rt *semantic.RoutineInfo) (shrinkInfo, bool) {
	var result shrinkInfo
	found := false
	failed := false

	ast.Walk(rt.Decl.Body, func(n ast.Node) bool {
		var name string
		var args []ast.Expr
		switch c := n.(type) {
		case *ast.CallExpr:
			if !c.Recursive {
				return true
			}
			name, args = c.Name, c.Args
		case *ast.CallStmt:
			if !c.Recursive {
				return true
			}
			name, args = c.Name, c.Args
		default:
			return true
		}
		if name != rt.Name {
			return true
		}

		site, ok := siteShrink(rt.Params, args)
		if !ok {
			failed = true
			return true
		}
		if found && !site.equal(result) {
			failed = true
			return true
		}
		result = site
		found = true
		return true
	})

	if failed || !found {
		return shrinkInfo{}, false
	}
	return result, true
}

// siteShrink classifies one call site: the first argument that shrinks
// relative to its parameter determines the site's rate.
func siteShrink(params []string, args []ast.Expr) (shrinkInfo, bool) {
	for i, arg := range args {
		if i >= len(params) {
			break
		}
		if s, ok := argShrink(params[i], arg); ok {
			return s, true
		}
	}
	return shrinkInfo{}, false
}

// argShrink recognizes the supported shrink shapes of one argument
// against its parameter:
//
//	p div k, p / k  (literal k > 1)  →  divide by k
//	p - c           (literal c > 0)  →  subtract c
func argShrink(param string, arg ast.Expr) (shrinkInfo, bool) {
	bin, ok := unwrap(arg).(*ast.BinaryExpr)
	if !ok {
		return shrinkInfo{}, false
	}
	id, ok := unwrap(bin.Left).(*ast.Ident)
	if !ok || id.Name != param {
		return shrinkInfo{}, false
	}

	switch bin.Op {
	case token.IDIV, token.DIV:
		if k, ok := literalFloat(bin.Right); ok && k > 1 {
			return shrinkInfo{divideBy: k}, true
		}
	case token.SUB:
		if c, ok := literalFloat(bin.Right); ok && c > 0 {
			return shrinkInfo{subtract: c}, true
		}
	}
	return shrinkInfo{}, false
}
