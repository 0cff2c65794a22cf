// Package complexity implements the asymptotic cost model: growth
// classes, O/Ω/Θ bounds, and the post-order analyzer that assigns a
// bound to every AST node.
package complexity

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// eps is the tolerance for comparing symbolic degrees and bases.
// Degrees like log2(3) are irrational, so exact float comparison is
// meaningless.
const eps = 1e-9

// Class is a closed-form growth class of the shape
//
//	Base^n · n^Degree · log^LogPow(n)
//
// or the Indeterminate sentinel. Constant time is the zero value with
// Base 1. Indeterminate is a first-class value, not an error: it marks
// a subtree the classification rules could not resolve.
type Class struct {
	Indeterminate bool
	Base          float64 // Exponential base; 1 means no exponential factor
	Degree        float64 // Polynomial degree
	LogPow        int     // Power of the logarithmic factor
}

// Canonical constructors.

// Constant returns the Θ(1) class.
func Constant() Class { return Class{Base: 1} }

// Linear returns the Θ(n) class.
func Linear() Class { return Class{Base: 1, Degree: 1} }

// Poly returns the Θ(n^d) class.
func Poly(d float64) Class { return Class{Base: 1, Degree: d} }

// Log returns the Θ(log n) class.
func Log() Class { return Class{Base: 1, LogPow: 1} }

// PolyLog returns the Θ(n^d · log^k n) class.
func PolyLog(d float64, k int) Class { return Class{Base: 1, Degree: d, LogPow: k} }

// Exp returns the Θ(b^n) class.
func Exp(b float64) Class { return Class{Base: b} }

// Unknown returns the Indeterminate sentinel.
func Unknown() Class { return Class{Indeterminate: true} }

// IsConstant reports whether c is Θ(1).
func (c Class) IsConstant() bool {
	return !c.Indeterminate && c.Base <= 1+eps && math.Abs(c.Degree) < eps && c.LogPow == 0
}

// Equal reports whether two classes denote the same growth order.
func (c Class) Equal(other Class) bool {
	if c.Indeterminate || other.Indeterminate {
		return c.Indeterminate == other.Indeterminate
	}
	return math.Abs(c.Base-other.Base) < eps &&
		math.Abs(c.Degree-other.Degree) < eps &&
		c.LogPow == other.LogPow
}

// Cmp orders two determinate classes by asymptotic growth:
// -1 if c grows slower than other, 0 if equal, +1 if faster.
// Comparing against an Indeterminate class is the caller's bug;
// callers must check Indeterminate first.
func (c Class) Cmp(other Class) int {
	if d := cmpFloat(c.Base, other.Base); d != 0 {
		return d
	}
	if d := cmpFloat(c.Degree, other.Degree); d != 0 {
		return d
	}
	switch {
	case c.LogPow < other.LogPow:
		return -1
	case c.LogPow > other.LogPow:
		return 1
	}
	return 0
}

func cmpFloat(a, b float64) int {
	switch {
	case a < b-eps:
		return -1
	case a > b+eps:
		return 1
	}
	return 0
}

// Max returns the asymptotically dominant of two classes. Sequential
// composition sums costs, and a sum of growth classes reduces to its
// dominant term. Indeterminate absorbs: a sequence containing an
// unresolved part cannot be bounded.
func Max(a, b Class) Class {
	if a.Indeterminate || b.Indeterminate {
		return Unknown()
	}
	if a.Cmp(b) >= 0 {
		return a
	}
	return b
}

// Min returns the asymptotically smaller of two classes, used for
// best-case branch selection. Indeterminate absorbs.
func Min(a, b Class) Class {
	if a.Indeterminate || b.Indeterminate {
		return Unknown()
	}
	if a.Cmp(b) <= 0 {
		return a
	}
	return b
}

// Mul returns the product of two classes: loop nesting multiplies the
// iteration factor by the body cost. Exponential bases multiply,
// degrees and log powers add.
func Mul(a, b Class) Class {
	if a.Indeterminate || b.Indeterminate {
		return Unknown()
	}
	return Class{
		Base:   a.Base * b.Base,
		Degree: a.Degree + b.Degree,
		LogPow: a.LogPow + b.LogPow,
	}
}

// String renders the class in conventional notation: "1", "n", "n^2",
// "log n", "n log n", "2^n", "n^1.585" and so on.
func (c Class) String() string {
	if c.Indeterminate {
		return "indeterminate"
	}

	var parts []string
	if c.Base > 1+eps {
		parts = append(parts, formatNum(c.Base)+"^n")
	}
	switch {
	case math.Abs(c.Degree-1) < eps:
		parts = append(parts, "n")
	case c.Degree > eps:
		parts = append(parts, "n^"+formatNum(c.Degree))
	}
	switch {
	case c.LogPow == 1:
		parts = append(parts, "log n")
	case c.LogPow > 1:
		parts = append(parts, fmt.Sprintf("log^%d n", c.LogPow))
	}

	if len(parts) == 0 {
		return "1"
	}
	return strings.Join(parts, " ")
}

// formatNum renders a float without trailing zeros, rounding irrational
// degrees like log2(3) to a readable precision.
func formatNum(f float64) string {
	if math.Abs(f-math.Round(f)) < 1e-6 {
		return strconv.FormatInt(int64(math.Round(f)), 10)
	}
	return strconv.FormatFloat(f, 'f', 3, 64)
}

// Complexity is the O/Ω bound pair for a node. Θ is derived, never
// stored: it exists exactly when the two bounds coincide.
type Complexity struct {
	O     Class
	Omega Class
}

// Exact returns a Complexity where both bounds are c, so Θ(c) holds.
func Exact(c Class) Complexity {
	return Complexity{O: c, Omega: c}
}

// Indeterminate returns a Complexity with both bounds unresolved.
func Indeterminate() Complexity {
	return Exact(Unknown())
}

// Theta returns the tight bound and whether it exists. Θ is populated
// only when O and Ω coincide; it is never guessed. Both bounds being
// Indeterminate yields an Indeterminate Θ, which is a value, not an
// absence.
func (c Complexity) Theta() (Class, bool) {
	if c.O.Equal(c.Omega) {
		return c.O, true
	}
	return Class{}, false
}

// String renders the bound pair: "Θ(n)" when tight, otherwise
// "O(n), Ω(1)".
func (c Complexity) String() string {
	if th, ok := c.Theta(); ok {
		return "Θ(" + th.String() + ")"
	}
	return "O(" + c.O.String() + "), Ω(" + c.Omega.String() + ")"
}
