package complexity

import (
	"fmt"
	"math"
)

// The recurrence solver resolves relations extracted from recursive
// routines into closed-form growth classes. It is a narrow, explicitly
// bounded matcher: exactly two recurrence families are guaranteed
// solvable,
//
//	T(n) = a·T(n/b) + f(n)   divide-and-conquer (Master Theorem)
//	T(n) = a·T(n-c) + f(n)   subtractive/linear (direct summation)
//
// and every other shape resolves to the Indeterminate class. This is a
// deliberate scope boundary: an unmatched recurrence is reported as
// unresolved, never approximated.

// Descriptor is a recurrence relation extracted from a recursive
// routine: a self-calls per invocation, each on an input shrunk by
// division or subtraction, plus f(n) of non-recursive work.
// Exactly one of DivideBy and Subtract is set; a descriptor with both
// or neither does not describe a supported family.
type Descriptor struct {
	Calls    int     // a: number of self-calls per invocation
	DivideBy float64 // b: input shrinks to n/b (0 if subtractive)
	Subtract float64 // c: input shrinks to n-c (0 if dividing)
	Work     Class   // f(n): non-recursive work per invocation
}

// String renders the descriptor as a recurrence equation.
func (d Descriptor) String() string {
	switch {
	case d.DivideBy > 0:
		return fmt.Sprintf("T(n) = %d·T(n/%s) + %s", d.Calls, trimFloat(d.DivideBy), workString(d.Work))
	case d.Subtract > 0:
		return fmt.Sprintf("T(n) = %d·T(n-%s) + %s", d.Calls, trimFloat(d.Subtract), workString(d.Work))
	default:
		return fmt.Sprintf("T(n) = %d·T(?) + %s", d.Calls, workString(d.Work))
	}
}

func workString(w Class) string {
	if w.Indeterminate {
		return "f(n)"
	}
	return "Θ(" + w.String() + ")"
}

func trimFloat(f float64) string {
	if f == math.Trunc(f) {
		return fmt.Sprintf("%d", int64(f))
	}
	return fmt.Sprintf("%g", f)
}

// Solve resolves the descriptor to a closed-form growth class, or the
// Indeterminate class when the shape falls outside the two supported
// families or the Master Theorem's case gaps.
func Solve(d Descriptor) Class {
	if d.Calls < 1 || d.Work.Indeterminate {
		return Unknown()
	}

	switch {
	case d.DivideBy > 1 && d.Subtract == 0:
		return solveDivide(d)
	case d.Subtract > 0 && d.DivideBy == 0:
		return solveSubtract(d)
	default:
		return Unknown()
	}
}

// solveDivide classifies T(n) = a·T(n/b) + f(n) by the Master Theorem,
// comparing f(n) against the critical polynomial n^(log_b a).
func solveDivide(d Descriptor) Class {
	critical := math.Log(float64(d.Calls)) / math.Log(d.DivideBy)

	// An exponential f dominates every polynomial: case 3. The
	// regularity condition a·f(n/b) ≤ k·f(n) holds for growing
	// exponentials, so Θ(f(n)).
	if d.Work.Base > 1+eps {
		return d.Work
	}

	switch {
	case d.Work.Degree < critical-eps:
		// Case 1: f polynomially smaller, the leaves dominate.
		// A log factor on f cannot close a polynomial gap.
		return Poly(critical)

	case d.Work.Degree > critical+eps:
		// Case 3: f polynomially larger, the root dominates.
		// Regularity is assumed to hold for the shapes we emit.
		return d.Work

	default:
		// Case 2 (extended): f = Θ(n^critical · log^k n) for k ≥ 0
		// adds one log factor.
		if d.Work.LogPow < 0 {
			return Unknown()
		}
		return PolyLog(critical, d.Work.LogPow+1)
	}
}

// solveSubtract resolves T(n) = a·T(n-c) + f(n) by direct summation.
func solveSubtract(d Descriptor) Class {
	if d.Calls >= 2 {
		// a branches per level over n/c levels: Θ(a^(n/c)), i.e. an
		// exponential with base a^(1/c). Any polynomial f is absorbed.
		return Exp(math.Pow(float64(d.Calls), 1/d.Subtract))
	}

	// Single chain of n/c invocations, each doing f(n) work:
	// sum_{i=1..n/c} f(i·c) = Θ(n · f(n)) for polynomial f.
	if d.Work.Base > 1+eps {
		// Geometric series: the last term dominates.
		return d.Work
	}
	return Class{
		Base:   1,
		Degree: d.Work.Degree + 1,
		LogPow: d.Work.LogPow,
	}
}
