package complexity_test

import (
	"testing"

	"github.com/kolkov/bigo/internal/complexity"
	"github.com/kolkov/bigo/internal/parser"
	"github.com/kolkov/bigo/internal/semantic"
)

func analyze(t *testing.T, src string) *complexity.Result {
	t.Helper()
	prog, err := parser.Parse(src)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	info := semantic.Resolve(prog)
	return complexity.Analyze(prog, info)
}

// wantTheta asserts the program bound is a tight Θ of the given class.
func wantTheta(t *testing.T, res *complexity.Result, want complexity.Class) {
	t.Helper()
	th, ok := res.Program.Theta()
	if !ok {
		t.Fatalf("Theta absent, bounds = %v", res.Program)
	}
	if !th.Equal(want) {
		t.Errorf("Θ = %v, want %v", th, want)
	}
}

// TestAnalyzeAssign tests that a single assignment is Θ(1).
func TestAnalyzeAssign(t *testing.T) {
	res := analyze(t, "x <- 1")
	wantTheta(t, res, complexity.Constant())
	if !res.Program.O.IsConstant() || !res.Program.Omega.IsConstant() {
		t.Errorf("bounds = %v, want O=Ω=Θ=1", res.Program)
	}
}

// TestAnalyzeLoops tests iteration-factor derivation for counted and
// condition-controlled loops.
func TestAnalyzeLoops(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want complexity.Class
	}{
		{
			name: "linear for",
			src:  "s <- 0 FOR i <- 1 TO n DO s <- s + i END FOR",
			want: complexity.Linear(),
		},
		{
			name: "nested for is quadratic",
			src: `
s <- 0
FOR i <- 1 TO n DO
    FOR j <- 1 TO n DO
        s <- s + 1
    END FOR
END FOR`,
			want: complexity.Poly(2),
		},
		{
			name: "triple nesting is cubic",
			src: `
s <- 0
FOR i <- 1 TO n DO
    FOR j <- 1 TO n DO
        FOR k <- 1 TO n DO
            s <- s + 1
        END FOR
    END FOR
END FOR`,
			want: complexity.Poly(3),
		},
		{
			name: "literal range is constant",
			src:  "s <- 0 FOR i <- 1 TO 10 DO s <- s + i END FOR",
			want: complexity.Constant(),
		},
		{
			name: "quadratic bound expression",
			src:  "s <- 0 FOR i <- 1 TO n * n DO s <- s + 1 END FOR",
			want: complexity.Poly(2),
		},
		{
			name: "halving while is logarithmic",
			src:  "WHILE n > 1 DO n <- n div 2 END WHILE",
			want: complexity.Log(),
		},
		{
			name: "doubling while is logarithmic",
			src:  "i <- 1 WHILE i < n DO i <- i * 2 END WHILE",
			want: complexity.Log(),
		},
		{
			name: "incrementing while is linear",
			src:  "i <- 0 WHILE i < n DO i <- i + 1 END WHILE",
			want: complexity.Linear(),
		},
		{
			name: "repeat until halving",
			src:  "REPEAT n <- n div 2 UNTIL n <= 1",
			want: complexity.Log(),
		},
		{
			name: "linear loop with log body",
			src: `
FOR i <- 1 TO n DO
    m <- n
    WHILE m > 1 DO
        m <- m div 2
    END WHILE
END FOR`,
			want: complexity.PolyLog(1, 1),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := analyze(t, tt.src)
			wantTheta(t, res, tt.want)
		})
	}
}

// TestAnalyzeConditional tests worst/best branch selection: O from the
// worst branch, Ω from the cheapest, Θ only when they coincide.
func TestAnalyzeConditional(t *testing.T) {
	src := `
IF flag = 1 THEN
    s <- 0
    FOR i <- 1 TO n DO
        s <- s + i
    END FOR
ELSE
    s <- 1
END IF`
	res := analyze(t, src)

	if !res.Program.O.Equal(complexity.Linear()) {
		t.Errorf("O = %v, want n", res.Program.O)
	}
	if !res.Program.Omega.IsConstant() {
		t.Errorf("Ω = %v, want 1", res.Program.Omega)
	}
	if _, ok := res.Program.Theta(); ok {
		t.Error("Theta present, want absent for diverging branches")
	}
}

// TestAnalyzeConditionalNoElse tests that a missing else is an
// implicit constant-cost path.
func TestAnalyzeConditionalNoElse(t *testing.T) {
	src := `
IF flag = 1 THEN
    s <- 0
    FOR i <- 1 TO n DO
        s <- s + i
    END FOR
END IF`
	res := analyze(t, src)
	if !res.Program.O.Equal(complexity.Linear()) {
		t.Errorf("O = %v, want n", res.Program.O)
	}
	if !res.Program.Omega.IsConstant() {
		t.Errorf("Ω = %v, want 1", res.Program.Omega)
	}
}

// TestAnalyzeConditionalEqualBranches tests that Θ is reported when
// all branches agree.
func TestAnalyzeConditionalEqualBranches(t *testing.T) {
	src := `
IF flag = 1 THEN
    x <- 1
ELSE
    x <- 2
END IF`
	res := analyze(t, src)
	wantTheta(t, res, complexity.Constant())
}

// TestAnalyzeRecursion tests recurrence extraction and resolution for
// recursive routines.
func TestAnalyzeRecursion(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		routine string
		wantO   complexity.Class
	}{
		{
			name: "merge sort pattern",
			src: `
FUNCTION sort(n)
    x <- sort(n div 2)
    y <- sort(n div 2)
    s <- 0
    FOR i <- 1 TO n DO
        s <- s + 1
    END FOR
    RETURN s
END FUNCTION
r <- sort(100)`,
			routine: "sort",
			wantO:   complexity.PolyLog(1, 1), // Θ(n log n)
		},
		{
			name: "binary search pattern",
			src: `
FUNCTION search(n)
    IF n <= 1 THEN
        RETURN 1
    END IF
    RETURN search(n div 2)
END FUNCTION
r <- search(100)`,
			routine: "search",
			wantO:   complexity.Log(), // O(log n)
		},
		{
			name: "factorial pattern",
			src: `
FUNCTION fact(n)
    IF n <= 1 THEN
        RETURN 1
    END IF
    RETURN n * fact(n - 1)
END FUNCTION
r <- fact(10)`,
			routine: "fact",
			wantO:   complexity.Linear(), // O(n)
		},
		{
			name: "hanoi pattern",
			src: `
FUNCTION hanoi(n)
    IF n > 0 THEN
        CALL hanoi(n - 1)
        CALL hanoi(n - 1)
    END IF
END FUNCTION
CALL hanoi(10)`,
			routine: "hanoi",
			wantO:   complexity.Exp(2), // O(2^n)
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := analyze(t, tt.src)
			got, ok := res.Routines[tt.routine]
			if !ok {
				t.Fatalf("routine %q missing from result", tt.routine)
			}
			if !got.O.Equal(tt.wantO) {
				t.Errorf("O = %v, want %v", got.O, tt.wantO)
			}
		})
	}
}

// TestAnalyzeRecursionBaseCase tests that a reachable base case gives
// a constant best-case bound.
func TestAnalyzeRecursionBaseCase(t *testing.T) {
	src := `
FUNCTION search(n)
    IF n <= 1 THEN
        RETURN 1
    END IF
    RETURN search(n div 2)
END FUNCTION
r <- search(100)`
	res := analyze(t, src)
	got := res.Routines["search"]
	if !got.Omega.IsConstant() {
		t.Errorf("Ω = %v, want 1 (base-case path)", got.Omega)
	}
	if _, ok := got.Theta(); ok {
		t.Error("Theta present, want absent when O and Ω diverge")
	}
}

// TestAnalyzeUnconditionalRecursionTheta tests that a routine whose
// every path recurses gets a tight bound from the solver on both sides.
func TestAnalyzeUnconditionalRecursionTheta(t *testing.T) {
	src := `
FUNCTION sort(n)
    IF n <= 1 THEN
        x <- 1
    END IF
    a <- sort(n div 2)
    b <- sort(n div 2)
    s <- 0
    FOR i <- 1 TO n DO
        s <- s + 1
    END FOR
    RETURN s
END FUNCTION
r <- sort(100)`
	res := analyze(t, src)
	got := res.Routines["sort"]
	th, ok := got.Theta()
	if !ok {
		t.Fatalf("Theta absent, bounds = %v", got)
	}
	if !th.Equal(complexity.PolyLog(1, 1)) {
		t.Errorf("Θ = %v, want n log n", th)
	}
}

// TestAnalyzeMixedShrink tests the deliberate scope boundary: self-calls
// with different shrink rates resolve to Indeterminate, never a guess.
func TestAnalyzeMixedShrink(t *testing.T) {
	src := `
FUNCTION f(n)
    IF n <= 1 THEN
        RETURN 1
    END IF
    RETURN f(n div 2) + f(n div 3)
END FUNCTION
r <- f(100)`
	res := analyze(t, src)
	got := res.Routines["f"]
	if !got.O.Indeterminate {
		t.Errorf("O = %v, want indeterminate", got.O)
	}
	if len(res.Findings) == 0 {
		t.Error("Findings empty, want shrink-rate finding")
	}
}

// TestAnalyzeMutualRecursion tests that mutual recursion across
// routines degrades to Indeterminate locally.
func TestAnalyzeMutualRecursion(t *testing.T) {
	src := `
FUNCTION even(n)
    RETURN odd(n - 1)
END FUNCTION
FUNCTION odd(n)
    RETURN even(n - 1)
END FUNCTION
r <- even(10)`
	res := analyze(t, src)
	if !res.Routines["even"].O.Indeterminate {
		t.Errorf("even O = %v, want indeterminate", res.Routines["even"].O)
	}
	if len(res.Findings) == 0 {
		t.Error("Findings empty, want mutual-recursion finding")
	}
}

// TestAnalyzeNonRecursiveCall tests that calls contribute the callee's
// analyzed bound, memoized within the run.
func TestAnalyzeNonRecursiveCall(t *testing.T) {
	src := `
FUNCTION scan(n)
    s <- 0
    FOR i <- 1 TO n DO
        s <- s + 1
    END FOR
    RETURN s
END FUNCTION
FOR i <- 1 TO n DO
    x <- scan(n)
END FOR`
	res := analyze(t, src)
	wantTheta(t, res, complexity.Poly(2))
}

// TestAnalyzeIndeterminateLocal tests that an unclassifiable loop
// degrades locally while sibling statements still resolve.
func TestAnalyzeIndeterminateLocal(t *testing.T) {
	src := `
WHILE x > 0 DO
    x <- f(x)
END WHILE
s <- 0
FOR i <- 1 TO n DO
    s <- s + 1
END FOR`
	res := analyze(t, src)

	if !res.Program.O.Indeterminate {
		t.Errorf("program O = %v, want indeterminate (depends on unresolved loop)", res.Program.O)
	}
	if len(res.Findings) == 0 {
		t.Error("Findings empty, want loop-bound finding")
	}

	// The sibling FOR loop still resolved on its own.
	forResolved := false
	for _, cx := range res.Nodes {
		if th, ok := cx.Theta(); ok && th.Equal(complexity.Linear()) {
			forResolved = true
		}
	}
	if !forResolved {
		t.Error("no node resolved to Θ(n); siblings should resolve despite the indeterminate loop")
	}
}

// TestAnalyzeIdempotent tests that two passes over the same tree give
// identical results.
func TestAnalyzeIdempotent(t *testing.T) {
	src := `
FUNCTION sort(n)
    x <- sort(n div 2)
    y <- sort(n div 2)
    FOR i <- 1 TO n DO
        s <- s + 1
    END FOR
    RETURN s
END FUNCTION
r <- sort(100)`
	prog, err := parser.Parse(src)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	info := semantic.Resolve(prog)

	first := complexity.Analyze(prog, info)
	second := complexity.Analyze(prog, info)

	if first.Program != second.Program {
		t.Errorf("program bounds differ: %v vs %v", first.Program, second.Program)
	}
	for name, cx := range first.Routines {
		if second.Routines[name] != cx {
			t.Errorf("routine %q differs: %v vs %v", name, cx, second.Routines[name])
		}
	}
	if len(first.Nodes) != len(second.Nodes) {
		t.Errorf("node maps differ in size: %d vs %d", len(first.Nodes), len(second.Nodes))
	}
}

// TestClassString tests growth-class rendering.
func TestClassString(t *testing.T) {
	tests := []struct {
		c    complexity.Class
		want string
	}{
		{complexity.Constant(), "1"},
		{complexity.Linear(), "n"},
		{complexity.Poly(2), "n^2"},
		{complexity.Log(), "log n"},
		{complexity.PolyLog(1, 1), "n log n"},
		{complexity.PolyLog(1, 2), "n log^2 n"},
		{complexity.Exp(2), "2^n"},
		{complexity.Poly(1.584962500721156), "n^1.585"},
		{complexity.Unknown(), "indeterminate"},
	}
	for _, tt := range tests {
		if got := tt.c.String(); got != tt.want {
			t.Errorf("String(%#v) = %q, want %q", tt.c, got, tt.want)
		}
	}
}

// TestComplexityString tests bound-pair rendering.
func TestComplexityString(t *testing.T) {
	tight := complexity.Exact(complexity.Linear())
	if got, want := tight.String(), "Θ(n)"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	loose := complexity.Complexity{O: complexity.Linear(), Omega: complexity.Constant()}
	if got, want := loose.String(), "O(n), Ω(1)"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
