package parser_test

import (
	"testing"

	"github.com/kolkov/bigo/internal/lexer"
	"github.com/kolkov/bigo/internal/parser"
)

// FuzzParser tests the parser with random inputs to find crashes.
func FuzzParser(f *testing.F) {
	// Add seed corpus with valid pseudocode programs
	seeds := []string{
		// Empty and minimal
		"",
		"x <- 1",
		"x ← 1",
		"RETURN x",

		// Loops
		"FOR i ← 1 TO n DO x ← x + 1 END FOR",
		"FOR i ← 1 TO n DO FOR j ← 1 TO n DO s ← s + 1 END FOR END FOR",
		"WHILE x < n DO x ← x * 2 END WHILE",
		"REPEAT x ← x - 1 UNTIL x = 0",

		// Conditionals
		"IF a < b THEN RETURN a END IF",
		"IF a < b THEN RETURN a ELSE RETURN b END IF",
		"IF a < b THEN x ← 1 ELSE IF a > b THEN x ← 2 ELSE x ← 3 END IF",

		// Functions
		"FUNCTION f() RETURN 1 END FUNCTION",
		"FUNCTION f(a) RETURN a END FUNCTION",
		"FUNCTION f(a, b) RETURN a + b END FUNCTION",
		"FUNCTION fib(n) IF n < 2 THEN RETURN n END IF RETURN fib(n-1) + fib(n-2) END FUNCTION",

		// Calls
		"CALL f(x)",
		"CALL merge_sort(A, lo, hi)",
		"x ← f(g(y))",

		// Expressions
		"x ← (a + b) * (c - d)",
		"x ← a mod b",
		"x ← n div 2",
		"x ← -a",
		"ok ← a ≤ b AND NOT c ≥ d",
		"ok ← a <> b OR a ≠ b",
		"A[i] ← A[j]",
		"A[i, j] ← A[j, i] + 1",

		// Comments and layout
		"# leading comment\nx ← 1",
		"x ← 1 ► trailing\ny ← 2",
		"\n\n  x ← 1\n\n",

		// Complete programs
		"FUNCTION sum(A, n)\n    s ← 0\n    FOR i ← 1 TO n DO\n        s ← s + A[i]\n    END FOR\n    RETURN s\nEND FUNCTION\nt ← sum(A, n)",
	}

	for _, seed := range seeds {
		f.Add(seed)
	}

	// Add some invalid inputs to ensure graceful error handling
	invalid := []string{
		"FOR i ← 1 TO n DO x ← 1",           // Unclosed loop
		"WHILE x < n DO x ← 1 END FOR",      // Mismatched closer
		"END WHILE",                         // Closer without opener
		"IF THEN x ← 1 END IF",              // Missing condition
		"x ←",                               // Missing right-hand side
		"FUNCTION f(a, ) RETURN a END FUNCTION", // Trailing comma
		"x ← ((a + b)",                      // Unclosed paren
		"A[] ← 1",                           // Empty subscript
		"x @ y",                             // Lexical error
		"1 ← x",                             // Number as target
	}

	for _, inv := range invalid {
		f.Add(inv)
	}

	// Fuzz function
	f.Fuzz(func(t *testing.T, src string) {
		// Limit input size to prevent timeouts
		const maxLen = 10000
		if len(src) > maxLen {
			return
		}

		// Parser should not panic on any input, and every failure must
		// surface as a typed error.
		prog, err := parser.Parse(src)
		if err != nil {
			switch err.(type) {
			case *parser.ParseError, *lexer.Error:
			default:
				t.Errorf("Parse() error type = %T, want *parser.ParseError or *lexer.Error", err)
			}
		} else if prog == nil {
			t.Error("Parse() = nil program with nil error")
		}
	})
}

// FuzzParseExpr specifically tests expression parsing.
func FuzzParseExpr(f *testing.F) {
	// Seed with valid expressions
	exprs := []string{
		"42",
		"3.14",
		"x",
		"a + b",
		"a - b",
		"a * b",
		"a / b",
		"a mod b",
		"a div b",
		"-a",
		"NOT a",
		"a = b",
		"a <> b",
		"a ≠ b",
		"a < b",
		"a ≤ b",
		"a > b",
		"a ≥ b",
		"a AND b",
		"a OR b",
		"A[i]",
		"A[i, j]",
		"f(a, b)",
		"fib(n - 1) + fib(n - 2)",
		"(a + b) * c",
		"1 + 2 * 3",
	}

	for _, expr := range exprs {
		f.Add(expr)
	}

	f.Fuzz(func(t *testing.T, src string) {
		const maxLen = 1000
		if len(src) > maxLen {
			return
		}
		expr, err := parser.ParseExpr(src)
		if err == nil && expr == nil {
			t.Error("ParseExpr() = nil expression with nil error")
		}
	})
}
