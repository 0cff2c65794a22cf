package bigo_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/kolkov/bigo"
	"github.com/kolkov/bigo/ast"
)

// TestAnalyze tests end-to-end classification through the public API.
func TestAnalyze(t *testing.T) {
	tests := []struct {
		name      string
		src       string
		wantTheta string
		wantO     string
		wantOmega string
	}{
		{
			name:      "assignment",
			src:       "x <- 1",
			wantTheta: "1",
		},
		{
			name:      "linear loop",
			src:       "s <- 0 FOR i <- 1 TO n DO s <- s + i END FOR",
			wantTheta: "n",
		},
		{
			name: "nested loops",
			src: `
s <- 0
FOR i <- 1 TO n DO
    FOR j <- 1 TO n DO
        s <- s + 1
    END FOR
END FOR`,
			wantTheta: "n^2",
		},
		{
			name: "diverging branches",
			src: `
IF flag = 1 THEN
    s <- 0
    FOR i <- 1 TO n DO
        s <- s + i
    END FOR
ELSE
    s <- 1
END IF`,
			wantO:     "n",
			wantOmega: "1",
		},
		{
			name:      "halving while",
			src:       "WHILE n > 1 DO n <- n div 2 END WHILE",
			wantTheta: "log n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := bigo.Analyze(context.Background(), tt.src, nil)
			if err != nil {
				t.Fatalf("Analyze() error = %v", err)
			}
			if tt.wantTheta != "" {
				if !res.Program.Tight {
					t.Fatalf("bounds not tight: O=%s Ω=%s", res.Program.O, res.Program.Omega)
				}
				if res.Program.Theta != tt.wantTheta {
					t.Errorf("Θ = %q, want %q", res.Program.Theta, tt.wantTheta)
				}
				return
			}
			if res.Program.Tight {
				t.Errorf("bounds tight (%s), want diverging", res.Program.Theta)
			}
			if res.Program.O != tt.wantO {
				t.Errorf("O = %q, want %q", res.Program.O, tt.wantO)
			}
			if res.Program.Omega != tt.wantOmega {
				t.Errorf("Ω = %q, want %q", res.Program.Omega, tt.wantOmega)
			}
		})
	}
}

// TestAnalyzeRecursive tests routine bounds through the public API.
func TestAnalyzeRecursive(t *testing.T) {
	src := `
FUNCTION sort(n)
    a <- sort(n div 2)
    b <- sort(n div 2)
    s <- 0
    FOR i <- 1 TO n DO
        s <- s + 1
    END FOR
    RETURN a + b
END FUNCTION
r <- sort(64)`
	res, err := bigo.Analyze(context.Background(), src, nil)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	got, ok := res.Routines["sort"]
	if !ok {
		t.Fatal("routine sort missing from result")
	}
	if got.O != "n log n" {
		t.Errorf("O = %q, want %q", got.O, "n log n")
	}
}

// TestCompileErrors tests the public error taxonomy.
func TestCompileErrors(t *testing.T) {
	t.Run("lexical", func(t *testing.T) {
		_, err := bigo.Compile("x <- @", nil)
		var le *bigo.LexError
		if !errors.As(err, &le) {
			t.Fatalf("error = %v (%T), want *LexError", err, err)
		}
		if le.Char != "@" {
			t.Errorf("Char = %q, want %q", le.Char, "@")
		}
	})

	t.Run("syntax missing closer", func(t *testing.T) {
		_, err := bigo.Compile("FOR i <- 1 TO n DO sum <- sum + i", nil)
		var pe *bigo.ParseError
		if !errors.As(err, &pe) {
			t.Fatalf("error = %v (%T), want *ParseError", err, err)
		}
		if !strings.Contains(pe.Expected, "END FOR") {
			t.Errorf("Expected = %q, should cite the missing END FOR", pe.Expected)
		}
		if pe.Line == 0 {
			t.Error("Line = 0, want the closer's expected position")
		}
	})

	t.Run("token budget", func(t *testing.T) {
		_, err := bigo.Compile("a <- 1 b <- 2 c <- 3", &bigo.Config{MaxTokens: 4})
		var re *bigo.ResourceLimitError
		if !errors.As(err, &re) {
			t.Fatalf("error = %v (%T), want *ResourceLimitError", err, err)
		}
		if re.Kind != "tokens" || re.Limit != 4 {
			t.Errorf("got %s/%d, want tokens/4", re.Kind, re.Limit)
		}
	})

	t.Run("depth budget", func(t *testing.T) {
		var sb strings.Builder
		for i := 0; i < 10; i++ {
			sb.WriteString("WHILE x > 0 DO ")
		}
		sb.WriteString("x <- x - 1 ")
		for i := 0; i < 10; i++ {
			sb.WriteString("END WHILE ")
		}
		_, err := bigo.Compile(sb.String(), &bigo.Config{MaxDepth: 3})
		var re *bigo.ResourceLimitError
		if !errors.As(err, &re) {
			t.Fatalf("error = %v (%T), want *ResourceLimitError", err, err)
		}
		if re.Kind != "depth" {
			t.Errorf("Kind = %q, want depth", re.Kind)
		}
	})
}

// TestAnalyzeFindings tests that semantic problems surface as findings
// on a complete result instead of failing the request.
func TestAnalyzeFindings(t *testing.T) {
	res, err := bigo.Analyze(context.Background(), "x <- y + 1", nil)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	found := false
	for _, f := range res.Findings {
		if strings.Contains(f.Message, `undefined variable "y"`) {
			found = true
		}
	}
	if !found {
		t.Errorf("Findings = %v, want undefined-variable finding", res.Findings)
	}
	if !res.Program.Tight || res.Program.Theta != "1" {
		t.Errorf("program bound = %+v, want Θ(1) despite finding", res.Program)
	}
}

// TestAnalyzeCancelled tests that a cancelled context aborts analysis.
func TestAnalyzeCancelled(t *testing.T) {
	prog, err := bigo.Compile("x <- 1", nil)
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := prog.Analyze(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Analyze() error = %v, want context.Canceled", err)
	}
}

// TestAnalyzeIdempotent tests that repeated analysis of one compiled
// program yields identical results.
func TestAnalyzeIdempotent(t *testing.T) {
	prog, err := bigo.Compile("s <- 0 FOR i <- 1 TO n DO s <- s + i END FOR", nil)
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	first, err := prog.Analyze(context.Background())
	if err != nil {
		t.Fatalf("first Analyze() error = %v", err)
	}
	second, err := prog.Analyze(context.Background())
	if err != nil {
		t.Fatalf("second Analyze() error = %v", err)
	}
	if first.Program != second.Program {
		t.Errorf("results differ: %+v vs %+v", first.Program, second.Program)
	}
}

// TestMustCompile tests the panic behavior on invalid source.
func TestMustCompile(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustCompile() did not panic on invalid source")
		}
	}()
	bigo.MustCompile("FOR i <- 1 TO")
}

// TestFormat tests canonical pseudocode rendering round-trips through
// the parser.
func TestFormat(t *testing.T) {
	prog, err := bigo.Compile("for i <- 1 to n do s <- s + i end for", nil)
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	formatted := prog.Format()
	if !strings.Contains(formatted, "FOR i ← 1 TO n DO") {
		t.Errorf("Format() = %q, want canonical FOR header", formatted)
	}

	reparsed, err := bigo.Compile(formatted, nil)
	if err != nil {
		t.Fatalf("Compile(formatted) error = %v", err)
	}
	if reparsed.Format() != formatted {
		t.Error("Format() is not a fixed point under reparsing")
	}
}

// TestProgramAST tests that the parsed tree is exposed for traversal.
func TestProgramAST(t *testing.T) {
	prog := bigo.MustCompile(`FUNCTION double(x)
	RETURN x * 2
END FUNCTION
s ← double(n)`)

	root := prog.AST()
	if root == nil {
		t.Fatal("AST() = nil")
	}
	if f := root.Function("double"); f == nil || len(f.Params) != 1 {
		t.Fatalf("Function(double) = %+v", f)
	}

	loops, calls := 0, 0
	ast.Walk(root, func(n ast.Node) bool {
		switch n.(type) {
		case *ast.ForStmt, *ast.WhileStmt, *ast.RepeatStmt:
			loops++
		case *ast.CallExpr:
			calls++
		}
		return true
	})
	if loops != 0 || calls != 1 {
		t.Errorf("walk counted %d loops, %d calls; want 0, 1", loops, calls)
	}

	if prog.AST() != root {
		t.Error("AST() is not stable across calls")
	}
}
