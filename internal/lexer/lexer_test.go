package lexer_test

import (
	"errors"
	"testing"

	"github.com/kolkov/bigo/internal/lexer"
	"github.com/kolkov/bigo/token"
)

// kinds extracts the token kinds from a stream, dropping the EOF terminator.
func kinds(toks []lexer.Token) []token.Kind {
	var out []token.Kind
	for _, tok := range toks {
		if tok.Kind == token.EOF {
			break
		}
		out = append(out, tok.Kind)
	}
	return out
}

// TestTokenize tests tokenization of representative source fragments.
func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []token.Kind
	}{
		{
			name: "ascii assignment",
			src:  "x <- 1",
			want: []token.Kind{token.IDENT, token.ASSIGN, token.NUMBER},
		},
		{
			name: "arrow glyph assignment",
			src:  "x ← 1",
			want: []token.Kind{token.IDENT, token.ASSIGN, token.NUMBER},
		},
		{
			name: "wide arrow glyph",
			src:  "x 🡨 1",
			want: []token.Kind{token.IDENT, token.ASSIGN, token.NUMBER},
		},
		{
			name: "for header",
			src:  "FOR i <- 1 TO n DO",
			want: []token.Kind{token.FOR, token.IDENT, token.ASSIGN, token.NUMBER, token.TO, token.IDENT, token.DO},
		},
		{
			name: "comparison glyphs",
			src:  "a ≤ b ≥ c ≠ d",
			want: []token.Kind{token.IDENT, token.LTE, token.IDENT, token.GTE, token.IDENT, token.NEQ, token.IDENT},
		},
		{
			name: "ascii comparisons",
			src:  "a <= b >= c != d <> e",
			want: []token.Kind{token.IDENT, token.LTE, token.IDENT, token.GTE, token.IDENT, token.NEQ, token.IDENT, token.NEQ, token.IDENT},
		},
		{
			name: "arithmetic",
			src:  "a + b - c * d / e div f mod g",
			want: []token.Kind{token.IDENT, token.ADD, token.IDENT, token.SUB, token.IDENT, token.MUL, token.IDENT, token.DIV, token.IDENT, token.IDIV, token.IDENT, token.MOD, token.IDENT},
		},
		{
			name: "logical word operators",
			src:  "a and b or not c",
			want: []token.Kind{token.IDENT, token.AND, token.IDENT, token.OR, token.NOT, token.IDENT},
		},
		{
			name: "equality tolerates double equals",
			src:  "a = b == c",
			want: []token.Kind{token.IDENT, token.EQ, token.IDENT, token.EQ, token.IDENT},
		},
		{
			name: "index and call",
			src:  "a[i, j] <- f(n)",
			want: []token.Kind{token.IDENT, token.LBRACKET, token.IDENT, token.COMMA, token.IDENT, token.RBRACKET, token.ASSIGN, token.IDENT, token.LPAREN, token.IDENT, token.RPAREN},
		},
		{
			name: "numbers",
			src:  "0 42 3.14 .5 10.",
			want: []token.Kind{token.NUMBER, token.NUMBER, token.NUMBER, token.NUMBER, token.NUMBER},
		},
		{
			name: "triangle comment to end of line",
			src:  "x <- 1 ► initialize counter\ny <- 2",
			want: []token.Kind{token.IDENT, token.ASSIGN, token.NUMBER, token.IDENT, token.ASSIGN, token.NUMBER},
		},
		{
			name: "hash comment to end of line",
			src:  "x <- 1 # initialize counter\ny <- 2",
			want: []token.Kind{token.IDENT, token.ASSIGN, token.NUMBER, token.IDENT, token.ASSIGN, token.NUMBER},
		},
		{
			name: "empty source",
			src:  "",
			want: nil,
		},
		{
			name: "whitespace only",
			src:  "  \t\n  \n",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			toks, err := lexer.Tokenize([]byte(tt.src), 0)
			if err != nil {
				t.Fatalf("Tokenize() error = %v", err)
			}
			got := kinds(toks)
			if len(got) != len(tt.want) {
				t.Fatalf("kinds = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("token %d = %v, want %v", i, got[i], tt.want[i])
				}
			}
			if last := toks[len(toks)-1]; last.Kind != token.EOF {
				t.Errorf("last token = %v, want EOF", last.Kind)
			}
		})
	}
}

// TestTokenizeValues tests that token lexemes carry source text.
func TestTokenizeValues(t *testing.T) {
	toks, err := lexer.Tokenize([]byte("total ← 3.14"), 0)
	if err != nil {
		t.Fatalf("Tokenize() error = %v", err)
	}
	if got, want := toks[0].Value, "total"; got != want {
		t.Errorf("ident value = %q, want %q", got, want)
	}
	if got, want := toks[1].Value, "←"; got != want {
		t.Errorf("assign lexeme = %q, want %q", got, want)
	}
	if got, want := toks[2].Value, "3.14"; got != want {
		t.Errorf("number value = %q, want %q", got, want)
	}
}

// TestTokenizePositions tests line and column tracking across lines
// and multi-byte runes.
func TestTokenizePositions(t *testing.T) {
	src := "x ← 1\ny ← 22"
	toks, err := lexer.Tokenize([]byte(src), 0)
	if err != nil {
		t.Fatalf("Tokenize() error = %v", err)
	}

	wantPos := []struct {
		line, col int
	}{
		{1, 1}, // x
		{1, 3}, // ←
		{1, 5}, // 1
		{2, 1}, // y
		{2, 3}, // ←
		{2, 5}, // 22
		{2, 7}, // EOF, one past the final rune
	}
	for i, want := range wantPos {
		got := toks[i].Pos
		if got.Line != want.line || got.Column != want.col {
			t.Errorf("token %d pos = %d:%d, want %d:%d", i, got.Line, got.Column, want.line, want.col)
		}
	}
}

// TestTokenizeIllegal tests that unrecognized characters fail with a
// positioned lexical error.
func TestTokenizeIllegal(t *testing.T) {
	tests := []struct {
		name string
		src  string
		char rune
	}{
		{name: "at sign", src: "x <- @", char: '@'},
		{name: "dollar", src: "$x <- 1", char: '$'},
		{name: "brace", src: "if x { y }", char: '{'},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := lexer.Tokenize([]byte(tt.src), 0)
			if err == nil {
				t.Fatal("Tokenize() error = nil, want lexical error")
			}
			var lerr *lexer.Error
			if !errors.As(err, &lerr) {
				t.Fatalf("error type = %T, want *lexer.Error", err)
			}
			if lerr.Char != tt.char {
				t.Errorf("Char = %q, want %q", lerr.Char, tt.char)
			}
			if !lerr.Pos.IsValid() {
				t.Errorf("Pos = %v, want valid position", lerr.Pos)
			}
		})
	}
}

// TestTokenizeLimit tests the token-count budget.
func TestTokenizeLimit(t *testing.T) {
	src := "a <- 1 b <- 2 c <- 3"

	if _, err := lexer.Tokenize([]byte(src), 0); err != nil {
		t.Fatalf("Tokenize() with no limit error = %v", err)
	}
	if _, err := lexer.Tokenize([]byte(src), 9); err != nil {
		t.Fatalf("Tokenize() at exact limit error = %v", err)
	}

	_, err := lexer.Tokenize([]byte(src), 5)
	if err == nil {
		t.Fatal("Tokenize() over limit error = nil, want *LimitError")
	}
	var lerr *lexer.LimitError
	if !errors.As(err, &lerr) {
		t.Fatalf("error type = %T, want *lexer.LimitError", err)
	}
	if lerr.Limit != 5 {
		t.Errorf("Limit = %d, want 5", lerr.Limit)
	}
}
