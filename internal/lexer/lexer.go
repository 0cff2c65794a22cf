// Package lexer provides pseudocode tokenization.
//
// The scanner makes a single left-to-right pass over the source with no
// backtracking. Whitespace, line breaks and comments ("►" or "#" to end of
// line) are separators and are never emitted as tokens, but line/column
// tracking stays accurate for diagnostics.
package lexer

import (
	"fmt"
	"unicode/utf8"

	"github.com/kolkov/bigo/token"
)

// Token represents a scanned token with its position and lexeme.
type Token struct {
	Kind  token.Kind
	Pos   token.Position
	Value string
}

// Error is a lexical error: an unrecognized character at a known position.
type Error struct {
	Pos  token.Position
	Char rune
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: unrecognized character %q", e.Pos, e.Char)
}

// LimitError reports that the token budget was exceeded during Tokenize.
type LimitError struct {
	Limit int
}

func (e *LimitError) Error() string {
	return fmt.Sprintf("token limit exceeded (max %d)", e.Limit)
}

// Lexer tokenizes pseudocode source.
type Lexer struct {
	src     []byte         // Source code
	ch      rune           // Current rune (0 at EOF)
	offset  int            // Byte offset of the next rune to read
	pos     token.Position // Position of the current rune
	nextPos token.Position // Position of the next rune
}

// New creates a new Lexer for the given source code.
func New(src []byte) *Lexer {
	l := &Lexer{
		src: src,
		nextPos: token.Position{
			Line:   1,
			Column: 1,
		},
	}
	l.next() // Initialize first rune
	return l
}

// NewFromString creates a new Lexer from a string.
func NewFromString(src string) *Lexer {
	return New([]byte(src))
}

// Tokenize scans the whole source and returns the ordered token sequence,
// terminated by an EOF token. It fails with *Error on the first
// unrecognized character. If maxTokens > 0 and the stream grows beyond it,
// Tokenize fails fast with *LimitError instead of scanning further.
func Tokenize(src []byte, maxTokens int) ([]Token, error) {
	l := New(src)
	var toks []Token
	for {
		tok := l.Scan()
		if tok.Kind == token.ILLEGAL {
			ch, _ := utf8.DecodeRuneInString(tok.Value)
			return nil, &Error{Pos: tok.Pos, Char: ch}
		}
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			return toks, nil
		}
		if maxTokens > 0 && len(toks) > maxTokens {
			return nil, &LimitError{Limit: maxTokens}
		}
	}
}

// Scan scans and returns the next token.
func (l *Lexer) Scan() Token {
	l.skipWhitespace()
	for l.ch == '#' || l.ch == '►' {
		l.skipComment()
		l.skipWhitespace()
	}

	pos := l.pos

	// EOF
	if l.ch == 0 {
		return Token{Kind: token.EOF, Pos: pos}
	}

	switch l.ch {
	case '+':
		l.next()
		return Token{Kind: token.ADD, Pos: pos, Value: "+"}

	case '-':
		l.next()
		return Token{Kind: token.SUB, Pos: pos, Value: "-"}

	case '*':
		l.next()
		return Token{Kind: token.MUL, Pos: pos, Value: "*"}

	case '/':
		l.next()
		return Token{Kind: token.DIV, Pos: pos, Value: "/"}

	case '=':
		l.next()
		if l.ch == '=' { // == is tolerated as a spelling of =
			l.next()
		}
		return Token{Kind: token.EQ, Pos: pos, Value: "="}

	case '!':
		l.next()
		if l.ch == '=' {
			l.next()
			return Token{Kind: token.NEQ, Pos: pos, Value: "!="}
		}
		return Token{Kind: token.ILLEGAL, Pos: pos, Value: "!"}

	case '<':
		l.next()
		switch l.ch {
		case '=':
			l.next()
			return Token{Kind: token.LTE, Pos: pos, Value: "<="}
		case '-':
			l.next()
			return Token{Kind: token.ASSIGN, Pos: pos, Value: "<-"}
		case '>':
			l.next()
			return Token{Kind: token.NEQ, Pos: pos, Value: "<>"}
		}
		return Token{Kind: token.LT, Pos: pos, Value: "<"}

	case '>':
		l.next()
		if l.ch == '=' {
			l.next()
			return Token{Kind: token.GTE, Pos: pos, Value: ">="}
		}
		return Token{Kind: token.GT, Pos: pos, Value: ">"}

	// Unicode operator glyphs used by the dialect. Each normalizes to the
	// same kind as its ASCII spelling; the lexeme keeps the source glyph.
	case '≤':
		l.next()
		return Token{Kind: token.LTE, Pos: pos, Value: "≤"}
	case '≥':
		l.next()
		return Token{Kind: token.GTE, Pos: pos, Value: "≥"}
	case '≠':
		l.next()
		return Token{Kind: token.NEQ, Pos: pos, Value: "≠"}

	// Assignment arrow in its accepted encodings.
	case '←', '⟵', '🡨':
		arrow := string(l.ch)
		l.next()
		return Token{Kind: token.ASSIGN, Pos: pos, Value: arrow}

	case '(':
		l.next()
		return Token{Kind: token.LPAREN, Pos: pos, Value: "("}
	case ')':
		l.next()
		return Token{Kind: token.RPAREN, Pos: pos, Value: ")"}
	case '[':
		l.next()
		return Token{Kind: token.LBRACKET, Pos: pos, Value: "["}
	case ']':
		l.next()
		return Token{Kind: token.RBRACKET, Pos: pos, Value: "]"}
	case ',':
		l.next()
		return Token{Kind: token.COMMA, Pos: pos, Value: ","}

	default:
		if isDigit(l.ch) || (l.ch == '.' && isDigit(l.peekByte())) {
			return l.scanNumber(pos)
		}
		if isIdentStart(l.ch) {
			return l.scanIdent(pos)
		}
		ch := l.ch
		l.next()
		return Token{Kind: token.ILLEGAL, Pos: pos, Value: string(ch)}
	}
}

func (l *Lexer) scanNumber(pos token.Position) Token {
	start := pos.Offset

	for isDigit(l.ch) {
		l.next()
	}
	if l.ch == '.' {
		l.next()
		for isDigit(l.ch) {
			l.next()
		}
	}

	return Token{Kind: token.NUMBER, Pos: pos, Value: string(l.src[start:l.endOffset()])}
}

func (l *Lexer) scanIdent(pos token.Position) Token {
	start := pos.Offset
	for isIdentContinue(l.ch) {
		l.next()
	}
	name := string(l.src[start:l.endOffset()])
	return Token{Kind: token.LookupIdent(name), Pos: pos, Value: name}
}

// endOffset returns the end offset for slicing l.src: the byte offset of
// the current rune, which at EOF is len(l.src).
func (l *Lexer) endOffset() int {
	return l.pos.Offset
}

func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\r' || l.ch == '\n' {
		l.next()
	}
}

func (l *Lexer) skipComment() {
	for l.ch != 0 && l.ch != '\n' {
		l.next()
	}
}

// peekByte returns the next source byte without consuming it (0 at EOF).
func (l *Lexer) peekByte() rune {
	if l.offset >= len(l.src) {
		return 0
	}
	return rune(l.src[l.offset])
}

func (l *Lexer) next() {
	if l.offset >= len(l.src) {
		// Advance to the position one past the final rune so the EOF
		// token (and diagnostics built on it) point past the source
		// instead of at its last character.
		l.pos = l.nextPos
		l.ch = 0
		return
	}

	l.pos = l.nextPos

	r, size := rune(l.src[l.offset]), 1
	if r >= utf8.RuneSelf {
		r, size = utf8.DecodeRune(l.src[l.offset:])
	}
	l.offset += size
	l.ch = r

	l.nextPos.Column++
	l.nextPos.Offset = l.offset
	if r == '\n' {
		l.nextPos.Line++
		l.nextPos.Column = 1
	}
}

// Helper functions

func isDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}

func isIdentStart(ch rune) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_'
}

func isIdentContinue(ch rune) bool {
	return isIdentStart(ch) || isDigit(ch)
}
