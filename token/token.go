// Package token defines lexical tokens for the pseudocode dialect.
package token

//go:generate stringer -type=Kind -linecomment

// Kind represents a lexical token kind.
type Kind uint8

const (
	// Special tokens
	ILLEGAL Kind = iota // <illegal>
	EOF                 // EOF

	// Operators and delimiters
	operatorStart
	ASSIGN // <-
	ADD    // +
	SUB    // -
	MUL    // *
	DIV    // /
	IDIV   // div
	MOD    // mod

	EQ  // =
	NEQ // !=
	LT  // <
	LTE // <=
	GT  // >
	GTE // >=

	AND // and
	OR  // or
	NOT // not

	LPAREN   // (
	RPAREN   // )
	LBRACKET // [
	RBRACKET // ]
	COMMA    // ,
	operatorEnd

	// Keywords
	keywordStart
	FUNCTION // FUNCTION
	FOR      // FOR
	TO       // TO
	DO       // DO
	WHILE    // WHILE
	REPEAT   // REPEAT
	UNTIL    // UNTIL
	IF       // IF
	THEN     // THEN
	ELSEIF   // ELSEIF
	ELSE     // ELSE
	END      // END
	CALL     // CALL
	RETURN   // RETURN
	keywordEnd

	// Literals
	IDENT  // identifier
	NUMBER // number
)

// IsOperator returns true if the kind is an operator or delimiter.
func (k Kind) IsOperator() bool {
	return k > operatorStart && k < operatorEnd
}

// IsKeyword returns true if the kind is a keyword.
func (k Kind) IsKeyword() bool {
	return k > keywordStart && k < keywordEnd
}

// IsLiteral returns true if the kind is a literal (identifier or number).
func (k Kind) IsLiteral() bool {
	return k == IDENT || k == NUMBER
}

// IsBlockOpener returns true if the kind opens a block that requires a
// matching closer (END <kind>, or UNTIL for REPEAT).
func (k Kind) IsBlockOpener() bool {
	switch k {
	case FUNCTION, FOR, WHILE, REPEAT, IF:
		return true
	default:
		return false
	}
}

// keywords maps lowercase keyword spellings to their token kinds.
// The dialect is case-insensitive: FOR, for and For are the same keyword.
var keywords = map[string]Kind{
	"function": FUNCTION,
	"for":      FOR,
	"to":       TO,
	"do":       DO,
	"while":    WHILE,
	"repeat":   REPEAT,
	"until":    UNTIL,
	"if":       IF,
	"then":     THEN,
	"elseif":   ELSEIF,
	"else":     ELSE,
	"end":      END,
	"call":     CALL,
	"return":   RETURN,
}

// wordOperators maps keyword-spelled operators to their token kinds.
var wordOperators = map[string]Kind{
	"div": IDIV,
	"mod": MOD,
	"and": AND,
	"or":  OR,
	"not": NOT,
}

// LookupIdent returns the token kind for a given identifier.
// Keywords and word operators match case-insensitively; anything else is IDENT.
func LookupIdent(ident string) Kind {
	lower := toLower(ident)
	if k, ok := keywords[lower]; ok {
		return k
	}
	if k, ok := wordOperators[lower]; ok {
		return k
	}
	return IDENT
}

// LookupKeyword returns the token kind for a keyword, or ILLEGAL if not found.
func LookupKeyword(name string) Kind {
	if k, ok := keywords[toLower(name)]; ok {
		return k
	}
	return ILLEGAL
}

// toLower lowercases ASCII letters, allocating only when needed.
func toLower(s string) string {
	for i := 0; i < len(s); i++ {
		if s[i] >= 'A' && s[i] <= 'Z' {
			b := []byte(s)
			for j := i; j < len(b); j++ {
				if b[j] >= 'A' && b[j] <= 'Z' {
					b[j] += 'a' - 'A'
				}
			}
			return string(b)
		}
	}
	return s
}
