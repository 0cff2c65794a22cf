package bigo

import (
	"context"
	"errors"

	"github.com/kolkov/bigo/internal/lexer"
	"github.com/kolkov/bigo/internal/parser"
	"github.com/kolkov/bigo/internal/semantic"
)

// Version is the bigo version string.
const Version = "0.1.0"

// Analyze classifies the asymptotic complexity of a pseudocode program.
// This is a convenience function for one-off analysis. For repeated
// analysis of the same program (or access to the AST), use Compile
// followed by Program.Analyze.
//
// Example:
//
//	res, err := bigo.Analyze(ctx, "FOR i <- 1 TO n DO s <- s + i END FOR", nil)
//	// res.Program.Theta: "n"
func Analyze(ctx context.Context, source string, config *Config) (*Result, error) {
	prog, err := Compile(source, config)
	if err != nil {
		return nil, err
	}
	return prog.Analyze(ctx)
}

// Compile tokenizes and parses a pseudocode program. The returned
// Program holds the AST and can be analyzed any number of times; each
// analysis pass is independent and yields identical results for an
// unchanged tree.
func Compile(source string, config *Config) (*Program, error) {
	cfg := Config{}
	if config != nil {
		cfg = *config
	}
	cfg.applyDefaults()

	toks, err := lexer.Tokenize([]byte(source), cfg.MaxTokens)
	if err != nil {
		return nil, convertLexError(err)
	}

	astProg, err := parser.ParseTokens(toks, cfg.MaxDepth)
	if err != nil {
		return nil, convertParseError(err)
	}

	// Resolution marks recursive call sites and builds the routine
	// table; doing it here freezes the tree so Analyze is read-only.
	info := semantic.Resolve(astProg)

	return &Program{
		ast:    astProg,
		info:   info,
		source: source,
	}, nil
}

// MustCompile is like Compile but panics on error. It simplifies safe
// initialization of programs known to be valid.
func MustCompile(source string) *Program {
	prog, err := Compile(source, nil)
	if err != nil {
		panic("bigo: Compile: " + err.Error())
	}
	return prog
}

// convertLexError maps internal lexer errors to public types.
func convertLexError(err error) error {
	var le *lexer.Error
	if errors.As(err, &le) {
		return &LexError{
			Line:   le.Pos.Line,
			Column: le.Pos.Column,
			Char:   string(le.Char),
		}
	}
	var lim *lexer.LimitError
	if errors.As(err, &lim) {
		return &ResourceLimitError{Kind: "tokens", Limit: lim.Limit}
	}
	return err
}

// convertParseError maps internal parser errors to public types.
func convertParseError(err error) error {
	var pe *parser.ParseError
	if errors.As(err, &pe) {
		return &ParseError{
			Line:     pe.Pos.Line,
			Column:   pe.Pos.Column,
			Expected: pe.Want,
			Found:    pe.Got,
			Message:  pe.Message,
		}
	}
	var lim *parser.LimitError
	if errors.As(err, &lim) {
		return &ResourceLimitError{Kind: "depth", Limit: lim.Limit}
	}
	return err
}
