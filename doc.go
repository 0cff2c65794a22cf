// Package bigo classifies the asymptotic time complexity (O, Ω, Θ) of
// algorithms written in a small pseudocode dialect.
//
// The pipeline is strictly linear: source text is tokenized, parsed
// into an AST, semantically resolved, then classified bottom-up by a
// compositional cost model with a closed-form recurrence solver for
// recursive routines (Master Theorem for divide-and-conquer,
// direct summation for subtractive recurrences).
//
// # Quick Start
//
// For one-off analysis:
//
//	res, err := bigo.Analyze(ctx, src, nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(res.Program.O, res.Program.Omega)
//
// # Compiled Programs
//
// For repeated analysis, or access to the formatted tree:
//
//	prog, err := bigo.Compile(src, &bigo.Config{MaxTokens: 50000})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	res, err := prog.Analyze(ctx)
//
// # The Dialect
//
// Programs are routine declarations plus top-level statements:
//
//	FUNCTION sort(n)
//	    IF n <= 1 THEN
//	        RETURN 1
//	    END IF
//	    a <- sort(n div 2)
//	    b <- sort(n div 2)
//	    FOR i <- 1 TO n DO
//	        t <- t + 1
//	    END FOR
//	    RETURN a + b
//	END FUNCTION
//
// Keywords are case-insensitive. Assignment accepts "<-" and the arrow
// glyphs "←", "⟵", "🡨"; comparisons accept both ASCII spellings and
// the glyphs "≤", "≥", "≠". Comments run from "#" or "►" to end of
// line.
//
// # Error Handling
//
// Fatal errors are returned as specific types:
//   - [LexError]: unrecognized character
//   - [ParseError]: expected-vs-found syntax violation; parsing stops
//     at the first one and no partial result is produced
//   - [ResourceLimitError]: a token or nesting budget was exceeded
//
// Semantic problems and unclassifiable constructs are not fatal: they
// are reported as [Finding] values on the [Result] while the affected
// nodes degrade to "indeterminate" and the rest of the tree resolves.
package bigo
