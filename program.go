package bigo

import (
	"context"

	"github.com/kolkov/bigo/ast"
	"github.com/kolkov/bigo/internal/complexity"
	"github.com/kolkov/bigo/internal/semantic"
)

// Program represents a parsed and resolved pseudocode program ready
// for analysis. It is safe for concurrent use: the tree and its
// semantic info are frozen at Compile time, and each call to Analyze
// is an independent read-only pass.
type Program struct {
	ast    *ast.Program
	info   *semantic.Info
	source string
}

// Source returns the original source text.
func (p *Program) Source() string {
	return p.source
}

// AST returns the root of the parsed tree for traversal by
// visualization collaborators (see ast.Walk and ast.Inspect). The tree
// is frozen at Compile time and must not be mutated; a mutated tree
// invalidates the concurrency guarantees of Analyze.
func (p *Program) AST() *ast.Program {
	return p.ast
}

// Format renders the program back as canonical pseudocode: normalized
// arrows, uniform indentation, one statement per line.
func (p *Program) Format() string {
	return ast.Sprint(p.ast)
}

// Bound is a public O/Ω/Θ triple. Each member is a closed-form growth
// class rendered in conventional notation ("n log n", "2^n") or the
// string "indeterminate". Theta is empty when the upper and lower
// bounds diverge; Tight distinguishes that absence from a present
// bound.
type Bound struct {
	O     string `json:"o"`
	Omega string `json:"omega"`
	Theta string `json:"theta,omitempty"`
	Tight bool   `json:"tight"`
}

// Result is the outcome of one analysis pass.
type Result struct {
	// Program is the bound for the whole program.
	Program Bound `json:"program"`

	// Routines maps declared routine names to their bounds.
	Routines map[string]Bound `json:"routines,omitempty"`

	// Findings are localized semantic and classification problems.
	// They accompany a complete result; the affected nodes degrade to
	// "indeterminate" while the rest of the tree resolves normally.
	Findings []Finding `json:"findings,omitempty"`

	// Warnings are suspicious but legal usages (assigned-never-read
	// variables, uncalled routines).
	Warnings []Finding `json:"warnings,omitempty"`
}

// Analyze runs semantic resolution and complexity classification over
// the parsed tree. The context bounds the request: a cancelled or
// expired context aborts with its error before results are produced.
//
// Analysis is a pure function of the tree. Analyzing the same Program
// twice yields identical results.
func (p *Program) Analyze(ctx context.Context) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	info := p.info
	res := complexity.Analyze(p.ast, info)

	out := &Result{
		Program:  publicBound(res.Program),
		Routines: make(map[string]Bound, len(res.Routines)),
	}
	for name, cx := range res.Routines {
		out.Routines[name] = publicBound(cx)
	}
	for _, e := range info.Errors {
		out.Findings = append(out.Findings, Finding{
			Line:    e.Pos.Line,
			Column:  e.Pos.Column,
			Message: e.Message,
		})
	}
	for _, e := range res.Findings {
		out.Findings = append(out.Findings, Finding{
			Line:    e.Pos.Line,
			Column:  e.Pos.Column,
			Message: e.Message,
		})
	}
	for _, w := range info.Warnings {
		out.Warnings = append(out.Warnings, Finding{
			Line:    w.Pos.Line,
			Column:  w.Pos.Column,
			Message: w.Message,
		})
	}
	return out, nil
}

// publicBound converts an internal bound pair to the public form.
func publicBound(cx complexity.Complexity) Bound {
	b := Bound{
		O:     cx.O.String(),
		Omega: cx.Omega.String(),
	}
	if th, ok := cx.Theta(); ok {
		b.Theta = th.String()
		b.Tight = true
	}
	return b
}
