// Package semantic provides semantic analysis for pseudocode programs.
//
// The analyzer performs:
//   - Routine resolution: binding call sites to routine declarations
//   - Recursion marking: flagging calls that target the enclosing routine
//   - Scope analysis: variables are created on first assignment
//   - Validation: undefined variables and routines, arity mismatches
//
// Semantic findings never abort analysis. Errors and warnings are
// collected on the Info result and the rest of the pipeline keeps
// working on the complete tree.
package semantic

import (
	"fmt"
	"strings"

	"github.com/kolkov/bigo/token"
)

// Error represents a semantic finding with source location.
// Semantic errors are localized to the offending node and are reported
// alongside an otherwise-complete analysis result.
type Error struct {
	Pos     token.Position
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Message)
}

// Warning represents a non-fatal stylistic or suspicious-usage finding.
type Warning struct {
	Pos     token.Position
	Message string
}

// String returns the warning as a formatted string.
func (w *Warning) String() string {
	return fmt.Sprintf("%s: warning: %s", w.Pos, w.Message)
}

// ErrorList is a collection of semantic errors.
type ErrorList []*Error

// Add appends an error to the list.
func (el *ErrorList) Add(pos token.Position, format string, args ...any) {
	*el = append(*el, &Error{
		Pos:     pos,
		Message: fmt.Sprintf(format, args...),
	})
}

// Err returns an error if the list is non-empty, nil otherwise.
func (el ErrorList) Err() error {
	if len(el) == 0 {
		return nil
	}
	return el
}

// Error implements the error interface for the whole list.
func (el ErrorList) Error() string {
	switch len(el) {
	case 0:
		return "no errors"
	case 1:
		return el[0].Error()
	}
	var sb strings.Builder
	sb.WriteString(el[0].Error())
	fmt.Fprintf(&sb, " (and %d more errors)", len(el)-1)
	return sb.String()
}

// WarningList is a collection of semantic warnings.
type WarningList []*Warning

// Add appends a warning to the list.
func (wl *WarningList) Add(pos token.Position, format string, args ...any) {
	*wl = append(*wl, &Warning{
		Pos:     pos,
		Message: fmt.Sprintf(format, args...),
	})
}

// Error message formats.
const (
	errDuplicateRoutine = "routine %q already declared"
	errDuplicateParam   = "duplicate parameter %q in routine %q"
	errUndefinedRoutine = "call to undefined routine %q"
	errArityMismatch    = "routine %q takes %d argument(s), got %d"
	errUndefinedVar     = "undefined variable %q"
)
