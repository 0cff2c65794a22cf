package ast

// -----------------------------------------------------------------------------
// Basic statements
// -----------------------------------------------------------------------------

// BlockStmt represents an ordered sequence of statements.
// It is the body form for routines, loops and conditional branches.
type BlockStmt struct {
	BaseStmt
	Stmts []Stmt // Statements in order (may be empty)
}

// AssignStmt represents an assignment.
// Examples: x ← 1, A[i] ← A[i+1]
type AssignStmt struct {
	BaseStmt
	Target *Ident // Assigned variable
	Index  []Expr // Subscript expressions when the target is an array element
	Value  Expr   // Assigned expression
}

// CallStmt represents a routine call statement.
// Example: CALL MergeSort(A, low, mid)
//
// Recursive is resolved by semantic analysis: true when the call names the
// enclosing routine.
type CallStmt struct {
	BaseStmt
	Name      string // Routine name
	Args      []Expr // Arguments (may be empty)
	Recursive bool   // Set by semantic resolution
}

// ReturnStmt represents a return statement.
// Example: RETURN x + 1
type ReturnStmt struct {
	BaseStmt
	Value Expr // Return value (nil for bare return)
}

// -----------------------------------------------------------------------------
// Loop statements
// -----------------------------------------------------------------------------

// ForStmt represents a counted loop.
// Example: FOR i ← 1 TO n DO ... END FOR
type ForStmt struct {
	BaseStmt
	Var  *Ident     // Loop variable
	From Expr       // Lower bound expression
	To   Expr       // Upper bound expression
	Body *BlockStmt // Loop body
}

// WhileStmt represents a pre-tested loop.
// Example: WHILE i < n DO ... END WHILE
type WhileStmt struct {
	BaseStmt
	Cond Expr       // Loop condition
	Body *BlockStmt // Loop body
}

// RepeatStmt represents a post-tested loop.
// Example: REPEAT ... UNTIL i = n
type RepeatStmt struct {
	BaseStmt
	Body *BlockStmt // Loop body (executed at least once)
	Cond Expr       // Exit condition (evaluated after each iteration)
}

// -----------------------------------------------------------------------------
// Conditional statement
// -----------------------------------------------------------------------------

// Branch is one (condition, body) pair of an IfStmt.
type Branch struct {
	Cond Expr       // Branch condition
	Body *BlockStmt // Branch body
}

// IfStmt represents a conditional with an ordered list of branches
// (IF ... THEN, ELSEIF ... THEN, ...) and an optional ELSE body.
// Example: IF x < y THEN ... ELSEIF x = y THEN ... ELSE ... END IF
type IfStmt struct {
	BaseStmt
	Branches []Branch   // At least one branch (the IF itself)
	Else     *BlockStmt // Else body (nil if absent)
}

// -----------------------------------------------------------------------------
// Compile-time checks
// -----------------------------------------------------------------------------

// Ensure all statement types implement Stmt interface.
var (
	_ Stmt = (*BlockStmt)(nil)
	_ Stmt = (*AssignStmt)(nil)
	_ Stmt = (*CallStmt)(nil)
	_ Stmt = (*ReturnStmt)(nil)
	_ Stmt = (*ForStmt)(nil)
	_ Stmt = (*WhileStmt)(nil)
	_ Stmt = (*RepeatStmt)(nil)
	_ Stmt = (*IfStmt)(nil)
)
