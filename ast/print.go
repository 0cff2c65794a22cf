package ast

import (
	"fmt"
	"io"
	"strings"

	"github.com/kolkov/bigo/token"
)

// Printer writes a canonical pseudocode rendering of AST nodes.
// The output is a human-readable reconstruction of the source, suitable
// for debugging and for visualization consumers.
type Printer struct {
	w      io.Writer
	indent int
	err    error
}

// NewPrinter creates a new Printer that writes to w.
func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

// Print writes a rendering of the node to the writer.
func (p *Printer) Print(node Node) error {
	p.printNode(node)
	return p.err
}

// Sprint returns the canonical rendering of a node as a string.
func Sprint(node Node) string {
	var sb strings.Builder
	_ = NewPrinter(&sb).Print(node)
	return sb.String()
}

func (p *Printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

func (p *Printer) writeIndent() {
	if p.err != nil {
		return
	}
	for i := 0; i < p.indent; i++ {
		_, p.err = io.WriteString(p.w, "    ")
	}
}

func (p *Printer) printNode(node Node) {
	if node == nil {
		p.printf("<nil>")
		return
	}

	switch n := node.(type) {
	case *Program:
		p.printProgram(n)
	case *FuncDecl:
		p.printFuncDecl(n)
	case Expr:
		p.printExpr(n)
	case Stmt:
		p.printStmt(n)
	default:
		p.printf("<%T>", node)
	}
}

func (p *Printer) printProgram(prog *Program) {
	for _, f := range prog.Functions {
		p.printFuncDecl(f)
		p.printf("\n")
	}
	if prog.Main != nil {
		p.printStmts(prog.Main)
	}
}

func (p *Printer) printFuncDecl(f *FuncDecl) {
	p.printf("FUNCTION %s(%s)\n", f.Name, strings.Join(f.Params, ", "))
	p.indent++
	p.printStmts(f.Body)
	p.indent--
	p.printf("END FUNCTION\n")
}

// printStmts prints each statement of a block on its own indented line.
func (p *Printer) printStmts(block *BlockStmt) {
	if block == nil {
		return
	}
	for _, s := range block.Stmts {
		p.writeIndent()
		p.printStmt(s)
		p.printf("\n")
	}
}

func (p *Printer) printStmt(s Stmt) {
	if s == nil {
		p.printf("<nil>")
		return
	}

	switch n := s.(type) {
	case *BlockStmt:
		p.printStmts(n)

	case *AssignStmt:
		p.printf("%s", n.Target.Name)
		if len(n.Index) > 0 {
			p.printf("[")
			p.printExprList(n.Index)
			p.printf("]")
		}
		p.printf(" ← ")
		p.printExpr(n.Value)

	case *CallStmt:
		p.printf("CALL %s(", n.Name)
		p.printExprList(n.Args)
		p.printf(")")

	case *ReturnStmt:
		p.printf("RETURN")
		if n.Value != nil {
			p.printf(" ")
			p.printExpr(n.Value)
		}

	case *ForStmt:
		p.printf("FOR %s ← ", n.Var.Name)
		p.printExpr(n.From)
		p.printf(" TO ")
		p.printExpr(n.To)
		p.printf(" DO\n")
		p.indent++
		p.printStmts(n.Body)
		p.indent--
		p.writeIndent()
		p.printf("END FOR")

	case *WhileStmt:
		p.printf("WHILE ")
		p.printExpr(n.Cond)
		p.printf(" DO\n")
		p.indent++
		p.printStmts(n.Body)
		p.indent--
		p.writeIndent()
		p.printf("END WHILE")

	case *RepeatStmt:
		p.printf("REPEAT\n")
		p.indent++
		p.printStmts(n.Body)
		p.indent--
		p.writeIndent()
		p.printf("UNTIL ")
		p.printExpr(n.Cond)

	case *IfStmt:
		for i, br := range n.Branches {
			if i == 0 {
				p.printf("IF ")
			} else {
				p.writeIndent()
				p.printf("ELSEIF ")
			}
			p.printExpr(br.Cond)
			p.printf(" THEN\n")
			p.indent++
			p.printStmts(br.Body)
			p.indent--
		}
		if n.Else != nil {
			p.writeIndent()
			p.printf("ELSE\n")
			p.indent++
			p.printStmts(n.Else)
			p.indent--
		}
		p.writeIndent()
		p.printf("END IF")

	default:
		p.printf("<%T>", s)
	}
}

func (p *Printer) printExpr(e Expr) {
	if e == nil {
		p.printf("<nil>")
		return
	}

	switch n := e.(type) {
	case *NumLit:
		if n.Raw != "" {
			p.printf("%s", n.Raw)
		} else {
			p.printf("%g", n.Value)
		}

	case *Ident:
		p.printf("%s", n.Name)

	case *BinaryExpr:
		p.printExpr(n.Left)
		p.printf(" %s ", opString(n.Op))
		p.printExpr(n.Right)

	case *UnaryExpr:
		p.printf("%s", opString(n.Op))
		if n.Op == token.NOT {
			p.printf(" ")
		}
		p.printExpr(n.Expr)

	case *GroupExpr:
		p.printf("(")
		p.printExpr(n.Expr)
		p.printf(")")

	case *IndexExpr:
		p.printf("%s[", n.Array.Name)
		p.printExprList(n.Index)
		p.printf("]")

	case *CallExpr:
		p.printf("%s(", n.Name)
		p.printExprList(n.Args)
		p.printf(")")

	default:
		p.printf("<%T>", e)
	}
}

func (p *Printer) printExprList(exprs []Expr) {
	for i, e := range exprs {
		if i > 0 {
			p.printf(", ")
		}
		p.printExpr(e)
	}
}

// opString returns the canonical spelling for an operator kind.
func opString(k token.Kind) string {
	switch k {
	case token.ADD:
		return "+"
	case token.SUB:
		return "-"
	case token.MUL:
		return "*"
	case token.DIV:
		return "/"
	case token.IDIV:
		return "div"
	case token.MOD:
		return "mod"
	case token.EQ:
		return "="
	case token.NEQ:
		return "≠"
	case token.LT:
		return "<"
	case token.LTE:
		return "≤"
	case token.GT:
		return ">"
	case token.GTE:
		return "≥"
	case token.AND:
		return "and"
	case token.OR:
		return "or"
	case token.NOT:
		return "not"
	case token.ASSIGN:
		return "←"
	default:
		return fmt.Sprintf("op(%d)", k)
	}
}
